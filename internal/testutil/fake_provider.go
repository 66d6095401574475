package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/prodboard/internal/provider"
)

// Call records one provider invocation.
type Call struct {
	Op       string
	Resource string
	ID       int64
	Fields   map[string]any
	Query    provider.Query
}

// FakeProvider is a scriptable DataProvider. Fetch results come from Pages
// (an empty page for unknown resources); errors can be injected per
// operation and resource. Every call is recorded.
type FakeProvider struct {
	mu sync.Mutex

	Pages       map[string]provider.Page
	FetchErrors map[string]error
	UpdateErr   error
	CreateErr   error

	// Block, when set, is waited on before Update returns.
	Block chan struct{}

	calls []Call
}

// NewFakeProvider creates a FakeProvider with no data.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Pages:       make(map[string]provider.Page),
		FetchErrors: make(map[string]error),
	}
}

// SetRecords sets the rows returned for resource.
func (f *FakeProvider) SetRecords(resource string, records ...provider.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Pages[resource] = provider.Page{Records: records, Total: len(records)}
}

// FailFetch makes every Fetch of resource fail with err.
func (f *FakeProvider) FailFetch(resource string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchErrors[resource] = err
}

func (f *FakeProvider) Fetch(ctx context.Context, resource string, q provider.Query) (provider.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Op: "fetch", Resource: resource, Query: q})
	err := f.FetchErrors[resource]
	page := f.Pages[resource]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return provider.Page{}, err
	}
	if err != nil {
		return provider.Page{}, err
	}
	return page, nil
}

func (f *FakeProvider) Update(ctx context.Context, resource string, id int64, fields map[string]any) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Op: "update", Resource: resource, ID: id, Fields: fields})
	block := f.Block
	err := f.UpdateErr
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *FakeProvider) Create(_ context.Context, resource string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Resource: resource, Fields: fields})
	return f.CreateErr
}

// Calls returns the recorded calls, optionally only those of op.
func (f *FakeProvider) Calls(op string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// BackendFailure builds a provider error carrying msg as the backend message.
func BackendFailure(resource, op, msg string) error {
	return &provider.BackendError{Resource: resource, Op: op, Message: msg, Err: errors.New(msg)}
}

// RecordingInvalidator counts invalidations per resource.
type RecordingInvalidator struct {
	mu       sync.Mutex
	Resource []string
}

func (r *RecordingInvalidator) Invalidate(resource string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Resource = append(r.Resource, resource)
}

// Count returns how many invalidations were recorded.
func (r *RecordingInvalidator) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Resource)
}
