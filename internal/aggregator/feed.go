package aggregator

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/prodboard/internal/calendar"
	"github.com/alexanderramin/prodboard/internal/provider"
)

// ErrStaleRefresh is returned for a refresh that completed after a newer one
// had already been applied. Its result is discarded.
var ErrStaleRefresh = errors.New("stale board refresh discarded")

// FeedResources are the resources whose invalidation makes the board stale.
var FeedResources = []string{
	provider.ResourceOrders,
	provider.ResourceOrderDetails,
	provider.ResourceProductionEvents,
	provider.ResourceOrderLinks,
}

// Feed owns the current Snapshot of a board. Every refresh is tagged with a
// monotonically increasing sequence number and a result is only applied if
// no newer refresh has been applied before it.
type Feed struct {
	agg *Aggregator

	mu           sync.Mutex
	issued       uint64
	applied      uint64
	current      *Snapshot
	onInvalidate func(resource string)
	unsubscribe  []func()
}

// NewFeed creates a Feed that listens on bus for invalidations of
// FeedResources. bus may be nil.
func NewFeed(agg *Aggregator, bus *provider.Bus) *Feed {
	f := &Feed{agg: agg}
	if bus != nil {
		for _, res := range FeedResources {
			f.unsubscribe = append(f.unsubscribe, bus.Subscribe(res, f.invalidated))
		}
	}
	return f
}

// OnInvalidate registers the hook called when a watched resource is
// invalidated. The hook runs on the invalidating goroutine and should only
// schedule a refresh.
func (f *Feed) OnInvalidate(fn func(resource string)) {
	f.mu.Lock()
	f.onInvalidate = fn
	f.mu.Unlock()
}

func (f *Feed) invalidated(resource string) {
	f.mu.Lock()
	fn := f.onInvalidate
	f.mu.Unlock()
	if fn != nil {
		fn(resource)
	}
}

// Begin reserves the sequence number for a new refresh.
func (f *Feed) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued++
	return f.issued
}

// Fetch runs a refresh of w under a fresh sequence number without applying
// it.
func (f *Feed) Fetch(ctx context.Context, w calendar.Window) (uint64, *Snapshot, error) {
	seq := f.Begin()
	snap, err := f.agg.Refresh(ctx, w)
	if snap != nil {
		snap.Seq = seq
	}
	return seq, snap, err
}

// Apply installs snap as the current snapshot unless a refresh with a higher
// sequence number was already applied. It reports whether snap was applied.
func (f *Feed) Apply(seq uint64, snap *Snapshot) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq <= f.applied {
		return false
	}
	f.applied = seq
	if snap != nil {
		snap.Seq = seq
	}
	f.current = snap
	return true
}

// Fail records that the refresh with sequence seq failed. Like Apply it
// overtakes every older refresh, but the current snapshot stays. It reports
// whether the failure is the newest outcome.
func (f *Feed) Fail(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq <= f.applied {
		return false
	}
	f.applied = seq
	return true
}

// Stale reports whether a refresh with sequence seq has been overtaken by
// an applied one.
func (f *Feed) Stale(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return seq <= f.applied
}

// Load refreshes w and applies the result. A failed refresh leaves the
// current snapshot in place.
func (f *Feed) Load(ctx context.Context, w calendar.Window) (*Snapshot, error) {
	seq, snap, err := f.Fetch(ctx, w)
	if err != nil {
		if !f.Fail(seq) {
			return nil, ErrStaleRefresh
		}
		return nil, err
	}
	if !f.Apply(seq, snap) {
		return nil, ErrStaleRefresh
	}
	return snap, nil
}

// Current returns the last applied snapshot, or nil before the first.
func (f *Feed) Current() *Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Close detaches the feed from its bus.
func (f *Feed) Close() {
	f.mu.Lock()
	unsub := f.unsubscribe
	f.unsubscribe = nil
	f.mu.Unlock()
	for _, u := range unsub {
		u()
	}
}
