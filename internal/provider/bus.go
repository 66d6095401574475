package provider

import "sync"

// Bus is an in-process invalidation dispatcher. Readers subscribe to a
// resource (or to every resource) and are called synchronously, in
// subscription order, each time the resource is invalidated.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id       int
	resource string // empty matches every resource
	fn       func(resource string)
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for invalidations of resource and returns a
// function that removes the subscription.
func (b *Bus) Subscribe(resource string, fn func(resource string)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, resource: resource, fn: fn})
	return func() { b.unsubscribe(id) }
}

// SubscribeAll registers fn for invalidations of every resource.
func (b *Bus) SubscribeAll(fn func(resource string)) func() {
	return b.Subscribe("", fn)
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Invalidate notifies every subscriber of resource.
func (b *Bus) Invalidate(resource string) {
	b.mu.RLock()
	var targets []func(string)
	for _, s := range b.subs {
		if s.resource == "" || s.resource == resource {
			targets = append(targets, s.fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range targets {
		fn(resource)
	}
}
