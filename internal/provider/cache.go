package provider

import (
	"context"
	"encoding/json"
	"sync"
)

// CachingFetcher memoizes list results per resource and query. Entries of a
// resource are dropped when the bus invalidates that resource. A page whose
// fetch overlapped an invalidation of its resource is returned but not
// stored.
type CachingFetcher struct {
	next Fetcher

	mu          sync.Mutex
	entries     map[string]map[string]Page // resource -> query key -> page
	generations map[string]uint64
	hits        int
	misses      int
}

// NewCachingFetcher wraps next and subscribes to bus invalidations. A nil bus
// leaves the cache without automatic invalidation.
func NewCachingFetcher(next Fetcher, bus *Bus) *CachingFetcher {
	c := &CachingFetcher{
		next:        next,
		entries:     make(map[string]map[string]Page),
		generations: make(map[string]uint64),
	}
	if bus != nil {
		bus.SubscribeAll(c.Invalidate)
	}
	return c
}

func (c *CachingFetcher) Fetch(ctx context.Context, resource string, q Query) (Page, error) {
	key, err := queryKey(q)
	if err != nil {
		return c.next.Fetch(ctx, resource, q)
	}

	c.mu.Lock()
	if page, ok := c.entries[resource][key]; ok {
		c.hits++
		c.mu.Unlock()
		return page, nil
	}
	c.misses++
	gen := c.generations[resource]
	c.mu.Unlock()

	page, err := c.next.Fetch(ctx, resource, q)
	if err != nil {
		return Page{}, err
	}

	c.mu.Lock()
	if c.generations[resource] != gen {
		c.mu.Unlock()
		return page, nil
	}
	if c.entries[resource] == nil {
		c.entries[resource] = make(map[string]Page)
	}
	c.entries[resource][key] = page
	c.mu.Unlock()
	return page, nil
}

// Invalidate drops every cached page of resource.
func (c *CachingFetcher) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[resource]++
	delete(c.entries, resource)
}

// Stats returns the number of cache hits and misses so far.
func (c *CachingFetcher) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func queryKey(q Query) (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
