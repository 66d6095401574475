package aggregator

import (
	"slices"
	"sync"
)

// warningSet collects degraded-lookup messages from concurrent fetches.
type warningSet struct {
	mu    sync.Mutex
	items []string
}

func (w *warningSet) add(msg string) {
	w.mu.Lock()
	w.items = append(w.items, msg)
	w.mu.Unlock()
}

// list returns the messages sorted, independent of fetch completion order.
func (w *warningSet) list() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := slices.Clone(w.items)
	slices.Sort(out)
	return out
}
