package utils

import "sync"

// LinkTracker keeps the first-seen order of unique keys, such as the
// date parameters of forecast page links
type LinkTracker struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

// NewLinkTracker creates a new tracker
func NewLinkTracker() *LinkTracker {
	return &LinkTracker{seen: make(map[string]struct{})}
}

// Add returns true if the key is new (not seen before), false if duplicate
func (t *LinkTracker) Add(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.seen[key]; exists {
		return false
	}
	t.seen[key] = struct{}{}
	t.order = append(t.order, key)
	return true
}

// Keys returns the tracked keys in insertion order
func (t *LinkTracker) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Count returns the number of tracked keys
func (t *LinkTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
