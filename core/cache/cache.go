// Package cache provides the injected memoization abstraction used by
// the driver extractor. Hosts scope a cache per process or per tenant;
// nothing in the engine depends on a process-wide instance.
package cache

import "sync"

// Cache is a key-value memoization store
type Cache interface {
	// Get retrieves a cached value
	Get(key string) (interface{}, bool)

	// Set stores a value
	Set(key string, value interface{})

	// Clear removes all entries
	Clear()

	// Len returns the number of cached entries
	Len() int
}

// Memory is an in-process Cache backed by a map.
// Concurrent access is guarded; read-check-then-write races across
// callers can still duplicate upstream work, which is benign because
// cached results are idempotent.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// NewMemory creates an empty in-memory cache
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]interface{}),
	}
}

// Get retrieves a cached value
func (m *Memory) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores a value
func (m *Memory) Set(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Clear removes all entries
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]interface{})
}

// Len returns the number of cached entries
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Nop is a Cache that stores nothing. Used when memoization is
// disabled in configuration.
type Nop struct{}

// Get always misses
func (Nop) Get(string) (interface{}, bool) { return nil, false }

// Set discards the value
func (Nop) Set(string, interface{}) {}

// Clear does nothing
func (Nop) Clear() {}

// Len is always zero
func (Nop) Len() int { return 0 }
