package cache

import (
	"sync"
	"sync/atomic"
)

// Memory is the default in-process backend: a mutex-guarded map shared by
// every mapper holding a reference to it.
type Memory struct {
	mu    sync.RWMutex
	plans map[Key]*Plan

	hits   atomic.Int64
	misses atomic.Int64
}

var _ Backend = (*Memory)(nil)

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{plans: make(map[Key]*Plan)}
}

// Get returns the cached plan for the key, if present.
func (m *Memory) Get(key Key) (*Plan, bool) {
	m.mu.RLock()
	plan, ok := m.plans[key]
	m.mu.RUnlock()

	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}

	return plan, ok
}

// Set stores a plan. Two goroutines racing to insert the same key both
// computed equivalent plans from the same sealed configuration, so last
// write wins and the race is harmless.
func (m *Memory) Set(key Key, plan *Plan) {
	m.mu.Lock()
	m.plans[key] = plan
	m.mu.Unlock()
}

// Clear drops every entry. Counters are kept.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.plans = make(map[Key]*Plan)
	m.mu.Unlock()
}

// Stats returns a snapshot of the backend counters.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	entries := int64(len(m.plans))
	m.mu.RUnlock()

	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Entries: entries,
	}
}
