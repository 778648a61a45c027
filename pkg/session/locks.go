// Package session serializes same-conversation work. Conversations may run
// in parallel, but calls within one conversation must be strictly ordered;
// Locks provides that exclusive section, garbage-collecting idle locks by
// reference counting.
package session

import (
	"context"
	"sync"
)

// lockEntry holds the mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Locks hands out per-ID exclusive sections. The zero value is not usable;
// use NewLocks.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewLocks creates an empty lock table.
func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates a lock entry and increments its reference count.
func (l *Locks) acquire(id string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[id]
	if !ok {
		entry = &lockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and drops the entry at zero.
func (l *Locks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, id)
	}
}

// WithLock runs fn while holding the exclusive section for id. Calls with
// different IDs proceed in parallel; calls with the same ID are serialized in
// arrival order at the mutex.
func (l *Locks) WithLock(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	entry := l.acquire(id)
	defer l.release(id)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return fn(ctx)
}
