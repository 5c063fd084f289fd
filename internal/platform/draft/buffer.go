package draft

import "sync"

// Buffer holds uncommitted per-entity draft values keyed by entity id,
// independent of committed state. Drafts for different entities coexist;
// Begin deterministically overwrites any prior draft for the same id (last
// writer wins within an edit session).
//
// Every entry carries a revision that bumps on each mutation. A commit path
// captures the revision before calling out to a slow collaborator and calls
// Resolve with it afterwards: if the user canceled (or re-edited) in the
// meantime the revision no longer matches and the late result must be
// discarded instead of applied.
type Buffer[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
}

type entry[T any] struct {
	value    T
	revision uint64
}

func NewBuffer[T any]() *Buffer[T] {
	return &Buffer[T]{entries: make(map[string]*entry[T])}
}

// Begin creates or overwrites the draft for id and returns its revision.
func (b *Buffer[T]) Begin(id string, initial T) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev := b.entries[id]
	next := &entry[T]{value: initial, revision: 1}
	if prev != nil {
		next.revision = prev.revision + 1
	}
	b.entries[id] = next

	return next.revision
}

// Update mutates the draft for id in place and returns the new revision.
// It reports false when no draft exists for id.
func (b *Buffer[T]) Update(id string, mutate func(*T)) (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[id]
	if !ok {
		return 0, false
	}
	mutate(&e.value)
	e.revision++

	return e.revision, true
}

// Get returns a copy of the draft value and its revision.
func (b *Buffer[T]) Get(id string) (T, uint64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.entries[id]
	if !ok {
		var zero T
		return zero, 0, false
	}

	return e.value, e.revision, true
}

// Cancel discards the draft for id. Discarding a missing draft is a no-op.
func (b *Buffer[T]) Cancel(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, id)
}

// Resolve removes the draft for id only when its revision still matches the
// one captured before the external call, and reports whether it did. A false
// return means the draft was canceled or rewritten while the call was
// outstanding and the caller must discard the call's result.
func (b *Buffer[T]) Resolve(id string, revision uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[id]
	if !ok || e.revision != revision {
		return false
	}
	delete(b.entries, id)

	return true
}

// Snapshot returns a copy of every live draft keyed by entity id.
func (b *Buffer[T]) Snapshot() map[string]T {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]T, len(b.entries))
	for id, e := range b.entries {
		out[id] = e.value
	}

	return out
}

// Len returns the number of live drafts.
func (b *Buffer[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries)
}
