// Package store is the descriptor store (C1): the sole owner of every
// descriptor ever created for a key, until it is pruned.
package store

import "github.com/keyclock/clockpro/internal/dlist"

// Store maps a key to its descriptor. All operations are amortised
// constant time. A descriptor that is not in the store does not exist.
type Store[K comparable] struct {
	m map[K]*dlist.Node[K]
}

// New returns an empty store sized for the given resident capacity.
func New[K comparable](capacityHint int) *Store[K] {
	return &Store[K]{m: make(map[K]*dlist.Node[K], capacityHint)}
}

// Get returns the descriptor for key, if any.
func (s *Store[K]) Get(key K) (*dlist.Node[K], bool) {
	n, ok := s.m[key]
	return n, ok
}

// Insert records that key maps to descriptor n. It overwrites any
// previous mapping; callers are responsible for unlinking the old
// descriptor from its list first.
func (s *Store[K]) Insert(key K, n *dlist.Node[K]) {
	s.m[key] = n
}

// Delete removes key's descriptor from the store. It does not unlink the
// descriptor from its list; callers must do that first.
func (s *Store[K]) Delete(key K) {
	delete(s.m, key)
}

// Len returns the number of descriptors currently tracked, resident or not.
func (s *Store[K]) Len() int {
	return len(s.m)
}

// CountByStatus recomputes the population of each status directly from
// the map, used by Finished() to check invariant 1 without trusting the
// engine's incremental counters.
func (s *Store[K]) CountByStatus() (hot, cold, nonResident int) {
	for _, n := range s.m {
		switch n.Status {
		case dlist.Hot:
			hot++
		case dlist.Cold:
			cold++
		case dlist.NonResident:
			nonResident++
		}
	}
	return hot, cold, nonResident
}
