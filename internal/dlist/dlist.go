// Package dlist is a specialized adaption of `container/ring` for the
// key-only descriptors used by the CLOCK-Pro engines.
//
// A Node carries no payload beyond the descriptor fields themselves
// (status, referenced bit, in-test flag, epoch) — the ring element *is*
// the descriptor, matching the "arena of descriptors plus links" layout
// the core's design notes call out.
package dlist

import "iter"

// Status is the resident/non-resident classification of a descriptor.
type Status uint8

const (
	Hot Status = iota
	Cold
	NonResident
)

func (s Status) String() string {
	switch s {
	case Hot:
		return "hot"
	case Cold:
		return "cold"
	case NonResident:
		return "non-resident"
	default:
		return "unknown"
	}
}

// Node is an element of a circular doubly linked list, or ring, of
// descriptors. A pointer to any element serves as a reference to the
// entire ring. The zero value is a one-element ring.
//
// A Node may additionally be a Sentinel: a ring head that carries no key
// and is skipped by Do and Iter, matching the epoch variant's
// requirement that sentinel heads are excluded from the descriptor store.
type Node[K comparable] struct {
	next, prev *Node[K]

	Key        K
	Status     Status
	Referenced bool
	InTest     bool  // three-hand variant: folded test-period flag
	Epoch      int64 // epoch variant: monotonic (re-)link timestamp

	sentinel bool
}

func (n *Node[K]) init() *Node[K] {
	n.next = n
	n.prev = n
	return n
}

// NewSentinel returns a self-linked ring head that is never a member of
// the descriptor store and is never returned as an eviction victim.
func NewSentinel[K comparable]() *Node[K] {
	n := &Node[K]{sentinel: true}
	return n.init()
}

// IsSentinel reports whether n is a list head rather than a descriptor.
func (n *Node[K]) IsSentinel() bool { return n.sentinel }

// Next returns the next ring element. When descriptors are linked in
// right after a sentinel head, Next walks from the most recent toward the
// oldest. n must not be empty.
func (n *Node[K]) Next() *Node[K] {
	if n.next == nil {
		return n.init()
	}
	return n.next
}

// Prev returns the previous ring element. On such a sentinel head, Prev
// is the oldest descriptor (the tail). n must not be empty.
func (n *Node[K]) Prev() *Node[K] {
	if n.next == nil {
		return n.init()
	}
	return n.prev
}

// Move moves m % n.Len() elements backward (m < 0) or forward (m >= 0)
// in the ring and returns that ring element. n must not be empty.
func (n *Node[K]) Move(m int) *Node[K] {
	if n.next == nil {
		return n.init()
	}
	switch {
	case m < 0:
		for ; m < 0; m++ {
			n = n.prev
		}
	case m > 0:
		for ; m > 0; m-- {
			n = n.next
		}
	}
	return n
}

// Link connects ring n with ring s such that n.Next() becomes s and
// returns the original value of n.Next(). n must not be empty.
//
// If n and s point to the same ring, linking them removes the elements
// between n and s from the ring; the removed elements form a subring and
// the result is a reference to that subring. If n and s point to
// different rings, linking creates a single ring with the elements of s
// inserted after n.
func (n *Node[K]) Link(s *Node[K]) *Node[K] {
	next := n.Next()
	if s != nil {
		p := s.Prev()
		n.next = s
		s.prev = n
		next.prev = p
		p.next = next
	}
	return next
}

// Unlink removes m % n.Len() elements from the ring n, starting at
// n.Next(). If m % n.Len() == 0, n remains unchanged. The result is the
// removed subring. n must not be empty.
func (n *Node[K]) Unlink(m int) *Node[K] {
	if m <= 0 {
		return nil
	}
	return n.Link(n.Move(m + 1))
}

// Detach removes n from whatever ring it belongs to, leaving it as a
// one-element ring, and returns n's former predecessor (the caller's new
// cursor position if n was a hand). n must not be a sentinel.
func (n *Node[K]) Detach() *Node[K] {
	prev := n.prev
	if prev == n {
		return nil
	}
	prev.Unlink(1)
	return prev
}

// Len computes the number of elements in ring n, in time proportional to
// the number of elements.
func (n *Node[K]) Len() int {
	c := 0
	if n != nil {
		c = 1
		for p := n.Next(); p != n; p = p.next {
			c++
		}
	}
	return c
}

// Do calls yield on each descriptor of the ring in forward order
// (sentinels, if any, are skipped), stopping early if yield returns false.
func (n *Node[K]) Do(yield func(*Node[K]) bool) {
	if n == nil {
		return
	}
	if !n.sentinel && !yield(n) {
		return
	}
	for p := n.Next(); p != n; p = p.next {
		if !p.sentinel && !yield(p) {
			return
		}
	}
}

// Iter returns an iterator over the ring's descriptors.
func (n *Node[K]) Iter() iter.Seq[*Node[K]] {
	return func(yield func(*Node[K]) bool) { n.Do(yield) }
}
