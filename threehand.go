package clockpro

import (
	"fmt"

	"github.com/keyclock/clockpro/internal/adaptive"
	"github.com/keyclock/clockpro/internal/dlist"
	"github.com/keyclock/clockpro/internal/store"
)

// ThreeHand is the classical realisation of the replacement engine: a
// single sentinel-free ring shared by hot, cold and non-resident
// descriptors, swept by three cursors (handHot, handCold, handTest).
// handCold stands for the tail of the cold sub-sequence, handHot for
// the tail of the hot sub-sequence, and handTest for the tail of the
// non-resident sub-sequence — the same descriptor may be visited by
// more than one hand over its lifetime, but never by two at once.
//
// Grounded on ClockProPebblePolicy's single-list/three-cursor layout
// and on the insertion/removal cursor bookkeeping of the cockroachdb
// clockpro.go metaAdd/metaDel pair, adapted to this package's dlist
// ring and to the richer adaptive-target rules of canPromote.
type ThreeHand[K comparable] struct {
	cfg   Config
	store *store.Store[K]
	ctrl  *adaptive.Controller
	stats Stats

	handHot, handCold, handTest *dlist.Node[K]
	sizeHot, sizeCold, sizeNR   int
}

var _ Engine[int] = (*ThreeHand[int])(nil)

// NewThreeHand validates cfg and returns a ready ThreeHand engine. A
// nil stats sink is replaced with [NoopStats].
func NewThreeHand[K comparable](cfg Config, stats Stats) (*ThreeHand[K], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctrl, err := adaptive.New(cfg.MaximumSize, cfg.PercentMinCold, cfg.PercentMaxCold, cfg.LowerBoundCold)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = NoopStats{}
	}
	return &ThreeHand[K]{
		cfg:   cfg,
		store: store.New[K](cfg.MaximumSize * 2),
		ctrl:  ctrl,
		stats: stats,
	}, nil
}

// Stats returns the sink passed at construction (or NoopStats).
func (e *ThreeHand[K]) Stats() Stats { return e.stats }

// Record implements [Engine].
func (e *ThreeHand[K]) Record(key K) {
	e.stats.Operation()
	n, ok := e.store.Get(key)
	if ok && n.Status != dlist.NonResident {
		n.Referenced = true
		e.stats.Hit()
		return
	}
	e.stats.Miss()
	if ok {
		e.handleRefault(n)
	} else {
		e.handleMiss(key)
	}
	e.evict()
}

// insertNode links n immediately before handHot (i.e. at the "head",
// the most-recent position) and records it in the store. If the ring
// was empty all three hands come to rest on n; if handCold happened to
// coincide with the new head it is nudged back one step so it never
// re-examines a descriptor it hasn't earned a look at yet.
func (e *ThreeHand[K]) insertNode(n *dlist.Node[K]) {
	if e.handHot == nil {
		e.handHot, e.handCold, e.handTest = n, n, n
	} else {
		n.Link(e.handHot)
		if e.handCold == e.handHot {
			e.handCold = e.handCold.Prev()
		}
	}
	e.store.Insert(n.Key, n)
}

// unlink removes n from the ring, first walking any hand resting on n
// back to n's predecessor (or nil, if n was the ring's last member).
// It does not touch the store.
func (e *ThreeHand[K]) unlink(n *dlist.Node[K]) {
	solo := n.Next() == n
	if e.handHot == n {
		if solo {
			e.handHot = nil
		} else {
			e.handHot = n.Prev()
		}
	}
	if e.handCold == n {
		if solo {
			e.handCold = nil
		} else {
			e.handCold = n.Prev()
		}
	}
	if e.handTest == n {
		if solo {
			e.handTest = nil
		} else {
			e.handTest = n.Prev()
		}
	}
	if !solo {
		n.Detach()
	}
}

// destroy unlinks n and drops it from the store: its identity is gone
// for good, unlike a demotion or a retirement to non-resident.
func (e *ThreeHand[K]) destroy(n *dlist.Node[K]) {
	e.unlink(n)
	e.store.Delete(n.Key)
}

// handleMiss is case 2: a completely unknown key. Warm-up mirrors
// [Epoch.handleMiss]: the first MaximumSize-minCold misses land HOT,
// the rest land COLD, until the resident population fills up.
func (e *ThreeHand[K]) handleMiss(key K) {
	n := &dlist.Node[K]{Key: key}
	if e.sizeHot+e.sizeCold < e.cfg.MaximumSize && e.sizeHot < e.cfg.MaximumSize-e.ctrl.MinCold() {
		n.Status = dlist.Hot
		e.insertNode(n)
		e.sizeHot++
	} else {
		n.Status = dlist.Cold
		n.InTest = true
		e.insertNode(n)
		e.sizeCold++
	}
}

// handleRefault is case 3: a re-fault on a non-resident descriptor.
func (e *ThreeHand[K]) handleRefault(n *dlist.Node[K]) {
	e.unlink(n)
	e.sizeNR--
	promoted := e.canPromote(n)
	n.Referenced = false
	if promoted {
		n.Status = dlist.Hot
	} else {
		n.Status = dlist.Cold
		n.InTest = true
	}
	e.insertNode(n)
	if promoted {
		e.sizeHot++
	} else {
		e.sizeCold++
	}
}

// canPromote mirrors [Epoch.canPromote] using the in-test flag in place
// of an epoch comparison.
func (e *ThreeHand[K]) canPromote(candidate *dlist.Node[K]) bool {
	if !candidate.InTest {
		return false
	}
	e.ctrl.Adjust(1)
	for e.sizeHot > 0 && e.sizeHot >= e.cfg.MaximumSize-e.ctrl.ColdTarget() {
		if !e.scanHot() {
			return false
		}
		if !candidate.InTest {
			return false
		}
	}
	return candidate.InTest
}

// scanHot sweeps handHot backward, clearing reference bits and
// re-stacking referenced hot descriptors, until it demotes the first
// unreferenced one it finds. It reports whether a demotion occurred.
// Whenever handHot catches up with handTest, the test hand is stepped
// once first so the two cursors never process the same descriptor in
// the same pass.
func (e *ThreeHand[K]) scanHot() bool {
	for {
		n := e.handHot
		if n == nil {
			return false
		}
		if e.handHot == e.handTest {
			e.stepTest()
			continue
		}
		solo := n.Next() == n
		next := n.Prev()
		demoted := false
		if n.Status == dlist.Hot {
			if n.Referenced {
				n.Referenced = false
				e.unlink(n)
				e.insertNode(n)
			} else {
				e.unlink(n)
				n.Status = dlist.Cold
				n.InTest = true
				e.sizeHot--
				e.sizeCold++
				e.insertNode(n)
				demoted = true
			}
		}
		if solo {
			e.handHot = nil
		} else {
			e.handHot = next
		}
		if demoted {
			return true
		}
		if e.handHot == nil || e.sizeHot == 0 {
			return false
		}
	}
}

// scanCold steps handCold back by one and then examines the descriptor
// it left: promotes it, re-stacks it, retires it to non-resident, or
// destroys it outright. Stepping first keeps handCold on a linked
// descriptor even when the work below destroys that predecessor.
func (e *ThreeHand[K]) scanCold() {
	n := e.handCold
	if n == nil {
		return
	}
	if n.Next() == n {
		e.handCold = nil
	} else {
		e.handCold = n.Prev()
	}
	if n.Status == dlist.Cold {
		if n.Referenced {
			n.Referenced = false
			promoted := e.canPromote(n)
			e.unlink(n)
			e.sizeCold--
			if promoted {
				n.Status = dlist.Hot
				e.sizeHot++
			} else {
				n.InTest = true
				e.sizeCold++
			}
			e.insertNode(n)
		} else {
			e.unlink(n)
			e.sizeCold--
			if n.InTest {
				n.Status = dlist.NonResident
				e.insertNode(n)
				e.sizeNR++
				for e.sizeNR > e.cfg.MaximumSize {
					e.scanNonResident()
				}
			} else {
				e.destroy(n)
			}
		}
	}
}

// stepTest advances handTest by exactly one descriptor, consuming the
// in-test flag of a cold descriptor it passes and destroying a
// non-resident descriptor it passes, whose test period ends there.
func (e *ThreeHand[K]) stepTest() {
	n := e.handTest
	if n == nil {
		return
	}
	solo := n.Next() == n
	next := n.Prev()
	switch n.Status {
	case dlist.NonResident:
		e.destroy(n)
		e.sizeNR--
		e.ctrl.Adjust(-1)
	case dlist.Cold:
		n.InTest = false
	}
	if solo {
		e.handTest = nil
	} else {
		e.handTest = next
	}
}

// scanNonResident evicts the descriptor at handTest unconditionally
// when it is non-resident, contracting coldTarget. Used to enforce the
// ghost-population cap.
func (e *ThreeHand[K]) scanNonResident() {
	n := e.handTest
	if n == nil {
		return
	}
	solo := n.Next() == n
	next := n.Prev()
	if n.Status == dlist.NonResident {
		e.destroy(n)
		e.sizeNR--
		e.ctrl.Adjust(-1)
	}
	if solo {
		e.handTest = nil
	} else {
		e.handTest = next
	}
}

// prune enforces the ghost-population cap and eagerly retires any
// already-expired non-resident descriptor resting at handTest.
func (e *ThreeHand[K]) prune() {
	for e.sizeNR > e.cfg.MaximumSize {
		e.scanNonResident()
	}
	for {
		n := e.handTest
		if n == nil || n.Status != dlist.NonResident || n.InTest {
			return
		}
		e.scanNonResident()
	}
}

// evict brings the resident population back under MaximumSize, then
// prunes expired ghosts, reporting exactly one eviction attempt to
// stats regardless of how many descriptors actually moved.
func (e *ThreeHand[K]) evict() {
	e.stats.Eviction()
	for e.sizeHot+e.sizeCold > e.cfg.MaximumSize {
		if e.sizeCold > 0 {
			e.scanCold()
		} else {
			e.scanHot()
		}
	}
	if debugging {
		assert(e.sizeHot >= 0 && e.sizeCold >= 0, "evict: negative resident count")
		assert(e.handHot == nil || e.handHot != e.handCold || e.sizeHot == 0 || e.sizeCold == 0, "evict: handHot and handCold coincide with both populations nonempty")
	}
	e.prune()
}

// Finished implements [Engine].
func (e *ThreeHand[K]) Finished() {
	hot, cold, nr := e.store.CountByStatus()
	if hot != e.sizeHot || cold != e.sizeCold || nr != e.sizeNR {
		panic(fmt.Sprintf("clockpro: invariant 1 violated: store holds hot=%d cold=%d nr=%d, engine tracks hot=%d cold=%d nr=%d",
			hot, cold, nr, e.sizeHot, e.sizeCold, e.sizeNR))
	}
	if e.sizeHot+e.sizeCold > e.cfg.MaximumSize {
		panic(fmt.Sprintf("clockpro: invariant 2 violated: resident population %d exceeds maximum size %d", e.sizeHot+e.sizeCold, e.cfg.MaximumSize))
	}
	if e.sizeNR > e.cfg.MaximumSize {
		panic(fmt.Sprintf("clockpro: invariant 3 violated: non-resident population %d exceeds maximum size %d", e.sizeNR, e.cfg.MaximumSize))
	}
	start := e.handHot
	if start == nil {
		start = e.handCold
	}
	if start == nil {
		start = e.handTest
	}
	if start != nil {
		for n := range start.Iter() {
			if n.Status == dlist.NonResident && !n.InTest {
				panic(fmt.Sprintf("clockpro: invariant 4 violated: non-resident key %v outside its test period", n.Key))
			}
		}
	}
	if ct := e.ctrl.ColdTarget(); ct < e.ctrl.MinCold() || ct > e.ctrl.MaxCold() {
		panic(fmt.Sprintf("clockpro: invariant 6 violated: coldTarget %d outside [%d,%d]", ct, e.ctrl.MinCold(), e.ctrl.MaxCold()))
	}
}
