package clockpro

import (
	"fmt"

	"github.com/keyclock/clockpro/internal/adaptive"
	"github.com/keyclock/clockpro/internal/dlist"
	"github.com/keyclock/clockpro/internal/store"
)

// Epoch is the list/epoch realisation of the replacement engine: three
// sentinel-headed rings (hot, cold, non-resident) plus a per-descriptor
// monotonic epoch standing in for the three-hand variant's handTest and
// its in-test flag. It is algorithmically equivalent to [ThreeHand] and
// is the variant the design notes recommend when starting fresh, since
// it eliminates handTest's overshoot bookkeeping entirely.
//
// Grounded on ClockProSimplePolicy's headHot/headCold/headNonResident
// sentinel rings and its epoch()/canPromote()/scanCold()/scanHot()
// operations, translated from Java's node graph into dlist rings.
type Epoch[K comparable] struct {
	cfg   Config
	store *store.Store[K]
	ctrl  *adaptive.Controller
	stats Stats

	headHot, headCold, headNR *dlist.Node[K]
	sizeHot, sizeCold, sizeNR int
	epoch                     int64
}

var _ Engine[int] = (*Epoch[int])(nil)

// NewEpoch validates cfg and returns a ready Epoch engine. A nil stats
// sink is replaced with [NoopStats].
func NewEpoch[K comparable](cfg Config, stats Stats) (*Epoch[K], error) {
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
	return &Epoch[K]{
		cfg:      cfg,
		store:    store.New[K](cfg.MaximumSize * 2),
		ctrl:     ctrl,
		stats:    stats,
		headHot:  dlist.NewSentinel[K](),
		headCold: dlist.NewSentinel[K](),
		headNR:   dlist.NewSentinel[K](),
	}, nil
}

// Stats returns the sink passed at construction (or NoopStats).
func (e *Epoch[K]) Stats() Stats { return e.stats }

// Record implements [Engine].
func (e *Epoch[K]) Record(key K) {
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

func (e *Epoch[K]) tick() int64 {
	e.epoch++
	return e.epoch
}

// handleMiss is case 2: a completely unknown key. During warm-up (the
// resident population has not yet reached MaximumSize) the first
// MaximumSize-minCold misses land HOT and the rest land COLD; once warm,
// every new key lands COLD and lets evict() do the adapting.
func (e *Epoch[K]) handleMiss(key K) {
	n := &dlist.Node[K]{Key: key}
	if e.sizeHot+e.sizeCold < e.cfg.MaximumSize && e.sizeHot < e.cfg.MaximumSize-e.ctrl.MinCold() {
		n.Status = dlist.Hot
		n.Epoch = e.tick()
		e.headHot.Link(n)
		e.sizeHot++
	} else {
		n.Status = dlist.Cold
		n.Epoch = e.tick()
		e.headCold.Link(n)
		e.sizeCold++
	}
	e.store.Insert(key, n)
}

// handleRefault is case 3: a re-fault on a non-resident (ghost)
// descriptor, the sole adaptive signal in the algorithm.
func (e *Epoch[K]) handleRefault(n *dlist.Node[K]) {
	n.Detach()
	e.sizeNR--
	promoted := e.canPromote(n)
	n.Epoch = e.tick()
	if promoted {
		n.Status = dlist.Hot
		e.headHot.Link(n)
		e.sizeHot++
	} else {
		n.Status = dlist.Cold
		e.headCold.Link(n)
		e.sizeCold++
	}
}

// inTestPeriod reports whether d is still on probation: true whenever
// the hot ring is empty, or d was (re-)linked more recently than the
// oldest hot descriptor.
func (e *Epoch[K]) inTestPeriod(d *dlist.Node[K]) bool {
	if e.sizeHot == 0 {
		return true
	}
	tail := e.headHot.Prev()
	return d.Epoch > tail.Epoch
}

// canPromote decides whether a re-faulted candidate earns HOT status.
// Entering the test-period branch always nudges coldTarget upward,
// whether or not the promotion ultimately succeeds.
func (e *Epoch[K]) canPromote(candidate *dlist.Node[K]) bool {
	if !e.inTestPeriod(candidate) {
		return false
	}
	e.ctrl.Adjust(1)
	for e.sizeHot > 0 && e.sizeHot >= e.cfg.MaximumSize-e.ctrl.ColdTarget() {
		if !e.scanHot(candidate.Epoch) {
			return false
		}
	}
	return e.inTestPeriod(candidate)
}

// scanHot walks the hot ring from its tail toward its head, never
// passing a descriptor more recent than epochBound, clearing reference
// bits along the way and demoting the first unreferenced descriptor it
// finds. It reports whether a demotion occurred.
func (e *Epoch[K]) scanHot(epochBound int64) bool {
	for {
		tail := e.headHot.Prev()
		if tail.IsSentinel() || tail.Epoch > epochBound {
			return false
		}
		if tail.Referenced {
			tail.Referenced = false
			tail.Detach()
			tail.Epoch = e.tick()
			e.headHot.Link(tail)
			continue
		}
		tail.Detach()
		e.sizeHot--
		tail.Status = dlist.Cold
		tail.Epoch = e.tick()
		e.headCold.Link(tail)
		e.sizeCold++
		return true
	}
}

// scanCold examines the oldest resident cold descriptor, promoting it,
// re-stacking it, retiring it to non-resident, or destroying it outright.
func (e *Epoch[K]) scanCold() {
	tail := e.headCold.Prev()
	if tail.IsSentinel() {
		return
	}
	if tail.Referenced {
		tail.Referenced = false
		promoted := e.canPromote(tail)
		tail.Detach()
		e.sizeCold--
		tail.Epoch = e.tick()
		if promoted {
			tail.Status = dlist.Hot
			e.headHot.Link(tail)
			e.sizeHot++
		} else {
			e.headCold.Link(tail)
			e.sizeCold++
		}
		return
	}
	tail.Detach()
	e.sizeCold--
	if e.inTestPeriod(tail) {
		tail.Status = dlist.NonResident
		e.headNR.Link(tail)
		e.sizeNR++
		for e.sizeNR > e.cfg.MaximumSize {
			e.scanNonResident()
		}
	} else {
		e.store.Delete(tail.Key)
	}
}

// scanNonResident evicts the oldest ghost descriptor unconditionally,
// contracting coldTarget since the ghost aged out without a re-fault.
func (e *Epoch[K]) scanNonResident() {
	tail := e.headNR.Prev()
	if tail.IsSentinel() {
		return
	}
	tail.Detach()
	e.sizeNR--
	e.store.Delete(tail.Key)
	e.ctrl.Adjust(-1)
}

// prune retires every ghost descriptor whose test period has already
// expired, restoring invariant 4 eagerly rather than lazily.
func (e *Epoch[K]) prune() {
	for {
		tail := e.headNR.Prev()
		if tail.IsSentinel() || e.inTestPeriod(tail) {
			return
		}
		e.scanNonResident()
	}
}

// evict brings the resident population back under MaximumSize, then
// prunes expired ghosts. It always reports one eviction attempt to
// stats, matching the source's per-call accounting regardless of how
// many descriptors actually moved.
func (e *Epoch[K]) evict() {
	e.stats.Eviction()
	for e.sizeHot+e.sizeCold > e.cfg.MaximumSize {
		if e.sizeCold > 0 {
			e.scanCold()
		} else {
			e.scanHot(e.epoch)
		}
	}
	if debugging {
		assert(e.sizeHot >= 0 && e.sizeCold >= 0, "evict: negative resident count")
	}
	e.prune()
}

// Finished implements [Engine]. It panics on the first invariant it
// finds violated; it is not meant to run on any hot path.
func (e *Epoch[K]) Finished() {
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
	for n := range e.headNR.Iter() {
		if !e.inTestPeriod(n) {
			panic(fmt.Sprintf("clockpro: invariant 4 violated: non-resident key %v outside its test period", n.Key))
		}
	}
	if ct := e.ctrl.ColdTarget(); ct < e.ctrl.MinCold() || ct > e.ctrl.MaxCold() {
		panic(fmt.Sprintf("clockpro: invariant 6 violated: coldTarget %d outside [%d,%d]", ct, e.ctrl.MinCold(), e.ctrl.MaxCold()))
	}
}
