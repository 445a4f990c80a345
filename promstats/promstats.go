// Package promstats implements clockpro.Stats with Prometheus counters.
//
// One counter per signal, registered eagerly at construction, safe for
// concurrent use because every prometheus.Counter already is.
package promstats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/keyclock/clockpro"
)

// Adapter reports clockpro.Stats signals as Prometheus counters.
type Adapter struct {
	operations prometheus.Counter
	hits       prometheus.Counter
	misses     prometheus.Counter
	evictions  prometheus.Counter
}

var _ clockpro.Stats = (*Adapter)(nil)

// New constructs an Adapter and registers its counters with reg. A nil
// reg registers against prometheus.DefaultRegisterer. constLabels may
// be nil.
func New(reg prometheus.Registerer, namespace, subsystem string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		operations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "operations_total",
			Help:        "Total record() calls handled by the replacement engine.",
			ConstLabels: constLabels,
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "hits_total",
			Help:        "Accesses that found a resident descriptor.",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "misses_total",
			Help:        "Accesses to an unknown or non-resident key.",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "eviction_attempts_total",
			Help:        "Times evict() was invoked, regardless of how many descriptors moved.",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.operations, a.hits, a.misses, a.evictions)
	return a
}

func (a *Adapter) Operation() { a.operations.Inc() }
func (a *Adapter) Hit()       { a.hits.Inc() }
func (a *Adapter) Miss()      { a.misses.Inc() }
func (a *Adapter) Eviction()  { a.evictions.Inc() }
