// Package safeclock demonstrates the concurrency posture the core is
// designed for: every call, hit or miss, goes through one exclusive lock.
//
// The engine itself is single-threaded (Record is not internally
// synchronized); this package is the thin wrapper an application
// actually calling it from multiple goroutines would reach for, grounded
// on a mutex-guarded Cache[K,V] but downgraded from RWMutex to Mutex
// since a hit still mutates the referenced bit.
package safeclock

import "sync"

// engine is the subset of clockpro.Engine this package depends on,
// declared locally so callers can wrap either variant without this
// package importing the root clockpro package.
type engine[K comparable] interface {
	Record(key K)
	Finished()
}

// Cache wraps a clockpro engine with a mutex: one lock guards every
// mutation, since a hit still sets the referenced bit and a miss may
// walk and relink the clock.
//
// A future version could split this into a RWMutex fast path (hits
// only flip a bit) guarded by an atomic dirty flag the writer clears,
// but the core's descriptors are not documented as safe for concurrent
// bit-flips without additional synchronization, so this package keeps a
// single exclusive lock until that groundwork lands.
type Cache[K comparable] struct {
	mu     sync.Mutex
	engine engine[K]
}

// New wraps e, which must be a *clockpro.ThreeHand[K] or *clockpro.Epoch[K]
// (or anything else satisfying the two-method engine contract above).
func New[K comparable](e engine[K]) *Cache[K] {
	return &Cache[K]{engine: e}
}

// Record is safe for concurrent use by multiple goroutines.
func (c *Cache[K]) Record(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Record(key)
}

// Finished is safe for concurrent use; callers typically invoke it once,
// after all producers have stopped calling Record.
func (c *Cache[K]) Finished() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Finished()
}
