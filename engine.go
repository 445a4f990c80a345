package clockpro

// Engine is the contract both replacement-engine variants satisfy. It is
// total: Record never fails for any key.
type Engine[K comparable] interface {
	// Record processes one access to key: a hit on a resident
	// descriptor, a miss on an unknown key, or a re-fault on a
	// non-resident (ghost) descriptor.
	Record(key K)

	// Stats returns the sink the engine has been reporting to.
	Stats() Stats

	// Finished performs integrity assertions equivalent to the data
	// model's invariants. It panics on violation and is meant to be
	// called once when a trace ends; it is not on the hot path.
	Finished()
}
