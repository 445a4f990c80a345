package clockpro

// Config is the read-once construction input for both engine variants.
// It is a plain value, not a loader: parsing a config file or
// environment is the driver's job (out of scope, see doc.go).
type Config struct {
	// MaximumSize bounds the resident population (hot + resident cold).
	MaximumSize int

	// PercentMinCold and PercentMaxCold bound the adaptive coldTarget as
	// a fraction of MaximumSize. Both must be in (0, 1].
	PercentMinCold float64
	PercentMaxCold float64

	// LowerBoundCold is the absolute floor under minCold regardless of
	// PercentMinCold. Must be >= 1.
	LowerBoundCold int

	// NonResidentMultiplier is recognised but unused by the canonical
	// core: the non-resident population is capped at MaximumSize
	// unconditionally. Reserved for future tuning; any value is
	// accepted.
	NonResidentMultiplier float64
}

// DefaultConfig returns reasonable defaults for MaximumSize entries,
// matching the ratios the source uses for its own warm-up (a small
// minimum cold fraction, headroom up to half the cache for cold).
func DefaultConfig(maximumSize int) Config {
	return Config{
		MaximumSize:           maximumSize,
		PercentMinCold:        0.01,
		PercentMaxCold:        0.50,
		LowerBoundCold:        1,
		NonResidentMultiplier: 1.0,
	}
}

// Validate implements the configuration-error taxonomy: MaximumSize <= 0,
// PercentMinCold outside (0,1], PercentMaxCold < PercentMinCold, or
// LowerBoundCold < 1 all fail fast with a descriptive error.
func (c Config) Validate() error {
	if c.MaximumSize <= 0 {
		return configErr(ErrInvalidMaximumSize, "MaximumSize", c.MaximumSize)
	}
	if c.PercentMinCold <= 0 || c.PercentMinCold > 1 {
		return configErr(ErrInvalidPercentMinCold, "PercentMinCold", c.PercentMinCold)
	}
	if c.PercentMaxCold <= 0 || c.PercentMaxCold > 1 || c.PercentMaxCold < c.PercentMinCold {
		return configErr(ErrInvalidPercentMaxCold, "PercentMaxCold", c.PercentMaxCold)
	}
	if c.LowerBoundCold < 1 {
		return configErr(ErrInvalidLowerBoundCold, "LowerBoundCold", c.LowerBoundCold)
	}
	return nil
}
