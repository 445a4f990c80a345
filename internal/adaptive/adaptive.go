// Package adaptive implements the adaptive controller (C4): the sole
// keeper of coldTarget and its bounds, shared identically by both
// replacement-engine variants so that adaptation semantics cannot drift
// between them.
package adaptive

import "fmt"

// Controller holds coldTarget and the bounds it is clamped to.
//
// Grounded on the inline coldTarget/hotTarget math in a CLOCK-Pro
// cache's constructor and adjustColdTarget helper, pulled out into its
// own type because two engines need byte-for-byte identical adaptation
// behavior.
type Controller struct {
	minCold, maxCold, coldTarget int
}

// New computes minCold and maxCold from maxSize and the configured
// percentages: minCold = max(floor(maxSize*percentMinCold),
// lowerBoundCold); maxCold = clamp(floor(maxSize*percentMaxCold),
// minCold, maxSize-minCold). coldTarget starts at minCold.
func New(maxSize int, percentMinCold, percentMaxCold float64, lowerBoundCold int) (*Controller, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("adaptive: maxSize must be positive, got %d", maxSize)
	}
	minCold := int(float64(maxSize) * percentMinCold)
	if minCold < lowerBoundCold {
		minCold = lowerBoundCold
	}
	maxCold := int(float64(maxSize) * percentMaxCold)
	if maxCold < minCold {
		maxCold = minCold
	}
	if ceiling := maxSize - minCold; maxCold > ceiling {
		maxCold = ceiling
	}
	if maxCold < minCold {
		// maxSize too small to hold minCold on both sides; collapse the range.
		maxCold = minCold
	}
	return &Controller{minCold: minCold, maxCold: maxCold, coldTarget: minCold}, nil
}

// ColdTarget returns the current adaptive split.
func (c *Controller) ColdTarget() int { return c.coldTarget }

// MinCold returns the configured lower bound.
func (c *Controller) MinCold() int { return c.minCold }

// MaxCold returns the configured upper bound.
func (c *Controller) MaxCold() int { return c.maxCold }

// Adjust nudges coldTarget by delta (+1 on a test-period re-fault, -1 on
// a test-period expiry) and clamps to [minCold, maxCold].
func (c *Controller) Adjust(delta int) {
	c.coldTarget += delta
	if c.coldTarget < c.minCold {
		c.coldTarget = c.minCold
	} else if c.coldTarget > c.maxCold {
		c.coldTarget = c.maxCold
	}
}
