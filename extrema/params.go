package extrema

import "math"

// Bound is a closed interval constraint. A NaN side is unbounded, so the
// zero value (both sides NaN via the constructors) imposes nothing; a nil
// *Bound in Params disables the constraint entirely.
type Bound struct {
	Lower float64
	Upper float64
}

// AtLeast constrains a quantity from below.
func AtLeast(v float64) *Bound {
	return &Bound{Lower: v, Upper: math.NaN()}
}

// AtMost constrains a quantity from above.
func AtMost(v float64) *Bound {
	return &Bound{Lower: math.NaN(), Upper: v}
}

// Between constrains a quantity to [lo, hi].
func Between(lo, hi float64) *Bound {
	return &Bound{Lower: lo, Upper: hi}
}

// contains reports whether v satisfies both sides of the bound.
func (b *Bound) contains(v float64) bool {
	if b == nil {
		return true
	}

	if !math.IsNaN(b.Lower) && v < b.Lower {
		return false
	}

	if !math.IsNaN(b.Upper) && v > b.Upper {
		return false
	}

	return true
}

// Params constrains candidate extrema. Unset fields impose no constraint.
// All sample-count quantities (Distance, Width, PlateauSize, WLen) are in
// samples, not time units.
type Params struct {
	// Height bounds the signal value at the extremum. For minima the
	// bound applies to the negated signal, mirroring the detection.
	Height *Bound
	// Threshold bounds the vertical distance to the two neighboring
	// samples: the smaller distance must reach Lower, the larger must not
	// exceed Upper.
	Threshold *Bound
	// Distance is the minimum separation between surviving extrema, in
	// samples. Smaller extrema are removed first. 0 disables.
	Distance float64
	// Prominence bounds how much an extremum stands out from its
	// surrounding baseline.
	Prominence *Bound
	// Width bounds the extremum width in samples, evaluated at the
	// relative height RelHeight.
	Width *Bound
	// WLen limits the window used for prominence (and therefore width)
	// computation, in samples. 0 means the full signal; values >= 2 are
	// valid.
	WLen int
	// RelHeight selects the evaluation height for Width as a fraction of
	// the prominence below the extremum. 0 means the default, 0.5.
	RelHeight float64
	// PlateauSize bounds the length of flat extremum tops, in samples.
	PlateauSize *Bound
}

// relHeight returns the effective relative height.
func (p Params) relHeight() float64 {
	if p.RelHeight == 0 {
		return 0.5
	}

	return p.RelHeight
}
