// Package spline builds smooth one-dimensional interpolants through sparse
// (x, y) samples, with an explicit policy for queries outside the fitted
// range. It wraps the gonum interp predictors.
package spline

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Errors returned by Build.
var (
	ErrInsufficientPoints = errors.New("spline: need at least 2 points")
	ErrLengthMismatch     = errors.New("spline: xs and ys lengths differ")
	ErrNotIncreasing      = errors.New("spline: xs must be strictly increasing")
	ErrDegree             = errors.New("spline: unsupported degree (want 1 or 3)")
	ErrWeights            = errors.New("spline: weights length differs from samples")
	ErrNonFinite          = errors.New("spline: samples contain non-finite values")
	ErrBounds             = errors.New("spline: invalid boundary box")
)

// Extrapolation selects the behavior of Evaluate outside the fitted range.
type Extrapolation int

const (
	// Flat returns the boundary value (the default: degrade gracefully
	// rather than fail).
	Flat Extrapolation = iota
	// Extend continues with the secant slope of the boundary segment.
	Extend
	// Zero returns 0 outside the fitted range.
	Zero
)

// Box restricts the fit to samples with Lo <= x <= Hi.
type Box struct {
	Lo float64
	Hi float64
}

// Params configures Build. The zero value selects a cubic fit with flat
// extrapolation and no boundary restriction.
type Params struct {
	// Degree of the piecewise polynomial: 1 (linear) or 3 (cubic).
	// 0 means the default, 3.
	Degree int
	// Extrapolation policy outside the fitted range.
	Extrapolation Extrapolation
	// Bounds optionally restricts the fit to a sub-interval of xs.
	Bounds *Box
	// Weights must be empty or match the sample count. An interpolating
	// fit passes through every node, so weights only participate in shape
	// validation; the field exists for parity with smoothing fits.
	Weights []float64
	// CheckFinite scans the samples for NaN/Inf before fitting.
	CheckFinite bool
}

// Interpolant is an immutable fitted curve. It owns copies of the samples it
// was built from and is safe for concurrent use.
type Interpolant struct {
	xs   []float64
	ys   []float64
	pred interp.Predictor
	ext  Extrapolation
}

// Build fits an interpolant through (xs, ys) ordered by increasing xs.
//
// At least two points must remain after applying the boundary box, otherwise
// ErrInsufficientPoints is returned (the caller decides whether that is an
// error or a degenerate-data fallback).
func Build(xs, ys []float64, p Params) (*Interpolant, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}

	if len(p.Weights) != 0 && len(p.Weights) != len(xs) {
		return nil, ErrWeights
	}

	if p.Bounds != nil {
		if p.Bounds.Hi <= p.Bounds.Lo {
			return nil, ErrBounds
		}

		xs, ys = clip(xs, ys, *p.Bounds)
	}

	if len(xs) < 2 {
		return nil, ErrInsufficientPoints
	}

	cx := make([]float64, len(xs))
	cy := make([]float64, len(ys))
	copy(cx, xs)
	copy(cy, ys)

	for i := range cx {
		if i > 0 && cx[i] <= cx[i-1] {
			return nil, ErrNotIncreasing
		}

		if p.CheckFinite {
			if math.IsNaN(cx[i]) || math.IsInf(cx[i], 0) ||
				math.IsNaN(cy[i]) || math.IsInf(cy[i], 0) {
				return nil, ErrNonFinite
			}
		}
	}

	var pred interp.FittablePredictor

	switch p.Degree {
	case 1:
		pred = &interp.PiecewiseLinear{}
	case 0, 3:
		pred = &interp.NaturalCubic{}
	default:
		return nil, ErrDegree
	}

	if err := pred.Fit(cx, cy); err != nil {
		return nil, fmt.Errorf("spline: fit: %w", err)
	}

	return &Interpolant{xs: cx, ys: cy, pred: pred, ext: p.Extrapolation}, nil
}

// clip returns the sub-slices of xs/ys inside the box.
func clip(xs, ys []float64, b Box) ([]float64, []float64) {
	lo := 0
	for lo < len(xs) && xs[lo] < b.Lo {
		lo++
	}

	hi := len(xs)
	for hi > lo && xs[hi-1] > b.Hi {
		hi--
	}

	return xs[lo:hi], ys[lo:hi]
}

// Domain returns the fitted range [min, max].
func (in *Interpolant) Domain() (float64, float64) {
	return in.xs[0], in.xs[len(in.xs)-1]
}

// Evaluate returns the interpolant value at x, applying the extrapolation
// policy outside the fitted range.
func (in *Interpolant) Evaluate(x float64) float64 {
	lo, hi := in.Domain()

	if x < lo {
		switch in.ext {
		case Flat:
			return in.ys[0]
		case Extend:
			slope := (in.ys[1] - in.ys[0]) / (in.xs[1] - in.xs[0])
			return in.ys[0] + slope*(x-lo)
		case Zero:
			return 0
		}
	}

	if x > hi {
		n := len(in.xs)

		switch in.ext {
		case Flat:
			return in.ys[n-1]
		case Extend:
			slope := (in.ys[n-1] - in.ys[n-2]) / (in.xs[n-1] - in.xs[n-2])
			return in.ys[n-1] + slope*(x-hi)
		case Zero:
			return 0
		}
	}

	return in.pred.Predict(x)
}

// EvaluateAll evaluates the interpolant at every value of x.
func (in *Interpolant) EvaluateAll(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = in.Evaluate(xi)
	}

	return out
}
