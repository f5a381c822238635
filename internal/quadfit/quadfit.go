// Package quadfit refines the location of a sampled maximum to sub-sample
// accuracy by fitting a quadratic through the five samples around the argmax.
package quadfit

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by Refine.
var (
	ErrShortWindow = errors.New("quadfit: need at least 5 samples")
	ErrDegenerate  = errors.New("quadfit: degenerate quadratic fit")
)

// Refine locates the peak of f to sub-sample accuracy.
//
// It takes the five samples centered on the argmax (clamped so a full window
// exists), shifts the abscissa by t[index] for conditioning, and fits
//
//	f ≈ c0 + c1*dt + c2*dt²
//
// by least squares over the {1, dt, dt²} basis, solving the 3×3 Gram system
// in closed form. The parabola vertex gives the refined peak:
//
//	tPeak = t[index] - c1/(2 c2)
//	fPeak = c0 - c1²/(4 c2)
//
// Refine fails with ErrDegenerate when the curvature coefficient is zero or
// non-finite (flat or pathological window).
func Refine(t, f []float64) (tPeak, fPeak float64, err error) {
	n := len(t)
	if n < 5 || len(f) != n {
		return 0, 0, ErrShortWindow
	}

	index := floats.MaxIdx(f)
	if index < 2 {
		index = 2
	}

	if index > n-3 {
		index = n - 3
	}

	var dt, fw [5]float64
	for i := range dt {
		dt[i] = t[index-2+i] - t[index]
		fw[i] = f[index-2+i]
	}

	// Gram matrix entries: s[k] = Σ dt^k for k = 0..4.
	var s [5]float64
	s[0] = 5

	for _, d := range dt {
		d2 := d * d
		s[1] += d
		s[2] += d2
		s[3] += d2 * d
		s[4] += d2 * d2
	}

	// Right-hand side: b[k] = Σ f·dt^k.
	var b [3]float64
	for i, d := range dt {
		b[0] += fw[i]
		b[1] += fw[i] * d
		b[2] += fw[i] * d * d
	}

	// Closed-form inverse of the symmetric 3×3 Gram matrix
	//   [ s0 s1 s2 ]
	//   [ s1 s2 s3 ]
	//   [ s2 s3 s4 ]
	// via cofactors.
	m00 := s[2]*s[4] - s[3]*s[3]
	m01 := s[2]*s[3] - s[1]*s[4]
	m02 := s[1]*s[3] - s[2]*s[2]
	m11 := s[0]*s[4] - s[2]*s[2]
	m12 := s[1]*s[2] - s[0]*s[3]
	m22 := s[0]*s[2] - s[1]*s[1]

	det := s[0]*m00 + s[1]*m01 + s[2]*m02
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return 0, 0, ErrDegenerate
	}

	c1 := (m01*b[0] + m11*b[1] + m12*b[2]) / det
	c2 := (m02*b[0] + m12*b[1] + m22*b[2]) / det

	if c2 == 0 || math.IsNaN(c2) || math.IsInf(c2, 0) {
		return 0, 0, ErrDegenerate
	}

	c0 := (m00*b[0] + m01*b[1] + m02*b[2]) / det

	tPeak = t[index] - c1/(2*c2)
	fPeak = c0 - c1*c1/(4*c2)

	if math.IsNaN(tPeak) || math.IsInf(tPeak, 0) {
		return 0, 0, ErrDegenerate
	}

	return tPeak, fPeak, nil
}
