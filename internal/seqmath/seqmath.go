// Package seqmath provides sequence-level numerical helpers shared by the
// waveform and extrema packages: phase unwrapping and finite-difference
// gradients on possibly non-uniform grids.
package seqmath

import "math"

// Unwrap removes 2π discontinuities from a wrapped phase sequence.
//
// Whenever the jump between consecutive samples exceeds π in magnitude, a
// multiple of 2π is added to all following samples so that the result is
// continuous. The input is not modified.
func Unwrap(phase []float64) []float64 {
	out := make([]float64, len(phase))
	if len(phase) == 0 {
		return out
	}

	out[0] = phase[0]
	correction := 0.0

	for i := 1; i < len(phase); i++ {
		delta := phase[i] - phase[i-1]

		mod := math.Mod(delta+math.Pi, 2*math.Pi)
		if mod < 0 {
			mod += 2 * math.Pi
		}
		mod -= math.Pi

		// Keep the sign of a jump of exactly π so that monotonic phase
		// stays monotonic.
		if mod == -math.Pi && delta > 0 {
			mod = math.Pi
		}

		correction += mod - delta
		out[i] = phase[i] + correction
	}

	return out
}

// Gradient computes df/dx by finite differences on the grid x.
//
// Interior samples use the second-order accurate three-point stencil for
// non-uniform grids:
//
//	f'(x_i) = -hd/(hs(hs+hd)) * f_{i-1} + (hd-hs)/(hs*hd) * f_i + hs/(hd(hs+hd)) * f_{i+1}
//
// with hs = x_i - x_{i-1} and hd = x_{i+1} - x_i. The boundary samples use
// first-order one-sided differences. Both slices must have the same length;
// x must be strictly increasing. Returns nil for sequences shorter than 2.
func Gradient(f, x []float64) []float64 {
	n := len(f)
	if n != len(x) || n < 2 {
		return nil
	}

	out := make([]float64, n)

	out[0] = (f[1] - f[0]) / (x[1] - x[0])
	out[n-1] = (f[n-1] - f[n-2]) / (x[n-1] - x[n-2])

	for i := 1; i < n-1; i++ {
		hs := x[i] - x[i-1]
		hd := x[i+1] - x[i]

		a := -hd / (hs * (hs + hd))
		b := (hd - hs) / (hs * hd)
		c := hs / (hd * (hs + hd))

		out[i] = a*f[i-1] + b*f[i] + c*f[i+1]
	}

	return out
}
