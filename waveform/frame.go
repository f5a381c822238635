package waveform

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gw/internal/quadfit"
	"github.com/cwbudde/algo-gw/internal/seqmath"
)

// Errors returned by NewFrame.
var (
	ErrMissingMode       = errors.New("waveform: (2,2) mode not present")
	ErrLengthMismatch    = errors.New("waveform: time and mode lengths differ")
	ErrTimeNotIncreasing = errors.New("waveform: time must be strictly increasing")
	ErrShortWaveform     = errors.New("waveform: need at least 5 samples")
	ErrNonFinite         = errors.New("waveform: input contains non-finite values")
)

// Mode identifies a spherical-harmonic waveform mode by its (l, m) indices.
type Mode struct {
	L int
	M int
}

// Mode22 is the dominant quadrupole mode.
var Mode22 = Mode{L: 2, M: 2}

// Data is the input contract expected from a waveform provider: a strictly
// increasing time grid and at least the (2,2) mode of matching length.
// Times and strains are dimensionless (G = c = M = 1 conventions); the
// measurement itself is unit-agnostic as long as both match.
type Data struct {
	T     []float64
	Modes map[Mode][]complex128
}

// Frame holds the derived per-sample state the estimator operates on.
// All four slices have identical length. Do not mutate after construction.
type Frame struct {
	Time      []float64
	Amplitude []float64
	Phase     []float64
	Omega     []float64
}

// NewFrame validates d and computes the derived frame: amplitude, re-centered
// time, unwrapped phase and instantaneous frequency.
//
// The phase is negated so that it increases with time for an inspiral whose
// frequency grows toward merger. Construction fails for malformed input
// (missing mode, mismatched lengths, non-increasing time, fewer than 5
// samples, non-finite values) and when the amplitude peak fit degenerates.
func NewFrame(d Data) (*Frame, error) {
	h22, ok := d.Modes[Mode22]
	if !ok {
		return nil, ErrMissingMode
	}

	n := len(d.T)
	if len(h22) != n {
		return nil, ErrLengthMismatch
	}

	if n < 5 {
		return nil, ErrShortWaveform
	}

	for i := 1; i < n; i++ {
		if d.T[i] <= d.T[i-1] {
			return nil, ErrTimeNotIncreasing
		}
	}

	re := make([]float64, n)
	im := make([]float64, n)
	wrapped := make([]float64, n)

	for i, c := range h22 {
		re[i] = real(c)
		im[i] = imag(c)

		if math.IsNaN(re[i]) || math.IsInf(re[i], 0) ||
			math.IsNaN(im[i]) || math.IsInf(im[i], 0) ||
			math.IsNaN(d.T[i]) || math.IsInf(d.T[i], 0) {
			return nil, ErrNonFinite
		}

		wrapped[i] = math.Atan2(im[i], re[i])
	}

	amp := make([]float64, n)
	vecmath.Magnitude(amp, re, im)

	tPeak, _, err := quadfit.Refine(d.T, amp)
	if err != nil {
		return nil, fmt.Errorf("waveform: amplitude peak fit: %w", err)
	}

	shifted := make([]float64, n)
	for i, ti := range d.T {
		shifted[i] = ti - tPeak
	}

	phase := seqmath.Unwrap(wrapped)
	for i := range phase {
		phase[i] = -phase[i]
	}

	return &Frame{
		Time:      shifted,
		Amplitude: amp,
		Phase:     phase,
		Omega:     seqmath.Gradient(phase, shifted),
	}, nil
}

// Len returns the number of samples in the frame.
func (f *Frame) Len() int {
	return len(f.Time)
}
