package extrema

import (
	"github.com/cwbudde/algo-gw/internal/seqmath"
	"github.com/cwbudde/algo-gw/waveform"
)

// Kind selects which class of extrema a Finder reports.
type Kind int

const (
	// Maxima are periastron passages: local maxima of the instantaneous
	// frequency.
	Maxima Kind = iota
	// Minima are apastron passages.
	Minima
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Minima {
		return "minima"
	}

	return "maxima"
}

// Finder locates extrema of the instantaneous frequency in a waveform frame.
//
// Implementations must return strictly increasing indices into the frame's
// sample grid, each a genuine local extremum of the working signal under the
// given constraints, and must be deterministic for identical inputs.
// This is the extension point for alternative detection strategies.
type Finder interface {
	Find(f *waveform.Frame, kind Kind, p Params) ([]int, error)
}

// working returns the signal a Kind-aware detector should search for maxima:
// the input itself for Maxima, its negation for Minima.
func working(sig []float64, kind Kind) []float64 {
	if kind == Maxima {
		return sig
	}

	neg := make([]float64, len(sig))
	for i, v := range sig {
		neg[i] = -v
	}

	return neg
}

// FrequencyFinder detects extrema of the instantaneous frequency with the
// full constraint pipeline (plateau size, height, threshold, distance,
// prominence, width). It is the default strategy.
type FrequencyFinder struct{}

// Find implements Finder.
func (FrequencyFinder) Find(f *waveform.Frame, kind Kind, p Params) ([]int, error) {
	return peaksInSignal(working(f.Omega, kind), p)
}

// AmplitudeFinder detects extrema of the waveform amplitude instead of the
// frequency. Amplitude extrema coincide with frequency extrema for eccentric
// binaries, and the amplitude is often the less noisy of the two; the
// returned indices still index the common sample grid.
type AmplitudeFinder struct{}

// Find implements Finder.
func (AmplitudeFinder) Find(f *waveform.Frame, kind Kind, p Params) ([]int, error) {
	return peaksInSignal(working(f.Amplitude, kind), p)
}

// WidthFinder detects fixed-width local extrema: a sample qualifies when it
// strictly exceeds every neighbor within Order samples on both sides
// (window clipped at the boundaries). Of the constraint set it honors
// Height and Distance.
type WidthFinder struct {
	// Order is the comparison half-window in samples. 0 means the
	// default, 10.
	Order int
}

// Find implements Finder.
func (w WidthFinder) Find(f *waveform.Frame, kind Kind, p Params) ([]int, error) {
	if p.Distance < 0 {
		return nil, ErrDistance
	}

	order := w.Order
	if order <= 0 {
		order = 10
	}

	x := working(f.Omega, kind)

	var peaks []int

	for i := 1; i < len(x)-1; i++ {
		lo := i - order
		if lo < 0 {
			lo = 0
		}

		hi := i + order
		if hi > len(x)-1 {
			hi = len(x) - 1
		}

		isMax := true
		for j := lo; j <= hi; j++ {
			if j != i && x[j] >= x[i] {
				isMax = false
				break
			}
		}

		if isMax && p.Height.contains(x[i]) {
			peaks = append(peaks, i)
		}
	}

	return thinByDistance(x, peaks, p.Distance), nil
}

// ZeroCrossingFinder detects extrema as sign changes of the frequency
// derivative: a maximum where dω/dt crosses from positive to non-positive.
// Of the constraint set it honors Height and Distance.
type ZeroCrossingFinder struct{}

// Find implements Finder.
func (ZeroCrossingFinder) Find(f *waveform.Frame, kind Kind, p Params) ([]int, error) {
	if p.Distance < 0 {
		return nil, ErrDistance
	}

	x := working(f.Omega, kind)

	slope := seqmath.Gradient(x, f.Time)
	if slope == nil {
		return nil, nil
	}

	var peaks []int

	for i := 1; i < len(x)-1; i++ {
		if !(slope[i] > 0 && slope[i+1] <= 0) {
			continue
		}

		// The crossing lies between samples i and i+1; keep the taller.
		idx := i
		if x[i+1] > x[i] {
			idx = i + 1
		}

		if idx >= len(x)-1 {
			continue
		}

		if p.Height.contains(x[idx]) {
			if len(peaks) > 0 && peaks[len(peaks)-1] == idx {
				continue
			}

			peaks = append(peaks, idx)
		}
	}

	return thinByDistance(x, peaks, p.Distance), nil
}

// thinByDistance applies the minimum-separation constraint to already
// located peaks.
func thinByDistance(x []float64, peaks []int, distance float64) []int {
	if distance <= 0 || len(peaks) == 0 {
		return peaks
	}

	heights := make([]float64, len(peaks))
	for i, pk := range peaks {
		heights[i] = x[pk]
	}

	return filterInts(peaks, selectByDistance(peaks, heights, distance))
}
