package extrema

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-gw/internal/quadfit"
	"github.com/cwbudde/algo-gw/waveform"
)

// Errors returned by EstimatePeriod.
var (
	ErrShortSignal   = errors.New("extrema: signal too short for period estimation")
	ErrNoPeriodicity = errors.New("extrema: no dominant modulation period found")
)

// EstimatePeriod estimates the mean radial (periastron-to-periastron) period
// of the frequency modulation.
//
// The secular chirp is removed by a linear detrend, the residual is Hann
// windowed, zero padded and transformed, and the dominant spectral bin is
// refined to sub-bin accuracy by a quadratic fit. The sample grid is assumed
// close to uniform; the mean spacing is used as the effective sample period.
//
// The result feeds the estimator's automatic minimum-separation constraint:
// requiring detected extrema to sit at least half a radial period apart
// suppresses spurious double detections on noisy numerical data.
func EstimatePeriod(f *waveform.Frame) (float64, error) {
	n := f.Len()
	if n < 16 {
		return 0, ErrShortSignal
	}

	dt := (f.Time[n-1] - f.Time[0]) / float64(n-1)

	alpha, beta := stat.LinearRegression(f.Time, f.Omega, nil, false)

	fftSize := nextPowerOf2(4 * n)

	in := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		resid := f.Omega[i] - (alpha + beta*f.Time[i])
		hann := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		in[i] = complex(resid*hann, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("extrema: FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("extrema: forward FFT: %w", err)
	}

	half := fftSize / 2

	bins := make([]float64, half)
	mag := make([]float64, half)

	for k := 1; k < half; k++ {
		bins[k] = float64(k)
		mag[k] = math.Hypot(real(out[k]), imag(out[k]))
	}

	// Bin 0 stays zero: the detrend removed DC, and the refinement must not
	// lock onto residual leakage there.
	binPeak, magPeak, err := quadfit.Refine(bins, mag)
	if err != nil {
		return 0, ErrNoPeriodicity
	}

	if binPeak <= 0 || magPeak <= 0 {
		return 0, ErrNoPeriodicity
	}

	freq := binPeak / (float64(fftSize) * dt)
	if freq <= 0 {
		return 0, ErrNoPeriodicity
	}

	return 1 / freq, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}

	return p
}
