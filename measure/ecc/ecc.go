package ecc

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-gw/extrema"
	"github.com/cwbudde/algo-gw/spline"
	"github.com/cwbudde/algo-gw/waveform"
)

// ErrReferenceTime is returned when a reference time is not bracketed by two
// consecutive detected frequency maxima. Mean anomaly is only defined inside
// a periastron-to-periastron interval, so the estimator refuses to clamp or
// extrapolate.
var ErrReferenceTime = errors.New("ecc: reference time must lie within two detected frequency maxima")

// Result is the measurement at one reference time.
//
// Degenerate marks the documented fallback: fewer than two frequency maxima
// or minima were found, the eccentricity is indistinguishable from zero, and
// both values are reported as 0 with Diagnostic explaining why.
type Result struct {
	Eccentricity float64
	MeanAnomaly  float64
	Degenerate   bool
	Diagnostic   string
}

// Config collects the estimator settings. Zero values select the defaults:
// the frequency-peak finder, unconstrained detection, a cubic envelope
// spline with flat extrapolation.
type Config struct {
	Finder    extrema.Finder
	Detection extrema.Params
	Spline    spline.Params

	// AutoSeparation derives a minimum peak separation of half the
	// estimated radial period when Detection.Distance is unset.
	AutoSeparation bool
}

// Option mutates a Config.
type Option func(*Config)

// WithFinder selects the extremum detection strategy.
func WithFinder(f extrema.Finder) Option {
	return func(cfg *Config) {
		if f != nil {
			cfg.Finder = f
		}
	}
}

// WithDetection sets the extremum detection constraints.
func WithDetection(p extrema.Params) Option {
	return func(cfg *Config) {
		cfg.Detection = p
	}
}

// WithSpline sets the envelope interpolation parameters.
func WithSpline(p spline.Params) Option {
	return func(cfg *Config) {
		cfg.Spline = p
	}
}

// WithAutoSeparation enables the radial-period-based default for the
// minimum peak separation.
func WithAutoSeparation() Option {
	return func(cfg *Config) {
		cfg.AutoSeparation = true
	}
}

// DefaultConfig returns the default estimator configuration.
func DefaultConfig() Config {
	return Config{Finder: extrema.FrequencyFinder{}}
}

// Estimator measures eccentricity and mean anomaly on one waveform frame.
// It holds no cross-call state: extrema and interpolants are recomputed per
// measurement from the current configuration.
type Estimator struct {
	frame *waveform.Frame
	cfg   Config
}

// New creates an estimator for the given frame.
func New(frame *waveform.Frame, opts ...Option) *Estimator {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Estimator{frame: frame, cfg: cfg}
}

// Measure evaluates eccentricity and mean anomaly at a single reference
// time.
func (e *Estimator) Measure(tRef float64) (Result, error) {
	res, err := e.MeasureSeries([]float64{tRef})
	if err != nil {
		return Result{}, err
	}

	return res[0], nil
}

// MeasureSeries evaluates eccentricity and mean anomaly at each reference
// time. The output has one entry per input, in order.
func (e *Estimator) MeasureSeries(tRefs []float64) ([]Result, error) {
	an, err := e.analyze()
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(tRefs))

	if an.degenerate {
		for i := range results {
			results[i] = Result{Degenerate: true, Diagnostic: an.diagnostic}
		}

		return results, nil
	}

	for i, tRef := range tRefs {
		ma, err := meanAnomaly(an.tPeaks, tRef)
		if err != nil {
			return nil, err
		}

		results[i] = Result{
			Eccentricity: an.eccInterp.Evaluate(tRef),
			MeanAnomaly:  ma,
		}
	}

	return results, nil
}

// analysis is the per-call intermediate state shared by measurement and
// diagnostics.
type analysis struct {
	maxIdx []int
	minIdx []int
	tPeaks []float64

	peaks     *spline.Interpolant
	troughs   *spline.Interpolant
	eccCurve  []float64
	eccInterp *spline.Interpolant

	degenerate bool
	diagnostic string
}

// analyze runs detection and interpolation over the full frame.
func (e *Estimator) analyze() (*analysis, error) {
	det := e.cfg.Detection

	if e.cfg.AutoSeparation && det.Distance == 0 {
		// A failed period estimate just leaves detection unconstrained.
		if period, err := extrema.EstimatePeriod(e.frame); err == nil {
			n := e.frame.Len()

			dt := (e.frame.Time[n-1] - e.frame.Time[0]) / float64(n-1)
			det.Distance = period / (2 * dt)
		}
	}

	finder := e.cfg.Finder
	if finder == nil {
		finder = extrema.FrequencyFinder{}
	}

	maxIdx, err := finder.Find(e.frame, extrema.Maxima, det)
	if err != nil {
		return nil, fmt.Errorf("ecc: maxima detection: %w", err)
	}

	minIdx, err := finder.Find(e.frame, extrema.Minima, det)
	if err != nil {
		return nil, fmt.Errorf("ecc: minima detection: %w", err)
	}

	an := &analysis{maxIdx: maxIdx, minIdx: minIdx}

	an.peaks, err = e.envelope(maxIdx)
	if degenerate(err) {
		an.degenerate = true
		an.diagnostic = fmt.Sprintf("found %d frequency maxima, need at least 2;"+
			" eccentricity indistinguishable from zero", len(maxIdx))

		return an, nil
	}

	if err != nil {
		return nil, fmt.Errorf("ecc: periastron envelope: %w", err)
	}

	an.troughs, err = e.envelope(minIdx)
	if degenerate(err) {
		an.degenerate = true
		an.diagnostic = fmt.Sprintf("found %d frequency minima, need at least 2;"+
			" eccentricity indistinguishable from zero", len(minIdx))

		return an, nil
	}

	if err != nil {
		return nil, fmt.Errorf("ecc: apastron envelope: %w", err)
	}

	an.tPeaks = make([]float64, len(maxIdx))
	for i, idx := range maxIdx {
		an.tPeaks[i] = e.frame.Time[idx]
	}

	an.eccCurve = make([]float64, e.frame.Len())
	for i, t := range e.frame.Time {
		p := math.Sqrt(math.Abs(an.peaks.Evaluate(t)))
		a := math.Sqrt(math.Abs(an.troughs.Evaluate(t)))

		if p+a == 0 {
			continue
		}

		an.eccCurve[i] = (p - a) / (p + a)
	}

	an.eccInterp, err = spline.Build(e.frame.Time, an.eccCurve, e.cfg.Spline)
	if err != nil {
		return nil, fmt.Errorf("ecc: eccentricity interpolant: %w", err)
	}

	return an, nil
}

// envelope interpolates the frequency through one extrema set.
func (e *Estimator) envelope(idx []int) (*spline.Interpolant, error) {
	xs := make([]float64, len(idx))
	ys := make([]float64, len(idx))

	for i, j := range idx {
		xs[i] = e.frame.Time[j]
		ys[i] = e.frame.Omega[j]
	}

	return spline.Build(xs, ys, e.cfg.Spline)
}

// degenerate reports whether an envelope failure means "too few extrema"
// rather than a real error.
func degenerate(err error) bool {
	return errors.Is(err, spline.ErrInsufficientPoints)
}

// meanAnomaly locates the periastron interval enclosing tRef and returns
// its angular fraction in [0, 2π).
func meanAnomaly(tPeaks []float64, tRef float64) (float64, error) {
	if len(tPeaks) < 2 || tRef < tPeaks[0] || tRef >= tPeaks[len(tPeaks)-1] {
		return 0, ErrReferenceTime
	}

	// Smallest k with tPeaks[k] > tRef; the enclosing interval starts at
	// k-1.
	k := sort.Search(len(tPeaks), func(i int) bool { return tPeaks[i] > tRef })

	lo := tPeaks[k-1]
	hi := tPeaks[k]

	return 2 * math.Pi * (tRef - lo) / (hi - lo), nil
}
