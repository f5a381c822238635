package inspiral

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-gw/waveform"
)

// Errors returned by New on invalid generator parameters.
var (
	ErrApproximant    = errors.New("inspiral: unknown approximant")
	ErrMassRatio      = errors.New("inspiral: mass ratio must be >= 1")
	ErrSpinLength     = errors.New("inspiral: spin vectors must have three components")
	ErrSpinMagnitude  = errors.New("inspiral: spin magnitude must not exceed 1")
	ErrPrecessingSpin = errors.New("inspiral: approximant supports aligned spins only")
	ErrEccentricity   = errors.New("inspiral: eccentricity must lie in [0, 1)")
	ErrMeanAnomaly    = errors.New("inspiral: mean anomaly must lie in [0, 2π)")
	ErrTidal          = errors.New("inspiral: tidal deformabilities must be non-negative")
	ErrTimeStep       = errors.New("inspiral: time step must be positive")
	ErrStartFrequency = errors.New("inspiral: start frequency must be positive")
)

// ApproximantEccentricTD is the default aligned-spin eccentric
// time-domain family.
const ApproximantEccentricTD = "EccentricTD"

// inPlaneSpinTolerance bounds the in-plane spin components accepted by
// aligned-spin approximants.
const inPlaneSpinTolerance = 1e-5

// Config collects the physical and sampling parameters of a generator.
type Config struct {
	// Approximant names the waveform family.
	Approximant string

	// MassRatio is q = m1/m2 >= 1.
	MassRatio float64

	// Spin1 and Spin2 are the dimensionless spin vectors (χx, χy, χz)
	// of the two components.
	Spin1 []float64
	Spin2 []float64

	// TimeStep is the sampling interval in geometric units.
	TimeStep float64

	// StartFrequency is the initial orbital angular frequency ω₀ in
	// geometric units.
	StartFrequency float64

	// Eccentricity and MeanAnomaly set the orbital state at the start
	// of the series.
	Eccentricity float64
	MeanAnomaly  float64

	// Lambda1 and Lambda2 are the dimensionless tidal deformabilities.
	Lambda1 float64
	Lambda2 float64
}

// Option mutates a Config before validation.
type Option func(*Config)

// WithApproximant selects the waveform family.
func WithApproximant(name string) Option {
	return func(c *Config) { c.Approximant = name }
}

// WithMassRatio sets q = m1/m2.
func WithMassRatio(q float64) Option {
	return func(c *Config) { c.MassRatio = q }
}

// WithSpins sets the dimensionless spin vectors of both components.
func WithSpins(chi1, chi2 []float64) Option {
	return func(c *Config) {
		c.Spin1 = chi1
		c.Spin2 = chi2
	}
}

// WithTimeStep sets the sampling interval.
func WithTimeStep(dt float64) Option {
	return func(c *Config) { c.TimeStep = dt }
}

// WithStartFrequency sets the initial orbital angular frequency.
func WithStartFrequency(omega0 float64) Option {
	return func(c *Config) { c.StartFrequency = omega0 }
}

// WithEccentricity sets the initial orbital eccentricity.
func WithEccentricity(e float64) Option {
	return func(c *Config) { c.Eccentricity = e }
}

// WithMeanAnomaly sets the initial radial mean anomaly.
func WithMeanAnomaly(l float64) Option {
	return func(c *Config) { c.MeanAnomaly = l }
}

// WithTidalDeformabilities sets the dimensionless tidal parameters of
// both components.
func WithTidalDeformabilities(lambda1, lambda2 float64) Option {
	return func(c *Config) {
		c.Lambda1 = lambda1
		c.Lambda2 = lambda2
	}
}

// DefaultConfig returns an equal-mass, non-spinning, circular setup.
func DefaultConfig() Config {
	return Config{
		Approximant:    ApproximantEccentricTD,
		MassRatio:      1,
		Spin1:          []float64{0, 0, 0},
		Spin2:          []float64{0, 0, 0},
		TimeStep:       0.5,
		StartFrequency: 0.02,
	}
}

// Generator produces strain series for one parameter set.
type Generator struct {
	cfg Config
}

// New validates the parameter set and returns a ready generator.
func New(opts ...Option) (*Generator, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Approximant != ApproximantEccentricTD {
		return nil, fmt.Errorf("%w: %q", ErrApproximant, cfg.Approximant)
	}

	if cfg.MassRatio < 1 || math.IsNaN(cfg.MassRatio) {
		return nil, fmt.Errorf("%w, got %v", ErrMassRatio, cfg.MassRatio)
	}

	for i, chi := range [][]float64{cfg.Spin1, cfg.Spin2} {
		if err := validateSpin(chi); err != nil {
			return nil, fmt.Errorf("component %d: %w", i+1, err)
		}
	}

	if cfg.TimeStep <= 0 || math.IsNaN(cfg.TimeStep) {
		return nil, fmt.Errorf("%w, got %v", ErrTimeStep, cfg.TimeStep)
	}

	if cfg.StartFrequency <= 0 || math.IsNaN(cfg.StartFrequency) {
		return nil, fmt.Errorf("%w, got %v", ErrStartFrequency, cfg.StartFrequency)
	}

	if cfg.Eccentricity < 0 || cfg.Eccentricity >= 1 || math.IsNaN(cfg.Eccentricity) {
		return nil, fmt.Errorf("%w, got %v", ErrEccentricity, cfg.Eccentricity)
	}

	if cfg.MeanAnomaly < 0 || cfg.MeanAnomaly >= 2*math.Pi || math.IsNaN(cfg.MeanAnomaly) {
		return nil, fmt.Errorf("%w, got %v", ErrMeanAnomaly, cfg.MeanAnomaly)
	}

	if cfg.Lambda1 < 0 || cfg.Lambda2 < 0 ||
		math.IsNaN(cfg.Lambda1) || math.IsNaN(cfg.Lambda2) {
		return nil, ErrTidal
	}

	return &Generator{cfg: cfg}, nil
}

func validateSpin(chi []float64) error {
	if len(chi) != 3 {
		return fmt.Errorf("%w, got %d", ErrSpinLength, len(chi))
	}

	mag := math.Sqrt(chi[0]*chi[0] + chi[1]*chi[1] + chi[2]*chi[2])
	if mag > 1 || math.IsNaN(mag) {
		return fmt.Errorf("%w, got %v", ErrSpinMagnitude, mag)
	}

	if math.Abs(chi[0]) > inPlaneSpinTolerance || math.Abs(chi[1]) > inPlaneSpinTolerance {
		return ErrPrecessingSpin
	}

	return nil
}

// Generate evolves the inspiral from the start frequency until shortly
// before coalescence and returns the sampled (2,2) mode.
func (g *Generator) Generate() waveform.Data {
	cfg := g.cfg

	q := cfg.MassRatio
	nu := q / ((1 + q) * (1 + q))
	chiEff := (q*cfg.Spin1[2] + cfg.Spin2[2]) / (1 + q)

	omega0 := cfg.StartFrequency
	tc := 5 / (256 * nu) * math.Pow(omega0, -8.0/3)

	// Aligned spin delays coalescence at leading spin-orbit order.
	tc *= 1 + 113.0/24*chiEff*math.Pow(omega0, 1.0/3)

	// Cut the evolution before the chirp formally diverges.
	dt := cfg.TimeStep
	n := int(0.9 * tc / dt)

	t := make([]float64, n)
	h := make([]complex128, n)

	l := cfg.MeanAnomaly
	phi := 0.0

	for i := 0; i < n; i++ {
		ti := dt * float64(i)
		t[i] = ti

		omegaSec := omega0 * math.Pow(1-ti/tc, -3.0/8)
		e := cfg.Eccentricity * math.Pow(omegaSec/omega0, -19.0/18)

		osc := 1 + e*math.Cos(l)
		amp := nu * math.Pow(omegaSec, 2.0/3) * osc

		h[i] = complex(amp*math.Cos(2*phi), -amp*math.Sin(2*phi))

		// Advance phases with the frequency at the interval midpoint.
		omegaMid := omega0 * math.Pow(1-(ti+dt/2)/tc, -3.0/8)
		eMid := cfg.Eccentricity * math.Pow(omegaMid/omega0, -19.0/18)

		phi += omegaMid * (1 + 2*eMid*math.Cos(l+omegaMid*dt/2)) * dt
		l += omegaMid * dt
	}

	return waveform.Data{
		T:     t,
		Modes: map[waveform.Mode][]complex128{waveform.Mode22: h},
	}
}
