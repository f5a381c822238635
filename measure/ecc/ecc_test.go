package ecc

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-gw/extrema"
	"github.com/cwbudde/algo-gw/waveform"
)

// beatData synthesizes h22 with instantaneous frequency
// ω(t) = 1 + 0.1·cos(0.05 t) over t ∈ [0, 2000] at dt = 0.1 (about 16
// modulation cycles) and a parabolic amplitude peaking at t = 1000. The
// frame construction re-centers time on that peak, so frame times run from
// about -1000 to 1000.
func beatData(ampMod float64) waveform.Data {
	const (
		dt = 0.1
		n  = 20001
	)

	t := make([]float64, n)
	h := make([]complex128, n)

	for i := range t {
		ti := dt * float64(i)
		t[i] = ti

		amp := 2 - (ti-1000)*(ti-1000)*1e-6
		if ampMod != 0 {
			amp *= 1 + ampMod*math.Cos(0.05*ti)
		}

		phase := ti + 2*math.Sin(0.05*ti)
		h[i] = complex(amp*math.Cos(phase), -amp*math.Sin(phase))
	}

	return waveform.Data{T: t, Modes: map[waveform.Mode][]complex128{waveform.Mode22: h}}
}

// expectedBeatEcc is the analytic value for the beat signal:
// (√1.1 − √0.9)/(√1.1 + √0.9).
func expectedBeatEcc() float64 {
	return (math.Sqrt(1.1) - math.Sqrt(0.9)) / (math.Sqrt(1.1) + math.Sqrt(0.9))
}

func beatFrame(t *testing.T, ampMod float64) *waveform.Frame {
	t.Helper()

	f, err := waveform.NewFrame(beatData(ampMod))
	if err != nil {
		t.Fatal(err)
	}

	return f
}

func TestMeasureBeatSignal(t *testing.T) {
	est := New(beatFrame(t, 0))

	res, err := est.Measure(0)
	if err != nil {
		t.Fatal(err)
	}

	if res.Degenerate {
		t.Fatalf("unexpected degenerate result: %s", res.Diagnostic)
	}

	if math.Abs(res.Eccentricity-expectedBeatEcc()) > 1e-3 {
		t.Errorf("eccentricity = %v, want %v", res.Eccentricity, expectedBeatEcc())
	}

	// The periastron passages sit at t = 2πk/0.05 − 1000 after
	// re-centering; t = 0 falls at fraction 0.9578 of its interval.
	wantMA := 6.0178
	if math.Abs(res.MeanAnomaly-wantMA) > 0.02 {
		t.Errorf("mean anomaly = %v, want ≈ %v", res.MeanAnomaly, wantMA)
	}
}

func TestMeasureAtDetectedPeak(t *testing.T) {
	frame := beatFrame(t, 0)

	maxIdx, err := extrema.FrequencyFinder{}.Find(frame, extrema.Maxima, extrema.Params{})
	if err != nil {
		t.Fatal(err)
	}

	if len(maxIdx) < 4 {
		t.Fatalf("found %d maxima, want several", len(maxIdx))
	}

	est := New(frame)

	res, err := est.Measure(frame.Time[maxIdx[2]])
	if err != nil {
		t.Fatal(err)
	}

	if res.MeanAnomaly != 0 {
		t.Errorf("mean anomaly at a detected peak = %v, want 0", res.MeanAnomaly)
	}
}

func TestMeasureMeanAnomalyMonotonic(t *testing.T) {
	frame := beatFrame(t, 0)

	maxIdx, err := extrema.FrequencyFinder{}.Find(frame, extrema.Maxima, extrema.Params{})
	if err != nil {
		t.Fatal(err)
	}

	lo := frame.Time[maxIdx[3]]
	hi := frame.Time[maxIdx[4]]

	est := New(frame)

	const steps = 50

	prev := -1.0
	for i := 0; i < steps; i++ {
		tRef := lo + (hi-lo)*float64(i)/float64(steps)

		res, err := est.Measure(tRef)
		if err != nil {
			t.Fatal(err)
		}

		if res.MeanAnomaly < 0 || res.MeanAnomaly >= 2*math.Pi {
			t.Fatalf("mean anomaly %v outside [0, 2π)", res.MeanAnomaly)
		}

		if res.MeanAnomaly <= prev {
			t.Fatalf("mean anomaly not increasing at step %d: %v <= %v", i, res.MeanAnomaly, prev)
		}

		prev = res.MeanAnomaly
	}
}

func TestMeasureReferenceTimeOutOfBounds(t *testing.T) {
	est := New(beatFrame(t, 0))

	for _, tRef := range []float64{-990, 995, 2500} {
		_, err := est.Measure(tRef)
		if !errors.Is(err, ErrReferenceTime) {
			t.Errorf("Measure(%v) error = %v, want %v", tRef, err, ErrReferenceTime)
		}
	}
}

// circularData has constant instantaneous frequency: no periastron or
// apastron passages exist.
func circularData() waveform.Data {
	const (
		dt = 0.1
		n  = 20001
	)

	t := make([]float64, n)
	h := make([]complex128, n)

	for i := range t {
		ti := dt * float64(i)
		t[i] = ti
		amp := 2 - (ti-1000)*(ti-1000)*1e-6
		h[i] = complex(amp*math.Cos(ti), -amp*math.Sin(ti))
	}

	return waveform.Data{T: t, Modes: map[waveform.Mode][]complex128{waveform.Mode22: h}}
}

func TestMeasureCircularDegenerate(t *testing.T) {
	frame, err := waveform.NewFrame(circularData())
	if err != nil {
		t.Fatal(err)
	}

	// A prominence floor well above rounding noise leaves no detectable
	// extrema on a constant-frequency signal.
	est := New(frame, WithDetection(extrema.Params{Prominence: extrema.AtLeast(1e-6)}))

	res, err := est.Measure(123)
	if err != nil {
		t.Fatal(err)
	}

	if !res.Degenerate {
		t.Fatal("result not marked degenerate")
	}

	if res.Eccentricity != 0 || res.MeanAnomaly != 0 {
		t.Errorf("degenerate result = (%v, %v), want (0, 0)", res.Eccentricity, res.MeanAnomaly)
	}

	if res.Diagnostic == "" {
		t.Error("degenerate result carries no diagnostic")
	}
}

func TestMeasureCircularNearZero(t *testing.T) {
	// Without constraints, rounding noise may still produce formal
	// extrema on a circular signal; the measured eccentricity must then
	// be indistinguishable from zero.
	frame, err := waveform.NewFrame(circularData())
	if err != nil {
		t.Fatal(err)
	}

	res, err := New(frame).Measure(0)
	if errors.Is(err, ErrReferenceTime) {
		// Rounding-noise extrema need not bracket the reference time.
		return
	}
	if err != nil {
		t.Fatal(err)
	}

	if !res.Degenerate && math.Abs(res.Eccentricity) > 1e-9 {
		t.Errorf("eccentricity = %v, want ≈ 0", res.Eccentricity)
	}
}

func TestMeasureShapeInvariance(t *testing.T) {
	est := New(beatFrame(t, 0))

	single, err := est.Measure(5)
	if err != nil {
		t.Fatal(err)
	}

	series, err := est.MeasureSeries([]float64{5})
	if err != nil {
		t.Fatal(err)
	}

	if len(series) != 1 {
		t.Fatalf("series length = %d, want 1", len(series))
	}

	if series[0] != single {
		t.Errorf("scalar result %+v differs from series result %+v", single, series[0])
	}
}

func TestMeasureSeriesOrder(t *testing.T) {
	est := New(beatFrame(t, 0))

	tRefs := []float64{-200, 0, 300}

	series, err := est.MeasureSeries(tRefs)
	if err != nil {
		t.Fatal(err)
	}

	if len(series) != len(tRefs) {
		t.Fatalf("series length = %d, want %d", len(series), len(tRefs))
	}

	for i, res := range series {
		if math.Abs(res.Eccentricity-expectedBeatEcc()) > 1e-3 {
			t.Errorf("eccentricity[%d] = %v, want %v", i, res.Eccentricity, expectedBeatEcc())
		}
	}
}

func TestMeasureWithAutoSeparation(t *testing.T) {
	est := New(beatFrame(t, 0), WithAutoSeparation())

	res, err := est.Measure(0)
	if err != nil {
		t.Fatal(err)
	}

	if res.Degenerate {
		t.Fatalf("unexpected degenerate result: %s", res.Diagnostic)
	}

	if math.Abs(res.Eccentricity-expectedBeatEcc()) > 1e-3 {
		t.Errorf("eccentricity = %v, want %v", res.Eccentricity, expectedBeatEcc())
	}
}

func TestMeasureWithAmplitudeFinder(t *testing.T) {
	est := New(beatFrame(t, 0.05), WithFinder(extrema.AmplitudeFinder{}))

	res, err := est.Measure(0)
	if err != nil {
		t.Fatal(err)
	}

	if res.Degenerate {
		t.Fatalf("unexpected degenerate result: %s", res.Diagnostic)
	}

	if res.Eccentricity < 0.01 {
		t.Errorf("eccentricity = %v, want clearly nonzero", res.Eccentricity)
	}
}

func TestSaveDiagnosticPlot(t *testing.T) {
	est := New(beatFrame(t, 0))

	path := filepath.Join(t.TempDir(), "diag.png")
	if err := est.SaveDiagnosticPlot(path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if info.Size() == 0 {
		t.Error("diagnostic plot file is empty")
	}
}
