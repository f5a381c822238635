// Command gwecc measures orbital eccentricity and mean anomaly of a
// synthesized eccentric inspiral.
//
// Usage:
//
//	gwecc [flags]
//
// Without -tref it measures at the midpoint of the detected periastron
// span.
//
// Examples:
//
//	gwecc -ecc 0.1
//	gwecc -q 2 -ecc 0.05 -tref -800,-400,0
//	gwecc -ecc 0.1 -finder amplitude -plot diag.png
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-gw/extrema"
	"github.com/cwbudde/algo-gw/inspiral"
	"github.com/cwbudde/algo-gw/measure/ecc"
	"github.com/cwbudde/algo-gw/waveform"
)

var finders = map[string]extrema.Finder{
	"frequency": extrema.FrequencyFinder{},
	"amplitude": extrema.AmplitudeFinder{},
	"width":     extrema.WidthFinder{},
	"zeros":     extrema.ZeroCrossingFinder{},
}

func main() {
	q := flag.Float64("q", 1, "mass ratio m1/m2 (>= 1)")
	e0 := flag.Float64("ecc", 0.1, "initial orbital eccentricity")
	l0 := flag.Float64("anomaly", 0, "initial mean anomaly in radians")
	chi1 := flag.Float64("chi1", 0, "aligned spin of the primary")
	chi2 := flag.Float64("chi2", 0, "aligned spin of the secondary")
	dt := flag.Float64("dt", 0.5, "sampling interval in geometric units")
	omega0 := flag.Float64("omega0", 0.02, "initial orbital angular frequency")
	trefArg := flag.String("tref", "", "comma-separated reference times (frame time)")
	finderName := flag.String("finder", "frequency", "extremum finder: frequency, amplitude, width, zeros")
	auto := flag.Bool("auto", false, "derive the minimum extremum separation from the radial period")
	plotPath := flag.String("plot", "", "write a diagnostic plot PNG to this path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gwecc [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Synthesizes an eccentric inspiral and measures its eccentricity\n")
		fmt.Fprintf(os.Stderr, "and mean anomaly at one or more reference times.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gwecc -ecc 0.1\n")
		fmt.Fprintf(os.Stderr, "  gwecc -q 2 -ecc 0.05 -tref -800,-400,0\n")
		fmt.Fprintf(os.Stderr, "  gwecc -ecc 0.1 -finder amplitude -plot diag.png\n")
	}
	flag.Parse()

	finder, ok := finders[*finderName]
	if !ok {
		fail(fmt.Errorf("unknown finder %q", *finderName))
	}

	gen, err := inspiral.New(
		inspiral.WithMassRatio(*q),
		inspiral.WithSpins([]float64{0, 0, *chi1}, []float64{0, 0, *chi2}),
		inspiral.WithTimeStep(*dt),
		inspiral.WithStartFrequency(*omega0),
		inspiral.WithEccentricity(*e0),
		inspiral.WithMeanAnomaly(*l0),
	)
	if err != nil {
		fail(err)
	}

	frame, err := waveform.NewFrame(gen.Generate())
	if err != nil {
		fail(err)
	}

	opts := []ecc.Option{ecc.WithFinder(finder)}
	if *auto {
		opts = append(opts, ecc.WithAutoSeparation())
	}

	est := ecc.New(frame, opts...)

	tRefs, err := parseTRefs(*trefArg, frame, finder)
	if err != nil {
		fail(err)
	}

	results, err := est.MeasureSeries(tRefs)
	if err != nil {
		fail(err)
	}

	printResults(tRefs, results)

	if *plotPath != "" {
		if err := est.SaveDiagnosticPlot(*plotPath); err != nil {
			fail(err)
		}
		fmt.Printf("\ndiagnostic plot written to %s\n", *plotPath)
	}
}

// parseTRefs reads the -tref list, or defaults to the midpoint of the
// detected periastron span.
func parseTRefs(arg string, frame *waveform.Frame, finder extrema.Finder) ([]float64, error) {
	if arg == "" {
		idx, err := finder.Find(frame, extrema.Maxima, extrema.Params{})
		if err != nil {
			return nil, err
		}
		if len(idx) < 2 {
			return nil, fmt.Errorf("only %d extrema detected, cannot pick a default reference time", len(idx))
		}
		mid := (frame.Time[idx[0]] + frame.Time[idx[len(idx)-1]]) / 2
		return []float64{mid}, nil
	}

	var out []float64
	for _, field := range strings.Split(arg, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid reference time %q", field)
		}
		out = append(out, v)
	}
	return out, nil
}

func printResults(tRefs []float64, results []ecc.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "t_ref\teccentricity\tmean anomaly\tnote")
	for i, res := range results {
		note := "-"
		if res.Degenerate {
			note = res.Diagnostic
		}
		fmt.Fprintf(w, "%.4g\t%.6f\t%.6f\t%s\n", tRefs[i], res.Eccentricity, res.MeanAnomaly, note)
	}
	w.Flush()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
