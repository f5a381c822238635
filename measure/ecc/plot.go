package ecc

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveDiagnosticPlot renders the instantaneous frequency, the detected
// extrema and the two fitted envelopes to a PNG file. It runs the same
// detection pipeline as Measure and has no effect on measurements. For a
// degenerate signal only the frequency curve is drawn.
func (e *Estimator) SaveDiagnosticPlot(path string) error {
	an, err := e.analyze()
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Instantaneous frequency extrema"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "omega"

	omegaPts := make(plotter.XYs, e.frame.Len())
	for i := range omegaPts {
		omegaPts[i] = plotter.XY{X: e.frame.Time[i], Y: e.frame.Omega[i]}
	}

	omegaLine, err := plotter.NewLine(omegaPts)
	if err != nil {
		return fmt.Errorf("ecc: plot: %w", err)
	}

	omegaLine.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	omegaLine.Width = vg.Points(1)
	p.Add(omegaLine)
	p.Legend.Add("omega", omegaLine)

	if !an.degenerate {
		if err := e.addEnvelope(p, an.maxIdx, an.peaks, "periastron",
			color.RGBA{R: 200, B: 40, A: 255}); err != nil {
			return err
		}

		if err := e.addEnvelope(p, an.minIdx, an.troughs, "apastron",
			color.RGBA{B: 200, G: 80, A: 255}); err != nil {
			return err
		}
	}

	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("ecc: save plot: %w", err)
	}

	return nil
}

// addEnvelope draws one extrema set and its interpolant.
func (e *Estimator) addEnvelope(p *plot.Plot, idx []int, env interpolantEvaluator, name string, c color.Color) error {
	pts := make(plotter.XYs, len(idx))
	for i, j := range idx {
		pts[i] = plotter.XY{X: e.frame.Time[j], Y: e.frame.Omega[j]}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("ecc: plot: %w", err)
	}

	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(scatter)
	p.Legend.Add(name, scatter)

	lo := e.frame.Time[idx[0]]
	hi := e.frame.Time[idx[len(idx)-1]]

	const samples = 400

	envPts := make(plotter.XYs, samples)
	for i := range envPts {
		x := lo + (hi-lo)*float64(i)/float64(samples-1)
		envPts[i] = plotter.XY{X: x, Y: env.Evaluate(x)}
	}

	line, err := plotter.NewLine(envPts)
	if err != nil {
		return fmt.Errorf("ecc: plot: %w", err)
	}

	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)

	return nil
}

// interpolantEvaluator is the subset of the spline interpolant the plot
// needs.
type interpolantEvaluator interface {
	Evaluate(x float64) float64
}
