package spline

import (
	"math"
	"testing"
)

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name    string
		xs      []float64
		ys      []float64
		params  Params
		wantErr error
	}{
		{"one point", []float64{1}, []float64{1}, Params{}, ErrInsufficientPoints},
		{"empty", nil, nil, Params{}, ErrInsufficientPoints},
		{"length mismatch", []float64{1, 2}, []float64{1}, Params{}, ErrLengthMismatch},
		{"not increasing", []float64{1, 1, 2}, []float64{1, 2, 3}, Params{}, ErrNotIncreasing},
		{"bad degree", []float64{1, 2, 3}, []float64{1, 2, 3}, Params{Degree: 2}, ErrDegree},
		{"bad weights", []float64{1, 2, 3}, []float64{1, 2, 3}, Params{Weights: []float64{1}}, ErrWeights},
		{"inverted box", []float64{1, 2, 3}, []float64{1, 2, 3}, Params{Bounds: &Box{Lo: 3, Hi: 1}}, ErrBounds},
		{
			"box leaves one point",
			[]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4},
			Params{Bounds: &Box{Lo: 1.5, Hi: 2.5}},
			ErrInsufficientPoints,
		},
		{
			"non-finite with check",
			[]float64{1, 2, 3}, []float64{1, math.NaN(), 3},
			Params{CheckFinite: true},
			ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.xs, tt.ys, tt.params)
			if err != tt.wantErr {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInterpolantPassesThroughNodes(t *testing.T) {
	xs := []float64{0, 1, 2.5, 4, 5, 7}
	ys := []float64{1, -1, 3, 0.5, 2, -2}

	for _, degree := range []int{1, 3} {
		in, err := Build(xs, ys, Params{Degree: degree})
		if err != nil {
			t.Fatal(err)
		}

		for i := range xs {
			got := in.Evaluate(xs[i])
			if math.Abs(got-ys[i]) > 1e-9 {
				t.Errorf("degree %d: Evaluate(%v) = %v, want %v", degree, xs[i], got, ys[i])
			}
		}
	}
}

func TestInterpolantLinearExact(t *testing.T) {
	// A cubic fit through samples of a straight line reproduces the line
	// between nodes.
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 5, 7, 9}

	in, err := Build(xs, ys, Params{})
	if err != nil {
		t.Fatal(err)
	}

	for x := 0.0; x <= 4.0; x += 0.125 {
		want := 1 + 2*x
		if got := in.Evaluate(x); math.Abs(got-want) > 1e-9 {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestExtrapolationPolicies(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 2, 3}

	tests := []struct {
		name string
		ext  Extrapolation
		x    float64
		want float64
	}{
		{"flat below", Flat, -2, 0},
		{"flat above", Flat, 5, 3},
		{"extend below", Extend, -2, -2},
		{"extend above", Extend, 5, 5},
		{"zero below", Zero, -2, 0},
		{"zero above", Zero, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Build(xs, ys, Params{Degree: 1, Extrapolation: tt.ext})
			if err != nil {
				t.Fatal(err)
			}

			if got := in.Evaluate(tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestBoundaryBoxRestrictsFit(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := []float64{100, 1, 2, 3, 4, 100}

	in, err := Build(xs, ys, Params{Degree: 1, Bounds: &Box{Lo: 1, Hi: 4}})
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := in.Domain()
	if lo != 1 || hi != 4 {
		t.Fatalf("Domain() = [%v, %v], want [1, 4]", lo, hi)
	}

	// Outside the box the flat policy returns the box-edge values, not the
	// excluded samples.
	if got := in.Evaluate(0); got != 1 {
		t.Errorf("Evaluate(0) = %v, want 1", got)
	}

	if got := in.Evaluate(5); got != 4 {
		t.Errorf("Evaluate(5) = %v, want 4", got)
	}
}

func TestEvaluateAllShape(t *testing.T) {
	in, err := Build([]float64{0, 1, 2}, []float64{0, 1, 4}, Params{})
	if err != nil {
		t.Fatal(err)
	}

	out := in.EvaluateAll([]float64{0, 0.5, 1, 1.5, 2})
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}

	if out[0] != 0 || math.Abs(out[4]-4) > 1e-12 {
		t.Errorf("endpoint values = %v, %v, want 0, 4", out[0], out[4])
	}
}
