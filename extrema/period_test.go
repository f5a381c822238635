package extrema

import (
	"math"
	"testing"
)

func TestEstimatePeriodRecoversModulation(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		dt     float64
		n      int
	}{
		{"many cycles", 125.66, 0.5, 4000},
		{"few cycles", 40, 0.25, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := modulatedFrame(1.0, 0.1, tt.period, tt.dt, tt.n)

			got, err := EstimatePeriod(f)
			if err != nil {
				t.Fatal(err)
			}

			if math.Abs(got-tt.period)/tt.period > 0.05 {
				t.Errorf("period = %v, want %v within 5%%", got, tt.period)
			}
		})
	}
}

func TestEstimatePeriodShortSignal(t *testing.T) {
	f := modulatedFrame(1.0, 0.1, 10, 0.1, 8)

	_, err := EstimatePeriod(f)
	if err != ErrShortSignal {
		t.Errorf("EstimatePeriod error = %v, want %v", err, ErrShortSignal)
	}
}
