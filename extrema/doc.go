// Package extrema locates periastron and apastron passages in a waveform
// frame: local maxima and minima of the instantaneous frequency (or, for the
// amplitude strategy, of |h22|).
//
// Detection is pluggable through the [Finder] interface. Four strategies are
// provided:
//
//   - [FrequencyFinder]:    constraint-filtered peaks of ω(t) (the default)
//   - [AmplitudeFinder]:    the same engine over the waveform amplitude
//   - [WidthFinder]:        fixed-width comparator (strictly greater than all
//     neighbors within an order window)
//   - [ZeroCrossingFinder]: sign changes of dω/dt
//
// [Params] carries the candidate constraints (height, threshold, distance,
// prominence, width, plateau size), with the same semantics for every
// strategy that honors them. Minima detection always runs the maxima
// procedure on the negated signal, so bounds for minima apply to -ω.
//
// [EstimatePeriod] estimates the dominant radial modulation period of ω by
// FFT, used to derive a sensible default separation constraint.
package extrema
