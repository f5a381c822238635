// Package ecc measures orbital eccentricity and mean anomaly from the
// dominant-mode waveform of a compact binary.
//
// The estimator locates maxima and minima of the instantaneous frequency
// (periastron and apastron passages), interpolates smooth frequency
// envelopes through each set, and evaluates the normalized estimator
//
//	ecc(t) = (√ω_p(t) − √ω_a(t)) / (√ω_p(t) + √ω_a(t))
//
// at the requested reference time, where ω_p and ω_a are the periastron and
// apastron envelope values. The mean anomaly is the angular fraction of the
// enclosing periastron-to-periastron interval:
//
//	l(t) = 2π (t − t_k) / (t_{k+1} − t_k),  t_k <= t < t_{k+1}
//
// # Usage
//
//	frame, err := waveform.NewFrame(data)
//	if err != nil {
//	    // malformed waveform
//	}
//	est := ecc.New(frame)
//	res, err := est.Measure(tRef)
//
// When fewer than two maxima or minima are found, the signal is
// indistinguishable from a circular orbit: Measure then reports a zero
// result with Degenerate set and a diagnostic string, not an error. A
// reference time outside the span of the detected periastron passages is an
// error; mean anomaly is never extrapolated or clamped.
//
// Estimators are cheap to construct and hold no mutable state; independent
// instances may run concurrently.
package ecc
