// Package waveform turns a raw compact-binary waveform (a time grid plus the
// complex dominant (2,2) mode) into the derived quantities the eccentricity
// measurement works on.
//
// A [Frame] holds four equal-length sequences:
//
//   - Time:      input times re-centered so the amplitude peak sits at t ≈ 0
//   - Amplitude: |h22|
//   - Phase:     -unwrap(arg h22), so the phase increases through an inspiral
//   - Omega:     dPhase/dTime, the instantaneous frequency proxy
//
// The amplitude peak is located to sub-sample accuracy by a quadratic fit
// through the five samples around the argmax, so Time == 0 generally falls
// between grid points.
//
// Frames are immutable once constructed and safe for concurrent reads.
package waveform
