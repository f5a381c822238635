// Package inspiral synthesizes (2,2)-mode strain series for eccentric
// compact-binary inspirals from a leading-order post-Newtonian model.
//
// The generator evolves a secular orbital frequency through the Newtonian
// chirp
//
//	ω(t) = ω₀ · (1 − t/tc)^(−3/8)
//	tc   = 5 / (256 ν) · ω₀^(−8/3)
//
// where ν = q/(1+q)² is the symmetric mass ratio, and superposes the
// epicyclic modulation of a small residual eccentricity
//
//	e(t)      = e₀ · (ω(t)/ω₀)^(−19/18)
//	ω_inst(t) = ω(t) · (1 + 2 e(t) cos l(t))
//
// with l the radial mean anomaly. The strain follows the quadrupole
// amplitude scaling
//
//	h₂₂(t) = ν ω(t)^(2/3) (1 + e(t) cos l(t)) · exp(−2iφ(t))
//
// with φ the accumulated orbital phase. Aligned spin components enter
// through a leading-order spin-orbit correction to the coalescence time;
// tidal deformabilities are validated for range but do not contribute at
// this order. The supported approximant family is aligned-spin, so spins
// with significant in-plane components are rejected.
//
// Usage:
//
//	gen, err := inspiral.New(
//		inspiral.WithMassRatio(2),
//		inspiral.WithEccentricity(0.1),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data := gen.Generate()
//	frame, err := waveform.NewFrame(data)
package inspiral
