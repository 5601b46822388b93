// Package pmu provides the momentum-dependent correction for reconstructed
// muon momentum used by the CC0pi event selection.
//
// The correction is a piecewise polynomial in the reconstructed momentum p
// (GeV). Contained and uncontained tracks use disjoint sets of fits; the
// contained branch additionally consults a muon-quality flag below 0.2 GeV.
//
// # Usage
//
// For single events use the package-level function:
//
//	c, err := pmu.Correct(p, contained, muQuality)
//	if errors.Is(err, pmu.ErrOutOfRange) {
//		// skip the event or abort the run
//	}
//
// For many events use a Corrector and the block API:
//
//	err := pmu.Default().CorrectBlock(dst, p, contained, muQuality)
//
// # Regions
//
// Each branch is a Table of Regions evaluated in order, first match wins.
// Regions partition [0, +Inf); negative, NaN and infinite momenta match no
// region and produce a *RangeError wrapping ErrOutOfRange. Momenta at or
// below 0.2 GeV return a literal 0 for the contained/quality-failing and the
// uncontained cases; these placeholders are inherited from the reference
// analysis and are not a fitted value.
//
// Alternative fits can be loaded from YAML with LoadTables.
package pmu
