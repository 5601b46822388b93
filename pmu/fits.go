package pmu

import "math"

// Fit parameters for contained tracks (MicroBooNE-doc-41275).
const (
	cR1A = 0.59
	cR1B = -6.89
	cR1C = 20.63
	cR2A = 0.03
	cR2B = -0.010
	cR2C = -0.014
	cR3A = 1.96
	cR3B = -3.35
	cR3C = 1.97
	cR3D = -0.41
)

// Fit parameters for uncontained tracks.
const (
	uR1A = 0.18
	uR1B = -0.15
	uR1C = -0.02
	uR2A = -0.98
	uR2B = 1.63
	uR2C = -0.73
	uR3A = 1.9
	uR3B = -1.34
	uR3C = 0.03
)

// UncontainedR4 is a fourth uncontained quadratic fit (A, B, C) that ships
// with the reference fits. No region selects it.
var UncontainedR4 = [3]float64{3.42119, -2.19198, 0.160376}

// Region boundaries in GeV.
const (
	lowMomentumEdge     = 0.2
	containedHighEdge   = 1.5
	uncontainedMidEdge  = 1.2
	uncontainedHighEdge = 2.2
)

// ContainedTable returns the built-in fits for fully contained tracks.
func ContainedTable() Table {
	inf := math.Inf(1)

	return Table{
		Name: "contained",
		Regions: []Region{
			{Name: "R0", Min: 0, Max: lowMomentumEdge, MinInclusive: true, MaxInclusive: true, Quality: QualityFail},
			{
				Name: "R1", Min: 0, Max: lowMomentumEdge, MinInclusive: true, MaxInclusive: true, Quality: QualityPass,
				Coeffs: []float64{cR1A, cR1B, cR1C},
			},
			{
				Name: "R2", Min: lowMomentumEdge, Max: containedHighEdge,
				Coeffs: []float64{cR2A, cR2B, cR2C},
			},
			{
				Name: "R3", Min: containedHighEdge, Max: inf, MinInclusive: true,
				Coeffs: []float64{cR3A, cR3B, cR3C, cR3D},
			},
		},
	}
}

// UncontainedTable returns the built-in fits for exiting tracks.
func UncontainedTable() Table {
	inf := math.Inf(1)

	return Table{
		Name: "uncontained",
		Regions: []Region{
			{Name: "U0", Min: 0, Max: lowMomentumEdge, MinInclusive: true, MaxInclusive: true},
			{
				Name: "U1", Min: lowMomentumEdge, Max: uncontainedMidEdge,
				Coeffs: []float64{uR1A, uR1B, uR1C},
			},
			{
				Name: "U2", Min: uncontainedMidEdge, Max: uncontainedHighEdge, MinInclusive: true,
				Coeffs: []float64{uR2A, uR2B, uR2C},
			},
			{
				Name: "U3", Min: uncontainedHighEdge, Max: inf, MinInclusive: true,
				Coeffs: []float64{uR3A, uR3B, uR3C},
			},
		},
	}
}
