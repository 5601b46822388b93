package pmu

// quadratic evaluates A + B*x + C*x*x term by term, left to right. The
// float64 conversions keep every product rounded (no fused multiply-add),
// so the block kernels reproduce the result bit for bit.
func quadratic(x, a, b, c float64) float64 {
	return a + float64(b*x) + float64(c*x*x)
}

// cubic evaluates A + B*x + C*x*x + D*x*x*x the same way.
func cubic(x, a, b, c, d float64) float64 {
	return a + float64(b*x) + float64(c*x*x) + float64(d*x*x*x)
}

// evalPoly evaluates a coefficient set given in ascending power order.
// An empty set evaluates to 0.
func evalPoly(x float64, coeffs []float64) float64 {
	switch len(coeffs) {
	case 0:
		return 0
	case 3:
		return quadratic(x, coeffs[0], coeffs[1], coeffs[2])
	case 4:
		return cubic(x, coeffs[0], coeffs[1], coeffs[2], coeffs[3])
	default:
		// Validate rejects other degrees; fall back to Horner for
		// hand-built regions that skipped it.
		y := 0.0
		for i := len(coeffs) - 1; i >= 0; i-- {
			y = y*x + coeffs[i]
		}

		return y
	}
}
