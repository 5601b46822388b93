package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Global.Register(OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Eval:      EvalGeneric,
	})
}

// EvalGeneric is the scalar reference kernel. Quadratics and cubics are
// evaluated term by term, A + B*x + C*x*x [+ D*x*x*x], with every product
// rounded before it is added.
func EvalGeneric(dst, x, coeffs []float64) {
	if len(dst) != len(x) {
		panic("kernel: dst and x length mismatch")
	}

	switch len(coeffs) {
	case 0:
		for i := range dst {
			dst[i] = 0
		}
	case 3:
		a, b, c := coeffs[0], coeffs[1], coeffs[2]
		for i, v := range x {
			dst[i] = a + float64(b*v) + float64(c*v*v)
		}
	case 4:
		a, b, c, d := coeffs[0], coeffs[1], coeffs[2], coeffs[3]
		for i, v := range x {
			dst[i] = a + float64(b*v) + float64(c*v*v) + float64(d*v*v*v)
		}
	default:
		horner(dst, x, coeffs)
	}
}

func horner(dst, x, coeffs []float64) {
	for i, v := range x {
		y := 0.0
		for k := len(coeffs) - 1; k >= 0; k-- {
			y = y*v + coeffs[k]
		}
		dst[i] = y
	}
}
