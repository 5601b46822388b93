package kernel

import (
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	Global.Register(OpEntry{
		Name:      "vecmath-avx2",
		SIMDLevel: cpu.SIMDAVX2,
		Priority:  20,
		Eval:      EvalVecmath,
	})
	Global.Register(OpEntry{
		Name:      "vecmath-sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,
		Eval:      EvalVecmath,
	})
	Global.Register(OpEntry{
		Name:      "vecmath-neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,
		Eval:      EvalVecmath,
	})
}

// EvalVecmath builds each term with vectorized block multiplies in the
// same association order as EvalGeneric, (C*x)*x and ((D*x)*x)*x, then sums
// the terms left to right. Results are bit-identical to EvalGeneric.
func EvalVecmath(dst, x, coeffs []float64) {
	if len(dst) != len(x) {
		panic("kernel: dst and x length mismatch")
	}

	n := len(x)
	if n == 0 {
		return
	}

	switch len(coeffs) {
	case 3:
		a := coeffs[0]
		bx, cxx := termBlock(x, coeffs[1], 1), termBlock(x, coeffs[2], 2)
		for i := range dst {
			dst[i] = a + bx[i] + cxx[i]
		}
	case 4:
		a := coeffs[0]
		bx, cxx, dxxx := termBlock(x, coeffs[1], 1), termBlock(x, coeffs[2], 2), termBlock(x, coeffs[3], 3)
		for i := range dst {
			dst[i] = a + bx[i] + cxx[i] + dxxx[i]
		}
	default:
		EvalGeneric(dst, x, coeffs)
	}
}

// termBlock returns ((k*x)*x)... with power factors of x.
func termBlock(x []float64, k float64, power int) []float64 {
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, k)
	for ; power > 1; power-- {
		vecmath.MulBlockInPlace(out, x)
	}

	return out
}
