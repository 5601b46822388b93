package stats

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// GaussianKernel returns a normalized Gaussian with the given width in
// bins, truncated at four standard deviations. The kernel has odd length
// and is centred on its middle sample.
func GaussianKernel(sigmaBins float64) []float64 {
	half := int(math.Ceil(4 * sigmaBins))
	k := make([]float64, 2*half+1)

	sum := 0.0
	for i := range k {
		x := float64(i-half) / sigmaBins
		k[i] = math.Exp(-0.5 * x * x)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}

	return k
}

// Fold smears a binned spectrum with a Gaussian resolution of sigmaBins
// bins. The convolution is done in the frequency domain and the output has
// the same length as counts, aligned bin for bin. Content that would leak
// past either end of the spectrum is dropped. A non-positive width returns
// a copy of counts; NaN or +Inf returns ErrInvalidWidth.
func Fold(counts []float64, sigmaBins float64) ([]float64, error) {
	if len(counts) == 0 {
		return nil, ErrEmptyInput
	}

	if math.IsNaN(sigmaBins) || math.IsInf(sigmaBins, 1) {
		return nil, fmt.Errorf("%w: %g bins", ErrInvalidWidth, sigmaBins)
	}
	if sigmaBins <= 0 {
		return append([]float64(nil), counts...), nil
	}

	kernel := GaussianKernel(sigmaBins)
	n, m := len(counts), len(kernel)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i, v := range counts {
		aPadded[i] = complex(v, 0)
	}
	for i, v := range kernel {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("stats: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("stats: forward FFT failed: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	full := make([]complex128, fftSize)
	if err := plan.Inverse(full, aFreq); err != nil {
		return nil, fmt.Errorf("stats: inverse FFT failed: %w", err)
	}

	// Keep the "same" part of the linear convolution.
	offset := (m - 1) / 2
	out := make([]float64, n)
	for i := range out {
		v := real(full[i+offset])
		if math.Abs(v) < 1e-12 {
			v = 0
		}
		out[i] = v
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
