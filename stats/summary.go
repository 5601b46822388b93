// Package stats summarises correction values: streaming moments,
// histograms, resolution folding and plots.
package stats

import "math"

// Summary holds statistics of a set of correction values.
type Summary struct {
	N        int
	Mean     float64
	RMS      float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Variance float64
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
	Zeros    int     // values exactly 0, e.g. low-momentum placeholders
}

// Accumulator computes a Summary incrementally using Welford's online
// algorithm for the higher-order moments.
type Accumulator struct {
	n       int
	mean    float64
	m2      float64
	m3      float64
	m4      float64
	sumSq   float64
	maxVal  float64
	maxPos  int
	minVal  float64
	minPos  int
	zeros   int
	hasData bool
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add folds one value into the running statistics.
func (a *Accumulator) Add(x float64) {
	a.n++
	ni := float64(a.n)

	delta := x - a.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(a.n-1)

	a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
	a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
	a.m2 += term1
	a.mean += deltaN

	a.sumSq += x * x

	if x == 0 {
		a.zeros++
	}

	if !a.hasData {
		a.maxVal, a.maxPos = x, a.n-1
		a.minVal, a.minPos = x, a.n-1
		a.hasData = true
		return
	}

	if x > a.maxVal {
		a.maxVal, a.maxPos = x, a.n-1
	}
	if x < a.minVal {
		a.minVal, a.minPos = x, a.n-1
	}
}

// Update adds a block of values.
func (a *Accumulator) Update(values []float64) {
	for _, x := range values {
		a.Add(x)
	}
}

// Result computes the statistics of all values added so far.
func (a *Accumulator) Result() Summary {
	if a.n == 0 {
		return Summary{}
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Summary{
		N:        a.n,
		Mean:     a.mean,
		RMS:      math.Sqrt(a.sumSq / nf),
		Min:      a.minVal,
		MinPos:   a.minPos,
		Max:      a.maxVal,
		MaxPos:   a.maxPos,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
		Zeros:    a.zeros,
	}
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Calculate computes the Summary of values in one pass.
func Calculate(values []float64) Summary {
	var a Accumulator
	a.Update(values)
	return a.Result()
}
