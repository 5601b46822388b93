package stats

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
)

// Errors returned by the histogram and folding helpers.
var (
	ErrInvalidBinning = errors.New("stats: invalid binning")
	ErrEmptyInput     = errors.New("stats: empty input")
	ErrInvalidWidth   = errors.New("stats: invalid fold width")
)

// Histogram is a fixed-binning 1D histogram of correction values.
type Histogram struct {
	h         *hbook.H1D
	underflow int
	overflow  int
}

// NewHistogram creates a histogram with n equal bins over [lo, hi).
func NewHistogram(n int, lo, hi float64) (*Histogram, error) {
	if n <= 0 || !(lo < hi) {
		return nil, fmt.Errorf("%w: %d bins over [%g, %g)", ErrInvalidBinning, n, lo, hi)
	}

	return &Histogram{h: hbook.NewH1D(n, lo, hi)}, nil
}

// Fill adds one unit-weight entry.
func (h *Histogram) Fill(x float64) {
	switch {
	case x < h.h.XMin():
		h.underflow++
	case x >= h.h.XMax():
		h.overflow++
	}

	h.h.Fill(x, 1)
}

// FillAll adds every value.
func (h *Histogram) FillAll(values []float64) {
	for _, x := range values {
		h.Fill(x)
	}
}

// Len returns the number of bins.
func (h *Histogram) Len() int {
	return h.h.Len()
}

// Counts returns the sum of weights in each bin.
func (h *Histogram) Counts() []float64 {
	out := make([]float64, h.h.Len())
	for i := range out {
		_, out[i] = h.h.XY(i)
	}

	return out
}

// Edges returns the n+1 bin edges.
func (h *Histogram) Edges() []float64 {
	bins := h.h.Binning.Bins
	out := make([]float64, len(bins)+1)
	for i, b := range bins {
		out[i] = b.XMin()
	}
	out[len(bins)] = bins[len(bins)-1].XMax()

	return out
}

// Entries returns the number of fills, including out-of-range ones.
func (h *Histogram) Entries() int64 {
	return h.h.Entries()
}

// Underflow returns the number of fills below the first bin.
func (h *Histogram) Underflow() int {
	return h.underflow
}

// Overflow returns the number of fills at or above the last edge.
func (h *Histogram) Overflow() int {
	return h.overflow
}

// Mean returns the mean of the in-range fills, or NaN when no fill landed
// in a bin. Outflows are excluded, unlike hbook's XMean.
func (h *Histogram) Mean() float64 {
	m := h.inRange()
	if m.sumW == 0 {
		return math.NaN()
	}
	return m.sumWX / m.sumW
}

// StdDev returns the weighted standard deviation of the in-range fills,
// using the same unbiased estimator as hbook.
func (h *Histogram) StdDev() float64 {
	m := h.inRange()
	den := m.sumW*m.sumW - m.sumW2
	if den == 0 {
		return math.NaN()
	}
	return math.Sqrt(math.Abs((m.sumWX2*m.sumW - m.sumWX*m.sumWX) / den))
}

type moments struct {
	sumW, sumW2, sumWX, sumWX2 float64
}

func (h *Histogram) inRange() moments {
	var m moments
	for i := range h.h.Binning.Bins {
		d := &h.h.Binning.Bins[i].Dist
		m.sumW += d.SumW()
		m.sumW2 += d.SumW2()
		m.sumWX += d.SumWX()
		m.sumWX2 += d.SumWX2()
	}
	return m
}

// H1D exposes the underlying hbook histogram.
func (h *Histogram) H1D() *hbook.H1D {
	return h.h
}
