package stats

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-cc0pi/internal/testutil"
)

const tolerance = 1e-10

func TestCalculate_Basic(t *testing.T) {
	s := Calculate([]float64{0, -0.14, 0.006, 0, 0.3})

	if s.N != 5 {
		t.Errorf("N: got %d, want 5", s.N)
	}
	testutil.RequireNearlyEqual(t, s.Mean, 0.166/5, tolerance)
	if s.Min != -0.14 || s.MinPos != 1 {
		t.Errorf("Min: got %g at %d, want -0.14 at 1", s.Min, s.MinPos)
	}
	if s.Max != 0.3 || s.MaxPos != 4 {
		t.Errorf("Max: got %g at %d, want 0.3 at 4", s.Max, s.MaxPos)
	}
	if s.Zeros != 2 {
		t.Errorf("Zeros: got %d, want 2", s.Zeros)
	}
	testutil.RequireNearlyEqual(t, s.StdDev, math.Sqrt(s.Variance), tolerance)
}

func TestCalculate_Empty(t *testing.T) {
	if s := Calculate(nil); s != (Summary{}) {
		t.Errorf("Calculate(nil) = %+v, want zero Summary", s)
	}
}

func TestCalculate_Constant(t *testing.T) {
	s := Calculate([]float64{2, 2, 2, 2})
	testutil.RequireNearlyEqual(t, s.Mean, 2, tolerance)
	testutil.RequireNearlyEqual(t, s.RMS, 2, tolerance)
	if s.Variance != 0 || s.Skewness != 0 || s.Kurtosis != 0 {
		t.Errorf("constant input: variance %g skew %g kurt %g, want 0", s.Variance, s.Skewness, s.Kurtosis)
	}
}

func TestCalculate_SymmetricSkewness(t *testing.T) {
	s := Calculate([]float64{-1, 1, -2, 2, -3, 3})
	testutil.RequireNearlyEqual(t, s.Mean, 0, tolerance)
	testutil.RequireNearlyEqual(t, s.Skewness, 0, tolerance)
}

func TestAccumulatorMatchesCalculate(t *testing.T) {
	data := testutil.DeterministicMomenta(9, 2, 1000)
	want := Calculate(data)

	a := NewAccumulator()
	for i := 0; i < len(data); i += 100 {
		a.Update(data[i : i+100])
	}
	got := a.Result()

	if got.N != want.N || got.MinPos != want.MinPos || got.MaxPos != want.MaxPos {
		t.Fatalf("streaming = %+v, batch = %+v", got, want)
	}
	testutil.RequireNearlyEqual(t, got.Mean, want.Mean, tolerance)
	testutil.RequireNearlyEqual(t, got.Variance, want.Variance, tolerance)
	testutil.RequireNearlyEqual(t, got.Kurtosis, want.Kurtosis, tolerance)

	a.Reset()
	if a.Result().N != 0 {
		t.Error("Reset did not clear the accumulator")
	}
}

func TestHistogram(t *testing.T) {
	h, err := NewHistogram(4, -1, 1)
	if err != nil {
		t.Fatalf("NewHistogram error: %v", err)
	}

	h.FillAll([]float64{-0.9, -0.1, 0.1, 0.2, 0.6, -2, 1})

	if h.Len() != 4 {
		t.Fatalf("Len: got %d, want 4", h.Len())
	}
	testutil.RequireSliceNearlyEqual(t, h.Counts(), []float64{1, 1, 2, 1}, 0)
	testutil.RequireSliceNearlyEqual(t, h.Edges(), []float64{-1, -0.5, 0, 0.5, 1}, 1e-15)

	if h.Underflow() != 1 || h.Overflow() != 1 {
		t.Errorf("outflows: got %d/%d, want 1/1", h.Underflow(), h.Overflow())
	}
}

func TestHistogramMean(t *testing.T) {
	h, err := NewHistogram(10, 0, 1)
	if err != nil {
		t.Fatalf("NewHistogram error: %v", err)
	}
	h.FillAll([]float64{0.25, 0.75})

	if h.Entries() != 2 {
		t.Errorf("Entries: got %d, want 2", h.Entries())
	}

	testutil.RequireNearlyEqual(t, h.Mean(), 0.5, tolerance)
	testutil.RequireNearlyEqual(t, h.StdDev(), math.Sqrt(0.125), tolerance)
}

func TestHistogramMeanIgnoresOutflows(t *testing.T) {
	h, err := NewHistogram(10, 0, 1)
	if err != nil {
		t.Fatalf("NewHistogram error: %v", err)
	}

	h.FillAll([]float64{0.25, 0.75, 100, -3})

	if h.Underflow() != 1 || h.Overflow() != 1 {
		t.Fatalf("outflows: got %d/%d, want 1/1", h.Underflow(), h.Overflow())
	}
	testutil.RequireNearlyEqual(t, h.Mean(), 0.5, tolerance)
	testutil.RequireNearlyEqual(t, h.StdDev(), math.Sqrt(0.125), tolerance)
}

func TestHistogramMeanEmpty(t *testing.T) {
	h, err := NewHistogram(4, 0, 1)
	if err != nil {
		t.Fatalf("NewHistogram error: %v", err)
	}

	h.Fill(5)

	if !math.IsNaN(h.Mean()) || !math.IsNaN(h.StdDev()) {
		t.Errorf("Mean/StdDev with only outflows: got %g/%g, want NaN", h.Mean(), h.StdDev())
	}
}

func TestNewHistogramInvalid(t *testing.T) {
	for _, tc := range []struct {
		n      int
		lo, hi float64
	}{
		{0, 0, 1},
		{10, 1, 1},
		{10, 2, 1},
		{10, math.NaN(), 1},
	} {
		if _, err := NewHistogram(tc.n, tc.lo, tc.hi); !errors.Is(err, ErrInvalidBinning) {
			t.Errorf("NewHistogram(%d, %g, %g) error = %v, want ErrInvalidBinning", tc.n, tc.lo, tc.hi, err)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	k := GaussianKernel(2.5)
	if len(k)%2 != 1 {
		t.Fatalf("kernel length %d is even", len(k))
	}

	sum := 0.0
	for _, v := range k {
		sum += v
	}
	testutil.RequireNearlyEqual(t, sum, 1, 1e-12)

	mid := len(k) / 2
	for i := 1; i <= mid; i++ {
		if k[mid-i] != k[mid+i] {
			t.Fatalf("kernel not symmetric at offset %d", i)
		}
	}
}

func TestFoldPreservesContent(t *testing.T) {
	counts := make([]float64, 64)
	counts[32] = 100
	counts[20] = 40

	out, err := Fold(counts, 2)
	if err != nil {
		t.Fatalf("Fold error: %v", err)
	}
	if len(out) != len(counts) {
		t.Fatalf("Fold length %d, want %d", len(out), len(counts))
	}

	sum := 0.0
	for _, v := range out {
		sum += v
	}
	testutil.RequireNearlyEqual(t, sum, 140, 1e-9)

	// The peak stays centred on its bin.
	if !(out[32] > out[31] && out[32] > out[33]) {
		t.Errorf("peak moved: out[31..33] = %v", out[31:34])
	}
	testutil.RequireNearlyEqual(t, out[33], out[31], 1e-9)
}

func TestFoldMatchesDirectConvolution(t *testing.T) {
	counts := testutil.DeterministicMomenta(3, 10, 50)
	sigma := 1.5

	got, err := Fold(counts, sigma)
	if err != nil {
		t.Fatalf("Fold error: %v", err)
	}

	k := GaussianKernel(sigma)
	half := len(k) / 2
	want := make([]float64, len(counts))
	for i := range want {
		for j, w := range k {
			src := i + half - j
			if src >= 0 && src < len(counts) {
				want[i] += counts[src] * w
			}
		}
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestFoldZeroWidth(t *testing.T) {
	counts := []float64{1, 2, 3}
	out, err := Fold(counts, 0)
	if err != nil {
		t.Fatalf("Fold error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, counts, 0)

	out[0] = 9
	if counts[0] != 1 {
		t.Fatal("Fold(0) aliased its input")
	}
}

func TestFoldRejectsNonFiniteWidth(t *testing.T) {
	for _, sigma := range []float64{math.Inf(1), math.NaN()} {
		if _, err := Fold([]float64{1, 2, 3}, sigma); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("Fold(sigma=%g) error = %v, want ErrInvalidWidth", sigma, err)
		}
	}
}

func TestFoldEmpty(t *testing.T) {
	if _, err := Fold(nil, 1); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Fold(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestPlot(t *testing.T) {
	h, err := NewHistogram(20, -0.5, 0.5)
	if err != nil {
		t.Fatalf("NewHistogram error: %v", err)
	}
	h.FillAll(testutil.MomentumGrid(-0.4, 0.4, 100))

	path := filepath.Join(t.TempDir(), "corr.png")
	if err := Plot(h, "corrections", "correction", path); err != nil {
		t.Fatalf("Plot error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat plot: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot file is empty")
	}
}
