package pmu

import (
	"errors"
	"math"
	"testing"
)

func TestBuiltinTablesValidate(t *testing.T) {
	for _, tbl := range []Table{ContainedTable(), UncontainedTable()} {
		if err := tbl.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", tbl.Name, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name    string
		regions []Region
	}{
		{"empty", nil},
		{
			"gap",
			[]Region{
				{Name: "a", Min: 0, Max: 1, MinInclusive: true},
				{Name: "b", Min: 1.1, Max: inf, MinInclusive: true},
			},
		},
		{
			"overlap",
			[]Region{
				{Name: "a", Min: 0, Max: 1, MinInclusive: true},
				{Name: "b", Min: 0.5, Max: inf, MinInclusive: true},
			},
		},
		{
			"boundary-claimed-twice",
			[]Region{
				{Name: "a", Min: 0, Max: 1, MinInclusive: true, MaxInclusive: true},
				{Name: "b", Min: 1, Max: inf, MinInclusive: true},
			},
		},
		{
			"boundary-claimed-by-neither",
			[]Region{
				{Name: "a", Min: 0, Max: 1, MinInclusive: true},
				{Name: "b", Min: 1, Max: inf},
			},
		},
		{
			"open-at-zero",
			[]Region{{Name: "a", Min: 0, Max: inf}},
		},
		{
			"starts-above-zero",
			[]Region{{Name: "a", Min: 0.1, Max: inf, MinInclusive: true}},
		},
		{
			"finite-end",
			[]Region{{Name: "a", Min: 0, Max: 10, MinInclusive: true, MaxInclusive: true}},
		},
		{
			"linear-fit",
			[]Region{{Name: "a", Min: 0, Max: inf, MinInclusive: true, Coeffs: []float64{1, 2}}},
		},
		{
			"nan-coefficient",
			[]Region{{Name: "a", Min: 0, Max: inf, MinInclusive: true, Coeffs: []float64{1, math.NaN(), 2}}},
		},
		{
			"unnamed",
			[]Region{{Min: 0, Max: inf, MinInclusive: true}},
		},
		{
			"missing-quality-branch",
			[]Region{{Name: "a", Min: 0, Max: inf, MinInclusive: true, Quality: QualityPass}},
		},
		{
			"bad-quality",
			[]Region{{Name: "a", Min: 0, Max: inf, MinInclusive: true, Quality: Quality(7)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Table{Name: tt.name, Regions: tt.regions}.Validate()
			if !errors.Is(err, ErrInvalidTable) {
				t.Fatalf("Validate() = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestValidateQualitySplit(t *testing.T) {
	inf := math.Inf(1)
	tbl := Table{
		Name: "split",
		Regions: []Region{
			{Name: "lo-fail", Min: 0, Max: 1, MinInclusive: true, Quality: QualityFail},
			{Name: "lo-pass", Min: 0, Max: 2, MinInclusive: true, Quality: QualityPass},
			{Name: "mid", Min: 1, Max: 2, MinInclusive: true, Quality: QualityFail},
			{Name: "hi", Min: 2, Max: inf, MinInclusive: true},
		},
	}

	if err := tbl.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if r, _ := tbl.Lookup(1.5, true); r.Name != "lo-pass" {
		t.Errorf("Lookup(1.5, pass) = %s, want lo-pass", r.Name)
	}
	if r, _ := tbl.Lookup(1.5, false); r.Name != "mid" {
		t.Errorf("Lookup(1.5, fail) = %s, want mid", r.Name)
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{Min: 0.2, Max: 1.5}
	tests := []struct {
		p    float64
		want bool
	}{
		{0.2, false},
		{0.21, true},
		{1.49, true},
		{1.5, false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%g) = %t, want %t", tt.p, got, tt.want)
		}
	}

	closed := Region{Min: 0, Max: 0.2, MinInclusive: true, MaxInclusive: true}
	if !closed.Contains(0) || !closed.Contains(0.2) {
		t.Error("closed interval should contain both end points")
	}
}

func TestRegionInterval(t *testing.T) {
	c := ContainedTable()
	want := []string{"[0, 0.2]", "[0, 0.2]", "(0.2, 1.5)", "[1.5, +Inf)"}

	for i, r := range c.Regions {
		if got := r.Interval(); got != want[i] {
			t.Errorf("%s.Interval() = %q, want %q", r.Name, got, want[i])
		}
	}
}

func TestRegionDegree(t *testing.T) {
	c := ContainedTable()
	want := []int{-1, 2, 2, 3}

	for i, r := range c.Regions {
		if got := r.Degree(); got != want[i] {
			t.Errorf("%s.Degree() = %d, want %d", r.Name, got, want[i])
		}
		if r.Placeholder() != (want[i] < 0) {
			t.Errorf("%s.Placeholder() = %t", r.Name, r.Placeholder())
		}
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in   string
		want Quality
	}{
		{"", QualityAny},
		{"any", QualityAny},
		{"Pass", QualityPass},
		{" fail ", QualityFail},
	}

	for _, tt := range tests {
		got, err := ParseQuality(tt.in)
		if err != nil {
			t.Fatalf("ParseQuality(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseQuality(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.in != "" && got.String() == "" {
			t.Errorf("%v.String() is empty", got)
		}
	}

	if _, err := ParseQuality("good"); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("ParseQuality(good) error = %v, want ErrInvalidTable", err)
	}
}

func TestEvalPolyHorner(t *testing.T) {
	// 1 + 2x + 3x^2 + 4x^3 + 5x^4 at x = 2.
	if got := evalPoly(2, []float64{1, 2, 3, 4, 5}); got != 129 {
		t.Errorf("evalPoly = %g, want 129", got)
	}
	if got := evalPoly(3, nil); got != 0 {
		t.Errorf("evalPoly(nil) = %g, want 0", got)
	}
}
