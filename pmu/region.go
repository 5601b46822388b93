package pmu

import (
	"fmt"
	"math"
	"strings"
)

// Quality selects which muon-quality outcome a region applies to.
type Quality int

const (
	QualityAny Quality = iota
	QualityPass
	QualityFail
)

// String returns the lower-case name used in table files.
func (q Quality) String() string {
	switch q {
	case QualityAny:
		return "any"
	case QualityPass:
		return "pass"
	case QualityFail:
		return "fail"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// ParseQuality parses "any", "pass" or "fail" (case-insensitive).
// The empty string parses as QualityAny.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return QualityAny, nil
	case "pass":
		return QualityPass, nil
	case "fail":
		return QualityFail, nil
	default:
		return QualityAny, fmt.Errorf("%w: unknown quality %q", ErrInvalidTable, s)
	}
}

func (q Quality) accepts(muQuality bool) bool {
	switch q {
	case QualityPass:
		return muQuality
	case QualityFail:
		return !muQuality
	default:
		return true
	}
}

// Region is one momentum interval bound to a fitted polynomial.
//
// Coeffs holds the fit in ascending power order (A, B, C[, D]). An empty
// Coeffs marks a placeholder region that evaluates to 0.
type Region struct {
	Name         string
	Min, Max     float64
	MinInclusive bool
	MaxInclusive bool
	Quality      Quality
	Coeffs       []float64
}

// Contains reports whether p lies inside the region's momentum interval.
// NaN is never contained.
func (r Region) Contains(p float64) bool {
	if r.MinInclusive {
		if !(p >= r.Min) {
			return false
		}
	} else if !(p > r.Min) {
		return false
	}

	if r.MaxInclusive {
		return p <= r.Max
	}

	return p < r.Max
}

// Matches reports whether the region is selected for p and muQuality.
func (r Region) Matches(p float64, muQuality bool) bool {
	return r.Quality.accepts(muQuality) && r.Contains(p)
}

// Placeholder reports whether the region returns a hardcoded 0.
func (r Region) Placeholder() bool {
	return len(r.Coeffs) == 0
}

// Degree returns the polynomial degree, or -1 for placeholders.
func (r Region) Degree() int {
	return len(r.Coeffs) - 1
}

// Eval evaluates the region's polynomial at p without a range check.
func (r Region) Eval(p float64) float64 {
	return evalPoly(p, r.Coeffs)
}

// Interval formats the region's interval, e.g. "(0.2, 1.5)".
func (r Region) Interval() string {
	lo, hi := "(", ")"
	if r.MinInclusive {
		lo = "["
	}
	if r.MaxInclusive {
		hi = "]"
	}

	return fmt.Sprintf("%s%g, %g%s", lo, r.Min, r.Max, hi)
}

// Table is an ordered list of regions for one containment branch.
// Lookup takes the first matching region.
type Table struct {
	Name    string
	Regions []Region
}

// Lookup returns the first region matching p and muQuality.
func (t Table) Lookup(p float64, muQuality bool) (Region, bool) {
	k := t.index(p, muQuality)
	if k < 0 {
		return Region{}, false
	}

	return t.Regions[k], true
}

// Validate checks that, for both quality outcomes, the applicable regions
// partition [0, +Inf) in order with no gaps and no overlaps, and that every
// coefficient set is a placeholder, a quadratic or a cubic.
func (t Table) Validate() error {
	if len(t.Regions) == 0 {
		return fmt.Errorf("%w: table %q has no regions", ErrInvalidTable, t.Name)
	}

	for i, r := range t.Regions {
		if r.Name == "" {
			return fmt.Errorf("%w: table %q region %d has no name", ErrInvalidTable, t.Name, i)
		}

		switch len(r.Coeffs) {
		case 0, 3, 4:
		default:
			return fmt.Errorf("%w: region %s has %d coefficients, want 0, 3 or 4",
				ErrInvalidTable, r.Name, len(r.Coeffs))
		}

		for _, c := range r.Coeffs {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("%w: region %s has non-finite coefficient", ErrInvalidTable, r.Name)
			}
		}

		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || !(r.Min < r.Max) {
			return fmt.Errorf("%w: region %s has empty interval %s", ErrInvalidTable, r.Name, r.Interval())
		}

		if r.Quality < QualityAny || r.Quality > QualityFail {
			return fmt.Errorf("%w: region %s has %v", ErrInvalidTable, r.Name, r.Quality)
		}
	}

	for _, muQuality := range []bool{true, false} {
		if err := t.checkPartition(muQuality); err != nil {
			return err
		}
	}

	return nil
}

func (t Table) checkPartition(muQuality bool) error {
	var prev *Region

	for i := range t.Regions {
		r := &t.Regions[i]
		if !r.Quality.accepts(muQuality) {
			continue
		}

		if prev == nil {
			if r.Min != 0 || !r.MinInclusive {
				return fmt.Errorf("%w: table %q (mu_quality=%t) starts at %s, want [0, ...",
					ErrInvalidTable, t.Name, muQuality, r.Interval())
			}
		} else {
			if r.Min != prev.Max {
				return fmt.Errorf("%w: table %q (mu_quality=%t) has a gap or overlap between %s and %s",
					ErrInvalidTable, t.Name, muQuality, prev.Name, r.Name)
			}

			if r.MinInclusive == prev.MaxInclusive {
				return fmt.Errorf("%w: table %q (mu_quality=%t) boundary %g is claimed by both or neither of %s and %s",
					ErrInvalidTable, t.Name, muQuality, r.Min, prev.Name, r.Name)
			}
		}

		prev = r
	}

	if prev == nil {
		return fmt.Errorf("%w: table %q has no region for mu_quality=%t", ErrInvalidTable, t.Name, muQuality)
	}

	if !math.IsInf(prev.Max, 1) || prev.MaxInclusive {
		return fmt.Errorf("%w: table %q (mu_quality=%t) ends at %s, want ..., +Inf)",
			ErrInvalidTable, t.Name, muQuality, prev.Interval())
	}

	return nil
}

// clone returns a deep copy so callers cannot mutate shared coefficients.
func (t Table) clone() Table {
	out := Table{Name: t.Name, Regions: make([]Region, len(t.Regions))}
	for i, r := range t.Regions {
		r.Coeffs = append([]float64(nil), r.Coeffs...)
		out.Regions[i] = r
	}

	return out
}
