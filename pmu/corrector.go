package pmu

import (
	"errors"
	"fmt"
)

// Errors returned by the correction functions.
var (
	ErrOutOfRange     = errors.New("pmu: momentum out of range")
	ErrInvalidTable   = errors.New("pmu: invalid correction table")
	ErrLengthMismatch = errors.New("pmu: input length mismatch")
)

// RangeError reports a momentum that no region of the selected branch
// covers: negative, NaN or infinite values.
type RangeError struct {
	P         float64
	Contained bool
	MuQuality bool
}

func (e *RangeError) Error() string {
	branch := "uncontained"
	if e.Contained {
		branch = "contained"
	}

	return fmt.Sprintf("pmu: %s correction: p=%g out of range", branch, e.P)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Corrector evaluates the correction over a pair of region tables.
// A Corrector is immutable and safe for concurrent use.
type Corrector struct {
	contained   Table
	uncontained Table
}

var defaultCorrector = &Corrector{
	contained:   ContainedTable(),
	uncontained: UncontainedTable(),
}

// Default returns the corrector over the built-in fits.
func Default() *Corrector {
	return defaultCorrector
}

// NewCorrector validates both tables and returns a corrector using copies
// of them.
func NewCorrector(contained, uncontained Table) (*Corrector, error) {
	if err := contained.Validate(); err != nil {
		return nil, err
	}

	if err := uncontained.Validate(); err != nil {
		return nil, err
	}

	return &Corrector{
		contained:   contained.clone(),
		uncontained: uncontained.clone(),
	}, nil
}

// Contained returns a copy of the contained-track table.
func (c *Corrector) Contained() Table {
	return c.contained.clone()
}

// Uncontained returns a copy of the uncontained-track table.
func (c *Corrector) Uncontained() Table {
	return c.uncontained.clone()
}

// Lookup returns the region selected for the given event. The returned
// Region owns its coefficients; changing them does not affect c.
func (c *Corrector) Lookup(p float64, contained, muQuality bool) (Region, error) {
	r, err := c.region(p, contained, muQuality)
	if err != nil {
		return Region{}, err
	}

	out := *r
	out.Coeffs = append([]float64(nil), r.Coeffs...)

	return out, nil
}

// Correct returns the momentum correction for one event.
// The quality flag only matters for contained tracks at low momentum.
func (c *Corrector) Correct(p float64, contained, muQuality bool) (float64, error) {
	r, err := c.region(p, contained, muQuality)
	if err != nil {
		return 0, err
	}

	return r.Eval(p), nil
}

func (c *Corrector) region(p float64, contained, muQuality bool) (*Region, error) {
	t := &c.uncontained
	if contained {
		t = &c.contained
	}

	k := t.index(p, muQuality)
	if k < 0 {
		return nil, &RangeError{P: p, Contained: contained, MuQuality: muQuality}
	}

	return &t.Regions[k], nil
}

// Correct returns the correction for one event using the built-in fits.
func Correct(p float64, contained, muQuality bool) (float64, error) {
	return defaultCorrector.Correct(p, contained, muQuality)
}

// MustCorrect is like Correct but panics with the *RangeError when p is out
// of range.
func MustCorrect(p float64, contained, muQuality bool) float64 {
	v, err := Correct(p, contained, muQuality)
	if err != nil {
		panic(err)
	}

	return v
}
