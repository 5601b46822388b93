package pmu

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-cc0pi/pmu/internal/kernel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

var (
	evalBlockImpl     kernel.EvalFn
	evalBlockInitOnce sync.Once
)

func initEvalBlockKernel() {
	entry := kernel.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("pmu: no block kernel registered (missing generic fallback?)")
	}

	if entry.Eval == nil {
		panic("pmu: selected kernel missing Eval")
	}

	evalBlockImpl = entry.Eval
}

// BlockError reports the first out-of-range event of a block.
type BlockError struct {
	Index int
	Err   *RangeError
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("pmu: event %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// CorrectBlock writes the correction for every event to dst.
//
// All slices must have equal length. Events are grouped by region and each
// group is evaluated with the block kernel selected for the running CPU.
// If an event is out of range, dst is written for all events before it and
// a *BlockError is returned.
func (c *Corrector) CorrectBlock(dst, p []float64, contained, muQuality []bool) error {
	n := len(p)
	if len(dst) != n || len(contained) != n || len(muQuality) != n {
		return fmt.Errorf("%w: dst=%d p=%d contained=%d mu_quality=%d",
			ErrLengthMismatch, len(dst), n, len(contained), len(muQuality))
	}

	evalBlockInitOnce.Do(initEvalBlockKernel)

	var (
		cGroups = make([][]int, len(c.contained.Regions))
		uGroups = make([][]int, len(c.uncontained.Regions))
		blkErr  *BlockError
	)

	for i, v := range p {
		t, groups := &c.uncontained, uGroups
		if contained[i] {
			t, groups = &c.contained, cGroups
		}

		k := t.index(v, muQuality[i])
		if k < 0 {
			blkErr = &BlockError{
				Index: i,
				Err:   &RangeError{P: v, Contained: contained[i], MuQuality: muQuality[i]},
			}

			break
		}

		groups[k] = append(groups[k], i)
	}

	evalGroups(dst, p, c.contained.Regions, cGroups)
	evalGroups(dst, p, c.uncontained.Regions, uGroups)

	if blkErr != nil {
		return blkErr
	}

	return nil
}

// CorrectBlock is Default().CorrectBlock.
func CorrectBlock(dst, p []float64, contained, muQuality []bool) error {
	return defaultCorrector.CorrectBlock(dst, p, contained, muQuality)
}

func evalGroups(dst, p []float64, regions []Region, groups [][]int) {
	var xs, ys []float64

	for k, idx := range groups {
		if len(idx) == 0 {
			continue
		}

		xs = xs[:0]
		for _, i := range idx {
			xs = append(xs, p[i])
		}

		if cap(ys) < len(xs) {
			ys = make([]float64, len(xs))
		}
		ys = ys[:len(xs)]

		evalBlockImpl(ys, xs, regions[k].Coeffs)

		for j, i := range idx {
			dst[i] = ys[j]
		}
	}
}

// index returns the position of the first region matching p, or -1.
func (t *Table) index(p float64, muQuality bool) int {
	for k := range t.Regions {
		if t.Regions[k].Matches(p, muQuality) {
			return k
		}
	}

	return -1
}
