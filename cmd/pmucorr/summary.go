package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cc0pi/events"
	"github.com/cwbudde/algo-cc0pi/pmu"
	"github.com/cwbudde/algo-cc0pi/stats"
)

const maxBarWidth = 50

func newSummaryCmd(a *app) *cobra.Command {
	var plotPath string

	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print statistics and a histogram of the corrections",
		Long: `Corrects all events in one block and prints summary statistics of the
correction values together with a text histogram. --fold smears the
histogram with a Gaussian of the given width; --plot also renders it to an
image file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			return a.summary(in, name, plotPath, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Int("bins", 40, "number of histogram bins")
	f.Float64("min", -0.5, "histogram lower edge")
	f.Float64("max", 0.5, "histogram upper edge")
	f.Float64("fold", 0, "Gaussian resolution applied to the histogram (correction units)")
	f.StringVar(&plotPath, "plot", "", "write the histogram to this image file")

	for _, name := range []string{"bins", "min", "max", "fold"} {
		_ = a.v.BindPFlag(name, f.Lookup(name))
	}

	return cmd
}

func (a *app) summary(in io.Reader, name, plotPath string, out io.Writer) error {
	r, err := events.NewReader(in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	evs, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	values, index, skipped, err := a.correctAll(evs)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	a.logger.Info("corrected events", "input", name, "events", len(evs), "skipped", skipped)

	h, err := stats.NewHistogram(a.cfg.Bins, a.cfg.Min, a.cfg.Max)
	if err != nil {
		return err
	}
	h.FillAll(values)

	counts := h.Counts()
	if a.cfg.Fold > 0 {
		counts, err = stats.Fold(counts, a.cfg.Fold/a.cfg.BinWidth())
		if err != nil {
			return err
		}
	}

	if err := printSummary(out, stats.Calculate(values), index, skipped); err != nil {
		return err
	}
	if err := printHistogram(out, h.Edges(), counts, h.Underflow(), h.Overflow()); err != nil {
		return err
	}

	if plotPath != "" {
		if err := stats.Plot(h, "CC0pi muon momentum correction", "correction", plotPath); err != nil {
			return err
		}
		a.logger.Info("wrote plot", "path", plotPath)
	}

	return nil
}

// correctAll corrects evs with the block API. Out-of-range events are
// skipped, or returned as an error in strict mode. index maps each returned
// value to the position of its event in evs.
func (a *app) correctAll(evs []events.Event) (values []float64, index []int, skipped int, err error) {
	n := len(evs)
	p := make([]float64, n)
	contained := make([]bool, n)
	muQuality := make([]bool, n)
	for i, ev := range evs {
		p[i], contained[i], muQuality[i] = ev.P, ev.Contained, ev.MuQuality
	}

	dst := make([]float64, n)
	values = make([]float64, 0, n)
	index = make([]int, 0, n)
	keep := func(from, to int) {
		values = append(values, dst[from:to]...)
		for i := from; i < to; i++ {
			index = append(index, i)
		}
	}

	for start := 0; start < n; {
		blkErr := a.corr.CorrectBlock(dst[start:], p[start:], contained[start:], muQuality[start:])
		if blkErr == nil {
			keep(start, n)
			break
		}

		var be *pmu.BlockError
		if !errors.As(blkErr, &be) {
			return nil, nil, skipped, blkErr
		}

		idx := start + be.Index
		if a.cfg.Strict {
			return nil, nil, skipped, fmt.Errorf("event %d: %w", idx, be.Err)
		}

		a.logger.Warn("skipping event", "event", idx, "p", p[idx], "err", be.Err)
		keep(start, idx)
		skipped++
		start = idx + 1
	}

	return values, index, skipped, nil
}

// printSummary writes s. index maps value positions back to event numbers
// so min and max name the input event.
func printSummary(w io.Writer, s stats.Summary, index []int, skipped int) error {
	event := func(pos int) int {
		if pos < len(index) {
			return index[pos]
		}
		return pos
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		value string
	}{
		{"events", fmt.Sprintf("%d", s.N)},
		{"skipped", fmt.Sprintf("%d", skipped)},
		{"zero (placeholder)", fmt.Sprintf("%d", s.Zeros)},
		{"mean", fmt.Sprintf("%.6f", s.Mean)},
		{"rms", fmt.Sprintf("%.6f", s.RMS)},
		{"std dev", fmt.Sprintf("%.6f", s.StdDev)},
		{"min", fmt.Sprintf("%.6f (event %d)", s.Min, event(s.MinPos))},
		{"max", fmt.Sprintf("%.6f (event %d)", s.Max, event(s.MaxPos))},
		{"skewness", fmt.Sprintf("%.4f", s.Skewness)},
		{"kurtosis", fmt.Sprintf("%.4f", s.Kurtosis)},
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.label, r.value); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	return tw.Flush()
}

func printHistogram(w io.Writer, edges, counts []float64, underflow, overflow int) error {
	peak := 0.0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "\nbin\tcount\t\n"); err != nil {
		return fmt.Errorf("write histogram: %w", err)
	}

	for i, c := range counts {
		bar := 0
		if peak > 0 {
			bar = int(c / peak * maxBarWidth)
		}
		if _, err := fmt.Fprintf(tw, "[%+.3f, %+.3f)\t%.1f\t%s\n",
			edges[i], edges[i+1], c, strings.Repeat("#", bar)); err != nil {
			return fmt.Errorf("write histogram: %w", err)
		}
	}

	if _, err := fmt.Fprintf(tw, "underflow\t%d\t\noverflow\t%d\t\n", underflow, overflow); err != nil {
		return fmt.Errorf("write histogram: %w", err)
	}

	return tw.Flush()
}
