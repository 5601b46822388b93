package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cc0pi/events"
	"github.com/cwbudde/algo-cc0pi/pmu"
)

func newCorrectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "correct [file]",
		Short: "Append the momentum correction to every event",
		Long: `Reads events and writes p, contained, mu_quality and correction as CSV
to stdout. Events are streamed one at a time.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			return a.correct(in, name, cmd.OutOrStdout())
		},
	}
}

func (a *app) correct(in io.Reader, name string, out io.Writer) error {
	r, err := events.NewReader(in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	w, err := events.NewWriter(out)
	if err != nil {
		return err
	}

	var written, skipped int
	for {
		ev, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		c, err := a.corr.Correct(ev.P, ev.Contained, ev.MuQuality)
		if errors.Is(err, pmu.ErrOutOfRange) {
			if a.cfg.Strict {
				return fmt.Errorf("%s:%d: %w", name, r.Line(), err)
			}
			a.logger.Warn("skipping event", "input", name, "line", r.Line(), "p", ev.P, "err", err)
			skipped++
			continue
		}
		if err != nil {
			return err
		}

		if err := w.Write(ev, c); err != nil {
			return err
		}
		written++
	}

	if err := w.Flush(); err != nil {
		return err
	}

	a.logger.Info("corrected events", "input", name, "written", written, "skipped", skipped)

	return nil
}
