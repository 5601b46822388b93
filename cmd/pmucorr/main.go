// Command pmucorr applies the CC0pi muon momentum correction to event files
// and inspects the correction tables.
//
// Usage:
//
//	pmucorr [flags] <command> [file]
//
// Input is CSV with a header naming p (or px, py, pz), contained and
// mu_quality; without a file argument events are read from stdin.
//
// Examples:
//
//	pmucorr correct events.csv > corrected.csv
//	pmucorr summary --bins 60 --plot corr.png events.csv
//	pmucorr table
//	pmucorr table --yaml > fits.yaml
//	pmucorr --table fits.yaml --strict correct events.csv
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-cc0pi/internal/config"
	"github.com/cwbudde/algo-cc0pi/pmu"
)

// app carries the state shared by all subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
	corr    *pmu.Corrector
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "pmucorr",
		Short: "CC0pi muon momentum correction",
		Long: `pmucorr evaluates the piecewise polynomial momentum correction for
reconstructed muons in the CC0pi selection.

Events outside the fitted momentum range (negative, NaN or infinite p) are
logged and skipped, or abort the run with --strict.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default $PMUCORR_CONFIG)")
	pf.String("table", "", "YAML fit table file (default built-in fits)")
	pf.Bool("strict", false, "abort on the first out-of-range event")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	for _, name := range []string{"table", "strict", "verbose"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(
		newCorrectCmd(a),
		newSummaryCmd(a),
		newTableCmd(a),
	)

	return root
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}))

	if cfg.Table == "" {
		a.corr = pmu.Default()
		a.logger.Debug("using built-in fits")
		return nil
	}

	a.corr, err = pmu.LoadTablesFile(cfg.Table)
	if err != nil {
		return err
	}
	a.logger.Debug("loaded fit table", "path", cfg.Table)

	return nil
}

// openInput returns the named file, or stdin when args is empty.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}

	return f, args[0], nil
}
