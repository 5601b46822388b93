package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cc0pi/pmu"
)

func newTableCmd(a *app) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the active correction tables",
		Long: `Prints every region of the contained and uncontained tables in lookup
order. With --yaml the tables are written in the format accepted by
--table, which is a convenient starting point for new fits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asYAML {
				return pmu.WriteTables(cmd.OutOrStdout(), a.corr)
			}
			return printTables(cmd.OutOrStdout(), a.corr, a.cfg.Table == "")
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "write the tables as YAML")

	return cmd
}

func printTables(w io.Writer, c *pmu.Corrector, builtin bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Branch\tRegion\tp [GeV]\tQuality\tDegree\tCoefficients (A, B, C, D)\n"); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t------\t-------\t-------\t------\t-------------------------\n"); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}

	for _, t := range []pmu.Table{c.Contained(), c.Uncontained()} {
		for _, r := range t.Regions {
			degree := strconv.Itoa(r.Degree())
			coeffs := formatCoeffs(r.Coeffs)
			if r.Placeholder() {
				degree = "-"
				coeffs = "0 (placeholder)"
			}

			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				t.Name, r.Name, r.Interval(), r.Quality, degree, coeffs); err != nil {
				return fmt.Errorf("write table row: %w", err)
			}
		}
	}

	if builtin {
		if _, err := fmt.Fprintf(tw, "uncontained\tR4\t(unused)\tany\t2\t%s\n",
			formatCoeffs(pmu.UncontainedR4[:])); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}

	return tw.Flush()
}

func formatCoeffs(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ", ")
}
