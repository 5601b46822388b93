package stats

import (
	"fmt"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// Plot renders h to path. The image format follows the file extension
// (png, pdf, svg, ...).
func Plot(h *Histogram, title, xlabel, path string) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "events"

	p.Add(hplot.NewH1D(h.H1D()))
	p.Add(hplot.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("stats: save plot: %w", err)
	}

	return nil
}
