package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/storage"
)

var quantities = map[string]func(storage.Record) []float64{
	"position":     storage.PickPosition,
	"velocity":     storage.PickVelocity,
	"acceleration": storage.PickAcceleration,
}

// PlotOptions selects what to draw from a run.
type PlotOptions struct {
	Quantity  string
	Component int
	Width     int
	Height    int
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Quantity: "position", Component: 1, Width: 70, Height: 12}
}

// PlotBody draws one component of one body's position, velocity or
// acceleration across a run.
func PlotBody(records []storage.Record, id int64, name string, opts PlotOptions) (string, error) {
	series, err := bodySeries(records, id, opts)
	if err != nil {
		return "", err
	}

	caption := fmt.Sprintf("%s %s[%d]", name, opts.Quantity, opts.Component)
	return asciigraph.Plot(series,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption)), nil
}

// PlotBodies overlays the same component of several bodies on one chart.
// ids and names are parallel.
func PlotBodies(records []storage.Record, ids []int64, names []string, opts PlotOptions) (string, error) {
	if len(ids) == 0 || len(ids) != len(names) {
		return "", fmt.Errorf("viz: %d ids for %d names", len(ids), len(names))
	}

	all := make([][]float64, 0, len(ids))
	for _, id := range ids {
		series, err := bodySeries(records, id, opts)
		if err != nil {
			return "", err
		}
		all = append(all, series)
	}

	caption := fmt.Sprintf("%s[%d]: %s", opts.Quantity, opts.Component, strings.Join(names, ", "))
	return PlotSeries(all, opts.Width, opts.Height, caption), nil
}

func bodySeries(records []storage.Record, id int64, opts PlotOptions) ([]float64, error) {
	pick, ok := quantities[opts.Quantity]
	if !ok {
		return nil, fmt.Errorf("viz: unknown quantity %q", opts.Quantity)
	}

	series := storage.Series(records, id, pick, opts.Component)
	if len(series) < 2 {
		return nil, fmt.Errorf("viz: body %d has no %s[%d] series to plot", id, opts.Quantity, opts.Component)
	}
	return series, nil
}

// PlotSeries draws several named series on one chart.
func PlotSeries(series [][]float64, width, height int, caption string) string {
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow))
}
