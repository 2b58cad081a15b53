// Package plot renders the pipeline figures as PNG files. It wraps
// gonum/plot with the handful of chart shapes the figures stage needs.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// Bar renders a single-series bar chart with one bar per label.
func Bar(path, title, ylabel string, labels []string, values []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(30))
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", path, err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// PairedBars renders two series side by side per label, for baseline vs
// subset comparisons.
func PairedBars(path, title, ylabel string, labels []string, aName string, aVals []float64, bName string, bVals []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	w := vg.Points(20)
	barsA, err := plotter.NewBarChart(plotter.Values(aVals), w)
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", path, err)
	}
	barsA.Color = plotutil.Color(0)
	barsA.Offset = -w / 2

	barsB, err := plotter.NewBarChart(plotter.Values(bVals), w)
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", path, err)
	}
	barsB.Color = plotutil.Color(1)
	barsB.Offset = w / 2

	p.Add(barsA, barsB)
	p.Legend.Add(aName, barsA)
	p.Legend.Add(bName, barsB)
	p.Legend.Top = true
	p.NominalX(labels...)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Histogram renders a frequency histogram of values with the given number
// of bins.
func Histogram(path, title, xlabel string, values []float64, bins int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", path, err)
	}
	h.FillColor = plotutil.Color(0)
	p.Add(h)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
