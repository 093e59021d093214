package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const histBins = 36

func newPlot() *plot.Plot {
	plt := plot.New()
	plt.BackgroundColor = color.Black
	for _, elt := range []*color.Color{
		&plt.Title.TextStyle.Color,
		&plt.X.Color,
		&plt.X.Tick.Color,
		&plt.X.Tick.Label.Color,
		&plt.X.Label.TextStyle.Color,
		&plt.Y.Color,
		&plt.Y.Tick.Color,
		&plt.Y.Tick.Label.Color,
		&plt.Y.Label.TextStyle.Color,
	} {
		*elt = color.White
	}
	return plt
}

// plotDeviation writes a histogram of a's normal deviations to outPath.
// The image format is taken from outPath's extension.
func plotDeviation(a *normalAudit, title, outPath string) error {
	vals, err := plotter.CopyValues(plotter.Values(a.deviation))
	if err != nil {
		return fmt.Errorf("plotting normal deviation: %w", err)
	}

	plt := newPlot()
	plt.Title.Text = title
	plt.X.Label.Text = "stored vs. computed normal (degrees)"
	plt.Y.Label.Text = "triangles"

	hist, err := plotter.NewHist(vals, histBins)
	if err != nil {
		return err
	}
	hist.FillColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	hist.LineStyle.Width = 0
	plt.Add(hist)

	return plt.Save(20*vg.Centimeter, 15*vg.Centimeter, outPath)
}
