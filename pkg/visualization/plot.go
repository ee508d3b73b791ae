// Package visualization renders the presentation artifacts of an analysis
// run: the Sholl profile plot and the intersections heatmap mask. The core
// packages return data only; everything here is wired in by the caller and is
// best effort.
package visualization

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"shollanalysis/pkg/analysis"
)

// SaveProfilePlot renders the transformed profile, the fitted curve and (for
// the Linear method) the mean-value line to an image file. The format follows
// the file extension; PNG is the usual choice.
func SaveProfilePlot(path, title string, res *analysis.Result, opts analysis.Options) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sholl [%s] :: %s", opts.Method, title)
	p.X.Label.Text, p.Y.Label.Text = axisTitles(opts)

	pts := make(plotter.XYs, len(res.X))
	for i := range res.X {
		pts[i] = plotter.XY{X: res.X[i], Y: res.Y[i]}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.Gray{Y: 96}
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(scatter)
	p.Legend.Add("sampled", scatter)

	if res.FitPerformed {
		fitPts := make(plotter.XYs, len(res.X))
		for i := range res.X {
			fitPts[i] = plotter.XY{X: res.X[i], Y: res.FitY[i]}
		}
		line, err := plotter.NewLine(fitPts)
		if err != nil {
			return fmt.Errorf("failed to build fit line: %w", err)
		}
		line.Color = color.RGBA{B: 255, A: 255}
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("fitted", line)

		if opts.Method == analysis.MethodLinear && !math.IsNaN(res.MeanValue) {
			mean, err := plotter.NewLine(plotter.XYs{
				{X: res.X[0], Y: res.MeanValue},
				{X: res.X[len(res.X)-1], Y: res.MeanValue},
			})
			if err != nil {
				return fmt.Errorf("failed to build mean line: %w", err)
			}
			mean.Color = color.Gray{Y: 192}
			p.Add(mean)
			p.Legend.Add("mean value", mean)
		}
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// axisTitles returns the X and Y axis labels for the method's transforms.
func axisTitles(opts analysis.Options) (string, string) {
	dist, norm := "2D distance", "Circle area"
	if opts.ThreeD {
		dist, norm = "3D distance", "Sphere volume"
	}

	switch opts.Method {
	case analysis.MethodLogLog:
		return "log(" + dist + ")", "log(N. Inters./" + norm + ")"
	case analysis.MethodSemiLog:
		return dist, "log(N. Inters./" + norm + ")"
	case analysis.MethodNormalized:
		return dist, "N. Inters./" + norm
	}
	return dist, "N. of Intersections"
}
