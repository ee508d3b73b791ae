package visualization

import (
	"os"
	"path/filepath"
	"testing"

	"shollanalysis/pkg/analysis"
)

// parabolaResult runs a full analysis on exact polynomial data so the plot
// has a fitted curve and a mean-value line to render
func parabolaResult(t *testing.T, fit bool) (*analysis.Result, analysis.Options) {
	t.Helper()
	var radii, counts []float64
	for r := 1.0; r <= 9; r++ {
		radii = append(radii, r)
		counts = append(counts, 10+5*r-0.5*r*r)
	}
	opts := analysis.Options{Method: analysis.MethodLinear, PolynomialDegree: 4, FitCurve: fit}
	res, err := analysis.Analyze(radii, counts, opts)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return res, opts
}

// TestSaveProfilePlot verifies the fitted plot renders to a non-empty PNG
func TestSaveProfilePlot(t *testing.T) {
	res, opts := parabolaResult(t, true)
	path := filepath.Join(t.TempDir(), "profile.png")

	if err := SaveProfilePlot(path, "neuron01", res, opts); err != nil {
		t.Fatalf("SaveProfilePlot failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected plot file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty plot file")
	}
}

// TestSaveProfilePlotWithoutFit verifies the scatter-only rendering path
func TestSaveProfilePlotWithoutFit(t *testing.T) {
	res, opts := parabolaResult(t, false)
	path := filepath.Join(t.TempDir(), "scatter.png")

	if err := SaveProfilePlot(path, "neuron01", res, opts); err != nil {
		t.Fatalf("SaveProfilePlot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected plot file to exist: %v", err)
	}
}

// TestAxisTitles covers the per-method axis labels
func TestAxisTitles(t *testing.T) {
	x, y := axisTitles(analysis.Options{Method: analysis.MethodLinear})
	if x != "2D distance" || y != "N. of Intersections" {
		t.Errorf("Unexpected linear axes %q / %q", x, y)
	}
	x, _ = axisTitles(analysis.Options{Method: analysis.MethodLogLog, ThreeD: true})
	if x != "log(3D distance)" {
		t.Errorf("Unexpected log-log 3D X axis %q", x)
	}
	_, y = axisTitles(analysis.Options{Method: analysis.MethodNormalized})
	if y != "N. Inters./Circle area" {
		t.Errorf("Unexpected normalized Y axis %q", y)
	}
}
