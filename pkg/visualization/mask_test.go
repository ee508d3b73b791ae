package visualization

import (
	"image/color"
	"path/filepath"
	"testing"

	"shollanalysis/internal/models"
	"shollanalysis/pkg/geometry"
)

// maskStack draws a horizontal segment extending right from (20,20)
func maskStack() *models.Stack {
	s := models.NewStack(40, 40, 1)
	for x := 20; x <= 30; x++ {
		s.Set(x, 20, 0, 255)
	}
	return s
}

// TestIntersectionsMask verifies that foreground pixels under the sampled
// circles are colorized and everything else stays transparent
func TestIntersectionsMask(t *testing.T) {
	s := maskStack()
	band := models.ThresholdBand{Lower: 128, Upper: 255}
	bounds := geometry.ClipBounds(20, 20, 0, 6, 40, 40, 1)

	img := IntersectionsMask(s, band, bounds, MaskParams{
		CenterX: 20, CenterY: 20,
		StartRadius: 2, LastRadius: 6, PixelSize: 1,
	}, []float64{1, 2})

	// The segment pixel crossed by the radius-2 circle is painted
	if _, _, _, a := img.At(22, 20).RGBA(); a == 0 {
		t.Error("Expected painted pixel at (22,20)")
	}
	// Background pixels stay transparent
	if _, _, _, a := img.At(20, 26).RGBA(); a != 0 {
		t.Error("Expected transparent pixel at background (20,26)")
	}
	// Foreground beyond the drawn radii stays unpainted
	if _, _, _, a := img.At(29, 20).RGBA(); a != 0 {
		t.Error("Expected unpainted pixel beyond the sampled radii")
	}
}

// TestSaveMask verifies the image round-trips to disk
func TestSaveMask(t *testing.T) {
	s := maskStack()
	band := models.ThresholdBand{Lower: 128, Upper: 255}
	bounds := geometry.ClipBounds(20, 20, 0, 6, 40, 40, 1)
	img := IntersectionsMask(s, band, bounds, MaskParams{
		CenterX: 20, CenterY: 20,
		StartRadius: 2, LastRadius: 6, PixelSize: 1,
	}, []float64{1, 2})

	path := filepath.Join(t.TempDir(), "mask.png")
	if err := SaveMask(img, path); err != nil {
		t.Fatalf("SaveMask failed: %v", err)
	}
}

// TestFireColor verifies the gradient endpoints and clamping
func TestFireColor(t *testing.T) {
	lo := fireColor(0)
	if lo != fireGradient[0].col {
		t.Errorf("Expected gradient start at t=0, got %v", lo)
	}
	r, g, b := fireColor(1).RGB255()
	if (color.RGBA{R: r, G: g, B: b}) != (color.RGBA{R: 255, G: 255, B: 255}) {
		t.Errorf("Expected white at t=1, got (%d,%d,%d)", r, g, b)
	}
	if fireColor(-0.5) != fireGradient[0].col {
		t.Errorf("Expected clamping below 0")
	}
}
