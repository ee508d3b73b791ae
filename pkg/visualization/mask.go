package visualization

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"shollanalysis/internal/models"
	"shollanalysis/pkg/geometry"
)

// MaskParams locates the mask drawing within the analyzed image.
type MaskParams struct {
	// CenterX, CenterY is the center of analysis in pixel coordinates.
	CenterX, CenterY int

	// StartRadius is the first sampled radius in physical units; LastRadius is
	// the largest sampled radius converted to pixels.
	StartRadius float64
	LastRadius  int

	// PixelSize converts physical radii to pixel radii.
	PixelSize float64
}

// IntersectionsMask paints a heatmap over the foreground pixels of the
// analyzed image: every foreground pixel crossed by the sampling circles of
// radius band i receives values[i] (the measured or fitted value at that
// radius), colorized with a fire-style gradient. Volumetric input is first
// collapsed by maximum projection over the bounded slice range.
func IntersectionsMask(src *models.Stack, band models.ThresholdBand, bounds geometry.Bounds,
	p MaskParams, values []float64) image.Image {

	if src.Is3D() {
		src = src.MaxProjection(bounds.MinZ, bounds.MaxZ)
	}

	heat := make([]float64, src.Width*src.Height)
	painted := make([]bool, src.Width*src.Height)

	drawSteps := len(values)
	firstRadius := int(math.Round(p.StartRadius / p.PixelSize))
	drawWidth := 0
	if drawSteps > 0 {
		drawWidth = int(math.Round(float64(p.LastRadius-firstRadius) / float64(drawSteps)))
	}
	if drawWidth < 1 {
		drawWidth = 1
	}

	drawRadius := firstRadius
	for i := 0; i < drawSteps; i++ {
		for j := 0; j < drawWidth; j++ {
			points := geometry.CircumferencePoints(p.CenterX, p.CenterY, drawRadius, bounds)
			drawRadius++
			for _, pt := range points {
				if src.Foreground(band, pt.X, pt.Y, 0) {
					idx := pt.Y*src.Width + pt.X
					heat[idx] = values[i]
					painted[idx] = true
				}
			}
		}
	}

	// Normalize the painted range and colorize.
	min, max := math.Inf(1), math.Inf(-1)
	for i, ok := range painted {
		if !ok {
			continue
		}
		min = math.Min(min, heat[i])
		max = math.Max(max, heat[i])
	}

	img := image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			idx := y*src.Width + x
			if !painted[idx] {
				continue
			}
			t := 1.0
			if max > min {
				t = (heat[idx] - min) / (max - min)
			}
			r, g, b := fireColor(t).RGB255()
			off := img.PixOffset(x, y)
			img.Pix[off] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = 255
		}
	}
	return img
}

// SaveMask writes the mask image to disk; the format follows the extension.
func SaveMask(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save mask: %w", err)
	}
	return nil
}

// fireGradient approximates the classic "Fire" lookup table.
var fireGradient = []struct {
	pos float64
	col colorful.Color
}{
	{0.0, colorful.Color{R: 0.05, G: 0.0, B: 0.2}},
	{0.25, colorful.Color{R: 0.6, G: 0.0, B: 0.1}},
	{0.5, colorful.Color{R: 1.0, G: 0.4, B: 0.0}},
	{0.75, colorful.Color{R: 1.0, G: 0.8, B: 0.0}},
	{1.0, colorful.Color{R: 1.0, G: 1.0, B: 1.0}},
}

// fireColor interpolates the gradient at t in [0, 1].
func fireColor(t float64) colorful.Color {
	if t <= 0 {
		return fireGradient[0].col
	}
	for i := 0; i < len(fireGradient)-1; i++ {
		lo, hi := fireGradient[i], fireGradient[i+1]
		if t <= hi.pos {
			frac := (t - lo.pos) / (hi.pos - lo.pos)
			return lo.col.BlendLuv(hi.col, frac).Clamped()
		}
	}
	return fireGradient[len(fireGradient)-1].col
}
