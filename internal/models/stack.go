package models

import (
	"image"
)

// Stack represents a segmented grayscale image stack. A single 2D image is a
// stack of depth 1. Values are stored as float64 intensities (0-255 for 8-bit
// input) in a 1D array in row-major, slice-major order.
type Stack struct {
	// Data is the voxel data as a 1D array in z*width*height + y*width + x order
	Data []float64

	// Width is the width of the stack in pixels
	Width int

	// Height is the height of the stack in pixels
	Height int

	// Depth is the number of slices in the stack (1 for a plain 2D image)
	Depth int

	// PixelSize is the physical size of a pixel/voxel edge. Radii supplied in
	// physical units are converted to pixel coordinates using this value.
	PixelSize float64
}

// ThresholdBand is the inclusive [Lower, Upper] intensity range that defines
// foreground. It is fixed for the duration of an analysis run.
type ThresholdBand struct {
	Lower float64
	Upper float64
}

// Contains reports whether an intensity value falls inside the band.
func (b ThresholdBand) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// NewStack creates an empty stack with the given dimensions.
func NewStack(width, height, depth int) *Stack {
	return &Stack{
		Data:      make([]float64, width*height*depth),
		Width:     width,
		Height:    height,
		Depth:     depth,
		PixelSize: 1.0,
	}
}

// NewStackFromImages builds a stack from decoded slice images. All slices must
// share the dimensions of the first one.
func NewStackFromImages(imgs []image.Image) *Stack {
	if len(imgs) == 0 {
		return nil
	}
	bounds := imgs[0].Bounds()
	s := NewStack(bounds.Dx(), bounds.Dy(), len(imgs))
	for z, img := range imgs {
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				// Luminance of a 16-bit-per-channel color, scaled to 0-255
				gray := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
				s.Set(x, y, z, gray)
			}
		}
	}
	return s
}

// Value returns the intensity at (x,y,z). Out-of-range coordinates read as 0:
// spike suppression probes neighbor coordinates that were never clipped to the
// image, so the accessor has to absorb them.
func (s *Stack) Value(x, y, z int) float64 {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return 0
	}
	return s.Data[z*s.Width*s.Height+y*s.Width+x]
}

// Set writes the intensity at (x,y,z). Out-of-range coordinates are ignored.
func (s *Stack) Set(x, y, z int, v float64) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return
	}
	s.Data[z*s.Width*s.Height+y*s.Width+x] = v
}

// Foreground reports whether the voxel at (x,y,z) falls inside the threshold
// band. Out-of-range coordinates are background.
func (s *Stack) Foreground(band ThresholdBand, x, y, z int) bool {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || z < 0 || z >= s.Depth {
		return false
	}
	return band.Contains(s.Data[z*s.Width*s.Height+y*s.Width+x])
}

// Is3D reports whether the stack holds more than one slice.
func (s *Stack) Is3D() bool {
	return s.Depth > 1
}

// ToGray renders slice z as an 8-bit grayscale image.
func (s *Stack) ToGray(z int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			v := s.Value(x, y, z)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			img.Pix[y*img.Stride+x] = uint8(v + 0.5)
		}
	}
	return img
}

// MaxProjection collapses the slice range [minZ, maxZ] into a 2D stack by
// taking the maximum intensity along z. Used when drawing the intersections
// mask for volumetric input.
func (s *Stack) MaxProjection(minZ, maxZ int) *Stack {
	if minZ < 0 {
		minZ = 0
	}
	if maxZ >= s.Depth {
		maxZ = s.Depth - 1
	}
	p := NewStack(s.Width, s.Height, 1)
	p.PixelSize = s.PixelSize
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			max := 0.0
			for z := minZ; z <= maxZ; z++ {
				if v := s.Value(x, y, z); v > max {
					max = v
				}
			}
			p.Set(x, y, 0, max)
		}
	}
	return p
}
