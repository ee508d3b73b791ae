// Package geometry produces the integer sampling coordinates of the analysis:
// the Bresenham circumference of a circle in 2D and a thin spherical shell in
// 3D, both clipped to an axis-aligned bounding region.
package geometry

import "math"

// Point is an integer pixel/voxel coordinate. Z is 0 for 2D analysis.
type Point struct {
	X, Y, Z int
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	dz := float64(p.Z - q.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Bounds is the axis-aligned region sampling is restricted to. It is derived
// once per run from the largest radius and the image extent and is read-only
// afterwards. The circle sampler treats MaxX/MaxY as inclusive; the shell
// sampler scans x and y half-open and z inclusive, mirroring the reference
// behavior exactly.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
	MinZ, MaxZ int
}

// ClipBounds builds the bounding region for a run: a box of ±maxRadius around
// the center clipped against the image extent.
func ClipBounds(cx, cy, cz, maxRadius, width, height, depth int) Bounds {
	return Bounds{
		MinX: maxInt(cx-maxRadius, 0),
		MaxX: minInt(cx+maxRadius, width),
		MinY: maxInt(cy-maxRadius, 0),
		MaxY: minInt(cy+maxRadius, height),
		MinZ: maxInt(cz-maxRadius, 0),
		MaxZ: minInt(cz+maxRadius, depth-1),
	}
}

// RestrictHemi trims the region to one side of the center, turning the
// analysis into a hemicircle/hemisphere one. Side is one of "above", "below",
// "left", "right"; anything else leaves the bounds unchanged.
func (b Bounds) RestrictHemi(side string, cx, cy int) Bounds {
	switch side {
	case "above":
		b.MaxY = minInt(b.MaxY, cy)
	case "below":
		b.MinY = maxInt(b.MinY, cy)
	case "right":
		b.MinX = maxInt(b.MinX, cx)
	case "left":
		b.MaxX = minInt(b.MaxX, cx)
	}
	return b
}

// containsXY applies the inclusive 2D filter used by the circle sampler.
func (b Bounds) containsXY(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
