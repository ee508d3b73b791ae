package geometry

import "math"

// ShellZRange returns the inclusive z range of the spherical shell of radius r
// centered at cz, clipped to the bounding region. The caller iterates this
// range one slice at a time so it can poll cancellation between slices.
func ShellZRange(cz, r int, b Bounds) (zmin, zmax int) {
	return maxInt(cz-r, b.MinZ), minInt(cz+r, b.MaxZ)
}

// ShellPointsAtZ returns the voxels of plane z that lie within 0.5 of the
// sphere of integer radius r centered at (cx, cy, cz), a thin-shell
// approximation of a perfect sphere. The scan is a brute-force sweep of the
// clipped bounding box, O(r^2) per slice.
func ShellPointsAtZ(cx, cy, cz, r, z int, b Bounds) []Point {
	xmin := maxInt(cx-r, b.MinX)
	ymin := maxInt(cy-r, b.MinY)
	xmax := minInt(cx+r, b.MaxX)
	ymax := minInt(cy+r, b.MaxY)

	var points []Point
	for y := ymin; y < ymax; y++ {
		for x := xmin; x < xmax; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			dz := float64(z - cz)
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if math.Abs(dist-float64(r)) < 0.5 {
				points = append(points, Point{X: x, Y: y, Z: z})
			}
		}
	}
	return points
}
