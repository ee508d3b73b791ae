package geometry

// CircumferencePoints returns the pixel coordinates along a one-pixel-wide
// circumference of integer radius r centered on (cx, cy), clipped to the
// bounding region.
//
// One octant is rasterized with the midpoint recurrence (the error term picks
// between stepping right and stepping down, ties stepping right) and reflected
// into the remaining seven octants. The reflection table regenerates the
// points shared by adjacent octants, so one point per octant block is dropped
// afterwards, leaving exactly 8r entries for an unclipped circle. The group
// counts downstream depend on the exact multiset, so the table layout and the
// dedup rule must not be reordered.
func CircumferencePoints(cx, cy, r int, b Bounds) []Point {
	if r < 0 {
		return nil
	}
	if r == 0 {
		// Degenerate circle: the center itself.
		if b.containsXY(cx, cy) {
			return []Point{{X: cx, Y: cy}}
		}
		return nil
	}

	// Rasterize the first octant relative to the center. The walk from (0, r)
	// to the 45 degree diagonal takes exactly r+1 steps.
	n := r + 1
	octX := make([]int, n)
	octY := make([]int, n)

	i, x, y, err := 0, 0, r, 0
	for x <= y {
		octX[i] = x
		octY[i] = y
		i++

		errR := err + 2*x + 1
		errD := err - 2*y + 1
		if abs(errD) < abs(errR) {
			y--
			err = errD
		} else {
			x++
			err = errR
		}
	}

	// Reflect the octant into all eight symmetry positions. Block layout and
	// indices mirror the reference so that the dedup below drops the same
	// entries.
	points := make([]Point, n*8)
	for i = 0; i < n; i++ {
		x, y = octX[i], octY[i]

		points[i] = Point{X: x + cx, Y: y + cy}
		points[n*4-i-1] = Point{X: x + cx, Y: -y + cy}
		points[n*8-i-1] = Point{X: -x + cx, Y: y + cy}
		points[n*4+i] = Point{X: -x + cx, Y: -y + cy}
		points[n*2-i-1] = Point{X: y + cx, Y: x + cy}
		points[n*2+i] = Point{X: y + cx, Y: -x + cy}
		points[n*6+i] = Point{X: -y + cx, Y: x + cy}
		points[n*6-i-1] = Point{X: -y + cx, Y: -x + cy}
	}

	// Drop the last entry of every octant block (the octant-boundary
	// duplicates) and everything outside the bounding region.
	refined := make([]Point, 0, len(points))
	for i, p := range points {
		if (i+1)%n == 0 {
			continue
		}
		if b.containsXY(p.X, p.Y) {
			refined = append(refined, p)
		}
	}
	return refined
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
