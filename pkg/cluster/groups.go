// Package cluster partitions foreground sample coordinates into groups under
// an approximate-adjacency relation and counts them. The partition is the pure
// equivalence closure of "Euclidean distance <= threshold", so the count is
// independent of input order. The canonical threshold 1.5 makes the relation
// 8-connectivity in 2D; in 3D it joins face and edge neighbors but not corner
// neighbors (sqrt 3 exceeds the threshold).
package cluster

import "shollanalysis/pkg/geometry"

// AdjacencyThreshold is the canonical grouping distance.
const AdjacencyThreshold = 1.5

// ForegroundFunc reports whether an arbitrary image coordinate is foreground.
// Spike suppression probes coordinates that may fall outside the image; the
// function must treat those as background.
type ForegroundFunc func(x, y int) bool

// unionFind is a disjoint-set forest with path compression and union by size.
type unionFind struct {
	parent []int
	size   []int
	groups int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		groups: n,
	}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(i, j int) {
	ri, rj := u.find(i), u.find(j)
	if ri == rj {
		return
	}
	if u.size[ri] < u.size[rj] {
		ri, rj = rj, ri
	}
	u.parent[rj] = ri
	u.size[ri] += u.size[rj]
	u.groups--
}

// CountGroups counts the clusters in points under the adjacency threshold.
// Used directly for 3D shells, where no spike suppression applies.
func CountGroups(points []geometry.Point, threshold float64) int {
	u := partition(points, threshold)
	return u.groups
}

// CountGroups2D counts 2D clusters and, when suppress is set, applies the
// spike-suppression correction: a point that ends up alone in its own group
// whose 8-neighborhood matches one of the four staircase patterns is counted
// as a rasterization false positive and folded away. The correction only ever
// lowers the count and never alters the grouping of other points.
func CountGroups2D(points []geometry.Point, threshold float64, suppress bool, fg ForegroundFunc) int {
	u := partition(points, threshold)
	groups := u.groups

	if !suppress {
		return groups
	}

	for i, p := range points {
		if u.size[u.find(i)] != 1 {
			continue
		}
		if staircaseArtifact(p, fg) {
			groups--
		}
	}
	return groups
}

func partition(points []geometry.Point, threshold float64) *unionFind {
	u := newUnionFind(len(points))
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Distance(points[j]) <= threshold {
				u.union(i, j)
			}
		}
	}
	return u
}

// staircaseArtifact tests the 8-neighborhood of a lone foreground point
// against the four staircase patterns, one per diagonal orientation. The
// neighborhood is indexed
//
//	0 1 2      (dx,dy) = 0:(-1,+1) 1:(0,+1) 2:(+1,+1)
//	3 . 4               3:(-1, 0)           4:(+1, 0)
//	5 6 7               5:(-1,-1) 6:(0,-1)  7:(+1,-1)
//
// A match means the point sits on the stair edge of a thicker foreground
// region: the rasterized circle grazed the region tangentially and produced a
// spurious extra crossing.
func staircaseArtifact(p geometry.Point, fg ForegroundFunc) bool {
	var px [8]bool
	px[0] = fg(p.X-1, p.Y+1)
	px[1] = fg(p.X, p.Y+1)
	px[2] = fg(p.X+1, p.Y+1)
	px[3] = fg(p.X-1, p.Y)
	px[4] = fg(p.X+1, p.Y)
	px[5] = fg(p.X-1, p.Y-1)
	px[6] = fg(p.X, p.Y-1)
	px[7] = fg(p.X+1, p.Y-1)

	return (px[0] && px[1] && px[3] && !px[4] && !px[6] && !px[7]) ||
		(px[1] && px[2] && px[4] && !px[3] && !px[5] && !px[6]) ||
		(px[4] && px[6] && px[7] && !px[0] && !px[1] && !px[3]) ||
		(px[3] && px[5] && px[6] && !px[1] && !px[2] && !px[4])
}
