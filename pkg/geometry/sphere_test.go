package geometry

import (
	"math"
	"testing"
)

// unbounded3D never clips the tested shells
var unbounded3D = Bounds{
	MinX: -1 << 20, MaxX: 1 << 20,
	MinY: -1 << 20, MaxY: 1 << 20,
	MinZ: -1 << 20, MaxZ: 1 << 20,
}

// TestShellThickness verifies that every returned voxel lies within half a
// voxel of the ideal sphere surface
func TestShellThickness(t *testing.T) {
	const r = 4
	zmin, zmax := ShellZRange(0, r, unbounded3D)
	for z := zmin; z <= zmax; z++ {
		for _, p := range ShellPointsAtZ(0, 0, 0, r, z, unbounded3D) {
			d := math.Sqrt(float64(p.X*p.X + p.Y*p.Y + p.Z*p.Z))
			if math.Abs(d-r) >= 0.5 {
				t.Errorf("Voxel (%d,%d,%d) at distance %.3f is outside the shell", p.X, p.Y, p.Z, d)
			}
		}
	}
}

// TestShellCompleteness verifies against a brute-force box scan that no shell
// voxel is missed
func TestShellCompleteness(t *testing.T) {
	const r = 3
	got := make(map[Point]bool)
	zmin, zmax := ShellZRange(0, r, unbounded3D)
	for z := zmin; z <= zmax; z++ {
		for _, p := range ShellPointsAtZ(0, 0, 0, r, z, unbounded3D) {
			got[p] = true
		}
	}

	count := 0
	for z := -r; z <= r; z++ {
		for y := -r; y < r; y++ {
			for x := -r; x < r; x++ {
				d := math.Sqrt(float64(x*x + y*y + z*z))
				if math.Abs(d-r) < 0.5 {
					count++
					if !got[Point{X: x, Y: y, Z: z}] {
						t.Errorf("Shell voxel (%d,%d,%d) missing", x, y, z)
					}
				}
			}
		}
	}
	if len(got) != count {
		t.Errorf("Expected %d shell voxels, got %d", count, len(got))
	}
}

// TestShellZRangeClipping verifies that the z range honors the bounding region
func TestShellZRangeClipping(t *testing.T) {
	b := unbounded3D
	b.MinZ, b.MaxZ = 0, 10

	zmin, zmax := ShellZRange(2, 5, b)
	if zmin != 0 {
		t.Errorf("Expected zmin 0, got %d", zmin)
	}
	if zmax != 7 {
		t.Errorf("Expected zmax 7, got %d", zmax)
	}
}
