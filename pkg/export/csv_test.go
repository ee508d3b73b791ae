package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// TestWriteProfile verifies the written table round-trips through a CSV reader
func TestWriteProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.csv")
	x := []float64{1, 2.5, 3}
	y := []float64{4, 0, 1.25}

	if err := WriteProfile(path, "radius", "inters.", x, y); err != nil {
		t.Fatalf("WriteProfile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open written file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse written file: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "radius" || rows[0][1] != "inters." {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[2][0] != "2.5" || rows[2][1] != "0" {
		t.Errorf("Unexpected row %v", rows[2])
	}
}

// TestWriteProfileCreatesDirectory verifies that missing parent directories
// are created
func TestWriteProfileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "profile.csv")
	if err := WriteProfile(path, "x", "y", []float64{1}, []float64{2}); err != nil {
		t.Fatalf("WriteProfile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

// TestWriteProfileLengthMismatch verifies the column validation
func TestWriteProfileLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.csv")
	if err := WriteProfile(path, "x", "y", []float64{1, 2}, []float64{1}); err == nil {
		t.Error("Expected error for mismatched column lengths")
	}
}
