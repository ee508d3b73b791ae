// Package export writes the analysis output as delimited text. The profile
// table is the only durable artifact of a run; it carries no versioning and is
// re-derivable from the profile and the configuration.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteProfile writes a two-column (x, y) table to path as CSV, one row per
// sampled or fitted point. Column semantics follow the selected Y transform,
// so the caller supplies the labels.
func WriteProfile(path, xLabel, yLabel string, x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("column length mismatch: %d x values, %d y values", len(x), len(y))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{xLabel, yLabel}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range x {
		row := []string{
			strconv.FormatFloat(x[i], 'g', -1, 64),
			strconv.FormatFloat(y[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush profile file: %w", err)
	}
	return nil
}
