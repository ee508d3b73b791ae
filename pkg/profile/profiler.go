// Package profile drives the sampling phase of a Sholl analysis: for an
// ordered series of radii it samples circle circumferences (2D) or sphere
// shells (3D) around the center, classifies the sampled coordinates against
// the threshold band and counts the disjoint foreground groups crossing each
// radius.
package profile

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"shollanalysis/internal/models"
	"shollanalysis/pkg/cluster"
	"shollanalysis/pkg/geometry"
)

// CombineMode selects how the per-sub-sample counts of one nominal radius are
// folded into a single value.
type CombineMode int

const (
	CombineMean CombineMode = iota
	CombineMedian
)

// ParseCombineMode maps a configuration string to a CombineMode.
func ParseCombineMode(s string) (CombineMode, error) {
	switch s {
	case "mean", "":
		return CombineMean, nil
	case "median":
		return CombineMedian, nil
	}
	return 0, fmt.Errorf("unknown combine mode %q (want mean or median)", s)
}

// ProgressCallback is a function that reports progress during sampling.
// Implementations must be non-blocking; reporting is best effort.
type ProgressCallback func(completed, total int, message string)

// CancelFunc is polled between radii (2D) or between z-slices (3D). Returning
// true aborts the run; the partial profile accumulated so far is returned.
type CancelFunc func() bool

// ErrInvalidRadiusRange reports a radius series that yields fewer than two
// samples. Detected before any sampling begins.
var ErrInvalidRadiusRange = errors.New("ending radius must exceed starting radius by at least one step")

// Params holds the sampling configuration for one analysis run.
type Params struct {
	// CenterX, CenterY, CenterZ is the center of analysis in pixel
	// coordinates. CenterZ is the slice index, 0 for 2D input.
	CenterX, CenterY, CenterZ int

	// StartRadius, EndRadius, StepRadius define the radius series in physical
	// units: start, start+step, ... up to end inclusive.
	StartRadius float64
	EndRadius   float64
	StepRadius  float64

	// SamplesPerRadius is the number of integer sub-radii sampled per nominal
	// radius (2D only, clamped to 1-10). 3D analysis always takes one sample.
	SamplesPerRadius int

	// Combine selects mean or median folding of the sub-samples.
	Combine CombineMode

	// SpikeSuppression enables the 2D staircase-artifact correction.
	SpikeSuppression bool

	// Restrict limits the analysis to one side of the center ("above",
	// "below", "left", "right"); empty means the full circle/sphere.
	Restrict string
}

// Profile is the outcome of sampling: one combined intersection count per
// radius, in series order. Partial marks a cooperatively cancelled run; the
// entries present are still valid.
type Profile struct {
	Radii   []float64
	Counts  []float64
	Partial bool
}

// Profiler samples a stack across the configured radius series. It owns the
// only mutable state of a run (the accumulation buffers); the stack, band and
// bounds are read-only once Run starts.
type Profiler struct {
	stack  *models.Stack
	band   models.ThresholdBand
	bounds geometry.Bounds
	params Params
	radii  []float64

	// Progress, if set, receives best-effort progress reports.
	Progress ProgressCallback

	// Cancel, if set, is polled for cooperative cancellation.
	Cancel CancelFunc
}

// NewProfiler validates the radius series and prepares a profiler. An invalid
// series is reported before any sampling is performed.
func NewProfiler(stack *models.Stack, band models.ThresholdBand, params Params) (*Profiler, error) {
	if params.StepRadius <= 0 {
		params.StepRadius = stack.PixelSize
	}
	if params.StepRadius < stack.PixelSize {
		params.StepRadius = stack.PixelSize
	}
	if params.SamplesPerRadius < 1 {
		params.SamplesPerRadius = 1
	}
	if params.SamplesPerRadius > 10 {
		params.SamplesPerRadius = 10
	}

	if params.EndRadius <= params.StartRadius {
		return nil, ErrInvalidRadiusRange
	}
	size := int((params.EndRadius-params.StartRadius)/params.StepRadius) + 1
	if size <= 1 {
		return nil, ErrInvalidRadiusRange
	}

	radii := make([]float64, size)
	for i := range radii {
		radii[i] = params.StartRadius + float64(i)*params.StepRadius
	}

	maxRadius := int(math.Round(radii[size-1] / stack.PixelSize))
	bounds := geometry.ClipBounds(params.CenterX, params.CenterY, params.CenterZ,
		maxRadius, stack.Width, stack.Height, stack.Depth)
	bounds = bounds.RestrictHemi(params.Restrict, params.CenterX, params.CenterY)

	return &Profiler{
		stack:  stack,
		band:   band,
		bounds: bounds,
		params: params,
		radii:  radii,
	}, nil
}

// Radii returns the radius series the profiler will sample.
func (p *Profiler) Radii() []float64 {
	return p.radii
}

// Center returns the center of analysis in pixel coordinates.
func (p *Profiler) Center() (x, y, z int) {
	return p.params.CenterX, p.params.CenterY, p.params.CenterZ
}

// Bounds returns the clipped bounding region of the run.
func (p *Profiler) Bounds() geometry.Bounds {
	return p.bounds
}

// Run samples every radius in the series and returns the intersection
// profile. Cancellation mid-run is not an error: the profile returned holds
// the radii completed so far and is flagged Partial.
func (p *Profiler) Run() (*Profile, error) {
	if p.stack.Is3D() {
		return p.run3D()
	}
	return p.run2D()
}

func (p *Profiler) run2D() (*Profile, error) {
	size := len(p.radii)
	spans := p.params.SamplesPerRadius
	counts := make([]float64, 0, size)
	samples := make([]float64, spans)

	fg := func(x, y int) bool {
		return p.stack.Foreground(p.band, x, y, 0)
	}

	for i, r := range p.radii {
		if p.cancelled() {
			return &Profile{Radii: p.radii[:i], Counts: counts, Partial: true}, nil
		}

		// Largest integer sub-radius of this bin; sub-samples walk downwards.
		rbin := int(math.Round(r/p.stack.PixelSize)) + spans/2

		for j := 0; j < spans; j++ {
			points := geometry.CircumferencePoints(p.params.CenterX, p.params.CenterY, rbin, p.bounds)
			rbin--

			targets := make([]geometry.Point, 0, len(points))
			for _, pt := range points {
				if fg(pt.X, pt.Y) {
					targets = append(targets, pt)
				}
			}
			samples[j] = float64(cluster.CountGroups2D(targets, cluster.AdjacencyThreshold,
				p.params.SpikeSuppression, fg))
		}

		counts = append(counts, combine(samples, p.params.Combine))
		p.report(i+1, size, fmt.Sprintf("Sampling radius %d/%d", i+1, size))
	}

	return &Profile{Radii: p.radii, Counts: counts}, nil
}

func (p *Profiler) run3D() (*Profile, error) {
	size := len(p.radii)
	counts := make([]float64, 0, size)

	for i, r := range p.radii {
		rbin := int(math.Round(r / p.stack.PixelSize))

		var targets []geometry.Point
		zmin, zmax := geometry.ShellZRange(p.params.CenterZ, rbin, p.bounds)
		for z := zmin; z <= zmax; z++ {
			if p.cancelled() {
				return &Profile{Radii: p.radii[:i], Counts: counts, Partial: true}, nil
			}
			shell := geometry.ShellPointsAtZ(p.params.CenterX, p.params.CenterY, p.params.CenterZ,
				rbin, z, p.bounds)
			for _, pt := range shell {
				if p.stack.Foreground(p.band, pt.X, pt.Y, pt.Z) {
					targets = append(targets, pt)
				}
			}
		}

		counts = append(counts, float64(cluster.CountGroups(targets, cluster.AdjacencyThreshold)))
		p.report(i+1, size, fmt.Sprintf("Sampling sphere %d/%d", i+1, size))
	}

	return &Profile{Radii: p.radii, Counts: counts}, nil
}

func (p *Profiler) cancelled() bool {
	return p.Cancel != nil && p.Cancel()
}

func (p *Profiler) report(done, total int, msg string) {
	if p.Progress != nil {
		p.Progress(done, total, msg)
	}
}

// combine folds the sub-samples of one radius: arithmetic mean, or the median
// where an even-sized sample set averages the two central values.
func combine(samples []float64, mode CombineMode) float64 {
	if len(samples) == 1 {
		return samples[0]
	}
	if mode == CombineMean {
		return stat.Mean(samples, nil)
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2] + sorted[n/2-1]) / 2.0
	}
	return sorted[n/2]
}
