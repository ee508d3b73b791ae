// Package analysis turns a raw (radius, count) intersection profile into a
// fitted model and scalar morphometric descriptors. Four methods are
// available: Linear (N), Normalized (N/S), Semi-log and Log-log, as described
// in Milosevic and Ristanovic, J Theor Biol (2007) 245(1)130-40; the original
// method is Sholl, DA. J Anat (1953) 87(4)387-406.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Method selects the Y transform and regression model of the analysis.
type Method int

const (
	// MethodLinear plots raw counts against radius and fits a polynomial of
	// configurable degree (4-8).
	MethodLinear Method = iota

	// MethodNormalized plots count/area (2D) or count/volume (3D) against
	// radius and fits a power law.
	MethodNormalized

	// MethodSemiLog plots ln(count/area-or-volume) against radius and reuses
	// the straight-line decay fit.
	MethodSemiLog

	// MethodLogLog plots ln(count/area-or-volume) against ln(radius) and fits
	// an exponential with constant offset.
	MethodLogLog
)

// String returns the display name of the method.
func (m Method) String() string {
	switch m {
	case MethodLinear:
		return "Intersections"
	case MethodNormalized:
		return "Norm. Intersections"
	case MethodSemiLog:
		return "Semi-Log"
	case MethodLogLog:
		return "Log-Log"
	}
	return "unknown"
}

// ParseMethod maps a configuration string to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "linear", "":
		return MethodLinear, nil
	case "normalized":
		return MethodNormalized, nil
	case "semilog":
		return MethodSemiLog, nil
	case "loglog":
		return MethodLogLog, nil
	}
	return 0, fmt.Errorf("unknown analysis method %q (want linear, normalized, semilog or loglog)", s)
}

// minFitPoints is the smallest sample size curve fitting is attempted on.
// Coefficients of determination from smaller samples are statistically
// unreliable, so fitting is silently disabled below it.
const minFitPoints = 7

// fitSearchIterations is the resolution of the bounded search for the fitted
// polynomial's local maximum. A coarse sampling search is used instead of a
// closed-form derivative root because the polynomial degree and shape are
// user-selected and may be ill-conditioned near the maximum.
const fitSearchIterations = 1000

// ErrEmptyProfile reports a profile whose intersection counts are all zero.
var ErrEmptyProfile = errors.New("all intersection counts were zero")

// Options configures the analysis of one profile.
type Options struct {
	Method           Method
	PolynomialDegree int  // 4-8, Linear method only
	FitCurve         bool // fit the transformed profile and derive descriptors
	ThreeD           bool // normalize by sphere volume instead of circle area
}

// Result holds the transformed series, the fitted model and the derived
// scalar descriptors. Descriptors that do not apply to the chosen method are
// NaN.
type Result struct {
	// X, Y is the transformed series the method plots and fits: the zero-count
	// pairs of the raw profile are discarded first.
	X, Y []float64

	// FitY holds the fitted model evaluated at X, nil when no fit was made.
	FitY []float64

	// Coeffs are the fitted model coefficients, nil when no fit was made.
	Coeffs []float64

	// RSquared is the goodness of fit of the primary model.
	RSquared float64

	// Decay is the Sholl decay constant: the slope of the linear regression of
	// ln(count/(pi r^2)) (2D) or ln(count/((4/3) pi r^3)) (3D) on radius. It is
	// computed for every method, with its own goodness of fit.
	Decay          float64
	DecayRSquared  float64
	DecayIntercept float64

	// CriticalValue and CriticalRadius locate the local maximum of the fitted
	// polynomial. MeanValue is the analytic mean of the fitted polynomial over
	// the X range. RamificationIndex is CriticalValue divided by the count at
	// the smallest non-zero radius. All four are Linear-method only.
	CriticalValue     float64
	CriticalRadius    float64
	MeanValue         float64
	RamificationIndex float64

	// FitPerformed reports whether a primary fit was made. Note carries the
	// diagnostic when fitting was requested but disabled or failed.
	FitPerformed bool
	Note         string
}

// Analyze transforms the profile per the selected method, performs the
// regression fit and derives the descriptors. Radii paired with a zero count
// are discarded before fitting; a profile with no non-zero counts is an
// ErrEmptyProfile failure.
func Analyze(radii, counts []float64, opts Options) (*Result, error) {
	if len(radii) != len(counts) {
		return nil, fmt.Errorf("profile length mismatch: %d radii, %d counts", len(radii), len(counts))
	}
	if opts.PolynomialDegree < 4 {
		opts.PolynomialDegree = 4
	}
	if opts.PolynomialDegree > 8 {
		opts.PolynomialDegree = 8
	}

	// Zero intersections are invalid under logarithmic and polynomial
	// extrapolation; long stretches of zeros also bend the fitted curve.
	var x, y, logY []float64
	for i := range radii {
		if counts[i] == 0 {
			continue
		}
		x = append(x, radii[i])
		y = append(y, counts[i])
		logY = append(logY, math.Log(counts[i]/normalizer(radii[i], opts.ThreeD)))
	}
	if len(x) == 0 {
		return nil, ErrEmptyProfile
	}

	res := &Result{
		CriticalValue:     math.NaN(),
		CriticalRadius:    math.NaN(),
		MeanValue:         math.NaN(),
		RamificationIndex: math.NaN(),
	}

	// The Sholl decay constant is reported regardless of the primary method.
	alpha, beta := stat.LinearRegression(x, logY, nil, false)
	res.DecayIntercept = alpha
	res.Decay = beta
	decayFit := make([]float64, len(x))
	for i := range x {
		decayFit[i] = alpha + beta*x[i]
	}
	res.DecayRSquared = rSquared(logY, decayFit)

	// Apply the method's axis transforms.
	switch opts.Method {
	case MethodLogLog:
		res.X = make([]float64, len(x))
		for i := range x {
			res.X[i] = math.Log(x[i])
		}
		res.Y = append([]float64(nil), logY...)
	case MethodSemiLog:
		res.X = append([]float64(nil), x...)
		res.Y = append([]float64(nil), logY...)
	case MethodNormalized:
		res.X = append([]float64(nil), x...)
		res.Y = make([]float64, len(x))
		for i := range x {
			res.Y[i] = math.Exp(logY[i])
		}
	default:
		res.X = append([]float64(nil), x...)
		res.Y = append([]float64(nil), y...)
	}

	if !opts.FitCurve {
		return res, nil
	}
	if len(x) < minFitPoints {
		res.Note = fmt.Sprintf("curve fitting not performed: %d non-zero points is not enough data", len(x))
		return res, nil
	}

	model, err := strategies[opts.Method](res.X, res.Y, opts.PolynomialDegree)
	if err != nil {
		res.Note = fmt.Sprintf("curve fitting not performed: %v", err)
		return res, nil
	}

	res.FitPerformed = true
	res.Coeffs = model.coeffs
	res.FitY = make([]float64, len(res.X))
	for i := range res.X {
		res.FitY[i] = model.predict(res.X[i])
	}
	res.RSquared = rSquared(res.Y, res.FitY)

	if opts.Method == MethodLinear {
		res.deriveDescriptors(model)
	}
	return res, nil
}

// normalizer is the area of the sampling circle or the volume of the sampling
// sphere at radius r.
func normalizer(r float64, threeD bool) float64 {
	if threeD {
		return math.Pi * r * r * r * 4.0 / 3.0
	}
	return math.Pi * r * r
}

// deriveDescriptors computes the Linear-method descriptors from the fitted
// polynomial: critical value/radius by a bounded sampling search around the
// highest fitted sample, mean value by term-wise antiderivative evaluation
// over the X range and the ramification (Schoenen) index as critical value
// over the count of primary branches.
func (r *Result) deriveDescriptors(model fitModel) {
	n := len(r.X)

	maxIdx := 0
	for i := range r.FitY {
		if r.FitY[i] > r.FitY[maxIdx] {
			maxIdx = i
		}
	}

	// Bracket the maximum by the midpoints towards the neighboring samples
	// and scan the bracket at fixed resolution.
	left := (r.X[maxInt(maxIdx-1, 0)] + r.X[maxIdx]) / 2
	right := (r.X[minInt(maxIdx+1, n-1)] + r.X[maxIdx]) / 2
	step := (right - left) / fitSearchIterations

	cv, cr := 0.0, 0.0
	for i := 0; i < fitSearchIterations; i++ {
		at := left + float64(i)*step
		if v := model.predict(at); v > cv {
			cv, cr = v, at
		}
	}
	r.CriticalValue = cv
	r.CriticalRadius = cr

	// Mean value: the height of the rectangle with the X-range width and the
	// same area as the one under the fitted curve.
	width := r.X[n-1] - r.X[0]
	mv := 0.0
	for i, c := range r.Coeffs {
		mv += c / float64(i+1) * math.Pow(width, float64(i))
	}
	r.MeanValue = mv

	// The count at the smallest non-zero radius approximates the number of
	// primary branches.
	r.RamificationIndex = cv / r.Y[0]
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
