package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// fitModel is a fitted regression model: its coefficients and a predictor
// evaluating the model at one x value.
type fitModel struct {
	coeffs  []float64
	predict func(x float64) float64
}

// fitStrategy is a pure function from the (already transformed) series to a
// fitted model. degree is only meaningful for the polynomial strategy.
type fitStrategy func(x, y []float64, degree int) (fitModel, error)

// strategies maps each analysis method to its regression model:
// Linear fits a polynomial of configurable degree, Normalized a power law,
// Semi-log a straight line (the same model as the decay fit) and Log-log an
// exponential with constant offset.
var strategies = map[Method]fitStrategy{
	MethodLinear:     fitPolynomial,
	MethodNormalized: fitPower,
	MethodSemiLog:    fitLine,
	MethodLogLog:     fitExpOffset,
}

// fitPolynomial solves the Vandermonde least-squares system for a polynomial
// of the given degree via QR decomposition.
func fitPolynomial(x, y []float64, degree int) (fitModel, error) {
	n := len(x)
	m := degree + 1
	if n < m {
		return fitModel{}, fmt.Errorf("%d points cannot constrain a degree-%d polynomial", n, degree)
	}

	vand := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		v := 1.0
		for j := 0; j < m; j++ {
			vand.Set(i, j, v)
			v *= x[i]
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(vand)

	sol := mat.NewDense(m, 1, nil)
	if err := qr.SolveTo(sol, false, b); err != nil {
		return fitModel{}, fmt.Errorf("polynomial fit failed: %w", err)
	}

	coeffs := make([]float64, m)
	for j := 0; j < m; j++ {
		coeffs[j] = sol.At(j, 0)
	}
	return fitModel{coeffs: coeffs, predict: polynomial(coeffs)}, nil
}

// polynomial returns a Horner-scheme evaluator for the coefficients c0..cn.
func polynomial(coeffs []float64) func(float64) float64 {
	return func(x float64) float64 {
		v := 0.0
		for i := len(coeffs) - 1; i >= 0; i-- {
			v = v*x + coeffs[i]
		}
		return v
	}
}

// fitLine fits y = a + b*x by ordinary least squares.
func fitLine(x, y []float64, _ int) (fitModel, error) {
	if len(x) < 2 {
		return fitModel{}, errors.New("straight-line fit needs at least two points")
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return fitModel{
		coeffs:  []float64{alpha, beta},
		predict: func(x float64) float64 { return alpha + beta*x },
	}, nil
}

// fitPower fits y = a*x^b by linear regression in log-log space. All y values
// are positive here: the normalized method divides strictly positive counts by
// circle area or sphere volume.
func fitPower(x, y []float64, _ int) (fitModel, error) {
	logX := make([]float64, len(x))
	logY := make([]float64, len(y))
	for i := range x {
		if x[i] <= 0 || y[i] <= 0 {
			return fitModel{}, errors.New("power-law fit requires positive data")
		}
		logX[i] = math.Log(x[i])
		logY[i] = math.Log(y[i])
	}
	alpha, beta := stat.LinearRegression(logX, logY, nil, false)
	a := math.Exp(alpha)
	return fitModel{
		coeffs:  []float64{a, beta},
		predict: func(x float64) float64 { return a * math.Pow(x, beta) },
	}, nil
}

// fitExpOffset fits y = a*exp(b*x) + c by Nelder-Mead minimization of the
// residual sum of squares, seeded from the data extremes.
func fitExpOffset(x, y []float64, _ int) (fitModel, error) {
	if len(x) < 3 {
		return fitModel{}, errors.New("exponential fit needs at least three points")
	}

	sse := func(p []float64) float64 {
		s := 0.0
		for i := range x {
			r := y[i] - (p[0]*math.Exp(p[1]*x[i]) + p[2])
			s += r * r
		}
		return s
	}

	problem := optimize.Problem{Func: sse}
	result, err := optimize.Minimize(problem, expOffsetSeed(x, y), nil, &optimize.NelderMead{})
	if err != nil {
		return fitModel{}, fmt.Errorf("exponential fit failed: %w", err)
	}

	a, bb, c := result.X[0], result.X[1], result.X[2]
	return fitModel{
		coeffs:  []float64{a, bb, c},
		predict: func(x float64) float64 { return a*math.Exp(bb*x) + c },
	}, nil
}

// expOffsetSeed derives a starting simplex position for the exponential fit
// from the first, middle and last samples: the offset cancels out of the
// difference ratio, which pins down the rate, and the remaining two parameters
// follow directly. Exact for equally spaced exponential data; degenerate
// series fall back to a generic guess spanning the y range.
func expOffsetSeed(x, y []float64) []float64 {
	n := len(x)
	mid := n / 2

	den := y[mid] - y[0]
	num := y[n-1] - y[mid]
	if den != 0 && num/den > 0 && x[n-1] != x[mid] {
		b := math.Log(num/den) / (x[n-1] - x[mid])
		e1 := math.Exp(b * x[0])
		e3 := math.Exp(b * x[n-1])
		if e1 != e3 {
			a := (y[0] - y[n-1]) / (e1 - e3)
			return []float64{a, b, y[0] - a*e1}
		}
	}

	minY, maxY := y[0], y[0]
	for _, v := range y {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	a := maxY - minY
	if a == 0 {
		a = 1
	}
	return []float64{a, -1, minY}
}

// rSquared is the coefficient of determination of fitted against observed
// values. A constant observed series yields 0.
func rSquared(y, fitted []float64) float64 {
	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i := range y {
		ssRes += (y[i] - fitted[i]) * (y[i] - fitted[i])
		ssTot += (y[i] - mean) * (y[i] - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}
