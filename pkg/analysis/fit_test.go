package analysis

import (
	"math"
	"testing"
)

// TestFitPolynomialExact verifies that the QR solve recovers an exact
// low-degree polynomial
func TestFitPolynomialExact(t *testing.T) {
	coeffs := []float64{2, -1, 0.5} // 2 - x + 0.5x^2
	var x, y []float64
	for v := 0.0; v < 10; v++ {
		x = append(x, v)
		y = append(y, polynomial(coeffs)(v))
	}

	model, err := fitPolynomial(x, y, 4)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	for i, want := range coeffs {
		if !approx(model.coeffs[i], want, tol) {
			t.Errorf("Coefficient %d: expected %g, got %.6f", i, want, model.coeffs[i])
		}
	}
	for i := 3; i < len(model.coeffs); i++ {
		if !approx(model.coeffs[i], 0, tol) {
			t.Errorf("Coefficient %d: expected ~0, got %.6f", i, model.coeffs[i])
		}
	}
}

// TestFitPolynomialUnderdetermined verifies the sample-size guard
func TestFitPolynomialUnderdetermined(t *testing.T) {
	if _, err := fitPolynomial([]float64{1, 2, 3}, []float64{1, 2, 3}, 4); err == nil {
		t.Error("Expected error fitting degree 4 to 3 points")
	}
}

// TestFitLine verifies the straight-line fit on exact data
func TestFitLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 - 0.7*v
	}

	model, err := fitLine(x, y, 0)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !approx(model.coeffs[0], 3, tol) || !approx(model.coeffs[1], -0.7, tol) {
		t.Errorf("Expected coefficients (3, -0.7), got (%.4f, %.4f)",
			model.coeffs[0], model.coeffs[1])
	}
	if !approx(model.predict(10), 3-7, tol) {
		t.Errorf("Expected prediction %.4f at x=10, got %.4f", 3-7.0, model.predict(10))
	}
}

// TestFitPower verifies the power-law fit on exact data
func TestFitPower(t *testing.T) {
	x := []float64{1, 2, 4, 8, 16}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 * math.Pow(v, -1.5)
	}

	model, err := fitPower(x, y, 0)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !approx(model.coeffs[0], 3, tol) || !approx(model.coeffs[1], -1.5, tol) {
		t.Errorf("Expected coefficients (3, -1.5), got (%.4f, %.4f)",
			model.coeffs[0], model.coeffs[1])
	}

	if _, err := fitPower([]float64{1, -2}, []float64{1, 2}, 0); err == nil {
		t.Error("Expected error on non-positive data")
	}
}

// TestFitExpOffset checks that the Nelder-Mead fit converges close to an
// exact exponential-with-offset series
func TestFitExpOffset(t *testing.T) {
	var x, y []float64
	for v := 0.0; v <= 8; v += 0.5 {
		x = append(x, v)
		y = append(y, 2*math.Exp(-0.5*v)+1)
	}

	model, err := fitExpOffset(x, y, 0)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fitted := make([]float64, len(x))
	for i, v := range x {
		fitted[i] = model.predict(v)
	}
	if r2 := rSquared(y, fitted); r2 < 0.99 {
		t.Errorf("Expected R^2 above 0.99, got %.4f", r2)
	}
}

// TestRSquared covers the exact, degraded and degenerate cases
func TestRSquared(t *testing.T) {
	y := []float64{1, 2, 3, 4}
	if got := rSquared(y, y); got != 1 {
		t.Errorf("Expected R^2 of 1 on identical series, got %g", got)
	}
	if got := rSquared([]float64{5, 5, 5}, []float64{4, 5, 6}); got != 0 {
		t.Errorf("Expected R^2 of 0 on constant observations, got %g", got)
	}
	if got := rSquared(y, []float64{1, 2, 3, 8}); got >= 1 {
		t.Errorf("Expected degraded R^2 below 1, got %g", got)
	}
}
