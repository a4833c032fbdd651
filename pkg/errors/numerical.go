package errors

import (
	"math"
)

// CheckFinite checks if values contain NaN or Inf and returns an error
// if numerical instability is detected.
func CheckFinite(operation string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewModelError(operation, "numerical instability: non-finite value", nil)
		}
	}
	return nil
}

// CheckFiniteScalar checks a single scalar value for numerical instability.
func CheckFiniteScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewModelError(operation, "numerical instability: non-finite value", nil)
	}
	return nil
}

// CheckFiniteMatrix checks all values in a matrix for numerical instability.
func CheckFiniteMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return NewModelError(operation, "numerical instability: non-finite value", nil)
			}
		}
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}
