package errors

import (
	"math"
)

// ValidatePositive returns an INVALID_CONFIGURATION error unless v is a finite
// number greater than zero. name identifies the offending option in the message.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfiguration, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfiguration, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateCount returns an INVALID_CONFIGURATION error unless n > 0.
func ValidateCount(name string, n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidConfiguration, "%s must be positive, got %d", name, n)
	}
	return nil
}

// ValidateNonEmpty returns an INVALID_CONFIGURATION error when a required
// ordered collection has no entries.
func ValidateNonEmpty(name string, length int) error {
	if length == 0 {
		return New(ErrCodeInvalidConfiguration, "%s cannot be empty", name)
	}
	return nil
}

// maxObjectCount bounds generated layouts so a mistyped flag or query
// parameter cannot allocate an unbounded scene.
const maxObjectCount = 100_000

// ValidateObjectCount validates the number of objects a randomized layout
// should place.
func ValidateObjectCount(n int) error {
	if err := ValidateCount("object count", n); err != nil {
		return err
	}
	if n > maxObjectCount {
		return New(ErrCodeInvalidConfiguration, "object count too large (max %d), got %d", maxObjectCount, n)
	}
	return nil
}
