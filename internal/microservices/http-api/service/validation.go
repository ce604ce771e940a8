package service

import (
	"math"
	"strings"
)

const (
	minRating = 0
	maxRating = 5
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationError("%s is required", field)
	}
	return nil
}

// validateRating accepts 0 to 5 in half-point steps.
func validateRating(rating *float64) error {
	if rating == nil {
		return validationError("rating is required")
	}
	r := *rating
	if math.IsNaN(r) || r < minRating || r > maxRating {
		return validationError("rating must be between %d and %d", minRating, maxRating)
	}
	if r*2 != math.Trunc(r*2) {
		return validationError("rating must be a multiple of 0.5")
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
