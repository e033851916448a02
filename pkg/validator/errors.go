package validator

import "errors"

var (
	// ErrValidationFailed is the sentinel every ValidationErrors unwraps to.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnsupportedThreshold is returned when a threshold cannot be converted to a length bound.
	ErrUnsupportedThreshold = errors.New("unsupported threshold value")
)
