package gridvalidate

import "errors"

var (
	ErrColumnNameRequired   = errors.New("gridvalidate: column name is required to perform validation")
	ErrUnknownValidatorType = errors.New("gridvalidate: unknown validator type")
	ErrInvalidThreshold     = errors.New("gridvalidate: invalid validator threshold")
	ErrNilGrid              = errors.New("gridvalidate: grid is nil")
	ErrValidatorTimeout     = errors.New("gridvalidate: validator timed out")
)

var (
	ErrRowRequired        = errors.New("gridvalidate: row is required to perform validation")
	ErrValidatorPanicked  = errors.New("gridvalidate: validator panicked")
	ErrValidatorNilResult = errors.New("gridvalidate: validator returned no result")
)
