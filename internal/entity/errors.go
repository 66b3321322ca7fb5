package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Startup errors
	ErrConfiguration = errors.New("configuration error")

	// Upstream errors
	ErrRetrieval  = errors.New("vector store retrieval failed")
	ErrGeneration = errors.New("generation provider failed")

	// Validation errors
	ErrValidation       = errors.New("validation failed")
	ErrMissingField     = fmt.Errorf("%w: required field is missing", ErrValidation)
	ErrInvalidFormat    = fmt.Errorf("%w: invalid format", ErrValidation)
	ErrInvalidParameter = fmt.Errorf("%w: invalid parameter", ErrValidation)

	// File errors
	ErrInvalidFile      = fmt.Errorf("%w: invalid file", ErrValidation)
	ErrFileTooLarge     = fmt.Errorf("%w: file too large", ErrValidation)
	ErrInvalidExtension = fmt.Errorf("%w: invalid file extension", ErrValidation)
)
