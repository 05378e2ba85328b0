// Package domain contains custom error types for the application.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Base errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingDuration = errors.New("missing duration")
	ErrUnknownActivity = errors.New("unknown activity")
	ErrInvalidHeight   = errors.New("invalid height")
)

// MissingDurationError indicates the workout text has no recognizable
// duration phrase
type MissingDurationError struct {
	Input string
}

func (e *MissingDurationError) Error() string {
	return "please include a duration like '30 minutes' in your description"
}

func (e *MissingDurationError) Unwrap() error {
	return ErrMissingDuration
}

// NewMissingDurationError creates a new MissingDurationError
func NewMissingDurationError(input string) *MissingDurationError {
	return &MissingDurationError{Input: input}
}

// UnknownActivityError indicates no catalog activity was found in the
// workout text. Examples holds a few catalog names to suggest to the user.
type UnknownActivityError struct {
	Input    string
	Examples []string
}

func (e *UnknownActivityError) Error() string {
	if len(e.Examples) == 0 {
		return "couldn't detect a known activity in your description"
	}
	return fmt.Sprintf("couldn't detect a known activity; try including words like %s",
		strings.Join(e.Examples, ", "))
}

func (e *UnknownActivityError) Unwrap() error {
	return ErrUnknownActivity
}

// NewUnknownActivityError creates a new UnknownActivityError
func NewUnknownActivityError(input string, examples []string) *UnknownActivityError {
	return &UnknownActivityError{Input: input, Examples: examples}
}

// InvalidHeightError indicates a non-positive height was passed to the
// BMI calculation
type InvalidHeightError struct {
	HeightCm float64
}

func (e *InvalidHeightError) Error() string {
	return fmt.Sprintf("height must be greater than zero, got %.1f cm", e.HeightCm)
}

func (e *InvalidHeightError) Unwrap() error {
	return ErrInvalidHeight
}

// NewInvalidHeightError creates a new InvalidHeightError
func NewInvalidHeightError(heightCm float64) *InvalidHeightError {
	return &InvalidHeightError{HeightCm: heightCm}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [field=%s]: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
