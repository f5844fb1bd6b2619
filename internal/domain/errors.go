package domain

import (
	"errors"
	"fmt"
)

// Sentinel kinds for engine errors. Use errors.Is against these to classify
// a ValidationError or SchedulingError without a type assertion.
var (
	ErrValidation = errors.New("validation error")
	ErrScheduling = errors.New("scheduling error")
)

// ValidationError reports malformed engine input (goal time, week index,
// weekday set, missing preferences).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SchedulingError reports a calendar window the engine cannot place workouts in,
// e.g. no selected weekday within 7 days of the race date.
type SchedulingError struct {
	Message string
}

func (e *SchedulingError) Error() string {
	return "scheduling error: " + e.Message
}

func (e *SchedulingError) Is(target error) bool {
	return target == ErrScheduling
}

// NewSchedulingError builds a SchedulingError with a formatted message.
func NewSchedulingError(format string, args ...interface{}) error {
	return &SchedulingError{Message: fmt.Sprintf(format, args...)}
}

// IsUserCorrectable reports whether err comes from bad input rather than a
// system failure. Callers present these as "please fix your settings".
func IsUserCorrectable(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrScheduling)
}
