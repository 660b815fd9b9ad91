package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriod is returned when a period cannot define a window.
var ErrInvalidPeriod = errors.New("period must be positive")

// InsufficientDataError reports that an engine received fewer observations
// than its period requires. It is an expected outcome, not a failure.
type InsufficientDataError struct {
	Engine    string
	Required  int
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: not enough data (need %d, have %d)", e.Engine, e.Required, e.Available)
}

// IsInsufficientData reports whether err (or anything it wraps) is an
// InsufficientDataError.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}

// AsInsufficientData extracts the InsufficientDataError from err, if any.
func AsInsufficientData(err error) (*InsufficientDataError, bool) {
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		return ide, true
	}
	return nil, false
}

func insufficient(engine string, required, available int) error {
	return &InsufficientDataError{Engine: engine, Required: required, Available: available}
}

// checkWindow validates period and input length for a windowed engine.
func checkWindow(engine string, period, available int) error {
	if period <= 0 {
		return fmt.Errorf("%s: %w", engine, ErrInvalidPeriod)
	}
	if available < period {
		return insufficient(engine, period, available)
	}
	return nil
}
