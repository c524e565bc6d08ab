package engine

import (
	"errors"
	"fmt"
)

// ErrCorrelationUnavailable is returned when the baseline frequency has
// no usable simulation duration or no correlation factor is configured.
// Hybrid-Correlation degrades to the Hardware-Calibrated output when it
// sees this.
var ErrCorrelationUnavailable = errors.New("correlation unavailable")

// InsufficientDataError reports an empty or all-zero frequency point.
// The affected frequency is skipped where a denominator would be zero;
// the run continues for the other frequencies.
type InsufficientDataError struct {
	FrequencyMHz int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient simulation data for %dMHz", e.FrequencyMHz)
}

// DivisionByZeroError reports a zero denominator in a single record's
// formula. It is isolated to that record and never aborts the batch.
type DivisionByZeroError struct {
	Approach     string
	FrequencyMHz int
	Term         string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in %s at %dMHz (%s)", e.Approach, e.FrequencyMHz, e.Term)
}
