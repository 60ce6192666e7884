package schedule

import "errors"

// Sentinel outcomes. Cancellation is a first-class result of any prompt
// interaction, distinct from selecting nothing; callers treat it as a
// clean no-op rather than a failure.
var (
	ErrCancelled      = errors.New("cancelled by user")
	ErrNotOnboarded   = errors.New("note is not onboarded")
	ErrNotImplemented = errors.New("algorithm not implemented")
)

// ConfigError indicates the settings cannot support the requested
// operation (no methods registered, review option without a score).
// It aborts the operation cleanly with no partial mutation.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}
