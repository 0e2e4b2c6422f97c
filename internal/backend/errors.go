package backend

import "fmt"

// ConfigError reports a configuration problem that must stop the process
// before any work is attempted: an unknown model selector or a missing
// credential for the selected variant.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend configuration error: %s: %v", e.Message, e.Cause)
	}

	return fmt.Sprintf("backend configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// CallError reports a failed completion call: a transport failure, a
// non-success response, or an error payload from the provider. Status and
// Body carry the full diagnostic payload when one was received.
type CallError struct {
	Provider string
	Status   int
	Body     string
	Cause    error
}

func (e *CallError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s call failed: status %d: %s", e.Provider, e.Status, e.Body)
	case e.Cause != nil:
		return fmt.Sprintf("%s call failed: %v", e.Provider, e.Cause)
	default:
		return fmt.Sprintf("%s call failed: %s", e.Provider, e.Body)
	}
}

func (e *CallError) Unwrap() error {
	return e.Cause
}
