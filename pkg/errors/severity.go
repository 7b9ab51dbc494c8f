// Package errors provides severity-aware error types.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ServiceError is a structured error with context.
type ServiceError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Source      string   `json:"source,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *ServiceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("[%s] %s: %s (source: %s)", e.Severity, e.Code, e.Message, e.Source)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Error codes
const (
	ErrCodeDatasetUnreadable = "DATASET_UNREADABLE"
	ErrCodeDatasetMalformed  = "DATASET_MALFORMED"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
)

// NewDatasetUnreadableError creates an error for files that cannot be opened.
func NewDatasetUnreadableError(path string, cause error) *ServiceError {
	return &ServiceError{
		Code:        ErrCodeDatasetUnreadable,
		Message:     fmt.Sprintf("failed to open dataset: %v", cause),
		Severity:    SeverityWarning,
		Source:      path,
		Recoverable: true,
	}
}

// NewDatasetMalformedError creates an error for files that cannot be parsed.
func NewDatasetMalformedError(path string, cause error) *ServiceError {
	return &ServiceError{
		Code:        ErrCodeDatasetMalformed,
		Message:     fmt.Sprintf("failed to parse dataset: %v", cause),
		Severity:    SeverityWarning,
		Source:      path,
		Recoverable: true,
	}
}

// NewStoreUnavailableError creates an error for unreachable backing stores.
func NewStoreUnavailableError(store string, cause error) *ServiceError {
	return &ServiceError{
		Code:        ErrCodeStoreUnavailable,
		Message:     fmt.Sprintf("store unavailable: %v", cause),
		Severity:    SeverityError,
		Source:      store,
		Recoverable: false,
	}
}
