package service

import "fmt"

// ServiceError wraps errors from the service layer with operation context.
// It unwraps to the underlying error, so sentinel checks with errors.Is
// (e.g. store.ErrGoalNotFound, domain.ErrValidation) keep working through it.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_goal", "log_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError wraps err with operation context, preserving nil.
func newServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
