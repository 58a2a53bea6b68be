package task

import (
	"errors"

	domain "github.com/example/task-statistics/domain/task"
)

// Error codes carried in ServiceError.
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_FAILED"
)

// ServiceError reports a domain failure inside a request-reply response body.
// Typed errors do not survive the NATS boundary, so handlers encode them here and
// the adapter turns them back into domain errors.
type ServiceError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap rebuilds the domain error the code stands for.
func (e *ServiceError) Unwrap() error {
	switch e.Code {
	case ErrCodeNotFound:
		return domain.ErrNotFound
	case ErrCodeValidation:
		return &domain.ValidationError{Fields: e.Fields}
	}
	return nil
}

// toServiceError encodes known domain failures. Any other error is reported as false
// and travels as a transport-level error instead.
func toServiceError(err error) (*ServiceError, bool) {
	if errors.Is(err, domain.ErrNotFound) {
		return &ServiceError{Code: ErrCodeNotFound, Message: err.Error()}, true
	}
	if verr, ok := domain.IsValidationError(err); ok {
		return &ServiceError{Code: ErrCodeValidation, Message: verr.Error(), Fields: verr.Fields}, true
	}
	return nil, false
}
