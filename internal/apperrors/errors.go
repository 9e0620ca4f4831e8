package apperrors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Kind classifies an error so callers can map it to a response code and
// decide whether retrying makes sense.
type Kind int

const (
	// KindValidation marks malformed or out-of-range input. Not retryable.
	KindValidation Kind = iota + 1
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindAuthorization marks an actor lacking rights over a resource.
	KindAuthorization
	// KindConflict marks state already changed by a concurrent operation.
	KindConflict
	// KindCapacity marks a ride with no seats remaining.
	KindCapacity
	// KindTransient marks a store fault the caller may retry.
	KindTransient
)

// String returns the machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAuthorization:
		return "FORBIDDEN"
	case KindConflict:
		return "CONFLICT"
	case KindCapacity:
		return "NO_SEATS_AVAILABLE"
	case KindTransient:
		return "SERVICE_UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// Error is the single error type that crosses the core boundary. Every
// store-level fault is reclassified into one of these before it leaves an
// operation; handlers never see a raw driver error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Authorization creates an authorization error.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Conflict creates a conflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Capacity creates a capacity error.
func Capacity(message string) *Error {
	return &Error{Kind: KindCapacity, Message: message}
}

// Transient creates a retryable store error wrapping the cause.
func Transient(message string, err error) *Error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 if err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Postgres error codes that need special classification.
const (
	pqUniqueViolation   = "23505"
	pqSerializationFail = "40001"
	pqDeadlockDetected  = "40P01"
	pqLockNotAvailable  = "55P03"
	pqQueryCanceled     = "57014"
)

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}

// FromStore reclassifies a store-level fault. Lock waits, deadlocks and
// serialization failures surface as retryable; unique violations surface as
// conflicts. Everything else is treated as a transient store fault.
func FromStore(message string, err error) *Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return &Error{Kind: KindConflict, Message: message, Err: err}
		case pqSerializationFail, pqDeadlockDetected, pqLockNotAvailable, pqQueryCanceled:
			return &Error{Kind: KindTransient, Message: message, Err: err}
		}
	}
	return &Error{Kind: KindTransient, Message: message, Err: err}
}
