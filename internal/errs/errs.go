// Package errs defines the failure taxonomy shared by the persistence layer
// and its callers.
//
// Every store failure surfaced to a caller is an *Error carrying exactly one
// Kind, a message and, where available, the underlying cause. Caller-input
// mistakes are reported separately through ErrInvalidArgument and never carry
// a Kind.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a persistence failure.
type Kind int

const (
	Unknown Kind = iota
	NotFound
	ConstraintViolation
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	ConnectionFailure
	TransactionFailure
	QueryFailure
)

var kindNames = map[Kind]string{
	Unknown:             "UNKNOWN",
	NotFound:            "NOT_FOUND",
	ConstraintViolation: "CONSTRAINT_VIOLATION",
	UniqueViolation:     "UNIQUE_VIOLATION",
	ForeignKeyViolation: "FOREIGN_KEY_VIOLATION",
	NotNullViolation:    "NOT_NULL_VIOLATION",
	ConnectionFailure:   "CONNECTION_FAILURE",
	TransactionFailure:  "TRANSACTION_FAILURE",
	QueryFailure:        "QUERY_FAILURE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsConstraint reports whether k is one of the constraint violation kinds.
func (k Kind) IsConstraint() bool {
	switch k {
	case ConstraintViolation, UniqueViolation, ForeignKeyViolation, NotNullViolation:
		return true
	}
	return false
}

// Retryable reports whether the same call may succeed later without any change
// from the caller. Only connection failures qualify.
func (k Kind) Retryable() bool {
	return k == ConnectionFailure
}

// Error is a classified persistence failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, errs.ErrNotFound)
// holds for every not-found failure regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound            = &Error{Kind: NotFound}
	ErrConstraintViolation = &Error{Kind: ConstraintViolation}
	ErrUniqueViolation     = &Error{Kind: UniqueViolation}
	ErrForeignKeyViolation = &Error{Kind: ForeignKeyViolation}
	ErrNotNullViolation    = &Error{Kind: NotNullViolation}
	ErrConnectionFailure   = &Error{Kind: ConnectionFailure}
	ErrTransactionFailure  = &Error{Kind: TransactionFailure}
	ErrQueryFailure        = &Error{Kind: QueryFailure}
	ErrUnknown             = &Error{Kind: Unknown}
)

// ErrInvalidArgument marks caller-input errors. They are returned before the
// store is touched.
var ErrInvalidArgument = errors.New("invalid argument")

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, message)
}

// Unsupported returns an error wrapping errors.ErrUnsupported.
func Unsupported(message string) error {
	return fmt.Errorf("%s: %w", message, errors.ErrUnsupported)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Unknown, false
}

// IsInvalidArgument reports whether err is a caller-input error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
