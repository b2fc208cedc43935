package starkcrypto

import (
	"errors"
	"fmt"

	"github.com/smallyu/go-stark-crypto/internal/crypto/ecdsa"
	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

// ErrorKind identifies a kind of error. It satisfies the error interface so
// callers can match with errors.Is.
type ErrorKind string

const (
	// ErrOutOfRange is returned when an input is outside its allowed range:
	// field elements must be below p and message hashes below 2^251.
	ErrOutOfRange = ErrorKind("ErrOutOfRange")

	// ErrInvalidScalar is returned for a private key outside [1, n).
	ErrInvalidScalar = ErrorKind("ErrInvalidScalar")

	// ErrInvalidPublicKey is returned when no curve point has the given
	// x-coordinate.
	ErrInvalidPublicKey = ErrorKind("ErrInvalidPublicKey")

	// ErrInvalidInput is returned for signature components out of range.
	ErrInvalidInput = ErrorKind("ErrInvalidInput")

	// ErrDivisionByZero is returned when an inversion of zero is attempted.
	ErrDivisionByZero = ErrorKind("ErrDivisionByZero")

	// ErrSigningRetryRequired is returned when the derived nonce yields an
	// unusable signature. Retrying with a different seed succeeds.
	ErrSigningRetryRequired = ErrorKind("ErrSigningRetryRequired")

	// ErrRandomSource is returned when the caller's random source fails.
	ErrRandomSource = ErrorKind("ErrRandomSource")
)

func (e ErrorKind) Error() string {
	return string(e)
}

// Error is the error type returned by this package. It wraps both its Kind
// and the underlying error, so errors.Is matches either.
type Error struct {
	Kind        ErrorKind
	Description string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Description, e.Err)
	}
	return e.Description
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind ErrorKind, desc string, err error) *Error {
	return &Error{Kind: kind, Description: desc, Err: err}
}

// wrap maps an error from the internal packages onto an *Error.
func wrap(desc string, err error) error {
	if err == nil {
		return nil
	}
	var kind ErrorKind
	switch {
	case errors.Is(err, field.ErrOutOfRange):
		kind = ErrOutOfRange
	case errors.Is(err, field.ErrInvalidScalar):
		kind = ErrInvalidScalar
	case errors.Is(err, field.ErrDivisionByZero):
		kind = ErrDivisionByZero
	case errors.Is(err, ecdsa.ErrInvalidPublicKey):
		kind = ErrInvalidPublicKey
	case errors.Is(err, ecdsa.ErrSigningRetryRequired):
		kind = ErrSigningRetryRequired
	default:
		// ecdsa.ErrInvalidInput, ecdsa.ErrInvalidRecoveryID and anything
		// unexpected.
		kind = ErrInvalidInput
	}
	return newError(kind, desc, err)
}
