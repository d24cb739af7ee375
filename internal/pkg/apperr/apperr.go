package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can pick a status code
// without inspecting driver or upstream error details.
type Kind int

const (
	KindConfiguration Kind = iota
	KindValidation
	KindAuthorization
	KindIngestion
	KindStorage
)

// Error carries a user-facing message plus an optional wrapped cause.
// The cause is for logs only and must never reach a response body.
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

func Configuration(msg string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Err: cause}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func Ingestion(msg string, cause error) *Error {
	return &Error{Kind: KindIngestion, Message: msg, Err: cause}
}

func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "Greška na serveru, pokušajte ponovo", Err: cause}
}

// KindOf returns the kind of err, or KindStorage when err is not an *Error.
// Unknown failures are treated as opaque server-side errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// MessageOf returns the user-facing message for err. Non-taxonomy errors
// collapse to a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Greška na serveru, pokušajte ponovo"
}
