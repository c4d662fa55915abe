// Package apperrors defines the error taxonomy shared by all services.
// Every failure carries a Kind used for HTTP status mapping and a stable
// machine-readable Code; the Message is safe to return to clients.
package apperrors

import "errors"

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAuthorization
	KindConflict
	KindExternal
	KindInternal
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code so that sentinel errors survive wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a copy of err. The original sentinel is left
// untouched so comparisons with errors.Is keep working.
func Wrap(err *Error, cause error) *Error {
	return &Error{Kind: err.Kind, Code: err.Code, Message: err.Message, Err: cause}
}

// KindOf returns the Kind of err, or KindInternal for unknown errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the stable code of err, or "Internal" for unknown errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "Internal"
}
