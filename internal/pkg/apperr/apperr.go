// Package apperr defines the tagged error kinds the central responder maps
// to HTTP statuses. Handlers and services never pick status codes themselves.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	AuthRequired Kind = iota + 1
	BadRequest
	Forbidden
	NotFound
	ServerError
	UpgradeRequired
)

func (k Kind) String() string {
	switch k {
	case AuthRequired:
		return "auth_required"
	case BadRequest:
		return "bad_request"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case UpgradeRequired:
		return "upgrade_required"
	default:
		return "server_error"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two apperr values by kind and message, so sentinel
// errors declared with New can be compared against wrapped copies.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, defaulting to ServerError for anything
// that is not an apperr value (driver errors, mail failures, panics).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ServerError
}
