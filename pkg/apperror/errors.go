// Package apperror classifies the failures the API can report.
package apperror

import (
	"errors"
	"fmt"
)

// Kind is the category of an application error.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindUnauthenticated   Kind = "unauthenticated"
	KindInvalidTransition Kind = "invalid_transition"
	KindDuplicate         Kind = "duplicate"
	KindEncoding          Kind = "encoding"
	KindNotification      Kind = "notification"
	KindPersistence       Kind = "persistence"
	KindInternal          Kind = "internal"
)

// Error carries a Kind and a client-safe message. Err holds the cause, if any.
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

// Is matches any *Error of the same Kind, so errors.Is(err, apperror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrDuplicate         = &Error{Kind: KindDuplicate}
	ErrEncoding          = &Error{Kind: KindEncoding}
	ErrPersistence       = &Error{Kind: KindPersistence}
)

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) error        { return New(KindValidation, msg) }
func NotFound(msg string) error          { return New(KindNotFound, msg) }
func Forbidden(msg string) error         { return New(KindForbidden, msg) }
func Unauthenticated(msg string) error   { return New(KindUnauthenticated, msg) }
func InvalidTransition(msg string) error { return New(KindInvalidTransition, msg) }
func Duplicate(msg string) error         { return New(KindDuplicate, msg) }

func Encoding(msg string, err error) error    { return Wrap(KindEncoding, msg, err) }
func Persistence(msg string, err error) error { return Wrap(KindPersistence, msg, err) }

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err, or a generic one for unclassified errors.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "internal server error"
}
