package application

import (
	"errors"
	"fmt"
)

// Kind tags an application error so handlers can switch on it instead of
// matching messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindInvalidCode
	KindExpired
	KindForbidden
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidCode:
		return "invalid_code"
	case KindExpired:
		return "expired"
	case KindForbidden:
		return "forbidden"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error is the failure half of every service result
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

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found failure regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrInvalidCode  = &Error{Kind: KindInvalidCode}
	ErrExpired      = &Error{Kind: KindExpired}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrUpstream     = &Error{Kind: KindUpstream}
)

var ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}

func fail(kind Kind, msg string) error { return &Error{Kind: kind, Message: msg} }

func upstream(msg string, err error) error { return &Error{Kind: KindUpstream, Message: msg, Err: err} }

// KindOf extracts the Kind of err; untagged errors are Upstream
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// MessageOf returns the client-safe message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUpstream && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}
