package model

import "errors"

var (
	// ErrTransport marks network failures and non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrParse marks pages that lack the expected markers.
	ErrParse = errors.New("parse error")
	// ErrValidation marks content that was found but is inconsistent.
	ErrValidation = errors.New("validation error")
)

// ErrorKind is the category of a non-fatal per-month failure.
type ErrorKind string

const (
	KindTransport  ErrorKind = "transport"
	KindParse      ErrorKind = "parse"
	KindValidation ErrorKind = "validation"
	KindUnknown    ErrorKind = "unknown"
)

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindUnknown
	}
}
