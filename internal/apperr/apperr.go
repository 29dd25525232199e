package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so controllers and middleware can map it to an
// HTTP status and user-facing copy without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInvalidOrExpired
	KindNotFound
	KindTransport
	KindQuotaExceeded
	KindMissingCredentials
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidOrExpired:
		return "invalid_or_expired"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindMissingCredentials:
		return "missing_credentials"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
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

// Is lets errors.Is match two *Error values by Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func InvalidOrExpired(message string) *Error {
	return New(KindInvalidOrExpired, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Transport(message string, err error) *Error {
	return Wrap(KindTransport, message, err)
}

// KindOf extracts the Kind from any error in the chain, KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps a Kind to the status code the REST layer responds with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidOrExpired:
		return 400
	case KindMissingCredentials:
		return 401
	case KindNotFound:
		return 404
	case KindQuotaExceeded:
		return 429
	case KindTransport, KindEmptyResponse:
		return 502
	default:
		return 500
	}
}
