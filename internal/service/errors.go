package service

import (
	"errors"
	"fmt"

	"github.com/streamhub/video-catalog-go/internal/db"
)

// Kind classifies a service failure. Handlers map each kind to one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	default:
		return "internal"
	}
}

// Error is returned by every service operation that fails.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidArgument reports a caller mistake such as an unparsable id.
func InvalidArgument(message string, cause error) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message, Cause: cause}
}

func notFound(message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Cause: cause}
}

func invalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// storeError classifies a repository failure. Values the database rejects are
// the caller's fault; everything unrecognised is internal.
func storeError(err error, message string) *Error {
	switch {
	case db.IsInvalidInput(err):
		return InvalidArgument("request contains a value that cannot be stored", err)
	case db.IsDuplicateKey(err):
		return &Error{Kind: KindInvalidState, Message: "video already exists", Cause: err}
	default:
		return internal(message, err)
	}
}

// KindOf returns the kind of err, or KindInternal when err is not a service error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
