package browser

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an action failure. Kinds map one-to-one onto HTTP
// statuses at the handler boundary; nothing below the handlers knows
// about HTTP.
type Kind string

const (
	// KindMalformedInput marks a request rejected before execution.
	KindMalformedInput Kind = "malformed_input"

	// KindNotFound marks a selector that matched nothing, either
	// immediately for exact-match lookups or within the wait bound.
	KindNotFound Kind = "not_found"

	// KindTimeout marks a wait condition unmet within its bound.
	KindTimeout Kind = "timeout"

	// KindNavigation marks a page that failed to load or errored
	// mid-navigation.
	KindNavigation Kind = "navigation"

	// KindSessionFatal marks a crashed or uncreatable automation target.
	// The session is torn down and recreated on the next request.
	KindSessionFatal Kind = "session_fatal"

	// KindInternal marks any other execution failure.
	KindInternal Kind = "internal"
)

// Error is a classified action failure.
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

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies an underlying error with a message.
func WrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the classification of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsFatal reports whether err indicates the automation target is gone and
// the session must be recreated.
func IsFatal(err error) bool {
	if KindOf(err) == KindSessionFatal {
		return true
	}
	return isTargetGone(err)
}

// isTimeout detects driver-level timeout errors by message, since the
// driver does not expose a sentinel for them.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// isTargetGone detects a closed or crashed browser behind an otherwise
// ordinary driver error.
func isTargetGone(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"target closed",
		"browser has been closed",
		"target page, context or browser has been closed",
		"browser closed",
		"connection closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
