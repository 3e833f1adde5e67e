package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed backend call so callers can choose between
// forcing a re-login, showing a form message, or offering a retry.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
	KindValidation
	KindServer
	KindMalformed
	// KindForbidden is a 403: the token is valid but may not do this.
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed response"
	case KindForbidden:
		return "forbidden"
	}
	return "unknown"
}

// Error is returned by every Client method that fails.
type Error struct {
	Kind   ErrorKind
	Op     string // e.g. "DELETE /services/42"
	Status int    // HTTP status, zero for network failures
	// Message is the backend's own explanation when it sent one.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, http.StatusText(e.Status), e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps an HTTP status to an ErrorKind.
func classify(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// KindOf returns the kind of err, or zero when err is not an *Error.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsUnauthorized reports whether the backend rejected the bearer token.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsRetryable reports whether repeating the same call may succeed:
// transport failures, timeouts and 5xx answers.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindServer:
		return true
	}
	return false
}

// UserMessage turns err into a sentence suitable for a flash message.
func UserMessage(err error, action string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return "Error " + action + "."
	}
	switch apiErr.Kind {
	case KindUnauthorized:
		return "Your session has expired. Please log in again."
	case KindNotFound:
		return "Error " + action + ": the record no longer exists."
	case KindForbidden:
		if apiErr.Message != "" {
			return "Error " + action + ": " + apiErr.Message
		}
		return "Error " + action + ": this account is not allowed to do that."
	case KindValidation:
		if apiErr.Message != "" {
			return "Error " + action + ": " + apiErr.Message
		}
		return "Error " + action + ": the backend rejected the data."
	case KindNetwork:
		return "Error " + action + ": the server could not be reached. Please try again."
	default:
		return "Error " + action + ". Please try again."
	}
}
