package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors represent business logic failures.
// FetchError values match the kind sentinels below via errors.Is.
var (
	// ErrInvalidInput indicates a missing or blank fetch target.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessDenied indicates the target is outside the allowed domains or files.
	ErrAccessDenied = errors.New("access denied")

	// ErrHTTP indicates a non-2xx response or a failed request.
	ErrHTTP = errors.New("http error")

	// ErrRead indicates a local file could not be read.
	ErrRead = errors.New("read error")

	// ErrTimeout indicates the deadline passed before a response arrived.
	ErrTimeout = errors.New("timeout")

	// ErrConfig indicates malformed or missing startup configuration.
	// It is fatal: the server never starts with partial configuration.
	ErrConfig = errors.New("invalid configuration")

	// ErrUnsupportedType indicates no normaliser accepts a document.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ErrorKind identifies the failure class of a FetchError.
type ErrorKind int

const (
	// KindInvalidInput is a blank target.
	KindInvalidInput ErrorKind = iota
	// KindAccessDenied is a gate rejection.
	KindAccessDenied
	// KindHTTP is a remote failure other than a timeout.
	KindHTTP
	// KindRead is a local I/O failure.
	KindRead
	// KindTimeout is an exceeded deadline.
	KindTimeout
)

// String returns the label used for metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindAccessDenied:
		return "denied"
	case KindHTTP:
		return "http_error"
	case KindRead:
		return "read_error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindAccessDenied:
		return ErrAccessDenied
	case KindHTTP:
		return ErrHTTP
	case KindRead:
		return ErrRead
	case KindTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

// FetchError is the structured failure of a single fetch.
// Its Error text is what the tool boundary shows to the caller.
type FetchError struct {
	Kind ErrorKind

	// Target is the URL or canonical path that was attempted.
	Target string

	// Source is the kind of target, deciding which allow-set Allowed holds.
	Source SourceKind

	// Allowed is the allow-set at the time of denial.
	Allowed []string

	// Status and StatusText are set for HTTP errors. Status is 0 when no
	// response was received.
	Status     int
	StatusText string

	// Timeout is the deadline that expired, for KindTimeout.
	Timeout time.Duration

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindInvalidInput:
		return "Error: a URL or local path is required"
	case KindAccessDenied:
		if e.Source == SourceLocal {
			return fmt.Sprintf("Error: Local file not allowed: %s. Allowed files: %v", e.Target, e.Allowed)
		}
		return "Error: URL not allowed. Must start with one of the following domains: " +
			strings.Join(e.Allowed, ", ")
	case KindHTTP:
		if e.Status == 0 {
			return fmt.Sprintf("Encountered an HTTP error: %v", e.Err)
		}
		return fmt.Sprintf("Encountered an HTTP error: %d %s", e.Status, e.StatusText)
	case KindRead:
		return fmt.Sprintf("Error reading local file: %v", e.Err)
	case KindTimeout:
		return fmt.Sprintf("Encountered an HTTP error: request timed out after %s", e.Timeout)
	default:
		return fmt.Sprintf("Error: %v", e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *FetchError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// AsFetchError extracts a FetchError from err's chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
