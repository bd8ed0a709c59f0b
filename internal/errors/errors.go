// Package errors implements QuickerSFV's error taxonomy: a small fixed
// set of codes describing which layer of the system failed, carried on
// a single typed, Unwrap-able error.
package errors

import (
	"fmt"
	"time"
)

// Code identifies which layer of the system a QError originated in.
// The set mirrors quicker_sfv::Error from the original implementation.
type Code string

const (
	// Failed is a requested operation that failed to complete for a
	// reason not covered by a more specific code.
	Failed Code = "failed"
	// SystemError is an error in a lower-level system facility (the
	// OS, the filesystem, a plugin's runtime).
	SystemError Code = "system_error"
	// FileIO is an error while performing file I/O.
	FileIO Code = "file_io"
	// HasherFailure is an error in a lower-level hashing facility.
	HasherFailure Code = "hasher_failure"
	// ParserError is an error while parsing a checksum file.
	ParserError Code = "parser_error"
	// PluginError is an error raised by an ffi-plugin.
	PluginError Code = "plugin_error"
)

// QError is the error type carried across every QuickerSFV package
// boundary. It always has a Code; FilePath and Op are optional context
// attached by the layer that produced it.
type QError struct {
	Code       Code
	Op         string
	FilePath   string
	Underlying error
	Timestamp  time.Time
}

// New creates a QError with the given code and operation name.
func New(code Code, op string, err error) *QError {
	return &QError{
		Code:       code,
		Op:         op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithFile attaches a file path to the error for display purposes.
func (e *QError) WithFile(path string) *QError {
	e.FilePath = path
	return e
}

// Error implements the error interface.
func (e *QError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s: %s failed for %s: %v", e.Code, e.Op, e.FilePath, e.Underlying)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Code, e.Op, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *QError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target is a *QError with the same Code, so
// errors.Is(err, &QError{Code: ParserError}) works without requiring
// every field to match.
func (e *QError) Is(target error) bool {
	t, ok := target.(*QError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extracts the Code from err if it is (or wraps) a *QError,
// otherwise returns Failed.
func CodeOf(err error) Code {
	var qe *QError
	if asQError(err, &qe) {
		return qe.Code
	}
	return Failed
}

func asQError(err error, target **QError) bool {
	for err != nil {
		if qe, ok := err.(*QError); ok {
			*target = qe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
