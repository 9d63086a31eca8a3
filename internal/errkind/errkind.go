// Package errkind defines the error taxonomy shared by all pipeline stages.
// Errors are classified by kind, not by concrete type, so callers can decide
// on fallback behavior without knowing which stage produced the failure.
package errkind

import (
	"errors"
	"fmt"
)

// Kind identifies a failure class.
type Kind string

// Failure classes recognized by the pipeline.
const (
	// KindTransport covers TCP/DNS level failures reaching a remote endpoint.
	KindTransport Kind = "transport_error"
	// KindBackend covers non-2xx responses from a remote endpoint.
	KindBackend Kind = "backend_error"
	// KindParse covers response bodies that are not JSON even after lenient repair.
	KindParse Kind = "parse_error"
	// KindNormalization covers JSON payloads not reducible to the canonical shape.
	KindNormalization Kind = "normalization_error"
	// KindValidation covers layout proposals that violate invariants beyond repair.
	KindValidation Kind = "validation_error"
	// KindTimeout covers stages that exceeded their budget.
	KindTimeout Kind = "timeout_error"
)

// Error is a classified pipeline error. Stage names the producing stage
// ("search", "llm", "normalize", ...) for log correlation.
type Error struct {
	Kind    Kind
	Stage   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Stage, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a classified error.
func New(kind Kind, stage, message string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message, Cause: cause}
}

// Transport creates a KindTransport error.
func Transport(stage, message string, cause error) *Error {
	return New(KindTransport, stage, message, cause)
}

// Backend creates a KindBackend error.
func Backend(stage, message string, cause error) *Error {
	return New(KindBackend, stage, message, cause)
}

// Parse creates a KindParse error.
func Parse(stage, message string, cause error) *Error {
	return New(KindParse, stage, message, cause)
}

// Validation creates a KindValidation error.
func Validation(stage, message string, cause error) *Error {
	return New(KindValidation, stage, message, cause)
}

// Timeout creates a KindTimeout error.
func Timeout(stage, message string, cause error) *Error {
	return New(KindTimeout, stage, message, cause)
}

// KindOf extracts the Kind from err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
