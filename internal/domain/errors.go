package domain

import (
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failure categories this library reports.
type ErrorKind string

const (
	// KindToolNotFound: the converter or probe executable did not respond to
	// a version check.
	KindToolNotFound ErrorKind = "tool_not_found"

	// KindExecutionFailed: the external process exited non-zero or failed to
	// spawn.
	KindExecutionFailed ErrorKind = "execution_failed"

	// KindCancelled: the caller stopped the conversion. Deliberately distinct
	// from KindExecutionFailed so "I stopped it" and "it broke" stay
	// distinguishable.
	KindCancelled ErrorKind = "cancelled"

	// KindCodecUnsupported: the requested codec is absent from the reported
	// capability lists.
	KindCodecUnsupported ErrorKind = "codec_unsupported"

	// KindFormatUnsupported: the requested container format is absent from
	// the reported capability lists.
	KindFormatUnsupported ErrorKind = "format_unsupported"

	// KindHardwareUnavailable: the codec exists but not under the requested
	// acceleration class, and software fallback was disallowed.
	KindHardwareUnavailable ErrorKind = "hardware_acceleration_unavailable"

	// KindInvalidConfiguration: pre-flight validation failed; no process was
	// spawned.
	KindInvalidConfiguration ErrorKind = "invalid_configuration"

	// KindInvalidInput: the input source is malformed or inaccessible.
	KindInvalidInput ErrorKind = "invalid_input"

	// KindInvalidOutput: the output destination is malformed or unwritable.
	KindInvalidOutput ErrorKind = "invalid_output"
)

// Error is the structured error type carried on every failure path. Kind is
// always set; the payload fields are populated per kind as described on the
// kind constants.
type Error struct {
	Kind    ErrorKind
	Message string

	// Execution failures.
	Command string
	Stderr  string

	// Capability failures.
	Codec     string
	Format    string
	Operation string // encode, decode, mux, demux

	// Hardware failures.
	Acceleration Acceleration

	// Validation failures, collected rather than short-circuited.
	Problems []string

	// Input/output failures.
	Path string

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Problems) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Problems, "; "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two Errors by kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err is or wraps an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
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

// NewToolNotFound reports a missing or unresponsive executable.
func NewToolNotFound(tool, path string, err error) *Error {
	return &Error{
		Kind:    KindToolNotFound,
		Message: fmt.Sprintf("%s binary not found at %q", tool, path),
		Path:    path,
		Err:     err,
	}
}

// NewExecutionFailed reports a non-zero exit or spawn failure with the full
// display command and accumulated diagnostic text for postmortem.
func NewExecutionFailed(msg, command, stderr string, err error) *Error {
	return &Error{
		Kind:    KindExecutionFailed,
		Message: msg,
		Command: command,
		Stderr:  stderr,
		Err:     err,
	}
}

// NewCancelled reports a caller-initiated stop.
func NewCancelled(command string) *Error {
	return &Error{
		Kind:    KindCancelled,
		Message: "conversion was cancelled",
		Command: command,
	}
}

// NewCodecUnsupported reports a codec absent from the capability lists.
func NewCodecUnsupported(codec, operation string) *Error {
	return &Error{
		Kind:      KindCodecUnsupported,
		Message:   fmt.Sprintf("codec %q is not supported for %s", codec, operation),
		Codec:     codec,
		Operation: operation,
	}
}

// NewFormatUnsupported reports a container format absent from the capability
// lists.
func NewFormatUnsupported(format, operation string) *Error {
	return &Error{
		Kind:      KindFormatUnsupported,
		Message:   fmt.Sprintf("format %q is not supported for %s", format, operation),
		Format:    format,
		Operation: operation,
	}
}

// NewHardwareUnavailable reports a codec with no mapping under the requested
// acceleration class when software fallback is disallowed.
func NewHardwareUnavailable(codec string, accel Acceleration) *Error {
	return &Error{
		Kind:         KindHardwareUnavailable,
		Message:      fmt.Sprintf("codec %q has no hardware encoder under %s", codec, accel),
		Codec:        codec,
		Acceleration: accel,
	}
}

// NewInvalidConfiguration carries the full collected validation problem list.
func NewInvalidConfiguration(problems []string) *Error {
	return &Error{
		Kind:     KindInvalidConfiguration,
		Message:  "invalid configuration",
		Problems: problems,
	}
}

// NewInvalidInput reports a malformed or inaccessible input source.
func NewInvalidInput(path, reason string, err error) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: reason,
		Path:    path,
		Err:     err,
	}
}

// NewInvalidOutput reports a malformed or unwritable output destination.
func NewInvalidOutput(path, reason string, err error) *Error {
	return &Error{
		Kind:    KindInvalidOutput,
		Message: reason,
		Path:    path,
		Err:     err,
	}
}
