package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes aggregate failure semantics across domains.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error is the canonical aggregate error wrapper.
//
// Message is safe to show to callers. Cause is kept for logs only.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics. The cause text is
// kept for logs only; the caller sees the code's default message.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, "", err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// SafeMessage returns the caller-facing message of an aggregate error.
// Internal failures never leak their cause text.
func SafeMessage(err error) string {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return "unexpected error"
	}
	switch aggErr.Code {
	case CodeInternal:
		return "unexpected error"
	case CodeRetryable:
		return "temporary failure, retry later"
	}
	if msg := strings.TrimSpace(aggErr.Message); msg != "" {
		return msg
	}
	return defaultMessage(aggErr.Code)
}

func defaultMessage(code ErrorCode) string {
	switch code {
	case CodeNotFound:
		return "not found"
	case CodeConflict:
		return "concurrent modification; retry with fresh data"
	case CodeValidation:
		return "invalid request"
	case CodePreconditionFailed:
		return "referenced record does not exist"
	case CodeInvariantViolation:
		return "operation violates a record invariant"
	default:
		return "unexpected error"
	}
}

// Outcome is the coarse result of a core write: callers retry with fresh data on
// OutcomeConflict and give up on OutcomeError.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNotFound Outcome = "not_found"
	OutcomeConflict Outcome = "conflict"
	OutcomeError    Outcome = "error"
)

// OutcomeOf collapses an error returned by an aggregate into an Outcome.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	switch CodeOf(err) {
	case CodeNotFound:
		return OutcomeNotFound
	case CodeConflict:
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
