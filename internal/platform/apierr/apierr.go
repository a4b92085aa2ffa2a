package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromAggregate converts an aggregate write error into an HTTP error. The client-facing
// text is the aggregate's safe message; internal causes stay in the logs.
func FromAggregate(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	code := domainagg.CodeOf(err)
	safe := errors.New(domainagg.SafeMessage(err))
	switch code {
	case domainagg.CodeNotFound:
		return New(http.StatusNotFound, string(code), safe)
	case domainagg.CodeConflict:
		return New(http.StatusConflict, string(code), safe)
	case domainagg.CodeValidation:
		return New(http.StatusBadRequest, string(code), safe)
	case domainagg.CodeRetryable:
		return New(http.StatusServiceUnavailable, string(code), safe)
	case domainagg.CodePreconditionFailed, domainagg.CodeInvariantViolation:
		return New(http.StatusUnprocessableEntity, string(code), safe)
	default:
		return New(http.StatusInternalServerError, string(domainagg.CodeInternal), safe)
	}
}
