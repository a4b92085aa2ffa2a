package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrInvariant indicates invariant rule violation.
	ErrInvariant = errors.New("aggregate invariant violation")
	// ErrConflict indicates optimistic/concurrency conflict.
	ErrConflict = errors.New("aggregate conflict")
	// ErrRetryable indicates transient retryable failure.
	ErrRetryable = errors.New("aggregate retryable")
	// ErrNotFound indicates a missing owner or child target.
	ErrNotFound = errors.New("aggregate not found")
)

const (
	msgConflict         = "concurrent modification; retry with fresh data"
	msgMissingReference = "referenced record does not exist"
	msgRetryable        = "temporary failure, retry later"
	msgInternal         = "unexpected error"
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// InvariantError tags an error as invariant violation.
func InvariantError(msg string) error {
	return errors.Join(ErrInvariant, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// RetryableError tags an error as retryable failure.
func RetryableError(msg string) error {
	return errors.Join(ErrRetryable, errors.New(strings.TrimSpace(msg)))
}

// NotFoundError tags an error as a missing entity.
func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

func notFoundf(kind string, id uuid.UUID) error {
	return NotFoundError(fmt.Sprintf("%s %s not found", kind, id))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domainagg.Error); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrValidation):
		return wrapTagged(domainagg.CodeValidation, op, err)
	case errors.Is(err, ErrInvariant):
		return wrapTagged(domainagg.CodeInvariantViolation, op, err)
	case errors.Is(err, ErrConflict):
		return wrapTagged(domainagg.CodeConflict, op, err)
	case errors.Is(err, ErrRetryable):
		return wrapTagged(domainagg.CodeRetryable, op, err)
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return wrapTagged(domainagg.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.NewError(domainagg.CodeRetryable, op, msgRetryable, err)
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return domainagg.NewError(aggErr.Code, op, aggErr.Message, err)
	}

	// Driver text names tables and constraints, so it stays in Cause only.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.NewError(domainagg.CodeConflict, op, msgConflict, err) // unique_violation
		case "23503":
			return domainagg.NewError(domainagg.CodePreconditionFailed, op, msgMissingReference, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return domainagg.NewError(domainagg.CodeRetryable, op, msgRetryable, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "unique constraint failed"):
		return domainagg.NewError(domainagg.CodeConflict, op, msgConflict, err)
	case strings.Contains(msg, "foreign key constraint failed"):
		return domainagg.NewError(domainagg.CodePreconditionFailed, op, msgMissingReference, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return domainagg.NewError(domainagg.CodeRetryable, op, msgRetryable, err)
	default:
		return domainagg.NewError(domainagg.CodeInternal, op, msgInternal, err)
	}
}

// wrapTagged keeps only the human part of a joined sentinel error as the message.
func wrapTagged(code domainagg.ErrorCode, op string, err error) error {
	msg := err.Error()
	if parts := strings.SplitN(msg, "\n", 2); len(parts) == 2 {
		msg = parts[1]
	}
	return domainagg.NewError(code, op, msg, err)
}
