package aggregates

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/ctxutil"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

const tracerName = "github.com/yungbote/pestops-backend/internal/data/aggregates"

type BaseDeps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Runner   TxRunner
	Hooks    Hooks
	CASGuard CASGuard
	Tracer   trace.Tracer
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.CASGuard.db == nil {
		d.CASGuard = NewCASGuard(d.DB)
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Tracer == nil {
		d.Tracer = otel.Tracer(tracerName)
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	ctx, span := deps.Tracer.Start(ctx, op, trace.WithAttributes(attribute.String("aggregate.op", op)))
	defer span.End()

	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			deps.Hooks.IncConflict(op)
		}
		if domainagg.IsCode(mapped, domainagg.CodeRetryable) {
			deps.Hooks.IncRetry(op)
		}
		logWriteFailure(ctx, deps.Log, op, status, mapped)
		span.SetStatus(codes.Error, status)
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

// executeRead runs a lookup outside a transaction. It is traced like a write but never
// reaches the write hooks, and only unexpected failures are logged.
func executeRead(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	ctx, span := deps.Tracer.Start(ctx, op, trace.WithAttributes(attribute.String("aggregate.op", op)))
	defer span.End()

	mapped := MapError(op, fn(dbctx.Context{Ctx: ctx, Tx: deps.DB}))
	status := aggregateErrorStatus(mapped)
	if mapped != nil {
		span.SetStatus(codes.Error, status)
		switch domainagg.CodeOf(mapped) {
		case domainagg.CodeNotFound, domainagg.CodeValidation:
		default:
			deps.Log.Error("aggregate read failed", "op", op, "status", status, "request_id", ctxutil.RequestID(ctx), "error", mapped.Error(), "cause", errors.Unwrap(mapped))
		}
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	return mapped
}

// logWriteFailure keeps the full cause in logs; callers only ever see the safe message.
func logWriteFailure(ctx context.Context, log *logger.Logger, op, status string, err error) {
	fields := []interface{}{"op", op, "status", status, "error", err.Error()}
	if reqID := ctxutil.RequestID(ctx); reqID != "" {
		fields = append(fields, "request_id", reqID)
	}
	if cause := errors.Unwrap(err); cause != nil {
		fields = append(fields, "cause", cause.Error())
	}
	switch domainagg.CodeOf(err) {
	case domainagg.CodeNotFound, domainagg.CodeValidation, domainagg.CodeConflict:
		log.Info("aggregate write rejected", fields...)
	default:
		log.Error("aggregate write failed", fields...)
	}
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
