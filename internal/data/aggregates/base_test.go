package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/ctxutil"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type observedBase struct {
	deps  BaseDeps
	hooks *spyHooks
	logs  *observer.ObservedLogs
	spans *tracetest.SpanRecorder
}

func newObservedBase(t *testing.T) observedBase {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	hooks := &spyHooks{}
	return observedBase{
		deps: BaseDeps{
			Log:    &logger.Logger{SugaredLogger: zap.New(core).Sugar()},
			Runner: inlineTxRunner{},
			Hooks:  hooks,
			Tracer: tp.Tracer("pestops-test"),
		},
		hooks: hooks,
		logs:  logs,
		spans: spans,
	}
}

// onlySpan returns the single ended span with its aggregate.status attribute.
func (o observedBase) onlySpan(t *testing.T) (sdktrace.ReadOnlySpan, string) {
	t.Helper()
	ended := o.spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("spans: want=1 got=%d", len(ended))
	}
	for _, kv := range ended[0].Attributes() {
		if string(kv.Key) == "aggregate.status" {
			return ended[0], kv.Value.AsString()
		}
	}
	t.Fatalf("span %q has no aggregate.status", ended[0].Name())
	return nil, ""
}

func TestExecuteWriteSuccess(t *testing.T) {
	o := newObservedBase(t)
	const op = "FieldService.Appointment.PatchCertificate"

	if err := executeWrite(context.Background(), o.deps, op, func(_ dbctx.Context) error { return nil }); err != nil {
		t.Fatalf("executeWrite: %v", err)
	}
	if len(o.hooks.Operations) != 1 || o.hooks.Operations[0] != (spyOperation{Name: op, Status: "success"}) {
		t.Fatalf("operations: %+v", o.hooks.Operations)
	}
	span, status := o.onlySpan(t)
	if span.Name() != op || status != "success" || span.Status().Code == codes.Error {
		t.Fatalf("span: name=%q status=%q code=%v", span.Name(), status, span.Status().Code)
	}
	if o.logs.Len() != 0 {
		t.Fatalf("successful write must not log, got %d entries", o.logs.Len())
	}
}

func TestExecuteWriteUniqueViolationStaysOutOfSafeMessage(t *testing.T) {
	o := newObservedBase(t)
	const op = "FieldService.Appointment.DuplicateFromPrevious"
	driverText := "UNIQUE constraint failed: operation_sheet.appointment_id"

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{RequestID: "sync-42"})
	err := executeWrite(ctx, o.deps, op, func(_ dbctx.Context) error {
		return fmt.Errorf("insert sheet: %w", errors.New(driverText))
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("want conflict got %v", err)
	}
	if msg := domainagg.SafeMessage(err); msg != msgConflict || strings.Contains(msg, "operation_sheet") {
		t.Fatalf("safe message: %q", msg)
	}
	if len(o.hooks.Conflicts) != 1 || o.hooks.Conflicts[0] != op {
		t.Fatalf("conflicts: %+v", o.hooks.Conflicts)
	}

	entries := o.logs.FilterMessage("aggregate write rejected").All()
	if len(entries) != 1 || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("rejected write log: %+v", o.logs.All())
	}
	fields := entries[0].ContextMap()
	if cause, _ := fields["cause"].(string); !strings.Contains(cause, driverText) {
		t.Fatalf("driver text must stay in the log cause, got %v", fields["cause"])
	}
	if fields["op"] != op || fields["status"] != string(domainagg.CodeConflict) || fields["request_id"] != "sync-42" {
		t.Fatalf("log fields: %v", fields)
	}

	span, status := o.onlySpan(t)
	if span.Status().Code != codes.Error || span.Status().Description != "conflict" || status != "conflict" {
		t.Fatalf("span status: code=%v desc=%q attr=%q", span.Status().Code, span.Status().Description, status)
	}
}

func TestExecuteWriteMissingParentIsPreconditionFailed(t *testing.T) {
	o := newObservedBase(t)
	const op = "FieldService.Appointment.Create"

	err := executeWrite(context.Background(), o.deps, op, func(_ dbctx.Context) error {
		return &pgconn.PgError{Code: "23503", Message: `insert on table "appointment" violates foreign key constraint "fk_appointment_project"`}
	})
	if !domainagg.IsCode(err, domainagg.CodePreconditionFailed) {
		t.Fatalf("want precondition_failed got %v", err)
	}
	if msg := domainagg.SafeMessage(err); msg != msgMissingReference {
		t.Fatalf("safe message: %q", msg)
	}
	if entries := o.logs.FilterMessage("aggregate write failed").All(); len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("failed write log: %+v", o.logs.All())
	}
	if _, status := o.onlySpan(t); status != string(domainagg.CodePreconditionFailed) {
		t.Fatalf("span status attr: %q", status)
	}
}

func TestExecuteWriteInternalFailure(t *testing.T) {
	o := newObservedBase(t)
	const op = "FieldService.Appointment.PatchRodentRegister"

	err := executeWrite(context.Background(), o.deps, op, func(_ dbctx.Context) error {
		return errors.New(`relation "rodent_area" does not exist`)
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("want internal got %v", err)
	}
	if msg := domainagg.SafeMessage(err); msg != msgInternal {
		t.Fatalf("safe message: %q", msg)
	}
	entries := o.logs.FilterMessage("aggregate write failed").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("failed write log: %+v", o.logs.All())
	}
	if cause, _ := entries[0].ContextMap()["cause"].(string); !strings.Contains(cause, "rodent_area") {
		t.Fatalf("cause: %v", entries[0].ContextMap()["cause"])
	}
	if len(o.hooks.Operations) != 1 || o.hooks.Operations[0].Status != string(domainagg.CodeInternal) {
		t.Fatalf("operations: %+v", o.hooks.Operations)
	}
}

func TestExecuteWriteCountsRetriesAndInvariants(t *testing.T) {
	t.Run("serialization failure", func(t *testing.T) {
		o := newObservedBase(t)
		const op = "FieldService.Appointment.ReconcileTreatmentProducts"
		err := executeWrite(context.Background(), o.deps, op, func(_ dbctx.Context) error {
			return &pgconn.PgError{Code: "40001"}
		})
		if !domainagg.IsCode(err, domainagg.CodeRetryable) {
			t.Fatalf("want retryable got %v", err)
		}
		if len(o.hooks.Retries) != 1 || o.hooks.Retries[0] != op || len(o.hooks.Conflicts) != 0 {
			t.Fatalf("retries=%+v conflicts=%+v", o.hooks.Retries, o.hooks.Conflicts)
		}
	})

	t.Run("invariant", func(t *testing.T) {
		o := newObservedBase(t)
		err := executeWrite(context.Background(), o.deps, "FieldService.Appointment.Delete", func(_ dbctx.Context) error {
			return InvariantError("appointment still referenced")
		})
		if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
			t.Fatalf("want invariant_violation got %v", err)
		}
		if got := domainagg.SafeMessage(err); got != "appointment still referenced" {
			t.Fatalf("safe message: %q", got)
		}
		if len(o.hooks.Retries) != 0 || len(o.hooks.Conflicts) != 0 {
			t.Fatalf("invariant must not count as conflict or retry")
		}
	})
}

func TestExecuteReadSkipsWriteHooks(t *testing.T) {
	o := newObservedBase(t)
	const op = "FieldService.Appointment.ResolvePrevious"

	if err := executeRead(context.Background(), o.deps, op, func(_ dbctx.Context) error { return nil }); err != nil {
		t.Fatalf("executeRead: %v", err)
	}
	err := executeRead(context.Background(), o.deps, op, func(_ dbctx.Context) error {
		return NotFoundError("no previous appointment in project")
	})
	if domainagg.OutcomeOf(err) != domainagg.OutcomeNotFound {
		t.Fatalf("want not_found got %v", err)
	}
	if len(o.hooks.Operations) != 0 || len(o.hooks.Conflicts) != 0 {
		t.Fatalf("reads must not reach write hooks: %+v", o.hooks.Operations)
	}
	if o.logs.Len() != 0 {
		t.Fatalf("expected outcomes must not log, got %d", o.logs.Len())
	}
	if ended := o.spans.Ended(); len(ended) != 2 || ended[1].Status().Code != codes.Error {
		t.Fatalf("read spans: %d", len(ended))
	}

	err = executeRead(context.Background(), o.deps, op, func(_ dbctx.Context) error {
		return errors.New("sql: database is closed")
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("want internal got %v", err)
	}
	if entries := o.logs.FilterMessage("aggregate read failed").All(); len(entries) != 1 {
		t.Fatalf("read failure log: %+v", o.logs.All())
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	cases := map[string]error{
		"success":                                nil,
		string(domainagg.CodeInvariantViolation): InvariantError("x"),
		string(domainagg.CodeConflict):           ConflictError("x"),
		string(domainagg.CodeRetryable):          context.DeadlineExceeded,
		string(domainagg.CodeNotFound):           NotFoundError("appointment x not found"),
	}
	for want, err := range cases {
		if got := aggregateErrorStatus(err); got != want {
			t.Fatalf("aggregateErrorStatus(%v): want=%s got=%s", err, want, got)
		}
	}
}

// inlineTxRunner runs the body without a database, for tests of the write wrapper itself.
type inlineTxRunner struct{}

func (inlineTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
}

type spyOperation struct {
	Name   string
	Status string
}

func (h *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.Operations = append(h.Operations, spyOperation{Name: name, Status: status})
}

func (h *spyHooks) IncConflict(name string) {
	h.Conflicts = append(h.Conflicts, name)
}

func (h *spyHooks) IncRetry(name string) {
	h.Retries = append(h.Retries, name)
}
