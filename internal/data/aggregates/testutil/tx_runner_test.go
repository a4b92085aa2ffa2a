package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

func TestInjectedTxRunnerFailsOnlyTheChosenTransaction(t *testing.T) {
	commitErr := errors.New("connection reset during commit")
	r := &InjectedTxRunner{FailCommit: commitErr, FailOnTx: 2}

	var bodies int
	write := func(_ dbctx.Context) error { bodies++; return nil }

	if err := r.InTx(context.Background(), write); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := r.InTx(context.Background(), write); !errors.Is(err, commitErr) {
		t.Fatalf("second write: want commit error, got %v", err)
	}
	if err := r.InTx(context.Background(), write); err != nil {
		t.Fatalf("third write: %v", err)
	}
	if bodies != 3 {
		t.Fatalf("every body must run, ran %d", bodies)
	}
	if r.BeginCalls != 3 || r.CommitCalls != 2 || r.RollbackCalls != 1 {
		t.Fatalf("counters begin=%d commit=%d rollback=%d", r.BeginCalls, r.CommitCalls, r.RollbackCalls)
	}
}

func TestInjectedTxRunnerBodyErrorWins(t *testing.T) {
	bodyErr := errors.New("appointment not found")
	r := &InjectedTxRunner{FailCommit: errors.New("commit failed")}
	err := r.InTx(context.Background(), func(_ dbctx.Context) error { return bodyErr })
	if !errors.Is(err, bodyErr) {
		t.Fatalf("want body error, got %v", err)
	}
	if r.CommitCalls != 0 || r.RollbackCalls != 1 {
		t.Fatalf("counters commit=%d rollback=%d", r.CommitCalls, r.RollbackCalls)
	}
}

type recordingRunner struct{ calls int }

func (r *recordingRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.calls++
	return fn(dbctx.Context{Ctx: ctx})
}

func TestInjectedTxRunnerDelegatesToInner(t *testing.T) {
	inner := &recordingRunner{}
	r := &InjectedTxRunner{Inner: inner}
	if err := r.InTx(context.Background(), nil); err != nil {
		t.Fatalf("nil body: %v", err)
	}
	if inner.calls != 1 || r.CommitCalls != 1 {
		t.Fatalf("inner calls=%d commits=%d", inner.calls, r.CommitCalls)
	}
}
