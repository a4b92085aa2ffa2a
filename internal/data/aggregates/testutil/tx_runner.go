package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/pestops-backend/internal/data/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

// InjectedTxRunner wraps a real runner and can abort a transaction after its body has
// written, so tests can check that an appointment write leaves nothing behind. Without
// Inner the body runs with no database handle.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner aggregates.TxRunner

	// FailCommit aborts transaction number FailOnTx (1-based), or every transaction when
	// FailOnTx is zero.
	FailCommit error
	FailOnTx   int

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	var failCommit error
	if r.FailOnTx == 0 || r.FailOnTx == r.BeginCalls {
		failCommit = r.FailCommit
	}
	r.mu.Unlock()

	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failCommit
	}
	var err error
	if r.Inner != nil {
		err = r.Inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
