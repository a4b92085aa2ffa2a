package aggregates

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

// TxRunner opens the transaction an aggregate write runs in.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db   *gorm.DB
	opts []*sql.TxOptions
}

// NewGormTxRunner returns a runner backed by gorm transactions. Duplication reads the
// previous appointment's records and writes the target's in one transaction, so on
// postgres the runner asks for a repeatable-read snapshot; a concurrent edit then fails
// with a serialization error that MapError reports as retryable. sqlite already
// serializes writers and ignores isolation levels. Inside an open transaction gorm uses
// a savepoint and the options do not apply.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	r := &gormTxRunner{db: db}
	if db != nil && db.Config != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		r.opts = []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead}}
	}
	return r
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "no database configured for appointment writes", nil)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	}, r.opts...)
}
