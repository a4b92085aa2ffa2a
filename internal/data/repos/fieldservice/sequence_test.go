package fieldservice

import (
	"context"
	"testing"

	"github.com/yungbote/pestops-backend/internal/data/repos/testutil"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

func TestSequenceRepoNext(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewSequenceRepo(db, testutil.Logger(t))

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(dbc, "appointment_number:test")
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if got != want {
			t.Fatalf("Next: want=%d got=%d", want, got)
		}
	}
	if got, err := repo.Next(dbc, "appointment_number:other"); err != nil || got != 1 {
		t.Fatalf("independent counter: got=%d err=%v", got, err)
	}
	if _, err := repo.Next(dbc, "  "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
