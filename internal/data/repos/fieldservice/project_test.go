package fieldservice

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/pestops-backend/internal/data/repos/testutil"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

func TestProjectRepoContractedServices(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewProjectRepo(db, testutil.Logger(t))

	p := testutil.SeedProject(t, ctx, tx, "bakery")
	other := testutil.SeedProject(t, ctx, tx, "mill")
	s1 := testutil.SeedService(t, ctx, tx, "fumigation")
	s2 := testutil.SeedService(t, ctx, tx, "rodent control")
	testutil.SeedProjectServices(t, ctx, tx, p.ID, s1.ID, s2.ID)
	testutil.SeedProjectServices(t, ctx, tx, other.ID, s2.ID)

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil || got == nil || got.Name != "bakery" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByID(dbc, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetByID(missing): got=%v err=%v", got, err)
	}

	ids, err := repo.ListServiceIDs(dbc, p.ID)
	if err != nil || len(ids) != 2 {
		t.Fatalf("ListServiceIDs: err=%v ids=%v", err, ids)
	}
	want := map[uuid.UUID]bool{s1.ID: true, s2.ID: true}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("unexpected service %s", id)
		}
	}
	if ids, err := repo.ListServiceIDs(dbc, uuid.Nil); err != nil || len(ids) != 0 {
		t.Fatalf("ListServiceIDs(nil): err=%v ids=%v", err, ids)
	}
}
