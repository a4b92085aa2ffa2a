package fieldservice

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/pestops-backend/internal/data/repos/testutil"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

func TestRodentRegisterRepoCascadesAreas(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	log := testutil.Logger(t)
	registers := NewRodentRegisterRepo(db, log)
	areas := NewRodentAreaRepo(db, log)

	p := testutil.SeedProject(t, ctx, tx, "p")
	a := testutil.SeedAppointment(t, ctx, tx, p.ID, 1, testutil.Date(2025, 1, 1))
	keep := testutil.SeedAppointment(t, ctx, tx, p.ID, 2, testutil.Date(2025, 2, 1))

	reg := testutil.SeedRodentRegister(t, ctx, tx, a.ID, testutil.Date(2025, 1, 10), "none")
	testutil.SeedRodentArea(t, ctx, tx, reg.ID, 0, "Storage")
	testutil.SeedRodentArea(t, ctx, tx, reg.ID, 1, "Kitchen")
	keepReg := testutil.SeedRodentRegister(t, ctx, tx, keep.ID, testutil.Date(2025, 2, 1), "")
	testutil.SeedRodentArea(t, ctx, tx, keepReg.ID, 0, "Dock")

	got, err := registers.GetByAppointmentID(dbc, a.ID)
	if err != nil || got == nil || got.ID != reg.ID {
		t.Fatalf("GetByAppointmentID: got=%v err=%v", got, err)
	}
	listed, err := areas.ListByRegisterID(dbc, reg.ID)
	if err != nil || len(listed) != 2 || listed[0].Name != "Storage" {
		t.Fatalf("ListByRegisterID: err=%v len=%d", err, len(listed))
	}

	if err := registers.DeleteByAppointmentIDs(dbc, []uuid.UUID{a.ID}); err != nil {
		t.Fatalf("DeleteByAppointmentIDs: %v", err)
	}
	if got, _ := registers.GetByAppointmentID(dbc, a.ID); got != nil {
		t.Fatalf("register survived delete")
	}
	if listed, _ := areas.ListByRegisterID(dbc, reg.ID); len(listed) != 0 {
		t.Fatalf("areas survived delete: %d", len(listed))
	}
	if listed, _ := areas.ListByRegisterID(dbc, keepReg.ID); len(listed) != 1 {
		t.Fatalf("unrelated areas removed: %d", len(listed))
	}
}
