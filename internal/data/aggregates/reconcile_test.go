package aggregates

import (
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
)

func TestPlanReconcile(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	plan, err := PlanReconcile("item", []uuid.UUID{a, b, c}, []*uuid.UUID{&b, nil, &a})
	if err != nil {
		t.Fatalf("PlanReconcile: %v", err)
	}
	if len(plan.Inserts) != 1 || plan.Inserts[0] != 1 {
		t.Fatalf("inserts: %v", plan.Inserts)
	}
	if len(plan.Updates) != 2 || plan.Updates[0] != 0 || plan.Updates[1] != 2 {
		t.Fatalf("updates: %v", plan.Updates)
	}
	if len(plan.Deletes) != 1 || plan.Deletes[0] != c {
		t.Fatalf("deletes: %v", plan.Deletes)
	}
}

func TestPlanReconcileEmptyDesiredDeletesAll(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	plan, err := PlanReconcile("item", []uuid.UUID{a, b}, nil)
	if err != nil {
		t.Fatalf("PlanReconcile: %v", err)
	}
	if len(plan.Deletes) != 2 || len(plan.Inserts) != 0 || len(plan.Updates) != 0 {
		t.Fatalf("plan: %+v", plan)
	}
}

func TestPlanReconcileNilUUIDIsInsert(t *testing.T) {
	nilID := uuid.Nil
	plan, err := PlanReconcile("item", nil, []*uuid.UUID{&nilID})
	if err != nil {
		t.Fatalf("PlanReconcile: %v", err)
	}
	if len(plan.Inserts) != 1 {
		t.Fatalf("inserts: %v", plan.Inserts)
	}
}

func TestPlanReconcileUnknownIDIsNotFound(t *testing.T) {
	stranger := uuid.New()
	_, err := PlanReconcile("item", []uuid.UUID{uuid.New()}, []*uuid.UUID{&stranger})
	mapped := MapError("op", err)
	if !domainagg.IsCode(mapped, domainagg.CodeNotFound) {
		t.Fatalf("want not_found got %v", mapped)
	}
	if got := domainagg.SafeMessage(mapped); got != "item "+stranger.String()+" not found" {
		t.Fatalf("message: %q", got)
	}
}
