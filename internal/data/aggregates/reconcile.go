package aggregates

import (
	"github.com/google/uuid"

	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

// ReconcilePlan is the diff between an owner's persisted children and the desired list.
// Inserts and Updates hold indexes into the desired list; Deletes holds persisted ids.
type ReconcilePlan struct {
	Inserts []int
	Updates []int
	Deletes []uuid.UUID
}

// PlanReconcile computes the diff without touching storage. A desired id that the owner
// does not currently hold is reported as not found: ids are never reassigned across owners.
func PlanReconcile(kind string, persisted []uuid.UUID, desired []*uuid.UUID) (ReconcilePlan, error) {
	var plan ReconcilePlan
	have := make(map[uuid.UUID]bool, len(persisted))
	for _, id := range persisted {
		have[id] = true
	}
	keep := make(map[uuid.UUID]bool, len(desired))
	for i, id := range desired {
		if id == nil || *id == uuid.Nil {
			plan.Inserts = append(plan.Inserts, i)
			continue
		}
		if !have[*id] {
			return ReconcilePlan{}, notFoundf(kind, *id)
		}
		keep[*id] = true
		plan.Updates = append(plan.Updates, i)
	}
	for _, id := range persisted {
		if !keep[id] {
			plan.Deletes = append(plan.Deletes, id)
		}
	}
	return plan, nil
}

// childCollection binds the reconciler to one child table. In is the desired-item type.
type childCollection[In any] struct {
	kind string

	itemID func(item In) *uuid.UUID
	// listIDs returns the owner's current child ids.
	listIDs func(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
	// currentVersion re-reads one child scoped to the owner.
	currentVersion func(dbc dbctx.Context, ownerID, id uuid.UUID) (version int, found bool, err error)
	update         func(dbc dbctx.Context, id uuid.UUID, expectedVersion, position int, item In) (bool, error)
	insert         func(dbc dbctx.Context, ownerID uuid.UUID, position int, item In) (uuid.UUID, error)
	deleteIDs      func(dbc dbctx.Context, ownerID uuid.UUID, ids []uuid.UUID) error
}

// reconcileCollection applies desired to the owner's children inside dbc's transaction.
// Position is the item's index in desired. Every update target is re-read right before it
// is written and guarded by its version, so a row removed or changed by a concurrent writer
// aborts the whole call instead of being resurrected or silently overwritten.
func reconcileCollection[In any](dbc dbctx.Context, ownerID uuid.UUID, c childCollection[In], desired []In) (domainagg.ReconcileResult, error) {
	out := domainagg.ReconcileResult{OwnerID: ownerID}

	persisted, err := c.listIDs(dbc, ownerID)
	if err != nil {
		return out, err
	}
	ids := make([]*uuid.UUID, len(desired))
	for i := range desired {
		ids[i] = c.itemID(desired[i])
	}
	plan, err := PlanReconcile(c.kind, persisted, ids)
	if err != nil {
		return out, err
	}

	if len(plan.Deletes) > 0 {
		if err := c.deleteIDs(dbc, ownerID, plan.Deletes); err != nil {
			return out, err
		}
		out.DeletedIDs = plan.Deletes
	}

	isUpdate := make(map[int]bool, len(plan.Updates))
	for _, i := range plan.Updates {
		isUpdate[i] = true
	}
	seenFinal := make(map[uuid.UUID]bool, len(desired))
	for i, item := range desired {
		if !isUpdate[i] {
			newID, err := c.insert(dbc, ownerID, i, item)
			if err != nil {
				return out, err
			}
			out.InsertedIDs = append(out.InsertedIDs, newID)
			out.FinalIDs = append(out.FinalIDs, newID)
			continue
		}

		id := *ids[i]
		version, found, err := c.currentVersion(dbc, ownerID, id)
		if err != nil {
			return out, err
		}
		if !found {
			return out, notFoundf(c.kind, id)
		}
		ok, err := c.update(dbc, id, version, i, item)
		if err != nil {
			return out, err
		}
		if err := RequireCASSuccess(ok, c.kind+" changed concurrently"); err != nil {
			return out, err
		}
		if !seenFinal[id] {
			seenFinal[id] = true
			out.UpdatedIDs = append(out.UpdatedIDs, id)
			out.FinalIDs = append(out.FinalIDs, id)
		}
	}
	return out, nil
}
