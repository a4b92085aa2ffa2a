package aggregates

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/pestops-backend/internal/domain"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

// PreviousInOrder returns the appointment immediately before targetID in ordered, or nil
// when target is first or absent. ordered must already be in project due-date order.
func PreviousInOrder(ordered []*types.Appointment, targetID uuid.UUID) *types.Appointment {
	for i, appt := range ordered {
		if appt.ID != targetID {
			continue
		}
		if i == 0 {
			return nil
		}
		return ordered[i-1]
	}
	return nil
}

func (a *appointmentAggregate) ResolvePrevious(ctx context.Context, targetAppointmentID uuid.UUID) (uuid.UUID, error) {
	const op = "FieldService.Appointment.ResolvePrevious"
	var out uuid.UUID
	if targetAppointmentID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		target, err := a.loadOwner(dbc, targetAppointmentID)
		if err != nil {
			return err
		}
		prev, err := a.previousOf(dbc, target)
		if err != nil {
			return err
		}
		out = prev.ID
		return nil
	})
	return out, err
}

// previousOf resolves the predecessor of target within its project. Cancelled appointments
// keep their place in the order.
func (a *appointmentAggregate) previousOf(dbc dbctx.Context, target *types.Appointment) (*types.Appointment, error) {
	ordered, err := a.deps.Appointments.ListByProjectOrdered(dbc, target.ProjectID)
	if err != nil {
		return nil, err
	}
	prev := PreviousInOrder(ordered, target.ID)
	if prev == nil {
		return nil, NotFoundError("no previous appointment in project")
	}
	return prev, nil
}
