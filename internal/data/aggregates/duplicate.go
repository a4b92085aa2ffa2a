package aggregates

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/pestops-backend/internal/domain"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

const (
	recordOperationSheet = "operation_sheet"
	recordRodentRegister = "rodent_register"
	recordCertificate    = "certificate"
)

func (a *appointmentAggregate) DuplicateFromPrevious(ctx context.Context, targetAppointmentID uuid.UUID) (domainagg.DuplicateResult, error) {
	const op = "FieldService.Appointment.DuplicateFromPrevious"
	out := domainagg.DuplicateResult{TargetAppointmentID: targetAppointmentID}
	if targetAppointmentID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		target, err := a.loadOwner(dbc, targetAppointmentID)
		if err != nil {
			return err
		}
		source, err := a.previousOf(dbc, target)
		if err != nil {
			return err
		}

		res := domainagg.DuplicateResult{
			SourceAppointmentID: source.ID,
			TargetAppointmentID: target.ID,
		}
		if err := a.copyOperationSheet(dbc, source, target, &res); err != nil {
			return err
		}
		if err := a.copyRodentRegister(dbc, source, target, &res); err != nil {
			return err
		}
		if err := a.copyCertificate(dbc, source, target, &res); err != nil {
			return err
		}

		serviceIDs, err := a.deps.Appointments.ListServiceIDs(dbc, source.ID)
		if err != nil {
			return err
		}
		if err := a.deps.Appointments.ReplaceServices(dbc, target.ID, serviceIDs); err != nil {
			return err
		}
		res.ServiceIDs = serviceIDs

		if err := a.recordDuplication(dbc, res); err != nil {
			return err
		}
		if err := a.bumpOwner(dbc, target); err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

func (a *appointmentAggregate) copyOperationSheet(dbc dbctx.Context, source, target *types.Appointment, res *domainagg.DuplicateResult) error {
	src, err := a.deps.Sheets.GetByAppointmentID(dbc, source.ID)
	if err != nil {
		return err
	}
	if src == nil {
		res.Skipped = append(res.Skipped, recordOperationSheet)
		return nil
	}
	dst, err := a.deps.Sheets.GetByAppointmentID(dbc, target.ID)
	if err != nil {
		return err
	}
	if dst == nil {
		dst = &types.OperationSheet{AppointmentID: target.ID, IsActive: true}
		dst.CopyDescriptiveFrom(src)
		if _, err := a.deps.Sheets.Create(dbc, []*types.OperationSheet{dst}); err != nil {
			return err
		}
		res.OperationSheetID = dst.ID
		return nil
	}
	ok, err := a.deps.Sheets.UpdateByVersion(dbc, dst.ID, dst.Version, src.DescriptiveValues())
	if err != nil {
		return err
	}
	if err := RequireCASSuccess(ok, "target operation sheet changed concurrently"); err != nil {
		return err
	}
	res.OperationSheetID = dst.ID
	return nil
}

// copyRodentRegister copies the register scalars, service date included, and replaces the
// target's areas with fresh-identity clones of the source's.
func (a *appointmentAggregate) copyRodentRegister(dbc dbctx.Context, source, target *types.Appointment, res *domainagg.DuplicateResult) error {
	src, err := a.deps.Registers.GetByAppointmentID(dbc, source.ID)
	if err != nil {
		return err
	}
	if src == nil {
		res.Skipped = append(res.Skipped, recordRodentRegister)
		return nil
	}
	dst, err := a.deps.Registers.GetByAppointmentID(dbc, target.ID)
	if err != nil {
		return err
	}
	if dst == nil {
		dst = &types.RodentRegister{
			AppointmentID:      target.ID,
			ServiceDate:        src.ServiceDate,
			Incidents:          src.Incidents,
			CorrectiveMeasures: src.CorrectiveMeasures,
		}
		if _, err := a.deps.Registers.Create(dbc, []*types.RodentRegister{dst}); err != nil {
			return err
		}
	} else {
		ok, err := a.deps.Registers.UpdateByVersion(dbc, dst.ID, dst.Version, map[string]interface{}{
			"service_date":        src.ServiceDate,
			"incidents":           src.Incidents,
			"corrective_measures": src.CorrectiveMeasures,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "target rodent register changed concurrently"); err != nil {
			return err
		}
	}
	res.RodentRegisterID = dst.ID

	if err := a.deps.Areas.DeleteByRegisterID(dbc, dst.ID); err != nil {
		return err
	}
	srcAreas, err := a.deps.Areas.ListByRegisterID(dbc, src.ID)
	if err != nil {
		return err
	}
	if len(srcAreas) == 0 {
		return nil
	}
	clones := make([]*types.RodentArea, 0, len(srcAreas))
	for _, area := range srcAreas {
		clones = append(clones, area.CloneInto(dst.ID))
	}
	if _, err := a.deps.Areas.Create(dbc, clones); err != nil {
		return err
	}
	for _, c := range clones {
		res.ClonedAreaIDs = append(res.ClonedAreaIDs, c.ID)
	}
	return nil
}

func (a *appointmentAggregate) copyCertificate(dbc dbctx.Context, source, target *types.Appointment, res *domainagg.DuplicateResult) error {
	src, err := a.deps.Certificates.GetByAppointmentID(dbc, source.ID)
	if err != nil {
		return err
	}
	if src == nil {
		res.Skipped = append(res.Skipped, recordCertificate)
		return nil
	}
	dst, err := a.deps.Certificates.GetByAppointmentID(dbc, target.ID)
	if err != nil {
		return err
	}
	if dst == nil {
		dst = &types.Certificate{AppointmentID: target.ID, ExpirationDate: src.ExpirationDate}
		if _, err := a.deps.Certificates.Create(dbc, []*types.Certificate{dst}); err != nil {
			return err
		}
		res.CertificateID = dst.ID
		return nil
	}
	var expiration interface{}
	if src.ExpirationDate != nil {
		expiration = *src.ExpirationDate
	}
	ok, err := a.deps.Certificates.UpdateByVersion(dbc, dst.ID, dst.Version, map[string]interface{}{
		"expiration_date": expiration,
	})
	if err != nil {
		return err
	}
	if err := RequireCASSuccess(ok, "target certificate changed concurrently"); err != nil {
		return err
	}
	res.CertificateID = dst.ID
	return nil
}

func (a *appointmentAggregate) recordDuplication(dbc dbctx.Context, res domainagg.DuplicateResult) error {
	summary := map[string]any{
		"operation_sheet_id": res.OperationSheetID,
		"rodent_register_id": res.RodentRegisterID,
		"certificate_id":     res.CertificateID,
		"cloned_areas":       len(res.ClonedAreaIDs),
		"services":           len(res.ServiceIDs),
		"service_policy":     "replace",
		"skipped":            res.Skipped,
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	_, err = a.deps.Duplications.Create(dbc, &types.DuplicationRecord{
		SourceAppointmentID: res.SourceAppointmentID,
		TargetAppointmentID: res.TargetAppointmentID,
		Summary:             datatypes.JSON(raw),
	})
	return err
}
