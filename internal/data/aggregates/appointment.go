package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/pestops-backend/internal/data/repos"
	types "github.com/yungbote/pestops-backend/internal/domain"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/domain/fieldservice"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
)

const appointmentTable = "appointment"

type AppointmentAggregateDeps struct {
	Base BaseDeps

	Projects     repos.ProjectRepo
	Appointments repos.AppointmentRepo
	Products     repos.TreatmentProductRepo
	Sheets       repos.OperationSheetRepo
	Registers    repos.RodentRegisterRepo
	Areas        repos.RodentAreaRepo
	Certificates repos.CertificateRepo
	Sequences    repos.SequenceRepo
	Duplications repos.DuplicationRecordRepo
}

type appointmentAggregate struct {
	deps AppointmentAggregateDeps
}

func NewAppointmentAggregate(deps AppointmentAggregateDeps) domainagg.AppointmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &appointmentAggregate{deps: deps}
}

func (a *appointmentAggregate) Contract() domainagg.Contract {
	return domainagg.AppointmentAggregateContract
}

func (a *appointmentAggregate) configured() bool {
	d := a.deps
	return d.Projects != nil && d.Appointments != nil && d.Products != nil && d.Sheets != nil &&
		d.Registers != nil && d.Areas != nil && d.Certificates != nil && d.Sequences != nil &&
		d.Duplications != nil
}

func (a *appointmentAggregate) notConfigured(op string) error {
	return domainagg.NewError(domainagg.CodeInternal, op, "appointment aggregate repos not configured", nil)
}

// AppointmentNumberSequence names the per-project counter appointment numbers come from.
func AppointmentNumberSequence(projectID uuid.UUID) string {
	return "appointment_number:" + projectID.String()
}

func (a *appointmentAggregate) CreateAppointment(ctx context.Context, in domainagg.CreateAppointmentInput) (domainagg.CreateAppointmentResult, error) {
	const op = "FieldService.Appointment.Create"
	var out domainagg.CreateAppointmentResult
	if in.ProjectID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing project_id", nil)
	}
	if in.DueDate.IsZero() {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing due_date", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		project, err := a.deps.Projects.GetByID(dbc, in.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return notFoundf("project", in.ProjectID)
		}
		if err := a.requireContractedServices(dbc, project.ID, in.ServiceIDs); err != nil {
			return err
		}

		number, err := a.deps.Sequences.Next(dbc, AppointmentNumberSequence(project.ID))
		if err != nil {
			return err
		}
		appt := &types.Appointment{
			ProjectID: project.ID,
			Number:    number,
			DueDate:   in.DueDate.UTC(),
		}
		if in.ActualDate != nil {
			actual := in.ActualDate.UTC()
			appt.ActualDate = &actual
		}
		if _, err := a.deps.Appointments.Create(dbc, []*types.Appointment{appt}); err != nil {
			return err
		}
		if err := a.deps.Appointments.ReplaceServices(dbc, appt.ID, in.ServiceIDs); err != nil {
			return err
		}

		sheet := &types.OperationSheet{AppointmentID: appt.ID, IsActive: true}
		if _, err := a.deps.Sheets.Create(dbc, []*types.OperationSheet{sheet}); err != nil {
			return err
		}
		register := &types.RodentRegister{AppointmentID: appt.ID, ServiceDate: appt.DueDate}
		if _, err := a.deps.Registers.Create(dbc, []*types.RodentRegister{register}); err != nil {
			return err
		}
		cert := &types.Certificate{AppointmentID: appt.ID}
		if _, err := a.deps.Certificates.Create(dbc, []*types.Certificate{cert}); err != nil {
			return err
		}

		out = domainagg.CreateAppointmentResult{
			AppointmentID:    appt.ID,
			Number:           number,
			OperationSheetID: sheet.ID,
			RodentRegisterID: register.ID,
			CertificateID:    cert.ID,
		}
		return nil
	})
	return out, err
}

// requireContractedServices rejects service ids the project has no contract for. Unknown
// ids fall out the same way since a contract row always names an existing service.
func (a *appointmentAggregate) requireContractedServices(dbc dbctx.Context, projectID uuid.UUID, serviceIDs []uuid.UUID) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	contracted, err := a.deps.Projects.ListServiceIDs(dbc, projectID)
	if err != nil {
		return err
	}
	allowed := make(map[uuid.UUID]bool, len(contracted))
	for _, id := range contracted {
		allowed[id] = true
	}
	for _, id := range serviceIDs {
		if !allowed[id] {
			return ValidationError(fmt.Sprintf("service %s is not contracted for this project", id))
		}
	}
	return nil
}

func (a *appointmentAggregate) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	const op = "FieldService.Appointment.Delete"
	if appointmentID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return a.notConfigured(op)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if _, err := a.loadOwner(dbc, appointmentID); err != nil {
			return err
		}
		ids := []uuid.UUID{appointmentID}
		if err := a.deps.Products.DeleteByAppointmentIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Sheets.DeleteByAppointmentIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Registers.DeleteByAppointmentIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Certificates.DeleteByAppointmentIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Duplications.DeleteByAppointmentIDs(dbc, ids); err != nil {
			return err
		}
		return a.deps.Appointments.FullDeleteByIDs(dbc, ids)
	})
}

func (a *appointmentAggregate) ReconcileTreatmentProducts(ctx context.Context, in domainagg.ReconcileTreatmentProductsInput) (domainagg.ReconcileResult, error) {
	const op = "FieldService.Appointment.ReconcileTreatmentProducts"
	out := domainagg.ReconcileResult{OwnerID: in.AppointmentID}
	if in.AppointmentID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}
	for i, item := range in.Items {
		if err := validateTreatmentProduct(item); err != nil {
			return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("item %d: %s", i, err.Error()), nil)
		}
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.loadOwner(dbc, in.AppointmentID)
		if err != nil {
			return err
		}
		res, err := reconcileCollection(dbc, owner.ID, a.treatmentProducts(), in.Items)
		if err != nil {
			return err
		}
		if err := a.bumpOwner(dbc, owner); err != nil {
			return err
		}
		out = res
		return nil
	})
	return out, err
}

func (a *appointmentAggregate) treatmentProducts() childCollection[domainagg.TreatmentProductItem] {
	products := a.deps.Products
	return childCollection[domainagg.TreatmentProductItem]{
		kind:   "treatment product",
		itemID: func(item domainagg.TreatmentProductItem) *uuid.UUID { return item.ID },
		listIDs: func(dbc dbctx.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
			rows, err := products.ListByAppointmentID(dbc, ownerID)
			if err != nil {
				return nil, err
			}
			ids := make([]uuid.UUID, 0, len(rows))
			for _, r := range rows {
				ids = append(ids, r.ID)
			}
			return ids, nil
		},
		currentVersion: func(dbc dbctx.Context, ownerID, id uuid.UUID) (int, bool, error) {
			row, err := products.GetByID(dbc, ownerID, id)
			if err != nil || row == nil {
				return 0, false, err
			}
			return row.Version, true, nil
		},
		update: func(dbc dbctx.Context, id uuid.UUID, expectedVersion, position int, item domainagg.TreatmentProductItem) (bool, error) {
			return products.UpdateByVersion(dbc, id, expectedVersion, map[string]interface{}{
				"position":           position,
				"product_name":       strings.TrimSpace(item.ProductName),
				"amount_and_solvent": strings.TrimSpace(item.AmountAndSolvent),
				"active_ingredient":  strings.TrimSpace(item.ActiveIngredient),
				"equipment_used":     item.EquipmentUsed,
				"applied_technique":  item.AppliedTechnique,
				"applied_service":    item.AppliedService,
			})
		},
		insert: func(dbc dbctx.Context, ownerID uuid.UUID, position int, item domainagg.TreatmentProductItem) (uuid.UUID, error) {
			row := &types.TreatmentProduct{
				AppointmentID:    ownerID,
				Position:         position,
				ProductName:      strings.TrimSpace(item.ProductName),
				AmountAndSolvent: strings.TrimSpace(item.AmountAndSolvent),
				ActiveIngredient: strings.TrimSpace(item.ActiveIngredient),
				EquipmentUsed:    item.EquipmentUsed,
				AppliedTechnique: item.AppliedTechnique,
				AppliedService:   item.AppliedService,
			}
			if _, err := products.Create(dbc, []*types.TreatmentProduct{row}); err != nil {
				return uuid.Nil, err
			}
			return row.ID, nil
		},
		deleteIDs: products.DeleteByIDs,
	}
}

func validateTreatmentProduct(item domainagg.TreatmentProductItem) error {
	switch {
	case strings.TrimSpace(item.ProductName) == "":
		return fmt.Errorf("productName is required")
	case strings.TrimSpace(item.AmountAndSolvent) == "":
		return fmt.Errorf("amountAndSolvent is required")
	case strings.TrimSpace(item.ActiveIngredient) == "":
		return fmt.Errorf("activeIngredient is required")
	}
	return nil
}

func (a *appointmentAggregate) PatchRodentRegister(ctx context.Context, in domainagg.PatchRodentRegisterInput) (domainagg.PatchRodentRegisterResult, error) {
	const op = "FieldService.Appointment.PatchRodentRegister"
	var out domainagg.PatchRodentRegisterResult
	if in.AppointmentID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return out, a.notConfigured(op)
	}
	if in.Areas != nil {
		for i, item := range *in.Areas {
			if err := validateRodentArea(item); err != nil {
				return out, domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("area %d: %s", i, err.Error()), nil)
			}
		}
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.loadOwner(dbc, in.AppointmentID)
		if err != nil {
			return err
		}
		register, err := a.ensureRodentRegister(dbc, owner)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.ServiceDate != nil {
			updates["service_date"] = in.ServiceDate.UTC()
		}
		if in.Incidents != nil {
			updates["incidents"] = *in.Incidents
		}
		if in.CorrectiveMeasures != nil {
			updates["corrective_measures"] = *in.CorrectiveMeasures
		}
		if len(updates) > 0 {
			ok, err := a.deps.Registers.UpdateByVersion(dbc, register.ID, register.Version, updates)
			if err != nil {
				return err
			}
			if err := RequireCASSuccess(ok, "rodent register changed concurrently"); err != nil {
				return err
			}
		}

		out.RodentRegisterID = register.ID
		if in.Areas != nil {
			res, err := reconcileCollection(dbc, register.ID, a.rodentAreas(), *in.Areas)
			if err != nil {
				return err
			}
			out.Areas = res
		}
		return a.bumpOwner(dbc, owner)
	})
	return out, err
}

func (a *appointmentAggregate) rodentAreas() childCollection[domainagg.RodentAreaItem] {
	areas := a.deps.Areas
	return childCollection[domainagg.RodentAreaItem]{
		kind:   "rodent area",
		itemID: func(item domainagg.RodentAreaItem) *uuid.UUID { return item.ID },
		listIDs: func(dbc dbctx.Context, registerID uuid.UUID) ([]uuid.UUID, error) {
			rows, err := areas.ListByRegisterID(dbc, registerID)
			if err != nil {
				return nil, err
			}
			ids := make([]uuid.UUID, 0, len(rows))
			for _, r := range rows {
				ids = append(ids, r.ID)
			}
			return ids, nil
		},
		currentVersion: func(dbc dbctx.Context, registerID, id uuid.UUID) (int, bool, error) {
			row, err := areas.GetByID(dbc, registerID, id)
			if err != nil || row == nil {
				return 0, false, err
			}
			return row.Version, true, nil
		},
		update: func(dbc dbctx.Context, id uuid.UUID, expectedVersion, position int, item domainagg.RodentAreaItem) (bool, error) {
			return areas.UpdateByVersion(dbc, id, expectedVersion, map[string]interface{}{
				"position":           position,
				"name":               strings.TrimSpace(item.Name),
				"station_count":      item.StationCount,
				"frequency":          item.Frequency,
				"consumption_result": item.ConsumptionResult,
				"outcome":            item.Outcome,
				"materials_used":     item.MaterialsUsed,
				"product_name":       strings.TrimSpace(item.ProductName),
				"product_dose":       strings.TrimSpace(item.ProductDose),
			})
		},
		insert: func(dbc dbctx.Context, registerID uuid.UUID, position int, item domainagg.RodentAreaItem) (uuid.UUID, error) {
			row := &types.RodentArea{
				RodentRegisterID:  registerID,
				Position:          position,
				Name:              strings.TrimSpace(item.Name),
				StationCount:      item.StationCount,
				Frequency:         item.Frequency,
				ConsumptionResult: item.ConsumptionResult,
				Outcome:           item.Outcome,
				MaterialsUsed:     item.MaterialsUsed,
				ProductName:       strings.TrimSpace(item.ProductName),
				ProductDose:       strings.TrimSpace(item.ProductDose),
			}
			if _, err := areas.Create(dbc, []*types.RodentArea{row}); err != nil {
				return uuid.Nil, err
			}
			return row.ID, nil
		},
		deleteIDs: areas.DeleteByIDs,
	}
}

func validateRodentArea(item domainagg.RodentAreaItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("name is required")
	case item.StationCount < 0:
		return fmt.Errorf("stationCount must be >= 0")
	case !item.Frequency.Valid():
		return fmt.Errorf("invalid frequency %q", item.Frequency)
	case !item.ConsumptionResult.Valid():
		return fmt.Errorf("invalid consumptionResult %q", item.ConsumptionResult)
	case !item.Outcome.Valid():
		return fmt.Errorf("invalid outcome %q", item.Outcome)
	case !item.MaterialsUsed.Valid():
		return fmt.Errorf("invalid materialsUsed %q", item.MaterialsUsed)
	}
	return nil
}

func (a *appointmentAggregate) PatchOperationSheet(ctx context.Context, in domainagg.PatchOperationSheetInput) error {
	const op = "FieldService.Appointment.PatchOperationSheet"
	if in.AppointmentID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return a.notConfigured(op)
	}
	updates, err := operationSheetUpdates(in.Changes)
	if err != nil {
		return domainagg.NewError(domainagg.CodeValidation, op, err.Error(), nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.loadOwner(dbc, in.AppointmentID)
		if err != nil {
			return err
		}
		sheet, err := a.ensureOperationSheet(dbc, owner)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			ok, err := a.deps.Sheets.UpdateByVersion(dbc, sheet.ID, sheet.Version, updates)
			if err != nil {
				return err
			}
			if err := RequireCASSuccess(ok, "operation sheet changed concurrently"); err != nil {
				return err
			}
		}
		return a.bumpOwner(dbc, owner)
	})
}

func operationSheetUpdates(changes map[string]string) (map[string]interface{}, error) {
	allowed := make(map[string]bool, len(fieldservice.OperationSheetDescriptiveColumns))
	for _, c := range fieldservice.OperationSheetDescriptiveColumns {
		allowed[c] = true
	}
	updates := make(map[string]interface{}, len(changes))
	for col, val := range changes {
		col = strings.TrimSpace(col)
		if !allowed[col] {
			return nil, fmt.Errorf("unknown operation sheet field %q", col)
		}
		switch col {
		case "insect_infestation_degree", "rodent_infestation_degree":
			degree := fieldservice.InfestationDegree(fieldservice.NormalizeEnum(val))
			if !degree.Valid() {
				return nil, fmt.Errorf("invalid %s %q", col, val)
			}
			updates[col] = degree
		default:
			updates[col] = val
		}
	}
	return updates, nil
}

func (a *appointmentAggregate) PatchCertificate(ctx context.Context, in domainagg.PatchCertificateInput) error {
	const op = "FieldService.Appointment.PatchCertificate"
	if in.AppointmentID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "appointment not found", nil)
	}
	if !a.configured() {
		return a.notConfigured(op)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		owner, err := a.loadOwner(dbc, in.AppointmentID)
		if err != nil {
			return err
		}
		cert, err := a.ensureCertificate(dbc, owner)
		if err != nil {
			return err
		}
		var expiration interface{}
		if in.ExpirationDate != nil {
			expiration = in.ExpirationDate.UTC()
		}
		ok, err := a.deps.Certificates.UpdateByVersion(dbc, cert.ID, cert.Version, map[string]interface{}{
			"expiration_date": expiration,
		})
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "certificate changed concurrently"); err != nil {
			return err
		}
		return a.bumpOwner(dbc, owner)
	})
}

func (a *appointmentAggregate) loadOwner(dbc dbctx.Context, appointmentID uuid.UUID) (*types.Appointment, error) {
	owner, err := a.deps.Appointments.GetByID(dbc, appointmentID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, notFoundf("appointment", appointmentID)
	}
	return owner, nil
}

// bumpOwner advances the appointment version read at the start of the write. A concurrent
// writer that committed against the same appointment in between makes this a conflict.
func (a *appointmentAggregate) bumpOwner(dbc dbctx.Context, owner *types.Appointment) error {
	ok, err := a.deps.Base.CASGuard.BumpVersion(dbc, appointmentTable, owner.ID, owner.Version)
	if err != nil {
		return err
	}
	return RequireCASSuccess(ok, "appointment changed concurrently")
}

func (a *appointmentAggregate) ensureOperationSheet(dbc dbctx.Context, owner *types.Appointment) (*types.OperationSheet, error) {
	sheet, err := a.deps.Sheets.GetByAppointmentID(dbc, owner.ID)
	if err != nil || sheet != nil {
		return sheet, err
	}
	sheet = &types.OperationSheet{AppointmentID: owner.ID, IsActive: true}
	if _, err := a.deps.Sheets.Create(dbc, []*types.OperationSheet{sheet}); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (a *appointmentAggregate) ensureRodentRegister(dbc dbctx.Context, owner *types.Appointment) (*types.RodentRegister, error) {
	register, err := a.deps.Registers.GetByAppointmentID(dbc, owner.ID)
	if err != nil || register != nil {
		return register, err
	}
	register = &types.RodentRegister{AppointmentID: owner.ID, ServiceDate: owner.DueDate}
	if _, err := a.deps.Registers.Create(dbc, []*types.RodentRegister{register}); err != nil {
		return nil, err
	}
	return register, nil
}

func (a *appointmentAggregate) ensureCertificate(dbc dbctx.Context, owner *types.Appointment) (*types.Certificate, error) {
	cert, err := a.deps.Certificates.GetByAppointmentID(dbc, owner.ID)
	if err != nil || cert != nil {
		return cert, err
	}
	cert = &types.Certificate{AppointmentID: owner.ID}
	if _, err := a.deps.Certificates.Create(dbc, []*types.Certificate{cert}); err != nil {
		return nil, err
	}
	return cert, nil
}
