package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/pestops-backend/internal/domain/fieldservice"
)

var AppointmentAggregateContract = Contract{
	Name:             "FieldService.AppointmentAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic reconciliation of appointment child collections and duplication from the previous appointment.",
}

// AppointmentAggregate owns the per-appointment record invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type AppointmentAggregate interface {
	Aggregate

	// CreateAppointment creates an appointment with its empty one-per-appointment records.
	CreateAppointment(ctx context.Context, in CreateAppointmentInput) (CreateAppointmentResult, error)

	// DeleteAppointment removes an appointment and every record it owns.
	DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error

	// ReconcileTreatmentProducts turns the desired product list into the persisted set.
	ReconcileTreatmentProducts(ctx context.Context, in ReconcileTreatmentProductsInput) (ReconcileResult, error)

	// PatchRodentRegister updates register scalars and optionally reconciles its areas.
	PatchRodentRegister(ctx context.Context, in PatchRodentRegisterInput) (PatchRodentRegisterResult, error)

	// PatchOperationSheet applies descriptive column changes to the appointment's sheet.
	PatchOperationSheet(ctx context.Context, in PatchOperationSheetInput) error

	// PatchCertificate sets or clears the certificate expiration date.
	PatchCertificate(ctx context.Context, in PatchCertificateInput) error

	// ResolvePrevious returns the appointment immediately before target in its project's
	// due-date order. A target with no predecessor is CodeNotFound.
	ResolvePrevious(ctx context.Context, targetAppointmentID uuid.UUID) (uuid.UUID, error)

	// DuplicateFromPrevious overwrites the target's records with the previous appointment's.
	DuplicateFromPrevious(ctx context.Context, targetAppointmentID uuid.UUID) (DuplicateResult, error)
}

type CreateAppointmentInput struct {
	ProjectID  uuid.UUID
	DueDate    time.Time
	ActualDate *time.Time
	ServiceIDs []uuid.UUID
}

type CreateAppointmentResult struct {
	AppointmentID    uuid.UUID
	Number           int64
	OperationSheetID uuid.UUID
	RodentRegisterID uuid.UUID
	CertificateID    uuid.UUID
}

// TreatmentProductItem is one desired product. A nil ID means insert.
type TreatmentProductItem struct {
	ID               *uuid.UUID
	ProductName      string
	AmountAndSolvent string
	ActiveIngredient string
	EquipmentUsed    *string
	AppliedTechnique *string
	AppliedService   *string
}

type ReconcileTreatmentProductsInput struct {
	AppointmentID uuid.UUID
	Items         []TreatmentProductItem
}

// ReconcileResult reports what a reconciliation did. FinalIDs is in list order.
type ReconcileResult struct {
	OwnerID     uuid.UUID
	InsertedIDs []uuid.UUID
	UpdatedIDs  []uuid.UUID
	DeletedIDs  []uuid.UUID
	FinalIDs    []uuid.UUID
}

// RodentAreaItem is one desired rodent area. A nil ID means insert.
type RodentAreaItem struct {
	ID                *uuid.UUID
	Name              string
	StationCount      int
	Frequency         fieldservice.AreaFrequency
	ConsumptionResult fieldservice.ConsumptionResult
	Outcome           fieldservice.AreaOutcome
	MaterialsUsed     fieldservice.MaterialsUsed
	ProductName       string
	ProductDose       string
}

// PatchRodentRegisterInput leaves nil fields untouched. A nil Areas keeps the current
// areas; a non-nil empty slice removes them all.
type PatchRodentRegisterInput struct {
	AppointmentID      uuid.UUID
	ServiceDate        *time.Time
	Incidents          *string
	CorrectiveMeasures *string
	Areas              *[]RodentAreaItem
}

type PatchRodentRegisterResult struct {
	RodentRegisterID uuid.UUID
	Areas            ReconcileResult
}

// PatchOperationSheetInput carries descriptive column -> value changes.
type PatchOperationSheetInput struct {
	AppointmentID uuid.UUID
	Changes       map[string]string
}

type PatchCertificateInput struct {
	AppointmentID  uuid.UUID
	ExpirationDate *time.Time
}

type DuplicateResult struct {
	SourceAppointmentID uuid.UUID
	TargetAppointmentID uuid.UUID
	OperationSheetID    uuid.UUID
	RodentRegisterID    uuid.UUID
	CertificateID       uuid.UUID
	ClonedAreaIDs       []uuid.UUID
	ServiceIDs          []uuid.UUID
	// Skipped names the records the source appointment did not have.
	Skipped []string
}
