package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/domain/fieldservice"
)

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Project {
	tb.Helper()
	p := &types.Project{
		ID:         uuid.New(),
		Name:       name,
		ClientName: "client " + name,
		Address:    "street 1",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedService(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Service {
	tb.Helper()
	s := &types.Service{
		ID:   uuid.New(),
		Name: name + "-" + uuid.NewString()[:8],
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed service: %v", err)
	}
	return s
}

// SeedProjectServices puts serviceIDs under contract for projectID.
func SeedProjectServices(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, serviceIDs ...uuid.UUID) {
	tb.Helper()
	for _, sid := range serviceIDs {
		row := &types.ProjectService{ProjectID: projectID, ServiceID: sid, CreatedAt: time.Now().UTC()}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed project service: %v", err)
		}
	}
}

func SeedAppointment(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, number int64, due time.Time) *types.Appointment {
	tb.Helper()
	a := &types.Appointment{
		ID:        uuid.New(),
		ProjectID: projectID,
		Number:    number,
		DueDate:   due.UTC(),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed appointment: %v", err)
	}
	return a
}

func SeedAppointmentServices(tb testing.TB, ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, serviceIDs ...uuid.UUID) {
	tb.Helper()
	for _, sid := range serviceIDs {
		row := &types.AppointmentService{AppointmentID: appointmentID, ServiceID: sid, CreatedAt: time.Now().UTC()}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed appointment service: %v", err)
		}
	}
}

func SeedTreatmentProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, position int, name string) *types.TreatmentProduct {
	tb.Helper()
	p := &types.TreatmentProduct{
		ID:               uuid.New(),
		AppointmentID:    appointmentID,
		Position:         position,
		ProductName:      name,
		AmountAndSolvent: "10ml/1L water",
		ActiveIngredient: "cypermethrin",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed treatment product: %v", err)
	}
	return p
}

func SeedOperationSheet(tb testing.TB, ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, treatedAreas string) *types.OperationSheet {
	tb.Helper()
	s := &types.OperationSheet{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		TreatedAreas:  treatedAreas,
		IsActive:      true,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed operation sheet: %v", err)
	}
	return s
}

func SeedRodentRegister(tb testing.TB, ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, serviceDate time.Time, incidents string) *types.RodentRegister {
	tb.Helper()
	r := &types.RodentRegister{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		ServiceDate:   serviceDate.UTC(),
		Incidents:     incidents,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rodent register: %v", err)
	}
	return r
}

func SeedRodentArea(tb testing.TB, ctx context.Context, tx *gorm.DB, registerID uuid.UUID, position int, name string) *types.RodentArea {
	tb.Helper()
	a := &types.RodentArea{
		ID:                uuid.New(),
		RodentRegisterID:  registerID,
		Position:          position,
		Name:              name,
		StationCount:      4,
		Frequency:         fieldservice.FrequencyMonthly,
		ConsumptionResult: fieldservice.ConsumptionNone,
		Outcome:           fieldservice.OutcomeNoActivity,
		MaterialsUsed:     fieldservice.MaterialsBaitBlock,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed rodent area: %v", err)
	}
	return a
}

func SeedCertificate(tb testing.TB, ctx context.Context, tx *gorm.DB, appointmentID uuid.UUID, expiration *time.Time) *types.Certificate {
	tb.Helper()
	c := &types.Certificate{
		ID:             uuid.New(),
		AppointmentID:  appointmentID,
		ExpirationDate: expiration,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed certificate: %v", err)
	}
	return c
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }

func PtrString(v string) *string { return &v }

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
