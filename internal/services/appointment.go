package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/yungbote/pestops-backend/internal/data/repos"
	types "github.com/yungbote/pestops-backend/internal/domain"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/platform/apierr"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

const duplicateSuccessMessage = "Appointment records duplicated from the previous appointment"

type AppointmentService interface {
	CreateAppointment(ctx context.Context, projectID uuid.UUID, req CreateAppointmentRequest) (*AppointmentDTO, error)
	ListAppointments(ctx context.Context, projectID uuid.UUID) ([]AppointmentDTO, error)
	DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error

	ListTreatmentProducts(ctx context.Context, appointmentID uuid.UUID) ([]TreatmentProductDTO, error)
	ReconcileTreatmentProducts(ctx context.Context, appointmentID uuid.UUID, items []TreatmentProductRequest) error

	GetRodentRegister(ctx context.Context, appointmentID uuid.UUID) (*RodentRegisterDTO, error)
	PatchRodentRegister(ctx context.Context, appointmentID uuid.UUID, req RodentRegisterPatchRequest) (*RodentRegisterDTO, error)

	GetOperationSheet(ctx context.Context, appointmentID uuid.UUID) (map[string]any, error)
	PatchOperationSheet(ctx context.Context, appointmentID uuid.UUID, body map[string]any) (map[string]any, error)

	GetCertificate(ctx context.Context, appointmentID uuid.UUID) (*CertificateDTO, error)
	PatchCertificate(ctx context.Context, appointmentID uuid.UUID, req CertificatePatchRequest) (*CertificateDTO, error)

	DuplicateFromPrevious(ctx context.Context, appointmentID uuid.UUID) (*DuplicateResponse, error)
}

type AppointmentServiceDeps struct {
	Log       *logger.Logger
	Aggregate domainagg.AppointmentAggregate

	Projects     repos.ProjectRepo
	Appointments repos.AppointmentRepo
	Products     repos.TreatmentProductRepo
	Sheets       repos.OperationSheetRepo
	Registers    repos.RodentRegisterRepo
	Areas        repos.RodentAreaRepo
	Certificates repos.CertificateRepo
}

type appointmentService struct {
	deps AppointmentServiceDeps
	log  *logger.Logger
}

func NewAppointmentService(deps AppointmentServiceDeps) AppointmentService {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &appointmentService{deps: deps, log: log.With("service", "AppointmentService")}
}

func (s *appointmentService) dbc(ctx context.Context) dbctx.Context {
	return dbctx.Context{Ctx: ctx}
}

// readFailed logs the storage cause and returns an error that is safe to show.
func (s *appointmentService) readFailed(op string, appointmentID uuid.UUID, err error) error {
	s.log.Error(op+" failed", "error", err, "appointment_id", appointmentID)
	return apierr.New(http.StatusInternalServerError, string(domainagg.CodeInternal), errors.New("unexpected error"))
}

func appointmentNotFound(appointmentID uuid.UUID) error {
	return apierr.New(http.StatusNotFound, string(domainagg.CodeNotFound), fmt.Errorf("appointment %s not found", appointmentID))
}

func (s *appointmentService) requireAppointment(ctx context.Context, op string, appointmentID uuid.UUID) (*types.Appointment, error) {
	appt, err := s.deps.Appointments.GetByID(s.dbc(ctx), appointmentID)
	if err != nil {
		return nil, s.readFailed(op, appointmentID, err)
	}
	if appt == nil {
		return nil, appointmentNotFound(appointmentID)
	}
	return appt, nil
}

func (s *appointmentService) CreateAppointment(ctx context.Context, projectID uuid.UUID, req CreateAppointmentRequest) (*AppointmentDTO, error) {
	due, err := ParseDate(req.DueDate)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_due_date", err)
	}
	in := domainagg.CreateAppointmentInput{ProjectID: projectID, DueDate: due, ServiceIDs: req.ServiceIDs}
	if req.ActualDate != nil {
		actual, err := ParseDate(*req.ActualDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_actual_date", err)
		}
		in.ActualDate = &actual
	}
	res, err := s.deps.Aggregate.CreateAppointment(ctx, in)
	if err != nil {
		return nil, apierr.FromAggregate(err)
	}
	appt, err := s.requireAppointment(ctx, "CreateAppointment: reload", res.AppointmentID)
	if err != nil {
		return nil, err
	}
	serviceIDs, err := s.deps.Appointments.ListServiceIDs(s.dbc(ctx), appt.ID)
	if err != nil {
		return nil, s.readFailed("CreateAppointment: services", appt.ID, err)
	}
	dto := toAppointmentDTO(appt, serviceIDs)
	return &dto, nil
}

func (s *appointmentService) ListAppointments(ctx context.Context, projectID uuid.UUID) ([]AppointmentDTO, error) {
	project, err := s.deps.Projects.GetByID(s.dbc(ctx), projectID)
	if err != nil {
		s.log.Error("ListAppointments: load project failed", "error", err, "project_id", projectID)
		return nil, apierr.New(http.StatusInternalServerError, string(domainagg.CodeInternal), errors.New("unexpected error"))
	}
	if project == nil {
		return nil, apierr.New(http.StatusNotFound, string(domainagg.CodeNotFound), fmt.Errorf("project %s not found", projectID))
	}
	rows, err := s.deps.Appointments.ListByProjectOrdered(s.dbc(ctx), projectID)
	if err != nil {
		s.log.Error("ListAppointments: list failed", "error", err, "project_id", projectID)
		return nil, apierr.New(http.StatusInternalServerError, string(domainagg.CodeInternal), errors.New("unexpected error"))
	}
	out := make([]AppointmentDTO, 0, len(rows))
	for _, a := range rows {
		serviceIDs, err := s.deps.Appointments.ListServiceIDs(s.dbc(ctx), a.ID)
		if err != nil {
			return nil, s.readFailed("ListAppointments: services", a.ID, err)
		}
		out = append(out, toAppointmentDTO(a, serviceIDs))
	}
	return out, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	if err := s.deps.Aggregate.DeleteAppointment(ctx, appointmentID); err != nil {
		return apierr.FromAggregate(err)
	}
	return nil
}

func (s *appointmentService) ListTreatmentProducts(ctx context.Context, appointmentID uuid.UUID) ([]TreatmentProductDTO, error) {
	if _, err := s.requireAppointment(ctx, "ListTreatmentProducts", appointmentID); err != nil {
		return nil, err
	}
	rows, err := s.deps.Products.ListByAppointmentID(s.dbc(ctx), appointmentID)
	if err != nil {
		return nil, s.readFailed("ListTreatmentProducts", appointmentID, err)
	}
	out := make([]TreatmentProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, toTreatmentProductDTO(p))
	}
	return out, nil
}

func (s *appointmentService) ReconcileTreatmentProducts(ctx context.Context, appointmentID uuid.UUID, items []TreatmentProductRequest) error {
	_, err := s.deps.Aggregate.ReconcileTreatmentProducts(ctx, domainagg.ReconcileTreatmentProductsInput{
		AppointmentID: appointmentID,
		Items:         toTreatmentProductItems(items),
	})
	if err != nil {
		return apierr.FromAggregate(err)
	}
	return nil
}

func (s *appointmentService) GetRodentRegister(ctx context.Context, appointmentID uuid.UUID) (*RodentRegisterDTO, error) {
	if _, err := s.requireAppointment(ctx, "GetRodentRegister", appointmentID); err != nil {
		return nil, err
	}
	reg, err := s.deps.Registers.GetByAppointmentID(s.dbc(ctx), appointmentID)
	if err != nil {
		return nil, s.readFailed("GetRodentRegister", appointmentID, err)
	}
	if reg == nil {
		return nil, apierr.New(http.StatusNotFound, string(domainagg.CodeNotFound), errors.New("rodent register not found"))
	}
	areas, err := s.deps.Areas.ListByRegisterID(s.dbc(ctx), reg.ID)
	if err != nil {
		return nil, s.readFailed("GetRodentRegister: areas", appointmentID, err)
	}
	dto := toRodentRegisterDTO(reg, areas)
	return &dto, nil
}

func (s *appointmentService) PatchRodentRegister(ctx context.Context, appointmentID uuid.UUID, req RodentRegisterPatchRequest) (*RodentRegisterDTO, error) {
	in := domainagg.PatchRodentRegisterInput{
		AppointmentID:      appointmentID,
		Incidents:          req.Incidents,
		CorrectiveMeasures: req.CorrectiveMeasures,
	}
	if req.ServiceDate != nil {
		d, err := ParseDate(*req.ServiceDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_service_date", err)
		}
		in.ServiceDate = &d
	}
	if req.Areas != nil {
		items := toRodentAreaItems(*req.Areas)
		in.Areas = &items
	}
	if _, err := s.deps.Aggregate.PatchRodentRegister(ctx, in); err != nil {
		return nil, apierr.FromAggregate(err)
	}
	return s.GetRodentRegister(ctx, appointmentID)
}

func (s *appointmentService) GetOperationSheet(ctx context.Context, appointmentID uuid.UUID) (map[string]any, error) {
	if _, err := s.requireAppointment(ctx, "GetOperationSheet", appointmentID); err != nil {
		return nil, err
	}
	sheet, err := s.deps.Sheets.GetByAppointmentID(s.dbc(ctx), appointmentID)
	if err != nil {
		return nil, s.readFailed("GetOperationSheet", appointmentID, err)
	}
	if sheet == nil {
		return nil, apierr.New(http.StatusNotFound, string(domainagg.CodeNotFound), errors.New("operation sheet not found"))
	}
	return operationSheetDTO(sheet), nil
}

func (s *appointmentService) PatchOperationSheet(ctx context.Context, appointmentID uuid.UUID, body map[string]any) (map[string]any, error) {
	changes, err := operationSheetChanges(body)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, string(domainagg.CodeValidation), err)
	}
	if err := s.deps.Aggregate.PatchOperationSheet(ctx, domainagg.PatchOperationSheetInput{
		AppointmentID: appointmentID,
		Changes:       changes,
	}); err != nil {
		return nil, apierr.FromAggregate(err)
	}
	return s.GetOperationSheet(ctx, appointmentID)
}

func (s *appointmentService) GetCertificate(ctx context.Context, appointmentID uuid.UUID) (*CertificateDTO, error) {
	if _, err := s.requireAppointment(ctx, "GetCertificate", appointmentID); err != nil {
		return nil, err
	}
	cert, err := s.deps.Certificates.GetByAppointmentID(s.dbc(ctx), appointmentID)
	if err != nil {
		return nil, s.readFailed("GetCertificate", appointmentID, err)
	}
	if cert == nil {
		return nil, apierr.New(http.StatusNotFound, string(domainagg.CodeNotFound), errors.New("certificate not found"))
	}
	dto := toCertificateDTO(cert)
	return &dto, nil
}

func (s *appointmentService) PatchCertificate(ctx context.Context, appointmentID uuid.UUID, req CertificatePatchRequest) (*CertificateDTO, error) {
	in := domainagg.PatchCertificateInput{AppointmentID: appointmentID}
	if req.ExpirationDate != nil {
		d, err := ParseDate(*req.ExpirationDate)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "invalid_expiration_date", err)
		}
		in.ExpirationDate = &d
	}
	if err := s.deps.Aggregate.PatchCertificate(ctx, in); err != nil {
		return nil, apierr.FromAggregate(err)
	}
	return s.GetCertificate(ctx, appointmentID)
}

func (s *appointmentService) DuplicateFromPrevious(ctx context.Context, appointmentID uuid.UUID) (*DuplicateResponse, error) {
	res, err := s.deps.Aggregate.DuplicateFromPrevious(ctx, appointmentID)
	if err != nil {
		return nil, apierr.FromAggregate(err)
	}
	s.log.Info("appointment duplicated",
		"source_appointment_id", res.SourceAppointmentID,
		"target_appointment_id", res.TargetAppointmentID,
		"cloned_areas", len(res.ClonedAreaIDs),
		"skipped", res.Skipped,
	)
	return &DuplicateResponse{
		Message:             duplicateSuccessMessage,
		SourceAppointmentID: res.SourceAppointmentID,
		TargetAppointmentID: res.TargetAppointmentID,
		Skipped:             res.Skipped,
	}, nil
}
