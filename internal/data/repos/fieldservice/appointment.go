package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type AppointmentRepo interface {
	Create(dbc dbctx.Context, rows []*types.Appointment) ([]*types.Appointment, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Appointment, error)
	// ListByProjectOrdered returns the project's appointments by due date, breaking ties by
	// creation time and then id so the order is total.
	ListByProjectOrdered(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Appointment, error)
	FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error

	ListServiceIDs(dbc dbctx.Context, appointmentID uuid.UUID) ([]uuid.UUID, error)
	ReplaceServices(dbc dbctx.Context, appointmentID uuid.UUID, serviceIDs []uuid.UUID) error
}

type appointmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAppointmentRepo(db *gorm.DB, baseLog *logger.Logger) AppointmentRepo {
	return &appointmentRepo{db: db, log: baseLog.With("repo", "AppointmentRepo")}
}

func (r *appointmentRepo) Create(dbc dbctx.Context, rows []*types.Appointment) ([]*types.Appointment, error) {
	if len(rows) == 0 {
		return []*types.Appointment{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *appointmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Appointment, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Appointment
	if err := handle(r.db, dbc).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *appointmentRepo) ListByProjectOrdered(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Appointment, error) {
	var out []*types.Appointment
	if projectID == uuid.Nil {
		return out, nil
	}
	if err := handle(r.db, dbc).
		Where("project_id = ?", projectID).
		Order("due_date ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *appointmentRepo) FullDeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	t := handle(r.db, dbc)
	if err := t.Where("appointment_id IN ?", ids).Delete(&types.AppointmentService{}).Error; err != nil {
		return err
	}
	return t.Where("id IN ?", ids).Delete(&types.Appointment{}).Error
}

func (r *appointmentRepo) ListServiceIDs(dbc dbctx.Context, appointmentID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	if appointmentID == uuid.Nil {
		return out, nil
	}
	if err := handle(r.db, dbc).
		Model(&types.AppointmentService{}).
		Where("appointment_id = ?", appointmentID).
		Order("service_id ASC").
		Pluck("service_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceServices makes serviceIDs the exact associated set of the appointment.
func (r *appointmentRepo) ReplaceServices(dbc dbctx.Context, appointmentID uuid.UUID, serviceIDs []uuid.UUID) error {
	if appointmentID == uuid.Nil {
		return nil
	}
	t := handle(r.db, dbc)
	if err := t.Where("appointment_id = ?", appointmentID).Delete(&types.AppointmentService{}).Error; err != nil {
		return err
	}
	if len(serviceIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	seen := make(map[uuid.UUID]bool, len(serviceIDs))
	rows := make([]*types.AppointmentService, 0, len(serviceIDs))
	for _, sid := range serviceIDs {
		if sid == uuid.Nil || seen[sid] {
			continue
		}
		seen[sid] = true
		rows = append(rows, &types.AppointmentService{AppointmentID: appointmentID, ServiceID: sid, CreatedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return t.Create(&rows).Error
}
