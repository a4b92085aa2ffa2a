package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type TreatmentProductRepo interface {
	Create(dbc dbctx.Context, rows []*types.TreatmentProduct) ([]*types.TreatmentProduct, error)
	ListByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) ([]*types.TreatmentProduct, error)
	// GetByID reads one product scoped to its owning appointment; nil when absent or owned elsewhere.
	GetByID(dbc dbctx.Context, appointmentID, id uuid.UUID) (*types.TreatmentProduct, error)
	UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error)
	DeleteByIDs(dbc dbctx.Context, appointmentID uuid.UUID, ids []uuid.UUID) error
	DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error
}

type treatmentProductRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTreatmentProductRepo(db *gorm.DB, baseLog *logger.Logger) TreatmentProductRepo {
	return &treatmentProductRepo{db: db, log: baseLog.With("repo", "TreatmentProductRepo")}
}

func (r *treatmentProductRepo) Create(dbc dbctx.Context, rows []*types.TreatmentProduct) ([]*types.TreatmentProduct, error) {
	if len(rows) == 0 {
		return []*types.TreatmentProduct{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *treatmentProductRepo) ListByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) ([]*types.TreatmentProduct, error) {
	var out []*types.TreatmentProduct
	if appointmentID == uuid.Nil {
		return out, nil
	}
	if err := handle(r.db, dbc).
		Where("appointment_id = ?", appointmentID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *treatmentProductRepo) GetByID(dbc dbctx.Context, appointmentID, id uuid.UUID) (*types.TreatmentProduct, error) {
	if appointmentID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.TreatmentProduct
	if err := handle(r.db, dbc).
		Where("id = ? AND appointment_id = ?", id, appointmentID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *treatmentProductRepo) UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error) {
	return updateByVersion(handle(r.db, dbc), &types.TreatmentProduct{}, id, expectedVersion, updates)
}

func (r *treatmentProductRepo) DeleteByIDs(dbc dbctx.Context, appointmentID uuid.UUID, ids []uuid.UUID) error {
	if appointmentID == uuid.Nil || len(ids) == 0 {
		return nil
	}
	return handle(r.db, dbc).
		Where("appointment_id = ? AND id IN ?", appointmentID, ids).
		Delete(&types.TreatmentProduct{}).Error
}

func (r *treatmentProductRepo) DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error {
	if len(appointmentIDs) == 0 {
		return nil
	}
	return handle(r.db, dbc).
		Where("appointment_id IN ?", appointmentIDs).
		Delete(&types.TreatmentProduct{}).Error
}
