package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type DuplicationRecordRepo interface {
	Create(dbc dbctx.Context, row *types.DuplicationRecord) (*types.DuplicationRecord, error)
	ListByTargetAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) ([]*types.DuplicationRecord, error)
	DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error
}

type duplicationRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDuplicationRecordRepo(db *gorm.DB, baseLog *logger.Logger) DuplicationRecordRepo {
	return &duplicationRecordRepo{db: db, log: baseLog.With("repo", "DuplicationRecordRepo")}
}

func (r *duplicationRecordRepo) Create(dbc dbctx.Context, row *types.DuplicationRecord) (*types.DuplicationRecord, error) {
	if row == nil {
		return nil, nil
	}
	if err := handle(r.db, dbc).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *duplicationRecordRepo) ListByTargetAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) ([]*types.DuplicationRecord, error) {
	var out []*types.DuplicationRecord
	if appointmentID == uuid.Nil {
		return out, nil
	}
	if err := handle(r.db, dbc).
		Where("target_appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByAppointmentIDs drops audit rows where the appointment was either side.
func (r *duplicationRecordRepo) DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error {
	if len(appointmentIDs) == 0 {
		return nil
	}
	return handle(r.db, dbc).
		Where("source_appointment_id IN ? OR target_appointment_id IN ?", appointmentIDs, appointmentIDs).
		Delete(&types.DuplicationRecord{}).Error
}
