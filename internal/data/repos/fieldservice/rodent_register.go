package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type RodentRegisterRepo interface {
	Create(dbc dbctx.Context, rows []*types.RodentRegister) ([]*types.RodentRegister, error)
	GetByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) (*types.RodentRegister, error)
	UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error)
	// DeleteByAppointmentIDs removes the registers and all of their areas.
	DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error
}

type rodentRegisterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRodentRegisterRepo(db *gorm.DB, baseLog *logger.Logger) RodentRegisterRepo {
	return &rodentRegisterRepo{db: db, log: baseLog.With("repo", "RodentRegisterRepo")}
}

func (r *rodentRegisterRepo) Create(dbc dbctx.Context, rows []*types.RodentRegister) ([]*types.RodentRegister, error) {
	if len(rows) == 0 {
		return []*types.RodentRegister{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rodentRegisterRepo) GetByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) (*types.RodentRegister, error) {
	if appointmentID == uuid.Nil {
		return nil, nil
	}
	var row types.RodentRegister
	if err := handle(r.db, dbc).Where("appointment_id = ?", appointmentID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *rodentRegisterRepo) UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error) {
	return updateByVersion(handle(r.db, dbc), &types.RodentRegister{}, id, expectedVersion, updates)
}

func (r *rodentRegisterRepo) DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error {
	if len(appointmentIDs) == 0 {
		return nil
	}
	t := handle(r.db, dbc)
	sub := t.Session(&gorm.Session{NewDB: true}).
		Model(&types.RodentRegister{}).
		Select("id").
		Where("appointment_id IN ?", appointmentIDs)
	if err := t.Where("rodent_register_id IN (?)", sub).Delete(&types.RodentArea{}).Error; err != nil {
		return err
	}
	return t.Where("appointment_id IN ?", appointmentIDs).Delete(&types.RodentRegister{}).Error
}
