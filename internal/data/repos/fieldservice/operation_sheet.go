package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type OperationSheetRepo interface {
	Create(dbc dbctx.Context, rows []*types.OperationSheet) ([]*types.OperationSheet, error)
	GetByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) (*types.OperationSheet, error)
	UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error)
	DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error
}

type operationSheetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOperationSheetRepo(db *gorm.DB, baseLog *logger.Logger) OperationSheetRepo {
	return &operationSheetRepo{db: db, log: baseLog.With("repo", "OperationSheetRepo")}
}

func (r *operationSheetRepo) Create(dbc dbctx.Context, rows []*types.OperationSheet) ([]*types.OperationSheet, error) {
	if len(rows) == 0 {
		return []*types.OperationSheet{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *operationSheetRepo) GetByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) (*types.OperationSheet, error) {
	if appointmentID == uuid.Nil {
		return nil, nil
	}
	var row types.OperationSheet
	if err := handle(r.db, dbc).Where("appointment_id = ?", appointmentID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *operationSheetRepo) UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error) {
	return updateByVersion(handle(r.db, dbc), &types.OperationSheet{}, id, expectedVersion, updates)
}

func (r *operationSheetRepo) DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error {
	if len(appointmentIDs) == 0 {
		return nil
	}
	return handle(r.db, dbc).Where("appointment_id IN ?", appointmentIDs).Delete(&types.OperationSheet{}).Error
}
