package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type RodentAreaRepo interface {
	Create(dbc dbctx.Context, rows []*types.RodentArea) ([]*types.RodentArea, error)
	ListByRegisterID(dbc dbctx.Context, registerID uuid.UUID) ([]*types.RodentArea, error)
	GetByID(dbc dbctx.Context, registerID, id uuid.UUID) (*types.RodentArea, error)
	UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error)
	DeleteByIDs(dbc dbctx.Context, registerID uuid.UUID, ids []uuid.UUID) error
	DeleteByRegisterID(dbc dbctx.Context, registerID uuid.UUID) error
}

type rodentAreaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRodentAreaRepo(db *gorm.DB, baseLog *logger.Logger) RodentAreaRepo {
	return &rodentAreaRepo{db: db, log: baseLog.With("repo", "RodentAreaRepo")}
}

func (r *rodentAreaRepo) Create(dbc dbctx.Context, rows []*types.RodentArea) ([]*types.RodentArea, error) {
	if len(rows) == 0 {
		return []*types.RodentArea{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rodentAreaRepo) ListByRegisterID(dbc dbctx.Context, registerID uuid.UUID) ([]*types.RodentArea, error) {
	var out []*types.RodentArea
	if registerID == uuid.Nil {
		return out, nil
	}
	if err := handle(r.db, dbc).
		Where("rodent_register_id = ?", registerID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rodentAreaRepo) GetByID(dbc dbctx.Context, registerID, id uuid.UUID) (*types.RodentArea, error) {
	if registerID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.RodentArea
	if err := handle(r.db, dbc).
		Where("id = ? AND rodent_register_id = ?", id, registerID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *rodentAreaRepo) UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error) {
	return updateByVersion(handle(r.db, dbc), &types.RodentArea{}, id, expectedVersion, updates)
}

func (r *rodentAreaRepo) DeleteByIDs(dbc dbctx.Context, registerID uuid.UUID, ids []uuid.UUID) error {
	if registerID == uuid.Nil || len(ids) == 0 {
		return nil
	}
	return handle(r.db, dbc).
		Where("rodent_register_id = ? AND id IN ?", registerID, ids).
		Delete(&types.RodentArea{}).Error
}

func (r *rodentAreaRepo) DeleteByRegisterID(dbc dbctx.Context, registerID uuid.UUID) error {
	if registerID == uuid.Nil {
		return nil
	}
	return handle(r.db, dbc).Where("rodent_register_id = ?", registerID).Delete(&types.RodentArea{}).Error
}
