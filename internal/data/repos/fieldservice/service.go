package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type ServiceRepo interface {
	Create(dbc dbctx.Context, rows []*types.Service) ([]*types.Service, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Service, error)
	List(dbc dbctx.Context) ([]*types.Service, error)
}

type serviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return &serviceRepo{db: db, log: baseLog.With("repo", "ServiceRepo")}
}

func (r *serviceRepo) Create(dbc dbctx.Context, rows []*types.Service) ([]*types.Service, error) {
	if len(rows) == 0 {
		return []*types.Service{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *serviceRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Service, error) {
	var out []*types.Service
	if len(ids) == 0 {
		return out, nil
	}
	if err := handle(r.db, dbc).Where("id IN ?", ids).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *serviceRepo) List(dbc dbctx.Context) ([]*types.Service, error) {
	var out []*types.Service
	if err := handle(r.db, dbc).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
