package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

// ProjectRepo reads projects and their contracted services. Projects are provisioned
// outside this service, so there are no writers here.
type ProjectRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Project, error)
	ListServiceIDs(dbc dbctx.Context, projectID uuid.UUID) ([]uuid.UUID, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Project, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Project
	if err := handle(r.db, dbc).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *projectRepo) ListServiceIDs(dbc dbctx.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	if projectID == uuid.Nil {
		return out, nil
	}
	if err := handle(r.db, dbc).
		Model(&types.ProjectService{}).
		Where("project_id = ?", projectID).
		Order("service_id ASC").
		Pluck("service_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
