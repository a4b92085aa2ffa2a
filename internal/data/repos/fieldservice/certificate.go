package fieldservice

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/pestops-backend/internal/domain"
	"github.com/yungbote/pestops-backend/internal/platform/dbctx"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type CertificateRepo interface {
	Create(dbc dbctx.Context, rows []*types.Certificate) ([]*types.Certificate, error)
	GetByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) (*types.Certificate, error)
	UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error)
	DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error
}

type certificateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return &certificateRepo{db: db, log: baseLog.With("repo", "CertificateRepo")}
}

func (r *certificateRepo) Create(dbc dbctx.Context, rows []*types.Certificate) ([]*types.Certificate, error) {
	if len(rows) == 0 {
		return []*types.Certificate{}, nil
	}
	if err := handle(r.db, dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *certificateRepo) GetByAppointmentID(dbc dbctx.Context, appointmentID uuid.UUID) (*types.Certificate, error) {
	if appointmentID == uuid.Nil {
		return nil, nil
	}
	var row types.Certificate
	if err := handle(r.db, dbc).Where("appointment_id = ?", appointmentID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *certificateRepo) UpdateByVersion(dbc dbctx.Context, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (bool, error) {
	return updateByVersion(handle(r.db, dbc), &types.Certificate{}, id, expectedVersion, updates)
}

func (r *certificateRepo) DeleteByAppointmentIDs(dbc dbctx.Context, appointmentIDs []uuid.UUID) error {
	if len(appointmentIDs) == 0 {
		return nil
	}
	return handle(r.db, dbc).Where("appointment_id IN ?", appointmentIDs).Delete(&types.Certificate{}).Error
}
