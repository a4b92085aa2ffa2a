package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a customer engagement; its appointments are ordered by due date.
type Project struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	ClientName string    `gorm:"column:client_name" json:"client_name"`
	Address    string    `gorm:"column:address" json:"address"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "project" }

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Service is a contracted pest-control service (fumigation, rodent control, ...).
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Service) TableName() string { return "service" }

func (s *Service) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ProjectService is the project <-> contracted service join row.
type ProjectService struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	Project   *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"-"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_id"`
	Service   *Service  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServiceID;references:ID" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ProjectService) TableName() string { return "project_service" }
