package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is one scheduled or executed visit within a project.
//
// Version is bumped by every aggregate write that touches the appointment's records, which
// lets two writers racing on the same appointment detect each other at commit.
type Appointment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Project    *Project   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"-"`
	Number     int64      `gorm:"column:number;not null" json:"number"`
	DueDate    time.Time  `gorm:"column:due_date;not null;index" json:"due_date"`
	ActualDate *time.Time `gorm:"column:actual_date" json:"actual_date,omitempty"`
	Cancelled  bool       `gorm:"column:cancelled;not null" json:"cancelled"`
	Version    int        `gorm:"column:version;not null" json:"version"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Appointment) TableName() string { return "appointment" }

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AppointmentService associates an appointment with the services performed on it.
type AppointmentService struct {
	AppointmentID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppointmentID;references:ID" json:"-"`
	ServiceID     uuid.UUID    `gorm:"type:uuid;primaryKey;index" json:"service_id"`
	Service       *Service     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ServiceID;references:ID" json:"-"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

func (AppointmentService) TableName() string { return "appointment_service" }
