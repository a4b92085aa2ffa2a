package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is the compliance certificate issued for an appointment.
type Certificate struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_certificate_appointment" json:"appointment_id"`
	Appointment    *Appointment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppointmentID;references:ID" json:"-"`
	ExpirationDate *time.Time   `gorm:"column:expiration_date" json:"expiration_date,omitempty"`
	Version        int          `gorm:"column:version;not null" json:"version"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Certificate) TableName() string { return "certificate" }

func (c *Certificate) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
