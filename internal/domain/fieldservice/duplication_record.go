package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DuplicationRecord is the audit row written with every successful duplication.
type DuplicationRecord struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SourceAppointmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"source_appointment_id"`
	SourceAppointment   *Appointment   `gorm:"constraint:OnDelete:CASCADE;foreignKey:SourceAppointmentID;references:ID" json:"-"`
	TargetAppointmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"target_appointment_id"`
	TargetAppointment   *Appointment   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetAppointmentID;references:ID" json:"-"`
	Summary             datatypes.JSON `gorm:"column:summary;type:jsonb" json:"summary"`
	CreatedAt           time.Time      `gorm:"not null;index" json:"created_at"`
}

func (DuplicationRecord) TableName() string { return "duplication_record" }

func (d *DuplicationRecord) BeforeCreate(_ *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
