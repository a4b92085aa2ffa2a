package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TreatmentProduct is one product applied during an appointment.
type TreatmentProduct struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Appointment      *Appointment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppointmentID;references:ID" json:"-"`
	Position         int          `gorm:"column:position;not null" json:"position"`
	ProductName      string       `gorm:"column:product_name;not null" json:"product_name"`
	AmountAndSolvent string       `gorm:"column:amount_and_solvent;not null" json:"amount_and_solvent"`
	ActiveIngredient string       `gorm:"column:active_ingredient;not null" json:"active_ingredient"`
	EquipmentUsed    *string      `gorm:"column:equipment_used" json:"equipment_used,omitempty"`
	AppliedTechnique *string      `gorm:"column:applied_technique" json:"applied_technique,omitempty"`
	AppliedService   *string      `gorm:"column:applied_service" json:"applied_service,omitempty"`
	Version          int          `gorm:"column:version;not null" json:"version"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TreatmentProduct) TableName() string { return "treatment_product" }

func (p *TreatmentProduct) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
