package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RodentRegister is the rodent-monitoring record of a visit. Exactly one per appointment.
type RodentRegister struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_rodent_register_appointment" json:"appointment_id"`
	Appointment        *Appointment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppointmentID;references:ID" json:"-"`
	ServiceDate        time.Time    `gorm:"column:service_date;not null" json:"service_date"`
	Incidents          string       `gorm:"column:incidents;type:text" json:"incidents"`
	CorrectiveMeasures string       `gorm:"column:corrective_measures;type:text" json:"corrective_measures"`
	Version            int          `gorm:"column:version;not null" json:"version"`

	Areas []*RodentArea `gorm:"-" json:"areas,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RodentRegister) TableName() string { return "rodent_register" }

func (r *RodentRegister) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RodentArea is one monitored station group inside a register, kept in Position order.
type RodentArea struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	RodentRegisterID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"rodent_register_id"`
	RodentRegister    *RodentRegister   `gorm:"constraint:OnDelete:CASCADE;foreignKey:RodentRegisterID;references:ID" json:"-"`
	Position          int               `gorm:"column:position;not null" json:"position"`
	Name              string            `gorm:"column:name;not null" json:"name"`
	StationCount      int               `gorm:"column:station_count;not null" json:"station_count"`
	Frequency         AreaFrequency     `gorm:"column:frequency;not null" json:"frequency"`
	ConsumptionResult ConsumptionResult `gorm:"column:consumption_result;not null" json:"consumption_result"`
	Outcome           AreaOutcome       `gorm:"column:outcome;not null" json:"outcome"`
	MaterialsUsed     MaterialsUsed     `gorm:"column:materials_used;not null" json:"materials_used"`
	ProductName       string            `gorm:"column:product_name" json:"product_name"`
	ProductDose       string            `gorm:"column:product_dose" json:"product_dose"`
	Version           int               `gorm:"column:version;not null" json:"version"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RodentArea) TableName() string { return "rodent_area" }

func (a *RodentArea) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CloneInto returns a copy of a owned by registerID with a fresh identity.
func (a *RodentArea) CloneInto(registerID uuid.UUID) *RodentArea {
	return &RodentArea{
		ID:                uuid.New(),
		RodentRegisterID:  registerID,
		Position:          a.Position,
		Name:              a.Name,
		StationCount:      a.StationCount,
		Frequency:         a.Frequency,
		ConsumptionResult: a.ConsumptionResult,
		Outcome:           a.Outcome,
		MaterialsUsed:     a.MaterialsUsed,
		ProductName:       a.ProductName,
		ProductDose:       a.ProductDose,
	}
}
