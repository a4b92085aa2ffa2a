package fieldservice

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperationSheet records how a visit was executed. Exactly one per appointment.
type OperationSheet struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_operation_sheet_appointment" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppointmentID;references:ID" json:"-"`

	TreatedAreas         string `gorm:"column:treated_areas;type:text" json:"treated_areas"`
	NonTreatedAreas      string `gorm:"column:non_treated_areas;type:text" json:"non_treated_areas"`
	InsectPests          string `gorm:"column:insect_pests;type:text" json:"insect_pests"`
	RodentPests          string `gorm:"column:rodent_pests;type:text" json:"rodent_pests"`
	OtherPests           string `gorm:"column:other_pests;type:text" json:"other_pests"`
	Insecticides         string `gorm:"column:insecticides;type:text" json:"insecticides"`
	InsecticideAmounts   string `gorm:"column:insecticide_amounts;type:text" json:"insecticide_amounts"`
	Rodenticides         string `gorm:"column:rodenticides;type:text" json:"rodenticides"`
	RodenticideAmounts   string `gorm:"column:rodenticide_amounts;type:text" json:"rodenticide_amounts"`
	Disinfectants        string `gorm:"column:disinfectants;type:text" json:"disinfectants"`
	DisinfectantAmounts  string `gorm:"column:disinfectant_amounts;type:text" json:"disinfectant_amounts"`
	OtherProducts        string `gorm:"column:other_products;type:text" json:"other_products"`
	OtherProductAmounts  string `gorm:"column:other_product_amounts;type:text" json:"other_product_amounts"`
	AppliedTechniques    string `gorm:"column:applied_techniques;type:text" json:"applied_techniques"`
	EquipmentUsed        string `gorm:"column:equipment_used;type:text" json:"equipment_used"`
	SupervisorName       string `gorm:"column:supervisor_name" json:"supervisor_name"`
	TechnicianNames      string `gorm:"column:technician_names;type:text" json:"technician_names"`
	ClientRepresentative string `gorm:"column:client_representative" json:"client_representative"`
	EntryTime            string `gorm:"column:entry_time" json:"entry_time"`
	ExitTime             string `gorm:"column:exit_time" json:"exit_time"`
	SanitaryConditions   string `gorm:"column:sanitary_conditions;type:text" json:"sanitary_conditions"`

	InsectInfestationDegree InfestationDegree `gorm:"column:insect_infestation_degree;not null" json:"insect_infestation_degree"`
	RodentInfestationDegree InfestationDegree `gorm:"column:rodent_infestation_degree;not null" json:"rodent_infestation_degree"`

	Observations    string `gorm:"column:observations;type:text" json:"observations"`
	Recommendations string `gorm:"column:recommendations;type:text" json:"recommendations"`

	// Administrative metadata. Never copied between appointments.
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	Version   int       `gorm:"column:version;not null" json:"version"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (OperationSheet) TableName() string { return "operation_sheet" }

func (s *OperationSheet) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.InsectInfestationDegree == "" {
		s.InsectInfestationDegree = InfestationNone
	}
	if s.RodentInfestationDegree == "" {
		s.RodentInfestationDegree = InfestationNone
	}
	return nil
}

// OperationSheetDescriptiveColumns lists the columns that describe the visit itself,
// as opposed to row metadata. Duplication copies exactly these.
var OperationSheetDescriptiveColumns = []string{
	"treated_areas",
	"non_treated_areas",
	"insect_pests",
	"rodent_pests",
	"other_pests",
	"insecticides",
	"insecticide_amounts",
	"rodenticides",
	"rodenticide_amounts",
	"disinfectants",
	"disinfectant_amounts",
	"other_products",
	"other_product_amounts",
	"applied_techniques",
	"equipment_used",
	"supervisor_name",
	"technician_names",
	"client_representative",
	"entry_time",
	"exit_time",
	"sanitary_conditions",
	"insect_infestation_degree",
	"rodent_infestation_degree",
	"observations",
	"recommendations",
}

// DescriptiveValues returns the descriptive columns of s keyed by column name.
func (s *OperationSheet) DescriptiveValues() map[string]any {
	return map[string]any{
		"treated_areas":             s.TreatedAreas,
		"non_treated_areas":         s.NonTreatedAreas,
		"insect_pests":              s.InsectPests,
		"rodent_pests":              s.RodentPests,
		"other_pests":               s.OtherPests,
		"insecticides":              s.Insecticides,
		"insecticide_amounts":       s.InsecticideAmounts,
		"rodenticides":              s.Rodenticides,
		"rodenticide_amounts":       s.RodenticideAmounts,
		"disinfectants":             s.Disinfectants,
		"disinfectant_amounts":      s.DisinfectantAmounts,
		"other_products":            s.OtherProducts,
		"other_product_amounts":     s.OtherProductAmounts,
		"applied_techniques":        s.AppliedTechniques,
		"equipment_used":            s.EquipmentUsed,
		"supervisor_name":           s.SupervisorName,
		"technician_names":          s.TechnicianNames,
		"client_representative":     s.ClientRepresentative,
		"entry_time":                s.EntryTime,
		"exit_time":                 s.ExitTime,
		"sanitary_conditions":       s.SanitaryConditions,
		"insect_infestation_degree": s.InsectInfestationDegree,
		"rodent_infestation_degree": s.RodentInfestationDegree,
		"observations":              s.Observations,
		"recommendations":           s.Recommendations,
	}
}

// CopyDescriptiveFrom overwrites the descriptive fields of s with those of src.
func (s *OperationSheet) CopyDescriptiveFrom(src *OperationSheet) {
	s.TreatedAreas = src.TreatedAreas
	s.NonTreatedAreas = src.NonTreatedAreas
	s.InsectPests = src.InsectPests
	s.RodentPests = src.RodentPests
	s.OtherPests = src.OtherPests
	s.Insecticides = src.Insecticides
	s.InsecticideAmounts = src.InsecticideAmounts
	s.Rodenticides = src.Rodenticides
	s.RodenticideAmounts = src.RodenticideAmounts
	s.Disinfectants = src.Disinfectants
	s.DisinfectantAmounts = src.DisinfectantAmounts
	s.OtherProducts = src.OtherProducts
	s.OtherProductAmounts = src.OtherProductAmounts
	s.AppliedTechniques = src.AppliedTechniques
	s.EquipmentUsed = src.EquipmentUsed
	s.SupervisorName = src.SupervisorName
	s.TechnicianNames = src.TechnicianNames
	s.ClientRepresentative = src.ClientRepresentative
	s.EntryTime = src.EntryTime
	s.ExitTime = src.ExitTime
	s.SanitaryConditions = src.SanitaryConditions
	s.InsectInfestationDegree = src.InsectInfestationDegree
	s.RodentInfestationDegree = src.RodentInfestationDegree
	s.Observations = src.Observations
	s.Recommendations = src.Recommendations
}
