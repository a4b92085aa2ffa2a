package domain

import "github.com/yungbote/pestops-backend/internal/domain/fieldservice"

type Project = fieldservice.Project
type Service = fieldservice.Service
type ProjectService = fieldservice.ProjectService
type Appointment = fieldservice.Appointment
type AppointmentService = fieldservice.AppointmentService
type TreatmentProduct = fieldservice.TreatmentProduct
type OperationSheet = fieldservice.OperationSheet
type RodentRegister = fieldservice.RodentRegister
type RodentArea = fieldservice.RodentArea
type Certificate = fieldservice.Certificate
type Sequence = fieldservice.Sequence
type DuplicationRecord = fieldservice.DuplicationRecord

type InfestationDegree = fieldservice.InfestationDegree
type AreaFrequency = fieldservice.AreaFrequency
type ConsumptionResult = fieldservice.ConsumptionResult
type AreaOutcome = fieldservice.AreaOutcome
type MaterialsUsed = fieldservice.MaterialsUsed

// AllModels lists every persisted type in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Project{},
		&Service{},
		&ProjectService{},
		&Appointment{},
		&AppointmentService{},
		&TreatmentProduct{},
		&OperationSheet{},
		&RodentRegister{},
		&RodentArea{},
		&Certificate{},
		&Sequence{},
		&DuplicationRecord{},
	}
}
