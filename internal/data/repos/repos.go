package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/data/repos/fieldservice"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type ProjectRepo = fieldservice.ProjectRepo
type ServiceRepo = fieldservice.ServiceRepo

type AppointmentRepo = fieldservice.AppointmentRepo
type TreatmentProductRepo = fieldservice.TreatmentProductRepo
type OperationSheetRepo = fieldservice.OperationSheetRepo
type RodentRegisterRepo = fieldservice.RodentRegisterRepo
type RodentAreaRepo = fieldservice.RodentAreaRepo
type CertificateRepo = fieldservice.CertificateRepo

type SequenceRepo = fieldservice.SequenceRepo
type DuplicationRecordRepo = fieldservice.DuplicationRecordRepo

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return fieldservice.NewProjectRepo(db, baseLog)
}
func NewServiceRepo(db *gorm.DB, baseLog *logger.Logger) ServiceRepo {
	return fieldservice.NewServiceRepo(db, baseLog)
}

func NewAppointmentRepo(db *gorm.DB, baseLog *logger.Logger) AppointmentRepo {
	return fieldservice.NewAppointmentRepo(db, baseLog)
}
func NewTreatmentProductRepo(db *gorm.DB, baseLog *logger.Logger) TreatmentProductRepo {
	return fieldservice.NewTreatmentProductRepo(db, baseLog)
}
func NewOperationSheetRepo(db *gorm.DB, baseLog *logger.Logger) OperationSheetRepo {
	return fieldservice.NewOperationSheetRepo(db, baseLog)
}
func NewRodentRegisterRepo(db *gorm.DB, baseLog *logger.Logger) RodentRegisterRepo {
	return fieldservice.NewRodentRegisterRepo(db, baseLog)
}
func NewRodentAreaRepo(db *gorm.DB, baseLog *logger.Logger) RodentAreaRepo {
	return fieldservice.NewRodentAreaRepo(db, baseLog)
}
func NewCertificateRepo(db *gorm.DB, baseLog *logger.Logger) CertificateRepo {
	return fieldservice.NewCertificateRepo(db, baseLog)
}

func NewSequenceRepo(db *gorm.DB, baseLog *logger.Logger) SequenceRepo {
	return fieldservice.NewSequenceRepo(db, baseLog)
}
func NewDuplicationRecordRepo(db *gorm.DB, baseLog *logger.Logger) DuplicationRecordRepo {
	return fieldservice.NewDuplicationRecordRepo(db, baseLog)
}
