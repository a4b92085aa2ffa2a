package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/data/repos"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type Repos struct {
	Project           repos.ProjectRepo
	Service           repos.ServiceRepo
	Appointment       repos.AppointmentRepo
	TreatmentProduct  repos.TreatmentProductRepo
	OperationSheet    repos.OperationSheetRepo
	RodentRegister    repos.RodentRegisterRepo
	RodentArea        repos.RodentAreaRepo
	Certificate       repos.CertificateRepo
	Sequence          repos.SequenceRepo
	DuplicationRecord repos.DuplicationRecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project:           repos.NewProjectRepo(db, log),
		Service:           repos.NewServiceRepo(db, log),
		Appointment:       repos.NewAppointmentRepo(db, log),
		TreatmentProduct:  repos.NewTreatmentProductRepo(db, log),
		OperationSheet:    repos.NewOperationSheetRepo(db, log),
		RodentRegister:    repos.NewRodentRegisterRepo(db, log),
		RodentArea:        repos.NewRodentAreaRepo(db, log),
		Certificate:       repos.NewCertificateRepo(db, log),
		Sequence:          repos.NewSequenceRepo(db, log),
		DuplicationRecord: repos.NewDuplicationRecordRepo(db, log),
	}
}
