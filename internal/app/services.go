package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/pestops-backend/internal/domain/aggregates"
	"github.com/yungbote/pestops-backend/internal/observability"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
	"github.com/yungbote/pestops-backend/internal/services"
)

type Services struct {
	AppointmentAggregate domainagg.AppointmentAggregate
	Appointment          services.AppointmentService
}

func wireAggregate(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) domainagg.AppointmentAggregate {
	return aggregates.NewAppointmentAggregate(aggregates.AppointmentAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.NewMetricsHooks(metrics),
		},
		Projects:     r.Project,
		Appointments: r.Appointment,
		Products:     r.TreatmentProduct,
		Sheets:       r.OperationSheet,
		Registers:    r.RodentRegister,
		Areas:        r.RodentArea,
		Certificates: r.Certificate,
		Sequences:    r.Sequence,
		Duplications: r.DuplicationRecord,
	})
}

func wireServices(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) Services {
	log.Info("Wiring services...")
	agg := wireAggregate(db, log, metrics, r)
	return Services{
		AppointmentAggregate: agg,
		Appointment: services.NewAppointmentService(services.AppointmentServiceDeps{
			Log:          log,
			Aggregate:    agg,
			Projects:     r.Project,
			Appointments: r.Appointment,
			Products:     r.TreatmentProduct,
			Sheets:       r.OperationSheet,
			Registers:    r.RodentRegister,
			Areas:        r.RodentArea,
			Certificates: r.Certificate,
		}),
	}
}
