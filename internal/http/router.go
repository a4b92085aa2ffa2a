package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/pestops-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pestops-backend/internal/http/middleware"
	"github.com/yungbote/pestops-backend/internal/observability"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AuthMiddleware *httpMW.AuthMiddleware
	ServiceName    string
	CORSOrigins    []string

	AppointmentHandler *httpH.AppointmentHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}

	if h := cfg.AppointmentHandler; h != nil {
		api.POST("/projects/:id/appointments", h.CreateAppointment)
		api.GET("/projects/:id/appointments", h.ListAppointments)

		appt := api.Group("/Appointment/:id")
		appt.DELETE("", h.DeleteAppointment)
		appt.GET("/TreatmentProduct", h.ListTreatmentProducts)
		appt.PATCH("/TreatmentProduct", h.ReconcileTreatmentProducts)
		appt.GET("/RodentRegister", h.GetRodentRegister)
		appt.PATCH("/RodentRegister", h.PatchRodentRegister)
		appt.GET("/OperationSheet", h.GetOperationSheet)
		appt.PATCH("/OperationSheet", h.PatchOperationSheet)
		appt.GET("/Certificate", h.GetCertificate)
		appt.PATCH("/Certificate", h.PatchCertificate)

		api.POST("/appointment/:id/duplicate-from-previous", h.DuplicateFromPrevious)
	}

	return r
}
