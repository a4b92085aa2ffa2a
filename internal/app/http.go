package app

import (
	"context"

	"gorm.io/gorm"

	apphttp "github.com/yungbote/pestops-backend/internal/http"
	httpH "github.com/yungbote/pestops-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pestops-backend/internal/http/middleware"
	"github.com/yungbote/pestops-backend/internal/observability"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type Server struct {
	http *apphttp.Server
	addr string
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, db *gorm.DB, s Services) *Server {
	log.Info("Wiring handlers...")
	routerCfg := apphttp.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
		ServiceName:        otelServiceName(cfg),
		CORSOrigins:        cfg.CORSOrigins,
		AppointmentHandler: httpH.NewAppointmentHandler(log, s.Appointment),
		HealthHandler:      httpH.NewHealthHandler(db),
	}
	return &Server{http: apphttp.NewServer(routerCfg), addr: ":" + cfg.Port}
}

// Spans are only recorded when tracing is on.
func otelServiceName(cfg Config) string {
	if !cfg.OTel.Enabled {
		return ""
	}
	return cfg.ServiceName
}

func (s *Server) Addr() string { return s.addr }

// Run serves HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.http.Run(ctx, s.addr)
}
