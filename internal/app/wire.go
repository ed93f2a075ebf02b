package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	"github.com/yungbote/cleanarch-backend/internal/data/seed"
	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/features/admin"
	"github.com/yungbote/cleanarch-backend/internal/features/applications"
	"github.com/yungbote/cleanarch-backend/internal/features/auth"
	"github.com/yungbote/cleanarch-backend/internal/features/businessrules"
	"github.com/yungbote/cleanarch-backend/internal/features/capabilities"
	"github.com/yungbote/cleanarch-backend/internal/features/dashboard"
	"github.com/yungbote/cleanarch-backend/internal/features/export"
	"github.com/yungbote/cleanarch-backend/internal/features/notifications"
	"github.com/yungbote/cleanarch-backend/internal/features/projects"
	"github.com/yungbote/cleanarch-backend/internal/features/search"
	"github.com/yungbote/cleanarch-backend/internal/features/wiki"
	apphttp "github.com/yungbote/cleanarch-backend/internal/http"
	httpH "github.com/yungbote/cleanarch-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cleanarch-backend/internal/http/middleware"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

type featureDeps struct {
	log       *logger.Logger
	repos     repos.Set
	uow       *uow.UnitOfWork
	notifier  services.Notifier
	tokens    services.TokenService
	passwords services.PasswordHasher
	db        *gorm.DB
	seeder    *seed.Seeder
	env       string
}

func wireMediator(log *logger.Logger, metrics *observability.Metrics, fd featureDeps) *mediator.Mediator {
	log.Info("Wiring mediator...")
	m := mediator.New(
		mediator.Logging(log),
		mediator.Metrics(metrics),
		mediator.Validating(mediator.NewValidator()),
	)
	deps := features.Deps{
		Log:       fd.log,
		Repos:     fd.repos,
		UoW:       fd.uow,
		Notifier:  fd.notifier,
		Tokens:    fd.tokens,
		Passwords: fd.passwords,
	}
	auth.Register(m, deps)
	projects.Register(m, deps)
	applications.Register(m, deps)
	capabilities.Register(m, deps)
	businessrules.Register(m, deps)
	wiki.Register(m, deps)
	notifications.Register(m, deps)
	dashboard.Register(m, deps)
	search.Register(m, deps)
	export.Register(m, deps)
	admin.Register(m, admin.Deps{DB: fd.db, Log: fd.log, Seeder: fd.seeder, Env: fd.env})
	return m
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	Project      *httpH.ProjectHandler
	Application  *httpH.ApplicationHandler
	Capability   *httpH.CapabilityHandler
	BusinessRule *httpH.BusinessRuleHandler
	Wiki         *httpH.WikiHandler
	Notification *httpH.NotificationHandler
	Dashboard    *httpH.DashboardHandler
	Export       *httpH.ExportHandler
	Admin        *httpH.AdminHandler
	Realtime     *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, m *mediator.Mediator, hub *realtime.Hub, notifier services.Notifier, db *gorm.DB, cfg Config) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		Auth:         httpH.NewAuthHandler(m),
		Project:      httpH.NewProjectHandler(m),
		Application:  httpH.NewApplicationHandler(m),
		Capability:   httpH.NewCapabilityHandler(m),
		BusinessRule: httpH.NewBusinessRuleHandler(m),
		Wiki:         httpH.NewWikiHandler(m),
		Notification: httpH.NewNotificationHandler(m),
		Dashboard:    httpH.NewDashboardHandler(m),
		Export:       httpH.NewExportHandler(m),
		Admin:        httpH.NewAdminHandler(m),
		Realtime:     httpH.NewRealtimeHandler(log, hub, notifier, cfg.AllowedOrigins),
	}
}

func wireRouter(log *logger.Logger, metrics *observability.Metrics, cfg Config, h Handlers, tokens services.TokenService) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.ServiceName,
		TracingEnabled: observability.TracingEnabled(),
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: httpMW.NewAuthMiddleware(log, tokens),

		AuthHandler:         h.Auth,
		ProjectHandler:      h.Project,
		ApplicationHandler:  h.Application,
		CapabilityHandler:   h.Capability,
		BusinessRuleHandler: h.BusinessRule,
		WikiHandler:         h.Wiki,
		NotificationHandler: h.Notification,
		DashboardHandler:    h.Dashboard,
		ExportHandler:       h.Export,
		AdminHandler:        h.Admin,
		RealtimeHandler:     h.Realtime,
		HealthHandler:       h.Health,
	}
}
