package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	httpH "github.com/yungbote/cleanarch-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cleanarch-backend/internal/http/middleware"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler         *httpH.AuthHandler
	ProjectHandler      *httpH.ProjectHandler
	ApplicationHandler  *httpH.ApplicationHandler
	CapabilityHandler   *httpH.CapabilityHandler
	BusinessRuleHandler *httpH.BusinessRuleHandler
	WikiHandler         *httpH.WikiHandler
	NotificationHandler *httpH.NotificationHandler
	DashboardHandler    *httpH.DashboardHandler
	ExportHandler       *httpH.ExportHandler
	AdminHandler        *httpH.AdminHandler
	RealtimeHandler     *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(httpMW.Recovery(log))
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	am := cfg.AuthMiddleware
	if am != nil {
		api.Use(am.Authenticate())
	}

	// Public
	{
		if h := cfg.AuthHandler; h != nil {
			api.POST("/auth/register", h.Register)
			api.POST("/auth/login", h.Login)
		}
		if h := cfg.ProjectHandler; h != nil {
			api.GET("/projects", h.List)
			api.GET("/projects/:id", h.Get)
			api.GET("/projects/:id/code", h.Code)
			api.GET("/projects/by-code/:code", h.GetByCode)
		}
		if h := cfg.ApplicationHandler; h != nil {
			api.GET("/applications/project/:projectId", h.ListByProject)
			api.GET("/applications/:id", h.Get)
		}
		if h := cfg.CapabilityHandler; h != nil {
			api.GET("/capabilities/application/:applicationId", h.ListByApplication)
			api.GET("/capabilities/search", h.Search)
			api.GET("/capabilities/:id", h.Get)
		}
		if h := cfg.BusinessRuleHandler; h != nil {
			api.GET("/businessrules/capability/:capabilityId", h.ListByCapability)
			api.GET("/businessrules/search", h.Search)
			api.GET("/businessrules/code/:code", h.GetByCode)
			api.GET("/businessrules/:id", h.Get)
		}
		if h := cfg.WikiHandler; h != nil {
			api.GET("/wiki", h.List)
			api.GET("/wiki/search", h.Search)
			api.GET("/wiki/slug/:slug", h.GetBySlug)
			api.GET("/wiki/entity/:entityType/:entityId", h.ListByEntity)
			api.GET("/wiki/:id", h.Get)
			api.GET("/wiki/:id/history", h.History)
			api.POST("/wiki/:id/view", h.View)
		}
		if h := cfg.DashboardHandler; h != nil {
			api.GET("/dashboard/stats", h.Stats)
			api.GET("/dashboard/summary", h.Summary)
			api.GET("/search", h.Search)
		}
		if h := cfg.ExportHandler; h != nil {
			api.GET("/export/projects", h.Projects)
			api.GET("/export/capabilities", h.Capabilities)
			api.GET("/export/dashboard", h.Dashboard)
		}
	}

	protected := api.Group("/")
	if am != nil {
		protected.Use(am.RequireAuth())
	}
	{
		if h := cfg.AuthHandler; h != nil {
			protected.GET("/auth/me", h.Me)
		}
		if h := cfg.ProjectHandler; h != nil {
			protected.POST("/projects", h.Create)
			protected.PUT("/projects/:id", h.Update)
			protected.PUT("/projects/:id/status", h.ChangeStatus)
			protected.PUT("/projects/:id/planned-end-date", h.SetPlannedEndDate)
			protected.PUT("/projects/:id/budget", h.SetBudget)
			protected.POST("/projects/:id/complete", h.Complete)
			protected.POST("/projects/:id/cancel", h.Cancel)
		}
		if h := cfg.ApplicationHandler; h != nil {
			protected.POST("/applications", h.Create)
			protected.PUT("/applications/:id", h.Update)
			protected.PUT("/applications/:id/status", h.ChangeStatus)
			protected.PUT("/applications/:id/version", h.UpgradeVersion)
		}
		if h := cfg.CapabilityHandler; h != nil {
			protected.POST("/capabilities", h.Create)
			protected.PUT("/capabilities/:id", h.Update)
			protected.PUT("/capabilities/:id/status", h.ChangeStatus)
			protected.POST("/capabilities/:id/complete", h.Complete)
		}
		if h := cfg.BusinessRuleHandler; h != nil {
			protected.POST("/businessrules", h.Create)
			protected.PUT("/businessrules/:id", h.Update)
			protected.PUT("/businessrules/:id/activate", h.Activate)
			protected.PUT("/businessrules/:id/deactivate", h.Deactivate)
			protected.PUT("/businessrules/:id/deprecate", h.Deprecate)
			protected.PUT("/businessrules/:id/implementation", h.SetImplementation)
			protected.POST("/businessrules/:id/examples", h.AddExample)
		}
		if h := cfg.WikiHandler; h != nil {
			protected.POST("/wiki", h.Create)
			protected.PUT("/wiki/:id", h.Update)
			protected.PUT("/wiki/:id/title", h.UpdateTitle)
			protected.PUT("/wiki/:id/publish", h.Publish)
			protected.PUT("/wiki/:id/unpublish", h.Unpublish)
			protected.POST("/wiki/:id/tags", h.AddTag)
			protected.DELETE("/wiki/:id/tags/:tag", h.RemoveTag)
			protected.PUT("/wiki/:id/link", h.Link)
		}
		if h := cfg.NotificationHandler; h != nil {
			protected.GET("/notifications/my-notifications", h.Mine)
			protected.GET("/notifications/unread", h.Unread)
			protected.GET("/notifications/unread/count", h.UnreadCount)
			protected.PUT("/notifications/:id/mark-as-read", h.MarkAsRead)
			protected.PUT("/notifications/mark-all-as-read", h.MarkAllAsRead)
		}
		if h := cfg.ExportHandler; h != nil {
			protected.GET("/export/full-report", h.FullReport)
		}
		if h := cfg.RealtimeHandler; h != nil {
			protected.GET("/realtime/stream", h.Stream)
			protected.GET("/realtime/ws", h.WebSocket)
			protected.POST("/realtime/groups/:group/join", h.JoinGroup)
			protected.POST("/realtime/groups/:group/leave", h.LeaveGroup)
		}
	}

	admin := protected.Group("/")
	if am != nil {
		admin.Use(am.RequireRole(types.RoleAdmin))
	}
	{
		if h := cfg.ProjectHandler; h != nil {
			admin.DELETE("/projects/:id", h.Delete)
		}
		if h := cfg.ApplicationHandler; h != nil {
			admin.DELETE("/applications/:id", h.Delete)
		}
		if h := cfg.CapabilityHandler; h != nil {
			admin.DELETE("/capabilities/:id", h.Delete)
		}
		if h := cfg.BusinessRuleHandler; h != nil {
			admin.DELETE("/businessrules/:id", h.Delete)
		}
		if h := cfg.WikiHandler; h != nil {
			admin.DELETE("/wiki/:id", h.Delete)
		}
		if h := cfg.NotificationHandler; h != nil {
			admin.POST("/notifications/send", h.Send)
			admin.GET("/notifications/recent", h.Recent)
		}
		if h := cfg.AdminHandler; h != nil {
			admin.GET("/admin/database/info", h.DatabaseInfo)
			admin.POST("/admin/database/migrate", h.Migrate)
			admin.POST("/admin/database/seed", h.Seed)
			admin.DELETE("/admin/database/clear", h.Clear)
		}
	}

	return r
}
