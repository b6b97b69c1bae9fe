package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/audit"
	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/domain/billing"
	"github.com/luminacoach/lumina/internal/handlers"
	infraRepo "github.com/luminacoach/lumina/internal/infra/repository"
	"github.com/luminacoach/lumina/internal/infra/storage"
	"github.com/luminacoach/lumina/internal/middleware"
	"github.com/luminacoach/lumina/internal/tokenstore"
	ucNote "github.com/luminacoach/lumina/internal/usecase/note"
	ucSession "github.com/luminacoach/lumina/internal/usecase/session"
	ucTemplate "github.com/luminacoach/lumina/internal/usecase/template"
)

// Deps are the services built in main. Avatars and Payments may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Tokens   tokenstore.Store
	Avatars  storage.ObjectStore
	Payments billing.Gateway
	Registry *prometheus.Registry

	// AuditBuffer sizes the audit queue; zero writes audit rows inline.
	AuditBuffer int
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db, cfg := d.DB, d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	var origins []string
	if !cfg.DevMode {
		origins = append(origins, cfg.PublicBaseURL)
	}
	r.Use(middleware.CORSMiddleware(origins...))

	if d.Registry != nil {
		r.Use(middleware.NewMetrics(d.Registry).Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	sessionRepo := infraRepo.NewSessionGormRepository(db)
	noteRepo := infraRepo.NewNoteGormRepository(db)
	templateRepo := infraRepo.NewTemplateGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.AuditBuffer)

	// ======================================================
	// USE CASES
	// ======================================================
	sessionHandler := handlers.NewSessionHandler(
		ucSession.NewListSessions(sessionRepo),
		ucSession.NewGetSession(sessionRepo),
		ucSession.NewCreateSession(sessionRepo, auditDispatcher),
		ucSession.NewUpdateSession(sessionRepo, auditDispatcher),
		ucSession.NewCancelSession(sessionRepo, auditDispatcher),
		ucSession.NewRescheduleSession(sessionRepo, auditDispatcher),
	)

	noteHandler := handlers.NewNoteHandler(
		ucNote.NewListNotes(noteRepo),
		ucNote.NewCreateNote(noteRepo, auditDispatcher),
		ucNote.NewUpdateNote(noteRepo, auditDispatcher),
		ucNote.NewDeleteNote(noteRepo, auditDispatcher),
	)

	templateHandler := handlers.NewTemplateHandler(
		ucTemplate.NewListTemplates(templateRepo),
		ucTemplate.NewSaveCustomTemplate(templateRepo, auditDispatcher),
		ucTemplate.NewDeleteCustomTemplate(templateRepo, auditDispatcher),
		ucTemplate.NewGetSettings(templateRepo),
		ucTemplate.NewUpdateSettings(templateRepo, auditDispatcher),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, d.Tokens, auditDispatcher)
	meHandler := handlers.NewMeHandler(db, d.Avatars, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(db)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	billingHandler := handlers.NewBillingHandler(db, cfg, d.Payments, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	devHandler := handlers.NewDevHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/oauth/:provider", authHandler.OAuthLogin)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, d.Tokens))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			secured.GET("/dashboard", dashboardHandler.Get)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)

			// ------------------------------
			// SESSIONS AND NOTES
			// ------------------------------
			secured.GET("/sessions", sessionHandler.List)
			secured.GET("/sessions/:id", sessionHandler.Get)
			secured.POST("/sessions", sessionHandler.Create)
			secured.PUT("/sessions/:id", sessionHandler.Update)
			secured.PATCH("/sessions/:id/cancel", sessionHandler.Cancel)
			secured.PATCH("/sessions/:id/reschedule", sessionHandler.Reschedule)

			secured.GET("/sessions/:id/notes", noteHandler.List)
			secured.POST("/sessions/:id/notes", noteHandler.Create)
			secured.PUT("/sessions/:id/notes/:noteId", noteHandler.Update)
			secured.DELETE("/sessions/:id/notes/:noteId", noteHandler.Delete)

			// ------------------------------
			// TEMPLATES
			// ------------------------------
			secured.GET("/templates/presets", templateHandler.Presets)
			secured.GET("/templates/custom", templateHandler.ListCustom)
			secured.POST("/templates/custom", templateHandler.CreateCustom)
			secured.PUT("/templates/custom/:id", templateHandler.UpdateCustom)
			secured.DELETE("/templates/custom/:id", templateHandler.DeleteCustom)
			secured.GET("/templates/active", templateHandler.Active)
			secured.GET("/settings/notes", templateHandler.GetSettings)
			secured.PUT("/settings/notes", templateHandler.UpdateSettings)

			// ------------------------------
			// BILLING
			// ------------------------------
			secured.GET("/invoices", billingHandler.ListInvoices)
			secured.POST("/invoices/:id/checkout", billingHandler.Checkout)
			secured.GET("/billing/summary", billingHandler.Summary)

			secured.GET("/audit-logs", auditLogsHandler.List)

			if cfg.DevMode {
				secured.POST("/dev/reset", devHandler.Reset)
			}
		}
	}
}
