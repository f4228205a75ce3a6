package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mdip/intelligence-platform/internal/api/handler"
	"github.com/mdip/intelligence-platform/internal/api/middleware"
	"github.com/mdip/intelligence-platform/internal/core/service"
	"github.com/mdip/intelligence-platform/internal/infrastructure/ai"
	"github.com/mdip/intelligence-platform/internal/infrastructure/config"
	mongostore "github.com/mdip/intelligence-platform/internal/infrastructure/db/mongo"
	redisstore "github.com/mdip/intelligence-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("mdip"))

	// --- Dependencies ---
	authRepo := mongostore.NewAuthRepository(db)
	incidentRepo := mongostore.NewIncidentRepository(db)
	datasetRepo := mongostore.NewDatasetRepository(db)
	ticketRepo := mongostore.NewTicketRepository(db)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	incidentService := service.NewIncidentService(incidentRepo, log)
	datasetService := service.NewDatasetService(datasetRepo, log)
	ticketService := service.NewTicketService(ticketRepo, log)

	completer := ai.NewClient(ai.Config{
		APIKey:  cfg.Advisor.APIKey,
		BaseURL: cfg.Advisor.BaseURL,
		Model:   cfg.Advisor.Model,
		Timeout: cfg.Advisor.Timeout,
	}, log)
	adviceCache := redisstore.NewAdviceCache(rdb, cfg.Redis.AdviceTTL)
	advisorService := service.NewAdvisorService(completer, adviceCache, log)

	authHandler := handler.NewAuthHandler(authService)
	incidentHandler := handler.NewIncidentHandler(incidentService)
	datasetHandler := handler.NewDatasetHandler(datasetService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	advisorHandler := handler.NewAdvisorHandler(advisorService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC("admin")

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Incident routes ---
	incidents := e.Group("/v1/incidents", authMiddleware)
	incidents.POST("", incidentHandler.Create)
	incidents.GET("", incidentHandler.List)
	incidents.GET("/stats", incidentHandler.Stats)
	incidents.GET("/:id", incidentHandler.Get)
	incidents.PUT("/:id", incidentHandler.Update)
	incidents.DELETE("/:id", incidentHandler.Delete, adminOnly)

	// --- Dataset routes ---
	datasets := e.Group("/v1/datasets", authMiddleware)
	datasets.POST("", datasetHandler.Create)
	datasets.GET("", datasetHandler.List)
	datasets.GET("/stats", datasetHandler.Stats)
	datasets.GET("/:id", datasetHandler.Get)
	datasets.PUT("/:id", datasetHandler.Update)
	datasets.DELETE("/:id", datasetHandler.Delete, adminOnly)

	// --- Ticket routes ---
	tickets := e.Group("/v1/tickets", authMiddleware)
	tickets.POST("", ticketHandler.Create)
	tickets.GET("", ticketHandler.List)
	tickets.GET("/stats", ticketHandler.Stats)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.POST("/:id/assign", ticketHandler.Assign)
	tickets.POST("/:id/resolve", ticketHandler.Resolve)

	// --- Advisor routes ---
	advisor := e.Group("/v1/advisor", authMiddleware)
	advisor.POST("/security", advisorHandler.SecurityAdvice)
	advisor.POST("/datasets", advisorHandler.DatasetInsights)
	advisor.POST("/tickets", advisorHandler.TicketSolution)
	advisor.POST("/chat", advisorHandler.Chat)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	if cfg.IsDevelopment() {
		e.GET("/swagger/*", echoswagger.WrapHandler)
	}

	return e
}
