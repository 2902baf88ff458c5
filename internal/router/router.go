package router

import (
	"time"

	"ponto_backend/internal/handlers"
	"ponto_backend/internal/middleware"
	"ponto_backend/internal/services"
	"ponto_backend/internal/store"
	"ponto_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Config carries the routing options resolved from the environment.
type Config struct {
	JWTSecret string
	JWTTTL    time.Duration
	// OverwriteLastPunch enables the legacy 5th-punch behavior that
	// overwrites out2 instead of rejecting once the day is complete.
	OverwriteLastPunch bool
}

// ConfigFromEnv resolves the routing options with their defaults.
func ConfigFromEnv() Config {
	return Config{
		JWTSecret:          utils.Getenv("JWT_SECRET", "ponto-dev-secret-change-me"),
		JWTTTL:             12 * time.Hour,
		OverwriteLastPunch: utils.Getenv("PUNCH_OVERWRITE_LAST", "false") == "true",
	}
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, st store.Store, cfg Config) {
	// Initialize Services
	authService := services.NewAuthService(st, cfg.JWTSecret, cfg.JWTTTL)
	employeeService := services.NewEmployeeService(st)
	punchService := services.NewPunchService(st, cfg.OverwriteLastPunch)
	reportService := services.NewReportService(st)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	punchHandler := handlers.NewPunchHandler(punchService, employeeService)
	recordHandler := handlers.NewRecordHandler(punchService, reportService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public surface: admin login and the shared punch device.
	SetupAuthRoutes(apiV1, authHandler)
	SetupPunchRoutes(apiV1, punchHandler)

	// Admin surface, behind the admin session token.
	admin := apiV1.Group("")
	admin.Use(middleware.AdminAuthMiddleware(cfg.JWTSecret))
	{
		SetupAdminAuthRoutes(admin, authHandler)
		SetupEmployeeRoutes(admin, employeeHandler)
		SetupRecordRoutes(admin, recordHandler)
		SetupReportRoutes(admin, reportHandler)
	}
}
