package router

import (
	"ponto_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/admin-login", authHandler.AdminLogin)
	}
}

// SetupAdminAuthRoutes sets up the authenticated admin account routes.
func SetupAdminAuthRoutes(adminGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := adminGroup.Group("/auth")
	{
		authRoutes.PUT("/admin-pin", authHandler.ChangeAdminPIN)
	}
}

// SetupPunchRoutes sets up the shared-device punch routes. These are
// public by design: the PIN inside each request is the whole gate.
func SetupPunchRoutes(apiGroup *gin.RouterGroup, punchHandler *handlers.PunchHandler) {
	punchRoutes := apiGroup.Group("/punch")
	{
		punchRoutes.GET("/employees", punchHandler.ListPunchEmployees)
		punchRoutes.POST("/validate-pin", punchHandler.ValidatePIN)
		punchRoutes.POST("", punchHandler.Punch)
	}
}

// SetupEmployeeRoutes sets up the employee management routes.
func SetupEmployeeRoutes(adminGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeRoutes := adminGroup.Group("/employees")
	{
		employeeRoutes.POST("", employeeHandler.CreateEmployee)
		employeeRoutes.GET("", employeeHandler.GetEmployees)
		employeeRoutes.GET("/:id", employeeHandler.GetEmployeeByID)
		employeeRoutes.PUT("/:id", employeeHandler.UpdateEmployee)
		employeeRoutes.PUT("/:id/schedule", employeeHandler.UpdateSchedule)
		employeeRoutes.POST("/:id/deactivate", employeeHandler.DeactivateEmployee)
		employeeRoutes.DELETE("/:id", employeeHandler.DeleteEmployee)
	}
}

// SetupRecordRoutes sets up the day record and override routes.
func SetupRecordRoutes(adminGroup *gin.RouterGroup, recordHandler *handlers.RecordHandler) {
	employeeRoutes := adminGroup.Group("/employees")
	{
		employeeRoutes.GET("/:id/days", recordHandler.GetDayBreakdown)
		employeeRoutes.PUT("/:id/records/:date", recordHandler.UpsertRecord)
		employeeRoutes.DELETE("/:id/records/:date", recordHandler.DeleteRecord)
		employeeRoutes.PUT("/:id/overrides/:date", recordHandler.ApplyOverride)
		employeeRoutes.DELETE("/:id/overrides/:date", recordHandler.RemoveOverride)
	}
}

// SetupReportRoutes sets up the balance and export routes.
func SetupReportRoutes(adminGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := adminGroup.Group("/reports")
	{
		reportRoutes.GET("/balance", reportHandler.GetBalance)
		reportRoutes.GET("/export.csv", reportHandler.ExportCSV)
	}
}
