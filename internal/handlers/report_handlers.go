package handlers

import (
	"errors"
	"net/http"

	"ponto_backend/internal/services"
	"ponto_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func respondReportError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
	case errors.Is(err, services.ErrDateFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, action+": Error from reportService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// GetBalance returns the worked/expected/saldo minute totals of one
// employee over ?from/?to.
func (h *ReportHandler) GetBalance(c *gin.Context) {
	employeeID := c.Query("employee_id")
	from := c.Query("from")
	to := c.Query("to")
	if employeeID == "" || from == "" || to == "" {
		utils.RespondValidationFailed(c, "employee_id, from and to query parameters are required")
		return
	}

	balance, err := h.reportService.GetBalance(employeeID, from, to)
	if err != nil {
		respondReportError(c, err, "compute balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// ExportCSV streams the period export as a CSV attachment. Without an
// employee_id the export covers every employee.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.RespondValidationFailed(c, "from and to query parameters are required (YYYY-MM-DD)")
		return
	}

	filename, data, err := h.reportService.ExportCSV(c.Query("employee_id"), from, to)
	if err != nil {
		respondReportError(c, err, "export CSV")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
