package handlers

import (
	"errors"
	"net/http"

	"ponto_backend/internal/services"
	"ponto_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RecordHandler holds the services backing admin record and override edits.
type RecordHandler struct {
	punchService  services.PunchService
	reportService services.ReportService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(ps services.PunchService, rs services.ReportService) *RecordHandler {
	return &RecordHandler{punchService: ps, reportService: rs}
}

func respondRecordError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
	case errors.Is(err, services.ErrRecordNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Day record not found.", err.Error()))
	case errors.Is(err, services.ErrOverrideNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Day override not found.", err.Error()))
	case errors.Is(err, services.ErrDateFormat),
		errors.Is(err, services.ErrTimeFormat),
		errors.Is(err, services.ErrOverrideValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, action+": Error from service")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// GetDayBreakdown lists the per-day rows of an employee over ?from/?to,
// including punches, overrides and the derived day saldo.
func (h *RecordHandler) GetDayBreakdown(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		utils.RespondValidationFailed(c, "from and to query parameters are required (YYYY-MM-DD)")
		return
	}

	rows, err := h.reportService.GetBreakdown(c.Param("id"), from, to)
	if err != nil {
		respondRecordError(c, err, "fetch day breakdown")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "total": len(rows)})
}

// UpsertRecord patches the punch fields of one (employee, date) record.
func (h *RecordHandler) UpsertRecord(c *gin.Context) {
	var req services.UpsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	record, err := h.punchService.UpsertRecord(c.Param("id"), c.Param("date"), req)
	if err != nil {
		respondRecordError(c, err, "upsert day record")
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteRecord removes one (employee, date) record.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	err := h.punchService.DeleteRecord(c.Param("id"), c.Param("date"))
	if err != nil {
		respondRecordError(c, err, "delete day record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Day record deleted successfully"})
}

// ApplyOverride stores a day-off/compensation override for a date.
func (h *RecordHandler) ApplyOverride(c *gin.Context) {
	var req services.ApplyOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	override, err := h.punchService.ApplyOverride(c.Param("id"), c.Param("date"), req)
	if err != nil {
		respondRecordError(c, err, "apply override")
		return
	}
	c.JSON(http.StatusOK, override)
}

// RemoveOverride deletes the override of one (employee, date).
func (h *RecordHandler) RemoveOverride(c *gin.Context) {
	err := h.punchService.RemoveOverride(c.Param("id"), c.Param("date"))
	if err != nil {
		respondRecordError(c, err, "remove override")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Day override removed successfully"})
}
