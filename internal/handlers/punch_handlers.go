package handlers

import (
	"errors"
	"net/http"

	"ponto_backend/internal/services"
	"ponto_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PunchHandler holds the services backing the shared punch device.
type PunchHandler struct {
	punchService    services.PunchService
	employeeService services.EmployeeService
}

// NewPunchHandler creates a new PunchHandler.
func NewPunchHandler(ps services.PunchService, es services.EmployeeService) *PunchHandler {
	return &PunchHandler{punchService: ps, employeeService: es}
}

// punchEmployee is the reduced employee view shown on the punch screen.
type punchEmployee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// ListPunchEmployees returns the active employees selectable on the
// shared device. No PIN required: names are not a secret on a device
// the whole team shares.
func (h *PunchHandler) ListPunchEmployees(c *gin.Context) {
	employees, err := h.employeeService.GetEmployees(false)
	if err != nil {
		utils.LogError(err, "ListPunchEmployees: Error from employeeService.GetEmployees")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employees.", "Internal error"))
		return
	}
	out := []punchEmployee{}
	for _, emp := range employees {
		out = append(out, punchEmployee{ID: emp.ID, Name: emp.Name, Role: emp.Role})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

type validatePINRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	PIN        string `json:"pin" binding:"required"`
}

// ValidatePIN checks an employee PIN without punching.
func (h *PunchHandler) ValidatePIN(c *gin.Context) {
	var req validatePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	err := h.punchService.ValidatePIN(req.EmployeeID, req.PIN)
	if err != nil {
		respondPunchError(c, err, "validate PIN")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PIN OK"})
}

// Punch stamps the current time into the next free slot of the day.
func (h *PunchHandler) Punch(c *gin.Context) {
	var req services.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.punchService.Punch(req)
	if err != nil {
		respondPunchError(c, err, "register punch")
		return
	}
	c.JSON(http.StatusOK, result)
}

func respondPunchError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
	case errors.Is(err, services.ErrInvalidPIN):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "PIN is incorrect.", err.Error()))
	case errors.Is(err, services.ErrEmployeeInactive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Employee is deactivated.", err.Error()))
	case errors.Is(err, services.ErrDayComplete):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "All four punch slots for the day are already filled.", err.Error()))
	case errors.Is(err, services.ErrDateFormat), errors.Is(err, services.ErrTimeFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, action+": Error from punchService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}
