package handlers

import (
	"errors"
	"net/http"

	"ponto_backend/internal/services"
	"ponto_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler holds the employee service.
type EmployeeHandler struct {
	employeeService services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(es services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

func respondEmployeeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
	case errors.Is(err, services.ErrEmployeeValidation),
		errors.Is(err, services.ErrPINFormat),
		errors.Is(err, services.ErrScheduleValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrRemovalNotConfirmed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Employee removal deletes all records and overrides; pass confirm=true to proceed.", err.Error()))
	default:
		utils.LogError(err, action+": Error from employeeService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

// CreateEmployee handles the creation of a new employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.CreateEmployee(req)
	if err != nil {
		respondEmployeeError(c, err, "create employee")
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// GetEmployees handles fetching all employees. Inactive employees are
// included only with ?include_inactive=true.
func (h *EmployeeHandler) GetEmployees(c *gin.Context) {
	includeInactive := c.DefaultQuery("include_inactive", "false") == "true"

	employees, err := h.employeeService.GetEmployees(includeInactive)
	if err != nil {
		respondEmployeeError(c, err, "fetch employees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": employees, "total": len(employees)})
}

// GetEmployeeByID handles fetching a single employee.
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	employee, err := h.employeeService.GetEmployeeByID(c.Param("id"))
	if err != nil {
		respondEmployeeError(c, err, "fetch employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee handles updating name, role, PIN or active flag.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Param("id"), req)
	if err != nil {
		respondEmployeeError(c, err, "update employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateSchedule handles editing the weekly schedule of an employee.
func (h *EmployeeHandler) UpdateSchedule(c *gin.Context) {
	var req services.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.employeeService.UpdateSchedule(c.Param("id"), req)
	if err != nil {
		respondEmployeeError(c, err, "update schedule")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeactivateEmployee marks an employee inactive without deleting data.
func (h *EmployeeHandler) DeactivateEmployee(c *gin.Context) {
	employee, err := h.employeeService.DeactivateEmployee(c.Param("id"))
	if err != nil {
		respondEmployeeError(c, err, "deactivate employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes an employee and cascades its records and
// overrides. The caller must pass confirm=true.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"

	err := h.employeeService.RemoveEmployee(c.Param("id"), confirmed)
	if err != nil {
		respondEmployeeError(c, err, "delete employee")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee removed successfully"})
}
