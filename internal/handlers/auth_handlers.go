package handlers

import (
	"errors"
	"net/http"

	"ponto_backend/internal/services"
	"ponto_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// AdminLogin exchanges the admin PIN for a session token.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.AdminLogin(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAdminPIN) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Admin PIN is incorrect.", err.Error()))
			return
		}
		utils.LogError(err, "AdminLogin: Error from authService.AdminLogin")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log in.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeAdminPIN updates the admin PIN.
func (h *AuthHandler) ChangeAdminPIN(c *gin.Context) {
	var req services.ChangeAdminPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	err := h.authService.ChangeAdminPIN(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAdminPIN) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Current admin PIN is incorrect.", err.Error()))
		} else if errors.Is(err, services.ErrAdminPINFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "ChangeAdminPIN: Error from authService.ChangeAdminPIN")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to change admin PIN.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin PIN updated successfully"})
}
