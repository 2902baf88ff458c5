package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ponto_backend/internal/models"
	"ponto_backend/internal/store"
	"ponto_backend/pkg/utils"
)

// --- Custom Service Errors for Admin Auth ---
var (
	ErrInvalidAdminPIN = errors.New("invalid admin PIN")
	ErrAdminPINFormat  = errors.New("admin PIN must be a 4-digit number")
	ErrTokenGeneration = errors.New("failed to generate token")
)

// --- Auth DTOs ---

type AdminLoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ChangeAdminPINRequest struct {
	CurrentPIN string `json:"current_pin" binding:"required"`
	NewPIN     string `json:"new_pin" binding:"required"`
}

// --- AuthService Interface ---
type AuthService interface {
	AdminLogin(req AdminLoginRequest) (*AuthResponse, error)
	ChangeAdminPIN(req ChangeAdminPINRequest) error
}

type authService struct {
	store         store.Store
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(st store.Store, jwtSecret string, jwtExp time.Duration) AuthService {
	return &authService{store: st, jwtSecret: jwtSecret, jwtExpiration: jwtExp}
}

// AdminLogin validates the admin PIN against its stored bcrypt hash and
// issues a short-lived admin session token. There is no lockout; the
// PIN is a convenience gate, not a security boundary.
func (s *authService) AdminLogin(req AdminLoginRequest) (*AuthResponse, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load store for admin login: %w", err)
	}
	if !models.CheckAdminPIN(doc.AdminPINHash, strings.TrimSpace(req.PIN)) {
		return nil, ErrInvalidAdminPIN
	}
	token, err := utils.GenerateAdminToken(s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtExpiration.Seconds()),
	}, nil
}

func (s *authService) ChangeAdminPIN(req ChangeAdminPINRequest) error {
	newPIN := strings.TrimSpace(req.NewPIN)
	if !utils.IsValidPIN(newPIN) {
		return ErrAdminPINFormat
	}
	err := s.store.Update(func(doc *models.Document) error {
		if !models.CheckAdminPIN(doc.AdminPINHash, strings.TrimSpace(req.CurrentPIN)) {
			return ErrInvalidAdminPIN
		}
		doc.AdminPINHash = models.HashAdminPIN(newPIN)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidAdminPIN) {
			return err
		}
		return fmt.Errorf("failed to change admin PIN: %w", err)
	}
	return nil
}
