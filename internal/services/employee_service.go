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

// --- Custom Service Errors for Employees ---
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeValidation  = errors.New("employee data validation error")
	ErrPINFormat           = errors.New("PIN must be a 4-digit number")
	ErrScheduleValidation  = errors.New("schedule validation error")
	ErrRemovalNotConfirmed = errors.New("employee removal requires explicit confirmation")
)

// --- Employee DTOs ---

type CreateEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role"`
	PIN  string `json:"pin"`
}

type UpdateEmployeeRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	PIN    *string `json:"pin"`
	Active *bool   `json:"active"`
}

type UpdateScheduleRequest struct {
	Schedule models.WeeklySchedule `json:"schedule" binding:"required"`
}

// --- EmployeeService Interface ---
type EmployeeService interface {
	CreateEmployee(req CreateEmployeeRequest) (*models.Employee, error)
	GetEmployees(includeInactive bool) ([]models.Employee, error)
	GetEmployeeByID(id string) (*models.Employee, error)
	UpdateEmployee(id string, req UpdateEmployeeRequest) (*models.Employee, error)
	UpdateSchedule(id string, req UpdateScheduleRequest) (*models.Employee, error)
	DeactivateEmployee(id string) (*models.Employee, error)
	RemoveEmployee(id string, confirmed bool) error
}

type employeeService struct {
	store store.Store
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(st store.Store) EmployeeService {
	return &employeeService{store: st}
}

func validateSchedule(schedule models.WeeklySchedule) error {
	known := map[models.WeekdayKey]bool{}
	for _, key := range models.WeekdayKeys {
		known[key] = true
	}
	for key, day := range schedule {
		if !known[key] {
			return fmt.Errorf("%w: unknown weekday %q", ErrScheduleValidation, key)
		}
		if day.Minutes < 0 {
			return fmt.Errorf("%w: %s has negative minutes", ErrScheduleValidation, key)
		}
		if day.Minutes > 24*60 {
			return fmt.Errorf("%w: %s exceeds 24 hours", ErrScheduleValidation, key)
		}
	}
	return nil
}

func (s *employeeService) CreateEmployee(req CreateEmployeeRequest) (*models.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrEmployeeValidation)
	}
	pin := strings.TrimSpace(req.PIN)
	if pin == "" {
		pin = "1234"
	}
	if !utils.IsValidPIN(pin) {
		return nil, ErrPINFormat
	}

	now := time.Now()
	emp := models.Employee{
		ID:        models.NewEmployeeID(),
		Name:      name,
		Role:      strings.TrimSpace(req.Role),
		PIN:       pin,
		Active:    true,
		Schedule:  models.DefaultSchedule(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.Employees = append(doc.Employees, emp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &emp, nil
}

func (s *employeeService) GetEmployees(includeInactive bool) ([]models.Employee, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	employees := []models.Employee{}
	for _, emp := range doc.Employees {
		if includeInactive || emp.Active {
			employees = append(employees, emp)
		}
	}
	return employees, nil
}

func (s *employeeService) GetEmployeeByID(id string) (*models.Employee, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	emp := doc.FindEmployee(id)
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *employeeService) UpdateEmployee(id string, req UpdateEmployeeRequest) (*models.Employee, error) {
	var updated models.Employee
	err := s.store.Update(func(doc *models.Document) error {
		emp := doc.FindEmployee(id)
		if emp == nil {
			return ErrEmployeeNotFound
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: name cannot be empty if provided", ErrEmployeeValidation)
			}
			emp.Name = name
		}
		if req.Role != nil {
			emp.Role = strings.TrimSpace(*req.Role)
		}
		if req.PIN != nil {
			pin := strings.TrimSpace(*req.PIN)
			if !utils.IsValidPIN(pin) {
				return ErrPINFormat
			}
			emp.PIN = pin
		}
		if req.Active != nil {
			emp.Active = *req.Active
		}
		emp.UpdatedAt = time.Now()
		updated = *emp
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrEmployeeValidation) || errors.Is(err, ErrPINFormat) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return &updated, nil
}

func (s *employeeService) UpdateSchedule(id string, req UpdateScheduleRequest) (*models.Employee, error) {
	if err := validateSchedule(req.Schedule); err != nil {
		return nil, err
	}
	var updated models.Employee
	err := s.store.Update(func(doc *models.Document) error {
		emp := doc.FindEmployee(id)
		if emp == nil {
			return ErrEmployeeNotFound
		}
		// Patch only the provided weekdays; the rest keep their values.
		for key, day := range req.Schedule {
			if !day.Active {
				day.Minutes = 0
			}
			emp.Schedule[key] = day
		}
		emp.UpdatedAt = time.Now()
		updated = *emp
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return &updated, nil
}

func (s *employeeService) DeactivateEmployee(id string) (*models.Employee, error) {
	active := false
	return s.UpdateEmployee(id, UpdateEmployeeRequest{Active: &active})
}

// RemoveEmployee hard-deletes an employee together with all of its
// records and overrides. The confirmed flag must be set by the caller;
// deactivation is the recommended non-destructive alternative.
func (s *employeeService) RemoveEmployee(id string, confirmed bool) error {
	if !confirmed {
		return ErrRemovalNotConfirmed
	}
	err := s.store.Update(func(doc *models.Document) error {
		if !doc.RemoveEmployee(id) {
			return ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove employee: %w", err)
	}
	return nil
}
