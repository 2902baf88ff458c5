package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ponto_backend/internal/models"
	"ponto_backend/internal/store"
	"ponto_backend/internal/timebank"
)

// --- Custom Service Errors for Punching and Day Records ---
var (
	ErrInvalidPIN         = errors.New("invalid PIN")
	ErrEmployeeInactive   = errors.New("employee is not active")
	ErrDayComplete        = timebank.ErrDayComplete
	ErrDateFormat         = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrTimeFormat         = errors.New("invalid time format, please use HH:MM")
	ErrRecordNotFound     = errors.New("day record not found")
	ErrOverrideNotFound   = errors.New("day override not found")
	ErrOverrideValidation = errors.New("override validation error")
)

// --- Punch DTOs ---

type PunchRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	PIN        string `json:"pin" binding:"required"`
	// Date defaults to today, Time to the current wall clock. Both are
	// accepted explicitly so the shared device can back-fill a punch.
	Date string `json:"date"`
	Time string `json:"time"`
}

type PunchResult struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	Slot       string           `json:"slot"`
	Time       string           `json:"time"`
	Record     models.DayRecord `json:"record"`
}

// UpsertRecordRequest patches individual punch fields of a day record.
// A present empty string clears the field, nil leaves it untouched.
type UpsertRecordRequest struct {
	In1  *string `json:"in1"`
	Out1 *string `json:"out1"`
	In2  *string `json:"in2"`
	Out2 *string `json:"out2"`
	Note *string `json:"note"`
}

type ApplyOverrideRequest struct {
	Type    string `json:"type" binding:"required"`
	Minutes *int   `json:"minutes"`
	Note    string `json:"note"`
}

// --- PunchService Interface ---
type PunchService interface {
	ValidatePIN(employeeID, pin string) error
	Punch(req PunchRequest) (*PunchResult, error)
	UpsertRecord(employeeID, date string, req UpsertRecordRequest) (*models.DayRecord, error)
	DeleteRecord(employeeID, date string) error
	ApplyOverride(employeeID, date string, req ApplyOverrideRequest) (*models.DayOverride, error)
	RemoveOverride(employeeID, date string) error
}

type punchService struct {
	store store.Store
	// overwriteLast selects the legacy 5th-punch behavior: overwrite
	// out2 instead of rejecting once the day is complete.
	overwriteLast bool
	now           func() time.Time
}

// NewPunchService creates a new instance of PunchService.
func NewPunchService(st store.Store, overwriteLast bool) PunchService {
	return &punchService{store: st, overwriteLast: overwriteLast, now: time.Now}
}

func validDate(date string) bool {
	_, err := time.ParseInLocation(timebank.DateLayout, date, time.Local)
	return err == nil
}

func checkPIN(emp *models.Employee, pin string) error {
	if !emp.Active {
		return ErrEmployeeInactive
	}
	if strings.TrimSpace(pin) != emp.PIN {
		return ErrInvalidPIN
	}
	return nil
}

func (s *punchService) ValidatePIN(employeeID, pin string) error {
	doc, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load store for PIN validation: %w", err)
	}
	emp := doc.FindEmployee(employeeID)
	if emp == nil {
		return ErrEmployeeNotFound
	}
	return checkPIN(emp, pin)
}

func (s *punchService) Punch(req PunchRequest) (*PunchResult, error) {
	date := req.Date
	if date == "" {
		date = s.now().Format(timebank.DateLayout)
	}
	if !validDate(date) {
		return nil, ErrDateFormat
	}
	hhmm := req.Time
	if hhmm == "" {
		hhmm = s.now().Format("15:04")
	}
	if _, ok := timebank.ParseTimeOfDay(hhmm); !ok {
		return nil, ErrTimeFormat
	}

	var result PunchResult
	err := s.store.Update(func(doc *models.Document) error {
		emp := doc.FindEmployee(req.EmployeeID)
		if emp == nil {
			return ErrEmployeeNotFound
		}
		if err := checkPIN(emp, req.PIN); err != nil {
			return err
		}

		rec := doc.RecordsFor(emp.ID)[date]
		slot, err := timebank.ApplyPunch(&rec, hhmm, s.overwriteLast)
		if err != nil {
			return err
		}
		if rec.Note == "" {
			rec.Note = "Batida via celular"
		}
		doc.SetRecord(emp.ID, date, rec)

		result = PunchResult{
			EmployeeID: emp.ID,
			Date:       date,
			Slot:       slot,
			Time:       hhmm,
			Record:     rec,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmployeeNotFound),
			errors.Is(err, ErrEmployeeInactive),
			errors.Is(err, ErrInvalidPIN),
			errors.Is(err, ErrDayComplete):
			return nil, err
		}
		return nil, fmt.Errorf("failed to register punch: %w", err)
	}
	return &result, nil
}

func validateTimeField(name string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if _, ok := timebank.ParseTimeOfDay(*value); !ok {
		return fmt.Errorf("%w: %s", ErrTimeFormat, name)
	}
	return nil
}

func (s *punchService) UpsertRecord(employeeID, date string, req UpsertRecordRequest) (*models.DayRecord, error) {
	if !validDate(date) {
		return nil, ErrDateFormat
	}
	for name, field := range map[string]*string{
		"in1": req.In1, "out1": req.Out1, "in2": req.In2, "out2": req.Out2,
	} {
		if err := validateTimeField(name, field); err != nil {
			return nil, err
		}
	}

	var updated models.DayRecord
	err := s.store.Update(func(doc *models.Document) error {
		if doc.FindEmployee(employeeID) == nil {
			return ErrEmployeeNotFound
		}
		rec := doc.RecordsFor(employeeID)[date]
		if req.In1 != nil {
			rec.In1 = *req.In1
		}
		if req.Out1 != nil {
			rec.Out1 = *req.Out1
		}
		if req.In2 != nil {
			rec.In2 = *req.In2
		}
		if req.Out2 != nil {
			rec.Out2 = *req.Out2
		}
		if req.Note != nil {
			rec.Note = *req.Note
		}
		doc.SetRecord(employeeID, date, rec)
		updated = rec
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to upsert day record: %w", err)
	}
	return &updated, nil
}

func (s *punchService) DeleteRecord(employeeID, date string) error {
	err := s.store.Update(func(doc *models.Document) error {
		if doc.FindEmployee(employeeID) == nil {
			return ErrEmployeeNotFound
		}
		if !doc.DeleteRecord(employeeID, date) {
			return ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrRecordNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete day record: %w", err)
	}
	return nil
}

func (s *punchService) ApplyOverride(employeeID, date string, req ApplyOverrideRequest) (*models.DayOverride, error) {
	if !validDate(date) {
		return nil, ErrDateFormat
	}
	if !models.ValidOverrideType(req.Type) {
		return nil, fmt.Errorf("%w: unknown type %q", ErrOverrideValidation, req.Type)
	}
	if req.Minutes != nil && (*req.Minutes < 0 || *req.Minutes > 24*60) {
		return nil, fmt.Errorf("%w: minutes out of range", ErrOverrideValidation)
	}

	ov := models.DayOverride{Type: req.Type, Minutes: req.Minutes, Note: strings.TrimSpace(req.Note)}
	err := s.store.Update(func(doc *models.Document) error {
		if doc.FindEmployee(employeeID) == nil {
			return ErrEmployeeNotFound
		}
		doc.SetOverride(employeeID, date, ov)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to apply override: %w", err)
	}
	return &ov, nil
}

func (s *punchService) RemoveOverride(employeeID, date string) error {
	err := s.store.Update(func(doc *models.Document) error {
		if doc.FindEmployee(employeeID) == nil {
			return ErrEmployeeNotFound
		}
		if !doc.DeleteOverride(employeeID, date) {
			return ErrOverrideNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) || errors.Is(err, ErrOverrideNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove override: %w", err)
	}
	return nil
}
