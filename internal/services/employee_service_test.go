package services

import (
	"errors"
	"testing"

	"ponto_backend/internal/models"
)

func TestCreateEmployeeDefaults(t *testing.T) {
	st := newTestStore(t)
	svc := NewEmployeeService(st)

	emp, err := svc.CreateEmployee(CreateEmployeeRequest{Name: "  Maria  ", Role: "Diarista"})
	if err != nil {
		t.Fatal(err)
	}
	if emp.Name != "Maria" || emp.Role != "Diarista" {
		t.Errorf("employee = %+v", emp)
	}
	if emp.PIN != "1234" {
		t.Errorf("default PIN = %q, want 1234", emp.PIN)
	}
	if !emp.Active || emp.ID == "" {
		t.Errorf("new employee not active or missing id: %+v", emp)
	}
	if emp.Schedule["mon"].Minutes != 480 || emp.Schedule["sun"].Active {
		t.Errorf("schedule = %+v", emp.Schedule)
	}

	got, err := svc.GetEmployeeByID(emp.ID)
	if err != nil || got.Name != "Maria" {
		t.Errorf("GetEmployeeByID = (%+v, %v)", got, err)
	}
}

func TestCreateEmployeeValidation(t *testing.T) {
	st := newTestStore(t)
	svc := NewEmployeeService(st)

	if _, err := svc.CreateEmployee(CreateEmployeeRequest{Name: "   "}); !errors.Is(err, ErrEmployeeValidation) {
		t.Errorf("blank name err = %v, want ErrEmployeeValidation", err)
	}
	if _, err := svc.CreateEmployee(CreateEmployeeRequest{Name: "Maria", PIN: "12a4"}); !errors.Is(err, ErrPINFormat) {
		t.Errorf("bad PIN err = %v, want ErrPINFormat", err)
	}
	if _, err := svc.CreateEmployee(CreateEmployeeRequest{Name: "Maria", PIN: "12345"}); !errors.Is(err, ErrPINFormat) {
		t.Errorf("long PIN err = %v, want ErrPINFormat", err)
	}
}

func TestUpdateEmployeePatch(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewEmployeeService(st)

	newPIN := "5678"
	updated, err := svc.UpdateEmployee(emp.ID, UpdateEmployeeRequest{PIN: &newPIN})
	if err != nil {
		t.Fatal(err)
	}
	if updated.PIN != "5678" || updated.Name != emp.Name {
		t.Errorf("updated = %+v", updated)
	}

	badPIN := "56789"
	if _, err := svc.UpdateEmployee(emp.ID, UpdateEmployeeRequest{PIN: &badPIN}); !errors.Is(err, ErrPINFormat) {
		t.Errorf("bad PIN err = %v, want ErrPINFormat", err)
	}
	if _, err := svc.UpdateEmployee("emp_missing", UpdateEmployeeRequest{}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("unknown id err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestDeactivateHidesEmployeeFromDefaultList(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewEmployeeService(st)

	updated, err := svc.DeactivateEmployee(emp.ID)
	if err != nil || updated.Active {
		t.Fatalf("deactivate = (%+v, %v)", updated, err)
	}

	visible, err := svc.GetEmployees(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 0 {
		t.Errorf("active list = %+v, want empty", visible)
	}
	all, err := svc.GetEmployees(true)
	if err != nil || len(all) != 1 {
		t.Errorf("full list = (%+v, %v), want 1 entry", all, err)
	}
}

func TestUpdateSchedulePatchesDays(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewEmployeeService(st)

	updated, err := svc.UpdateSchedule(emp.ID, UpdateScheduleRequest{Schedule: models.WeeklySchedule{
		"sat": {Active: false, Minutes: 240},
		"sun": {Active: true, Minutes: 300},
	}})
	if err != nil {
		t.Fatal(err)
	}
	// An inactive day always stores zero minutes.
	if updated.Schedule["sat"].Active || updated.Schedule["sat"].Minutes != 0 {
		t.Errorf("sat = %+v", updated.Schedule["sat"])
	}
	if !updated.Schedule["sun"].Active || updated.Schedule["sun"].Minutes != 300 {
		t.Errorf("sun = %+v", updated.Schedule["sun"])
	}
	if updated.Schedule["mon"].Minutes != 480 {
		t.Errorf("mon should be untouched, got %+v", updated.Schedule["mon"])
	}

	if _, err := svc.UpdateSchedule(emp.ID, UpdateScheduleRequest{Schedule: models.WeeklySchedule{
		"segunda": {Active: true, Minutes: 480},
	}}); !errors.Is(err, ErrScheduleValidation) {
		t.Errorf("unknown weekday err = %v, want ErrScheduleValidation", err)
	}
	if _, err := svc.UpdateSchedule(emp.ID, UpdateScheduleRequest{Schedule: models.WeeklySchedule{
		"mon": {Active: true, Minutes: 2000},
	}}); !errors.Is(err, ErrScheduleValidation) {
		t.Errorf("oversized day err = %v, want ErrScheduleValidation", err)
	}
}

func TestRemoveEmployeeCascades(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	err := st.Update(func(doc *models.Document) error {
		doc.SetRecord(emp.ID, "2024-06-03", models.DayRecord{In1: "08:00"})
		doc.SetOverride(emp.ID, "2024-06-04", models.DayOverride{Type: models.OverrideFolga})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewEmployeeService(st)
	if err := svc.RemoveEmployee(emp.ID, false); !errors.Is(err, ErrRemovalNotConfirmed) {
		t.Fatalf("unconfirmed removal err = %v, want ErrRemovalNotConfirmed", err)
	}
	if err := svc.RemoveEmployee(emp.ID, true); err != nil {
		t.Fatal(err)
	}

	doc, _ := st.Load()
	if doc.FindEmployee(emp.ID) != nil {
		t.Error("employee still present after removal")
	}
	if _, ok := doc.Records[emp.ID]; ok {
		t.Error("records not cascaded")
	}
	if _, ok := doc.Overrides[emp.ID]; ok {
		t.Error("overrides not cascaded")
	}

	if err := svc.RemoveEmployee(emp.ID, true); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("second removal err = %v, want ErrEmployeeNotFound", err)
	}
}
