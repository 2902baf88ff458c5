package services

import (
	"errors"
	"path/filepath"
	"testing"

	"ponto_backend/internal/models"
	"ponto_backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), "ponto.json"))
}

func seededEmployee(t *testing.T, st store.Store) models.Employee {
	t.Helper()
	doc, err := st.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Employees) == 0 {
		t.Fatal("store has no seeded employee")
	}
	return doc.Employees[0]
}

func strPtr(s string) *string { return &s }

func TestPunchSequence(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, false)

	times := []string{"08:00", "12:00", "13:00", "17:00"}
	slots := []string{"in1", "out1", "in2", "out2"}
	for i, hhmm := range times {
		res, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "2024-06-03", Time: hhmm})
		if err != nil {
			t.Fatalf("punch %d: %v", i, err)
		}
		if res.Slot != slots[i] || res.Time != hhmm {
			t.Fatalf("punch %d = %+v, want slot %s time %s", i, res, slots[i], hhmm)
		}
	}

	// The day is complete: a 5th punch is rejected and nothing moves.
	_, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "2024-06-03", Time: "18:00"})
	if !errors.Is(err, ErrDayComplete) {
		t.Fatalf("5th punch err = %v, want ErrDayComplete", err)
	}
	doc, _ := st.Load()
	rec := doc.RecordsFor(emp.ID)["2024-06-03"]
	if rec.In1 != "08:00" || rec.Out1 != "12:00" || rec.In2 != "13:00" || rec.Out2 != "17:00" {
		t.Errorf("record after rejected punch = %+v", rec)
	}
	if rec.Note == "" {
		t.Error("punch did not stamp the default note")
	}
}

func TestPunchOverwriteLastPolicy(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, true)

	for _, hhmm := range []string{"08:00", "12:00", "13:00", "17:00"} {
		if _, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "2024-06-03", Time: hhmm}); err != nil {
			t.Fatal(err)
		}
	}
	res, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "2024-06-03", Time: "18:00"})
	if err != nil || res.Slot != "out2" {
		t.Fatalf("5th punch = (%+v, %v), want out2 overwrite", res, err)
	}
	if res.Record.Out2 != "18:00" || res.Record.In1 != "08:00" {
		t.Errorf("record after overwrite = %+v", res.Record)
	}
}

func TestPunchRejectsBadPIN(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, false)

	_, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: "0000", Date: "2024-06-03", Time: "08:00"})
	if !errors.Is(err, ErrInvalidPIN) {
		t.Errorf("err = %v, want ErrInvalidPIN", err)
	}
	if err := svc.ValidatePIN(emp.ID, emp.PIN); err != nil {
		t.Errorf("ValidatePIN with correct PIN = %v", err)
	}
	if err := svc.ValidatePIN("emp_missing", emp.PIN); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("ValidatePIN unknown employee = %v, want ErrEmployeeNotFound", err)
	}
}

func TestPunchRejectsInactiveEmployee(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	err := st.Update(func(doc *models.Document) error {
		doc.FindEmployee(emp.ID).Active = false
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	svc := NewPunchService(st, false)
	_, err = svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "2024-06-03", Time: "08:00"})
	if !errors.Is(err, ErrEmployeeInactive) {
		t.Errorf("err = %v, want ErrEmployeeInactive", err)
	}
}

func TestPunchValidatesDateAndTime(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, false)

	if _, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "03/06/2024", Time: "08:00"}); !errors.Is(err, ErrDateFormat) {
		t.Errorf("bad date err = %v, want ErrDateFormat", err)
	}
	if _, err := svc.Punch(PunchRequest{EmployeeID: emp.ID, PIN: emp.PIN, Date: "2024-06-03", Time: "25:00"}); !errors.Is(err, ErrTimeFormat) {
		t.Errorf("bad time err = %v, want ErrTimeFormat", err)
	}
}

func TestUpsertRecordPatchesFields(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, false)

	rec, err := svc.UpsertRecord(emp.ID, "2024-06-03", UpsertRecordRequest{
		In1: strPtr("08:00"), Out1: strPtr("12:00"), Note: strPtr("ajuste manual"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.In1 != "08:00" || rec.Out1 != "12:00" || rec.Note != "ajuste manual" {
		t.Fatalf("record = %+v", rec)
	}

	// Clearing a field with an empty string, leaving the rest alone.
	rec, err = svc.UpsertRecord(emp.ID, "2024-06-03", UpsertRecordRequest{Out1: strPtr("")})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Out1 != "" || rec.In1 != "08:00" {
		t.Errorf("record after clear = %+v", rec)
	}

	if _, err := svc.UpsertRecord(emp.ID, "2024-06-03", UpsertRecordRequest{In2: strPtr("99:99")}); !errors.Is(err, ErrTimeFormat) {
		t.Errorf("bad in2 err = %v, want ErrTimeFormat", err)
	}
	if _, err := svc.UpsertRecord("emp_missing", "2024-06-03", UpsertRecordRequest{}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("unknown employee err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, false)

	if err := svc.DeleteRecord(emp.ID, "2024-06-03"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("delete missing err = %v, want ErrRecordNotFound", err)
	}
	if _, err := svc.UpsertRecord(emp.ID, "2024-06-03", UpsertRecordRequest{In1: strPtr("08:00")}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteRecord(emp.ID, "2024-06-03"); err != nil {
		t.Fatal(err)
	}
	doc, _ := st.Load()
	if _, ok := doc.RecordsFor(emp.ID)["2024-06-03"]; ok {
		t.Error("record still present after delete")
	}
}

func TestOverrideLifecycle(t *testing.T) {
	st := newTestStore(t)
	emp := seededEmployee(t, st)
	svc := NewPunchService(st, false)

	if _, err := svc.ApplyOverride(emp.ID, "2024-06-03", ApplyOverrideRequest{Type: "feriado"}); !errors.Is(err, ErrOverrideValidation) {
		t.Errorf("unknown type err = %v, want ErrOverrideValidation", err)
	}

	minutes := 120
	ov, err := svc.ApplyOverride(emp.ID, "2024-06-03", ApplyOverrideRequest{Type: models.OverrideCompensacao, Minutes: &minutes, Note: " meio período "})
	if err != nil {
		t.Fatal(err)
	}
	if ov.Type != models.OverrideCompensacao || *ov.Minutes != 120 || ov.Note != "meio período" {
		t.Errorf("override = %+v", ov)
	}

	if err := svc.RemoveOverride(emp.ID, "2024-06-04"); !errors.Is(err, ErrOverrideNotFound) {
		t.Errorf("remove missing err = %v, want ErrOverrideNotFound", err)
	}
	if err := svc.RemoveOverride(emp.ID, "2024-06-03"); err != nil {
		t.Fatal(err)
	}
}
