package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ponto_backend/internal/models"
	"ponto_backend/internal/store"
	"ponto_backend/internal/timebank"
)

// DayBreakdownRow is one day of an employee's period, as shown in the
// admin table: punches, override, and the derived minute totals.
type DayBreakdownRow struct {
	Date            string              `json:"date"`
	Weekday         models.WeekdayKey   `json:"weekday"`
	WeekdayLabel    string              `json:"weekday_label"`
	Record          *models.DayRecord   `json:"record,omitempty"`
	Override        *models.DayOverride `json:"override,omitempty"`
	ExpectedMinutes int                 `json:"expected_minutes"`
	WorkedMinutes   int                 `json:"worked_minutes"`
	SaldoMinutes    int                 `json:"saldo_minutes"`
	SaldoHHMM       string              `json:"saldo_hhmm"`
}

// --- ReportService Interface ---
type ReportService interface {
	GetBalance(employeeID, from, to string) (*models.Balance, error)
	GetBreakdown(employeeID, from, to string) ([]DayBreakdownRow, error)
	// ExportCSV builds the period export. An empty employeeID exports
	// every employee. The returned filename embeds the scope and range.
	ExportCSV(employeeID, from, to string) (string, []byte, error)
}

type reportService struct {
	store store.Store
}

// NewReportService creates a new instance of ReportService.
func NewReportService(st store.Store) ReportService {
	return &reportService{store: st}
}

func (s *reportService) GetBalance(employeeID, from, to string) (*models.Balance, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load store for balance: %w", err)
	}
	emp := doc.FindEmployee(employeeID)
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	bal, err := timebank.RangeBalance(emp, doc.RecordsFor(emp.ID), doc.OverridesFor(emp.ID), from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDateFormat, err)
	}
	return &bal, nil
}

func (s *reportService) GetBreakdown(employeeID, from, to string) ([]DayBreakdownRow, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load store for breakdown: %w", err)
	}
	emp := doc.FindEmployee(employeeID)
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	return breakdownFor(doc, emp, from, to)
}

func breakdownFor(doc *models.Document, emp *models.Employee, from, to string) ([]DayBreakdownRow, error) {
	days, err := timebank.EnumerateDays(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDateFormat, err)
	}
	records := doc.RecordsFor(emp.ID)
	overrides := doc.OverridesFor(emp.ID)

	rows := []DayBreakdownRow{}
	for _, day := range days {
		key, err := timebank.WeekdayOf(day)
		if err != nil {
			return nil, err
		}
		row := DayBreakdownRow{
			Date:         day,
			Weekday:      key,
			WeekdayLabel: models.WeekdayLabels[key],
		}
		var override *models.DayOverride
		if ov, ok := overrides[day]; ok {
			override = &ov
			row.Override = &ov
		}
		if rec, ok := records[day]; ok {
			row.Record = &rec
			row.WorkedMinutes = timebank.WorkedMinutes(rec)
		}
		expected, err := timebank.ExpectedMinutes(emp, day, override)
		if err != nil {
			return nil, err
		}
		row.ExpectedMinutes = expected
		row.SaldoMinutes = row.WorkedMinutes - expected
		row.SaldoHHMM = timebank.FormatMinutes(row.SaldoMinutes)
		rows = append(rows, row)
	}
	return rows, nil
}

var csvHeader = []string{
	"funcionario", "cargo", "data", "dia_semana",
	"tipo_folga", "folga_obs",
	"entrada1", "saida1", "entrada2", "saida2", "ponto_obs",
	"previsto_min", "trabalhado_min", "saldo_min",
	"previsto_hhmm", "trabalhado_hhmm", "saldo_hhmm",
}

func (s *reportService) ExportCSV(employeeID, from, to string) (string, []byte, error) {
	doc, err := s.store.Load()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load store for export: %w", err)
	}

	scope := doc.Employees
	scopeName := "todos"
	if employeeID != "" {
		emp := doc.FindEmployee(employeeID)
		if emp == nil {
			return "", nil, ErrEmployeeNotFound
		}
		scope = []models.Employee{*emp}
		scopeName = slugify(emp.Name)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range scope {
		emp := &scope[i]
		rows, err := breakdownFor(doc, emp, from, to)
		if err != nil {
			return "", nil, err
		}
		for _, row := range rows {
			rec := models.DayRecord{}
			if row.Record != nil {
				rec = *row.Record
			}
			overrideType, overrideNote := "", ""
			if row.Override != nil {
				overrideType = row.Override.Type
				overrideNote = row.Override.Note
			}
			err := w.Write([]string{
				emp.Name, emp.Role, row.Date, row.WeekdayLabel,
				overrideType, overrideNote,
				rec.In1, rec.Out1, rec.In2, rec.Out2, rec.Note,
				strconv.Itoa(row.ExpectedMinutes),
				strconv.Itoa(row.WorkedMinutes),
				strconv.Itoa(row.SaldoMinutes),
				timebank.FormatMinutes(row.ExpectedMinutes),
				timebank.FormatMinutes(row.WorkedMinutes),
				row.SaldoHHMM,
			})
			if err != nil {
				return "", nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	filename := fmt.Sprintf("ponto_%s_%s_a_%s.csv", scopeName, from, to)
	return filename, buf.Bytes(), nil
}

// slugify reduces an employee name to a safe filename fragment.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "funcionario"
	}
	return b.String()
}
