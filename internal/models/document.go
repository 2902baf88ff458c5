package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPIN is the seeded administrator PIN for a fresh store.
const DefaultAdminPIN = "9999"

// NewEmployeeID generates a fresh opaque employee identifier.
func NewEmployeeID() string {
	return "emp_" + uuid.NewString()
}

// Meta carries app-level metadata persisted alongside the data.
type Meta struct {
	AppName   string    `json:"app_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Document is the whole persisted state: one JSON-serializable value
// holding every employee, record and override. Records and Overrides
// are keyed by employee ID, then by YYYY-MM-DD date.
type Document struct {
	Meta         Meta                              `json:"meta"`
	AdminPINHash string                            `json:"admin_pin_hash"`
	Employees    []Employee                        `json:"employees"`
	Records      map[string]map[string]DayRecord   `json:"records"`
	Overrides    map[string]map[string]DayOverride `json:"overrides"`
}

// DefaultDocument builds the first-run state: one example employee with
// the default weekly schedule and the default admin PIN.
func DefaultDocument(now time.Time) *Document {
	doc := &Document{
		Meta: Meta{
			AppName:   "Ponto Rancho J&L",
			CreatedAt: now,
		},
		Employees: []Employee{
			{
				ID:        NewEmployeeID(),
				Name:      "Caseiro João (exemplo)",
				Role:      "Caseiro",
				PIN:       "1234",
				Active:    true,
				Schedule:  DefaultSchedule(),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Records:   map[string]map[string]DayRecord{},
		Overrides: map[string]map[string]DayOverride{},
	}
	doc.AdminPINHash = hashPIN(DefaultAdminPIN)
	return doc
}

func hashPIN(pin string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		// GenerateFromPassword only fails for out-of-range costs, and
		// DefaultCost is always in range.
		panic(fmt.Sprintf("bcrypt rejected default cost: %v", err))
	}
	return string(hash)
}

// HashAdminPIN hashes an admin PIN for storage.
func HashAdminPIN(pin string) string {
	return hashPIN(pin)
}

// CheckAdminPIN compares a candidate PIN against the stored hash.
func CheckAdminPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// Normalize merges a loaded document with defaults so that partially
// written or older state never leaves nil maps or missing schedule
// entries behind. Unknown fields are dropped by the JSON decoding step.
func (d *Document) Normalize() {
	if d.Meta.AppName == "" {
		d.Meta.AppName = "Ponto Rancho J&L"
	}
	if d.Meta.CreatedAt.IsZero() {
		d.Meta.CreatedAt = time.Now()
	}
	if d.AdminPINHash == "" {
		d.AdminPINHash = hashPIN(DefaultAdminPIN)
	}
	if d.Employees == nil {
		d.Employees = []Employee{}
	}
	if d.Records == nil {
		d.Records = map[string]map[string]DayRecord{}
	}
	if d.Overrides == nil {
		d.Overrides = map[string]map[string]DayOverride{}
	}
	for i := range d.Employees {
		emp := &d.Employees[i]
		if emp.Schedule == nil {
			emp.Schedule = WeeklySchedule{}
		}
		for _, key := range WeekdayKeys {
			if _, ok := emp.Schedule[key]; !ok {
				emp.Schedule[key] = DaySchedule{}
			}
		}
	}
}

// FindEmployee returns the employee with the given ID, or nil.
func (d *Document) FindEmployee(id string) *Employee {
	for i := range d.Employees {
		if d.Employees[i].ID == id {
			return &d.Employees[i]
		}
	}
	return nil
}

// RecordsFor returns the date-keyed records of one employee (possibly nil).
func (d *Document) RecordsFor(empID string) map[string]DayRecord {
	return d.Records[empID]
}

// OverridesFor returns the date-keyed overrides of one employee (possibly nil).
func (d *Document) OverridesFor(empID string) map[string]DayOverride {
	return d.Overrides[empID]
}

// SetRecord stores the record for (employee, date).
func (d *Document) SetRecord(empID, date string, rec DayRecord) {
	if d.Records[empID] == nil {
		d.Records[empID] = map[string]DayRecord{}
	}
	d.Records[empID][date] = rec
}

// DeleteRecord removes the record for (employee, date) if present.
func (d *Document) DeleteRecord(empID, date string) bool {
	if _, ok := d.Records[empID][date]; !ok {
		return false
	}
	delete(d.Records[empID], date)
	return true
}

// SetOverride stores the override for (employee, date).
func (d *Document) SetOverride(empID, date string, ov DayOverride) {
	if d.Overrides[empID] == nil {
		d.Overrides[empID] = map[string]DayOverride{}
	}
	d.Overrides[empID][date] = ov
}

// DeleteOverride removes the override for (employee, date) if present.
func (d *Document) DeleteOverride(empID, date string) bool {
	if _, ok := d.Overrides[empID][date]; !ok {
		return false
	}
	delete(d.Overrides[empID], date)
	return true
}

// RemoveEmployee deletes an employee and cascades its records and
// overrides. Returns false when the ID is unknown.
func (d *Document) RemoveEmployee(id string) bool {
	for i := range d.Employees {
		if d.Employees[i].ID == id {
			d.Employees = append(d.Employees[:i], d.Employees[i+1:]...)
			delete(d.Records, id)
			delete(d.Overrides, id)
			return true
		}
	}
	return false
}
