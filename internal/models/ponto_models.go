package models

import "time"

// WeekdayKey identifies a day of the week in a WeeklySchedule.
type WeekdayKey string

const (
	WeekdaySun WeekdayKey = "sun"
	WeekdayMon WeekdayKey = "mon"
	WeekdayTue WeekdayKey = "tue"
	WeekdayWed WeekdayKey = "wed"
	WeekdayThu WeekdayKey = "thu"
	WeekdayFri WeekdayKey = "fri"
	WeekdaySat WeekdayKey = "sat"
)

// WeekdayKeys is indexed by time.Weekday (Sunday == 0).
var WeekdayKeys = [7]WeekdayKey{
	WeekdaySun, WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri, WeekdaySat,
}

// WeekdayLabels maps weekday keys to the short labels used in exports.
var WeekdayLabels = map[WeekdayKey]string{
	WeekdaySun: "Dom",
	WeekdayMon: "Seg",
	WeekdayTue: "Ter",
	WeekdayWed: "Qua",
	WeekdayThu: "Qui",
	WeekdayFri: "Sex",
	WeekdaySat: "Sáb",
}

// DaySchedule is the expected workload for one weekday.
// An inactive day always counts as 0 expected minutes.
type DaySchedule struct {
	Active  bool `json:"active"`
	Minutes int  `json:"minutes"`
}

// WeeklySchedule maps each weekday to its expected workload.
type WeeklySchedule map[WeekdayKey]DaySchedule

// DefaultSchedule returns the seed schedule: Mon-Fri 8h, Sat 4h, Sun off.
func DefaultSchedule() WeeklySchedule {
	return WeeklySchedule{
		WeekdaySun: {Active: false, Minutes: 0},
		WeekdayMon: {Active: true, Minutes: 8 * 60},
		WeekdayTue: {Active: true, Minutes: 8 * 60},
		WeekdayWed: {Active: true, Minutes: 8 * 60},
		WeekdayThu: {Active: true, Minutes: 8 * 60},
		WeekdayFri: {Active: true, Minutes: 8 * 60},
		WeekdaySat: {Active: true, Minutes: 4 * 60},
	}
}

// Employee represents a tracked worker. The PIN is a short numeric
// shared secret for the punch flow, stored in plain text on purpose.
type Employee struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role,omitempty"`
	PIN       string         `json:"pin"`
	Active    bool           `json:"active"`
	Schedule  WeeklySchedule `json:"schedule"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DayRecord holds up to two in/out punch pairs for one calendar date.
// Times are HH:MM strings; an empty string means the slot is unfilled.
type DayRecord struct {
	In1  string `json:"in1,omitempty"`
	Out1 string `json:"out1,omitempty"`
	In2  string `json:"in2,omitempty"`
	Out2 string `json:"out2,omitempty"`
	Note string `json:"note,omitempty"`
}

// IsEmpty reports whether no punch slot has been filled.
func (r DayRecord) IsEmpty() bool {
	return r.In1 == "" && r.Out1 == "" && r.In2 == "" && r.Out2 == "" && r.Note == ""
}

// Day-off / compensation categories. Any override zeroes the expected
// minutes for its date unless it carries an explicit minutes value.
const (
	OverrideFolga       = "folga"
	OverrideFerias      = "ferias"
	OverrideAtestado    = "atestado"
	OverrideFalta       = "falta"
	OverrideCompensacao = "compensacao"
)

// ValidOverrideType reports whether t is a known day-off category.
func ValidOverrideType(t string) bool {
	switch t {
	case OverrideFolga, OverrideFerias, OverrideAtestado, OverrideFalta, OverrideCompensacao:
		return true
	}
	return false
}

// DayOverride replaces the schedule-derived expectation for one date.
// Minutes, when set, is the numeric-override variant; otherwise the
// override counts as 0 expected minutes.
type DayOverride struct {
	Type    string `json:"type"`
	Minutes *int   `json:"minutes,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Balance is the derived worked-vs-expected summary over a date range.
type Balance struct {
	ExpectedMinutes int `json:"expected_minutes"`
	WorkedMinutes   int `json:"worked_minutes"`
	SaldoMinutes    int `json:"saldo_minutes"`
}
