// Package timebank holds the pure banco-de-horas arithmetic: parsing and
// formatting HH:MM times, summing worked intervals, deriving expected
// minutes from schedules and overrides, and folding both over date ranges.
// Nothing in this package performs I/O or mutates shared state.
package timebank

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ponto_backend/internal/models"
)

// DateLayout is the calendar-day format used throughout the store.
// Fixed-width zero-padded fields make lexicographic comparison valid.
const DateLayout = "2006-01-02"

// ParseTimeOfDay converts an HH:MM string into minutes since midnight.
// The hour may be one or two digits (0-23); the minute field must be
// exactly two digits (00-59). Both fields must be plain digits, so
// signed forms like "+8:00" are rejected. ok is false for anything else.
func ParseTimeOfDay(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hh, mm := parts[0], parts[1]
	if len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, false
	}
	if !allDigits(hh) || !allDigits(mm) {
		return 0, false
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatMinutes renders a minute count as [-]H:MM, e.g. -90 -> "-1:30"
// and 0 -> "0:00". The hour part is unpadded, the minute part always
// two digits.
func FormatMinutes(total int) string {
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}

// IntervalMinutes returns out-in in minutes. An interval only counts
// when both endpoints parse and the out time is not before the in time;
// otherwise it contributes 0. The result is never negative.
func IntervalMinutes(in, out string) int {
	inMin, okIn := ParseTimeOfDay(in)
	outMin, okOut := ParseTimeOfDay(out)
	if !okIn || !okOut || outMin < inMin {
		return 0
	}
	return outMin - inMin
}

// WorkedMinutes sums both punch intervals of a day record. A day with
// only one complete interval contributes just that interval.
func WorkedMinutes(rec models.DayRecord) int {
	return IntervalMinutes(rec.In1, rec.Out1) + IntervalMinutes(rec.In2, rec.Out2)
}

// WeekdayOf maps a YYYY-MM-DD date to its weekday key, using the local
// wall-clock calendar.
func WeekdayOf(date string) (models.WeekdayKey, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return models.WeekdayKeys[int(t.Weekday())], nil
}

// ScheduledMinutes returns the schedule-derived expectation for one
// weekday: 0 when the day is inactive or unconfigured.
func ScheduledMinutes(schedule models.WeeklySchedule, key models.WeekdayKey) int {
	sch, ok := schedule[key]
	if !ok || !sch.Active {
		return 0
	}
	return sch.Minutes
}

// ExpectedMinutes computes the expectation for (employee, date). An
// override always wins over the weekly schedule: its numeric value when
// set, 0 for plain category overrides.
func ExpectedMinutes(emp *models.Employee, date string, override *models.DayOverride) (int, error) {
	if override != nil {
		if override.Minutes != nil {
			return *override.Minutes, nil
		}
		return 0, nil
	}
	key, err := WeekdayOf(date)
	if err != nil {
		return 0, err
	}
	return ScheduledMinutes(emp.Schedule, key), nil
}

// EnumerateDays lists every date from from to to inclusive, ascending.
// The range is empty when to < from.
func EnumerateDays(from, to string) ([]string, error) {
	start, err := time.ParseInLocation(DateLayout, from, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %w", from, err)
	}
	end, err := time.ParseInLocation(DateLayout, to, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %w", to, err)
	}
	days := []string{}
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		days = append(days, cur.Format(DateLayout))
	}
	return days, nil
}

// RangeBalance folds expected and worked minutes over an inclusive date
// range. Days without a record contribute 0 worked minutes; working on
// a 0-expected day yields a positive saldo automatically.
func RangeBalance(emp *models.Employee, records map[string]models.DayRecord, overrides map[string]models.DayOverride, from, to string) (models.Balance, error) {
	days, err := EnumerateDays(from, to)
	if err != nil {
		return models.Balance{}, err
	}
	var bal models.Balance
	for _, day := range days {
		var override *models.DayOverride
		if ov, ok := overrides[day]; ok {
			override = &ov
		}
		expected, err := ExpectedMinutes(emp, day, override)
		if err != nil {
			return models.Balance{}, err
		}
		bal.ExpectedMinutes += expected
		if rec, ok := records[day]; ok {
			bal.WorkedMinutes += WorkedMinutes(rec)
		}
	}
	bal.SaldoMinutes = bal.WorkedMinutes - bal.ExpectedMinutes
	return bal, nil
}
