package timebank

import (
	"errors"

	"ponto_backend/internal/models"
)

// ErrDayComplete is returned when all four punch slots are filled and
// the overwrite-last policy is disabled.
var ErrDayComplete = errors.New("all punch slots for the day are already filled")

// Punch slot names, filled in this fixed order.
const (
	SlotIn1  = "in1"
	SlotOut1 = "out1"
	SlotIn2  = "in2"
	SlotOut2 = "out2"
)

// NextSlot returns the next unfilled punch slot of a record, or "" when
// the day is complete.
func NextSlot(rec models.DayRecord) string {
	switch {
	case rec.In1 == "":
		return SlotIn1
	case rec.Out1 == "":
		return SlotOut1
	case rec.In2 == "":
		return SlotIn2
	case rec.Out2 == "":
		return SlotOut2
	}
	return ""
}

// ApplyPunch stamps hhmm into the next free slot of rec, advancing the
// per-day state machine EMPTY -> IN1 -> OUT1 -> IN2 -> OUT2 -> COMPLETE.
// Once complete, a further punch either fails with ErrDayComplete or,
// when overwriteLast is set, replaces out2. The two policies mirror the
// two historical app variants; reject is the canonical one.
func ApplyPunch(rec *models.DayRecord, hhmm string, overwriteLast bool) (string, error) {
	slot := NextSlot(*rec)
	if slot == "" {
		if !overwriteLast {
			return "", ErrDayComplete
		}
		slot = SlotOut2
	}
	switch slot {
	case SlotIn1:
		rec.In1 = hhmm
	case SlotOut1:
		rec.Out1 = hhmm
	case SlotIn2:
		rec.In2 = hhmm
	case SlotOut2:
		rec.Out2 = hhmm
	}
	return slot, nil
}
