package timebank

import (
	"errors"
	"testing"

	"ponto_backend/internal/models"
)

func TestNextSlotOrder(t *testing.T) {
	var rec models.DayRecord
	want := []string{SlotIn1, SlotOut1, SlotIn2, SlotOut2}
	times := []string{"08:00", "12:00", "13:00", "17:00"}
	for i, w := range want {
		if got := NextSlot(rec); got != w {
			t.Fatalf("step %d: NextSlot = %q, want %q", i, got, w)
		}
		slot, err := ApplyPunch(&rec, times[i], false)
		if err != nil || slot != w {
			t.Fatalf("step %d: ApplyPunch = (%q, %v), want %q", i, slot, err, w)
		}
	}
	if got := NextSlot(rec); got != "" {
		t.Errorf("complete day NextSlot = %q, want empty", got)
	}
}

func TestApplyPunchRejectsFifth(t *testing.T) {
	rec := models.DayRecord{In1: "08:00", Out1: "12:00", In2: "13:00", Out2: "17:00"}
	before := rec
	_, err := ApplyPunch(&rec, "18:00", false)
	if !errors.Is(err, ErrDayComplete) {
		t.Fatalf("err = %v, want ErrDayComplete", err)
	}
	if rec != before {
		t.Errorf("record changed on rejected punch: %+v", rec)
	}
}

func TestApplyPunchOverwritePolicy(t *testing.T) {
	rec := models.DayRecord{In1: "08:00", Out1: "12:00", In2: "13:00", Out2: "17:00"}
	slot, err := ApplyPunch(&rec, "18:00", true)
	if err != nil || slot != SlotOut2 {
		t.Fatalf("ApplyPunch = (%q, %v), want out2", slot, err)
	}
	// Only the last slot may move; the earlier ones are untouched.
	if rec.In1 != "08:00" || rec.Out1 != "12:00" || rec.In2 != "13:00" {
		t.Errorf("earlier slots changed: %+v", rec)
	}
	if rec.Out2 != "18:00" {
		t.Errorf("out2 = %q, want 18:00", rec.Out2)
	}
}

func TestApplyPunchSkipsNothing(t *testing.T) {
	// A record edited by the admin to have only out1 filled still fills
	// in1 first: the slot order is fixed, not gap-seeking.
	rec := models.DayRecord{Out1: "12:00"}
	slot, err := ApplyPunch(&rec, "08:00", false)
	if err != nil || slot != SlotIn1 {
		t.Fatalf("ApplyPunch = (%q, %v), want in1", slot, err)
	}
}
