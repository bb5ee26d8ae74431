package handler

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	now := time.Date(2025, 7, 15, 14, 30, 45, 0, time.Local)
	start, end := dayBounds(now)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("start of day = %v, want midnight", start)
	}
	if start.Day() != 15 {
		t.Errorf("start day = %d, want 15", start.Day())
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("day length = %v, want 24h", end.Sub(start))
	}
}

func TestScheduleRangeToday(t *testing.T) {
	now := time.Date(2025, 7, 15, 14, 30, 0, 0, time.Local)
	from, to, incompleteOnly := scheduleRange("today", now)

	if !incompleteOnly {
		t.Error("today filter should exclude completed follow-ups")
	}
	if from == nil || to == nil {
		t.Fatal("today filter should bound both ends")
	}
	if !from.Before(now) || !to.After(now) {
		t.Errorf("now %v not inside [%v, %v)", now, *from, *to)
	}
}

func TestScheduleRangePending(t *testing.T) {
	now := time.Now()
	from, to, incompleteOnly := scheduleRange("pending", now)

	if !incompleteOnly {
		t.Error("pending filter should exclude completed follow-ups")
	}
	if from == nil || !from.Equal(now) {
		t.Errorf("from = %v, want %v", from, now)
	}
	if to != nil {
		t.Errorf("to = %v, want open end", *to)
	}
}

func TestScheduleRangeOverdue(t *testing.T) {
	now := time.Now()
	from, to, incompleteOnly := scheduleRange("overdue", now)

	if !incompleteOnly {
		t.Error("overdue filter should exclude completed follow-ups")
	}
	if from != nil {
		t.Errorf("from = %v, want open start", *from)
	}
	if to == nil || !to.Equal(now) {
		t.Errorf("to = %v, want %v", to, now)
	}
}

// A follow-up scheduled exactly at the current instant must match the
// pending window (from is inclusive) and miss the overdue window (to
// is exclusive).
func TestScheduleRangeBoundaryIsPending(t *testing.T) {
	now := time.Now()
	scheduled := now

	pendingFrom, _, _ := scheduleRange("pending", now)
	if scheduled.Before(*pendingFrom) {
		t.Error("follow-up at now excluded from pending window")
	}

	_, overdueTo, _ := scheduleRange("overdue", now)
	if scheduled.Before(*overdueTo) {
		t.Error("follow-up at now included in overdue window")
	}
}

func TestScheduleRangeAll(t *testing.T) {
	for _, filter := range []string{"", "all", "bogus"} {
		from, to, incompleteOnly := scheduleRange(filter, time.Now())
		if from != nil || to != nil || incompleteOnly {
			t.Errorf("filter %q should be unbounded, got from=%v to=%v incompleteOnly=%v",
				filter, from, to, incompleteOnly)
		}
	}
}
