package domain

import (
	"errors"
	"testing"

	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

func TestLeaveValidate(t *testing.T) {
	date := json_types.NewDate(2025, 3, 3)
	start := json_types.NewTimeOfDay(12, 0)
	end := json_types.NewTimeOfDay(13, 0)

	fullDay := DoctorLeave{LeaveDate: date}
	if err := fullDay.Validate(); err != nil {
		t.Fatalf("full-day leave rejected: %v", err)
	}

	partial := DoctorLeave{LeaveDate: date, StartTime: &start, EndTime: &end}
	if err := partial.Validate(); err != nil {
		t.Fatalf("partial leave rejected: %v", err)
	}

	oneSided := DoctorLeave{LeaveDate: date, StartTime: &start}
	if err := oneSided.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for one-sided bounds, got %v", err)
	}

	inverted := DoctorLeave{LeaveDate: date, StartTime: &end, EndTime: &start}
	if err := inverted.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted bounds, got %v", err)
	}

	noDate := DoctorLeave{}
	if err := noDate.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing date, got %v", err)
	}
}

func TestLeaveBlockedRange(t *testing.T) {
	date := json_types.NewDate(2025, 3, 3)

	fullDay := DoctorLeave{LeaveDate: date}
	if start, end := fullDay.BlockedRange(); start != 0 || end != 24*60 {
		t.Fatalf("full-day leave should block the whole day, got [%d,%d)", start, end)
	}

	startTime := json_types.NewTimeOfDay(12, 0)
	endTime := json_types.NewTimeOfDay(13, 0)
	partial := DoctorLeave{LeaveDate: date, StartTime: &startTime, EndTime: &endTime}
	if start, end := partial.BlockedRange(); start != 12*60 || end != 13*60 {
		t.Fatalf("unexpected blocked range [%d,%d)", start, end)
	}
}
