package slotresolver

import (
	"reflect"
	"testing"

	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
)

func window(startMinute, endMinute, duration, capacity int) domain.WorkingWindow {
	return domain.WorkingWindow{
		StartMinute:         startMinute,
		EndMinute:           endMinute,
		SlotDurationMinutes: duration,
		MaxPatientsPerSlot:  capacity,
	}
}

func TestGenerateSlotsFullDay(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{window(9*60, 17*60, 30, 1)})

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0].StartTime.String() != "09:00" || slots[0].EndTime.String() != "09:30" {
		t.Fatalf("unexpected first slot: %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[15].StartTime.String() != "16:30" || slots[15].EndTime.String() != "17:00" {
		t.Fatalf("unexpected last slot: %s-%s", slots[15].StartTime, slots[15].EndTime)
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime.Minutes() != slots[i-1].EndTime.Minutes() {
			t.Fatalf("slots %d and %d overlap or leave a gap", i-1, i)
		}
	}
	for _, slot := range slots {
		if slot.EndTime.Minutes() > 17*60 {
			t.Fatalf("slot %s-%s extends past 17:00", slot.StartTime, slot.EndTime)
		}
		if slot.Capacity != 1 {
			t.Fatalf("expected capacity 1, got %d", slot.Capacity)
		}
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{window(9*60, 9*60+50, 30, 1)})

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].StartTime.String() != "09:00" || slots[0].EndTime.String() != "09:30" {
		t.Fatalf("unexpected slot: %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
}

func TestGenerateSlotsExactFit(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{window(9*60, 10*60, 30, 1)})

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	windows := []domain.WorkingWindow{
		window(9*60, 12*60, 30, 2),
		window(13*60, 17*60, 30, 2),
	}

	first := GenerateSlots(windows)
	second := GenerateSlots(windows)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical windows produced different slot lists")
	}
}

func TestGenerateSlotsSplitWindows(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{
		window(9*60, 12*60, 30, 1),
		window(13*60, 17*60, 30, 1),
	})

	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		minute := slot.StartTime.Minutes()
		if minute >= 12*60 && minute < 13*60 {
			t.Fatalf("slot starts inside the excluded range: %s", slot.StartTime)
		}
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime.Minutes() < slots[i-1].StartTime.Minutes() {
			t.Fatalf("slots out of chronological order at index %d", i)
		}
	}
}

func TestGenerateSlotsEmptyWindows(t *testing.T) {
	slots := GenerateSlots(nil)
	if len(slots) != 0 {
		t.Fatalf("expected 0 slots, got %d", len(slots))
	}
}
