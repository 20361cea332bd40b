package slotresolver

import (
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// GenerateSlots partitions the windows into fixed-size slots. A trailing
// range shorter than the slot duration never yields a slot. The result is
// strictly chronological: the UI addresses slots by position.
func GenerateSlots(windows []domain.WorkingWindow) []domain.Slot {
	slots := make([]domain.Slot, 0)

	for _, window := range windows {
		for start := window.StartMinute; start+window.SlotDurationMinutes <= window.EndMinute; start += window.SlotDurationMinutes {
			slots = append(slots, domain.Slot{
				StartTime: json_types.FromMinutes(start),
				EndTime:   json_types.FromMinutes(start + window.SlotDurationMinutes),
				Capacity:  window.MaxPatientsPerSlot,
				Available: true,
			})
		}
	}

	return SlotSlice(slots).quickSort()
}
