package slotresolver

import (
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
)

// ProjectAvailability annotates each slot with the count of non-cancelled
// appointments at its exact start time. Full slots stay in the list, marked
// unavailable, so the UI can render them disabled instead of hiding them.
func ProjectAvailability(slots []domain.Slot, appointments []domain.Appointment) []domain.Slot {
	counts := make(map[int]int)
	for _, appointment := range appointments {
		if !appointment.Status.CountsTowardCapacity() {
			continue
		}
		counts[appointment.SlotStartTime.Minutes()]++
	}

	for i := range slots {
		slots[i].BookedCount = counts[slots[i].StartTime.Minutes()]
		slots[i].Available = slots[i].BookedCount < slots[i].Capacity
	}

	return slots
}
