package slotresolver

import (
	"testing"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

func appointmentAt(hour, minute int, status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:            uuid.New(),
		SlotStartTime: json_types.NewTimeOfDay(hour, minute),
		Status:        status,
	}
}

func TestProjectAvailabilityCounts(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{window(9*60, 11*60, 30, 2)})

	projected := ProjectAvailability(slots, []domain.Appointment{
		appointmentAt(9, 0, domain.AppointmentStatusBooked),
		appointmentAt(9, 30, domain.AppointmentStatusBooked),
		appointmentAt(9, 30, domain.AppointmentStatusCheckedIn),
	})

	if projected[0].BookedCount != 1 || !projected[0].Available {
		t.Fatalf("09:00 should have 1 of 2 booked, got %+v", projected[0])
	}
	if projected[1].BookedCount != 2 || projected[1].Available {
		t.Fatalf("09:30 should be full, got %+v", projected[1])
	}
	if projected[2].BookedCount != 0 || !projected[2].Available {
		t.Fatalf("10:00 should be empty, got %+v", projected[2])
	}
}

func TestProjectAvailabilityIgnoresCancelled(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{window(9*60, 10*60, 30, 1)})

	projected := ProjectAvailability(slots, []domain.Appointment{
		appointmentAt(9, 0, domain.AppointmentStatusCancelled),
		appointmentAt(9, 30, domain.AppointmentStatusCompleted),
	})

	if projected[0].BookedCount != 0 || !projected[0].Available {
		t.Fatalf("cancelled appointment must not occupy the slot: %+v", projected[0])
	}
	// Completed patients still occupied the slot.
	if projected[1].BookedCount != 1 || projected[1].Available {
		t.Fatalf("completed appointment still counts: %+v", projected[1])
	}
}

func TestProjectAvailabilityIgnoresOffGridAppointments(t *testing.T) {
	slots := GenerateSlots([]domain.WorkingWindow{window(9*60, 10*60, 30, 1)})

	projected := ProjectAvailability(slots, []domain.Appointment{
		appointmentAt(9, 15, domain.AppointmentStatusBooked),
	})

	for _, slot := range projected {
		if slot.BookedCount != 0 {
			t.Fatalf("off-grid appointment counted against slot %s", slot.StartTime)
		}
	}
}
