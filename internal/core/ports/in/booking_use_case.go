package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

type BookingRequest struct {
	DoctorID      uuid.UUID
	ClinicID      uuid.UUID
	Date          json_types.Date
	SlotStartTime json_types.TimeOfDay
	PatientName   string
	PatientPhone  string
}

type BookingUseCase interface {
	// BookAppointment validates the slot against the governing schedule and
	// commits atomically; loses the capacity race with
	// domain.ErrSlotUnavailable.
	BookAppointment(ctx context.Context, req BookingRequest) (*domain.Appointment, error)
	CheckIn(ctx context.Context, appointmentID uuid.UUID) error
	CompleteAppointment(ctx context.Context, appointmentID uuid.UUID) error
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	QueueSnapshot(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) (*domain.QueueSnapshot, error)
}
