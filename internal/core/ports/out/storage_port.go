package out

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// StoragePort is the persistence boundary of the core. Lookup methods return
// domain.ErrNotFound for missing entities; "no schedule for that weekday" is
// a nil result, not an error.
type StoragePort interface {
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error)
	GetClinic(ctx context.Context, clinicID uuid.UUID) (*domain.Clinic, error)
	SaveDoctor(ctx context.Context, doctor *domain.Doctor) error

	// Schedule rules
	GetScheduleForWeekday(ctx context.Context, doctorID, clinicID uuid.UUID, weekday time.Weekday) (*domain.DoctorSchedule, error)
	ListSchedules(ctx context.Context, doctorID, clinicID uuid.UUID) ([]domain.DoctorSchedule, error)
	SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error

	// Leaves
	ListLeaves(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.DoctorLeave, error)
	SaveLeave(ctx context.Context, leave *domain.DoctorLeave) error

	// Appointments
	ListAppointments(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error)
	// CreateAppointment commits the booking atomically: it re-counts the
	// slot's non-cancelled appointments under a lock on the governing
	// schedule row, rejects with domain.ErrSlotUnavailable at capacity, and
	// assigns the next token number for (clinic, date).
	CreateAppointment(ctx context.Context, appointment *domain.Appointment, scheduleID uuid.UUID, capacity int) error
	UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error

	// Pharmacy inventory
	ListBatches(ctx context.Context, clinicID, medicineID uuid.UUID) ([]domain.MedicineBatch, error)
	UpdateBatchQuantities(ctx context.Context, batches []domain.MedicineBatch) error
}
