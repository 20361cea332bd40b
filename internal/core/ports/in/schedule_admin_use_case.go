package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
)

type ScheduleAdminUseCase interface {
	// UpsertSchedule creates or replaces a weekly rule, rejecting writes
	// that would leave two active rules on one weekday with
	// domain.ErrScheduleConflict.
	UpsertSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error

	// ListSchedules returns the weekly rules of one doctor at one clinic,
	// active or not.
	ListSchedules(ctx context.Context, doctorID, clinicID uuid.UUID) ([]domain.DoctorSchedule, error)

	// AffectedAppointments is the check half of the leave check-then-commit
	// flow: it lists non-cancelled appointments whose slot falls inside the
	// proposed leave window.
	AffectedAppointments(ctx context.Context, leave domain.DoctorLeave) ([]domain.Appointment, error)
	CreateLeave(ctx context.Context, leave *domain.DoctorLeave) error

	RegisterDoctor(ctx context.Context, doctor *domain.Doctor) error
}

type PharmacyUseCase interface {
	// DeductStock removes quantity from a medicine's batches
	// first-expired-first-out. The deduction is all-or-nothing.
	DeductStock(ctx context.Context, clinicID, medicineID uuid.UUID, quantity int) ([]domain.MedicineBatch, error)
}
