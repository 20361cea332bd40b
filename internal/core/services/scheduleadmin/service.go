package scheduleadmin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/in"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

// Service handles the staff-facing writes: weekly rules, leaves and doctor
// registration. Invariants are enforced here, at write time, so the read
// path can trust the rows it loads.
type Service struct {
	storagePort  out.StoragePort
	slotResolver in.SlotResolverUseCase
	logger       out.LoggerPort
}

func NewService(storagePort out.StoragePort, slotResolver in.SlotResolverUseCase, logger out.LoggerPort) *Service {
	return &Service{
		storagePort:  storagePort,
		slotResolver: slotResolver,
		logger:       logger.WithModule("ScheduleAdminService"),
	}
}

func (s *Service) UpsertSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error {
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("schedule.upsert: %w", err)
	}

	if _, err := s.storagePort.GetDoctor(ctx, schedule.DoctorID); err != nil {
		return fmt.Errorf("schedule.upsert.doctor: %w", err)
	}
	if _, err := s.storagePort.GetClinic(ctx, schedule.ClinicID); err != nil {
		return fmt.Errorf("schedule.upsert.clinic: %w", err)
	}

	// Two active rules for one weekday is a configuration error, rejected
	// here rather than tie-broken at read time.
	existing, err := s.storagePort.GetScheduleForWeekday(ctx, schedule.DoctorID, schedule.ClinicID, schedule.Weekday)
	if err != nil {
		return fmt.Errorf("schedule.upsert: %w", err)
	}
	if existing != nil && existing.ID != schedule.ID && schedule.Active {
		return fmt.Errorf("schedule.upsert: active rule %s already covers weekday %d: %w",
			existing.ID, schedule.Weekday, domain.ErrScheduleConflict)
	}

	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}

	if err := s.storagePort.SaveSchedule(ctx, schedule); err != nil {
		return fmt.Errorf("schedule.upsert: %w", err)
	}

	s.slotResolver.InvalidateDoctorSlots(ctx, schedule.DoctorID, schedule.ClinicID)

	s.logger.Info("schedule.upserted", out.LogFields{
		"scheduleId": schedule.ID,
		"doctorId":   schedule.DoctorID,
		"weekday":    int(schedule.Weekday),
	})

	return nil
}

func (s *Service) ListSchedules(ctx context.Context, doctorID, clinicID uuid.UUID) ([]domain.DoctorSchedule, error) {
	if _, err := s.storagePort.GetDoctor(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("schedule.list.doctor: %w", err)
	}

	schedules, err := s.storagePort.ListSchedules(ctx, doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("schedule.list: %w", err)
	}
	return schedules, nil
}

// AffectedAppointments lists the non-cancelled appointments whose slot falls
// inside the proposed leave window. The leave-management UI surfaces these
// for confirmation before the leave is committed.
func (s *Service) AffectedAppointments(ctx context.Context, leave domain.DoctorLeave) ([]domain.Appointment, error) {
	if err := leave.Validate(); err != nil {
		return nil, fmt.Errorf("leave.affected: %w", err)
	}

	appointments, err := s.storagePort.ListAppointments(ctx, leave.DoctorID, leave.ClinicID, leave.LeaveDate)
	if err != nil {
		return nil, fmt.Errorf("leave.affected: %w", err)
	}

	blockStart, blockEnd := leave.BlockedRange()

	affected := make([]domain.Appointment, 0)
	for _, appointment := range appointments {
		if !appointment.Status.CountsTowardCapacity() {
			continue
		}
		minute := appointment.SlotStartTime.Minutes()
		if minute >= blockStart && minute < blockEnd {
			affected = append(affected, appointment)
		}
	}

	return affected, nil
}

func (s *Service) CreateLeave(ctx context.Context, leave *domain.DoctorLeave) error {
	if err := leave.Validate(); err != nil {
		return fmt.Errorf("leave.create: %w", err)
	}

	if _, err := s.storagePort.GetDoctor(ctx, leave.DoctorID); err != nil {
		return fmt.Errorf("leave.create.doctor: %w", err)
	}

	if leave.ID == uuid.Nil {
		leave.ID = uuid.New()
	}

	if err := s.storagePort.SaveLeave(ctx, leave); err != nil {
		return fmt.Errorf("leave.create: %w", err)
	}

	s.slotResolver.InvalidateDaySlots(ctx, leave.DoctorID, leave.ClinicID, leave.LeaveDate)

	s.logger.Info("leave.created", out.LogFields{
		"leaveId":  leave.ID,
		"doctorId": leave.DoctorID,
		"date":     leave.LeaveDate.String(),
		"fullDay":  leave.FullDay(),
	})

	return nil
}

// RegisterDoctor stores the doctor with the canonical plain name; display
// prefixes are derived at read time and never stored.
func (s *Service) RegisterDoctor(ctx context.Context, doctor *domain.Doctor) error {
	doctor.Name = domain.NormalizeDoctorName(doctor.Name)
	if doctor.Name == "" {
		return fmt.Errorf("doctor.register: empty name: %w", domain.ErrValidation)
	}
	switch doctor.Type {
	case domain.ProfessionalTypeDoctor, domain.ProfessionalTypeDentist, domain.ProfessionalTypePharmacist:
	default:
		return fmt.Errorf("doctor.register: unknown type %q: %w", doctor.Type, domain.ErrValidation)
	}

	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}

	return s.storagePort.SaveDoctor(ctx, doctor)
}
