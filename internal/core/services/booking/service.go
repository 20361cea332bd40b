package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/in"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/slotresolver"
)

// Service owns the booking commit path and the appointment status
// transitions behind the queue display. The availability read path is
// advisory; capacity is re-validated here, atomically, at write time.
type Service struct {
	storagePort  out.StoragePort
	slotResolver in.SlotResolverUseCase
	logger       out.LoggerPort
}

func NewService(storagePort out.StoragePort, slotResolver in.SlotResolverUseCase, logger out.LoggerPort) *Service {
	return &Service{
		storagePort:  storagePort,
		slotResolver: slotResolver,
		logger:       logger.WithModule("BookingService"),
	}
}

func (s *Service) BookAppointment(ctx context.Context, req in.BookingRequest) (*domain.Appointment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.storagePort.GetDoctor(ctx, req.DoctorID); err != nil {
		return nil, fmt.Errorf("booking.doctor: %w", err)
	}
	if _, err := s.storagePort.GetClinic(ctx, req.ClinicID); err != nil {
		return nil, fmt.Errorf("booking.clinic: %w", err)
	}

	schedule, err := s.storagePort.GetScheduleForWeekday(ctx, req.DoctorID, req.ClinicID, req.Date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("booking.schedule: %w", err)
	}
	if schedule == nil || !schedule.Active {
		return nil, fmt.Errorf("booking.schedule: no schedule for %s: %w", req.Date, domain.ErrSlotUnavailable)
	}

	leaves, err := s.storagePort.ListLeaves(ctx, req.DoctorID, req.ClinicID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("booking.leaves: %w", err)
	}

	windows := slotresolver.NarrowWindows(schedule.Window(), leaves)
	if !slotAligned(windows, req.SlotStartTime.Minutes()) {
		return nil, fmt.Errorf("booking.slot %s on %s: %w", req.SlotStartTime, req.Date, domain.ErrSlotUnavailable)
	}

	appointment := &domain.Appointment{
		ID:            uuid.New(),
		DoctorID:      req.DoctorID,
		ClinicID:      req.ClinicID,
		Date:          req.Date,
		SlotStartTime: req.SlotStartTime,
		PatientName:   strings.TrimSpace(req.PatientName),
		PatientPhone:  strings.TrimSpace(req.PatientPhone),
		Status:        domain.AppointmentStatusBooked,
	}

	// The storage layer re-counts under a row lock and assigns the token;
	// the loser of a concurrent race gets ErrSlotUnavailable, never an
	// overbooked slot.
	if err := s.storagePort.CreateAppointment(ctx, appointment, schedule.ID, schedule.MaxPatientsPerSlot); err != nil {
		s.logger.Warn("booking.commit.failed", out.LogFields{
			"doctorId": req.DoctorID,
			"date":     req.Date.String(),
			"slot":     req.SlotStartTime.String(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("booking.commit: %w", err)
	}

	s.slotResolver.InvalidateDaySlots(ctx, req.DoctorID, req.ClinicID, req.Date)

	s.logger.Info("booking.committed", out.LogFields{
		"appointmentId": appointment.ID,
		"doctorId":      req.DoctorID,
		"date":          req.Date.String(),
		"slot":          req.SlotStartTime.String(),
		"token":         appointment.TokenNumber,
	})

	return appointment, nil
}

func (s *Service) CheckIn(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := s.storagePort.GetAppointment(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("checkin: %w", err)
	}
	if appointment.Status != domain.AppointmentStatusBooked {
		return fmt.Errorf("checkin: appointment is %s: %w", appointment.Status, domain.ErrValidation)
	}

	return s.storagePort.UpdateAppointmentStatus(ctx, appointmentID, domain.AppointmentStatusCheckedIn)
}

// CompleteAppointment marks a consultation as done and removes the patient
// from the queue. Only a checked-in patient can be completed.
func (s *Service) CompleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := s.storagePort.GetAppointment(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	if appointment.Status != domain.AppointmentStatusCheckedIn {
		return fmt.Errorf("complete: appointment is %s: %w", appointment.Status, domain.ErrValidation)
	}

	return s.storagePort.UpdateAppointmentStatus(ctx, appointmentID, domain.AppointmentStatusCompleted)
}

func (s *Service) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := s.storagePort.GetAppointment(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	if appointment.Status == domain.AppointmentStatusCompleted || appointment.Status == domain.AppointmentStatusCancelled {
		return fmt.Errorf("cancel: appointment is %s: %w", appointment.Status, domain.ErrValidation)
	}

	if err := s.storagePort.UpdateAppointmentStatus(ctx, appointmentID, domain.AppointmentStatusCancelled); err != nil {
		return err
	}

	// A cancelled appointment frees its place in the slot.
	s.slotResolver.InvalidateDaySlots(ctx, appointment.DoctorID, appointment.ClinicID, appointment.Date)

	return nil
}

func validateRequest(req in.BookingRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("booking: missing date: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("booking: missing patient name: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(req.PatientPhone) == "" {
		return fmt.Errorf("booking: missing patient phone: %w", domain.ErrValidation)
	}
	return nil
}

// slotAligned reports whether the requested start time is a slot boundary of
// one of the working windows.
func slotAligned(windows []domain.WorkingWindow, startMinute int) bool {
	for _, w := range windows {
		if startMinute < w.StartMinute || startMinute+w.SlotDurationMinutes > w.EndMinute {
			continue
		}
		if (startMinute-w.StartMinute)%w.SlotDurationMinutes == 0 {
			return true
		}
	}
	return false
}
