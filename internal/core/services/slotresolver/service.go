package slotresolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

// Service resolves the bookable slots for one doctor and date: schedule
// lookup, leave narrowing, slot generation, availability projection. The
// pipeline is a stateless read; the cache in front of it is advisory.
type Service struct {
	storagePort out.StoragePort
	cachePort   out.CachePort
	logger      out.LoggerPort
}

func NewService(storagePort out.StoragePort, cachePort out.CachePort, logger out.LoggerPort) *Service {
	return &Service{
		storagePort: storagePort,
		cachePort:   cachePort,
		logger:      logger.WithModule("SlotResolverService"),
	}
}

func (s *Service) ResolveDaySlots(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) (*domain.DaySlots, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("slots.resolve: %w", domain.ErrValidation)
	}

	if _, err := s.storagePort.GetDoctor(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("slots.resolve.doctor: %w", err)
	}
	if _, err := s.storagePort.GetClinic(ctx, clinicID); err != nil {
		return nil, fmt.Errorf("slots.resolve.clinic: %w", err)
	}

	cacheKey := domain.NewSlotCacheKey(doctorID, clinicID, date)
	if s.cachePort != nil {
		if daySlots, exists := s.cachePort.GetDaySlots(ctx, cacheKey); exists {
			s.logger.Debug("slots.resolve.cache.hit", out.LogFields{
				"doctorId":   doctorID,
				"date":       date.String(),
				"slotsCount": len(daySlots.Slots),
			})
			return daySlots, nil
		}
		s.logger.Debug("slots.resolve.cache.miss", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
		})
	}

	windows, err := s.scheduleWindows(ctx, doctorID, clinicID, date)
	if err != nil {
		s.logger.Error("slots.resolve.schedule.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	daySlots := &domain.DaySlots{
		DoctorID: doctorID,
		ClinicID: clinicID,
		Date:     date,
	}

	if len(windows) == 0 {
		// Expected empty result: no rule for that weekday, or leave.
		return daySlots, nil
	}
	daySlots.HasSchedule = true

	slots := GenerateSlots(windows)

	appointments, err := s.storagePort.ListAppointments(ctx, doctorID, clinicID, date)
	if err != nil {
		s.logger.Error("slots.resolve.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.resolve.appointments: %w", err)
	}

	daySlots.Slots = ProjectAvailability(slots, appointments)

	if s.cachePort != nil {
		s.cachePort.StoreDaySlots(ctx, cacheKey, daySlots)
	}

	return daySlots, nil
}
