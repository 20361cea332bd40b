package slotresolver

import (
	"context"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

// Cache hooks, driven by the event listener.

func (s *Service) InvalidateDaySlots(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateDay(ctx, domain.NewSlotCacheKey(doctorID, clinicID, date))
	s.logger.Debug("slots.cache.day_invalidated", out.LogFields{
		"doctorId": doctorID,
		"clinicId": clinicID,
		"date":     date.String(),
	})
}

func (s *Service) InvalidateDoctorSlots(ctx context.Context, doctorID, clinicID uuid.UUID) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateDoctor(ctx, doctorID, clinicID)
	s.logger.Debug("slots.cache.doctor_invalidated", out.LogFields{
		"doctorId": doctorID,
		"clinicId": clinicID,
	})
}

func (s *Service) InvalidateAllSlots(ctx context.Context) {
	if s.cachePort == nil {
		return
	}

	s.cachePort.InvalidateAll(ctx)
	s.logger.Info("slots.cache.purged", out.LogFields{})
}
