package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

type SlotResolverUseCase interface {
	// ResolveDaySlots runs the full pipeline for one doctor and date:
	// schedule lookup, leave narrowing, slot generation, availability
	// projection.
	ResolveDaySlots(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) (*domain.DaySlots, error)

	// Cache hooks driven by the event listener.
	InvalidateDaySlots(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date)
	InvalidateDoctorSlots(ctx context.Context, doctorID, clinicID uuid.UUID)
	InvalidateAllSlots(ctx context.Context)
}
