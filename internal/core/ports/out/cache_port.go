package out

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
)

type CachePort interface {
	// Day-slots cache
	GetDaySlots(ctx context.Context, key domain.SlotCacheKey) (*domain.DaySlots, bool)
	StoreDaySlots(ctx context.Context, key domain.SlotCacheKey, daySlots *domain.DaySlots)
	InvalidateDay(ctx context.Context, key domain.SlotCacheKey)
	// InvalidateDoctor drops every cached day for a doctor at a clinic,
	// used when a schedule rule or leave changes.
	InvalidateDoctor(ctx context.Context, doctorID, clinicID uuid.UUID)
	InvalidateAll(ctx context.Context)
	// PurgePast drops cached days strictly before the given moment and
	// returns how many entries were removed.
	PurgePast(ctx context.Context, now time.Time) int
}
