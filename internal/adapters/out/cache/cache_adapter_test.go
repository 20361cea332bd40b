package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/testutil"
)

func newAdapter(t *testing.T) *CacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Size = 16

	adapter, err := NewCacheAdapter(cfg, testutil.NopLogger{})
	if err != nil {
		t.Fatalf("NewCacheAdapter: %v", err)
	}
	return adapter
}

func key(doctorID, clinicID uuid.UUID, date string) domain.SlotCacheKey {
	return domain.SlotCacheKey{DoctorID: doctorID, ClinicID: clinicID, Date: date}
}

func TestCacheAdapterDisabled(t *testing.T) {
	cfg := &config.Config{}

	adapter, err := NewCacheAdapter(cfg, testutil.NopLogger{})
	if err != nil {
		t.Fatalf("NewCacheAdapter: %v", err)
	}
	if adapter != nil {
		t.Fatalf("expected nil adapter when cache is disabled")
	}
}

func TestCacheAdapterStoreAndGet(t *testing.T) {
	adapter := newAdapter(t)
	ctx := context.Background()
	k := key(uuid.New(), uuid.New(), "2025-03-03")

	if _, exists := adapter.GetDaySlots(ctx, k); exists {
		t.Fatalf("unexpected hit on empty cache")
	}

	adapter.StoreDaySlots(ctx, k, &domain.DaySlots{HasSchedule: true})

	entry, exists := adapter.GetDaySlots(ctx, k)
	if !exists || !entry.HasSchedule {
		t.Fatalf("expected cached entry back, got %+v exists=%v", entry, exists)
	}
}

func TestCacheAdapterInvalidateDay(t *testing.T) {
	adapter := newAdapter(t)
	ctx := context.Background()
	k := key(uuid.New(), uuid.New(), "2025-03-03")

	adapter.StoreDaySlots(ctx, k, &domain.DaySlots{})
	adapter.InvalidateDay(ctx, k)

	if _, exists := adapter.GetDaySlots(ctx, k); exists {
		t.Fatalf("entry survived invalidation")
	}
}

func TestCacheAdapterInvalidateDoctor(t *testing.T) {
	adapter := newAdapter(t)
	ctx := context.Background()
	doctorID, clinicID := uuid.New(), uuid.New()
	otherDoctor := uuid.New()

	adapter.StoreDaySlots(ctx, key(doctorID, clinicID, "2025-03-03"), &domain.DaySlots{})
	adapter.StoreDaySlots(ctx, key(doctorID, clinicID, "2025-03-04"), &domain.DaySlots{})
	adapter.StoreDaySlots(ctx, key(otherDoctor, clinicID, "2025-03-03"), &domain.DaySlots{})

	adapter.InvalidateDoctor(ctx, doctorID, clinicID)

	if _, exists := adapter.GetDaySlots(ctx, key(doctorID, clinicID, "2025-03-03")); exists {
		t.Fatalf("doctor's cached day survived invalidation")
	}
	if _, exists := adapter.GetDaySlots(ctx, key(doctorID, clinicID, "2025-03-04")); exists {
		t.Fatalf("doctor's other cached day survived invalidation")
	}
	if _, exists := adapter.GetDaySlots(ctx, key(otherDoctor, clinicID, "2025-03-03")); !exists {
		t.Fatalf("another doctor's entry was dropped")
	}
}

func TestCacheAdapterPurgePast(t *testing.T) {
	adapter := newAdapter(t)
	ctx := context.Background()
	doctorID, clinicID := uuid.New(), uuid.New()

	adapter.StoreDaySlots(ctx, key(doctorID, clinicID, "2025-03-02"), &domain.DaySlots{})
	adapter.StoreDaySlots(ctx, key(doctorID, clinicID, "2025-03-03"), &domain.DaySlots{})
	adapter.StoreDaySlots(ctx, key(doctorID, clinicID, "2025-03-04"), &domain.DaySlots{})

	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	if removed := adapter.PurgePast(ctx, now); removed != 1 {
		t.Fatalf("expected 1 entry removed, got %d", removed)
	}

	if _, exists := adapter.GetDaySlots(ctx, key(doctorID, clinicID, "2025-03-02")); exists {
		t.Fatalf("past entry survived the sweep")
	}
	if _, exists := adapter.GetDaySlots(ctx, key(doctorID, clinicID, "2025-03-03")); !exists {
		t.Fatalf("today's entry was swept")
	}
}
