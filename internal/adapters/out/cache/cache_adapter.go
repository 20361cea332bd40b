package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
)

// CacheAdapter keeps resolved day-slot projections in an LRU keyed by
// (doctor, clinic, date). Entries are dropped on booking/schedule/leave
// events and swept once they are in the past.
type CacheAdapter struct {
	cache  *lru.Cache[domain.SlotCacheKey, *domain.DaySlots]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[domain.SlotCacheKey, *domain.DaySlots](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  lruCache,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetDaySlots(ctx context.Context, key domain.SlotCacheKey) (*domain.DaySlots, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(key)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"doctorId": key.DoctorID,
			"date":     key.Date,
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"doctorId":   key.DoctorID,
		"date":       key.Date,
		"slotsCount": len(entry.Slots),
	})
	return entry, true
}

func (c *CacheAdapter) StoreDaySlots(ctx context.Context, key domain.SlotCacheKey, daySlots *domain.DaySlots) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.store", out.LogFields{
		"doctorId":   key.DoctorID,
		"date":       key.Date,
		"slotsCount": len(daySlots.Slots),
	})

	c.cache.Add(key, daySlots)
}

func (c *CacheAdapter) InvalidateDay(ctx context.Context, key domain.SlotCacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(key)
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID, clinicID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.cache.Keys() {
		if key.DoctorID == doctorID && key.ClinicID == clinicID {
			c.cache.Remove(key)
		}
	}
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

func (c *CacheAdapter) PurgePast(ctx context.Context, now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := json_types.DateOf(now).String()
	removed := 0
	for _, key := range c.cache.Keys() {
		if key.Date < today {
			c.cache.Remove(key)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Info("cache.sweep", out.LogFields{
			"removed": removed,
		})
	}

	return removed
}
