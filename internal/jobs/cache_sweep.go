package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/swasthya-health/appointment-slots-service/internal/config"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/out"
	"github.com/swasthya-health/appointment-slots-service/internal/utils"
)

// CacheSweeper drops cached slot days once they are in the past. Bookings
// invalidate their own day; this job only stops yesterday's entries from
// occupying LRU capacity.
type CacheSweeper struct {
	cachePort out.CachePort
	cron      *cron.Cron
	spec      string
	location  *time.Location
	logger    out.LoggerPort
}

func NewCacheSweeper(cfg *config.Config, cachePort out.CachePort, logger out.LoggerPort) *CacheSweeper {
	location := cfg.Location()

	return &CacheSweeper{
		cachePort: cachePort,
		cron:      cron.New(cron.WithLocation(location)),
		spec:      cfg.Cache.SweepSpec,
		location:  location,
		logger:    logger.WithModule("CacheSweeper"),
	}
}

func (s *CacheSweeper) Start(ctx context.Context) error {
	if s.cachePort == nil {
		s.logger.Info("cache_sweep.disabled", out.LogFields{})
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		// The purge boundary is the start of the current clinic day.
		removed := s.cachePort.PurgePast(ctx, utils.StartCurrentDay(time.Now().In(s.location)))
		s.logger.Info("cache_sweep.done", out.LogFields{
			"removed": removed,
		})
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cache_sweep.scheduled", out.LogFields{
		"spec": s.spec,
	})
	return nil
}

func (s *CacheSweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
