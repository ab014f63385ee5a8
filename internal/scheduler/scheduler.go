// Package scheduler refreshes the daily picks on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/service"
)

// Picker the part of DailyPickService the warmer drives
type Picker interface {
	Pick(ctx context.Context, source domain.Source) (*domain.Listing, error)
	Refresh(ctx context.Context, source domain.Source) (*domain.Listing, error)
}

// CacheStatus reports whether picks survive between requests
type CacheStatus interface {
	IsAvailable() bool
}

// Scheduler wraps robfig/cron and owns the daily-pick job
type Scheduler struct {
	cron    *cron.Cron
	picker  Picker
	cache   CacheStatus
	sources []domain.Source
	spec    string // e.g. "@every 12h"
	log     zerolog.Logger
}

// New creates a Scheduler firing on spec
func New(picker Picker, cache CacheStatus, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		picker:  picker,
		cache:   cache,
		sources: service.PickSources,
		spec:    spec,
		log:     log,
	}
}

// Start registers the refresh job and warms the cache once without replacing live picks
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("daily pick scheduler started")

	go s.warm(ctx)
	return nil
}

// Stop waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("daily pick scheduler stopped")
}

// warm 캐시가 없으면 미리 뽑아 둘 곳이 없으므로 건너뛴다
func (s *Scheduler) warm(ctx context.Context) {
	if !s.cache.IsAvailable() {
		s.log.Info().Msg("cache unavailable, daily pick warm-up skipped")
		return
	}
	for _, source := range s.sources {
		if _, err := s.picker.Pick(ctx, source); err != nil {
			s.log.Warn().Err(err).Str("source", string(source)).Msg("daily pick warm-up failed")
		}
	}
}

// refresh draws a new pick per source; one failing source does not stop the others
func (s *Scheduler) refresh(ctx context.Context) {
	refreshed := 0
	for _, source := range s.sources {
		if _, err := s.picker.Refresh(ctx, source); err != nil {
			s.log.Warn().Err(err).Str("source", string(source)).Msg("daily pick refresh failed")
			continue
		}
		refreshed++
	}
	s.log.Info().Int("refreshed", refreshed).Int("sources", len(s.sources)).Msg("daily pick refresh complete")
}
