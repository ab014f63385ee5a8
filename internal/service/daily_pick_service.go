package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/pkg/cache"
	"github.com/speckit/speckit-backend/pkg/elasticsearch"
	pkglogger "github.com/speckit/speckit-backend/pkg/logger"
)

// PickSources sources that have a daily pick
var PickSources = []domain.Source{
	domain.SourceOutside, domain.SourceCompetition, domain.SourceIntern, domain.SourceQnet,
}

// cacheWriteTimeout 요청이 끝나도 캐시 쓰기는 이 시간까지 진행한다
const cacheWriteTimeout = 3 * time.Second

var dailyPickLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "daily_pick_lookups_total",
		Help: "Daily pick lookups by source and cache result",
	},
	[]string{"source", "result"},
)

// PickCache daily-pick slice of the cache service
type PickCache interface {
	GetDailyPick(ctx context.Context, source string) ([]byte, error)
	SetDailyPick(ctx context.Context, source string, data interface{}) error
	InvalidateDailyPick(ctx context.Context, source string) error
}

// DailyPickService one random listing per source, stable for 12h
type DailyPickService interface {
	Pick(ctx context.Context, source domain.Source) (*domain.Listing, error)
	PickAll(ctx context.Context) (map[domain.Source]*domain.Listing, error)
	Refresh(ctx context.Context, source domain.Source) (*domain.Listing, error)
}

type dailyPickService struct {
	index    SearchIndex
	cache    PickCache
	registry *listing.Registry
}

// NewDailyPickService creates a new DailyPickService
func NewDailyPickService(index SearchIndex, c PickCache, registry *listing.Registry) DailyPickService {
	return &dailyPickService{index: index, cache: c, registry: registry}
}

func hasPick(source domain.Source) bool {
	for _, s := range PickSources {
		if s == source {
			return true
		}
	}
	return false
}

// Pick cache-aside: cached pick if present, otherwise one random document
func (s *dailyPickService) Pick(ctx context.Context, source domain.Source) (*domain.Listing, error) {
	if !hasPick(source) {
		return nil, common.BadRequest(fmt.Sprintf("오늘의 공고가 없는 출처입니다: %s", source), common.ErrNoDailyPick)
	}

	if l, ok := s.cached(ctx, source); ok {
		dailyPickLookups.WithLabelValues(string(source), "hit").Inc()
		return l, nil
	}
	dailyPickLookups.WithLabelValues(string(source), "miss").Inc()

	l, err := s.draw(ctx, source)
	if err != nil {
		return nil, err
	}
	s.store(ctx, source, l)
	return l, nil
}

// Refresh drops the cached pick and draws a new one
func (s *dailyPickService) Refresh(ctx context.Context, source domain.Source) (*domain.Listing, error) {
	if !hasPick(source) {
		return nil, common.BadRequest(fmt.Sprintf("오늘의 공고가 없는 출처입니다: %s", source), common.ErrNoDailyPick)
	}
	if err := s.cache.InvalidateDailyPick(ctx, string(source)); err != nil && !cache.IsMiss(err) {
		pkglogger.GetLogger().Warn().Err(err).Str("source", string(source)).Msg("daily pick invalidate failed")
	}

	l, err := s.draw(ctx, source)
	if err != nil {
		return nil, err
	}
	s.store(ctx, source, l)
	return l, nil
}

// PickAll picks for every source concurrently; any failure fails the whole call
func (s *dailyPickService) PickAll(ctx context.Context) (map[domain.Source]*domain.Listing, error) {
	var mu sync.Mutex
	out := make(map[domain.Source]*domain.Listing, len(PickSources))

	g, gctx := errgroup.WithContext(ctx)
	for _, source := range PickSources {
		source := source
		g.Go(func() error {
			l, err := s.Pick(gctx, source)
			if err != nil {
				return err
			}
			mu.Lock()
			out[source] = l
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// cached reads and decodes the cached pick; any read error is treated as a miss
func (s *dailyPickService) cached(ctx context.Context, source domain.Source) (*domain.Listing, bool) {
	data, err := s.cache.GetDailyPick(ctx, string(source))
	if err != nil {
		if !cache.IsMiss(err) {
			pkglogger.GetLogger().Warn().Err(err).Str("source", string(source)).Msg("daily pick cache read failed")
		}
		return nil, false
	}

	var l domain.Listing
	if err := json.Unmarshal(data, &l); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("source", string(source)).Msg("daily pick cache entry unreadable")
		return nil, false
	}
	l.Source = source
	return &l, true
}

func (s *dailyPickService) draw(ctx context.Context, source domain.Source) (*domain.Listing, error) {
	adapter, err := s.registry.Get(source)
	if err != nil {
		return nil, err
	}

	res, err := s.index.Search(ctx, source.Index(), elasticsearch.SearchRequest{
		Query:          listing.RandomOne(),
		SourceIncludes: adapter.SourceIncludes(listing.ViewPick),
		Size:           1,
	})
	if err != nil {
		return nil, fmt.Errorf("daily pick %s: %w", source, err)
	}
	if len(res.Results) == 0 {
		return nil, common.NotFound("공고가 없습니다", common.ErrListingNotFound)
	}

	hit := res.Results[0]
	l := adapter.Shape(listing.ViewPick, hit.ID, hit.Source)
	return &l, nil
}

// store best effort; survives request cancellation, errors are only logged
func (s *dailyPickService) store(ctx context.Context, source domain.Source, l *domain.Listing) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	if err := s.cache.SetDailyPick(wctx, string(source), l); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("source", string(source)).Msg("daily pick cache write failed")
	}
}
