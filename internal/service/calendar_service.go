package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/speckit/speckit-backend/internal/calendar"
	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/internal/repository"
	"github.com/speckit/speckit-backend/pkg/elasticsearch"
)

// CalendarService month view of the user's saved listings
type CalendarService interface {
	Month(ctx context.Context, userID string, year int, month time.Month) (calendar.Bucket, error)
}

type calendarService struct {
	users    repository.UserRepository
	scraps   repository.ScrapRepository
	index    SearchIndex
	registry *listing.Registry
	windower *calendar.Windower
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(
	users repository.UserRepository,
	scraps repository.ScrapRepository,
	index SearchIndex,
	registry *listing.Registry,
	windower *calendar.Windower,
) CalendarService {
	return &calendarService{users: users, scraps: scraps, index: index, registry: registry, windower: windower}
}

// Month searches every source concurrently, then windows the records in source order
func (s *calendarService) Month(ctx context.Context, userID string, year int, month time.Month) (calendar.Bucket, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.NotFound("id가 일치하는 유저가 없습니다", err)
		}
		return nil, err
	}

	perSource := make([][]calendar.Record, len(domain.Sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range domain.Sources {
		i, source := i, source
		g.Go(func() error {
			recs, err := s.saved(gctx, userID, source)
			if err != nil {
				return err
			}
			perSource[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var records []calendar.Record
	for _, recs := range perSource {
		records = append(records, recs...)
	}
	return s.windower.Window(records, year, month), nil
}

func (s *calendarService) saved(ctx context.Context, userID string, source domain.Source) ([]calendar.Record, error) {
	adapter, err := s.registry.Get(source)
	if err != nil {
		return nil, err
	}
	ids, err := s.scraps.ListingIDs(ctx, userID, source)
	if err != nil {
		return nil, fmt.Errorf("saved ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	res, err := s.index.Search(ctx, source.Index(), elasticsearch.SearchRequest{
		Query:          listing.IDsIn(ids),
		SourceIncludes: adapter.SourceIncludes(listing.ViewCalendar),
		Size:           len(ids),
	})
	if err != nil {
		return nil, fmt.Errorf("calendar %s: %w", source, err)
	}

	recs := make([]calendar.Record, 0, len(res.Results))
	for _, hit := range res.Results {
		recs = append(recs, calendar.Record{ID: hit.ID, Source: source, Fields: hit.Source})
	}
	return recs, nil
}
