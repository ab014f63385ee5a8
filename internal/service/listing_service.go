package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/internal/repository"
	"github.com/speckit/speckit-backend/pkg/elasticsearch"
)

// 페이지 크기
const (
	ListPageSize  = 12
	SavedPageSize = 4
	BestSize      = 12
)

// ListingService listing search, shaping and personalization
type ListingService interface {
	List(ctx context.Context, source domain.Source, filters domain.FilterSet, page int) ([]domain.Listing, error)
	Count(ctx context.Context, source domain.Source, filters domain.FilterSet) (int64, error)
	Annotate(ctx context.Context, listings []domain.Listing, userID string, source domain.Source) ([]domain.Listing, error)

	ListSaved(ctx context.Context, userID string, source domain.Source, page int) ([]domain.Listing, error)
	CountSaved(ctx context.Context, userID string, source domain.Source) (int64, error)
	MyKeywords(ctx context.Context, userID string, source domain.Source) ([]string, error)

	Detail(ctx context.Context, source domain.Source, id, userID string) (*domain.Listing, error)
	Best(ctx context.Context, source domain.Source, userID string) ([]domain.Listing, error)
	Ingest(ctx context.Context, source domain.Source, doc map[string]interface{}) (string, error)
}

type listingService struct {
	index    SearchIndex
	users    repository.UserRepository
	scraps   repository.ScrapRepository
	keywords repository.KeywordRepository
	registry *listing.Registry
}

// NewListingService creates a new ListingService
func NewListingService(
	index SearchIndex,
	users repository.UserRepository,
	scraps repository.ScrapRepository,
	keywords repository.KeywordRepository,
	registry *listing.Registry,
) ListingService {
	return &listingService{index: index, users: users, scraps: scraps, keywords: keywords, registry: registry}
}

// List runs the compiled filters and shapes one page of results
func (s *listingService) List(ctx context.Context, source domain.Source, filters domain.FilterSet, page int) ([]domain.Listing, error) {
	adapter, err := s.registry.Get(source)
	if err != nil {
		return nil, err
	}

	res, err := s.index.Search(ctx, source.Index(), elasticsearch.SearchRequest{
		Query:          listing.CompileFilters(source, filters).Body(),
		Sort:           adapter.Sort(),
		SourceIncludes: adapter.SourceIncludes(listing.ViewList),
		From:           offset(page, ListPageSize),
		Size:           ListPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", source, err)
	}
	return shapeAll(adapter, listing.ViewList, res), nil
}

// Count returns only the number of matching listings
func (s *listingService) Count(ctx context.Context, source domain.Source, filters domain.FilterSet) (int64, error) {
	if _, err := s.registry.Get(source); err != nil {
		return 0, err
	}
	n, err := s.index.Count(ctx, source.Index(), listing.CompileFilters(source, filters).Body())
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", source, err)
	}
	return n, nil
}

// Annotate stamps isScrap on every listing. Anonymous users get false everywhere.
func (s *listingService) Annotate(ctx context.Context, listings []domain.Listing, userID string, source domain.Source) ([]domain.Listing, error) {
	saved := map[string]struct{}{}
	if userID != "" {
		ids, err := s.scraps.ListingIDs(ctx, userID, source)
		if err != nil {
			return nil, fmt.Errorf("saved ids: %w", err)
		}
		for _, id := range ids {
			saved[id] = struct{}{}
		}
	}

	for i := range listings {
		_, ok := saved[listings[i].ID]
		listings[i].SetScrap(ok)
	}
	return listings, nil
}

// ListSaved one page (4) of the user's saved listings
func (s *listingService) ListSaved(ctx context.Context, userID string, source domain.Source, page int) ([]domain.Listing, error) {
	adapter, err := s.registry.Get(source)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.scraps.ListingIDs(ctx, userID, source)
	if err != nil {
		return nil, fmt.Errorf("saved ids: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Listing{}, nil
	}

	res, err := s.index.Search(ctx, source.Index(), elasticsearch.SearchRequest{
		Query:          listing.IDsIn(ids),
		Sort:           adapter.Sort(),
		SourceIncludes: adapter.SourceIncludes(listing.ViewSaved),
		From:           offset(page, SavedPageSize),
		Size:           SavedPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("search saved %s: %w", source, err)
	}

	out := shapeAll(adapter, listing.ViewSaved, res)
	for i := range out {
		out[i].SetScrap(true)
	}
	return out, nil
}

// CountSaved number of saved listings still present in the index
func (s *listingService) CountSaved(ctx context.Context, userID string, source domain.Source) (int64, error) {
	if _, err := s.registry.Get(source); err != nil {
		return 0, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}
	ids, err := s.scraps.ListingIDs(ctx, userID, source)
	if err != nil {
		return 0, fmt.Errorf("saved ids: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.index.Count(ctx, source.Index(), listing.IDsIn(ids))
	if err != nil {
		return 0, fmt.Errorf("count saved %s: %w", source, err)
	}
	return n, nil
}

// MyKeywords the user's interest keywords for source, in the form the list filters take.
// 어학은 시험 코드를 표시 이름으로, 자격증은 '.' 을 '/' 로 바꾼다.
func (s *listingService) MyKeywords(ctx context.Context, userID string, source domain.Source) ([]string, error) {
	if _, err := s.registry.Get(source); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	raw, err := s.keywords.Keywords(ctx, userID, source)
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}

	out := make([]string, 0, len(raw))
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		switch source {
		case domain.SourceLanguage:
			k = listing.LanguageTitle(k)
		case domain.SourceQnet:
			k = strings.ReplaceAll(k, ".", "/")
		}
		out = append(out, k)
	}
	return out, nil
}

// Detail bumps the view counter and returns the full document
func (s *listingService) Detail(ctx context.Context, source domain.Source, id, userID string) (*domain.Listing, error) {
	adapter, err := s.registry.Get(source)
	if err != nil {
		return nil, err
	}

	res, err := s.index.UpdateScript(ctx, source.Index(), id, "ctx._source.view++", true)
	if errors.Is(err, elasticsearch.ErrDocumentNotFound) {
		return nil, common.NotFound("공고를 찾을 수 없습니다", common.ErrListingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("detail %s/%s: %w", source, id, err)
	}

	src := res.Source
	if src == nil {
		src = map[string]interface{}{}
	}
	shaped := []domain.Listing{adapter.Shape(listing.ViewDetail, id, src)}
	annotated, err := s.Annotate(ctx, shaped, userID, source)
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// Best top listings in the source's sort order
func (s *listingService) Best(ctx context.Context, source domain.Source, userID string) ([]domain.Listing, error) {
	adapter, err := s.registry.Get(source)
	if err != nil {
		return nil, err
	}

	res, err := s.index.Search(ctx, source.Index(), elasticsearch.SearchRequest{
		Query:          listing.MatchAll(),
		Sort:           adapter.Sort(),
		SourceIncludes: adapter.SourceIncludes(listing.ViewBest),
		Size:           BestSize,
	})
	if err != nil {
		return nil, fmt.Errorf("best %s: %w", source, err)
	}
	return s.Annotate(ctx, shapeAll(adapter, listing.ViewBest, res), userID, source)
}

// Ingest indexes one crawled document. Counters start at zero.
func (s *listingService) Ingest(ctx context.Context, source domain.Source, doc map[string]interface{}) (string, error) {
	if _, err := s.registry.Get(source); err != nil {
		return "", err
	}

	body := make(map[string]interface{}, len(doc)+2)
	for k, v := range doc {
		body[k] = v
	}
	docID, _ := body["id"].(string)
	delete(body, "id")

	switch source {
	case domain.SourceIntern, domain.SourceCompetition, domain.SourceOutside, domain.SourceQnet:
		if _, ok := body["scrap"]; !ok {
			body["scrap"] = 0
		}
		if _, ok := body["view"]; !ok {
			body["view"] = 0
		}
	case domain.SourceLanguage:
		if _, ok := body["scrap"]; !ok {
			body["scrap"] = 0
		}
	}

	id, err := s.index.IndexDocument(ctx, source.Index(), docID, body)
	if err != nil {
		return "", fmt.Errorf("ingest %s: %w", source, err)
	}
	return id, nil
}

func (s *listingService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return common.NotFound("id가 일치하는 유저가 없습니다", err)
		}
		return err
	}
	return nil
}

// offset page < 1 reads as page 1
func offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// shapeAll never returns nil
func shapeAll(adapter listing.Adapter, v listing.View, res *elasticsearch.SearchResponse) []domain.Listing {
	out := make([]domain.Listing, 0, len(res.Results))
	for _, hit := range res.Results {
		out = append(out, adapter.Shape(v, hit.ID, hit.Source))
	}
	return out
}
