package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/pkg/cache"
	"github.com/speckit/speckit-backend/pkg/elasticsearch"
)

// --- Mock SearchIndex ---

type mockSearchIndex struct {
	mock.Mock
}

func (m *mockSearchIndex) Search(ctx context.Context, index string, req elasticsearch.SearchRequest) (*elasticsearch.SearchResponse, error) {
	args := m.Called(ctx, index, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearch.SearchResponse), args.Error(1)
}

func (m *mockSearchIndex) Count(ctx context.Context, index string, query map[string]interface{}) (int64, error) {
	args := m.Called(ctx, index, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSearchIndex) UpdateScript(ctx context.Context, index, docID, script string, withSource bool) (*elasticsearch.UpdateResult, error) {
	args := m.Called(ctx, index, docID, script, withSource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearch.UpdateResult), args.Error(1)
}

func (m *mockSearchIndex) IndexDocument(ctx context.Context, index, docID string, body interface{}) (string, error) {
	args := m.Called(ctx, index, docID, body)
	return args.String(0), args.Error(1)
}

// --- Mock ScrapRepository ---

type mockScrapRepo struct {
	mock.Mock
}

func (m *mockScrapRepo) ListingIDs(ctx context.Context, userID string, source domain.Source) ([]string, error) {
	args := m.Called(ctx, userID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockScrapRepo) Exists(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error) {
	args := m.Called(ctx, userID, source, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockScrapRepo) Create(ctx context.Context, userID string, source domain.Source, listingID string) error {
	return m.Called(ctx, userID, source, listingID).Error(0)
}

func (m *mockScrapRepo) Delete(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error) {
	args := m.Called(ctx, userID, source, listingID)
	return args.Bool(0), args.Error(1)
}

// --- Mock KeywordRepository ---

type mockKeywordRepo struct {
	mock.Mock
}

func (m *mockKeywordRepo) Keywords(ctx context.Context, userID string, source domain.Source) ([]string, error) {
	args := m.Called(ctx, userID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) MainMajorOf(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockUserRepo) ListByMainMajor(ctx context.Context, mainMajorID string) ([]domain.User, error) {
	args := m.Called(ctx, mainMajorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateThermometer(ctx context.Context, userID string, total int) error {
	return m.Called(ctx, userID, total).Error(0)
}

func (m *mockUserRepo) UpdateTops(ctx context.Context, ranks []domain.CohortRank) error {
	return m.Called(ctx, ranks).Error(0)
}

// --- Mock ThermometerRepository ---

type mockThermoRepo struct {
	mock.Mock
}

func (m *mockThermoRepo) Create(ctx context.Context, rec *domain.ThermometerRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockThermoRepo) FindByID(ctx context.Context, id string) (*domain.ThermometerRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ThermometerRecord), args.Error(1)
}

func (m *mockThermoRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockThermoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockThermoRepo) ListByUser(ctx context.Context, userID string, kind domain.Source) ([]domain.ThermometerRecord, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ThermometerRecord), args.Error(1)
}

func (m *mockThermoRepo) Counts(ctx context.Context, userID string) (domain.ActivityCounts, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.ActivityCounts), args.Error(1)
}

// --- in-memory PickCache ---

type memPickCache struct {
	mu       sync.Mutex
	data     map[string][]byte
	writeErr error
}

func newMemPickCache() *memPickCache {
	return &memPickCache{data: map[string][]byte{}}
}

func (c *memPickCache) GetDailyPick(_ context.Context, source string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[source]
	if !ok {
		return nil, cache.ErrUnavailable
	}
	return d, nil
}

func (c *memPickCache) SetDailyPick(_ context.Context, source string, data interface{}) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	b, err := jsonBytes(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[source] = b
	return nil
}

func (c *memPickCache) InvalidateDailyPick(_ context.Context, source string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, source)
	return nil
}
