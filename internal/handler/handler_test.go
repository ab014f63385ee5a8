package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/speckit/speckit-backend/internal/calendar"
	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/internal/service"
)

// ========================================
// Mocks
// ========================================

type mockListingService struct{ mock.Mock }

func (m *mockListingService) List(ctx context.Context, source domain.Source, filters domain.FilterSet, page int) ([]domain.Listing, error) {
	args := m.Called(ctx, source, filters, page)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockListingService) Count(ctx context.Context, source domain.Source, filters domain.FilterSet) (int64, error) {
	args := m.Called(ctx, source, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockListingService) Annotate(ctx context.Context, listings []domain.Listing, userID string, source domain.Source) ([]domain.Listing, error) {
	args := m.Called(ctx, listings, userID, source)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockListingService) ListSaved(ctx context.Context, userID string, source domain.Source, page int) ([]domain.Listing, error) {
	args := m.Called(ctx, userID, source, page)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockListingService) CountSaved(ctx context.Context, userID string, source domain.Source) (int64, error) {
	args := m.Called(ctx, userID, source)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockListingService) MyKeywords(ctx context.Context, userID string, source domain.Source) ([]string, error) {
	args := m.Called(ctx, userID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockListingService) Detail(ctx context.Context, source domain.Source, id, userID string) (*domain.Listing, error) {
	args := m.Called(ctx, source, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockListingService) Best(ctx context.Context, source domain.Source, userID string) ([]domain.Listing, error) {
	args := m.Called(ctx, source, userID)
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockListingService) Ingest(ctx context.Context, source domain.Source, doc map[string]interface{}) (string, error) {
	args := m.Called(ctx, source, doc)
	return args.String(0), args.Error(1)
}

type mockScrapService struct{ mock.Mock }

func (m *mockScrapService) Toggle(ctx context.Context, userID string, source domain.Source, listingID string) (bool, error) {
	args := m.Called(ctx, userID, source, listingID)
	return args.Bool(0), args.Error(1)
}

type mockCalendarService struct{ mock.Mock }

func (m *mockCalendarService) Month(ctx context.Context, userID string, year int, month time.Month) (calendar.Bucket, error) {
	args := m.Called(ctx, userID, year, month)
	return args.Get(0).(calendar.Bucket), args.Error(1)
}

type mockThermometerService struct {
	mock.Mock
	service.ThermometerService
}

func (m *mockThermometerService) Remove(ctx context.Context, userID, recordID string) error {
	return m.Called(ctx, userID, recordID).Error(0)
}

// ========================================
// Helpers
// ========================================

// withUser stands in for JWTAuth
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

func newTestRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withUser(userID))
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func testRegistry() *listing.Registry {
	return listing.NewRegistry(listing.Options{
		QnetImageURL: "https://img.test/qnet.png",
		Now:          func() time.Time { return time.Date(2023, 1, 5, 9, 0, 0, 0, time.UTC) },
	})
}

// ========================================
// Listing
// ========================================

func TestListingHandler_List(t *testing.T) {
	listings := new(mockListingService)
	h := NewListingHandler(listings, nil, testRegistry())
	r := newTestRouter("")
	r.GET("/listings/:source", h.List)

	items := []domain.Listing{{ID: "c1", Source: domain.SourceCompetition, Fields: map[string]interface{}{"title": "공모전"}}}
	annotated := []domain.Listing{{ID: "c1", Source: domain.SourceCompetition, Fields: map[string]interface{}{"title": "공모전"}}}
	annotated[0].SetScrap(false)

	// unknown keys (sort) are dropped, accepted keys keep adapter order
	want := domain.FilterSet{{Key: "field", Value: "IT"}, {Key: "benefit", Value: "상금"}}
	listings.On("List", mock.Anything, domain.SourceCompetition, want, 2).Return(items, nil)
	listings.On("Annotate", mock.Anything, items, "", domain.SourceCompetition).Return(annotated, nil)

	w := do(r, http.MethodGet, "/listings/competition?benefit=%EC%83%81%EA%B8%88&sort=x&field=IT&page=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": [{"id": "c1", "title": "공모전", "isScrap": false}],
		"meta": {"page": 2, "per_page": 12}
	}`, w.Body.String())
	listings.AssertExpectations(t)
}

func TestListingHandler_List_CountMode(t *testing.T) {
	listings := new(mockListingService)
	h := NewListingHandler(listings, nil, testRegistry())
	r := newTestRouter("")
	r.GET("/listings/:source", h.List)

	listings.On("Count", mock.Anything, domain.SourceQnet, domain.FilterSet{{Key: "mainCategory", Value: "정보통신"}}).
		Return(int64(31), nil)

	w := do(r, http.MethodGet, "/listings/qnet?count=true&mainCategory=%EC%A0%95%EB%B3%B4%ED%86%B5%EC%8B%A0", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "data": {"count": 31}}`, w.Body.String())
	listings.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListingHandler_UnknownSource(t *testing.T) {
	listings := new(mockListingService)
	h := NewListingHandler(listings, nil, testRegistry())
	r := newTestRouter("")
	r.GET("/listings/:source", h.List)
	r.GET("/listings/:source/:id", h.Detail)

	for _, target := range []string{"/listings/webtoon", "/listings/webtoon/1"} {
		w := do(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	listings.AssertExpectations(t)
}

func TestListingHandler_Detail_NotFound(t *testing.T) {
	listings := new(mockListingService)
	h := NewListingHandler(listings, nil, testRegistry())
	r := newTestRouter("user-1")
	r.GET("/listings/:source/:id", h.Detail)

	listings.On("Detail", mock.Anything, domain.SourceIntern, "missing", "user-1").
		Return(nil, common.NotFound("공고를 찾을 수 없습니다", common.ErrListingNotFound))

	w := do(r, http.MethodGet, "/listings/intern/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingHandler_Ingest_EmptyBody(t *testing.T) {
	listings := new(mockListingService)
	h := NewListingHandler(listings, nil, testRegistry())
	r := newTestRouter("crawler")
	r.POST("/listings/:source", h.Ingest)

	w := do(r, http.MethodPost, "/listings/outside", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	listings.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingHandler_MyKeywords(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		listings := new(mockListingService)
		r := newTestRouter("")
		r.GET("/me/keywords", NewListingHandler(listings, nil, testRegistry()).MyKeywords)

		w := do(r, http.MethodGet, "/me/keywords?source=language", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		listings.AssertNotCalled(t, "MyKeywords", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown source", func(t *testing.T) {
		listings := new(mockListingService)
		r := newTestRouter("user-1")
		r.GET("/me/keywords", NewListingHandler(listings, nil, testRegistry()).MyKeywords)

		w := do(r, http.MethodGet, "/me/keywords?source=webtoon", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("keywords", func(t *testing.T) {
		listings := new(mockListingService)
		r := newTestRouter("user-1")
		r.GET("/me/keywords", NewListingHandler(listings, nil, testRegistry()).MyKeywords)
		listings.On("MyKeywords", mock.Anything, "user-1", domain.SourceQnet).
			Return([]string{"정보통신/정보기술"}, nil)

		w := do(r, http.MethodGet, "/me/keywords?source=qnet", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true, "data": {"keywords": ["정보통신/정보기술"]}}`, w.Body.String())
	})

	t.Run("user gone", func(t *testing.T) {
		listings := new(mockListingService)
		r := newTestRouter("user-1")
		r.GET("/me/keywords", NewListingHandler(listings, nil, testRegistry()).MyKeywords)
		listings.On("MyKeywords", mock.Anything, "user-1", domain.SourceIntern).
			Return(nil, common.NotFound("id가 일치하는 유저가 없습니다", common.ErrUserNotFound))

		w := do(r, http.MethodGet, "/me/keywords?source=intern", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// ========================================
// Scrap
// ========================================

func TestScrapHandler_Toggle(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		body   string
		status int
	}{
		{"anonymous", "", `{"source":"intern","listingId":"i1"}`, http.StatusUnauthorized},
		{"unknown source", "user-1", `{"source":"webtoon","listingId":"i1"}`, http.StatusBadRequest},
		{"missing listing id", "user-1", `{"source":"intern"}`, http.StatusBadRequest},
		{"malformed body", "user-1", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scraps := new(mockScrapService)
			h := NewScrapHandler(scraps, nil, testRegistry())
			r := newTestRouter(tt.user)
			r.POST("/me/scraps", h.Toggle)

			w := do(r, http.MethodPost, "/me/scraps", tt.body)

			assert.Equal(t, tt.status, w.Code)
			scraps.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("saved", func(t *testing.T) {
		scraps := new(mockScrapService)
		h := NewScrapHandler(scraps, nil, testRegistry())
		r := newTestRouter("user-1")
		r.POST("/me/scraps", h.Toggle)
		scraps.On("Toggle", mock.Anything, "user-1", domain.SourceIntern, "i1").Return(true, nil)

		w := do(r, http.MethodPost, "/me/scraps", `{"source":"intern","listingId":"i1"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success": true, "data": {"isScrap": true}}`, w.Body.String())
	})
}

func TestScrapHandler_List(t *testing.T) {
	listings := new(mockListingService)
	h := NewScrapHandler(nil, listings, testRegistry())
	r := newTestRouter("user-1")
	r.GET("/me/scraps", h.List)

	listings.On("CountSaved", mock.Anything, "user-1", domain.SourceLanguage).Return(int64(3), nil)
	listings.On("ListSaved", mock.Anything, "user-1", domain.SourceLanguage, 1).Return([]domain.Listing{}, nil)

	w := do(r, http.MethodGet, "/me/scraps?source=language&count=1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "data": {"count": 3}}`, w.Body.String())

	w = do(r, http.MethodGet, "/me/scraps?source=language&page=-4", "")
	assert.Equal(t, http.StatusOK, w.Code)
	// 빈 목록은 data 가 생략된다 (omitempty)
	assert.JSONEq(t, `{"success": true, "meta": {"page": 1, "per_page": 4}}`, w.Body.String())

	w = do(r, http.MethodGet, "/me/scraps", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	listings.AssertExpectations(t)
}

// ========================================
// Calendar
// ========================================

func TestCalendarHandler_Month(t *testing.T) {
	svc := new(mockCalendarService)
	h := NewCalendarHandler(svc)
	r := newTestRouter("user-1")
	r.GET("/me/calendar", h.Month)

	bucket := calendar.Bucket{
		"2023-03-10": {{ID: "i1", Title: "인턴", Source: domain.SourceIntern, Status: calendar.StatusOpen}},
	}
	svc.On("Month", mock.Anything, "user-1", 2023, time.March).Return(bucket, nil)

	w := do(r, http.MethodGet, "/me/calendar?year=2023&month=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"2023-03-10"`)

	for _, q := range []string{"?year=2023&month=13", "?year=2023&month=0", "?month=3", "?year=abc&month=3"} {
		w := do(r, http.MethodGet, "/me/calendar"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	svc.AssertNumberOfCalls(t, "Month", 1)
}

// ========================================
// Thermometer
// ========================================

func TestThermometerHandler_Remove(t *testing.T) {
	svc := new(mockThermometerService)
	h := NewThermometerHandler(svc)
	r := newTestRouter("user-1")
	r.DELETE("/me/thermometers/:id", h.Remove)

	svc.On("Remove", mock.Anything, "user-1", "mine").Return(nil)
	svc.On("Remove", mock.Anything, "user-1", "theirs").
		Return(common.Forbidden("본인의 기록만 삭제할 수 있습니다", common.ErrForbidden))

	w := do(r, http.MethodDelete, "/me/thermometers/mine", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/me/thermometers/theirs", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
