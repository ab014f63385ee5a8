package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/internal/middleware"
	"github.com/speckit/speckit-backend/internal/service"
	"github.com/speckit/speckit-backend/pkg/ginutil"
)

// ListingHandler handles listing HTTP requests
type ListingHandler struct {
	listings service.ListingService
	picks    service.DailyPickService
	registry *listing.Registry
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listings service.ListingService, picks service.DailyPickService, registry *listing.Registry) *ListingHandler {
	return &ListingHandler{listings: listings, picks: picks, registry: registry}
}

// List handles GET /listings/:source
// 쿼리스트링의 필터 키 중 출처가 허용하는 것만 쓴다. ?count=true 이면 개수만.
func (h *ListingHandler) List(c *gin.Context) {
	adapter, err := h.registry.Lookup(c.Param("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	source := adapter.Source()

	values := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	filters := h.registry.Filters(source, values)

	if ginutil.QueryBool(c, "count") {
		n, err := h.listings.Count(c.Request.Context(), source, filters)
		if err != nil {
			common.HandleError(c, err)
			return
		}
		common.Success(c, gin.H{"count": n})
		return
	}

	page := ginutil.QueryPage(c)
	items, err := h.listings.List(c.Request.Context(), source, filters, page)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	items, err = h.listings.Annotate(c.Request.Context(), items, middleware.GetUserID(c), source)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.SuccessWithMeta(c, items, &common.Meta{Page: page, PerPage: service.ListPageSize})
}

// Best handles GET /listings/:source/best
func (h *ListingHandler) Best(c *gin.Context) {
	adapter, err := h.registry.Lookup(c.Param("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	items, err := h.listings.Best(c.Request.Context(), adapter.Source(), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, items)
}

// Detail handles GET /listings/:source/:id
func (h *ListingHandler) Detail(c *gin.Context) {
	adapter, err := h.registry.Lookup(c.Param("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	item, err := h.listings.Detail(c.Request.Context(), adapter.Source(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, item)
}

// Ingest handles POST /listings/:source (crawler)
func (h *ListingHandler) Ingest(c *gin.Context) {
	adapter, err := h.registry.Lookup(c.Param("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil || len(doc) == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청 본문입니다", err)
		return
	}

	id, err := h.listings.Ingest(c.Request.Context(), adapter.Source(), doc)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Created(c, gin.H{"id": id})
}

// MyKeywords handles GET /me/keywords?source=
// 돌려준 키워드는 그대로 목록 필터 값으로 쓸 수 있다.
func (h *ListingHandler) MyKeywords(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	adapter, err := h.registry.Lookup(c.Query("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	keywords, err := h.listings.MyKeywords(c.Request.Context(), userID, adapter.Source())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, gin.H{"keywords": keywords})
}

// DailyPicks handles GET /listings/random
func (h *ListingHandler) DailyPicks(c *gin.Context) {
	picks, err := h.picks.PickAll(c.Request.Context())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, picks)
}

// DailyPick handles GET /listings/random/:source
func (h *ListingHandler) DailyPick(c *gin.Context) {
	adapter, err := h.registry.Lookup(c.Param("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	pick, err := h.picks.Pick(c.Request.Context(), adapter.Source())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, pick)
}
