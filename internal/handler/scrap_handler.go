package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/listing"
	"github.com/speckit/speckit-backend/internal/service"
	"github.com/speckit/speckit-backend/pkg/ginutil"
)

// ScrapHandler handles saved-listing HTTP requests
type ScrapHandler struct {
	scraps   service.ScrapService
	listings service.ListingService
	registry *listing.Registry
}

// NewScrapHandler creates a new ScrapHandler
func NewScrapHandler(scraps service.ScrapService, listings service.ListingService, registry *listing.Registry) *ScrapHandler {
	return &ScrapHandler{scraps: scraps, listings: listings, registry: registry}
}

// ToggleScrapRequest POST /me/scraps 본문
type ToggleScrapRequest struct {
	Source    string `json:"source" validate:"required,oneof=language qnet intern competition outside"`
	ListingID string `json:"listingId" validate:"required,max=64"`
}

// Toggle handles POST /me/scraps
func (h *ScrapHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req ToggleScrapRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.scraps.Toggle(c.Request.Context(), userID, domain.Source(req.Source), req.ListingID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, gin.H{"isScrap": saved})
}

// List handles GET /me/scraps?source=&page= (?count=true 이면 개수만)
func (h *ScrapHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	adapter, err := h.registry.Lookup(c.Query("source"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	source := adapter.Source()

	if ginutil.QueryBool(c, "count") {
		n, err := h.listings.CountSaved(c.Request.Context(), userID, source)
		if err != nil {
			common.HandleError(c, err)
			return
		}
		common.Success(c, gin.H{"count": n})
		return
	}

	page := ginutil.QueryPage(c)
	items, err := h.listings.ListSaved(c.Request.Context(), userID, source, page)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessWithMeta(c, items, &common.Meta{Page: page, PerPage: service.SavedPageSize})
}
