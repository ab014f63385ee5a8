package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/domain"
	"github.com/speckit/speckit-backend/internal/service"
)

// ThermometerHandler handles activity records and percentile
type ThermometerHandler struct {
	service service.ThermometerService
}

// NewThermometerHandler creates a new ThermometerHandler
func NewThermometerHandler(service service.ThermometerService) *ThermometerHandler {
	return &ThermometerHandler{service: service}
}

// AddThermometerRequest 활동 기록 추가
type AddThermometerRequest struct {
	Kind          string `json:"kind" validate:"required,oneof=language qnet intern competition outside"`
	Field         string `json:"field" validate:"max=50"`
	Category      string `json:"category" validate:"max=50"`
	ActiveTitle   string `json:"activeTitle" validate:"required,max=200"`
	ActiveContent string `json:"activeContent"`
	Period        string `json:"period" validate:"max=50"`
	Score         string `json:"score" validate:"max=20"`
}

// PatchThermometerRequest 보낸 필드만 수정
type PatchThermometerRequest struct {
	Field         *string `json:"field" validate:"omitempty,max=50"`
	Category      *string `json:"category" validate:"omitempty,max=50"`
	ActiveTitle   *string `json:"activeTitle" validate:"omitempty,min=1,max=200"`
	ActiveContent *string `json:"activeContent"`
	Period        *string `json:"period" validate:"omitempty,max=50"`
	Score         *string `json:"score" validate:"omitempty,max=20"`
}

// List handles GET /me/thermometers?kind=
func (h *ThermometerHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recs, err := h.service.List(c.Request.Context(), userID, domain.Source(c.Query("kind")))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, recs)
}

// Add handles POST /me/thermometers
func (h *ThermometerHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddThermometerRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.service.Add(c.Request.Context(), userID, service.ThermometerInput{
		Kind:          domain.Source(req.Kind),
		Field:         req.Field,
		Category:      req.Category,
		ActiveTitle:   req.ActiveTitle,
		ActiveContent: req.ActiveContent,
		Period:        req.Period,
		Score:         req.Score,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Created(c, rec)
}

// Patch handles PATCH /me/thermometers/:id
func (h *ThermometerHandler) Patch(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req PatchThermometerRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.service.Patch(c.Request.Context(), userID, c.Param("id"), service.ThermometerPatch{
		Field:         req.Field,
		Category:      req.Category,
		ActiveTitle:   req.ActiveTitle,
		ActiveContent: req.ActiveContent,
		Period:        req.Period,
		Score:         req.Score,
	})
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, rec)
}

// Remove handles DELETE /me/thermometers/:id
func (h *ThermometerHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		common.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Counts handles GET /me/thermometers/count
func (h *ThermometerHandler) Counts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	counts, err := h.service.Counts(c.Request.Context(), userID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, gin.H{
		"counts": counts,
		"total":  counts.Total(),
	})
}

// Rank handles GET /me/thermometers/rank
func (h *ThermometerHandler) Rank(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rank, err := h.service.Rank(c.Request.Context(), userID)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, rank)
}
