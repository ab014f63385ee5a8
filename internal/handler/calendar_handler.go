package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/service"
)

// CalendarHandler handles the saved-listing calendar
type CalendarHandler struct {
	service service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(service service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// CalendarQuery GET /me/calendar 쿼리
type CalendarQuery struct {
	Year  int `form:"year" validate:"required,min=2000,max=2100"`
	Month int `form:"month" validate:"required,min=1,max=12"`
}

// Month handles GET /me/calendar?year=&month=
func (h *CalendarHandler) Month(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q CalendarQuery
	if !bindQuery(c, &q) {
		return
	}

	bucket, err := h.service.Month(c.Request.Context(), userID, q.Year, time.Month(q.Month))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, bucket)
}
