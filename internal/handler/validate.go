package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/internal/middleware"
)

var reqValidator = validator.New()

// bindJSON decodes and validates the body; writes a 400 and returns false on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청 본문입니다", err)
		return false
	}
	if err := reqValidator.Struct(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "입력값을 확인해주세요", err)
		return false
	}
	return true
}

// bindQuery same as bindJSON for query strings
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 쿼리입니다", err)
		return false
	}
	if err := reqValidator.Struct(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "입력값을 확인해주세요", err)
		return false
	}
	return true
}

// currentUser returns the authenticated user id; writes a 401 when absent
func currentUser(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return "", false
	}
	return userID, true
}
