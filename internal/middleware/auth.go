package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/speckit/speckit-backend/internal/common"
	"github.com/speckit/speckit-backend/pkg/jwt"
)

const (
	ctxUserID   = "userID"
	ctxNickname = "nickname"
)

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
			c.Abort()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxNickname, claims.Nickname)
		c.Next()
	}
}

// OptionalJWTAuth sets the user when a valid token is present; anonymous otherwise
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtManager.VerifyToken(token); err == nil {
				c.Set(ctxUserID, claims.UserID)
				c.Set(ctxNickname, claims.Nickname)
			}
		}
		c.Next()
	}
}

// GetUserID extracts user ID from context ("" when anonymous)
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetNickname extracts nickname from context
func GetNickname(c *gin.Context) string {
	return c.GetString(ctxNickname)
}
