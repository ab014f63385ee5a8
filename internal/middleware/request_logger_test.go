package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speckit/speckit-backend/pkg/jwt"
	"github.com/speckit/speckit-backend/pkg/logger"
)

func logRequest(t *testing.T, authHeader string) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(io.Discard) })

	m := jwt.NewManager("test-secret", 3600)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(), OptionalJWTAuth(m))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/test?page=2", nil)
	req.Header.Set("X-Request-ID", "req-1")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestRequestLogger_TagsAuthenticatedUser(t *testing.T) {
	token, err := jwt.NewManager("test-secret", 3600).GenerateToken("user-1", "")
	require.NoError(t, err)

	line := logRequest(t, "Bearer "+token)

	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "user-1", line["user_id"])
	assert.Equal(t, "page=2", line["query"])
	assert.Equal(t, float64(http.StatusNoContent), line["status"])
}

func TestRequestLogger_AnonymousHasNoUser(t *testing.T) {
	line := logRequest(t, "")

	assert.Equal(t, "req-1", line["request_id"])
	assert.NotContains(t, line, "user_id")
}
