package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joefazee/placement/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEnvelopeShape(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InsufficientTokensResponse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "error", raw["status"])
	assert.Equal(t, "Insufficient tokens", raw["message"])
	assert.NotContains(t, raw, "data")
	assert.Equal(t, "INSUFFICIENT_TOKENS", raw["error"].(map[string]interface{})["code"])
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = NewPaginationMeta(1, 0, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}

func runWithPermissions(perms interface{}, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		if perms != nil {
			c.Set(ContextPermissionsKey, perms)
		}
		c.Next()
	}, handler, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestCan(t *testing.T) {
	t.Run("Allows holder", func(t *testing.T) {
		w := runWithPermissions([]string{"bets:place", "admin:bets:settle"}, Can("admin:bets:settle"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Rejects missing permission", func(t *testing.T) {
		w := runWithPermissions([]string{"bets:place"}, Can("admin:bets:settle"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Rejects missing context", func(t *testing.T) {
		w := runWithPermissions(nil, Can("bets:place"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Rejects malformed context", func(t *testing.T) {
		w := runWithPermissions("bets:place", Can("bets:place"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserIDFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, UserIDFromContext(c))

	c.Set(ContextUserIDKey, "not-a-uuid")
	assert.Equal(t, uuid.Nil, UserIDFromContext(c))

	id := uuid.New()
	c.Set(ContextUserIDKey, id)
	assert.Equal(t, id, UserIDFromContext(c))
}

func TestHealthCheck(t *testing.T) {
	serve := func(ping PingFunc) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/healthz", HealthCheck("test", ping))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		return w
	}

	w := serve(func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	w = serve(func(context.Context) error { return errors.New("db down") })
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"unhealthy"`)
}

func TestCorsMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.NewNullLogger()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

type batchEntry struct {
	Amount int64 `validate:"gte=1"`
}

type batchRequest struct {
	Status string       `validate:"required,oneof=active expired"`
	Bets   []batchEntry `validate:"required,dive"`
}

func TestFormatValidationErrors(t *testing.T) {
	err := validator.New().Struct(batchRequest{
		Status: "closed",
		Bets:   []batchEntry{{Amount: 5}, {Amount: 0}},
	})
	require.Error(t, err)

	details, ok := FormatValidationErrors(err).(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Must be one of: active expired", details["Status"])
	assert.Equal(t, "Value must be greater than or equal to 1", details["Bets[1].Amount"])

	assert.Equal(t, "boom", FormatValidationErrors(errors.New("boom")))
}
