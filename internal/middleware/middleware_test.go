package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-grafik/internal/middleware"
	"go-grafik/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestContextLogger_PropagatesRequestIDAndActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ContextLogger(zap.NewNop()))

	var gotRID, gotActor string
	r.GET("/ping", func(c *gin.Context) {
		gotRID = contextutil.GetRequestID(c.Request.Context())
		gotActor = contextutil.GetActor(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "rid-1")
	req.Header.Set(middleware.HeaderActor, "kierownik")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "rid-1", gotRID)
	assert.Equal(t, "kierownik", gotActor)
	assert.Equal(t, "rid-1", rec.Header().Get(middleware.HeaderRequestID))
}

func TestContextLogger_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimitByIP(1, 1))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestIdempotency_ReplaysStoredReply(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/notify:k1").SetVal(`{"ok":true}`)

	called := false
	r := gin.New()
	r.Use(middleware.Idempotency(db))
	r.POST("/notify", func(c *gin.Context) {
		called = true
		c.Status(http.StatusAccepted)
	})

	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("Idempotent-Replay"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_LockedKeyConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	mock.ExpectGet("idemp:/notify:k2").RedisNil()
	mock.ExpectSetNX("idemp:/notify:k2:lock", "locked", 30*time.Second).SetVal(false)

	r := gin.New()
	r.Use(middleware.Idempotency(db))
	r.POST("/notify", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k2")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NilClientPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Idempotency((*redis.Client)(nil)))
	r.POST("/notify", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	req.Header.Set(middleware.HeaderIdempotencyKey, "k3")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
