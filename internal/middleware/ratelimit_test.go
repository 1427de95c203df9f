package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(limiter.Handler())
	r.GET("/", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(1, 3))

	for i := 0; i < 3; i++ {
		w := performRequest(r, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(0.001, 2))

	performRequest(r, "10.0.0.1:1234")
	performRequest(r, "10.0.0.1:1234")

	w := performRequest(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiterPerClient(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(0.001, 1))

	first := performRequest(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)

	// A second client has its own bucket.
	second := performRequest(r, "10.0.0.2:1234")
	assert.Equal(t, http.StatusOK, second.Code)

	blocked := performRequest(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
}

func TestRateLimiterRefills(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(100, 1))

	first := performRequest(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)

	time.Sleep(20 * time.Millisecond)

	refilled := performRequest(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, refilled.Code)
}
