package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := New(ctx, 0.001, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1:5001").Code)

	rec := send("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

	assert.Equal(t, http.StatusCreated, send("10.0.0.2:5000").Code, "other clients keep their own bucket")
}

func TestRemoveIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := New(ctx, 1, 1)
	limiter.GetLimiter("10.0.0.1")
	busy := limiter.GetLimiter("10.0.0.2")
	busy.Allow()

	removed := limiter.removeIdle(time.Now())

	assert.Equal(t, 1, removed)
	limiter.mu.RLock()
	defer limiter.mu.RUnlock()
	assert.Contains(t, limiter.limits, "10.0.0.2")
	assert.NotContains(t, limiter.limits, "10.0.0.1")
}
