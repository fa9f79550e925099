package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, incoming, seen, "a valid incoming id is kept")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not-a-uuid", seen)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"), "bucket exhausted")
	assert.True(t, rl.Allow("5.6.7.8"), "clients are tracked independently")

	now = now.Add(31 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"), "one token refills after window/limit")
	assert.False(t, rl.Allow("1.2.3.4"), "tokens refill gradually, not the whole bucket at once")

	now = now.Add(time.Hour)
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"), "an idle bucket never holds more than limit tokens")
}

func TestRateLimiter_ZeroLimitDenies(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	defer rl.Stop()

	assert.False(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.Allow("1.2.3.4")

	now = now.Add(30 * time.Minute)
	rl.Allow("5.6.7.8")

	now = now.Add(45 * time.Minute)
	rl.cleanup()
	assert.NotContains(t, rl.clients, "1.2.3.4", "idle past the threshold")
	assert.Contains(t, rl.clients, "5.6.7.8", "seen recently")

	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()
	router := newTestRouter(rl)

	first := post(router, "/api/retirement/calculate", profileBody(t, nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := post(router, "/api/retirement/calculate", profileBody(t, nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}
