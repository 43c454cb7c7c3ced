package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DentalLab-BookingService/pkg/logger"
	"github.com/m04kA/DentalLab-BookingService/pkg/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAdminAuth(t *testing.T) {
	h := AdminAuth("s3cret")(okHandler)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "nope", http.StatusForbidden},
		{"valid", "s3cret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
			if tt.token != "" {
				req.Header.Set(AdminTokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AdminTokenHeader, "")
	AdminAuth("")(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
}

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(2, time.Hour, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}

func TestLocalLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 12, 19, 10, 0, 0, 0, time.UTC)
	l := NewLocalLimiter(1, 10*time.Minute, 10*time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		_, err := l.Allow(ctx, fmt.Sprintf("198.51.100.%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 100, l.Len())

	now = now.Add(5 * time.Minute)
	ok, _ := l.Allow(ctx, "198.51.100.1")
	assert.False(t, ok, "client still remembered inside idle ttl")

	now = now.Add(11 * time.Minute)
	ok, _ = l.Allow(ctx, "203.0.113.9")
	assert.True(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestNewLocalLimiter_IdleTTLNotShorterThanWindow(t *testing.T) {
	l := NewLocalLimiter(5, time.Hour, time.Minute)
	assert.Equal(t, time.Hour, l.idleTTL)
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) {
	return s.allowed, s.err
}

func TestRateLimit(t *testing.T) {
	m := metrics.NewWithRegistry("dentallab", prometheus.NewRegistry())

	serve := func(l Limiter, failOpen bool) int {
		router := mux.NewRouter()
		router.Handle("/api/v1/appointments", RateLimit(l, ClientKey(false), m, failOpen, logger.NewNop())(okHandler))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(stubLimiter{allowed: true}, false))
	assert.Equal(t, http.StatusTooManyRequests, serve(stubLimiter{allowed: false}, false))
	assert.Equal(t, http.StatusOK, serve(stubLimiter{err: errors.New("redis down")}, true))
	assert.Equal(t, http.StatusServiceUnavailable, serve(stubLimiter{err: errors.New("redis down")}, false))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited.WithLabelValues("dentallab", "/api/v1/appointments")))
}

// countingScripter отвечает на EvalSha растущим счётчиком
type countingScripter struct {
	count   int64
	lastKey string
}

func (s *countingScripter) next(ctx context.Context, keys []string) *redis.Cmd {
	s.count++
	s.lastKey = keys[0]
	cmd := redis.NewCmd(ctx)
	cmd.SetVal(s.count)
	return cmd
}

func (s *countingScripter) Eval(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(ctx, keys)
}

func (s *countingScripter) EvalSha(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(ctx, keys)
}

func (s *countingScripter) EvalRO(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(ctx, keys)
}

func (s *countingScripter) EvalShaRO(ctx context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(ctx, keys)
}

func (s *countingScripter) ScriptExists(ctx context.Context, _ ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceCmd(ctx)
}

func (s *countingScripter) ScriptLoad(ctx context.Context, _ string) *redis.StringCmd {
	return redis.NewStringCmd(ctx)
}

func TestRedisLimiter(t *testing.T) {
	rdb := &countingScripter{}
	l := NewRedisLimiter(rdb, 2, time.Minute, "dentallab:rl")
	ctx := context.Background()

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dentallab:rl:10.0.0.1", rdb.lastKey)

	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5123"
	assert.Equal(t, "192.0.2.7", ClientKey(false)(req))
	assert.Equal(t, "192.0.2.7", ClientKey(true)(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "192.0.2.7", ClientKey(false)(req))
	assert.Equal(t, "203.0.113.9", ClientKey(true)(req))
}

func TestRateLimit_IgnoresRotatedForwardedFor(t *testing.T) {
	l := NewLocalLimiter(1, time.Hour, time.Hour)
	h := RateLimit(l, ClientKey(false), nil, false, logger.NewNop())(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		req.RemoteAddr = "192.0.2.7:5123"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, l.Len())
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry("dentallab", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "dentallab"))
	router.HandleFunc("/api/v1/admin/appointments/{appointmentId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments/123", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("dentallab", http.MethodGet, "/api/v1/admin/appointments/{appointmentId}", "404")))
}
