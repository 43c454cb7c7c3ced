package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/DentalLab-BookingService/internal/api/handlers"
	"github.com/m04kA/DentalLab-BookingService/pkg/metrics"
)

const (
	msgRateLimited        = "слишком много запросов, попробуйте позже"
	msgRateLimiterFailure = "ограничитель запросов недоступен"
)

// Limiter решает, пропускать ли запрос клиента с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter fixed window поверх Redis, общий для всех инстансов
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, err
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unexpected redis script result type %T", res)
	}

	return count <= int64(l.limit), nil
}

// LocalLimiter token bucket на клиента в памяти процесса
// Клиенты без запросов дольше idleTTL удаляются при очередной проверке
type LocalLimiter struct {
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter допускает limit запросов за window с таким же burst
// idleTTL не короче window
func NewLocalLimiter(limit int, window, idleTTL time.Duration) *LocalLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if idleTTL < window {
		idleTTL = window
	}
	return &LocalLimiter{
		limit:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idleTTL:  idleTTL,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1), nil
}

// Len число отслеживаемых клиентов
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *LocalLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// RateLimit отклоняет запросы сверх лимита с 429
// failOpen пропускает запросы, если лимитер вернул ошибку
func RateLimit(limiter Limiter, clientKey func(*http.Request) string, m *metrics.Metrics, failOpen bool, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				logger.Warn("rate limiter error: %v", err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimiterFailure)
				return
			}

			if !allowed {
				m.RecordRateLimited(routeTemplate(r))
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey ключ клиента для лимитера: RemoteAddr,
// либо первый X-Forwarded-For, если сервис стоит за доверенным прокси (trustForwardedFor)
func ClientKey(trustForwardedFor bool) func(*http.Request) string {
	return func(r *http.Request) string {
		if trustForwardedFor {
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				parts := strings.Split(forwarded, ",")
				if first := strings.TrimSpace(parts[0]); first != "" {
					return first
				}
			}
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil {
			return host
		}
		return r.RemoteAddr
	}
}
