package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	defaultRateLimit   = 30
	defaultRateWindow  = time.Minute
	defaultRatePrefix  = "barber:rl"
	msgTooManyRequests = "Too many requests. Please try again later."
	msgLimiterDown     = "rate limiter unavailable"
)

// fixedWindowScript атомарно увеличивает счетчик окна и ставит TTL на первом запросе
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiterOptions настройки лимитера
type RateLimiterOptions struct {
	Limit  int
	Window time.Duration
	Prefix string
	// FailOpen пропускает запросы, если Redis недоступен
	FailOpen bool
	// TrustForwardedFor включается только за собственным прокси:
	// ключом становится последний адрес X-Forwarded-For, добавленный прокси
	TrustForwardedFor bool
}

// RateLimiter ограничивает частоту запросов с одного IP фиксированным окном в Redis
// Счетчик общий для всех экземпляров сервиса
type RateLimiter struct {
	rdb               redis.Scripter
	limit             int
	window            time.Duration
	prefix            string
	failOpen          bool
	trustForwardedFor bool
	logger            Logger
}

// NewRateLimiter создает лимитер
func NewRateLimiter(rdb redis.Scripter, opts RateLimiterOptions, logger Logger) *RateLimiter {
	if opts.Limit <= 0 {
		opts.Limit = defaultRateLimit
	}
	if opts.Window <= 0 {
		opts.Window = defaultRateWindow
	}
	opts.Prefix = strings.TrimSpace(opts.Prefix)
	if opts.Prefix == "" {
		opts.Prefix = defaultRatePrefix
	}

	return &RateLimiter{
		rdb:               rdb,
		limit:             opts.Limit,
		window:            opts.Window,
		prefix:            opts.Prefix,
		failOpen:          opts.FailOpen,
		trustForwardedFor: opts.TrustForwardedFor,
		logger:            logger,
	}
}

// Middleware возвращает middleware для gorilla/mux
func (rl *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.key(r)

			count, err := rl.incr(r.Context(), key)
			if err != nil {
				rl.logger.Warn("RateLimiter: redis error for key=%s: %v", key, err)
				if rl.failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterDown)
				return
			}

			remaining := int64(rl.limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(rl.limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) key(r *http.Request) string {
	return rl.prefix + ":" + clientIP(r, rl.trustForwardedFor)
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse counter %q: %w", v, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected script result type %T", res)
	}
}

// clientIP адрес клиента для ключа счетчика
// X-Forwarded-For задается клиентом, поэтому без доверенного прокси используется только RemoteAddr.
// За прокси берется последний элемент: его дописывает сам прокси, а не клиент
func clientIP(r *http.Request, trustForwardedFor bool) string {
	if trustForwardedFor {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			parts := strings.Split(fwd, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
