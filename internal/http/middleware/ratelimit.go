package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const (
	defaultMaxBuckets = 10000
	bucketIdleTTL     = 10 * time.Minute
)

var rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "http_rate_limited_total",
	Help: "Total number of requests rejected by the rate limiter.",
})

func init() {
	prometheus.MustRegister(rateLimited)
}

// RateLimiter is a per-client token bucket limiter. Buckets live in an
// expiring LRU so idle clients are forgotten and memory stays bounded.
// It is process-local.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn func(*gin.Context) string

	mu      sync.Mutex // serializes get-or-create
	buckets *expirable.LRU[string, *rate.Limiter]
}

// NewRateLimiter builds a limiter refilling rps tokens per second with the
// given burst (coerced to at least 1). A nil keyFn keys by ClientID.
func NewRateLimiter(rps float64, burst int, keyFn func(*gin.Context) string) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if keyFn == nil {
		keyFn = ClientID
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: expirable.NewLRU[string, *rate.Limiter](defaultMaxBuckets, nil, bucketIdleTTL),
	}
}

// limiter returns the bucket for key, creating it on first use. Lookups
// refresh the entry's recency but not its expiry; an expired bucket simply
// starts full again.
func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if lim, ok := rl.buckets.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.buckets.Add(key, lim)
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked the request as a
// replay, which is served without consuming a token.
func IsRateBypass(c *gin.Context) bool {
	return c.GetBool(ctxKeyRateBypass)
}

// Handler rejects over-limit requests with 429 and a Retry-After hint.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}
		res := rl.limiter(rl.keyFn(c)).Reserve()
		delay := res.Delay()
		if delay == 0 {
			c.Next()
			return
		}
		res.Cancel()
		rateLimited.Inc()
		c.Header("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": GetRequestID(c),
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}
