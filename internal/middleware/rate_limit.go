package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"client_tracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const sweepThreshold = 10000

// clientWindow is one fixed window for one client. Every event is charged at
// the window start, so the bucket never refills before the window ends.
type clientWindow struct {
	limiter *rate.Limiter
	start   time.Time
}

// RateLimiter caps requests per client IP in fixed windows.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*clientWindow
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewRateLimiter allows max requests per client in every window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*clientWindow),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// allow records one request for key and reports whether it fits in the current window.
func (rl *RateLimiter) allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.start.Add(rl.window)) {
		if len(rl.windows) >= sweepThreshold {
			rl.sweep(now)
		}
		w = &clientWindow{limiter: rate.NewLimiter(rate.Every(rl.window), rl.max), start: now}
		rl.windows[key] = w
	}

	allowed := w.limiter.AllowN(w.start, 1)
	remaining := int(w.limiter.TokensAt(w.start))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, w.start.Add(rl.window)
}

// sweep drops windows that have already ended. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, w := range rl.windows {
		if !now.Before(w.start.Add(rl.window)) {
			delete(rl.windows, key)
		}
	}
}

// Handler returns the rate limiting middleware handler.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		allowed, remaining, resetAt := rl.allow(key)

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.max))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds()) + 1
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			utils.LogWarn("Rate limit exceeded", map[string]interface{}{"client_ip": key, "path": c.Request.URL.Path})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeTooManyRequests,
				"Too many requests from this IP, please try again later.", ""))
			return
		}
		c.Next()
	}
}
