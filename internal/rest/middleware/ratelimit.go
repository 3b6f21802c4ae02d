package middleware

import (
	"time"

	"github.com/flexprice/rvpark/internal/config"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/gin-gonic/gin"
	goCache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's limiter survives without requests
const limiterIdleTTL = 15 * time.Minute

// LoginRateLimit throttles login attempts per client IP to
// rate_limit.login_rps with bursts of rate_limit.login_burst.
func LoginRateLimit(cfg *config.Configuration) gin.HandlerFunc {
	limit := rate.Limit(cfg.RateLimit.LoginRPS)
	burst := cfg.RateLimit.LoginBurst
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}

	limiters := goCache.New(limiterIdleTTL, limiterIdleTTL)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		var limiter *rate.Limiter
		if v, ok := limiters.Get(ip); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(limit, burst)
			// another request may have raced us here
			if err := limiters.Add(ip, limiter, goCache.DefaultExpiration); err != nil {
				if v, ok := limiters.Get(ip); ok {
					limiter = v.(*rate.Limiter)
				}
			}
		}
		// sliding expiry, an active client keeps its bucket
		limiters.SetDefault(ip, limiter)

		if !limiter.Allow() {
			abortWithError(c, ierr.NewErrorf("login rate limit exceeded for %s", ip).
				WithHint("Too many login attempts, try again later").
				Mark(ierr.ErrTooManyRequests))
			return
		}
		c.Next()
	}
}
