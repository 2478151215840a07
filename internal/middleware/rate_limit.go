// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client IP. Buckets for IPs idle
// longer than three minutes are dropped by a background sweep.
type RateLimiter struct {
	mtx     sync.Mutex
	clients map[string]*client
	rate    rate.Limit
	burst   int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		rate:    r,
		burst:   b,
	}

	go rl.sweep()

	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mtx.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.lastSeen) > 3*time.Minute {
				delete(rl.clients, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()

	return c.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Shared limiter tiers. Auth endpoints get the tightest budget; purchase
// and download issuance sit between auth and general traffic.
var (
	generalLimiter  = NewRateLimiter(rate.Every(time.Second), 10)
	authLimiter     = NewRateLimiter(rate.Every(time.Minute), 5)
	purchaseLimiter = NewRateLimiter(rate.Every(time.Minute), 20)
	downloadLimiter = NewRateLimiter(rate.Every(time.Second), 5)
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.Middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.Middleware()
}

func PurchaseRateLimit() gin.HandlerFunc {
	return purchaseLimiter.Middleware()
}

func DownloadRateLimit() gin.HandlerFunc {
	return downloadLimiter.Middleware()
}
