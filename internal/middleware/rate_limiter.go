package middleware

// Sliding-window request limits per client IP, kept in process memory. Each
// limiter owns its map and purges idle entries on a timer so one-off IPs do
// not accumulate.

import (
	"net/http"
	"sync"
	"time"

	"github.com/Omc12/StockSimple/internal/apierror"

	"github.com/gin-gonic/gin"
)

const purgeInterval = 5 * time.Minute

type clientWindow struct {
	count     int
	windowEnd time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
	go l.purgeLoop()
	return l
}

// allow counts one request and reports whether it fits in the current window.
// The second return is when the window resets, for the Retry-After header.
func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cw, ok := l.clients[ip]
	if !ok || now.After(cw.windowEnd) {
		cw = &clientWindow{windowEnd: now.Add(l.window)}
		l.clients[ip] = cw
	}
	cw.count++
	return cw.count <= l.limit, cw.windowEnd
}

func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, cw := range l.clients {
			if now.After(cw.windowEnd) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimiter caps requests per IP across the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window)
	return func(c *gin.Context) {
		ok, resetAt := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", resetAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests, retry shortly"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter applies a much tighter cap to the login endpoint, which is
// the one route worth brute-forcing.
func LoginRateLimiter() gin.HandlerFunc {
	l := newIPLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, retry in 1 minute"))
			return
		}
		c.Next()
	}
}
