package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskplatform/task-platform-api/internal/response"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket allowing max requests per
// window. Health checks are exempt.
func RateLimit(window time.Duration, max int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)
	limit := rate.Every(window / time.Duration(max))

	// Drop idle buckets so the map does not grow with every client ever
	// seen.
	go func() {
		for range time.Tick(window) {
			mu.Lock()
			for ip, cl := range clients {
				if time.Since(cl.lastSeen) > 2*window {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		ip := c.ClientIP()
		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(limit, max)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		allowed := cl.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.JSON(http.StatusTooManyRequests, response.Envelope{
				Success: false,
				Message: "Too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
