package httpHandler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"waterbill-server/auth"
)

// Idle limiter entries are swept once the map grows past maxLimiterEntries,
// so a long-running process does not keep one limiter per client address
// ever seen.
const (
	maxLimiterEntries = 1024
	limiterIdleAfter  = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Middleware struct {
	tokens       *auth.TokenManager
	rateLimiters map[string]*limiterEntry
	mu           sync.Mutex
}

func NewMiddleware(tokens *auth.TokenManager) *Middleware {
	return &Middleware{
		tokens:       tokens,
		rateLimiters: make(map[string]*limiterEntry),
	}
}

// AuthRequired validates the Bearer token and stores the user id on the
// request context under "user_id".
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := m.tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// RateLimitPerIP throttles unauthenticated endpoints (OTP issuance) by
// client address.
func (m *Middleware) RateLimitPerIP(r rate.Limit, b int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		now := time.Now()

		m.mu.Lock()
		entry, exists := m.rateLimiters[key]
		if !exists {
			if len(m.rateLimiters) >= maxLimiterEntries {
				m.sweepIdleLocked(now)
			}
			entry = &limiterEntry{limiter: rate.NewLimiter(r, b)}
			m.rateLimiters[key] = entry
		}
		entry.lastSeen = now
		m.mu.Unlock()

		if !entry.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests, try again later"})
			return
		}

		c.Next()
	}
}

func (m *Middleware) sweepIdleLocked(now time.Time) {
	for key, entry := range m.rateLimiters {
		if now.Sub(entry.lastSeen) > limiterIdleAfter {
			delete(m.rateLimiters, key)
		}
	}
}
