package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dtroode/autocompany-server/internal/apierrors"
)

const limiterIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a token bucket per client IP.
type RateLimit struct {
	mu          sync.Mutex
	clients     map[string]*clientLimiter
	limit       rate.Limit
	burst       int
	lastCleanup time.Time
	now         func() time.Time
}

// NewRateLimit allows rps requests per second per client with the given burst.
func NewRateLimit(rps float64, burst int) *RateLimit {
	return &RateLimit{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (m *RateLimit) Handle(c *gin.Context) {
	if !m.allow(c.ClientIP()) {
		c.Header("Retry-After", "1")
		abortWithError(c, apierrors.NewErrTooManyRequests())
		return
	}
	c.Next()
}

func (m *RateLimit) allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastCleanup) > limiterIdleTimeout {
		for k, cl := range m.clients {
			if now.Sub(cl.lastSeen) > limiterIdleTimeout {
				delete(m.clients, k)
			}
		}
		m.lastCleanup = now
	}

	cl, ok := m.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.clients[key] = cl
	}
	cl.lastSeen = now

	return cl.limiter.AllowN(now, 1)
}

func (m *RateLimit) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
