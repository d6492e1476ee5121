package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/murkotick/financial-catalog-service/internal/pkg/clock"
	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// Limiters keeps one token bucket per client key. Buckets idle for longer
// than idleTTL are dropped by Cleanup.
type Limiters struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	clock   clock.Clock
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewLimiters(rps float64, burst int, idleTTL time.Duration, clk clock.Clock) *Limiters {
	if burst <= 0 {
		burst = int(math.Ceil(rps))
	}
	return &Limiters{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		clock:   clk,
	}
}

func (l *Limiters) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[key]; ok {
		e.lastSeen = now
		return e.lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// Allow takes one token from the bucket of key.
func (l *Limiters) Allow(key string) bool {
	now := l.clock.Now()
	return l.get(key, now).AllowN(now, 1)
}

// Cleanup drops idle buckets and reports how many were removed.
func (l *Limiters) Cleanup() int {
	cutoff := l.clock.Now().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, k)
			n++
		}
	}
	return n
}

func (l *Limiters) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RunJanitor calls Cleanup every interval until ctx is done.
func (l *Limiters) RunJanitor(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			l.Cleanup()
		}
	}
}

// RateLimit rejects requests over the client's budget with 429. Clients are
// keyed by IP.
func RateLimit(l *Limiters) gin.HandlerFunc {
	retryAfter := "1"
	if l.rps > 0 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / float64(l.rps))))
	}
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !l.Allow(key) {
			logging.Warn("rate limit exceeded", "client_ip", key, "path", c.Request.URL.Path)
			c.Header("Retry-After", retryAfter)
			abort(c, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}
