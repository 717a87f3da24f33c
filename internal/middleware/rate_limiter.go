package middleware

import (
	"net/http"
	"sync"
	"time"

	"salonpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ─────────────────────────────────────────────────────

type windowEntry struct {
	count     int
	windowEnd time.Time
}

// windowLimiter counts hits per key within a fixed window.
type windowLimiter struct {
	name   string
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*windowEntry
}

const purgeInterval = 5 * time.Minute

func newWindowLimiter(name string, limit int, window time.Duration) *windowLimiter {
	l := &windowLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
	go l.purgeLoop()
	return l
}

// allow records a hit and reports whether key is still under the limit,
// along with the end of its current window.
func (l *windowLimiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// purgeLoop drops expired keys so IPs that never return do not accumulate.
func (l *windowLimiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for range ticker.C {
		if n := l.purge(); n > 0 {
			log.Debug().Str("limiter", l.name).Int("purged", n).Msg("rate limiter entries purged")
		}
	}
}

func (l *windowLimiter) purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	purged := 0
	for k, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, k)
			purged++
		}
	}
	return purged
}

// ── Middleware ───────────────────────────────────────────────────────────────

// LoginRateLimiter throttles PIN attempts: with 10 000 possible PINs, 10 tries
// per minute per client keeps guessing impractical.
func LoginRateLimiter() gin.HandlerFunc {
	return limitBy(newWindowLimiter("login", 10, time.Minute),
		"Demasiados intentos de PIN. Intente en 1 minuto.")
}

// RateLimiter is the general per-IP API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return limitBy(newWindowLimiter("api", limit, window),
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
}

func limitBy(l *windowLimiter, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, until := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", until.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}
