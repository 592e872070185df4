// Package limiter implements per-client request throttling for the
// verification endpoint using fixed time windows.
package limiter

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// clientWindow tracks the request count for one client within a window
type clientWindow struct {
	count int
}

// Limiter is a fixed-window counter keyed by client identifier.
// Expired windows are swept by the cache janitor, so the table stays
// bounded by the number of clients seen in the last two windows.
type Limiter struct {
	mu      sync.Mutex
	windows *gocache.Cache
	max     int
	window  time.Duration
}

// New creates a limiter allowing max requests per key per window
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return &Limiter{
		windows: gocache.New(window, 2*window),
		max:     max,
		window:  window,
	}
}

// Allow records a request for key and reports whether it is within the
// window cap. The first request after a window expires starts a fresh
// window with count 1.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.windows.Get(key); found {
		w := v.(*clientWindow)
		w.count++
		return w.count <= l.max
	}

	l.windows.Set(key, &clientWindow{count: 1}, l.window)
	return true
}
