// Package ratelimit implements a per-client fixed-window request limiter.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Limiter counts requests per client within one-minute windows.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
	rejects atomic.Int64
}

type window struct {
	start    time.Time
	requests int
}

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMinute int
	// Window defaults to one minute.
	Window time.Duration
}

func DefaultConfig() Config {
	return Config{RequestsPerMinute: 30, Window: time.Minute}
}

func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &Limiter{
		clients: make(map[string]*window),
		limit:   cfg.RequestsPerMinute,
		window:  cfg.Window,
		now:     time.Now,
	}
}

// Allow reports whether another request from client fits in its window.
func (l *Limiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[client]
	if !ok || now.Sub(w.start) >= l.window {
		l.clients[client] = &window{start: now, requests: 1}
		return true
	}
	if w.requests >= l.limit {
		l.rejects.Add(1)
		return false
	}
	w.requests++
	return true
}

// RetryAfter returns how long client must wait for its window to reset.
func (l *Limiter) RetryAfter(client string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[client]
	if !ok {
		return 0
	}
	if d := w.start.Add(l.window).Sub(l.now()); d > 0 {
		return d
	}
	return 0
}

// Prune drops clients whose window ended more than one window ago.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-2 * l.window)
	removed := 0
	for client, w := range l.clients {
		if w.start.Before(cutoff) {
			delete(l.clients, client)
			removed++
		}
	}
	return removed
}

// Run prunes stale clients every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Prune()
		case <-ctx.Done():
			return nil
		}
	}
}

// ActiveClients returns the number of tracked clients.
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Rejected returns how many requests were refused so far.
func (l *Limiter) Rejected() int64 {
	return l.rejects.Load()
}

// Middleware limits mutating requests (anything but GET, HEAD and OPTIONS).
// onLimit writes the refusal; when nil a plain 429 is sent.
func (l *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			client := extractIP(r)
			if !l.Allow(client) {
				secs := int(l.RetryAfter(client).Round(time.Second) / time.Second)
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				if onLimit != nil {
					onLimit(w, r)
				} else {
					http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
