// Package cache provides a small in-process LRU cache with expiry and a
// sweeper that drops expired entries in the background.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cache is the read/write surface handlers depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop their expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Sweeper periodically cleans every registered cache.
type Sweeper struct {
	mu     sync.Mutex
	caches []Cleaner
}

func NewSweeper() *Sweeper {
	return &Sweeper{}
}

// Register adds c to the set of swept caches.
func (s *Sweeper) Register(c Cleaner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caches = append(s.caches, c)
}

// Sweep cleans all registered caches once and returns how many entries
// were dropped.
func (s *Sweeper) Sweep() int {
	s.mu.Lock()
	caches := append([]Cleaner(nil), s.caches...)
	s.mu.Unlock()

	total := 0
	for _, c := range caches {
		total += c.CleanExpired()
	}
	return total
}

// Run sweeps every interval until ctx is done. It always returns nil so it
// can be run directly in an errgroup.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.DebugContext(ctx, "Expired cache entries removed", "count", n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
