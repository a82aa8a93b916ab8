// Package http serves the expense JSON API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/cache"
	"tally/internal/kv"
	"tally/internal/middleware/ratelimit"
	"tally/internal/middleware/security"
	"tally/internal/middleware/trace"
	"tally/internal/services"
)

// Config holds server tuning knobs.
type Config struct {
	Addr              string
	RequestsPerMinute int
	CacheTTL          time.Duration
	CacheSize         int
	TrustedProxies    []string
}

type Server struct {
	http.Server
	svc     *services.ExpenseService
	pinger  kv.Pinger
	logger  *slog.Logger
	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	// Overviews keyed by store version and selection; any write, from this
	// process or another, moves the version, so entries never go stale.
	overviewCache *cache.LRUCache[services.Overview]
	sweeper       *cache.Sweeper
}

// NewServer wires routes and middleware. pinger may be nil, in which case
// readiness always succeeds.
func NewServer(cfg Config, svc *services.ExpenseService, pinger kv.Pinger, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 100
	}

	resolver, err := security.NewIPResolver(cfg.TrustedProxies...)
	if err != nil {
		return nil, fmt.Errorf("configure client ip resolver: %w", err)
	}

	s := &Server{
		svc:           svc,
		pinger:        pinger,
		logger:        logger,
		limiter:       ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RequestsPerMinute}),
		tracer:        trace.NewMiddleware(logger, resolver.ClientIP),
		overviewCache: cache.NewLRUCache[services.Overview](cfg.CacheSize, cfg.CacheTTL),
		sweeper:       cache.NewSweeper(),
	}
	s.sweeper.Register(s.overviewCache)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/categories", handleCategories)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/chart", s.handleChart)
	mux.HandleFunc("GET /api/months", s.handleMonths)

	limited := s.limiter.Middleware(resolver.ClientIP, func(w http.ResponseWriter, r *http.Request) {
		slog.WarnContext(r.Context(), "Rate limit exceeded", "client_ip", resolver.ClientIP(r))
		TooManyRequestsError().Write(w)
	})(mux)
	secured := security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(limited)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           s.tracer.Middleware(secured),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}
	return s, nil
}

// RunMaintenance sweeps expired cache entries and stale rate-limit clients
// until ctx is done.
func (s *Server) RunMaintenance(ctx context.Context, interval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.sweeper.Run(ctx, interval) })
	g.Go(func() error { return s.limiter.Run(ctx, interval) })
	return g.Wait()
}

// overview returns the cached overview for sel at the current store version,
// computing it on a miss.
func (s *Server) overview(ctx context.Context, sel services.Selection) (services.Overview, error) {
	sel, err := services.NormalizeSelection(sel)
	if err != nil {
		return services.Overview{}, err
	}

	version, err := s.svc.Version(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Serving overview uncached", "error", err)
		return s.svc.Overview(ctx, sel)
	}
	key := fmt.Sprintf("%s|%s|%s", version, sel.Category, sel.YearMonth)
	if ov, ok := s.overviewCache.Get(key); ok {
		return ov, nil
	}

	ov, err := s.svc.Overview(ctx, sel)
	if err != nil {
		return services.Overview{}, err
	}
	s.overviewCache.Set(key, ov)
	return ov, nil
}
