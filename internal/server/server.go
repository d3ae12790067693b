// Package server is the HTTP presentation layer: the dashboard page and a
// small JSON API over the aggregation pipeline.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"qbr-dash/internal/cache"
	"qbr-dash/internal/qbr"
)

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

// Server owns the read-only dataset and the optional summary cache.
type Server struct {
	data  *qbr.Dataset
	cache cache.Cache
	log   *zap.Logger
	opts  Options
}

// New creates a Server. A nil cache disables caching and a nil logger
// discards logs.
func New(data *qbr.Dataset, c cache.Cache, log *zap.Logger, opts Options) *Server {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		data:  data,
		cache: c,
		log:   log,
		opts:  opts,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.Timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.dashboardHandler)
	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/keys", s.keysHandler)
		r.Get("/summary", s.summaryHandler)
		r.Get("/chart", s.chartHandler)
	})

	return r
}

// summaries returns the per-year summaries for key, consulting the cache
// first. Cache failures are logged and the result is recomputed.
func (s *Server) summaries(ctx context.Context, key string, mode qbr.Mode) ([]qbr.Summary, error) {
	if !mode.Valid() {
		return qbr.Summarize(s.data, key, mode)
	}
	// Only keys present in the dataset reach the cache, so arbitrary
	// query strings cannot grow it.
	if key == "" || !s.data.HasKey(key, mode) {
		return []qbr.Summary{}, nil
	}

	ck := cache.Key(mode, key)
	rows, ok, err := s.cache.Get(ctx, ck)
	switch {
	case err != nil:
		cacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("summary cache read failed", zap.String("key", ck), zap.Error(err))
	case ok:
		cacheLookups.WithLabelValues("hit").Inc()
		return rows, nil
	default:
		cacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	rows, err = qbr.Summarize(s.data, key, mode)
	summarizeDuration.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, ck, rows); err != nil {
		s.log.Warn("summary cache write failed", zap.String("key", ck), zap.Error(err))
	}
	return rows, nil
}
