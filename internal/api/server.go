// Package api exposes the match feed over HTTP.
//
// Routes:
//
//	GET     /matches/   the feed payload; ?refresh=1 skips the cache, ?team=,
//	                    ?competition=, ?channel= and ?day= narrow the result
//	GET     /matches.ics the same matches as an iCalendar feed
//	GET     /health/    {"status":"ok"}
//	OPTIONS both        204 with CORS headers
//	GET     /metrics    Prometheus metrics
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/qualcanal/qualcanal/internal/feed"
	"github.com/qualcanal/qualcanal/internal/logger"
)

// Feed is the part of feed.Service the handlers use.
type Feed interface {
	Matches(ctx context.Context, refresh bool) (*feed.Payload, error)
}

// Config controls the HTTP surface.
type Config struct {
	Listen      string
	AllowOrigin string
	// RateLimit requests per RateWindow per client IP; 0 disables limiting.
	RateLimit  int
	RateWindow time.Duration
}

// Server serves the feed.
type Server struct {
	cfg    Config
	feed   Feed
	router chi.Router
	log    zerolog.Logger
}

// New builds the router for f.
func New(cfg Config, f Feed) *Server {
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}

	s := &Server{
		cfg:  cfg,
		feed: f,
		log:  logger.WithComponent("api"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimw.Recoverer)
	r.Use(AccessLog(s.log))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(CORS(s.cfg.AllowOrigin))
		if s.cfg.RateLimit > 0 {
			r.Use(RateLimit(s.cfg.RateLimit, s.cfg.RateWindow))
		}

		for _, path := range []string{"/matches/", "/matches"} {
			r.Get(path, s.handleMatches)
			r.Options(path, handleOptions)
		}
		r.Get("/matches.ics", s.handleCalendar)
		for _, path := range []string{"/health/", "/health"} {
			r.Get(path, handleHealth)
			r.Options(path, handleOptions)
		}
	})

	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Listen).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
