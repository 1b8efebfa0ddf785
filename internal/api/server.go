// Package api configures and exposes the HTTP server of the email finder:
// server-rendered pages, the JSON API, metrics, docs and related middleware.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"emailfinder/internal/api/handler/pagehandler"
	"emailfinder/internal/api/handler/v1handler"
	"emailfinder/internal/api/session"
	"emailfinder/internal/config"
	"emailfinder/pkg/controller"
	"emailfinder/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.uber.org/zap"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its handlers.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// V1 configures the JSON API handlers.
	V1 v1handler.Options
	// Session configures the session cookie.
	Session session.Options

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedOrigin is sent as Access-Control-Allow-Origin.
	AllowedOrigin string
	// Profiling mounts pprof under /debug/pprof/.
	Profiling bool
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		V1:      v1handler.NewOptions(cfg),
		Session: session.NewOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedOrigin:     cfg.HTTP.AllowedOrigin,
		Profiling:         cfg.Environment == logger.DevelopmentEnvironment,
	}
}

type Deps struct {
	v1handler.Deps
}

// Server is an *http.Server plus the periodic housekeeping of its handlers.
type Server struct {
	*http.Server

	v1 *v1handler.Handler
}

// Sweep drops idle rate limit windows.
func (s *Server) Sweep() {
	s.v1.Sweep()
}

// NewServer wires up and returns a configured Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - the JSON API under /api/v1 and the pages under /
// - pprof endpoints for profiling when enabled
// The router is wrapped with logging, metrics, panic recovery, security
// headers and CORS middlewares.
func NewServer(deps Deps, opts Options) (*Server, error) {
	pages, err := pagehandler.New(pagehandler.Deps{Auth: deps.Auth, Workflows: deps.Workflows})
	if err != nil {
		return nil, fmt.Errorf("could not create page handler: %w", err)
	}
	v1 := v1handler.New(deps.Deps, opts.V1)

	r := chi.NewRouter()
	r.Use(controller.WithLogger,
		controller.WithMetrics,
		middleware.Recoverer,
		controller.WithSecurityHeaders,
		controller.CORS(opts.AllowedOrigin))

	// prometheus metrics server
	r.Handle(opts.MetricsPath, promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Backend.Health(r.Context()); err != nil {
			logger.Warn(r.Context(), "backend is not ready", zap.Error(err))
			http.Error(w, "backend unavailable", http.StatusServiceUnavailable)

			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	r.Handle("/v1/docs/*", v5emb.New(
		"Email Finder API",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	if opts.Profiling {
		r.Mount("/debug/pprof", controller.Pprof())
	}

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(opts.Session))

		r.Mount("/api/v1", v1.Routes())
		r.Mount("/", pages.Routes())
	})

	return &Server{
		Server: &http.Server{
			Addr:              opts.Addr,
			Handler:           r,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			MaxHeaderBytes:    opts.MaxHeaderBytes,
		},
		v1: v1,
	}, nil
}
