// Package api serves the layout pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/layout      lay out a scene document, returns the geometry as JSON
//	POST /v1/diagram     lay out a scene and render its tree (DOT or SVG)
//	POST /v1/text-block  estimate the box needed for lines of text
//	GET  /v1/widgets     list the item types the server can build
//	GET  /healthz        liveness check
//	GET  /version        build information
//
// Scene documents are sent either as a JSON object in "document" or as
// source text in "source" with its "format" (toml, yaml or json). Errors are
// returned as {"error": {"code": ..., "message": ...}} with a status derived
// from the error code.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "api:"), logger)
//	srv := api.NewServer(runner, api.Config{})
//	err := srv.ListenAndServe(ctx, ":8080")
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/layoutkit/pkg/layout"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
	"github.com/matzehuels/layoutkit/pkg/scene"
	"github.com/matzehuels/layoutkit/pkg/widgets"
)

// Defaults for Config.
const (
	DefaultMaxBodyBytes   = 1 << 20
	DefaultRequestTimeout = 30 * time.Second
	DefaultAddr           = ":8080"
)

// Config configures a Server.
type Config struct {
	// Font and FontSize measure text items. Clients cannot choose font
	// files; they would name paths on the server.
	Font     string
	FontSize float64

	// Metrics are the defaults for /v1/text-block.
	Metrics layout.TextMetrics

	// MaxBodyBytes limits request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// RequestTimeout bounds each request. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Registry resolves item types. Nil means widgets.NewRegistry().
	Registry *scene.Registry
}

func (c *Config) setDefaults() {
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.Registry == nil {
		c.Registry = widgets.NewRegistry()
	}
}

// Server is the HTTP front end of a pipeline Runner.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server around runner.
func NewServer(runner *pipeline.Runner, cfg Config) *Server {
	cfg.setDefaults()
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: runner.Logger.WithPrefix("api"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/layout", s.handleLayout)
		r.Post("/diagram", s.handleDiagram)
		r.Post("/text-block", s.handleTextBlock)
		r.Get("/widgets", s.handleWidgets)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
