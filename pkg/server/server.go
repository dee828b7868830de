// Package server exposes the generator and exporters over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness and build version
//	GET  /families            the family catalogue with parameter ranges
//	GET  /generate/{family}   generate, style and render in one request
//	POST /graphs              upload a .grphc or JSON graph, returns an id
//	GET  /graphs/{id}         render an uploaded graph
//	GET  /label?text=         parse label markup into spans and HTML
//	GET  /colour?value=       resolve a colour and its TikZ name
//
// Rendering endpoints take a "format" query parameter naming any
// [render.Format]; the response carries the format's content type. Errors are
// JSON objects {"code": ..., "error": ...} with a status derived from the
// error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/observability"
	"github.com/matzehuels/graphic/pkg/pipeline"
	"github.com/matzehuels/graphic/pkg/render"
	"github.com/matzehuels/graphic/pkg/style"
)

// MaxUploadBytes bounds POST /graphs bodies.
const MaxUploadBytes = 4 << 20

// DefaultFormat is rendered when a request names none.
const DefaultFormat = render.FormatSVG

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	style  style.Params
	export config.ExportConfig
	logger *log.Logger
	router chi.Router
}

// New builds a server. cfg supplies the default style and export settings
// that query parameters override.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		style:  cfg.StyleParams(),
		export: cfg.ExportConfig(),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/families", s.handleFamilies)
	r.Get("/generate/{family}", s.handleGenerate)
	r.Route("/graphs", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/{id}", s.handleStored)
	})
	r.Get("/label", s.handleLabel)
	r.Get("/colour", s.handleColour)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// observe reports each request to the server hooks with its route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		observability.Server().OnRequest(r.Context(), r.Method, route, ww.Status(), time.Since(start))
	})
}
