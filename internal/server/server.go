// Package server exposes the bake and render pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                       build info
//	POST   /v1/bake                       bake an inline document
//	POST   /v1/render                     bake and render an inline document
//	POST   /v1/layouts                    store a document
//	GET    /v1/layouts                    list stored documents, newest first
//	GET    /v1/layouts/{id}               fetch a stored document
//	DELETE /v1/layouts/{id}               delete a stored document
//	GET    /v1/layouts/{id}/bake?size=    bake a stored document
//	GET    /v1/layouts/{id}/render?format=&size=&theme=&labels=
//
// Every request is a fresh bake (or a cache hit). Nothing is patched in
// place between requests.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boxbake/pkg/pipeline"
	"github.com/matzehuels/boxbake/pkg/store"
)

const (
	// DefaultAddr is the listen address used when Options.Addr is empty.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies.
	DefaultMaxBodyBytes = 4 << 20

	// DefaultRequestTimeout bounds the handling of one request.
	DefaultRequestTimeout = 30 * time.Second

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr           string
	Runner         *pipeline.Runner
	Store          store.Store
	Logger         *log.Logger
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.Runner == nil {
		o.Runner = pipeline.NewRunner(nil, nil, o.Logger)
	}
	if o.Store == nil {
		o.Store = store.NewMemoryStore()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
}

// Server is the HTTP API. It is safe for concurrent use.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	opts.setDefaults()
	s := &Server{opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/bake", s.handleBake)
		r.Post("/render", s.handleRender)
		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", s.handleCreateLayout)
			r.Get("/", s.handleListLayouts)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetLayout)
				r.Delete("/", s.handleDeleteLayout)
				r.Get("/bake", s.handleBakeLayout)
				r.Get("/render", s.handleRenderLayout)
			})
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFoundErr(r.URL.Path))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
