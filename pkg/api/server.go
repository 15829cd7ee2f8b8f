package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/units/pkg/observability"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
)

// Server exposes a registry and its definition store over HTTP.
type Server struct {
	reg       *registry.Registry
	store     store.Store
	stats     *observability.Stats
	logger    *log.Logger
	protected func(symbol string) bool

	// mu serializes definition and alias writes across registry and store.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists definitions created through the API. Without one,
// definitions live only as long as the process.
func WithStore(s store.Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) {
		if l != nil {
			srv.logger = l
		}
	}
}

// WithStats exposes the given counters at /v1/stats.
func WithStats(st *observability.Stats) Option {
	return func(srv *Server) { srv.stats = st }
}

// WithProtected marks symbols that cannot be deleted, typically the
// builtin unit table.
func WithProtected(fn func(symbol string) bool) Option {
	return func(srv *Server) { srv.protected = fn }
}

// New creates a server for reg.
func New(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		reg:       reg,
		store:     store.NewMemoryStore(),
		logger:    log.New(io.Discard),
		protected: func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/units", func(r chi.Router) {
			r.Get("/", s.handleListUnits)
			r.Post("/", s.handleDefineUnit)
			r.Get("/{symbol}", s.handleGetUnit)
			r.Delete("/{symbol}", s.handleDeleteUnit)
			r.Put("/{symbol}/aliases", s.handleSetAliases)
		})
		r.Get("/parse", s.handleParse)
		r.Post("/convert", s.handleConvert)
		r.Get("/stats", s.handleStats)
	})

	r.NotFound(notFoundRoute)
	r.MethodNotAllowed(methodNotAllowed)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
