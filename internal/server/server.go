package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/languages"
	"github.com/michaelbrown/codeproxy/internal/storage"
)

// Options configures a Server.
type Options struct {
	Compiler *compile.Service
	Catalog  *languages.Catalog
	// Store records submissions. Nil disables history.
	Store storage.Store
	// StaticDir is served at / when set.
	StaticDir string
	// MaxBodyBytes caps a compile request body or websocket message.
	// Zero or less means 100 KiB.
	MaxBodyBytes int64
	Logger       *zap.Logger
}

const defaultMaxBodyBytes = 100 << 10

// Server is the HTTP server for the compile proxy.
type Server struct {
	compiler  *compile.Service
	catalog   *languages.Catalog
	store     storage.Store
	staticDir string
	maxBody   int64
	logger    *zap.Logger
	router    chi.Router
	http      *http.Server
}

// New creates a new Server.
func New(opts Options) *Server {
	s := &Server{
		compiler:  opts.Compiler,
		catalog:   opts.Catalog,
		store:     opts.Store,
		staticDir: opts.StaticDir,
		maxBody:   opts.MaxBodyBytes,
		logger:    opts.Logger,
		router:    chi.NewRouter(),
	}
	if s.catalog == nil {
		s.catalog = languages.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBodyBytes
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// WebSocket (no JSON content-type)
		r.Get("/compile/ws", s.handleCompileWS)

		r.Group(func(r chi.Router) {
			r.Use(jsonContentType)
			r.Use(recoverJSON(s.logger))

			r.Post("/compile", s.handleCompile)
			r.Get("/languages", s.handleListLanguages)
			r.Get("/health", s.handleHealth)

			// History
			r.Get("/submissions", s.handleListSubmissions)
			r.Get("/submissions/{id}", s.handleGetSubmission)
		})
	})

	if s.staticDir != "" {
		r.Handle("/*", staticHandler(s.staticDir))
	}
}

// jsonContentType sets Content-Type to application/json for API routes.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server starting", zap.String("url", "http://localhost"+addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.http.Shutdown(shutdownCtx)
}
