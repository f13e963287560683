// Package server exposes post formatting and the spoiler registry over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/postfmt/format"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64

	// Style and Width are used for ?format=ansi responses.
	Style string
	Width int
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		MaxBodyBytes: 1 << 20,
		Style:        "dark",
		Width:        80,
	}
}

// Server is the HTTP API for postfmt.
type Server struct {
	router    chi.Router
	formatter *format.Formatter
	log       *log.Logger
	cfg       Config
}

// New creates and configures the HTTP server. Spoiler state is read from and
// written to the formatter's registry.
func New(f *format.Formatter, logger *log.Logger, cfg Config) *Server {
	s := &Server{
		formatter: f,
		log:       logger,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(LimitBody(s.cfg.MaxBodyBytes))

		r.Post("/render", s.handleRender)
		r.Post("/links", s.handleLinks)
	})

	r.Route("/posts/{post}/spoilers", func(r chi.Router) {
		r.Get("/", s.handleSpoilers)
		r.Post("/{index}/toggle", s.handleToggle)
		r.Post("/reveal", s.handleReveal)
		r.Post("/hide", s.handleHide)
	})
	r.Delete("/spoilers", s.handleClear)

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("starting server", "addr", s.cfg.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
