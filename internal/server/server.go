// Package server provides the local HTTP API for Gluco.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/gluco/internal/app"
	"github.com/hyperjump/gluco/internal/config"
	"github.com/hyperjump/gluco/pkg/utils"
	"go.uber.org/zap"
)

// ContextSource yields the application context to serve each request from.
// *app.Holder satisfies it.
type ContextSource interface {
	Current() *app.Context
}

// Server is the HTTP server for the Gluco API.
type Server struct {
	source  ContextSource
	config  *config.ServerConfig
	version string
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server over source.
func NewServer(source ContextSource, cfg *config.ServerConfig, version string, logger *zap.Logger) *Server {
	return &Server{
		source:  source,
		config:  cfg,
		version: version,
		logger:  utils.OrNop(logger),
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleIndex)
	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/predict", s.handlePredict)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
