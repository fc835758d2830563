package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"botboard/internal/api/health"
	"botboard/internal/api/middleware"
	"botboard/internal/api/web"
	"botboard/internal/metrics"
	"botboard/pkg/errors"
	"botboard/pkg/logger"
)

// ServerConfig contains configuration for the HTTP server
type ServerConfig struct {
	Port        int
	ServiceName string
	Version     string
}

// Server wraps the HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures the HTTP server with all routes
func NewServer(
	cfg ServerConfig,
	handlers *web.Handlers,
	authMW *middleware.AuthMiddleware,
	healthHandler *health.Handler,
	log *logger.Logger,
) *Server {
	mux := http.NewServeMux()

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("/health", healthHandler.HandleHealth)
	mux.HandleFunc("/ready", healthHandler.HandleReadiness)
	mux.HandleFunc("/live", healthHandler.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Static assets
	mux.Handle("/static/", web.StaticHandler())

	// Auth screen and session endpoints
	route := func(pattern, name string, handler http.HandlerFunc, protected bool) {
		var h http.Handler = handler
		if protected {
			h = middleware.RequireUser(h)
		}
		mux.Handle(pattern, middleware.Metrics(name, authMW.Handler(h)))
	}

	route("GET /auth", "auth", handlers.HandleAuthPage, false)
	route("POST /auth/login", "login", handlers.HandleLogin, false)
	route("POST /auth/register", "register", handlers.HandleRegister, false)
	route("POST /auth/logout", "logout", handlers.HandleLogout, false)

	// Dashboard and bot CRUD
	route("GET /dashboard", "dashboard", handlers.HandleDashboard, true)
	route("GET /bot/new", "bot_form", handlers.HandleNewBotForm, true)
	route("POST /bot/new", "bot_create", handlers.HandleCreateBot, true)
	route("GET /bot/edit/{id}", "bot_form", handlers.HandleEditBotForm, true)
	route("POST /bot/edit/{id}", "bot_update", handlers.HandleUpdateBot, true)
	route("POST /bot/{id}/toggle", "bot_toggle", handlers.HandleToggleBot, true)
	route("POST /bot/{id}/delete", "bot_delete", handlers.HandleDeleteBot, true)

	// Asset search
	route("GET /asset-search", "asset_search", handlers.HandleAssetSearch, true)

	// Root redirects to the dashboard
	route("/", "index", handlers.HandleIndex, false)

	port := 8080
	if cfg.Port > 0 {
		port = cfg.Port
	}

	log.Infof("HTTP server configured on port %d", port)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until the server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within the context deadline
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("HTTP server stopped")
	return nil
}
