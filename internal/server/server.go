package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/raaihank/owoify/internal/config"
	"github.com/raaihank/owoify/internal/logger"
	"github.com/raaihank/owoify/internal/ratelimit"
	"github.com/raaihank/owoify/internal/web"
	"github.com/raaihank/owoify/pkg/owoify"
	"go.uber.org/zap"
)

// Version is reported by /info
var Version = "0.1.0"

// Server exposes the owoifier over HTTP and WebSocket
type Server struct {
	config   *config.Config
	logger   *logger.Logger
	owoifier *owoify.Owoifier
	limiter  *ratelimit.RateLimiter
	router   *mux.Router
	server   *http.Server
	ctx      context.Context
	cancel   context.CancelFunc

	mu           sync.RWMutex
	defaultLevel owoify.Level
}

// New creates a new server instance
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	owoifier := owoify.New(
		owoify.WithWorkers(cfg.Owoify.Workers),
		owoify.WithLogger(log.WithComponent("owoify").Logger),
	)

	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		ctx:          ctx,
		cancel:       cancel,
		config:       cfg,
		logger:       log.WithComponent("server"),
		owoifier:     owoifier,
		limiter:      ratelimit.New(cfg.RateLimit),
		router:       mux.NewRouter(),
		defaultLevel: cfg.DefaultLevel(),
	}

	server.setupRoutes()

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	s.router.HandleFunc("/", web.ServePlayground).Methods(http.MethodGet)

	api := s.router.NewRoute().Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/owoify", s.handleOwoify).Methods(http.MethodPost)

	if s.config.WebSocket.Enabled {
		api.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket).Methods(http.MethodGet)
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting owoify server",
		zap.Int("port", s.config.Server.Port),
		zap.Stringer("default_level", s.DefaultLevel()),
		zap.Int("workers", s.config.Owoify.Workers),
		zap.Bool("rate_limit", s.config.RateLimit.Enabled),
	)

	if s.config.RateLimit.Enabled {
		s.limiter.StartCleanup(s.ctx, s.config.RateLimit.IdleTTL)
	}

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping owoify server")
	s.cancel()
	return s.server.Shutdown(ctx)
}

// DefaultLevel returns the level used when a request does not name one
func (s *Server) DefaultLevel() owoify.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultLevel
}

// UpdateConfig applies the settings that can change without a restart
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.mu.Lock()
	previous := s.defaultLevel
	s.defaultLevel = cfg.DefaultLevel()
	s.mu.Unlock()

	s.logger.Info("Configuration reloaded",
		zap.Stringer("previous_level", previous),
		zap.Stringer("default_level", cfg.DefaultLevel()),
	)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Name:          "owoify",
		Version:       Version,
		Levels:        owoify.Levels(),
		DefaultLevel:  s.DefaultLevel(),
		Faces:         len(owoify.Faces),
		Workers:       s.config.Owoify.Workers,
		WebSocket:     s.config.WebSocket.Enabled,
		MaxInputBytes: s.config.Owoify.MaxInputBytes,
	})
}
