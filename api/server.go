package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/paw-chain/cpamm/app"
)

// Server is the read-only HTTP query server of a cpamm node
type Server struct {
	router     *gin.Engine
	handler    http.Handler
	node       *app.App
	config     Config
	logger     log.Logger
	httpServer *http.Server
}

// Config holds server configuration
type Config struct {
	Address         string
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Address:         "127.0.0.1:1318",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    20,
		RateLimitBurst:  40,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ConfigFromApp derives the server configuration from the node configuration.
func ConfigFromApp(cfg app.Config) Config {
	c := DefaultConfig()
	c.Address = cfg.APIAddress
	c.CORSOrigins = cfg.CORSOrigins
	c.RateLimitRPS = cfg.RateLimitRPS
	c.RateLimitBurst = cfg.RateLimitBurst
	return c
}

// NewServer creates a new API server instance
func NewServer(logger log.Logger, node *app.App, config Config) *Server {
	s := &Server{
		node:   node,
		config: config,
		logger: logger.With("module", "api"),
	}
	s.setupRouter()

	s.httpServer = &http.Server{
		Addr:              config.Address,
		Handler:           s.handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// order matters: recovery first, rate limiting before handlers
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS, s.config.RateLimitBurst))

	s.registerRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	})
	s.handler = c.Handler(s.router)
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", l.Addr().String())
		errCh <- s.httpServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		s.logger.Info("stopping API server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// ListenAndServe listens on the configured address and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
