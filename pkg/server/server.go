package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/lei/anc-web-api/internal/api"
	"github.com/lei/anc-web-api/internal/config"
	"github.com/lei/anc-web-api/internal/controller"
	"github.com/lei/anc-web-api/pkg/logger"
)

// Server represents a values API instance that can be embedded in applications
type Server struct {
	config     *Config
	controller *controller.ValuesController
	router     http.Handler
	server     *http.Server
	logger     *logger.Logger
}

// Config holds the configuration for the Server
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Logging LoggingConfig

	// Classifier overrides the placeholder deal status rule when set
	Classifier controller.Classifier

	// Logger is used instead of building one from Logging when set
	Logger *logger.Logger
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// New creates a new Server instance with the provided configuration
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	appLogger := cfg.Logger
	if appLogger == nil {
		appLogger = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	vc := controller.NewValuesController(controller.WithClassifier(cfg.Classifier))

	handlers := api.NewHandlers(vc)
	loggingMiddleware := api.NewLoggingMiddleware(appLogger)
	router := api.NewRouter(handlers, loggingMiddleware, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		controller: vc,
		router:     router,
		server:     srv,
		logger:     appLogger,
	}, nil
}

// Start starts the HTTP server
// This is a blocking call that will run until the context is canceled or an error occurs
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("starting http server", "addr", ln.Addr().String())
		serverErrors <- s.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		timeout := s.config.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return multierr.Append(
				fmt.Errorf("graceful shutdown failed: %w", err),
				s.server.Close(),
			)
		}

		// Serve has returned ErrServerClosed by now
		<-serverErrors

		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// Handler returns the http.Handler for the server
// Use this if you want to integrate the API into an existing HTTP server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Controller returns the underlying values controller
// Use this for direct programmatic access without HTTP
func (s *Server) Controller() *controller.ValuesController {
	return s.controller
}

// NewFromFile creates a Server from a YAML config file.
// A missing file yields the built-in defaults when allowMissing is true.
func NewFromFile(path string, allowMissing bool) (*Server, error) {
	var (
		cfg *config.Config
		err error
	)
	if allowMissing {
		cfg, err = config.LoadOrDefault(path)
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return New(FromConfig(cfg))
}

// FromConfig converts a loaded file configuration into a server Config
func FromConfig(cfg *config.Config) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			RequestTimeout:  cfg.Server.RequestTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		Logging: LoggingConfig{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		},
	}
}
