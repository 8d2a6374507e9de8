package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var logger *slog.Logger

// Server exposes the rtnetlink queries over HTTP as JSON.
type Server struct {
	Config

	server  *echo.Echo
	querier Querier
	errs    chan error
}

// New builds the server. A nil metrics handler leaves /metrics out even if
// the configuration asks for it.
func New(conf *Config, querier Querier, metrics http.Handler) *Server {
	if conf == nil {
		conf = &DefaultConfig
	}

	if conf.Log {
		logger = slog.Default().With("t", "api")
	} else {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initialising the api server")

	s := &Server{Config: *conf, querier: querier, errs: make(chan error, 1)}
	s.server = echo.New()

	// Configure the methods for each path
	s.server.GET("/", s.handleRoot)
	s.server.GET("/interfaces", s.handleInterfaces)
	s.server.GET("/addresses", s.handleAddresses)
	s.server.GET("/routes", s.handleRoutes)

	if conf.Metrics && metrics != nil {
		s.server.GET("/metrics", echo.WrapHandler(metrics))
	}

	// Prevent the banner from showing up in the log
	s.server.HideBanner = true
	s.server.HidePort = true

	return s
}

func (s *Server) String() string {
	return "api"
}

// ServeHTTP makes the server usable with net/http/httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.ServeHTTP(w, r)
}

// Run serves until done is closed. It returns early with the listener's
// error if the server can't start or stops on its own.
func (s *Server) Run(done <-chan struct{}) error {
	logger.Debug("running the api server", "bindAddress", s.BindAddress, "bindPort", s.BindPort)

	go func() {
		if err := s.server.Start(fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("couldn't start the API server", "err", err)
			s.errs <- err
		}
	}()

	select {
	case <-done:
		logger.Debug("cleanly exiting the api server")
		return nil
	case err := <-s.errs:
		return fmt.Errorf("error running the API server: %w", err)
	}
}

func (s *Server) Cleanup() error {
	logger.Debug("cleaning up the api server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down the API server: %w", err)
	}
	return nil
}
