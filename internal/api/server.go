package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
)

// NewRouter wires the handler behind request id, recovery, logging and rate limiting.
// A nil limiter disables rate limiting.
func NewRouter(h *CalculationHandler, limiter *RateLimiter, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	if limiter != nil {
		router.Use(RateLimitMiddleware(limiter))
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})

	h.RegisterRoutes(router)
	return router
}

// Server is the HTTP service around a CalculationEngine
type Server struct {
	cfg     config.ServerConfig
	logger  *logrus.Logger
	limiter *RateLimiter
	srv     *http.Server
}

// NewServer builds the engine options, router and http.Server from cfg
func NewServer(cfg config.ServerConfig, logger *logrus.Logger) *Server {
	engine := calculation.NewCalculationEngineWithOptions(calculation.Options{
		Simulations: cfg.Simulations,
		Workers:     cfg.Workers,
	})
	engine.SetLogger(logger)

	var limiter *RateLimiter
	if cfg.RateLimit > 0 {
		limiter = NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	handler := NewCalculationHandler(engine, cfg.CalcTimeout, logger)
	return &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: limiter,
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(handler, limiter, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	if s.limiter != nil {
		defer s.limiter.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithFields(logrus.Fields{
			"addr":        s.cfg.Addr,
			"simulations": s.cfg.Simulations,
			"rate_limit":  s.cfg.RateLimit,
		}).Info("starting server")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
