package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	commonerrors "prd-advisors/internal/common/errors"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server exposes generation over JSON HTTP.
type Server struct {
	config    *Config
	generator *service.Generator
	errors    *commonerrors.ErrorHandler
	logger    logger.Logger
	ready     ReadinessCheck
	httpSrv   *http.Server
}

func NewServer(config *Config, gen *service.Generator, log logger.Logger, ready ReadinessCheck) *Server {
	log = log.WithFields(map[string]interface{}{"component": "api"})
	s := &Server{
		config:    config,
		generator: gen,
		errors:    commonerrors.NewErrorHandler(log),
		logger:    log,
		ready:     ready,
	}
	s.httpSrv = &http.Server{
		Addr:         config.Address,
		Handler:      s.Routes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	return s
}

// Routes returns the request multiplexer.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/advisors", s.handleListAdvisors)
	mux.HandleFunc("GET /api/examples", s.handleListExamples)
	mux.HandleFunc("POST /api/prd", s.handleGenerate)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /api/sessions/{id}/download/{kind}", s.handleDownload)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("api server listening", map[string]interface{}{"address": s.config.Address})
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
