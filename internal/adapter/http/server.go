package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/tilalcrm/tilal/internal/usecase"
)

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer wires the handlers, middleware and router. Everything under
// /api/v1 except login requires a valid access token.
func NewServer(
	config ServerConfig,
	complaintUseCase *usecase.ComplaintUseCase,
	metricsUseCase *usecase.MetricsUseCase,
	authUseCase *usecase.AuthUseCase,
	authMiddleware *AuthMiddleware,
	logger *logrus.Logger,
) *Server {
	router := mux.NewRouter()
	router.Use(recoveryMiddleware(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	NewAuthHandler(authUseCase).RegisterRoutes(api)

	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(authMiddleware.RequireAuth)
	NewComplaintHandler(complaintUseCase).RegisterRoutes(protected)
	NewMetricsHandler(metricsUseCase).RegisterRoutes(protected)

	addr := config.Host + ":" + config.Port
	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
