// Package api serves the masking engine over HTTP: health, metrics, a
// masking preview, the stored-entry listing and the demonstration endpoints
// that log sensitive data through the masking logger.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/database"
	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/masking"
)

// Server is the HTTP API server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server

	masking  *masking.Service
	loggers  *logging.Provider
	dbClient *database.Client // nil when the database sink is disabled
}

// NewServer creates the API server and registers its routes.
func NewServer(cfg *config.ServerConfig, maskingService *masking.Service, loggers *logging.Provider) *Server {
	if cfg == nil {
		cfg = config.DefaultServerConfig()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), securityHeaders(), requestLogger())

	s := &Server{
		engine:  engine,
		masking: maskingService,
		loggers: loggers,
	}
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.setupRoutes()
	return s
}

// SetDatabase enables the database health check and the entry listing.
func (s *Server) SetDatabase(dbClient *database.Client) {
	s.dbClient = dbClient
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/api/v1")
	v1.POST("/mask", s.maskHandler)
	v1.GET("/detectors", s.detectorsHandler)
	v1.GET("/entries", s.listEntriesHandler)

	demo := s.engine.Group("/api/test")
	demo.GET("", s.testGetHandler)
	demo.POST("", s.testPostHandler)
	demo.PUT("/:id", s.testPutHandler)
	demo.DELETE("/:id", s.testDeleteHandler)
}

// Start serves HTTP until Shutdown is called. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
