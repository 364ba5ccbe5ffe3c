package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/warehousecfg/pkg/config"
	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
)

// TuningSource supplies the supervisor tuning config being served.
type TuningSource interface {
	Current() *tuning.SupervisorTuningConfig
}

// Server is the introspection HTTP API: it decodes supervisor tuning
// documents and renders pool alteration descriptors.
type Server struct {
	cfg        *config.Config
	tuning     TuningSource
	engine     *gin.Engine
	httpServer *http.Server
}

// NewServer creates a new API server. source may be nil when no tuning
// documents are configured.
func NewServer(cfg *config.Config, source TuningSource) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), securityHeaders(), bodyLimit(cfg.HTTP.MaxBodyBytes))

	s := &Server{
		cfg:    cfg,
		tuning: source,
		engine: engine,
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:        cfg.HTTP.Addr,
		Handler:     engine,
		ReadTimeout: cfg.HTTP.ReadTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)

	v1 := s.engine.Group("/api/v1")
	v1.GET("/tuning/supervisor", s.getSupervisorTuningHandler)
	v1.POST("/tuning/supervisor", s.decodeSupervisorTuningHandler)
	v1.POST("/pools/alter/explain", s.explainAlterPoolHandler)
	v1.POST("/pools/alter/validate", s.validateAlterPoolHandler)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
