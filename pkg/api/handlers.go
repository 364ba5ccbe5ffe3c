package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/warehousecfg/pkg/explain"
	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
	"github.com/codeready-toolchain/warehousecfg/pkg/version"
	"github.com/codeready-toolchain/warehousecfg/pkg/wm"
)

// healthHandler handles GET /health
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResponse{
		Status:  "healthy",
		Version: version.GitCommit,
	})
}

// getSupervisorTuningHandler handles GET /api/v1/tuning/supervisor
func (s *Server) getSupervisorTuningHandler(c *gin.Context) {
	var current *tuning.SupervisorTuningConfig
	if s.tuning != nil {
		current = s.tuning.Current()
	}
	if current == nil {
		c.JSON(http.StatusNotFound, &ErrorResponse{Error: "no supervisor tuning config loaded"})
		return
	}
	c.JSON(http.StatusOK, newTuningResponse(current))
}

// decodeSupervisorTuningHandler handles POST /api/v1/tuning/supervisor
func (s *Server) decodeSupervisorTuningHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	cfg, err := tuning.Decode(body)
	if err != nil {
		resp := &ErrorResponse{Error: err.Error()}
		var parseErr *tuning.ParseError
		if errors.As(err, &parseErr) {
			resp.Field = parseErr.Field
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, newTuningResponse(cfg))
}

// explainAlterPoolHandler handles POST /api/v1/pools/alter/explain?level=
func (s *Server) explainAlterPoolHandler(c *gin.Context) {
	level := s.cfg.Explain.DefaultLevel
	if q := c.Query("level"); q != "" {
		parsed, err := explain.ParseLevel(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error(), Field: "level"})
			return
		}
		level = parsed
	}

	var req wm.AlterPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	node, ok := explain.Render(level, req.Desc())
	if !ok {
		// Every descriptor we serve is visible at all levels
		slog.Error("Descriptor not visible at level", "level", level)
		c.JSON(http.StatusInternalServerError, &ErrorResponse{Error: "descriptor not visible at level " + string(level)})
		return
	}

	c.JSON(http.StatusOK, &ExplainResponse{
		Level: level,
		Tree:  node,
		Text:  node.String(),
	})
}

// validateAlterPoolHandler handles POST /api/v1/pools/alter/validate
func (s *Server) validateAlterPoolHandler(c *gin.Context) {
	var req wm.AlterPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	if err := wm.Validate(req.Desc()); err != nil {
		resp := &ErrorResponse{Error: err.Error()}
		var altErr *wm.AlterationError
		if errors.As(err, &altErr) {
			resp.Field = altErr.Field
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, &ValidateResponse{Valid: true})
}
