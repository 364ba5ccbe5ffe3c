package api

import (
	"github.com/codeready-toolchain/warehousecfg/pkg/explain"
	"github.com/codeready-toolchain/warehousecfg/pkg/tuning"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// TuningResponse is returned by the supervisor tuning endpoints.
type TuningResponse struct {
	Config      *tuning.SupervisorTuningConfig `json:"config"`
	Description string                         `json:"description"`
	Hash        uint64                         `json:"hash"`
}

// ExplainResponse is returned by POST /api/v1/pools/alter/explain.
type ExplainResponse struct {
	Level explain.Level `json:"level"`
	Tree  explain.Node  `json:"tree"`
	Text  string        `json:"text"`
}

// ValidateResponse is returned by POST /api/v1/pools/alter/validate.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

func newTuningResponse(cfg *tuning.SupervisorTuningConfig) *TuningResponse {
	return &TuningResponse{
		Config:      cfg,
		Description: cfg.String(),
		Hash:        cfg.Hash(),
	}
}
