package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/trogers1052/stock-analyst/internal/analyst"
)

// Analyzer runs one ticker lookup
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) analyst.Outcome
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer   Analyzer
	corsOrigin string
	logger     zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(analyzer Analyzer, corsOrigin string, logger zerolog.Logger) *Handler {
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &Handler{
		analyzer:   analyzer,
		corsOrigin: corsOrigin,
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// GetAnalysis handles GET /api/v1/analyst?ticker= and GET /api/v1/analyst/{ticker}
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	if ticker == "" {
		ticker = r.URL.Query().Get("ticker")
	}

	outcome := h.analyzer.Analyze(r.Context(), ticker)

	if outcome.Status == analyst.StatusFatal {
		h.respondJSON(w, http.StatusBadGateway, outcome.ErrorResponse())
		return
	}

	h.respondJSON(w, http.StatusOK, outcome.Response)
}

// Preflight handles OPTIONS for browser clients
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	h.setCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	h.setCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
