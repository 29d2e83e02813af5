// Package api is the thin HTTP layer over the estimation engine.
// It is only responsible for input ingestion, engine orchestration, and
// output serialization. The API never performs cost logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	errs "compliance-cost/internal/errors"

	"compliance-cost/adapters/storage"
	"compliance-cost/core/engine"
	"compliance-cost/core/learning"
	"compliance-cost/core/types"
	"compliance-cost/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *engine.Engine
	store   storage.Store
	mux     *http.ServeMux
	version string
	log     *zap.Logger
}

// NewServer creates an API server around an engine. store may be nil;
// the persistence endpoints then return 404 and estimates are not
// saved.
func NewServer(e *engine.Engine, store storage.Store, version string) *Server {
	s := &Server{
		engine:  e,
		store:   store,
		mux:     http.NewServeMux(),
		version: version,
		log:     logging.Named("api"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /v1/estimate", s.handleEstimate)
	s.mux.HandleFunc("POST /v1/portfolio", s.handlePortfolio)
	s.mux.HandleFunc("GET /v1/estimates/{id}", s.handleGetEstimate)
	s.mux.HandleFunc("GET /v1/customers/{id}/estimates", s.handleListEstimates)
	s.mux.HandleFunc("POST /v1/actuals", s.handleRecordActual)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// EstimateRequest is the POST /v1/estimate body
type EstimateRequest struct {
	RegulationText      string               `json:"regulation_text"`
	RegulationTitle     string               `json:"regulation_title"`
	RegulationVersionID string               `json:"regulation_version_id"`
	CustomerID          string               `json:"customer_id"`
	Profile             types.CompanyProfile `json:"profile"`
}

// PortfolioRequest is the POST /v1/portfolio body
type PortfolioRequest struct {
	Estimates []*types.CostEstimate `json:"estimates"`
	Years     int                   `json:"years"`
}

// ActualRequest is the POST /v1/actuals body
type ActualRequest struct {
	EstimateID string  `json:"estimate_id"`
	ActualCost float64 `json:"actual_cost"`
}

// errorResponse is the uniform error body
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateEstimateRequest(&req); err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	report := s.engine.Estimate(r.Context(), engine.EstimateInput{
		RegulationText:      req.RegulationText,
		RegulationTitle:     req.RegulationTitle,
		RegulationVersionID: req.RegulationVersionID,
		CustomerID:          req.CustomerID,
		Profile:             req.Profile,
	})

	if s.store != nil {
		if err := s.store.SaveEstimate(r.Context(), report.Estimate); err != nil {
			s.writeError(w, "STORAGE_ERROR", err.Error(), http.StatusInternalServerError)
			return
		}
	}

	s.log.Info("estimate served",
		zap.String("regulation", req.RegulationTitle),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	s.writeJSON(w, report, http.StatusOK)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	var req PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Years <= 0 {
		req.Years = 3
	}

	s.writeJSON(w, s.engine.Portfolio(req.Estimates, req.Years), http.StatusOK)
}

func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "NOT_FOUND", "no estimate store configured", http.StatusNotFound)
		return
	}

	estimate, err := s.store.GetEstimate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	if r.URL.Query().Get("adjusted") == "true" {
		history, err := s.store.History(r.Context(), estimate.CustomerID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		estimate = learning.ApplyToEstimate(estimate, history)
	}

	s.writeJSON(w, estimate, http.StatusOK)
}

func (s *Server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "NOT_FOUND", "no estimate store configured", http.StatusNotFound)
		return
	}

	estimates, err := s.store.ListEstimates(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if estimates == nil {
		estimates = []*types.CostEstimate{}
	}
	s.writeJSON(w, estimates, http.StatusOK)
}

func (s *Server) handleRecordActual(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "NOT_FOUND", "no estimate store configured", http.StatusNotFound)
		return
	}

	var req ActualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.EstimateID == "" {
		s.writeError(w, "VALIDATION_ERROR", "estimate_id is required", http.StatusBadRequest)
		return
	}
	if req.ActualCost < 0 {
		s.writeError(w, "VALIDATION_ERROR", "actual_cost must be >= 0", http.StatusBadRequest)
		return
	}

	if err := s.store.RecordActual(r.Context(), req.EstimateID, req.ActualCost); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, map[string]string{"status": "recorded"}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"version": s.version}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, errorResponse{Code: code, Message: message}, status)
}

// writeStoreError maps store errors onto HTTP statuses
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errs.IsType(err, errs.TypeNotFound) {
		s.writeError(w, "NOT_FOUND", err.Error(), http.StatusNotFound)
		return
	}
	s.writeError(w, "STORAGE_ERROR", err.Error(), http.StatusInternalServerError)
}
