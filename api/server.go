// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs emission logic.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"carbontrace/core/inference"
	"carbontrace/db/history"
)

// Server is the API server
type Server struct {
	engine  *inference.Service
	store   *history.Store
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server (without prediction logging)
func NewServer(engine *inference.Service, version string) *Server {
	return NewServerWithStore(engine, nil, version)
}

// NewServerWithStore creates a new API server with a prediction log
func NewServerWithStore(engine *inference.Service, store *history.Store, version string) *Server {
	s := &Server{
		engine:  engine,
		store:   store,
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /predict", s.handlePredict)
	s.mux.HandleFunc("GET /materials", s.handleMaterials)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /model", s.handleModel)
	s.mux.HandleFunc("GET /history", s.handleHistory)
	s.mux.HandleFunc("GET /insights", s.handleInsights)
}

// handleMaterials handles GET /materials
func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.engine.Materials(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, MaterialsResponse{Success: true, Materials: materials}, http.StatusOK)
}

// handleModel handles GET /model
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	info, err := s.engine.Info(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"success": true,
		"version": s.version,
		"model":   info,
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleHistory handles GET /history?limit=N
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "HISTORY_UNAVAILABLE", "prediction log not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, "VALIDATION_ERROR", "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, "HISTORY_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	s.writeJSON(w, map[string]interface{}{
		"success":     true,
		"predictions": entries,
		"count":       len(entries),
	}, http.StatusOK)
}

// handleInsights handles GET /insights
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, "HISTORY_UNAVAILABLE", "prediction log not configured", http.StatusServiceUnavailable)
		return
	}

	summary, err := s.store.Summarize(r.Context())
	if err != nil {
		s.writeError(w, "HISTORY_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"success": true,
		"summary": summary,
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	var body ErrorBody
	body.Error.Code = code
	body.Error.Message = message
	s.writeJSON(w, body, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
