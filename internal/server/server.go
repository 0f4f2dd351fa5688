package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"ubuzima-ai/internal/config"
	"ubuzima-ai/internal/llmservice"
	"ubuzima-ai/internal/rag"
	"ubuzima-ai/internal/vectorindex"
)

const maxQueryLength = 1000

// Server exposes the answering pipeline over HTTP.
type Server struct {
	pipeline *rag.Pipeline
	index    *vectorindex.Index
	cfg      config.ServerConfig
}

// New builds a server. index may be nil when no semantic index has
// been configured.
func New(pipeline *rag.Pipeline, index *vectorindex.Index, cfg config.ServerConfig) *Server {
	return &Server{pipeline: pipeline, index: index, cfg: cfg}
}

// Handler returns the routed handler with logging and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return withRequestLog(withCORS(mux, s.cfg.AllowedOrigins))
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type queryRequest struct {
	Query *string `json:"query"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.answerQuery(w, r)
	case http.MethodGet:
		s.queryMetadata(w)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	}
}

func (s *Server) answerQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == nil || *req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Query is required and must be a string"})
		return
	}
	if utf8.RuneCountInString(*req.Query) > maxQueryLength {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Query too long (max 1000 characters)"})
		return
	}

	envelope, err := s.pipeline.Answer(r.Context(), *req.Query)
	if err != nil {
		log.Error().Err(err).Msg("Pipeline error")
		status := http.StatusInternalServerError
		if errors.Is(err, llmservice.ErrProviderTimeout) {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, errorResponse{
			Error:   "Failed to process request",
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

func (s *Server) queryMetadata(w http.ResponseWriter) {
	stats := s.pipeline.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "NISR AI Chatbot - Rwanda Nutrition Data",
		"description":  "Ask questions about Rwanda's nutrition and health data from NISR",
		"datasetStats": stats,
		"usage":        "POST with { query: 'your question' }",
		"examples": []string{
			"What is the stunting rate in Rwanda?",
			"Show me anemia prevalence data",
			"What surveys has NISR conducted about nutrition?",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"message":      "API is operational",
		"datasetStats": s.pipeline.Stats(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}
	data := map[string]any{
		"datasets": s.pipeline.Stats(),
	}
	if s.index != nil {
		data["indexedDocuments"] = s.index.Count()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"data":   data,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}
