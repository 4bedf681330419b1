package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/rolefinder/core/pipeline"
	"github.com/leofalp/rolefinder/core/query"
	"github.com/leofalp/rolefinder/core/score"
)

// Resolver is the pipeline boundary the transport depends on.
type Resolver interface {
	Resolve(ctx context.Context, q query.RoleQuery) (score.Result, error)
}

// Server is the thin JSON transport in front of the resolution pipeline.
type Server struct {
	resolver Resolver
	logger   *slog.Logger
}

// New constructs a Server. A nil logger selects slog.Default.
func New(resolver Resolver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{resolver: resolver, logger: logger}
}

// Handler returns the HTTP handler exposing GET /search.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", s.handleSearch)
	return mux
}

type searchResponse struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Confidence float64 `json:"confidence"`
	SourceURL  *string `json:"sourceUrl"`
	Role       string  `json:"role"`
	Company    string  `json:"company"`
	Found      bool    `json:"found"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.URL.Query().Get("company"))
	role := strings.TrimSpace(r.URL.Query().Get("role"))

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "company", company, "role", role)

	start := time.Now()
	result, err := s.resolver.Resolve(r.Context(), query.RoleQuery{Role: role, Company: company})
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "company and role are required"})
			return
		}
		logger.Error("resolution failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	logger.Info("resolution finished",
		"found", result.Found,
		"confidence", result.Confidence,
		"duration", time.Since(start))

	resp := searchResponse{
		Confidence: result.Confidence,
		Role:       role,
		Company:    company,
		Found:      result.Found,
	}
	if result.Found {
		resp.FirstName = &result.FirstName
		resp.LastName = &result.LastName
		resp.SourceURL = &result.SourceURL
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
