package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Text               string `json:"text"`
	IncludeSuggestions *bool  `json:"include_suggestions,omitempty"`
	UseRealModel       bool   `json:"use_real_model"`
}

// Options converts the request flags; suggestions default to on
func (r AnalyzeRequest) Options() analyzer.Options {
	opts := analyzer.Options{IncludeSuggestions: true, UseRealModel: r.UseRealModel}
	if r.IncludeSuggestions != nil {
		opts.IncludeSuggestions = *r.IncludeSuggestions
	}
	return opts
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Environment string `json:"environment"`
}

// RootResponse is returned by GET /
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "Emotion Reflection Tool API",
		Version: s.opts.Version,
		Status:  "running",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "validation_error", fmt.Sprintf("invalid request body: %v", err))
		return
	}

	text, err := validation.Text(req.Text, s.opts.Rules)
	if err != nil {
		s.logger.Warn("rejected analysis request",
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
		var verr *validation.Error
		msg := err.Error()
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		s.writeError(w, r, http.StatusBadRequest, "validation_error", msg)
		return
	}

	result, err := s.svc.Analyze(r.Context(), text, req.Options())
	if err != nil {
		status, kind, msg := classify(err)
		s.logger.Error("analysis failed",
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
		s.writeError(w, r, status, kind, msg)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := s.clock()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Message:     "Emotion analysis service is running normally",
		Timestamp:   now.Format(time.RFC3339),
		Version:     s.opts.Version,
		Uptime:      formatUptime(now.Sub(s.started)),
		Environment: s.opts.Environment,
	})
}

func (s *Server) handleEmotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.SupportedCategories())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusNotFound, "not_found", "no route for "+r.Method+" "+r.URL.Path)
}

// classify maps analyzer errors onto a status, error kind and public message
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, analyzer.ErrInference):
		return http.StatusBadGateway, "inference_error", "Emotion model inference failed"
	default:
		return http.StatusInternalServerError, "internal_error", "Internal server error occurred during emotion analysis"
	}
}

// formatUptime renders a duration as H:MM:SS, prefixed by days when needed
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60
	sec := total % 60

	clock := fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	switch {
	case days == 1:
		return "1 day, " + clock
	case days > 1:
		return fmt.Sprintf("%d days, %s", days, clock)
	default:
		return clock
	}
}
