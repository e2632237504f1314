// Package server exposes the analyzer over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

// APIPrefix is where the emotion routes are mounted
const APIPrefix = "/api/v1/emotion"

// maxBodyBytes bounds the analyze request body
const maxBodyBytes = 64 << 10

// Service is the part of the analyzer the API needs
type Service interface {
	Analyze(ctx context.Context, text string, opts analyzer.Options) (*analyzer.Result, error)
	Stats() stats.Snapshot
	SupportedCategories() []string
}

// Options configures a Server
type Options struct {
	Version        string
	Environment    string
	AllowedOrigins []string
	Rules          validation.Rules
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Logger         *slog.Logger
	Clock          func() time.Time
}

// Server serves the emotion API
type Server struct {
	svc     Service
	opts    Options
	logger  *slog.Logger
	clock   func() time.Time
	started time.Time
}

// New creates a Server
func New(svc Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	if opts.Rules.MaxLength == 0 && opts.Rules.CrisisKeywords == nil {
		opts.Rules = validation.DefaultRules()
	}

	return &Server{
		svc:     svc,
		opts:    opts,
		logger:  logger.With("component", "server"),
		clock:   clock,
		started: clock(),
	}
}

// Handler returns the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST "+APIPrefix+"/analyze", s.handleAnalyze)
	mux.HandleFunc("GET "+APIPrefix+"/stats", s.handleStats)
	mux.HandleFunc("GET "+APIPrefix+"/health", s.handleHealth)
	mux.HandleFunc("GET "+APIPrefix+"/emotions", s.handleEmotions)
	mux.HandleFunc("/", s.handleNotFound)

	var h http.Handler = mux
	h = s.recoverer(h)
	h = cors(s.opts.AllowedOrigins)(h)
	h = s.logRequests(h)
	h = requestID(h)
	return h
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	s.logger.Info("emotion API listening", "addr", ln.Addr().String(), "environment", s.opts.Environment)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down emotion API")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
