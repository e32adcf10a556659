// Package server provides the local HTTP API behind the browser UI. It serves a single
// career record held in a store and exposes the parser, analyzer, scorer and renderer over it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/observability"
	"github.com/jonathan/cv-workbench/internal/schemas"
	"github.com/jonathan/cv-workbench/internal/store"
	"github.com/jonathan/cv-workbench/internal/types"
)

const (
	// DefaultHost keeps the API on the loopback interface; the data never leaves the device.
	DefaultHost = "127.0.0.1"
	// MaxBodyBytes bounds JSON request bodies.
	MaxBodyBytes = 2 << 20
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      *store.Store
	client     llm.Client
	cfg        Config
	logger     *slog.Logger
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	UseAI        bool // default for requests that do not say whether to use the AI paths
	DefaultMode  types.PositioningMode
	TemplatePath string // optional LaTeX template replacing the embedded one

	// GenerateOptions builds per-call AI options; nil uses llm.DefaultGenerateOptions.
	GenerateOptions func(tier llm.ModelTier, jsonOut bool) llm.GenerateOptions
}

// New creates a server over st. client may be nil, in which case every AI path uses its
// deterministic fallback and AI-only endpoints answer 503.
func New(cfg Config, st *store.Store, client llm.Client, logger *slog.Logger) *Server {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = types.ModeHybrid
	}
	if logger == nil {
		logger = observability.DiscardLogger()
	}
	if st == nil {
		st = store.New(nil)
	}

	s := &Server{
		store:  st,
		client: client,
		cfg:    cfg,
		logger: logger,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // AI calls run inside requests
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Record
	mux.HandleFunc("GET /record", s.handleGetRecord)
	mux.HandleFunc("PUT /record", s.handleReplaceRecord)
	mux.HandleFunc("PUT /record/profile", s.handleSetProfile)
	mux.HandleFunc("PUT /record/summary", s.handleSetSummary)
	mux.HandleFunc("PUT /record/skills", s.handleSetSkills)
	mux.HandleFunc("PUT /record/layout", s.handleSetLayout)
	mux.HandleFunc("POST /record/import", s.handleImport)
	mux.HandleFunc("GET /record/export", s.handleExport)
	mux.HandleFunc("POST /record/undo", s.handleUndo)

	// Settings and versions
	mux.HandleFunc("GET /settings", s.handleGetSettings)
	mux.HandleFunc("PUT /settings", s.handleSetSettings)
	mux.HandleFunc("GET /versions", s.handleListVersions)
	mux.HandleFunc("POST /versions", s.handleSaveVersion)
	mux.HandleFunc("POST /versions/{id}/restore", s.handleRestoreVersion)
	mux.HandleFunc("DELETE /versions/{id}", s.handleDeleteVersion)

	// Experience endpoints
	mux.HandleFunc("POST /experiences", s.handleAddExperience)
	mux.HandleFunc("PUT /experiences/{id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /experiences/{id}", s.handleRemoveExperience)
	mux.HandleFunc("POST /experiences/{id}/move", s.handleMoveExperience)
	mux.HandleFunc("POST /experiences/{id}/achievements", s.handleAddAchievement)
	mux.HandleFunc("PUT /experiences/{id}/achievements/{achievement_id}", s.handleUpdateAchievement)
	mux.HandleFunc("DELETE /experiences/{id}/achievements/{achievement_id}", s.handleRemoveAchievement)

	// Education and certification endpoints
	mux.HandleFunc("POST /education", s.handleAddEducation)
	mux.HandleFunc("PUT /education/{id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /education/{id}", s.handleRemoveEducation)
	mux.HandleFunc("POST /certifications", s.handleAddCertification)
	mux.HandleFunc("PUT /certifications/{id}", s.handleUpdateCertification)
	mux.HandleFunc("DELETE /certifications/{id}", s.handleRemoveCertification)

	// Extraction, analysis and scoring
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /parse/upload", s.handleParseUpload)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze/gaps", s.handleGapSuggestions)
	mux.HandleFunc("GET /ats", s.handleATS)
	mux.HandleFunc("POST /tone/check", s.handleToneCheck)
	mux.HandleFunc("POST /tone/suggest", s.handleToneSuggest)
	mux.HandleFunc("GET /tone/audit", s.handleToneAudit)
	mux.HandleFunc("POST /rewrite", s.handleRewrite)
	mux.HandleFunc("GET /render.tex", s.handleRender)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens until ctx is cancelled or the process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the browser UI
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs every request and puts the server logger into the request context
// so fallbacks deep in the call chain log through it.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		ctx := observability.ContextWithLogger(r.Context(), s.logger)
		next.ServeHTTP(rec, r.WithContext(ctx))

		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ai":     s.client != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// errorResponse writes err as a JSON error with the status HTTPStatus maps it to
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	body := map[string]any{"error": err.Error()}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		body["fields"] = schemaErr.Fields()
	}
	s.jsonResponse(w, status, body)
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// clientFor returns the AI client when the request wants AI and one is configured
func (s *Server) clientFor(useAI *bool) llm.Client {
	want := s.cfg.UseAI
	if useAI != nil {
		want = *useAI
	}
	if !want {
		return nil
	}
	return s.client
}

func (s *Server) generateOptions(tier llm.ModelTier, jsonOut bool) llm.GenerateOptions {
	if s.cfg.GenerateOptions != nil {
		return s.cfg.GenerateOptions(tier, jsonOut)
	}
	return llm.DefaultGenerateOptions(tier, jsonOut)
}

func (s *Server) mode(raw string) types.PositioningMode {
	if raw == "" {
		return s.cfg.DefaultMode
	}
	return types.ParsePositioningMode(raw)
}
