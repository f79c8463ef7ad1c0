// Package server exposes discovery and research analysis over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sells-group/faculty-cli/internal/config"
	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/monitoring"
	"github.com/sells-group/faculty-cli/internal/research"
)

// Scraper runs one discovery. *pipeline.Pipeline satisfies it.
type Scraper interface {
	Run(ctx context.Context, req model.ScrapeRequest) (*model.ScrapeResponse, error)
}

// Analyzer summarizes one profile. *research.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, profileURL, name string) (*research.Analysis, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	cfg      *config.Config
	scraper  Scraper
	analyzer Analyzer
	metrics  *monitoring.Metrics
	validate *validator.Validate
}

// New creates a Server. scraper and analyzer may be nil when credentials are
// missing; requests then fail with the configuration error.
func New(cfg *config.Config, scraper Scraper, analyzer Analyzer, metrics *monitoring.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		scraper:  scraper,
		analyzer: analyzer,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)

	origins := s.cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
	r.Post("/scrape-faculty", s.handleScrape)
	r.Post("/analyze-research", s.handleAnalyze)
	return r
}

type scrapeBody struct {
	FacultyURL string `json:"facultyUrl"`
	GroupLabel string `json:"groupLabel"`
	Department string `json:"department"`
}

type analyzeBody struct {
	ProfileURL    string `json:"profileUrl" validate:"required"`
	ProfessorName string `json:"professorName"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	*research.Analysis
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var body scrapeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := model.ScrapeRequest{
		FacultyURL: strings.TrimSpace(body.FacultyURL),
		GroupLabel: body.GroupLabel,
	}
	if req.GroupLabel == "" {
		req.GroupLabel = body.Department
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Faculty URL is required")
		return
	}
	if err := s.cfg.CheckCredentials(); err != nil || s.scraper == nil {
		writeError(w, http.StatusInternalServerError, credentialMessage(err))
		return
	}

	resp, err := s.scraper.Run(r.Context(), req)
	if err != nil {
		s.writeRunError(w, r, err, "Failed to scrape faculty")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	body.ProfileURL = strings.TrimSpace(body.ProfileURL)
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, research.MsgProfileURLRequired)
		return
	}
	if err := s.cfg.CheckCredentials(); err != nil || s.analyzer == nil {
		writeError(w, http.StatusInternalServerError, credentialMessage(err))
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), body.ProfileURL, body.ProfessorName)
	if err != nil {
		s.writeRunError(w, r, err, research.MsgAnalysisFailed)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Analysis: analysis})
}

// writeRunError maps a *model.RequestError to its status; anything else is
// a 500 with the fallback message.
func (s *Server) writeRunError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		writeError(w, reqErr.Status, reqErr.Message)
		return
	}
	zap.L().Error("server: request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, fallback)
}

func credentialMessage(err error) string {
	if err != nil {
		return err.Error()
	}
	return config.ErrCompletionNotConfigured.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
