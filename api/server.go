// Package api provides the HTTP API server for the design service.
// It wires the rule-based pipeline (constraints, generation, evaluation,
// governance) and the learned models behind a versioned JSON API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/constraints"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/design"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/evaluation"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/ml"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/policy"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/storage"
	contracts "github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/platform"
)

// Version is the service version reported by the metadata endpoints.
const Version = "1.0.0"

// Config holds server configuration
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 1 << 20, // 1MB, briefs are tiny
		CORSOrigins:    []string{"*"},
	}
}

// Models bundles the trained adapters the server reads from. Training
// happens before the server starts; the server never mutates them.
type Models struct {
	Cost        *ml.CostPredictor
	Ranker      *ml.Ranker
	Recommender *ml.Recommender
}

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	config     *Config
	log        zerolog.Logger
	started    time.Time

	constraints *constraints.Engine
	generator   *design.Generator
	evaluator   *evaluation.Evaluator
	policy      *policy.Engine

	models   Models
	projects *storage.ProjectStore
}

// NewServer creates a new API server. projects may be nil, in which case
// the persistence endpoints are not mounted.
func NewServer(models Models, projects *storage.ProjectStore, config *Config, log zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		config:      config,
		log:         log,
		started:     time.Now(),
		constraints: constraints.NewEngine(),
		generator:   design.NewGenerator(),
		evaluator:   evaluation.NewEvaluator(),
		policy:      policy.NewEngine(),
		models:      models,
		projects:    projects,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/designs/generate", s.handleGenerate)
		r.Post("/designs/compare", s.handleCompare)
		r.Post("/recommend", s.handleRecommend)
		r.Get("/models/status", s.handleModelStatus)
		r.Get("/models/cost/importance", s.handleCostImportance)
		r.Get("/stats/designs", s.handleDesignStats)

		if s.projects != nil {
			r.Get("/projects", s.handleListProjects)
			r.Get("/projects/{id}", s.handleGetProject)
			r.With(platform.APIKeyMiddleware).Delete("/projects", s.handleClearProjects)
		}
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Info().Int("port", s.config.Port).Str("version", Version).Msg("starting API server")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains on SIGINT/SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	origin := "*"
	if len(s.config.CORSOrigins) > 0 {
		origin = s.config.CORSOrigins[0]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HEALTH & METADATA
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "ecodesign-api",
		"version": Version,
		"uptime":  time.Since(s.started).String(),
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.projects != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.projects.Ping(ctx); err != nil {
			s.jsonError(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"version": Version,
		"service": "ecodesign-api",
	})
}

// =============================================================================
// DESIGN GENERATION
// =============================================================================

// GenerateRequest is the design generation request body. The constraint
// fields arrive untyped so validation can report every problem at once.
type GenerateRequest struct {
	contracts.RawConstraints
	UserID  *string `json:"user_id,omitempty"`
	Persist bool    `json:"persist,omitempty"`
}

// CostPrediction is the learned cost estimate for one design.
type CostPrediction struct {
	DesignID      string  `json:"design_id"`
	PredictedCost float64 `json:"predicted_cost"`
	Display       string  `json:"display"`
}

// MLInsights carries the learned-model outputs alongside the rule-based
// design set. Fields are omitted when the backing model is untrained.
type MLInsights struct {
	CostPredictions []CostPrediction          `json:"cost_predictions,omitempty"`
	LearnedRanking  []ml.RankedDesign         `json:"learned_ranking,omitempty"`
	Recommendation  *contracts.Recommendation `json:"recommendation,omitempty"`
}

// GenerateResponse is the design generation response body.
type GenerateResponse struct {
	Valid            bool                            `json:"valid"`
	Errors           []string                        `json:"errors,omitempty"`
	Constraints      *contracts.ProcessedConstraints `json:"constraints,omitempty"`
	FeasibilityScore int                             `json:"feasibility_score"`
	Designs          []contracts.Design              `json:"designs,omitempty"`
	ML               *MLInsights                     `json:"ml,omitempty"`
	Policy           *policy.EvaluationResult        `json:"policy,omitempty"`
	ProjectID        *uuid.UUID                      `json:"project_id,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, errs := s.constraints.Validate(req.RawConstraints)
	if !valid {
		s.jsonResponse(w, http.StatusBadRequest, GenerateResponse{Valid: false, Errors: errs})
		return
	}

	c := s.constraints.FromRaw(req.RawConstraints)
	processed := s.constraints.Process(c)
	feasibility := s.constraints.CalculateFeasibility(processed)

	designs := s.generator.Generate(c)
	for i := range designs {
		m := s.evaluator.Evaluate(designs[i], c)
		designs[i].Metrics = &m
	}
	ranked := s.evaluator.RankDesigns(designs)

	insights := s.buildInsights(ranked, c)

	policyResult := s.policy.Evaluate(policy.EvaluationRequest{
		Designs:          ranked,
		FeasibilityScore: feasibility,
		Confidence:       recommendationConfidence(insights),
	})

	resp := GenerateResponse{
		Valid:            true,
		Constraints:      &processed,
		FeasibilityScore: feasibility,
		Designs:          ranked,
		ML:               insights,
		Policy:           policyResult,
	}

	if req.Persist && s.projects != nil {
		mlData, err := json.Marshal(insights)
		if err != nil {
			mlData = json.RawMessage(`{}`)
		}
		id, err := s.projects.Save(r.Context(), c, ranked, mlData, req.UserID)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to persist project")
		} else {
			resp.ProjectID = &id
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) buildInsights(designs []contracts.Design, c contracts.Constraints) *MLInsights {
	insights := &MLInsights{}

	if s.models.Cost != nil && s.models.Cost.IsTrained() {
		for _, d := range designs {
			predicted, ok := s.models.Cost.Predict(c.Area, c.Budget, c.Climate, c.Priority, d.ID)
			if !ok {
				continue
			}
			insights.CostPredictions = append(insights.CostPredictions, CostPrediction{
				DesignID:      d.ID,
				PredictedCost: predicted,
				Display:       "$" + decimal.NewFromFloat(predicted).StringFixed(2),
			})
		}
	}

	if s.models.Ranker != nil && s.models.Ranker.IsTrained() {
		insights.LearnedRanking = s.models.Ranker.Rank(designs, c)
	}

	if s.models.Recommender != nil && s.models.Recommender.IsTrained() {
		rec := s.models.Recommender.Recommend(c, 3)
		insights.Recommendation = &rec
	}

	if insights.CostPredictions == nil && insights.LearnedRanking == nil && insights.Recommendation == nil {
		return nil
	}
	return insights
}

// recommendationConfidence feeds the governance confidence policy. With
// no recommender output the policy gets full confidence so it does not
// fire on rule-based-only deployments.
func recommendationConfidence(insights *MLInsights) float64 {
	if insights == nil || insights.Recommendation == nil {
		return 1.0
	}
	return insights.Recommendation.Confidence
}

// =============================================================================
// COMPARISON
// =============================================================================

// CompareRequest is the design comparison request body.
type CompareRequest struct {
	contracts.RawConstraints
	IDs []string `json:"ids"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		s.jsonError(w, http.StatusBadRequest, "ids is required")
		return
	}

	valid, errs := s.constraints.Validate(req.RawConstraints)
	if !valid {
		s.jsonResponse(w, http.StatusBadRequest, GenerateResponse{Valid: false, Errors: errs})
		return
	}

	c := s.constraints.FromRaw(req.RawConstraints)
	designs := s.generator.Generate(c)
	for i := range designs {
		m := s.evaluator.Evaluate(designs[i], c)
		designs[i].Metrics = &m
	}

	comparison := s.evaluator.CompareDesigns(req.IDs, designs)
	s.jsonResponse(w, http.StatusOK, comparison)
}

// =============================================================================
// RECOMMENDATION & MODEL METADATA
// =============================================================================

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var raw contracts.RawConstraints
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, errs := s.constraints.Validate(raw)
	if !valid {
		s.jsonResponse(w, http.StatusBadRequest, GenerateResponse{Valid: false, Errors: errs})
		return
	}

	if s.models.Recommender == nil {
		s.jsonResponse(w, http.StatusOK, contracts.Recommendation{SimilarProjects: []contracts.SimilarProject{}})
		return
	}

	rec := s.models.Recommender.Recommend(s.constraints.FromRaw(raw), 3)
	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleModelStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]bool{
		"cost_predictor": s.models.Cost != nil && s.models.Cost.IsTrained(),
		"ranker":         s.models.Ranker != nil && s.models.Ranker.IsTrained(),
		"recommender":    s.models.Recommender != nil && s.models.Recommender.IsTrained(),
	}
	s.jsonResponse(w, http.StatusOK, status)
}

func (s *Server) handleCostImportance(w http.ResponseWriter, r *http.Request) {
	if s.models.Cost == nil || !s.models.Cost.IsTrained() {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"trained":  false,
			"features": []ml.FeatureImportance{},
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"trained":  true,
		"features": s.models.Cost.FeatureImportance(),
	})
}

func (s *Server) handleDesignStats(w http.ResponseWriter, r *http.Request) {
	if s.models.Recommender == nil {
		s.jsonResponse(w, http.StatusOK, contracts.DesignStatistics{
			Counts:              map[int]int{},
			AverageSatisfaction: map[int]float64{},
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.models.Recommender.DesignStatistics())
}

// =============================================================================
// PROJECTS
// =============================================================================

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}
	var userID *string
	if v := r.URL.Query().Get("user_id"); v != "" {
		userID = &v
	}
	guest := r.URL.Query().Get("guest") == "true"

	summaries, err := s.projects.List(r.Context(), limit, userID, guest)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list projects")
		s.jsonError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := s.projects.Get(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id.String()).Msg("failed to get project")
		s.jsonError(w, http.StatusInternalServerError, "failed to get project")
		return
	}
	if project == nil {
		s.jsonError(w, http.StatusNotFound, "project not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, project)
}

func (s *Server) handleClearProjects(w http.ResponseWriter, r *http.Request) {
	var userID *string
	if v := r.URL.Query().Get("user_id"); v != "" {
		userID = &v
	}
	guest := r.URL.Query().Get("guest") == "true"

	n, err := s.projects.Clear(r.Context(), userID, guest)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to clear projects")
		s.jsonError(w, http.StatusInternalServerError, "failed to clear projects")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]int64{"deleted": n})
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
