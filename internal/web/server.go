// Package web implements the HTTP API and embedded UI for the advisor.
// One server process owns one session log.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fit-advisor/internal/config"
	"github.com/fit-advisor/internal/controller"
	"github.com/fit-advisor/internal/domain"
	"github.com/fit-advisor/internal/logging"
)

//go:embed static/*
var staticFiles embed.FS

// GetStaticFS returns the embedded static file system for use by the Lambda handler
func GetStaticFS() fs.FS {
	return staticFiles
}

// Server represents the advisor web server
type Server struct {
	port   int
	logger *logging.Logger
	cfg    *config.Config
	ctrl   *controller.Controller
}

// NewServer creates a new web server with a fresh session
func NewServer(port int) (*Server, error) {
	cfg := config.Get()

	ctrl, err := controller.New()
	if err != nil {
		return nil, err
	}

	logger, _ := logging.New(logging.Config{
		Level:       logging.ParseLevel(cfg.Logging.Level),
		LogDir:      cfg.Logging.LogDir,
		EnableFile:  cfg.Logging.EnableFile,
		EnableJSON:  cfg.Logging.EnableJSON,
		EnableColor: cfg.Logging.EnableColor,
		Component:   "web",
		Version:     "1.0.0",
	})
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Server{port: port, logger: logger, cfg: cfg, ctrl: ctrl}, nil
}

// Start starts the web server
func (s *Server) Start() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		s.logger.Error("Failed to load static files: %v", err)
		return err
	}

	limiter := NewRateLimiter(s.cfg.Server.RateLimit, time.Minute)

	mux := http.NewServeMux()
	mux.Handle("/", s.logRequest(http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("/api/workouts", limiter.Middleware(s.handleWorkouts))
	mux.HandleFunc("/api/history", limiter.Middleware(s.handleHistory))
	mux.HandleFunc("/api/summary", limiter.Middleware(s.handleSummary))
	mux.HandleFunc("/api/profile", limiter.Middleware(s.handleProfile))
	mux.HandleFunc("/api/suggest", limiter.Middleware(s.handleSuggest))
	mux.HandleFunc("/api/activities", limiter.Middleware(s.handleActivities))
	mux.HandleFunc("/api/topics", limiter.Middleware(s.handleTopics))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	s.logger.Info("Starting web UI at http://localhost%s", srv.Addr)
	return srv.ListenAndServe()
}

// logRequest wraps a handler with request logging
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// apiError is the JSON error envelope
type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, apiError{Success: false, Error: err.Error()})
}

// errorStatus maps domain errors to HTTP status codes. Parse and validation
// failures are client errors.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingDuration),
		errors.Is(err, domain.ErrUnknownActivity),
		errors.Is(err, domain.ErrInvalidHeight),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WorkoutResponse is the success envelope for a logged workout
type WorkoutResponse struct {
	Success bool                 `json:"success"`
	Record  domain.WorkoutRecord `json:"record"`
	Summary string               `json:"summary"`
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req controller.LogWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	resp, err := s.ctrl.LogWorkout(req)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, WorkoutResponse{Success: true, Record: resp.Record, Summary: resp.Summary})
}

// HistoryResponse carries the last n records
type HistoryResponse struct {
	Success bool                   `json:"success"`
	Records []domain.WorkoutRecord `json:"records"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid n: %q", raw))
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Success: true, Records: s.ctrl.History(n)})
}

// ActivityTotal is one bar of the calories-per-activity chart
type ActivityTotal struct {
	Activity string  `json:"activity"`
	Calories float64 `json:"calories"`
}

// SummaryResponse aggregates the session for display
type SummaryResponse struct {
	Success       bool            `json:"success"`
	TotalWorkouts int             `json:"totalWorkouts"`
	TotalCalories float64         `json:"totalCalories"`
	ByActivity    []ActivityTotal `json:"byActivity"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	summary := s.ctrl.Summary()

	// Group iteration order is unspecified; sort by name for display.
	byActivity := make([]ActivityTotal, 0, len(summary.CaloriesByActivity))
	for activity, calories := range summary.CaloriesByActivity {
		byActivity = append(byActivity, ActivityTotal{Activity: activity, Calories: calories})
	}
	sort.Slice(byActivity, func(i, j int) bool { return byActivity[i].Activity < byActivity[j].Activity })

	writeJSON(w, http.StatusOK, SummaryResponse{
		Success:       true,
		TotalWorkouts: summary.TotalWorkouts,
		TotalCalories: summary.TotalCalories,
		ByActivity:    byActivity,
	})
}

// ProfileRequest carries manually entered measurements
type ProfileRequest struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

// ProfileResponse carries BMI, goal, and meal suggestions
type ProfileResponse struct {
	Success  bool        `json:"success"`
	WeightKg float64     `json:"weightKg"`
	HeightCm float64     `json:"heightCm"`
	BMI      float64     `json:"bmi"`
	Goal     domain.Goal `json:"goal"`
	Foods    []string    `json:"foods"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	resp, err := s.ctrl.EvaluateProfile(req.WeightKg, req.HeightCm)
	if err != nil {
		writeError(w, errorStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{
		Success:  true,
		WeightKg: resp.WeightKg,
		HeightCm: resp.HeightCm,
		BMI:      resp.BMI,
		Goal:     resp.Goal,
		Foods:    resp.Foods,
	})
}

// SuggestRequest carries a free-text health query
type SuggestRequest struct {
	Query string `json:"query"`
}

// SuggestResponse carries the markdown suggestion text
type SuggestResponse struct {
	Success    bool   `json:"success"`
	Suggestion string `json:"suggestion"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{
		Success:    true,
		Suggestion: s.ctrl.HealthSuggestion(req.Query),
	})
}

// ActivitiesResponse lists the activity catalog
type ActivitiesResponse struct {
	Success    bool                   `json:"success"`
	Activities []domain.ActivityEntry `json:"activities"`
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, ActivitiesResponse{Success: true, Activities: s.ctrl.Activities()})
}

// TopicsResponse lists the knowledge catalog keys
type TopicsResponse struct {
	Success bool     `json:"success"`
	Topics  []string `json:"topics"`
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	topics := s.ctrl.Topics()
	keys := make([]string, len(topics))
	for i, topic := range topics {
		keys[i] = topic.Key
	}
	writeJSON(w, http.StatusOK, TopicsResponse{Success: true, Topics: keys})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
		Checks: map[string]string{
			"activity_catalog":  "ok",
			"knowledge_catalog": "ok",
		},
	})
}
