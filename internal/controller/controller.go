// Package controller provides programmatic access to the advisor operations.
// One Controller owns one session log; the CLI, web server, and Lambda
// handler all drive this package rather than the engines directly.
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/fit-advisor/internal/advisor"
	"github.com/fit-advisor/internal/catalog"
	"github.com/fit-advisor/internal/config"
	"github.com/fit-advisor/internal/domain"
	"github.com/fit-advisor/internal/logging"
	"github.com/fit-advisor/internal/observability"
	"github.com/fit-advisor/internal/session"
)

// Controller wires the catalogs, engines, and a session-scoped workout log
type Controller struct {
	cfg        *config.Config
	logger     *logging.Logger
	activities *catalog.Activities
	knowledge  *catalog.Knowledge
	parser     *advisor.WorkoutParser
	metrics    *advisor.MetricsEngine
	rec        *advisor.RecommendationEngine
	log        *session.Log
}

// New creates a Controller with a fresh, empty session log. Catalogs are
// built once here and read-only afterwards.
func New() (*Controller, error) {
	cfg := config.Get()

	activities, err := catalog.DefaultActivitiesWithOverlay(cfg.Catalog.ActivitiesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build activity catalog: %w", err)
	}
	knowledge, err := catalog.DefaultKnowledgeWithOverlay(cfg.Catalog.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to build knowledge catalog: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       logging.ParseLevel(cfg.Logging.Level),
		LogDir:      cfg.Logging.LogDir,
		EnableFile:  cfg.Logging.EnableFile,
		EnableJSON:  cfg.Logging.EnableJSON,
		EnableColor: cfg.Logging.EnableColor,
		Component:   "controller",
		Version:     "1.0.0",
	})
	if err != nil || logger == nil {
		logger = logging.GetDefault()
	}

	return &Controller{
		cfg:        cfg,
		logger:     logger,
		activities: activities,
		knowledge:  knowledge,
		parser:     advisor.NewWorkoutParser(activities),
		metrics:    advisor.NewMetricsEngine(activities),
		rec:        advisor.NewRecommendationEngine(knowledge),
		log:        session.NewLog(),
	}, nil
}

// Activities returns the activity catalog entries in catalog order
func (c *Controller) Activities() []domain.ActivityEntry {
	return c.activities.Entries()
}

// Topics returns the knowledge catalog topics in catalog order
func (c *Controller) Topics() []domain.HealthTopic {
	return c.knowledge.Topics()
}

// LogWorkoutRequest is a request to parse and log one workout
type LogWorkoutRequest struct {
	Text     string  `json:"text"`
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	Date     string  `json:"date,omitempty"` // ISO date; today when empty
}

// LogWorkoutResponse is the result of logging one workout
type LogWorkoutResponse struct {
	Record  domain.WorkoutRecord `json:"record"`
	Summary string               `json:"summary"`
}

// LogWorkout validates the profile, parses the workout text, computes the
// derived metrics, and appends a record to the session log. On any error the
// session log is left unchanged.
func (c *Controller) LogWorkout(req LogWorkoutRequest) (*LogWorkoutResponse, error) {
	profile := domain.Profile{WeightKg: req.WeightKg, HeightCm: req.HeightCm}
	if err := profile.Validate(); err != nil {
		observability.RecordParseFailure("invalid_input")
		return nil, err
	}

	parsed, err := c.parser.Parse(req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingDuration):
			observability.RecordParseFailure("missing_duration")
		case errors.Is(err, domain.ErrUnknownActivity):
			observability.RecordParseFailure("unknown_activity")
		}
		c.logger.Warn("workout text rejected: %v", err)
		return nil, err
	}
	if parsed.DurationMinutes <= 0 {
		observability.RecordParseFailure("invalid_input")
		return nil, domain.NewValidationError("duration_minutes", "duration must be greater than zero")
	}

	calories := c.metrics.EstimateCalories(parsed.Activity, parsed.DurationMinutes, profile.WeightKg)
	bmi, err := c.metrics.CalculateBMI(profile.WeightKg, profile.HeightCm)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	record := c.log.Append(domain.WorkoutRecord{
		Date:            date,
		Activity:        parsed.Activity,
		DurationMinutes: parsed.DurationMinutes,
		Calories:        calories,
		WeightKg:        profile.WeightKg,
		HeightCm:        profile.HeightCm,
		BMI:             bmi,
	})
	observability.RecordWorkoutLogged()
	c.logger.Info("workout logged: activity=%s duration=%dmin calories=%.2f",
		record.Activity, record.DurationMinutes, record.Calories)

	return &LogWorkoutResponse{
		Record: record,
		Summary: fmt.Sprintf("Added %s for %d min - ~%.2f cal burned",
			record.Activity, record.DurationMinutes, record.Calories),
	}, nil
}

// ProfileResponse carries the derived metrics for a body profile
type ProfileResponse struct {
	WeightKg float64     `json:"weightKg"`
	HeightCm float64     `json:"heightCm"`
	BMI      float64     `json:"bmi"`
	Goal     domain.Goal `json:"goal"`
	Foods    []string    `json:"foods"`
}

// EvaluateProfile validates the measurements and returns BMI, goal, and the
// meal suggestions for that goal
func (c *Controller) EvaluateProfile(weightKg, heightCm float64) (*ProfileResponse, error) {
	profile := domain.Profile{WeightKg: weightKg, HeightCm: heightCm}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	bmi, err := c.metrics.CalculateBMI(weightKg, heightCm)
	if err != nil {
		return nil, err
	}
	goal := c.metrics.DetermineGoal(bmi)

	return &ProfileResponse{
		WeightKg: weightKg,
		HeightCm: heightCm,
		BMI:      bmi,
		Goal:     goal,
		Foods:    c.rec.FoodRecommendation(goal),
	}, nil
}

// HealthSuggestion returns the markdown suggestion text for a free-text
// health query
func (c *Controller) HealthSuggestion(query string) string {
	_, hit := c.rec.LookupTopic(query)
	observability.RecordSuggestionLookup(hit)
	if !hit {
		c.logger.Debug("no knowledge topic matched query %q", query)
	}
	return c.rec.HealthSuggestion(query)
}

// History returns the last n logged records in original order. n <= 0 uses
// the configured default tail.
func (c *Controller) History(n int) []domain.WorkoutRecord {
	if n <= 0 {
		n = c.cfg.Advisor.HistoryTail
	}
	return c.log.Tail(n)
}

// SummaryResponse aggregates the session log
type SummaryResponse struct {
	TotalWorkouts      int                `json:"totalWorkouts"`
	TotalCalories      float64            `json:"totalCalories"`
	CaloriesByActivity map[string]float64 `json:"caloriesByActivity"`
}

// Summary aggregates calories by activity across the whole session log
func (c *Controller) Summary() *SummaryResponse {
	return &SummaryResponse{
		TotalWorkouts:      c.log.Len(),
		TotalCalories:      c.log.TotalCalories(),
		CaloriesByActivity: c.log.CaloriesByActivity(),
	}
}

// DefaultProfile returns the configured fallback measurements
func (c *Controller) DefaultProfile() domain.Profile {
	return domain.Profile{
		WeightKg: c.cfg.Profile.DefaultWeightKg,
		HeightCm: c.cfg.Profile.DefaultHeightCm,
	}
}
