// Package domain contains the core domain models for the fitness advisor.
// These models are presentation-agnostic and represent the business logic entities.
package domain

import "strings"

// Goal represents the dietary objective derived from BMI
type Goal string

const (
	Gain     Goal = "gain"
	Maintain Goal = "maintain"
	Lose     Goal = "lose"
)

// ParseGoal parses a string into a Goal. The zero Goal ("") is returned
// for strings that don't match any known goal.
func ParseGoal(s string) Goal {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gain":
		return Gain
	case "maintain":
		return Maintain
	case "lose":
		return Lose
	default:
		return Goal("")
	}
}

// String returns the string representation of the goal
func (g Goal) String() string {
	return string(g)
}

// IsValid checks if the goal is a known valid goal
func (g Goal) IsValid() bool {
	switch g {
	case Gain, Maintain, Lose:
		return true
	default:
		return false
	}
}

// Manual input bounds for profile values. Inputs outside these ranges are
// rejected with a ValidationError before any record is created.
const (
	MinWeightKg = 40.0
	MaxWeightKg = 200.0
	MinHeightCm = 140.0
	MaxHeightCm = 220.0
)

// ActivityEntry maps an activity name to its metabolic intensity.
// Names are lowercase and unique within a catalog.
type ActivityEntry struct {
	Name string  `json:"name" yaml:"name"`
	MET  float64 `json:"met" yaml:"met"`
}

// HealthTopic is a single entry of the health knowledge catalog.
// Keys are lowercase and unique within a catalog; tips keep declared order.
type HealthTopic struct {
	Key         string   `json:"key" yaml:"key"`
	Description string   `json:"description" yaml:"description"`
	Tips        []string `json:"tips" yaml:"tips"`
}

// Profile holds the manually entered body measurements
type Profile struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// Validate checks the profile against the manual input bounds
func (p Profile) Validate() error {
	if p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		return NewValidationError("weight_kg", "weight must be between 40 and 200 kg")
	}
	if p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm {
		return NewValidationError("height_cm", "height must be between 140 and 220 cm")
	}
	return nil
}

// ParsedWorkout is the result of parsing a free-text workout description
type ParsedWorkout struct {
	Activity        string `json:"activity"`
	DurationMinutes int    `json:"duration_minutes"`
}

// WorkoutRecord is one logged workout. Records are immutable once appended
// to the session log and live only for the session.
type WorkoutRecord struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"` // ISO date, 2006-01-02
	Activity        string  `json:"activity"`
	DurationMinutes int     `json:"duration_minutes"`
	Calories        float64 `json:"calories"`
	WeightKg        float64 `json:"weight_kg"`
	HeightCm        float64 `json:"height_cm"`
	BMI             float64 `json:"bmi"`
}
