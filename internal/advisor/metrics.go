package advisor

import (
	"math"

	"github.com/fit-advisor/internal/catalog"
	"github.com/fit-advisor/internal/domain"
)

// DefaultMET is the fallback intensity for activities missing from the
// catalog. The parser only emits catalog names, so the fallback should not
// trigger on the normal path.
const DefaultMET = 3.5

// BMI thresholds for goal classification. Both boundaries belong to Maintain.
const (
	gainBelowBMI = 18.5
	loseAboveBMI = 24.9
)

// MetricsEngine computes calories burned, BMI, and goal classification.
// All methods are pure functions over their inputs and the activity catalog.
type MetricsEngine struct {
	activities *catalog.Activities
}

// NewMetricsEngine creates a metrics engine over the given activity catalog
func NewMetricsEngine(activities *catalog.Activities) *MetricsEngine {
	return &MetricsEngine{activities: activities}
}

// EstimateCalories returns the estimated calories burned for an activity,
// rounded to 2 decimals: met * weight * (minutes / 60). Never fails.
func (m *MetricsEngine) EstimateCalories(activity string, durationMinutes int, weightKg float64) float64 {
	met, ok := m.activities.MET(activity)
	if !ok {
		met = DefaultMET
	}
	return round2(met * weightKg * float64(durationMinutes) / 60)
}

// CalculateBMI returns weight / height_m^2 rounded to 2 decimals.
// Returns InvalidHeightError for a non-positive height.
func (m *MetricsEngine) CalculateBMI(weightKg, heightCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, domain.NewInvalidHeightError(heightCm)
	}
	heightM := heightCm / 100
	return round2(weightKg / (heightM * heightM)), nil
}

// DetermineGoal classifies a BMI into a dietary goal: gain below 18.5,
// maintain through 24.9 inclusive, lose above.
func (m *MetricsEngine) DetermineGoal(bmi float64) domain.Goal {
	switch {
	case bmi < gainBelowBMI:
		return domain.Gain
	case bmi <= loseAboveBMI:
		return domain.Maintain
	default:
		return domain.Lose
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
