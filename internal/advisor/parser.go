// Package advisor provides rule-based natural language parsing and the
// derived-metric engines for workout logging.
package advisor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fit-advisor/internal/catalog"
	"github.com/fit-advisor/internal/domain"
)

// maxErrorExamples is how many catalog names an UnknownActivityError suggests
const maxErrorExamples = 3

// durationPattern matches a duration phrase like "30 min" or "45 minutes".
// The first match in the text wins; only the numeric portion is captured.
var durationPattern = regexp.MustCompile(`(\d+)\s*(?:min|minutes?)`)

// WorkoutParser extracts (activity, duration) from free-form workout text
// using the activity catalog. It holds no mutable state and is safe for
// concurrent use.
type WorkoutParser struct {
	activities *catalog.Activities
}

// NewWorkoutParser creates a parser over the given activity catalog
func NewWorkoutParser(activities *catalog.Activities) *WorkoutParser {
	return &WorkoutParser{activities: activities}
}

// Parse scans the text case-insensitively for a duration phrase and a known
// activity name.
//
// The activity is the first catalog name found as a substring, in catalog
// iteration order. Matching is substring-based on purpose: catalog order is
// the documented tie-break when several names appear (and "rowing" does
// match inside "growing").
//
// Returns MissingDurationError when no duration phrase is present and
// UnknownActivityError when no catalog name is found.
func (p *WorkoutParser) Parse(text string) (domain.ParsedWorkout, error) {
	lower := strings.ToLower(text)

	m := durationPattern.FindStringSubmatch(lower)
	if m == nil {
		return domain.ParsedWorkout{}, domain.NewMissingDurationError(text)
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits only by construction of the pattern; Atoi can still
		// overflow on absurdly long digit runs.
		return domain.ParsedWorkout{}, domain.NewMissingDurationError(text)
	}

	for _, name := range p.activities.Names() {
		if strings.Contains(lower, name) {
			return domain.ParsedWorkout{Activity: name, DurationMinutes: minutes}, nil
		}
	}

	return domain.ParsedWorkout{}, domain.NewUnknownActivityError(text, p.activities.Examples(maxErrorExamples))
}
