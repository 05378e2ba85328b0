// Package advisor: recommendation generation logic.
package advisor

import (
	"strings"

	"github.com/fit-advisor/internal/catalog"
	"github.com/fit-advisor/internal/domain"
)

// foodsByGoal is the fixed meal suggestion table, 5 items per goal
var foodsByGoal = map[domain.Goal][]string{
	domain.Gain: {
		"Peanut butter toast",
		"Chicken breast + rice",
		"Oats with banana",
		"Eggs",
		"Milkshake",
	},
	domain.Maintain: {
		"Veg sandwich",
		"Tofu stir-fry",
		"Paneer salad",
		"Fruit bowl",
		"Greek yogurt",
	},
	domain.Lose: {
		"Boiled eggs",
		"Soup",
		"Veg wrap",
		"Cucumber salad",
		"Green tea",
	},
}

// notFoundSuggestion is returned when no knowledge topic matches a query
const notFoundSuggestion = "Sorry, we couldn't find suggestions for that issue. " +
	"Try general terms like 'diabetes', 'headache', or 'fatigue'."

// RecommendationEngine maps goals to meal suggestions and free-text health
// queries to knowledge catalog entries. Stateless; safe for concurrent use.
type RecommendationEngine struct {
	knowledge *catalog.Knowledge
}

// NewRecommendationEngine creates a recommendation engine over the given
// knowledge catalog
func NewRecommendationEngine(knowledge *catalog.Knowledge) *RecommendationEngine {
	return &RecommendationEngine{knowledge: knowledge}
}

// FoodRecommendation returns the fixed meal list for a goal, or an empty
// slice for unrecognized goals.
func (e *RecommendationEngine) FoodRecommendation(goal domain.Goal) []string {
	items, ok := foodsByGoal[goal]
	if !ok {
		return []string{}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// LookupTopic returns the first knowledge topic whose key appears as a
// substring of the query, scanning topics in catalog order (catalog order,
// not specificity, resolves overlapping keys).
func (e *RecommendationEngine) LookupTopic(query string) (domain.HealthTopic, bool) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, topic := range e.knowledge.Topics() {
		if strings.Contains(q, topic.Key) {
			return topic, true
		}
	}
	return domain.HealthTopic{}, false
}

// HealthSuggestion returns a markdown-formatted suggestion for the first
// matching knowledge topic, or a fixed not-found message when no key matches.
func (e *RecommendationEngine) HealthSuggestion(query string) string {
	topic, ok := e.LookupTopic(query)
	if !ok {
		return notFoundSuggestion
	}
	return formatSuggestion(topic)
}

// formatSuggestion renders a topic as a description line followed by a
// bulleted tip list
func formatSuggestion(topic domain.HealthTopic) string {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(topic.Description)
	b.WriteString("**\n\n**Tips:**\n")
	for i, tip := range topic.Tips {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(tip)
	}
	return b.String()
}
