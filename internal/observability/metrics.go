// Package observability exposes prometheus collectors for the advisor.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fit_advisor"

var (
	workoutsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "workouts_logged_total",
		Help:      "Number of workout records appended to the session log.",
	})

	parseFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "parser",
		Name:      "parse_failures_total",
		Help:      "Number of workout texts rejected by the parser, by reason.",
	}, []string{"reason"})

	suggestionLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "knowledge",
		Name:      "suggestion_lookups_total",
		Help:      "Number of health suggestion lookups, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(workoutsLogged, parseFailures, suggestionLookups)
}

// RecordWorkoutLogged counts a successfully appended workout record
func RecordWorkoutLogged() {
	workoutsLogged.Inc()
}

// RecordParseFailure counts a parse rejection.
// Reason is "missing_duration", "unknown_activity", or "invalid_input".
func RecordParseFailure(reason string) {
	if reason == "" {
		return
	}
	parseFailures.WithLabelValues(reason).Inc()
}

// RecordSuggestionLookup counts a knowledge lookup with outcome "hit" or "miss"
func RecordSuggestionLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	suggestionLookups.WithLabelValues(outcome).Inc()
}
