package advisor

import (
	"errors"
	"testing"

	"github.com/fit-advisor/internal/catalog"
	"github.com/fit-advisor/internal/domain"
)

func TestWorkoutParser(t *testing.T) {
	parser := NewWorkoutParser(catalog.DefaultActivities())

	testCases := []struct {
		name             string
		input            string
		expectedActivity string
		expectedMinutes  int
	}{
		{
			name:             "Minutes of cycling",
			input:            "I did 30 minutes of cycling",
			expectedActivity: "cycling",
			expectedMinutes:  30,
		},
		{
			name:             "Short min token",
			input:            "45 min of running today",
			expectedActivity: "running",
			expectedMinutes:  45,
		},
		{
			name:             "No space before unit",
			input:            "did 20min swimming",
			expectedActivity: "swimming",
			expectedMinutes:  20,
		},
		{
			name:             "Mixed case",
			input:            "I Did 30 MINUTES Of CYCLING",
			expectedActivity: "cycling",
			expectedMinutes:  30,
		},
		{
			name:             "Activity before duration",
			input:            "went dancing for about 90 minutes",
			expectedActivity: "dancing",
			expectedMinutes:  90,
		},
		{
			name:             "First duration match wins",
			input:            "10 min warmup then 50 minutes of weights",
			expectedActivity: "weights",
			expectedMinutes:  10,
		},
		{
			name:             "Multi-word activity",
			input:            "15 minutes of jumping rope",
			expectedActivity: "jumping rope",
			expectedMinutes:  15,
		},
		{
			name:             "Catalog order breaks ties",
			input:            "30 min of walking and running",
			expectedActivity: "walking",
			expectedMinutes:  30,
		},
		{
			name:             "Substring matching is intentional",
			input:            "spent 30 minutes growing tomatoes",
			expectedActivity: "rowing",
			expectedMinutes:  30,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := parser.Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.input, err)
			}
			if result.Activity != tc.expectedActivity {
				t.Errorf("Activity = %v, want %v", result.Activity, tc.expectedActivity)
			}
			if result.DurationMinutes != tc.expectedMinutes {
				t.Errorf("DurationMinutes = %v, want %v", result.DurationMinutes, tc.expectedMinutes)
			}
		})
	}
}

func TestWorkoutParserMissingDuration(t *testing.T) {
	parser := NewWorkoutParser(catalog.DefaultActivities())

	inputs := []string{
		"workout",
		"went cycling this morning",
		"ran for an hour",
		"",
	}

	for _, input := range inputs {
		_, err := parser.Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) expected error, got nil", input)
			continue
		}
		if !errors.Is(err, domain.ErrMissingDuration) {
			t.Errorf("Parse(%q) error = %v, want ErrMissingDuration", input, err)
		}
		var mde *domain.MissingDurationError
		if !errors.As(err, &mde) {
			t.Errorf("Parse(%q) error type = %T, want MissingDurationError", input, err)
		}
	}
}

func TestWorkoutParserUnknownActivity(t *testing.T) {
	parser := NewWorkoutParser(catalog.DefaultActivities())

	_, err := parser.Parse("45 min of something unknown")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrUnknownActivity) {
		t.Errorf("error = %v, want ErrUnknownActivity", err)
	}

	var uae *domain.UnknownActivityError
	if !errors.As(err, &uae) {
		t.Fatalf("error type = %T, want UnknownActivityError", err)
	}
	if len(uae.Examples) != maxErrorExamples {
		t.Errorf("Examples length = %d, want %d", len(uae.Examples), maxErrorExamples)
	}
}

func TestWorkoutParserDurationBeforeActivity(t *testing.T) {
	// The duration check runs first: text without a duration reports
	// MissingDurationError even when the activity is also unknown.
	parser := NewWorkoutParser(catalog.DefaultActivities())

	_, err := parser.Parse("played chess")
	if !errors.Is(err, domain.ErrMissingDuration) {
		t.Errorf("error = %v, want ErrMissingDuration", err)
	}
}

func TestWorkoutParserIsPure(t *testing.T) {
	parser := NewWorkoutParser(catalog.DefaultActivities())

	first, err := parser.Parse("I did 30 minutes of cycling")
	if err != nil {
		t.Fatal(err)
	}
	second, err := parser.Parse("I did 30 minutes of cycling")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("repeated parse differs: %v vs %v", first, second)
	}
}
