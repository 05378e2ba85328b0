package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(8000)
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest("GET", "/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(server.handleHealth)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Errorf("Failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("Status = %v, want healthy", resp.Status)
	}
	if resp.Version != "1.0.0" {
		t.Errorf("Version = %v, want 1.0.0", resp.Version)
	}
	if resp.Checks == nil {
		t.Error("Checks should not be nil")
	}
}

func TestWorkoutsEndpoint(t *testing.T) {
	server := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"text":     "I did 30 minutes of cycling",
		"weightKg": 70.0,
		"heightCm": 170.0,
	})
	req, _ := http.NewRequest("POST", "/api/workouts", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(server.handleWorkouts)
	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Fatalf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	var resp WorkoutResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Success should be true")
	}
	if resp.Record.Activity != "cycling" {
		t.Errorf("Activity = %v, want cycling", resp.Record.Activity)
	}
	if resp.Record.Calories != 238.0 {
		t.Errorf("Calories = %v, want 238.0", resp.Record.Calories)
	}
	if resp.Record.ID == "" {
		t.Error("Record ID should be assigned")
	}
	if resp.Summary != "Added cycling for 30 min - ~238.00 cal burned" {
		t.Errorf("Summary = %q", resp.Summary)
	}
}

func TestWorkoutsEndpointValidation(t *testing.T) {
	server := newTestServer(t)
	handler := http.HandlerFunc(server.handleWorkouts)

	// Wrong method
	req, _ := http.NewRequest("GET", "/api/workouts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET returned %v, want %v", rr.Code, http.StatusMethodNotAllowed)
	}

	// Invalid JSON
	req, _ = http.NewRequest("POST", "/api/workouts", bytes.NewBuffer([]byte("invalid json")))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON returned %v, want %v", rr.Code, http.StatusBadRequest)
	}

	// Missing duration is a client error
	body, _ := json.Marshal(map[string]interface{}{
		"text":     "went cycling today",
		"weightKg": 70.0,
		"heightCm": 170.0,
	})
	req, _ = http.NewRequest("POST", "/api/workouts", bytes.NewBuffer(body))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing duration returned %v, want %v", rr.Code, http.StatusUnprocessableEntity)
	}
	var errResp apiError
	json.NewDecoder(rr.Body).Decode(&errResp)
	if errResp.Success {
		t.Error("error response should have success=false")
	}
	if errResp.Error == "" {
		t.Error("error response should carry a message")
	}
}

func TestHistoryAndSummaryEndpoints(t *testing.T) {
	server := newTestServer(t)

	texts := []string{
		"30 minutes of cycling",
		"60 min of walking",
		"15 minutes of cycling",
	}
	for _, text := range texts {
		body, _ := json.Marshal(map[string]interface{}{
			"text": text, "weightKg": 70.0, "heightCm": 170.0,
		})
		req, _ := http.NewRequest("POST", "/api/workouts", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()
		server.handleWorkouts(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("logging %q returned %v", text, rr.Code)
		}
	}

	req, _ := http.NewRequest("GET", "/api/history?n=2", nil)
	rr := httptest.NewRecorder()
	server.handleHistory(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("history returned %v", rr.Code)
	}
	var hist HistoryResponse
	if err := json.NewDecoder(rr.Body).Decode(&hist); err != nil {
		t.Fatalf("Failed to decode history: %v", err)
	}
	if len(hist.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(hist.Records))
	}
	if hist.Records[0].Activity != "walking" || hist.Records[1].Activity != "cycling" {
		t.Errorf("tail order wrong: %v, %v", hist.Records[0].Activity, hist.Records[1].Activity)
	}

	req, _ = http.NewRequest("GET", "/api/history?n=abc", nil)
	rr = httptest.NewRecorder()
	server.handleHistory(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("invalid n returned %v, want %v", rr.Code, http.StatusBadRequest)
	}

	req, _ = http.NewRequest("GET", "/api/summary", nil)
	rr = httptest.NewRecorder()
	server.handleSummary(rr, req)
	var sum SummaryResponse
	if err := json.NewDecoder(rr.Body).Decode(&sum); err != nil {
		t.Fatalf("Failed to decode summary: %v", err)
	}
	if sum.TotalWorkouts != 3 {
		t.Errorf("TotalWorkouts = %d, want 3", sum.TotalWorkouts)
	}
	// cycling 238 + 119, walking 245
	if sum.TotalCalories != 602.0 {
		t.Errorf("TotalCalories = %v, want 602.0", sum.TotalCalories)
	}
	if len(sum.ByActivity) != 2 {
		t.Fatalf("len(ByActivity) = %d, want 2", len(sum.ByActivity))
	}
	// Sorted by activity name
	if sum.ByActivity[0].Activity != "cycling" || sum.ByActivity[0].Calories != 357.0 {
		t.Errorf("ByActivity[0] = %+v, want cycling 357.0", sum.ByActivity[0])
	}
	if sum.ByActivity[1].Activity != "walking" || sum.ByActivity[1].Calories != 245.0 {
		t.Errorf("ByActivity[1] = %+v, want walking 245.0", sum.ByActivity[1])
	}
}

func TestProfileEndpoint(t *testing.T) {
	server := newTestServer(t)

	body, _ := json.Marshal(ProfileRequest{WeightKg: 70, HeightCm: 170})
	req, _ := http.NewRequest("POST", "/api/profile", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	server.handleProfile(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("profile returned %v", rr.Code)
	}
	var resp ProfileResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.BMI != 24.22 {
		t.Errorf("BMI = %v, want 24.22", resp.BMI)
	}
	if resp.Goal != "maintain" {
		t.Errorf("Goal = %v, want maintain", resp.Goal)
	}
	if len(resp.Foods) != 5 {
		t.Errorf("len(Foods) = %d, want 5", len(resp.Foods))
	}

	// Out-of-range weight is rejected
	body, _ = json.Marshal(ProfileRequest{WeightKg: 30, HeightCm: 170})
	req, _ = http.NewRequest("POST", "/api/profile", bytes.NewBuffer(body))
	rr = httptest.NewRecorder()
	server.handleProfile(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("weight 30 returned %v, want %v", rr.Code, http.StatusUnprocessableEntity)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	server := newTestServer(t)

	body, _ := json.Marshal(SuggestRequest{Query: "I have diabetes"})
	req, _ := http.NewRequest("POST", "/api/suggest", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()
	server.handleSuggest(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("suggest returned %v", rr.Code)
	}
	var resp SuggestResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Suggestion == "" {
		t.Error("Suggestion should not be empty")
	}
}

func TestActivitiesEndpoint(t *testing.T) {
	server := newTestServer(t)

	req, _ := http.NewRequest("GET", "/api/activities", nil)
	rr := httptest.NewRecorder()
	server.handleActivities(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("activities returned %v", rr.Code)
	}
	var resp ActivitiesResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Activities) == 0 {
		t.Fatal("Activities should not be empty")
	}
	if resp.Activities[0].Name != "walking" {
		t.Errorf("first activity = %v, want walking", resp.Activities[0].Name)
	}
}

func TestTopicsEndpoint(t *testing.T) {
	server := newTestServer(t)

	req, _ := http.NewRequest("GET", "/api/topics", nil)
	rr := httptest.NewRecorder()
	server.handleTopics(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("topics returned %v", rr.Code)
	}
	var resp TopicsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Topics) == 0 {
		t.Fatal("Topics should not be empty")
	}
	if resp.Topics[0] != "diabetes" {
		t.Errorf("first topic = %v, want diabetes", resp.Topics[0])
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.Allow("192.168.1.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if rl.Allow("192.168.1.1") {
		t.Error("6th request should be denied")
	}

	if !rl.Allow("192.168.1.2") {
		t.Error("Request from different IP should be allowed")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
	wrapped := rl.Middleware(handler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		rr := httptest.NewRecorder()
		wrapped(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("Request %d should return 200, got %d", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"
	rr := httptest.NewRecorder()
	wrapped(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("3rd request should return 429, got %d", rr.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name          string
		xForwardedFor string
		xRealIP       string
		remoteAddr    string
		expectedIP    string
	}{
		{
			name:          "X-Forwarded-For header",
			xForwardedFor: "10.0.0.1, 192.168.1.1",
			remoteAddr:    "127.0.0.1:8000",
			expectedIP:    "10.0.0.1",
		},
		{
			name:       "X-Real-IP header",
			xRealIP:    "10.0.0.2",
			remoteAddr: "127.0.0.1:8000",
			expectedIP: "10.0.0.2",
		},
		{
			name:       "RemoteAddr fallback",
			remoteAddr: "192.168.1.100:54321",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.100",
			expectedIP: "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			req.RemoteAddr = tt.remoteAddr

			ip := getClientIP(req)
			if ip != tt.expectedIP {
				t.Errorf("getClientIP() = %v, want %v", ip, tt.expectedIP)
			}
		})
	}
}
