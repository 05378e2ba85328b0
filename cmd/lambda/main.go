// Package main provides the Lambda handler for the fitness advisor.
// This is the entry point for AWS Lambda Function URL deployment.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/fit-advisor/internal/config"
	"github.com/fit-advisor/internal/controller"
	"github.com/fit-advisor/internal/domain"
	"github.com/fit-advisor/internal/web"
)

var (
	ctrlOnce sync.Once
	ctrl     *controller.Controller
	ctrlErr  error
)

// getController builds the controller once per Lambda container. The session
// log lives for the lifetime of the container, like a browser session.
func getController() (*controller.Controller, error) {
	ctrlOnce.Do(func() {
		ctrl, ctrlErr = controller.New()
	})
	return ctrl, ctrlErr
}

// Handler processes Lambda Function URL requests
func Handler(ctx context.Context, request events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	path := request.RawPath
	method := request.RequestContext.HTTP.Method

	// Log request (goes to CloudWatch)
	fmt.Printf("[%s] %s %s\n", time.Now().Format(time.RFC3339), method, path)

	// CORS headers
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
		"Content-Type":                 "application/json",
	}

	// Handle OPTIONS (CORS preflight)
	if method == "OPTIONS" {
		return events.LambdaFunctionURLResponse{
			StatusCode: 200,
			Headers:    headers,
			Body:       "",
		}, nil
	}

	switch {
	case path == "/" || path == "/index.html":
		return serveStaticFile("static/index.html", "text/html")
	case path == "/api/health" && method == "GET":
		return handleHealth()
	case path == "/api/workouts" && method == "POST":
		return handleWorkouts(request.Body)
	case path == "/api/history" && method == "GET":
		return handleHistory(request.QueryStringParameters["n"])
	case path == "/api/summary" && method == "GET":
		return handleSummary()
	case path == "/api/profile" && method == "POST":
		return handleProfile(request.Body)
	case path == "/api/suggest" && method == "POST":
		return handleSuggest(request.Body)
	case path == "/api/activities" && method == "GET":
		return handleActivities()
	case path == "/api/topics" && method == "GET":
		return handleTopics()
	default:
		// Try static files
		if strings.HasPrefix(path, "/") {
			return serveStaticFile("static"+path, getContentType(path))
		}
		return events.LambdaFunctionURLResponse{
			StatusCode: 404,
			Headers:    headers,
			Body:       `{"error": "Not found"}`,
		}, nil
	}
}

func serveStaticFile(path string, contentType string) (events.LambdaFunctionURLResponse, error) {
	staticFS := web.GetStaticFS()
	data, err := fs.ReadFile(staticFS, path)
	if err != nil {
		return events.LambdaFunctionURLResponse{
			StatusCode: 404,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       fmt.Sprintf(`{"error": "File not found: %s"}`, path),
		}, nil
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": contentType},
		Body:       string(data),
	}, nil
}

func getContentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"):
		return "text/html"
	case strings.HasSuffix(path, ".css"):
		return "text/css"
	case strings.HasSuffix(path, ".js"):
		return "application/javascript"
	case strings.HasSuffix(path, ".json"):
		return "application/json"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".svg"):
		return "image/svg+xml"
	default:
		return "text/plain"
	}
}

// errorCode maps domain errors to HTTP status codes
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingDuration),
		errors.Is(err, domain.ErrUnknownActivity),
		errors.Is(err, domain.ErrInvalidHeight),
		errors.Is(err, domain.ErrInvalidInput):
		return 422
	default:
		return 500
	}
}

func handleWorkouts(body string) (events.LambdaFunctionURLResponse, error) {
	var req controller.LogWorkoutRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return jsonResponse(400, map[string]interface{}{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}

	resp, err := c.LogWorkout(req)
	if err != nil {
		return jsonResponse(errorCode(err), map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	return jsonResponse(201, map[string]interface{}{
		"success": true,
		"record":  resp.Record,
		"summary": resp.Summary,
	})
}

func handleHistory(rawN string) (events.LambdaFunctionURLResponse, error) {
	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}

	n := 0
	if rawN != "" {
		fmt.Sscanf(rawN, "%d", &n)
	}

	return jsonResponse(200, map[string]interface{}{
		"success": true,
		"records": c.History(n),
	})
}

func handleSummary() (events.LambdaFunctionURLResponse, error) {
	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}
	summary := c.Summary()
	return jsonResponse(200, map[string]interface{}{
		"success":            true,
		"totalWorkouts":      summary.TotalWorkouts,
		"totalCalories":      summary.TotalCalories,
		"caloriesByActivity": summary.CaloriesByActivity,
	})
}

func handleProfile(body string) (events.LambdaFunctionURLResponse, error) {
	var req struct {
		WeightKg float64 `json:"weightKg"`
		HeightCm float64 `json:"heightCm"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return jsonResponse(400, map[string]interface{}{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}

	resp, err := c.EvaluateProfile(req.WeightKg, req.HeightCm)
	if err != nil {
		return jsonResponse(errorCode(err), map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	return jsonResponse(200, map[string]interface{}{
		"success":  true,
		"weightKg": resp.WeightKg,
		"heightCm": resp.HeightCm,
		"bmi":      resp.BMI,
		"goal":     resp.Goal,
		"foods":    resp.Foods,
	})
}

func handleSuggest(body string) (events.LambdaFunctionURLResponse, error) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return jsonResponse(400, map[string]interface{}{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}

	return jsonResponse(200, map[string]interface{}{
		"success":    true,
		"suggestion": c.HealthSuggestion(req.Query),
	})
}

func handleActivities() (events.LambdaFunctionURLResponse, error) {
	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}
	return jsonResponse(200, map[string]interface{}{
		"success":    true,
		"activities": c.Activities(),
	})
}

func handleTopics() (events.LambdaFunctionURLResponse, error) {
	c, err := getController()
	if err != nil {
		return jsonResponse(500, map[string]interface{}{"success": false, "error": err.Error()})
	}

	topics := c.Topics()
	keys := make([]string, len(topics))
	for i, topic := range topics {
		keys[i] = topic.Key
	}
	return jsonResponse(200, map[string]interface{}{
		"success": true,
		"topics":  keys,
	})
}

func handleHealth() (events.LambdaFunctionURLResponse, error) {
	return jsonResponse(200, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
		"checks": map[string]string{
			"activity_catalog":  "ok",
			"knowledge_catalog": "ok",
		},
	})
}

func jsonResponse(statusCode int, body interface{}) (events.LambdaFunctionURLResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return events.LambdaFunctionURLResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error": "Failed to serialize response"}`,
		}, nil
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		},
		Body: string(jsonBody),
	}, nil
}

func main() {
	// Initialize config
	_ = config.Get()

	// Start Lambda handler
	lambda.Start(Handler)
}
