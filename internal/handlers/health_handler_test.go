package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthHandler_Ping(t *testing.T) {
	handler := &HealthHandler{
		version: "1.0.0",
	}

	router := gin.New()
	router.GET("/health/ping", handler.Ping)

	req := httptest.NewRequest("GET", "/health/ping", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["status"] != "pong" {
		t.Errorf("Expected status 'pong', got '%s'", response["status"])
	}
}

func TestHealthHandler_Health(t *testing.T) {
	handler := &HealthHandler{
		version: "1.0.0",
	}

	router := gin.New()
	router.GET("/health", handler.Health)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", response.Status)
	}

	if response.Version != "1.0.0" {
		t.Errorf("Expected version '1.0.0', got '%s'", response.Version)
	}

	if response.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
}

func TestHealthHandler_Live(t *testing.T) {
	handler := &HealthHandler{
		version: "1.0.0",
	}

	router := gin.New()
	router.GET("/health/live", handler.Live)

	req := httptest.NewRequest("GET", "/health/live", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Status != "alive" {
		t.Errorf("Expected status 'alive', got '%s'", response.Status)
	}
}

func TestNewHealthHandler(t *testing.T) {
	handler := NewHealthHandler("1.2.3")

	if handler == nil {
		t.Fatal("Expected handler to be created")
	}

	if handler.version != "1.2.3" {
		t.Errorf("Expected version '1.2.3', got '%s'", handler.version)
	}

	if handler.startTime.IsZero() {
		t.Error("Expected startTime to be set")
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []DependencyCheck
		wantStatus int
		wantRedis  string
	}{
		{
			name:       "All healthy",
			checks:     []DependencyCheck{{Name: "mongodb", Critical: true, Check: ok}, {Name: "redis", Check: ok}},
			wantStatus: http.StatusOK,
			wantRedis:  "healthy",
		},
		{
			name:       "Optional dependency down",
			checks:     []DependencyCheck{{Name: "mongodb", Critical: true, Check: ok}, {Name: "redis", Check: down}},
			wantStatus: http.StatusOK,
			wantRedis:  "unhealthy",
		},
		{
			name:       "Database down",
			checks:     []DependencyCheck{{Name: "mongodb", Critical: true, Check: down}, {Name: "redis", Check: ok}},
			wantStatus: http.StatusServiceUnavailable,
			wantRedis:  "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			NewHealthHandler("1.0.0", tt.checks...).RegisterRoutes(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var response HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response.Services["redis"] != tt.wantRedis {
				t.Errorf("redis = %q, want %q", response.Services["redis"], tt.wantRedis)
			}
		})
	}
}

func TestHealthHandler_DetailedDegraded(t *testing.T) {
	handler := NewHealthHandler("1.0.0", DependencyCheck{
		Name:  "redis",
		Check: func(context.Context) error { return errors.New("timeout") },
	})

	router := gin.New()
	router.GET("/health/detailed", handler.Detailed)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health/detailed", nil))

	var response DetailedHealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Status != "degraded" {
		t.Errorf("Expected status 'degraded', got '%s'", response.Status)
	}
	if response.Services["redis"].Description != "timeout" {
		t.Errorf("Expected redis description 'timeout', got %+v", response.Services["redis"])
	}
}
