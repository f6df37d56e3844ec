package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTokenValidator implements TokenValidator for testing
type MockTokenValidator struct {
	ValidToken   string
	ValidClaims  *auth.Claims
	ExpiredError bool
}

func (m *MockTokenValidator) ValidateAccessToken(tokenString string) (*auth.Claims, error) {
	if m.ExpiredError {
		return nil, auth.ErrTokenExpired
	}
	if tokenString == m.ValidToken && m.ValidClaims != nil {
		return m.ValidClaims, nil
	}
	return nil, auth.ErrInvalidToken
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	mock := &MockTokenValidator{
		ValidToken:  "valid-token",
		ValidClaims: &auth.Claims{UserID: userID.Hex()},
	}

	var got primitive.ObjectID
	router := gin.New()
	router.Use(AuthMiddleware(mock))
	router.GET("/test", func(c *gin.Context) {
		got, _ = GetUserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got != userID {
		t.Errorf("GetUserID() = %s, want %s", got.Hex(), userID.Hex())
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mock   *MockTokenValidator
		header string
	}{
		{"Missing header", &MockTokenValidator{}, ""},
		{"Missing Bearer prefix", &MockTokenValidator{}, "token-only"},
		{"Wrong prefix", &MockTokenValidator{}, "Basic token"},
		{"Empty token", &MockTokenValidator{}, "Bearer "},
		{"Invalid token", &MockTokenValidator{ValidToken: "valid-token", ValidClaims: &auth.Claims{UserID: primitive.NewObjectID().Hex()}}, "Bearer other"},
		{"Expired token", &MockTokenValidator{ExpiredError: true}, "Bearer valid-token"},
		{"Non ObjectID user", &MockTokenValidator{ValidToken: "valid-token", ValidClaims: &auth.Claims{UserID: "alice"}}, "Bearer valid-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(AuthMiddleware(tt.mock))
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

func TestGetUserID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := GetUserID(c); ok {
		t.Error("GetUserID() ok = true on an unauthenticated context")
	}
	if _, ok := GetClaims(c); ok {
		t.Error("GetClaims() ok = true on an unauthenticated context")
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("Generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		if w.Header().Get("X-Request-ID") == "" || w.Body.String() != w.Header().Get("X-Request-ID") {
			t.Errorf("request id header %q, body %q", w.Header().Get("X-Request-ID"), w.Body.String())
		}
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Header().Get("X-Request-ID") != "abc-123" {
			t.Errorf("X-Request-ID = %q, want abc-123", w.Header().Get("X-Request-ID"))
		}
	})
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://app.example.com"}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"Allowed origin", http.MethodGet, "https://app.example.com", "https://app.example.com", http.StatusOK},
		{"Unknown origin", http.MethodGet, "https://evil.example.com", "", http.StatusOK},
		{"Preflight", http.MethodOptions, "https://app.example.com", "https://app.example.com", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestSecureHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecureHeaders())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestLogger_WritesStructuredLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestID(), Logger(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?x=1", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/test?x=1" || fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("fields = %v", fields)
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("level = %v, want warn for a 4xx", entries[0].Level)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(RequestID(), Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d entries, want 1", logs.Len())
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("burst requests were rejected")
	}
	if rl.Allow("a") {
		t.Error("third request within the window was allowed")
	}
	if !rl.Allow("b") {
		t.Error("another client was limited")
	}

	now = now.Add(30 * time.Second)
	if !rl.Allow("a") {
		t.Error("bucket did not refill after half a window")
	}

	now = now.Add(10 * time.Minute)
	rl.Allow("c")
	rl.mu.Lock()
	_, stale := rl.visitors["b"]
	rl.mu.Unlock()
	if stale {
		t.Error("idle client bucket was not evicted")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)

	router := gin.New()
	router.Use(rl.RateLimit())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 429]", codes)
	}
}
