package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/topics/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", m.Handler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/topics/abc", nil)
		router.ServeHTTP(w, req)
	}

	got := testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/api/v1/topics/:id", "200"))
	if got != 3 {
		t.Errorf("request counter = %v, want 3", got)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Error("exposition does not contain http_requests_total")
	}
}

func TestObservers(t *testing.T) {
	m := New()
	m.ObserveTopicEvaluation(true)
	m.ObserveTopicEvaluation(false)
	m.ObserveTopicEvaluation(false)
	m.ObserveAnswerSaved()
	m.ObserveCompletion("low")

	if got := testutil.ToFloat64(m.TopicEvaluations.WithLabelValues("miss")); got != 2 {
		t.Errorf("miss counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AnswersSaved); got != 1 {
		t.Errorf("answers counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AssessmentsCompleted.WithLabelValues("low")); got != 1 {
		t.Errorf("completion counter = %v, want 1", got)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveAnswerSaved()
}
