// Package metrics exposes Prometheus collectors for the HTTP layer and the evaluator.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector registered by the service
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter       *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	TopicEvaluations     *prometheus.CounterVec
	AnswersSaved         prometheus.Counter
	AssessmentsCompleted *prometheus.CounterVec
}

// New creates and registers the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		TopicEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskassess_topic_evaluations_total",
				Help: "Topic evaluations by cache outcome",
			},
			[]string{"cache"},
		),
		AnswersSaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "riskassess_answers_saved_total",
				Help: "Answers recorded on assessments",
			},
		),
		AssessmentsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskassess_assessments_completed_total",
				Help: "Completed assessments by risk level",
			},
			[]string{"risk_level"},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.TopicEvaluations,
		m.AnswersSaved,
		m.AssessmentsCompleted,
	)
	return m
}

// Middleware records request count and latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RequestCounter.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTopicEvaluation counts an evaluation, labelled hit or miss
func (m *Metrics) ObserveTopicEvaluation(cacheHit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	m.TopicEvaluations.WithLabelValues(label).Inc()
}

// ObserveAnswerSaved counts a saved answer
func (m *Metrics) ObserveAnswerSaved() {
	if m == nil {
		return
	}
	m.AnswersSaved.Inc()
}

// ObserveCompletion counts a completed assessment
func (m *Metrics) ObserveCompletion(riskLevel string) {
	if m == nil {
		return
	}
	m.AssessmentsCompleted.WithLabelValues(riskLevel).Inc()
}
