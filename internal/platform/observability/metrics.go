package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics of the service.
type Metrics struct {
	// Registry owns these metrics and backs the /metrics endpoint.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	generationRuns  *prometheus.CounterVec
	tasksGenerated  *prometheus.CounterVec
	tasksSkipped    *prometheus.CounterVec
	noteActions     *prometheus.CounterVec
}

// NewMetrics creates a dedicated registry and registers every metric in it,
// so it can be called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cabinet_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		generationRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cabinet_generation_runs_total",
				Help: "Task generator runs by generator and outcome.",
			},
			[]string{"generator", "outcome"},
		),
		tasksGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cabinet_tasks_generated_total",
				Help: "Tasks created by generators.",
			},
			[]string{"generator"},
		),
		tasksSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cabinet_tasks_skipped_total",
				Help: "Tasks not created because they already existed.",
			},
			[]string{"generator"},
		),
		noteActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cabinet_conditional_note_actions_total",
				Help: "Conditional-notes actions by kind.",
			},
			[]string{"action"},
		),
	}
}

// RecordGeneration records one generator run.
func (m *Metrics) RecordGeneration(generator string, created, skipped int, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.generationRuns.WithLabelValues(generator, outcome).Inc()
	m.tasksGenerated.WithLabelValues(generator).Add(float64(created))
	m.tasksSkipped.WithLabelValues(generator).Add(float64(skipped))
}

// IncrNoteAction counts one conditional-notes action.
func (m *Metrics) IncrNoteAction(action string) {
	if m == nil {
		return
	}
	m.noteActions.WithLabelValues(action).Inc()
}

// Middleware records the duration of every request under its route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
