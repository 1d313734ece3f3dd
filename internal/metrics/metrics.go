// Package metrics exposes Prometheus collectors for HTTP traffic and pagination.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxviazov/pokedex-service/internal/repository/paginate"
)

const namespace = "pokedex"

// Pagination load outcomes.
const (
	ResultWindow   = "window"
	ResultFallback = "fallback"
	ResultError    = "error"
)

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	pages    *prometheus.CounterVec
}

// New builds a private registry so tests can create as many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pagination",
			Name:      "loads_total",
			Help:      "Page loads by outcome: window (single statement), fallback (extra COUNT), error.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.pages,
	)
	return m
}

// ObservePage implements paginate.Observer.
func (m *Metrics) ObservePage(fallback bool, err error) {
	switch {
	case err != nil:
		m.pages.WithLabelValues(ResultError).Inc()
	case fallback:
		m.pages.WithLabelValues(ResultFallback).Inc()
	default:
		m.pages.WithLabelValues(ResultWindow).Inc()
	}
}

// PageLoads returns the counter for one outcome.
func (m *Metrics) PageLoads(result string) prometheus.Counter {
	return m.pages.WithLabelValues(result)
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Requests returns the request counter for one label combination.
func (m *Metrics) Requests(method, route string, status int) prometheus.Counter {
	return m.requests.WithLabelValues(method, route, strconv.Itoa(status))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var _ paginate.Observer = (*Metrics)(nil)
