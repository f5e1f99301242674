// Package telemetry exposes Prometheus metrics for the outreach service.
package telemetry

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Logins        *prometheus.CounterVec
	CampsCreated  prometheus.Counter
	DoctorQueries prometheus.Counter
	HTTPRequests  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "logins_total",
			Help:      "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
		CampsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "camps_created_total",
			Help:      "Camps created.",
		}),
		DoctorQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "doctor_queries_total",
			Help:      "Territory-scoped doctor list queries.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
	}

	reg.MustRegister(m.Logins, m.CampsCreated, m.DoctorQueries, m.HTTPRequests)
	return m
}

// Handler returns the /metrics endpoint in Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
