package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMetrics_Exposition(t *testing.T) {
	m := New()
	m.Logins.WithLabelValues("BE", "success").Inc()
	m.CampsCreated.Inc()
	m.CampsCreated.Inc()
	m.DoctorQueries.Inc()
	m.HTTPRequests.WithLabelValues("GET", "/api/v1/doctors", "200").Inc()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := m.Handler()(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`outreach_logins_total{outcome="success",role="BE"} 1`,
		"outreach_camps_created_total 2",
		"outreach_doctor_queries_total 1",
		`outreach_http_requests_total{method="GET",path="/api/v1/doctors",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
