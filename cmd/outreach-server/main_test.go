package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pulsepharma/outreach/internal/platform/telemetry"
)

func TestRequestCounter(t *testing.T) {
	metrics := telemetry.New()
	e := echo.New()
	e.Use(requestCounter(metrics))
	e.GET("/api/v1/doctors", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "no")
	})
	e.GET("/broken", func(c echo.Context) error {
		return errors.New("internal")
	})

	for _, path := range []string{"/api/v1/doctors", "/boom", "/broken"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
	}

	expoReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	expoRec := httptest.NewRecorder()
	c := e.NewContext(expoReq, expoRec)
	if err := metrics.Handler()(c); err != nil {
		t.Fatalf("metrics handler: %v", err)
	}

	body := expoRec.Body.String()
	for _, want := range []string{
		`outreach_http_requests_total{method="GET",path="/api/v1/doctors",status="200"} 1`,
		`outreach_http_requests_total{method="GET",path="/boom",status="403"} 1`,
		`outreach_http_requests_total{method="GET",path="/broken",status="` + strconv.Itoa(http.StatusInternalServerError) + `"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}
