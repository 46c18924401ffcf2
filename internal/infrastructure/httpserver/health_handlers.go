package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// dependencyHealth is one checker's verdict: the upstream search platform,
// the photo cache, and whatever else the server was wired with.
type dependencyHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthReport struct {
	Status       string                      `json:"status"`
	Service      string                      `json:"service"`
	Timestamp    string                      `json:"timestamp"`
	Dependencies map[string]dependencyHealth `json:"dependencies"`
}

// healthCheck probes every wired dependency within one shared deadline. Any
// unhealthy dependency degrades the report and the endpoint answers 503;
// search itself may still be partially serviceable (photos fall back, caches
// miss through), so the body names the exact dependency that failed.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	report := healthReport{
		Status:       "healthy",
		Service:      "tablescout",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Dependencies: make(map[string]dependencyHealth, len(s.healthCheckers)),
	}
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("health check failed")
			report.Dependencies[hc.Name()] = dependencyHealth{Status: "unhealthy", Error: err.Error()}
			report.Status = "degraded"
		} else {
			report.Dependencies[hc.Name()] = dependencyHealth{Status: "healthy"}
		}
	}

	code := http.StatusOK
	if report.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}
