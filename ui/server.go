// Package ui exposes the dashboard over HTTP: a JSON API for submissions,
// analytics and roll-ups, plus a small set of HTML fragments for embedding.
package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pulseboard/domain/core"
	"pulseboard/domain/eval"
	"pulseboard/internal"
	"pulseboard/internal/container"
	"pulseboard/models"
)

// Server represents the web server for the performance dashboard
type Server struct {
	router    *gin.Engine
	container *container.Container
	clock     core.Clock
	logger    *internal.Logger
}

// NewServer creates a web server over an initialized container
func NewServer(c *container.Container) *Server {
	gin.SetMode(c.Config.Server.GinMode)

	s := &Server{
		router:    gin.New(),
		container: c,
		clock:     core.SystemClock,
		logger:    c.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// Ops endpoints live on their own chi sub-router
	ops := newOpsRouter(s.container.DB)
	s.router.GET("/healthz", gin.WrapH(ops))
	s.router.GET("/readyz", gin.WrapH(ops))

	api := s.router.Group("/api")
	{
		// Submission lifecycle
		api.POST("/submissions", s.handleSubmit)
		api.POST("/submissions/:id/approve", s.handleApprove)
		api.POST("/submissions/:id/reject", s.handleReject)

		// KPI and target catalog
		api.GET("/kpis", s.handleListKPIs)
		api.POST("/kpis", s.handleCreateKPI)
		api.GET("/kpis/:id", s.handleGetKPI)
		api.GET("/kpis/:id/targets", s.handleListTargets)
		api.POST("/kpis/:id/targets", s.handleCreateTarget)
		api.GET("/departments", s.handleListDepartments)
		api.GET("/pillars", s.handleListPillars)

		// Per-KPI analytics
		api.GET("/kpis/:id/submissions", s.handleListSubmissions)
		api.GET("/kpis/:id/status", s.handleKPIStatus)
		api.GET("/kpis/:id/forecast", s.handleForecast)
		api.POST("/kpis/:id/scenario", s.handleScenario)
		api.POST("/kpis/:id/anomaly-check", s.handleAnomalyCheck)

		// Alerts
		api.GET("/alerts", s.handleListAlerts)
		api.POST("/alerts/overdue-sweep", s.handleOverdueSweep)
		api.POST("/alerts/:id/read", s.handleAlertRead)
		api.POST("/alerts/:id/resolve", s.handleAlertResolve)

		// Dashboard roll-ups
		api.GET("/dashboard/departments", s.handleDepartmentScores)
		api.GET("/dashboard/organization", s.handleOrganizationScore)
		api.GET("/reports/departments.xlsx", s.handleDepartmentReport)
	}

	// HTML fragments for dashboard embedding
	fragments := s.router.Group("/fragments")
	{
		fragments.GET("/kpis/:id/forecast", s.handleForecastFragment)
		fragments.GET("/alerts/:id", s.handleAlertFragment)
	}
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting dashboard server on http://%s", addr)
	return s.router.Run(addr)
}

// Handler exposes the underlying handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// asOf reads the optional as_of query parameter, falling back to the server
// clock. Accepts a date or a full RFC 3339 timestamp.
func (s *Server) asOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return s.clock(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// period reads year/quarter query parameters, defaulting to the quarter the
// server clock falls in
func (s *Server) period(c *gin.Context) (eval.Period, error) {
	now, err := s.asOf(c)
	if err != nil {
		return eval.Period{}, err
	}
	fallback, err := eval.ResolvePeriod(now, models.FrequencyQuarterly)
	if err != nil {
		return eval.Period{}, err
	}

	period := fallback
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return eval.Period{}, err
		}
		period.Year = year
	}
	if raw := c.Query("quarter"); raw != "" {
		quarter, err := strconv.Atoi(raw)
		if err != nil || quarter < 1 || quarter > 4 {
			return eval.Period{}, core.NewValidationError("quarter", "must be 1-4")
		}
		period.Quarter = quarter
	}
	return period, nil
}
