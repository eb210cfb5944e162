package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulseboard/app"
	"pulseboard/ports"
)

// handleForecast projects the KPI's next four reporting periods
func (s *Server) handleForecast(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asOf, err := s.asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of"})
		return
	}

	result, err := s.container.ForecastService.Forecast(c.Request.Context(), id, asOf)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type scenarioRequest struct {
	Inputs []app.ScenarioInput `json:"inputs" binding:"required,min=1,dive"`
}

// handleScenario runs what-if projections against the KPI's current value
func (s *Server) handleScenario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	asOf, err := s.asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of"})
		return
	}

	result, err := s.container.ScenarioService.RunScenario(c.Request.Context(), id, req.Inputs, asOf)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleAnomalyCheck runs outlier detection over the KPI's recent history,
// raising an alert when the latest value is anomalous
func (s *Server) handleAnomalyCheck(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asOf, err := s.asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of"})
		return
	}

	result, err := s.container.AnomalyService.Detect(c.Request.Context(), id, asOf)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleListAlerts returns alerts newest first, with optional filters
func (s *Server) handleListAlerts(c *gin.Context) {
	filter := ports.AlertFilter{
		UnreadOnly:     c.Query("unread") == "true",
		UnresolvedOnly: c.Query("unresolved") == "true",
	}
	if raw := c.Query("kpi_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid kpi_id"})
			return
		}
		filter.KPIID = &id
	}
	if raw := c.Query("department_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department_id"})
			return
		}
		filter.DepartmentID = &id
	}

	alerts, err := s.container.AlertRepo.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// handleOverdueSweep raises overdue_submission alerts for KPIs with a target
// but no submission this period. Meant to be hit by a scheduler.
func (s *Server) handleOverdueSweep(c *gin.Context) {
	asOf, err := s.asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of"})
		return
	}

	raised, err := s.container.AlertEngine.SweepOverdue(c.Request.Context(), asOf)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"raised": raised, "count": len(raised)})
}

// handleAlertRead marks an alert as read
func (s *Server) handleAlertRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.container.AlertRepo.MarkRead(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type resolveRequest struct {
	ResolvedBy uuid.UUID `json:"resolved_by" binding:"required"`
}

// handleAlertResolve closes an alert. Resolution is terminal; resolving an
// already resolved alert is a conflict.
func (s *Server) handleAlertResolve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.container.AlertRepo.Resolve(c.Request.Context(), id, req.ResolvedBy); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
