package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulseboard/models"
)

// handleListKPIs returns the KPI catalog, optionally scoped to a department
func (s *Server) handleListKPIs(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	if raw := c.Query("department_id"); raw != "" {
		departmentID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department_id"})
			return
		}
		kpis, err := s.container.KPIRepo.ListByDepartment(c.Request.Context(), departmentID, activeOnly)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"kpis": kpis})
		return
	}

	kpis, err := s.container.KPIRepo.ListKPIs(c.Request.Context(), activeOnly)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kpis": kpis})
}

// handleGetKPI returns a single KPI
func (s *Server) handleGetKPI(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	kpi, err := s.container.KPIRepo.GetKPI(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpi)
}

// handleCreateKPI registers a new KPI
func (s *Server) handleCreateKPI(c *gin.Context) {
	var kpi models.KPI
	if err := c.ShouldBindJSON(&kpi); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := kpi.Validate(); err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.container.KPIRepo.CreateKPI(c.Request.Context(), &kpi); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, kpi)
}

// handleListTargets returns all period targets recorded for a KPI
func (s *Server) handleListTargets(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	targets, err := s.container.TargetRepo.ListForKPI(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets})
}

// handleCreateTarget records a period target for a KPI. The threshold triple
// is validated against the KPI's polarity before it is stored.
func (s *Server) handleCreateTarget(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var target models.Target
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target.KPIID = id

	kpi, err := s.container.KPIRepo.GetKPI(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := target.Threshold.ValidateFor(kpi.Polarity); err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.container.TargetRepo.CreateTarget(c.Request.Context(), &target); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, target)
}

// handleListDepartments returns departments, optionally active only
func (s *Server) handleListDepartments(c *gin.Context) {
	departments, err := s.container.DepartmentRepo.ListDepartments(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// handleListPillars returns the strategic pillars in sort order
func (s *Server) handleListPillars(c *gin.Context) {
	pillars, err := s.container.DepartmentRepo.ListPillars(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pillars": pillars})
}
