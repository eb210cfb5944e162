package ui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleDepartmentScores returns the per-department roll-up for a period
func (s *Server) handleDepartmentScores(c *gin.Context) {
	period, err := s.period(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	scores, err := s.container.AggregationService.DepartmentPerformance(c.Request.Context(), period.Year, period.Quarter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":        period.Year,
		"quarter":     period.Quarter,
		"departments": scores,
	})
}

// handleOrganizationScore returns the organization-wide roll-up for a period
func (s *Server) handleOrganizationScore(c *gin.Context) {
	period, err := s.period(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	org, err := s.container.AggregationService.OrganizationPerformance(c.Request.Context(), period.Year, period.Quarter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// handleDepartmentReport streams the department roll-up as an xlsx workbook
func (s *Server) handleDepartmentReport(c *gin.Context) {
	period, err := s.period(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	org, err := s.container.AggregationService.OrganizationPerformance(c.Request.Context(), period.Year, period.Quarter)
	if err != nil {
		s.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("departments_%d_q%d.xlsx", period.Year, period.Quarter)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := s.container.ReportWriter.WriteDepartmentReport(c.Writer, org); err != nil {
		s.logger.Error("report export failed: %v", err)
		// Headers are already out; all we can do is abort the stream
		c.Abort()
	}
}
