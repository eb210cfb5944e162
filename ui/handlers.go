package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pulseboard/app"
	"pulseboard/domain/core"
	apperrors "pulseboard/internal/errors"
)

// respondError maps domain errors onto HTTP status codes. Unknown errors are
// logged and reported as a bare 500 so internals never leak to clients.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsLifecycleError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case core.IsEvaluationError(err), errors.Is(err, core.ErrInsufficientHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case core.IsValidationError(err),
		apperrors.GetCode(err) == apperrors.CodeValidationError,
		apperrors.GetCode(err) == apperrors.CodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// handleSubmit records a new actual value for review
func (s *Server) handleSubmit(c *gin.Context) {
	var req app.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actual, err := s.container.SubmissionService.Submit(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, actual)
}

type reviewRequest struct {
	ReviewedBy uuid.UUID `json:"reviewed_by" binding:"required"`
	Comments   string    `json:"comments"`
}

// handleApprove approves a pending submission, which also runs the alert
// evaluation for it
func (s *Server) handleApprove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actual, err := s.container.SubmissionService.Approve(c.Request.Context(), id, req.ReviewedBy, req.Comments)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, actual)
}

// handleReject rejects a pending submission
func (s *Server) handleReject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actual, err := s.container.SubmissionService.Reject(c.Request.Context(), id, req.ReviewedBy, req.Comments)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, actual)
}

// handleListSubmissions returns the full submission trail for the KPI's
// current period
func (s *Server) handleListSubmissions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asOf, err := s.asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of"})
		return
	}

	submissions, err := s.container.SubmissionService.Submissions(c.Request.Context(), id, asOf)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions, "count": len(submissions)})
}

// handleKPIStatus returns the KPI's current-period evaluation
func (s *Server) handleKPIStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	asOf, err := s.asOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of"})
		return
	}

	evaluation, found, err := s.container.SubmissionService.CurrentStatus(c.Request.Context(), id, asOf)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"kpi_id": id, "has_data": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kpi_id":   id,
		"has_data": true,
		"status":   evaluation.Status,
		"progress": evaluation.Progress,
	})
}
