package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown converts a markdown document to an HTML fragment
func renderMarkdown(doc string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(doc), p, renderer)
}

// handleForecastFragment renders the KPI forecast as an embeddable HTML
// fragment
func (s *Server) handleForecastFragment(c *gin.Context) {
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

	var doc strings.Builder
	fmt.Fprintf(&doc, "### Forecast: %s\n\n", result.KPIName)
	fmt.Fprintf(&doc, "Trend: **%s**\n\n", result.Trend)
	doc.WriteString("| Period | Projected | Confidence |\n|---|---|---|\n")
	for _, point := range result.Points {
		label := fmt.Sprintf("%d", point.Period.Year)
		if point.Period.HasQuarter() {
			label = fmt.Sprintf("%d Q%d", point.Period.Year, point.Period.Quarter)
		}
		fmt.Fprintf(&doc, "| %s | %.2f | %.0f%% |\n", label, point.Value, point.Confidence*100)
	}
	fmt.Fprintf(&doc, "\n%s\n", result.Recommendation)

	c.Data(http.StatusOK, "text/html; charset=utf-8", renderMarkdown(doc.String()))
}

// handleAlertFragment renders a single alert as an embeddable HTML fragment
func (s *Server) handleAlertFragment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	alert, err := s.container.AlertRepo.GetAlert(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var doc strings.Builder
	fmt.Fprintf(&doc, "### %s\n\n", alert.Title)
	fmt.Fprintf(&doc, "**%s** severity, type `%s`\n\n", alert.Severity, alert.Type)
	doc.WriteString(alert.Description)
	if alert.IsResolved {
		doc.WriteString("\n\n_Resolved._")
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", renderMarkdown(doc.String()))
}
