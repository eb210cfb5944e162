package ui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pulseboard/domain/core"
	"pulseboard/internal"
	apperrors "pulseboard/internal/errors"
)

func testServer() *Server {
	return &Server{logger: internal.NewLogger(internal.LogLevelError)}
}

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", core.ErrKPINotFound, http.StatusNotFound},
		{"wrapped not found", core.NewNotFoundError("kpi", "abc"), http.StatusNotFound},
		{"lifecycle conflict", core.ErrAlertResolved, http.StatusConflict},
		{"already reviewed", core.ErrActualReviewed, http.StatusConflict},
		{"evaluation error", core.ErrDivisionByZero, http.StatusUnprocessableEntity},
		{"insufficient history", core.ErrInsufficientHistory, http.StatusUnprocessableEntity},
		{"validation error", apperrors.ValidationError("bad input"), http.StatusBadRequest},
		{"domain validation", core.NewValidationError("quarter", "must be 1-4"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	s := testServer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			s.respondError(c, tc.err)
			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}

func TestOpsRouterHealthz(t *testing.T) {
	ops := newOpsRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	ops.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func TestOpsRouterReadyzWithoutDatabase(t *testing.T) {
	ops := newOpsRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	recorder := httptest.NewRecorder()
	ops.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestRenderMarkdownTable(t *testing.T) {
	out := string(renderMarkdown("### Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n"))

	assert.Contains(t, out, "<h3")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestAsOfParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testServer()
	s.clock = core.SystemClock

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?as_of=2025-11-15", nil)

	got, err := s.asOf(c)
	assert.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, 11, int(got.Month()))

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/?as_of=not-a-date", nil)
	_, err = s.asOf(c2)
	assert.Error(t, err)
}

func TestPeriodParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testServer()
	s.clock = core.SystemClock

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?year=2025&quarter=3", nil)

	period, err := s.period(c)
	assert.NoError(t, err)
	assert.Equal(t, 2025, period.Year)
	assert.Equal(t, 3, period.Quarter)

	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/?quarter=7", nil)
	_, err = s.period(c2)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "quarter"))
}
