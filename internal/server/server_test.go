package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{AddSource: true})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestHTTPErrorHandler_LogsUnhandledWithStack(t *testing.T) {
	logs := captureLogs(t)
	e := echo.New()
	setupErrorHandling(e)
	e.GET("/admin/services", func(c echo.Context) error {
		return errors.New("backend client misconfigured")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/services", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	out := logs.String()
	assert.Contains(t, out, "Internal Server Error (Unhandled)")
	assert.Contains(t, out, `error="backend client misconfigured"`)
	assert.Contains(t, out, "path=/admin/services")
	assert.Contains(t, out, "stack_trace=")
	assert.Contains(t, out, "runtime/debug/stack.go")
	assert.Contains(t, out, "internal/server/server_test.go")
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	e := echo.New()
	setupErrorHandling(e)
	e.HEAD("/boom", func(c echo.Context) error { return errors.New("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHTTPErrorHandler_HTTPErrorKeepsStatus(t *testing.T) {
	e := echo.New()
	setupErrorHandling(e)
	e.GET("/gone", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "unknown section")
	})

	req := httptest.NewRequest(http.MethodGet, "/gone", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown section", rec.Body.String())
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
}
