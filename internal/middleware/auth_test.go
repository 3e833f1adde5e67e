package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	wsession "github.com/nfrund/writerfolio/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-secret-key-for-testing-!"

// newTestServer mounts the auth gate on /admin and a helper route that stores
// a token, so cookies can be obtained the way a login would.
func newTestServer(t *testing.T, now time.Time) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Use(session.Middleware(wsession.NewStore(testSecret, 3600)))

	e.GET("/login-as", func(c echo.Context) error {
		if err := wsession.SaveToken(c, c.QueryParam("token")); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	admin := e.Group("/admin", Auth(func() time.Time { return now }))
	admin.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "dashboard:"+wsession.Get(c).Token)
	})
	return e
}

func loginCookies(t *testing.T, e *echo.Echo, token string) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/login-as?token="+token, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return rec.Result().Cookies()
}

func TestAuthMiddleware(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := newTestServer(t, now)

	t.Run("redirects without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("htmx requests get HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("HX-Redirect"))
	})

	t.Run("passes through with a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range loginCookies(t, e, "opaque-token") {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dashboard:opaque-token", rec.Body.String())
	})

	t.Run("expired JWT clears the session", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": now.Add(-time.Hour).Unix(),
		}).SignedString([]byte("backend"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		for _, c := range loginCookies(t, e, token) {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))

		var cleared bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == wsession.Name && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "session cookie should be expired")
	})
}

func TestLoggerMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Response().Header().Set(echo.HeaderXRequestID, "req-1")

	var sawLogger bool
	err := Logger(func(c echo.Context) error {
		sawLogger = FromContext(c.Request().Context()) != slog.Default()
		return nil
	})(c)
	require.NoError(t, err)
	assert.True(t, sawLogger)
}
