// Package session holds the admin's view state: the bearer token kept in a
// signed cookie session and the dashboard section being shown.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// Name is the cookie session that carries the token.
	Name     = "writerfolio-session"
	tokenKey = "authToken"
	viewKey  = "view"
)

// NewStore returns the cookie store used for both the token session and
// flash messages.
func NewStore(secret string, maxAge int) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// View is the per-request dashboard state.
type View struct {
	Token   string
	Section Section
}

// Authenticated reports whether a token is present.
func (v View) Authenticated() bool { return v.Token != "" }

// Token reads the stored token, or "" when there is none.
func Token(c echo.Context) string {
	sess, err := session.Get(Name, c)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[tokenKey].(string)
	return token
}

// SaveToken persists token in the session cookie.
func SaveToken(c echo.Context, token string) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return err
	}
	sess.Values[tokenKey] = token
	return sess.Save(c.Request(), c.Response())
}

// Clear removes the token and expires the cookie.
func Clear(c echo.Context) error {
	sess, err := session.Get(Name, c)
	if err != nil {
		return err
	}
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// Expired reports whether token is a JWT whose exp claim is before now.
// Opaque tokens and JWTs without exp never expire here; the backend remains
// the authority and answers 401 when it disagrees.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

// Set stores v on the request for downstream handlers.
func Set(c echo.Context, v View) { c.Set(viewKey, v) }

// Get returns the view stored by Set, or a zero View.
func Get(c echo.Context) View {
	v, _ := c.Get(viewKey).(View)
	return v
}
