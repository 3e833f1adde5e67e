package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/writerfolio/internal/config"
	"github.com/nfrund/writerfolio/internal/handlers"
	appmiddleware "github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/rendering"
	appsession "github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/web"
)

// Dependencies holds everything the HTTP layer needs. They are built by the
// app package and handed over so the server never constructs services itself.
type Dependencies struct {
	Config    config.Provider
	Renderer  echo.Renderer
	Public    *handlers.PublicHandler
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	// Echo is optional; tests pass their own instance.
	Echo *echo.Echo
	// Static overrides the embedded assets.
	Static fs.FS
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E         *echo.Echo
	Cfg       config.Provider
	public    *handlers.PublicHandler
	auth      *handlers.AuthHandler
	dashboard *handlers.DashboardHandler
}

// New creates a new Server instance with the middleware stack installed.
// Routes are added by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Public == nil || deps.Auth == nil || deps.Dashboard == nil {
		return nil, errors.New("server: handlers are required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Renderer = deps.Renderer
	if e.Renderer == nil {
		e.Renderer = rendering.NewUniversalRenderer()
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.Recover())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/health" },
	}))

	// The token and the flash messages live in cookie sessions.
	store := appsession.NewStore(deps.Config.GetSessionSecret(), deps.Config.GetSessionMaxAge())
	e.Use(session.Middleware(store))

	static := deps.Static
	if static == nil {
		sub, err := fs.Sub(web.FS, "static")
		if err != nil {
			return nil, fmt.Errorf("server: static assets: %w", err)
		}
		static = sub
	}
	e.StaticFS("/static", static)

	setupErrorHandling(e)

	slog.Debug("Server configured", "api", deps.Config.GetAPIBaseURL(), "upload_strategy", deps.Config.GetUploadStrategy())

	return &Server{
		E:         e,
		Cfg:       deps.Config,
		public:    deps.Public,
		auth:      deps.Auth,
		dashboard: deps.Dashboard,
	}, nil
}

// ServeHTTP lets the server be mounted in httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.E.ServeHTTP(w, r)
}
