package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()

	// Public site.
	s.E.GET("/", s.public.HomeGet)
	s.E.GET("/portfolio/:id", s.public.ProjectGet)
	s.E.POST("/contact", s.public.ContactPost, rateLimiter)

	// Login gate. These stay outside the protected group.
	s.E.GET("/admin/login", s.auth.LoginGet)
	s.E.POST("/admin/login", s.auth.LoginPost, rateLimiter)
	s.E.POST("/admin/logout", s.auth.Logout)

	// Everything else under /admin needs a token.
	admin := s.E.Group("/admin", middleware.Auth(time.Now))
	admin.GET("", s.dashboard.SectionGet)
	admin.POST("/settings", s.dashboard.SettingsPost)
	admin.POST("/admins", s.dashboard.AdminsPost)
	admin.GET("/:section", s.dashboard.SectionGet)
	admin.GET("/:section/new", s.dashboard.NewGet)
	admin.POST("/:section", s.dashboard.CreatePost)
	admin.GET("/:section/:id/edit", s.dashboard.EditGet)
	admin.POST("/:section/:id", s.dashboard.UpdatePost)
	admin.GET("/:section/:id/delete", s.dashboard.DeleteGet)
	admin.POST("/:section/:id/delete", s.dashboard.DeletePost)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
