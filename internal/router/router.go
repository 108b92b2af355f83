package router // package router defines how HTTP routes are registered for the console

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/handler"
	"github.com/iliyamo/cinema-admin-console/internal/middleware"
)

// RegisterRoutes registers the health checks that need no session: /health answers
// as long as the process runs and /ready pings each dependency.
func RegisterRoutes(e *echo.Echo, ready map[string]handler.Pinger) {
	e.GET("/health", handler.Health)
	e.GET("/ready", handler.Ready(ready))
}

// RegisterAuth registers the login form and the logout action.  Only the
// login POST goes through the limiter; the form itself is free to load.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.GET("/login", a.LoginForm)
	e.POST("/login", a.Login, limiter)
	e.POST("/logout", a.Logout) // works with an expired cookie too
}

// Console returns the group every operator page lives in.  Requests without
// a valid session cookie are sent to the login page.
func Console(e *echo.Echo, jwtSecret string) *echo.Group {
	g := e.Group("", middleware.SessionAuth(jwtSecret))
	g.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/home")
	})
	return g
}
