package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/config"
	"github.com/iliyamo/cinema-admin-console/internal/middleware"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// AuthHandler signs the single console operator in and out.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginPage struct {
	page
	Username string
	Next     string
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/home"
	}
	return next
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", loginPage{
		page: newPage(c, "Log in"),
		Next: safeNext(c.QueryParam("next")),
	})
}

// Login handles POST /login: verify the credentials and set the session
// cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	next := safeNext(c.FormValue("next"))

	if username != h.Cfg.AdminUser || !utils.VerifyPassword(h.Cfg.AdminPasswordHash, password) {
		logrus.WithFields(logrus.Fields{"username": username, "ip": c.RealIP()}).Warn("login failed")
		p := loginPage{page: newPage(c, "Log in"), Username: username, Next: next}
		p.Error = "Invalid user name or password."
		return c.Render(http.StatusUnauthorized, "login", p)
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, username, h.Cfg.AccessTTLMin)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "could not start a session", Internal: err}
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	})
	logrus.WithField("username", username).Info("operator logged in")
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout handles POST /logout by expiring the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}
