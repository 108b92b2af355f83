package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for redirects and responses
	"net/url"  // url escapes the page the operator asked for

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/cinema-admin-console/internal/utils" // utils parses the signed session token
)

// SessionCookie is the name of the HttpOnly cookie holding the operator's
// signed session token.
const SessionCookie = "console_session"

// SessionAuth returns an Echo middleware that validates the session cookie
// and stores the operator name in the context.  Page requests without a
// valid cookie are redirected to the login page with the original path in
// ?next=; other requests get 401.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err == nil {
				if sub, perr := utils.ParseSessionToken(secret, cookie.Value); perr == nil {
					// Handlers read the operator with Operator(c).
					c.Set(operatorKey, sub)
					return next(c)
				}
			}
			if c.Request().Method != http.MethodGet {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired, please log in again")
			}
			return c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request().URL.RequestURI()))
		}
	}
}
