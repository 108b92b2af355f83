package middleware

// identity.go holds the helpers shared by middleware and handlers for reading
// the authenticated operator out of the Echo context.

import "github.com/labstack/echo/v4"

const operatorKey = "operator"

// Operator returns the logged-in operator name, or "guest" when the request
// passed no SessionAuth middleware.
func Operator(c echo.Context) string {
	if v, ok := c.Get(operatorKey).(string); ok && v != "" {
		return v
	}
	return "guest"
}
