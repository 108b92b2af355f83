package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context bounds the backend check
	"net/http" // net/http provides status codes and response helpers
	"time"     // time sets the check timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Pinger is anything whose reachability the readiness check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health is a simple health‑check endpoint used by load balancers and
// monitoring systems to verify that the console is running.  It returns a
// plain text "ok" message with an HTTP 200 status code.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready reports whether each named dependency answers a ping.  Dependencies
// that are nil are reported as disabled.  The status is 503 when any enabled
// dependency fails.
func Ready(deps map[string]Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		status := http.StatusOK
		out := echo.Map{}
		for name, p := range deps {
			if p == nil {
				out[name] = "disabled"
				continue
			}
			if err := p.Ping(ctx); err != nil {
				out[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			out[name] = "up"
		}
		return c.JSON(status, out)
	}
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }
