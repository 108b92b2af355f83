package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// RequestLogger tags every request with a correlation id, taken from the
// incoming Correlation-ID header or generated, and logs one line per request
// once the handler is done.  The id travels in the request context so backend
// calls made while serving the request carry it too.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			cid := req.Header.Get(utils.HeaderCorrelationID)
			if cid == "" {
				cid = utils.NewCorrelationID()
			}
			c.SetRequest(req.WithContext(utils.WithCorrelationID(req.Context(), cid)))
			c.Response().Header().Set(utils.HeaderCorrelationID, cid)

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error response so the logged status is final.
				c.Error(err)
			}

			fields := logrus.Fields{
				"correlation_id": cid,
				"method":         req.Method,
				"path":           req.URL.Path,
				"status":         c.Response().Status,
				"latency":        time.Since(start).String(),
				"operator":       Operator(c),
			}
			entry := logrus.WithFields(fields)
			switch {
			case c.Response().Status >= 500:
				entry.WithError(err).Error("request failed")
			case err != nil:
				entry.WithError(err).Warn("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		}
	}
}
