package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/service"
	"github.com/iliyamo/cinema-admin-console/internal/session"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// errorPage is the data of the error template.
type errorPage struct {
	page
	Status  int
	Message string
}

// backendError turns an error from a repository or service call into an
// HTTP error whose message is safe to show.  what names the thing being
// loaded, e.g. "room".
func backendError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &echo.HTTPError{Code: http.StatusNotFound, Message: what + " not found", Internal: err}
	case errors.Is(err, session.ErrSessionNotFound):
		return &echo.HTTPError{Code: http.StatusGone, Message: "This page has expired. Please start again.", Internal: err}
	case errors.Is(err, service.ErrInvalidCapacity):
		return &echo.HTTPError{Code: http.StatusUnprocessableEntity, Message: "This room has no capacity configured.", Internal: err}
	}
	return &echo.HTTPError{Code: http.StatusBadGateway, Message: "The cinema backend could not complete the request.", Internal: err}
}

// ErrorHandler renders failures as an HTML page.  Internal causes are logged,
// never shown.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Something went wrong."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
		if he.Internal != nil {
			logrus.WithError(he.Internal).WithFields(logrus.Fields{
				"correlation_id": utils.CorrelationID(c.Request().Context()),
				"status":         code,
			}).Warn("request failed")
		}
	} else {
		logrus.WithError(err).WithField("correlation_id", utils.CorrelationID(c.Request().Context())).Error("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	data := errorPage{page: newPage(c, http.StatusText(code)), Status: code, Message: msg}
	if rerr := c.Render(code, "error", data); rerr != nil {
		logrus.WithError(rerr).Error("error page not rendered")
		_ = c.String(code, msg)
	}
}
