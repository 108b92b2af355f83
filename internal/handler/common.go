package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/middleware"
	"github.com/iliyamo/cinema-admin-console/internal/session"
)

// page carries what every template needs for the layout.
type page struct {
	Title    string
	Operator string
	Notice   string
	Error    string
}

func newPage(c echo.Context, title string) page {
	return page{
		Title:    title,
		Operator: middleware.Operator(c),
		Notice:   c.QueryParam("notice"),
	}
}

// paramID reads a positive numeric path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// redirectNotice redirects to target with a one-off notice shown by the layout.
func redirectNotice(c echo.Context, target, notice string) error {
	if notice != "" {
		sep := "?"
		if u, err := url.Parse(target); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		target += sep + "notice=" + url.QueryEscape(notice)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func urlEscape(s string) string { return url.QueryEscape(s) }

// validSessionID rejects ids that cannot have been issued.
func validSessionID(id string) bool { return session.ValidID(id) }

// formInt reads an integer form value; anything else is -1.
func formInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return -1
	}
	return n
}
