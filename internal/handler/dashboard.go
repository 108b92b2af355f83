package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/service"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// DashboardHandler serves the home page, reservation state changes and the
// reservation confirmation page.
type DashboardHandler struct {
	Service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

type homePage struct {
	page
	Dashboard *service.Dashboard
	Filter    service.Filter
	States    []model.ReservationState
	Query     string
}

type confirmationPage struct {
	page
	Row *service.ReservationRow
	QR  template.URL
	Ref string
}

// Home handles GET /home?q=&date=&state=.
func (h *DashboardHandler) Home(c echo.Context) error {
	f := service.Filter{
		Search: c.QueryParam("q"),
		Date:   c.QueryParam("date"),
		State:  model.ReservationState(c.QueryParam("state")),
	}
	d, err := h.Service.Load(c.Request().Context(), f)
	if err != nil {
		return backendError(err, "dashboard")
	}
	return c.Render(http.StatusOK, "home", homePage{
		page:      newPage(c, "Dashboard"),
		Dashboard: d,
		Filter:    f,
		States:    model.ReservationStates,
		Query:     c.QueryString(),
	})
}

// Confirm handles POST /reservations/:id/confirm.
func (h *DashboardHandler) Confirm(c echo.Context) error {
	return h.transition(c, model.StateConfirmed)
}

// Cancel handles POST /reservations/:id/cancel.
func (h *DashboardHandler) Cancel(c echo.Context) error {
	return h.transition(c, model.StateCancelled)
}

func (h *DashboardHandler) transition(c echo.Context, to model.ReservationState) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	back := "/home"
	if q := c.FormValue("back"); q != "" {
		if _, err := url.ParseQuery(q); err == nil {
			back += "?" + q
		}
	}
	err = h.Service.Transition(c.Request().Context(), id, to)
	if errors.Is(err, service.ErrAlreadyFinal) {
		return redirectNotice(c, back, fmt.Sprintf("Reservation %d is already closed.", id))
	}
	if err != nil {
		return backendError(err, "reservation")
	}
	return redirectNotice(c, back, fmt.Sprintf("Reservation %d %s.", id, to))
}

// Confirmation handles GET /reservations/:id/confirmation.
func (h *DashboardHandler) Confirmation(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	row, err := h.Service.Reservation(c.Request().Context(), id)
	if err != nil {
		return backendError(err, "reservation")
	}
	ref := utils.ReservationReference(row.ID, row.ShowtimeID)
	qr, err := utils.QRDataURI(ref, 256)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "could not draw the QR code", Internal: err}
	}
	return c.Render(http.StatusOK, "confirmation", confirmationPage{
		page: newPage(c, fmt.Sprintf("Reservation %d", row.ID)),
		Row:  row,
		QR:   template.URL(qr), // generated locally, always a PNG data URI
		Ref:  ref,
	})
}
