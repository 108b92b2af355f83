package handler

import (
	"fmt"
	"net/http"

	"github.com/jinzhu/copier"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/seatgrid"
	"github.com/iliyamo/cinema-admin-console/internal/service"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// CheckoutHandler serves the reservation flow: open a checkout for a
// showtime, pick the number of seats, toggle seats and submit the buyer form.
type CheckoutHandler struct {
	Service *service.Checkout
}

func NewCheckoutHandler(svc *service.Checkout) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

type checkoutPage struct {
	page
	Session  *service.CheckoutSession
	Grid     gridView
	Base     string
	Customer customerInput
	Errors   fieldErrors
	Valid    bool
	Sold     int
	Cart     int
}

func (h *CheckoutHandler) render(c echo.Context, status int, sess *service.CheckoutSession, in customerInput, errs fieldErrors, msg string) error {
	base := "/checkout/" + sess.ID
	p := newPage(c, "Reservation for "+sess.Movie.Title)
	p.Error = msg
	in.Seats = sess.Grid.MaxQuantity()
	return c.Render(status, "checkout", checkoutPage{
		page:    p,
		Session: sess,
		Grid: gridView{
			Cells:  sess.Grid.Cells(),
			Action: base + "/toggle",
			Inline: true,
		},
		Base:     base,
		Customer: in,
		Errors:   errs,
		Valid:    sess.Grid.Valid(),
		Sold:     len(sess.Grid.Sold()),
		Cart:     len(sess.Grid.Cart()),
	})
}

// Start handles GET /reservation/:movieId/:roomId/:showtimeId.  It loads the
// showtime into a new checkout and redirects to it.
func (h *CheckoutHandler) Start(c echo.Context) error {
	movieID, err := paramID(c, "movieId")
	if err != nil {
		return err
	}
	roomID, err := paramID(c, "roomId")
	if err != nil {
		return err
	}
	showtimeID, err := paramID(c, "showtimeId")
	if err != nil {
		return err
	}
	sess, err := h.Service.Start(c.Request().Context(), movieID, roomID, showtimeID)
	if err != nil {
		return backendError(err, "showtime")
	}
	return c.Redirect(http.StatusSeeOther, "/checkout/"+sess.ID)
}

func (h *CheckoutHandler) session(c echo.Context) (*service.CheckoutSession, error) {
	sid := c.Param("sid")
	if !validSessionID(sid) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "reservation page not found")
	}
	sess, err := h.Service.Session(c.Request().Context(), sid)
	if err != nil {
		return nil, backendError(err, "reservation page")
	}
	return sess, nil
}

// customerFromForm reads the buyer fields. The quantity field, the seat
// buttons and the buyer fields share one form, so every post carries what
// the operator has typed so far.
func customerFromForm(c echo.Context) customerInput {
	in := customerInput{
		Name:  c.FormValue("name"),
		Email: c.FormValue("email"),
		Phone: c.FormValue("phone"),
	}
	in.trim()
	return in
}

// Show handles GET /checkout/:sid.
func (h *CheckoutHandler) Show(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, sess, customerInput{}, nil, "")
}

// Quantity handles POST /checkout/:sid/quantity, sent when the quantity
// field loses focus.
func (h *CheckoutHandler) Quantity(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	sess, _, err = h.Service.SetQuantity(c.Request().Context(), sess.ID, c.FormValue("quantity"))
	if err != nil {
		return backendError(err, "reservation page")
	}
	return h.render(c, http.StatusOK, sess, customerFromForm(c), nil, "")
}

// Toggle handles POST /checkout/:sid/toggle?row=R&col=C.
func (h *CheckoutHandler) Toggle(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	sess, out, err := h.Service.Toggle(c.Request().Context(), sess.ID, formInt(c, "row"), formInt(c, "col"))
	if err != nil {
		return backendError(err, "reservation page")
	}
	var errs fieldErrors
	if out == seatgrid.Rejected {
		errs = fieldErrors{"seats": "Choose the number of seats first, then pick configured seats only."}
	}
	return h.render(c, http.StatusOK, sess, customerFromForm(c), errs, "")
}

// Submit handles POST /checkout/:sid/submit.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	in := customerFromForm(c)
	in.Seats = sess.Grid.MaxQuantity()
	if errs := check(&in); errs != nil {
		return h.render(c, http.StatusUnprocessableEntity, sess, in, errs, "")
	}
	if !sess.Grid.Valid() {
		errs := fieldErrors{"seats": fmt.Sprintf("Select exactly %d seats.", sess.Grid.MaxQuantity())}
		return h.render(c, http.StatusUnprocessableEntity, sess, in, errs, "")
	}

	var cust service.Customer
	if err := copier.Copy(&cust, &in); err != nil {
		return err
	}
	res := h.Service.Submit(c.Request().Context(), sess, cust)
	if !res.OK() {
		logrus.WithError(res.Err).WithFields(logrus.Fields{
			"correlation_id": utils.CorrelationID(c.Request().Context()),
			"phase":          res.Phase.String(),
		}).Warn("reservation submission failed")
		return h.render(c, http.StatusBadGateway, sess, in, nil, "Submission failed.")
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/reservations/%d/confirmation", res.Reservation.ID))
}
