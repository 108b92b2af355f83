package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/queue"
	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/seatgrid"
	"github.com/iliyamo/cinema-admin-console/internal/session"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// CheckoutSession is the state of one reservation page.  It is owned by a
// single browser tab and replaced wholesale on every change.
type CheckoutSession struct {
	ID       string         `json:"id"`
	Movie    model.Movie    `json:"movie"`
	Room     model.Room     `json:"room"`
	Showtime model.Showtime `json:"showtime"`
	Grid     seatgrid.State `json:"grid"`
}

// Customer is the buyer data entered on the reservation form.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Phase tells which step of a submission failed.
type Phase int

const (
	PhaseNone     Phase = iota // submission succeeded
	PhaseValidate              // cart not exactly full; nothing was sent
	PhaseCreate                // the reservation could not be created
	PhaseAttach                // the reservation exists but seat attachment failed
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseValidate:
		return "validate"
	case PhaseCreate:
		return "create"
	case PhaseAttach:
		return "attach"
	}
	return "unknown"
}

// SubmitResult reports the outcome of Submit.  Reservation is set whenever
// the create step succeeded, including a PhaseAttach failure.
type SubmitResult struct {
	Phase       Phase
	Reservation *model.Reservation
	Err         error
}

// OK reports whether every step succeeded.
func (r SubmitResult) OK() bool { return r.Phase == PhaseNone && r.Err == nil }

// Checkout runs the reservation flow: load, select seats, submit.
type Checkout struct {
	movies       Movies
	rooms        Rooms
	showtimes    Showtimes
	reservations Reservations
	store        session.Store[CheckoutSession]
	events       Events
}

func NewCheckout(movies Movies, rooms Rooms, showtimes Showtimes, reservations Reservations,
	store session.Store[CheckoutSession], events Events) *Checkout {
	return &Checkout{
		movies:       movies,
		rooms:        rooms,
		showtimes:    showtimes,
		reservations: reservations,
		store:        store,
		events:       events,
	}
}

// Start loads a new checkout and stores it under a fresh id.
func (c *Checkout) Start(ctx context.Context, movieID, roomID, showtimeID int64) (*CheckoutSession, error) {
	sess, err := c.Load(ctx, movieID, roomID, showtimeID)
	if err != nil {
		return nil, err
	}
	sess.ID = session.NewID()
	if err := c.store.Save(ctx, sess.ID, *sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Load fetches room, movie and showtime concurrently and builds the sale
// grid.  Any failed fetch fails the load.
func (c *Checkout) Load(ctx context.Context, movieID, roomID, showtimeID int64) (*CheckoutSession, error) {
	var (
		movie    *model.Movie
		room     *model.Room
		showtime *model.Showtime
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		room, err = c.rooms.Get(gctx, roomID)
		return err
	})
	g.Go(func() (err error) {
		movie, err = c.movies.Get(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		// Sold seats are written back as cart plus sold, so they must not come
		// from the response cache.
		showtime, err = c.showtimes.Get(repository.Fresh(gctx), showtimeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load checkout: %w", err)
	}
	if room.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	grid := seatgrid.NewSale(seatgrid.ForRoom(room.Capacity), room.Seats, showtime.SeatsSold)
	return &CheckoutSession{Movie: *movie, Room: *room, Showtime: *showtime, Grid: grid}, nil
}

// Session returns the stored checkout for id.
func (c *Checkout) Session(ctx context.Context, id string) (*CheckoutSession, error) {
	sess, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ParseQuantity reads the "number of seats" field.  Anything that is not a
// non-negative integer counts as zero.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetQuantity applies a new maxQuantity to the stored checkout.
func (c *Checkout) SetQuantity(ctx context.Context, id, raw string) (*CheckoutSession, seatgrid.Outcome, error) {
	return c.apply(ctx, id, seatgrid.SetMaxQuantity{Value: ParseQuantity(raw)})
}

// Toggle applies a seat click to the stored checkout.
func (c *Checkout) Toggle(ctx context.Context, id string, row, col int) (*CheckoutSession, seatgrid.Outcome, error) {
	return c.apply(ctx, id, seatgrid.Toggle{Row: row, Col: col})
}

func (c *Checkout) apply(ctx context.Context, id string, ev seatgrid.Event) (*CheckoutSession, seatgrid.Outcome, error) {
	sess, err := c.Session(ctx, id)
	if err != nil {
		return nil, seatgrid.Ignored, err
	}
	next, out := sess.Grid.Apply(ev)
	sess.Grid = next
	// Saved even when nothing changed so the session TTL slides.
	if err := c.store.Save(ctx, id, *sess); err != nil {
		return nil, out, err
	}
	return sess, out, nil
}

// Submit creates the reservation, then attaches the cart to it and the cart
// plus the already sold seats to the showtime.  The two attach calls run
// concurrently and both run to completion.  A failure after create leaves
// the reservation in place; the result carries it with PhaseAttach.
func (c *Checkout) Submit(ctx context.Context, sess *CheckoutSession, cust Customer) SubmitResult {
	if !sess.Grid.Valid() {
		return SubmitResult{Phase: PhaseValidate, Err: ErrCartIncomplete}
	}
	log := logrus.WithFields(logrus.Fields{
		"correlation_id": utils.CorrelationID(ctx),
		"showtime_id":    sess.Showtime.ID,
	})

	res, err := c.reservations.Create(ctx, model.ReservationForm{
		UserName:   cust.Name,
		UserEmail:  cust.Email,
		UserPhone:  cust.Phone,
		ShowtimeID: sess.Showtime.ID,
	})
	if err != nil {
		log.WithError(err).Warn("reservation create failed")
		return SubmitResult{Phase: PhaseCreate, Err: fmt.Errorf("create reservation: %w", err)}
	}

	cart := sess.Grid.Cart().Seats()
	showtimeSeats := sess.Grid.ShowtimeSeats().Seats()
	var g errgroup.Group
	g.Go(func() error {
		if err := c.reservations.AttachSeats(ctx, res.ID, cart); err != nil {
			return fmt.Errorf("attach seats to reservation %d: %w", res.ID, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.showtimes.SetSoldSeats(ctx, sess.Showtime.ID, showtimeSeats); err != nil {
			return fmt.Errorf("mark seats sold on showtime %d: %w", sess.Showtime.ID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).WithField("reservation_id", res.ID).Error("reservation created but seats not attached")
		return SubmitResult{Phase: PhaseAttach, Reservation: res, Err: err}
	}

	if sess.ID != "" {
		if err := c.store.Delete(ctx, sess.ID); err != nil {
			log.WithError(err).Warn("checkout session not deleted")
		}
	}
	c.publish(ctx, queue.ReservationEvent{
		Type:          queue.TypeReservationSubmitted,
		ReservationID: res.ID,
		ShowtimeID:    sess.Showtime.ID,
		MovieTitle:    sess.Movie.Title,
		RoomName:      sess.Room.Name,
		StartsAt:      sess.Showtime.StartTime.Format(time.RFC3339),
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		Seats:         model.SeatLabels(cart),
		State:         string(res.State),
	})
	log.WithField("reservation_id", res.ID).Info("reservation submitted")
	return SubmitResult{Reservation: res}
}

func (c *Checkout) publish(ctx context.Context, ev queue.ReservationEvent) {
	if c.events == nil {
		return
	}
	ev.CorrelationID = utils.CorrelationID(ctx)
	if err := c.events.Publish(ctx, ev); err != nil {
		logrus.WithError(err).WithField("event", ev.Type).Warn("event not published")
	}
}
