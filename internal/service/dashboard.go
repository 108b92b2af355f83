package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/queue"
	"github.com/iliyamo/cinema-admin-console/internal/repository"
	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// enrichLimit bounds the concurrent showtime lookups of one dashboard load.
const enrichLimit = 8

// ReservationRow is a reservation with its showtime, movie and room.  Any of
// the three may be nil when the backend no longer knows it.
type ReservationRow struct {
	model.Reservation
	Showtime *model.Showtime
	Movie    *model.Movie
	Room     *model.Room
}

// Actionable reports whether confirm and cancel are offered.
func (r ReservationRow) Actionable() bool { return !r.State.Final() }

// Filter narrows the dashboard list.  Zero fields match everything.
type Filter struct {
	Search string                 // case-insensitive match on customer name or email
	Date   string                 // showtime date, YYYY-MM-DD
	State  model.ReservationState // exact state
}

// Dashboard is the home page summary.
type Dashboard struct {
	Movies       int
	Rooms        int
	Reservations int
	ByState      map[model.ReservationState]int
	Rows         []ReservationRow
}

// DashboardService aggregates the home page and performs reservation state
// transitions.
type DashboardService struct {
	movies       Movies
	rooms        Rooms
	showtimes    Showtimes
	reservations Reservations
	events       Events
	loc          *time.Location
}

func NewDashboardService(movies Movies, rooms Rooms, showtimes Showtimes, reservations Reservations, events Events, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{movies: movies, rooms: rooms, showtimes: showtimes, reservations: reservations, events: events, loc: loc}
}

// Load fetches movies, rooms and reservations concurrently, resolves each
// reservation's showtime and applies f.  Counts cover the unfiltered data.
func (s *DashboardService) Load(ctx context.Context, f Filter) (*Dashboard, error) {
	var (
		movies       []model.Movie
		rooms        []model.Room
		reservations []model.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = s.movies.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		rooms, err = s.rooms.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		reservations, err = s.reservations.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	showtimes, err := s.resolveShowtimes(ctx, reservations)
	if err != nil {
		return nil, err
	}
	movieByID := make(map[int64]*model.Movie, len(movies))
	for i := range movies {
		movieByID[movies[i].ID] = &movies[i]
	}
	roomByID := make(map[int64]*model.Room, len(rooms))
	for i := range rooms {
		roomByID[rooms[i].ID] = &rooms[i]
	}

	d := &Dashboard{
		Movies:       len(movies),
		Rooms:        len(rooms),
		Reservations: len(reservations),
		ByState:      make(map[model.ReservationState]int),
	}
	for _, r := range reservations {
		d.ByState[r.State]++
		row := ReservationRow{Reservation: r, Showtime: showtimes[r.ShowtimeID]}
		if row.Showtime != nil {
			row.Movie = movieByID[row.Showtime.MovieID]
			row.Room = roomByID[row.Showtime.RoomID]
		}
		if f.match(row, s.loc) {
			d.Rows = append(d.Rows, row)
		}
	}
	return d, nil
}

// resolveShowtimes fetches each distinct showtime once.  Showtimes the
// backend reports as missing are left out.
func (s *DashboardService) resolveShowtimes(ctx context.Context, reservations []model.Reservation) (map[int64]*model.Showtime, error) {
	ids := make(map[int64]struct{})
	for _, r := range reservations {
		ids[r.ShowtimeID] = struct{}{}
	}
	var mu sync.Mutex
	out := make(map[int64]*model.Showtime, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichLimit)
	for id := range ids {
		g.Go(func() error {
			st, err := s.showtimes.Get(gctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				logrus.WithField("showtime_id", id).Warn("reservation references a missing showtime")
				return nil
			}
			if err != nil {
				return fmt.Errorf("load showtime %d: %w", id, err)
			}
			mu.Lock()
			out[id] = st
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (f Filter) match(row ReservationRow, loc *time.Location) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(row.UserName), q) && !strings.Contains(strings.ToLower(row.UserEmail), q) {
			return false
		}
	}
	if f.Date != "" {
		if row.Showtime == nil || row.Showtime.StartTime.In(loc).Format(DayLayout) != f.Date {
			return false
		}
	}
	if f.State != "" && row.State != f.State {
		return false
	}
	return true
}

// Transition confirms or cancels reservation id and publishes the change.
func (s *DashboardService) Transition(ctx context.Context, id int64, to model.ReservationState) error {
	res, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if res.State.Final() {
		return ErrAlreadyFinal
	}
	if err := s.reservations.Transition(ctx, id, to); err != nil {
		return fmt.Errorf("transition reservation %d to %s: %w", id, to, err)
	}
	logrus.WithFields(logrus.Fields{"reservation_id": id, "state": to}).Info("reservation state changed")
	if s.events != nil {
		ev := queue.ReservationEvent{
			Type:          queue.TypeReservationStateChanged,
			ReservationID: id,
			ShowtimeID:    res.ShowtimeID,
			CustomerName:  res.UserName,
			CustomerEmail: res.UserEmail,
			Seats:         model.SeatLabels(res.Seats),
			State:         string(to),
			CorrelationID: utils.CorrelationID(ctx),
		}
		if err := s.events.Publish(ctx, ev); err != nil {
			logrus.WithError(err).WithField("event", ev.Type).Warn("event not published")
		}
	}
	return nil
}

// Reservation loads one reservation with its showtime, movie and room for the
// confirmation page.
func (s *DashboardService) Reservation(ctx context.Context, id int64) (*ReservationRow, error) {
	res, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	row := &ReservationRow{Reservation: *res}
	st, err := s.showtimes.Get(ctx, res.ShowtimeID)
	if errors.Is(err, repository.ErrNotFound) {
		return row, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load showtime %d: %w", res.ShowtimeID, err)
	}
	row.Showtime = st

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.movies.Get(gctx, st.MovieID)
		if err == nil {
			row.Movie = m
		}
		return ignoreNotFound(err)
	})
	g.Go(func() error {
		r, err := s.rooms.Get(gctx, st.RoomID)
		if err == nil {
			row.Room = r
		}
		return ignoreNotFound(err)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	return row, nil
}

// find resolves a reservation from the collection listing; the backend has
// no single-reservation read.
func (s *DashboardService) find(ctx context.Context, id int64) (*model.Reservation, error) {
	list, err := s.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, repository.ErrReservationNotFound
}

func ignoreNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
