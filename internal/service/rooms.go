package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/seatgrid"
	"github.com/iliyamo/cinema-admin-console/internal/session"
)

// LayoutSession holds a room layout being edited.
type LayoutSession struct {
	ID   string         `json:"id"`
	Room model.Room     `json:"room"`
	Grid seatgrid.State `json:"grid"`
}

// ShowtimeRow is a showtime with the title of its movie resolved.
type ShowtimeRow struct {
	model.Showtime
	MovieTitle string
}

// RoomDetail is everything the room page shows in view mode.
type RoomDetail struct {
	Room      model.Room
	Grid      seatgrid.State
	Day       time.Time
	Showtimes []ShowtimeRow
	Movies    []model.Movie
}

// RoomService backs the room detail page: seat layout editing and showtime
// scheduling.
type RoomService struct {
	movies    Movies
	rooms     Rooms
	showtimes Showtimes
	store     session.Store[LayoutSession]
	loc       *time.Location
}

func NewRoomService(movies Movies, rooms Rooms, showtimes Showtimes, store session.Store[LayoutSession], loc *time.Location) *RoomService {
	if loc == nil {
		loc = time.UTC
	}
	return &RoomService{movies: movies, rooms: rooms, showtimes: showtimes, store: store, loc: loc}
}

// Location returns the time zone the screening days are computed in.
func (s *RoomService) Location() *time.Location { return s.loc }

// Detail loads the room, its showtimes on day and the movie list concurrently.
func (s *RoomService) Detail(ctx context.Context, roomID int64, day time.Time) (*RoomDetail, error) {
	var (
		room      *model.Room
		showtimes []model.Showtime
		movies    []model.Movie
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		room, err = s.rooms.Get(gctx, roomID)
		return err
	})
	g.Go(func() (err error) {
		showtimes, err = s.showtimes.ListByRoom(gctx, roomID)
		return err
	})
	g.Go(func() (err error) {
		movies, err = s.movies.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load room %d: %w", roomID, err)
	}
	if room.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	titles := make(map[int64]string, len(movies))
	for _, m := range movies {
		titles[m.ID] = m.Title
	}
	var rows []ShowtimeRow
	for _, st := range OnDay(showtimes, day, s.loc) {
		rows = append(rows, ShowtimeRow{Showtime: st, MovieTitle: titles[st.MovieID]})
	}
	return &RoomDetail{
		Room:      *room,
		Grid:      layoutGrid(*room),
		Day:       StartOfDay(day, s.loc),
		Showtimes: rows,
		Movies:    movies,
	}, nil
}

func layoutGrid(room model.Room) seatgrid.State {
	return seatgrid.NewLayout(seatgrid.ForRoom(room.Capacity), room.Seats, room.Capacity)
}

// BeginEdit opens an edit session on the room's current layout.
func (s *RoomService) BeginEdit(ctx context.Context, roomID int64) (*LayoutSession, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	grid, _ := layoutGrid(*room).Apply(seatgrid.SetMode{Mode: seatgrid.ModeEdit})
	sess := LayoutSession{ID: session.NewID(), Room: *room, Grid: grid}
	if err := s.store.Save(ctx, sess.ID, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// EditSession returns the stored layout session for id.
func (s *RoomService) EditSession(ctx context.Context, id string) (*LayoutSession, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ToggleSeat flips one seat of the edited layout.
func (s *RoomService) ToggleSeat(ctx context.Context, id string, row, col int) (*LayoutSession, seatgrid.Outcome, error) {
	sess, err := s.EditSession(ctx, id)
	if err != nil {
		return nil, seatgrid.Ignored, err
	}
	next, out := sess.Grid.Apply(seatgrid.Toggle{Row: row, Col: col})
	sess.Grid = next
	if err := s.store.Save(ctx, id, *sess); err != nil {
		return nil, out, err
	}
	return sess, out, nil
}

// SaveLayout replaces the room's seats with the edited set and closes the
// session.
func (s *RoomService) SaveLayout(ctx context.Context, id string) (*LayoutSession, error) {
	sess, err := s.EditSession(ctx, id)
	if err != nil {
		return nil, err
	}
	seats := sess.Grid.Active().Seats()
	if err := s.rooms.ReplaceSeats(ctx, sess.Room.ID, seats); err != nil {
		return nil, fmt.Errorf("save layout of room %d: %w", sess.Room.ID, err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("room_id", sess.Room.ID).Warn("layout session not deleted")
	}
	logrus.WithFields(logrus.Fields{"room_id": sess.Room.ID, "seats": len(seats)}).Info("room layout saved")
	return sess, nil
}

// CancelEdit drops the session without touching the room.
func (s *RoomService) CancelEdit(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// AddShowtime schedules movieID in roomID at the next free slot of day.
func (s *RoomService) AddShowtime(ctx context.Context, roomID, movieID int64, day time.Time) (*model.Showtime, error) {
	var (
		room      *model.Room
		movie     *model.Movie
		showtimes []model.Showtime
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		room, err = s.rooms.Get(gctx, roomID)
		return err
	})
	g.Go(func() (err error) {
		movie, err = s.movies.Get(gctx, movieID)
		return err
	})
	g.Go(func() (err error) {
		showtimes, err = s.showtimes.ListByRoom(gctx, roomID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("prepare showtime: %w", err)
	}

	start, end, err := NextSlot(showtimes, day, s.loc, movie.Duration, room.BreakTime)
	if err != nil {
		return nil, err
	}
	st, err := s.showtimes.Create(ctx, model.ShowtimeForm{
		MovieID:   movieID,
		RoomID:    roomID,
		StartTime: model.Timestamp{Time: start},
		EndTime:   model.Timestamp{Time: end},
	})
	if err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}
	logrus.WithFields(logrus.Fields{"room_id": roomID, "movie_id": movieID, "start": start}).Info("showtime scheduled")
	return st, nil
}
