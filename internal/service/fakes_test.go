package service

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/queue"
	"github.com/iliyamo/cinema-admin-console/internal/repository"
)

// fakeBackend implements every service dependency in memory and records the
// mutations it receives.
type fakeBackend struct {
	mu           sync.Mutex
	movies       map[int64]model.Movie
	rooms        map[int64]model.Room
	showtimes    map[int64]model.Showtime
	reservations map[int64]model.Reservation
	nextID       int64

	createErr      error
	attachErr      error
	soldErr        error
	showtimeGetErr error
	listErr        error

	createdForms  []model.ReservationForm
	attached      map[int64][]model.Seat
	soldUpdates   map[int64][]model.Seat
	replacedSeats map[int64][]model.Seat
	transitions   []model.ReservationState
	newShowtimes  []model.ShowtimeForm
	showtimeGets  int
	freshGets     int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		movies:        map[int64]model.Movie{},
		rooms:         map[int64]model.Room{},
		showtimes:     map[int64]model.Showtime{},
		reservations:  map[int64]model.Reservation{},
		nextID:        100,
		attached:      map[int64][]model.Seat{},
		soldUpdates:   map[int64][]model.Seat{},
		replacedSeats: map[int64][]model.Seat{},
	}
}

func (f *fakeBackend) List(ctx context.Context) ([]model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Movie
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeBackend) Get(ctx context.Context, id int64) (*model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movies[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}

// The fake serves several interfaces whose methods share names, so each
// interface gets a thin adapter.
type fakeRooms struct{ *fakeBackend }
type fakeShowtimes struct{ *fakeBackend }
type fakeReservations struct{ *fakeBackend }

func (f fakeRooms) List(ctx context.Context) ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Room
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (f fakeRooms) Get(ctx context.Context, id int64) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

func (f fakeRooms) ReplaceSeats(ctx context.Context, id int64, seats []model.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replacedSeats[id] = seats
	return nil
}

func (f fakeShowtimes) ListByRoom(ctx context.Context, roomID int64) ([]model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Showtime
	for _, st := range f.showtimes {
		if st.RoomID == roomID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f fakeShowtimes) ListByMovie(ctx context.Context, movieID int64) ([]model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Showtime
	for _, st := range f.showtimes {
		if st.MovieID == movieID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f fakeShowtimes) Get(ctx context.Context, id int64) (*model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showtimeGets++
	if repository.IsFresh(ctx) {
		f.freshGets++
	}
	if f.showtimeGetErr != nil {
		return nil, f.showtimeGetErr
	}
	st, ok := f.showtimes[id]
	if !ok {
		return nil, repository.ErrShowtimeNotFound
	}
	return &st, nil
}

func (f fakeShowtimes) Create(ctx context.Context, form model.ShowtimeForm) (*model.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newShowtimes = append(f.newShowtimes, form)
	f.nextID++
	st := model.Showtime{ID: f.nextID, MovieID: form.MovieID, RoomID: form.RoomID, StartTime: form.StartTime, EndTime: form.EndTime}
	f.showtimes[st.ID] = st
	return &st, nil
}

func (f fakeShowtimes) SetSoldSeats(ctx context.Context, id int64, seats []model.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.soldErr != nil {
		return f.soldErr
	}
	f.soldUpdates[id] = seats
	return nil
}

func (f fakeReservations) List(ctx context.Context) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Reservation
	for _, r := range f.reservations {
		out = append(out, r)
	}
	return out, nil
}

func (f fakeReservations) Create(ctx context.Context, form model.ReservationForm) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdForms = append(f.createdForms, form)
	f.nextID++
	r := model.Reservation{ID: f.nextID, UserName: form.UserName, UserEmail: form.UserEmail, UserPhone: form.UserPhone, ShowtimeID: form.ShowtimeID, State: model.StatePending}
	f.reservations[r.ID] = r
	return &r, nil
}

func (f fakeReservations) AttachSeats(ctx context.Context, id int64, seats []model.Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached[id] = seats
	return nil
}

func (f fakeReservations) Transition(ctx context.Context, id int64, to model.ReservationState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.State = to
	f.reservations[id] = r
	f.transitions = append(f.transitions, to)
	return nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []queue.ReservationEvent
	err    error
}

func (r *recordingEvents) Publish(ctx context.Context, ev queue.ReservationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

var errBackendDown = errors.New("backend down")
