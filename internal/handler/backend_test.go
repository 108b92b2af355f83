package handler_test

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// restBackend is an in-memory stand-in for the cinema REST backend.
type restBackend struct {
	mu           sync.Mutex
	movies       map[int64]model.Movie
	rooms        map[int64]model.Room
	showtimes    map[int64]model.Showtime
	reservations map[int64]model.Reservation
	nextID       int64

	attached    map[int64][]model.Seat
	sold        map[int64][]model.Seat
	transitions []string
	failCreate  bool
}

func newRestBackend() *restBackend {
	return &restBackend{
		movies:       map[int64]model.Movie{},
		rooms:        map[int64]model.Room{},
		showtimes:    map[int64]model.Showtime{},
		reservations: map[int64]model.Reservation{},
		nextID:       100,
		attached:     map[int64][]model.Seat{},
		sold:         map[int64][]model.Seat{},
	}
}

func sorted[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// get serves one item of m, or 404.
func get[T any](b *restBackend, m map[int64]T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id, ok := pathID(r)
		v, found := m[id]
		if !ok || !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func (b *restBackend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /movies/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, sorted(b.movies))
	})
	mux.HandleFunc("GET /movies/{id}", get(b, b.movies))
	mux.HandleFunc("POST /movies/{$}", func(w http.ResponseWriter, r *http.Request) {
		var f model.MovieForm
		_ = json.NewDecoder(r.Body).Decode(&f)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		m := model.Movie{ID: b.nextID, Title: f.Title, Genre: f.Genre, Duration: f.Duration, Classification: f.Classification, Format: f.Format}
		b.movies[m.ID] = m
		writeJSON(w, http.StatusCreated, m)
	})

	mux.HandleFunc("GET /rooms/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, sorted(b.rooms))
	})
	mux.HandleFunc("GET /rooms/{id}", get(b, b.rooms))
	mux.HandleFunc("POST /rooms/{$}", func(w http.ResponseWriter, r *http.Request) {
		var f model.RoomForm
		_ = json.NewDecoder(r.Body).Decode(&f)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		room := model.Room{ID: b.nextID, Name: f.Name, Capacity: f.Capacity, BreakTime: f.BreakTime, Seats: []model.Seat{}}
		b.rooms[room.ID] = room
		writeJSON(w, http.StatusCreated, room)
	})
	mux.HandleFunc("DELETE /rooms/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		delete(b.rooms, id)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("PATCH /rooms/{id}/seats", func(w http.ResponseWriter, r *http.Request) {
		var p model.SeatsPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		room, ok := b.rooms[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
			return
		}
		room.Seats = p.Seats
		b.rooms[id] = room
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /showtimes/room/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		out := []model.Showtime{}
		for _, st := range sorted(b.showtimes) {
			if st.RoomID == id {
				out = append(out, st)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /showtimes/movie/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		out := []model.Showtime{}
		for _, st := range sorted(b.showtimes) {
			if st.MovieID == id {
				out = append(out, st)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /showtimes/{id}", get(b, b.showtimes))
	mux.HandleFunc("POST /showtimes/{$}", func(w http.ResponseWriter, r *http.Request) {
		var f model.ShowtimeForm
		_ = json.NewDecoder(r.Body).Decode(&f)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		st := model.Showtime{ID: b.nextID, MovieID: f.MovieID, RoomID: f.RoomID, StartTime: f.StartTime, EndTime: f.EndTime, SeatsSold: []model.Seat{}}
		b.showtimes[st.ID] = st
		writeJSON(w, http.StatusCreated, st)
	})
	mux.HandleFunc("PATCH /showtimes/{id}/seats", func(w http.ResponseWriter, r *http.Request) {
		var p model.SeatsPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		b.sold[id] = p.Seats
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /reservations/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, sorted(b.reservations))
	})
	mux.HandleFunc("POST /reservations/{$}", func(w http.ResponseWriter, r *http.Request) {
		var f model.ReservationForm
		_ = json.NewDecoder(r.Body).Decode(&f)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failCreate {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
			return
		}
		b.nextID++
		res := model.Reservation{ID: b.nextID, UserName: f.UserName, UserEmail: f.UserEmail, UserPhone: f.UserPhone, ShowtimeID: f.ShowtimeID, State: model.StatePending}
		b.reservations[res.ID] = res
		writeJSON(w, http.StatusCreated, res)
	})
	mux.HandleFunc("PATCH /reservations/{id}/seats", func(w http.ResponseWriter, r *http.Request) {
		var p model.SeatsPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		b.attached[id] = p.Seats
		res := b.reservations[id]
		res.Seats = p.Seats
		b.reservations[id] = res
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("PUT /reservations/{id}/{state}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id, _ := pathID(r)
		res, ok := b.reservations[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
			return
		}
		res.State = model.ReservationState(r.PathValue("state"))
		b.reservations[id] = res
		b.transitions = append(b.transitions, r.PathValue("id")+":"+r.PathValue("state"))
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}
