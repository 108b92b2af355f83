package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

func TestRoomRepo_ReplaceSeatsSendsEmptyList(t *testing.T) {
	client, fb := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, true)
	}, nil)

	require.NoError(t, NewRoomRepo(client).ReplaceSeats(context.Background(), 2, nil))

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPatch, calls[0].method)
	assert.Equal(t, "/rooms/2/seats", calls[0].path)
	assert.JSONEq(t, `{"seats":[]}`, calls[0].body)
}

func TestShowtimeRepo_DecodesZonelessTimes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":5,"movie_id":1,"room_id":2,"start_time":"2024-05-01T11:00:00","end_time":"2024-05-01T13:15:00","seats_sold":[{"row":0,"number":1}]}]`))
	}, nil)

	list, err := NewShowtimeRepo(client).ListByRoom(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC), list[0].StartTime.Time)
	assert.Equal(t, []model.Seat{{Row: 0, Number: 1}}, list[0].SeatsSold)
}

func TestShowtimeRepo_SetSoldSeats(t *testing.T) {
	client, fb := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	seats := []model.Seat{{Row: 0, Number: 0}, {Row: 1, Number: 2}}
	require.NoError(t, NewShowtimeRepo(client).SetSoldSeats(context.Background(), 7, seats))

	var got model.SeatsPayload
	require.NoError(t, json.Unmarshal([]byte(fb.calls()[0].body), &got))
	assert.Equal(t, seats, got.Seats)
	assert.Equal(t, "/showtimes/7/seats", fb.calls()[0].path)
}

func TestReservationRepo_CreateAndTransition(t *testing.T) {
	client, fb := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusCreated, model.Reservation{ID: 11, UserName: "Ana", State: model.StatePending})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}, nil)
	repo := NewReservationRepo(client)
	ctx := context.Background()

	res, err := repo.Create(ctx, model.ReservationForm{UserName: "Ana", UserEmail: "ana@example.com", ShowtimeID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(11), res.ID)

	require.NoError(t, repo.Transition(ctx, 11, model.StateConfirmed))
	assert.ErrorIs(t, repo.Transition(ctx, 11, model.StatePending), ErrInvalidTransition)

	calls := fb.calls()
	require.Len(t, calls, 2)
	assert.JSONEq(t, `{"user_name":"Ana","user_email":"ana@example.com","user_phone":"","showtime_id":3}`, calls[0].body)
	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Equal(t, "/reservations/11/confirmed", calls[1].path)
	assert.Empty(t, calls[1].body)
}

func TestMovieRepo_GetNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, nil)

	m, err := NewMovieRepo(client).Get(context.Background(), 3)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
