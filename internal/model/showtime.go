package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Showtime is a scheduled screening of a movie in a room.
//
// Fields:
//  ID        – backend identifier.
//  MovieID   – movie being screened.
//  RoomID    – room hosting the screening.
//  StartTime – when the screening begins.
//  EndTime   – when the room is free again (duration + break).
//  SeatsSold – seats already sold for this screening.
type Showtime struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	RoomID    int64     `json:"room_id"`
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`
	SeatsSold []Seat    `json:"seats_sold"`
}

// ShowtimeForm is the payload for creating a showtime.
type ShowtimeForm struct {
	MovieID   int64     `json:"movie_id"`
	RoomID    int64     `json:"room_id"`
	StartTime Timestamp `json:"start_time"`
	EndTime   Timestamp `json:"end_time"`
}

// Timestamp is a time.Time that also accepts the zone-less ISO layout some
// backends emit. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

const zonelessLayout = "2006-01-02T15:04:05"

// UnmarshalJSON accepts RFC 3339 and zone-less timestamps; null leaves the zero time.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if v, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = v
		return nil
	}
	v, err := time.Parse(zonelessLayout, s)
	if err != nil {
		return err
	}
	t.Time = v
	return nil
}

// MarshalJSON writes RFC 3339 with the offset of the wrapped time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
