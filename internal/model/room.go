package model

// Room is a screening room. Capacity is the number of seats the room may
// have configured; Seats is the configured layout itself.
//
// Fields:
//  ID        – backend identifier.
//  Name      – display name.
//  Capacity  – maximum number of configured seats.
//  BreakTime – cleaning break after each showtime, in minutes.
//  Seats     – configured (active) seats.
type Room struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	BreakTime int    `json:"break_time"`
	Seats     []Seat `json:"seats"`
}

// RoomForm is the payload for creating or updating a room.
type RoomForm struct {
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	BreakTime int    `json:"break_time"`
}
