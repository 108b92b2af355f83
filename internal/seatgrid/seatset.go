package seatgrid

import "github.com/iliyamo/cinema-admin-console/internal/model"

// SeatSet is an insertion-ordered set of seats. Operations never modify the
// receiver; they return a new set.
type SeatSet []model.Seat

// NewSeatSet builds a set from seats, dropping duplicates. An empty input
// yields a nil set.
func NewSeatSet(seats []model.Seat) SeatSet {
	var out SeatSet
	for _, s := range seats {
		if !out.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// Contains reports membership.
func (s SeatSet) Contains(seat model.Seat) bool {
	for _, x := range s {
		if x == seat {
			return true
		}
	}
	return false
}

// With returns the set plus seat.
func (s SeatSet) With(seat model.Seat) SeatSet {
	if s.Contains(seat) {
		return s
	}
	out := make(SeatSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, seat)
}

// Without returns the set minus seat. Removing the last member yields nil.
func (s SeatSet) Without(seat model.Seat) SeatSet {
	var out SeatSet
	for _, x := range s {
		if x != seat {
			out = append(out, x)
		}
	}
	return out
}

// Seats copies the members into a plain slice, never nil.
func (s SeatSet) Seats() []model.Seat {
	out := make([]model.Seat, len(s))
	copy(out, s)
	return out
}

// Union returns the members of a followed by the members of b not in a.
func Union(a, b SeatSet) SeatSet {
	out := NewSeatSet(a)
	for _, x := range b {
		out = out.With(x)
	}
	return out
}

func seatAt(row, col int) model.Seat {
	return model.Seat{Row: row, Number: col}
}
