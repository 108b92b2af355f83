package model

import "strconv"

// Seat identifies a position in a room's seating grid.
//
// Fields:
//  Row    – zero based row index.
//  Number – zero based column index inside the row.
//
// A seat has no id of its own: the (Row, Number) pair is its identity.
type Seat struct {
	Row    int `json:"row"`    // seats.row
	Number int `json:"number"` // seats.number
}

// Label renders the seat the way the box office reads it ("A1", "C12").
func (s Seat) Label() string {
	return RowLabel(s.Row) + strconv.Itoa(s.Number+1)
}

// SeatsPayload is the body of every PATCH .../seats call.
type SeatsPayload struct {
	Seats []Seat `json:"seats"`
}

// RowLabel converts a zero-based row index to an alphabetical label like A, B, AA.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// SeatLabels maps seats to their labels, keeping order.
func SeatLabels(seats []Seat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Label())
	}
	return out
}
