// Package seatgrid lays out a room's seats on a grid and tracks which seats
// are configured, sold or selected while an operator edits a layout or
// sells tickets.
package seatgrid

import (
	"fmt"
	"math"
)

// Dimensions is the grid derived from a seat capacity. It is never
// persisted; recompute it whenever the capacity changes.
type Dimensions struct {
	Capacity int `json:"capacity"`
	Rows     int `json:"rows"`
	Cols     int `json:"cols"`
}

// Calculate derives a grid that is wider than tall: cols = ceil(sqrt(2*capacity))
// and rows = ceil(capacity/cols). Capacity must be positive; callers reject a
// zero capacity before getting here.
func Calculate(capacity int) Dimensions {
	if capacity <= 0 {
		panic(fmt.Sprintf("seatgrid: capacity must be positive, got %d", capacity))
	}
	cols := int(math.Ceil(math.Sqrt(float64(capacity * 2))))
	rows := (capacity + cols - 1) / cols
	return Dimensions{Capacity: capacity, Rows: rows, Cols: cols}
}

// ForRoom returns the grid used to draw a room. Rooms are drawn at twice
// their stated capacity so the layout leaves space for aisles.
func ForRoom(roomCapacity int) Dimensions {
	return Calculate(roomCapacity * 2)
}

// LastRowCount is the number of seats the last row holds.
func (d Dimensions) LastRowCount() int {
	if d.Cols == 0 {
		return 0
	}
	if r := d.Capacity % d.Cols; r != 0 {
		return r
	}
	return d.Cols
}

// StartPadding is the number of empty columns before the first seat of the
// last row, which keeps a partial last row centered.
func (d Dimensions) StartPadding() int {
	return (d.Cols - d.LastRowCount()) / 2
}

// Visible reports whether the cell at (row, col) is drawn as a seat. A cell is
// visible when its index row*cols+col is below the capacity and, on the last
// row only, its column falls inside the centered window. Hidden cells are not
// clickable.
func (d Dimensions) Visible(row, col int) bool {
	if row < 0 || row >= d.Rows || col < 0 || col >= d.Cols {
		return false
	}
	if row*d.Cols+col >= d.Capacity {
		return false
	}
	if row != d.Rows-1 {
		return true
	}
	pad := d.StartPadding()
	return col >= pad && col < pad+d.LastRowCount()
}

// VisibleCount counts the visible cells.
func (d Dimensions) VisibleCount() int {
	n := 0
	for i := 0; i < d.Rows; i++ {
		for j := 0; j < d.Cols; j++ {
			if d.Visible(i, j) {
				n++
			}
		}
	}
	return n
}
