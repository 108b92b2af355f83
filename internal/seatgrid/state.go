package seatgrid

import (
	"encoding/json"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// Mode selects which toggle rules apply.
type Mode int

const (
	// ModeView draws the configured layout; toggles are ignored.
	ModeView Mode = iota
	// ModeEdit toggles the room's configured seats, capped at the room capacity.
	ModeEdit
	// ModeSell toggles the cart, capped at the requested quantity.
	ModeSell
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeSell:
		return "sell"
	}
	return "view"
}

// Outcome tells the caller what an event did.
type Outcome int

const (
	Ignored  Outcome = iota // nothing to do in the current mode
	Added                   // seat joined the edited set
	Removed                 // seat left the edited set
	Updated                 // a non-toggle event changed the state
	Hidden                  // cell is not drawn as a seat
	SoldSeat                // seat is sold and cannot be selected
	Rejected                // seat is not selectable; the sale form is marked invalid
	Full                    // the cap is reached
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	case Hidden:
		return "hidden"
	case SoldSeat:
		return "sold"
	case Rejected:
		return "rejected"
	case Full:
		return "full"
	}
	return "ignored"
}

// Changed reports whether the outcome modified the seat sets.
func (o Outcome) Changed() bool {
	return o == Added || o == Removed
}

// Event is an input to State.Apply.
type Event interface {
	event()
}

// Toggle flips the seat at (Row, Col) in the set being edited.
type Toggle struct {
	Row int
	Col int
}

// SetMaxQuantity sets how many seats the customer wants.
type SetMaxQuantity struct {
	Value int
}

// SetMode switches between view, edit and sell.
type SetMode struct {
	Mode Mode
}

func (Toggle) event()         {}
func (SetMaxQuantity) event() {}
func (SetMode) event()        {}

// State holds a grid's seat sets and the occupancy grid mirroring the set
// being edited: the Active set in view and edit mode, the Cart in sell mode.
// A State is a value; Apply returns a new one and never modifies the receiver.
type State struct {
	dims        Dimensions
	mode        Mode
	grid        [][]bool
	active      SeatSet
	sold        SeatSet
	cart        SeatSet
	editCap     int
	maxQuantity int
	invalid     bool
}

// NewLayout starts a room layout in view mode. Adding seats in edit mode is
// capped at roomCapacity.
func NewLayout(dims Dimensions, active []model.Seat, roomCapacity int) State {
	s := State{
		dims:    dims,
		mode:    ModeView,
		active:  NewSeatSet(active),
		editCap: roomCapacity,
	}
	s.grid = s.mirror()
	return s
}

// NewSale starts a sale in sell mode with an empty cart.
func NewSale(dims Dimensions, active, sold []model.Seat) State {
	s := State{
		dims:   dims,
		mode:   ModeSell,
		active: NewSeatSet(active),
		sold:   NewSeatSet(sold),
	}
	s.grid = s.mirror()
	return s
}

// Apply handles one event and returns the resulting state.
func (s State) Apply(ev Event) (State, Outcome) {
	switch e := ev.(type) {
	case Toggle:
		return s.toggle(e.Row, e.Col)
	case SetMaxQuantity:
		v := e.Value
		if v < 0 {
			v = 0
		}
		if v == s.maxQuantity {
			return s, Ignored
		}
		s.maxQuantity = v
		s.invalid = false
		return s, Updated
	case SetMode:
		if e.Mode == s.mode {
			return s, Ignored
		}
		s.mode = e.Mode
		s.grid = s.mirror()
		return s, Updated
	}
	return s, Ignored
}

func (s State) toggle(row, col int) (State, Outcome) {
	if s.mode == ModeView {
		return s, Ignored
	}
	if !s.dims.Visible(row, col) {
		return s, Hidden
	}
	seat := model.Seat{Row: row, Number: col}
	if s.mode == ModeEdit {
		return s.toggleActive(seat)
	}
	return s.toggleCart(seat)
}

func (s State) toggleActive(seat model.Seat) (State, Outcome) {
	if s.active.Contains(seat) {
		s.active = s.active.Without(seat)
		s.grid = setCell(s.grid, seat, false)
		return s, Removed
	}
	if len(s.active) >= s.editCap {
		return s, Full
	}
	s.active = s.active.With(seat)
	s.grid = setCell(s.grid, seat, true)
	return s, Added
}

func (s State) toggleCart(seat model.Seat) (State, Outcome) {
	if s.sold.Contains(seat) {
		return s, SoldSeat
	}
	if !s.active.Contains(seat) || s.maxQuantity == 0 {
		s.invalid = true
		return s, Rejected
	}
	if s.cart.Contains(seat) {
		s.cart = s.cart.Without(seat)
		s.grid = setCell(s.grid, seat, false)
		s.invalid = false
		return s, Removed
	}
	if len(s.cart) >= s.maxQuantity {
		return s, Full
	}
	s.cart = s.cart.With(seat)
	s.grid = setCell(s.grid, seat, true)
	s.invalid = false
	return s, Added
}

// mirror builds the occupancy grid from the set being edited.
func (s State) mirror() [][]bool {
	set := s.active
	if s.mode == ModeSell {
		set = s.cart
	}
	grid := make([][]bool, s.dims.Rows)
	for i := range grid {
		grid[i] = make([]bool, s.dims.Cols)
	}
	for _, seat := range set {
		if seat.Row >= 0 && seat.Row < s.dims.Rows && seat.Number >= 0 && seat.Number < s.dims.Cols {
			grid[seat.Row][seat.Number] = true
		}
	}
	return grid
}

// setCell copies the row it changes so earlier states keep their grid.
func setCell(grid [][]bool, seat model.Seat, v bool) [][]bool {
	out := make([][]bool, len(grid))
	copy(out, grid)
	row := make([]bool, len(grid[seat.Row]))
	copy(row, grid[seat.Row])
	row[seat.Number] = v
	out[seat.Row] = row
	return out
}

// Valid reports whether the sale form may be submitted: a quantity was
// requested, the cart holds exactly that many seats and no rejected toggle
// happened since the last change.
func (s State) Valid() bool {
	return !s.invalid && s.maxQuantity != 0 && s.maxQuantity == len(s.cart)
}

func (s State) Dims() Dimensions { return s.dims }
func (s State) Mode() Mode { return s.mode }
func (s State) MaxQuantity() int { return s.maxQuantity }
func (s State) EditCap() int { return s.editCap }
func (s State) Invalid() bool { return s.invalid }
func (s State) Active() SeatSet { return s.active }
func (s State) Sold() SeatSet { return s.sold }
func (s State) Cart() SeatSet { return s.cart }
func (s State) Occupied(row, col int) bool {
	return row >= 0 && row < len(s.grid) && col >= 0 && col < len(s.grid[row]) && s.grid[row][col]
}

// ShowtimeSeats is the cart plus the seats already sold, the set the
// showtime holds once the sale goes through.
func (s State) ShowtimeSeats() SeatSet {
	return Union(s.cart, s.sold)
}

// Available counts configured seats that are not sold.
func (s State) Available() int {
	n := 0
	for _, seat := range s.active {
		if !s.sold.Contains(seat) {
			n++
		}
	}
	return n
}

type snapshot struct {
	Dims        Dimensions   `json:"dims"`
	Mode        Mode         `json:"mode"`
	Active      []model.Seat `json:"active"`
	Sold        []model.Seat `json:"sold"`
	Cart        []model.Seat `json:"cart"`
	EditCap     int          `json:"edit_cap"`
	MaxQuantity int          `json:"max_quantity"`
	Invalid     bool         `json:"invalid"`
}

// MarshalJSON stores the sets; the grid is derived again on load.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		Dims:        s.dims,
		Mode:        s.mode,
		Active:      s.active.Seats(),
		Sold:        s.sold.Seats(),
		Cart:        s.cart.Seats(),
		EditCap:     s.editCap,
		MaxQuantity: s.maxQuantity,
		Invalid:     s.invalid,
	})
}

// UnmarshalJSON restores a state written by MarshalJSON.
func (s *State) UnmarshalJSON(b []byte) error {
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return err
	}
	*s = State{
		dims:        snap.Dims,
		mode:        snap.Mode,
		active:      NewSeatSet(snap.Active),
		sold:        NewSeatSet(snap.Sold),
		cart:        NewSeatSet(snap.Cart),
		editCap:     snap.EditCap,
		maxQuantity: snap.MaxQuantity,
		invalid:     snap.Invalid,
	}
	s.grid = s.mirror()
	return nil
}
