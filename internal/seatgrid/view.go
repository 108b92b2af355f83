package seatgrid

// Cell is one grid position prepared for drawing.
type Cell struct {
	Row       int
	Col       int
	Label     string
	Visible   bool
	Clickable bool
	Status    string // cart, sold, active or empty
}

// Cells lays the state out row by row. A cell is clickable only when it is
// visible and the mode accepts toggles, so hidden padding cells never reach
// Apply from the page.
func (s State) Cells() [][]Cell {
	rows := make([][]Cell, s.dims.Rows)
	for i := range rows {
		rows[i] = make([]Cell, s.dims.Cols)
		for j := range rows[i] {
			c := Cell{Row: i, Col: j, Visible: s.dims.Visible(i, j)}
			if c.Visible {
				c.Clickable = s.mode != ModeView
				c.Status = s.status(i, j)
				c.Label = seatAt(i, j).Label()
			}
			rows[i][j] = c
		}
	}
	return rows
}

func (s State) status(row, col int) string {
	seat := seatAt(row, col)
	switch {
	case s.cart.Contains(seat):
		return "cart"
	case s.sold.Contains(seat):
		return "sold"
	case s.active.Contains(seat):
		return "active"
	}
	return "empty"
}
