package seatgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     Dimensions
	}{
		{name: "single seat", capacity: 1, want: Dimensions{Capacity: 1, Rows: 1, Cols: 2}},
		{name: "seven", capacity: 7, want: Dimensions{Capacity: 7, Rows: 2, Cols: 4}},
		{name: "perfect square", capacity: 8, want: Dimensions{Capacity: 8, Rows: 2, Cols: 4}},
		{name: "ten", capacity: 10, want: Dimensions{Capacity: 10, Rows: 2, Cols: 5}},
		{name: "hundred", capacity: 100, want: Dimensions{Capacity: 100, Rows: 7, Cols: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.capacity))
		})
	}
}

func TestCalculate_CoversCapacity(t *testing.T) {
	for capacity := 1; capacity <= 2000; capacity++ {
		d := Calculate(capacity)
		require.GreaterOrEqual(t, d.Rows*d.Cols, capacity, "capacity %d", capacity)

		cols := 0
		for cols*cols < 2*capacity {
			cols++
		}
		require.Equal(t, cols, d.Cols, "capacity %d", capacity)
	}
}

func TestCalculate_PanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { Calculate(0) })
	assert.Panics(t, func() { Calculate(-3) })
}

func TestForRoom_DoublesCapacity(t *testing.T) {
	assert.Equal(t, Dimensions{Capacity: 8, Rows: 2, Cols: 4}, ForRoom(4))
}

func TestVisible_CentersPartialLastRow(t *testing.T) {
	d := Calculate(7)
	require.Equal(t, 0, d.StartPadding())
	require.Equal(t, 3, d.LastRowCount())

	for col := 0; col < 4; col++ {
		assert.True(t, d.Visible(0, col), "row 0 col %d", col)
	}
	assert.True(t, d.Visible(1, 0))
	assert.True(t, d.Visible(1, 1))
	assert.True(t, d.Visible(1, 2))
	assert.False(t, d.Visible(1, 3))
	assert.Equal(t, 7, d.VisibleCount())
}

func TestVisible_PaddingCombinesWithCapacityCutoff(t *testing.T) {
	// 6 seats on 4 columns: the last row holds 2 seats padded by 1 column,
	// but index 6 (row 1, col 2) is past the capacity, so only col 1 shows.
	d := Calculate(6)
	require.Equal(t, Dimensions{Capacity: 6, Rows: 2, Cols: 4}, d)
	require.Equal(t, 1, d.StartPadding())

	assert.False(t, d.Visible(1, 0))
	assert.True(t, d.Visible(1, 1))
	assert.False(t, d.Visible(1, 2))
	assert.False(t, d.Visible(1, 3))
	assert.Equal(t, 5, d.VisibleCount())
}

func TestVisible_FullLastRow(t *testing.T) {
	d := Calculate(10)
	assert.Equal(t, 0, d.StartPadding())
	assert.Equal(t, 10, d.VisibleCount())
}

func TestVisible_OutOfBounds(t *testing.T) {
	d := Calculate(10)
	assert.False(t, d.Visible(-1, 0))
	assert.False(t, d.Visible(0, -1))
	assert.False(t, d.Visible(2, 0))
	assert.False(t, d.Visible(0, 5))
}
