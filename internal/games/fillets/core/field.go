package core

import (
	"strconv"
	"strings"
)

const emptyCell = -1

// Field is the occupancy grid of a room.
// Cells store indices into the field's model arena rather than cube
// pointers; any address outside [0,w)x[0,h) resolves to a shared FIXED
// border cube, so boundary checks become ordinary weight comparisons.
// Cells are stored in row-major order: index = y*W + x.
type Field struct {
	w      int
	h      int
	cells  []int
	exits  []bool
	models []*Cube
	border *Cube
}

// NewField creates an empty field with the given dimensions.
func NewField(w, h int) *Field {
	f := &Field{
		w:     w,
		h:     h,
		cells: make([]int, w*h),
		exits: make([]bool, w*h),
		border: &Cube{
			index:  -1,
			kind:   KindBorder,
			weight: Fixed,
			power:  Fixed,
			shape:  UnitShape(),
		},
	}
	for i := range f.cells {
		f.cells[i] = emptyCell
	}
	return f
}

// W returns the field width.
func (f *Field) W() int {
	return f.w
}

// H returns the field height.
func (f *Field) H() int {
	return f.h
}

// Border returns the sentinel cube reported for out-of-range addresses.
func (f *Field) Border() *Cube {
	return f.border
}

// InBounds returns true if the coordinate is within the field.
func (f *Field) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < f.w && c.Y >= 0 && c.Y < f.h
}

func (f *Field) index(c Coord) int {
	return c.Y*f.w + c.X
}

// Model returns the occupant at loc: nil for an empty cell and the border
// sentinel for any address outside the field. It never fails.
func (f *Field) Model(loc Coord) *Cube {
	if !f.InBounds(loc) {
		return f.border
	}
	idx := f.cells[f.index(loc)]
	if idx == emptyCell {
		return nil
	}
	return f.models[idx]
}

// SetModel writes the occupant of an in-bounds cell; nil clears it.
// Writes outside the field are ignored; callers never issue them.
func (f *Field) SetModel(loc Coord, model *Cube) {
	if !f.InBounds(loc) {
		return
	}
	if model == nil {
		f.cells[f.index(loc)] = emptyCell
		return
	}
	f.cells[f.index(loc)] = model.index
}

// SetExit marks a cell as part of an exit.
func (f *Field) SetExit(loc Coord) {
	if f.InBounds(loc) {
		f.exits[f.index(loc)] = true
	}
}

// IsExit reports whether a cell is part of an exit.
func (f *Field) IsExit(loc Coord) bool {
	if !f.InBounds(loc) {
		return false
	}
	return f.exits[f.index(loc)]
}

// register adds a model to the arena and returns its stable index.
func (f *Field) register(model *Cube) int {
	f.models = append(f.models, model)
	return len(f.models) - 1
}

// String encodes the occupancy grid, one row per line.
// Empty cells are '.', occupied cells hold the occupant index.
func (f *Field) String() string {
	var sb strings.Builder
	for y := 0; y < f.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < f.w; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			idx := f.cells[f.index(C(x, y))]
			if idx == emptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(idx))
		}
	}
	return sb.String()
}
