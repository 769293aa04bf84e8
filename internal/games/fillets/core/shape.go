package core

import (
	"fmt"
	"strings"
)

// Shape is the immutable footprint of a cube.
// Offsets are relative to the cube location (its top-left corner).
type Shape struct {
	offsets []Coord
	w, h    int
}

// ParseShape builds a shape from a text mask.
// 'X' marks a filled cell, any other rune an empty one, and rows are
// separated by newlines. Blank leading and trailing rows are ignored, so
//
//	XXXXX
//	..X
//	..X
//
// describes a T-shaped table.
func ParseShape(mask string) (Shape, error) {
	lines := strings.Split(strings.ReplaceAll(mask, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	var s Shape
	for y, line := range lines {
		x := 0
		for _, r := range line {
			if r == 'X' {
				s.offsets = append(s.offsets, C(x, y))
				if x+1 > s.w {
					s.w = x + 1
				}
				if y+1 > s.h {
					s.h = y + 1
				}
			}
			x++
		}
	}
	if len(s.offsets) == 0 {
		return Shape{}, fmt.Errorf("%w: %q", ErrEmptyShape, mask)
	}
	return s, nil
}

// UnitShape returns the single-cell shape.
func UnitShape() Shape {
	return Shape{offsets: []Coord{C(0, 0)}, w: 1, h: 1}
}

// Width returns the width of the shape bounding box.
func (s Shape) Width() int {
	return s.w
}

// Height returns the height of the shape bounding box.
func (s Shape) Height() int {
	return s.h
}

// Size returns the number of filled cells.
func (s Shape) Size() int {
	return len(s.offsets)
}

// Offsets returns a copy of the filled offsets in row-major order.
func (s Shape) Offsets() []Coord {
	out := make([]Coord, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// Cells returns the absolute cells covered when the shape is placed at loc.
func (s Shape) Cells(loc Coord) []Coord {
	out := make([]Coord, len(s.offsets))
	for i, o := range s.offsets {
		out[i] = loc.Plus(o)
	}
	return out
}

// String renders the shape back into its mask form.
func (s Shape) String() string {
	rows := make([][]byte, s.h)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", s.w))
	}
	for _, o := range s.offsets {
		rows[o.Y][o.X] = 'X'
	}
	lines := make([]string, s.h)
	for y, row := range rows {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}
