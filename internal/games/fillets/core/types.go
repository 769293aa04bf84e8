// Package core provides the round-resolution engine for the Fillets puzzle.
// Weighted cubes occupy a bounded grid, fall under simplified gravity and
// push each other along the four cardinal directions.
// This package is UI-agnostic and deterministic.
package core

// Weight is a mass class. It is used both for what a cube weighs and for
// what it can push or carry (its power).
type Weight uint8

const (
	NoWeight Weight = iota // nothing landed; never the weight of a cube
	Light
	Heavy
	Fixed // walls and the border: immovable, never fall, never die
)

// String returns the string representation of a weight.
func (w Weight) String() string {
	switch w {
	case NoWeight:
		return "none"
	case Light:
		return "light"
	case Heavy:
		return "heavy"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Dir is a movement direction. DirNone means "not moving this round".
type Dir uint8

const (
	DirNone Dir = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Dirs lists the four movement directions in symbol order (up, down, left, right).
var Dirs = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Lateral reports whether the direction is left or right.
func (d Dir) Lateral() bool {
	return d == DirLeft || d == DirRight
}

// FallResult is the outcome of one gravity step for a cube.
type FallResult uint8

const (
	FallNo   FallResult = iota // not falling and was not falling
	FallNow                    // moves down one cell this pass; the loop must repeat
	FallLast                   // has just landed; counts for the impact cue
)

// String returns the string representation of a fall result.
func (f FallResult) String() string {
	switch f {
	case FallNow:
		return "now"
	case FallLast:
		return "last"
	default:
		return "no"
	}
}

// DeathCause tells why a living cube died.
type DeathCause uint8

const (
	DeathNone   DeathCause = iota
	DeathMove              // something fell onto it or onto what it carries
	DeathFall              // it fell too far itself
	DeathStress            // it carries more than its power allows
)

// String returns the string representation of a death cause.
func (c DeathCause) String() string {
	switch c {
	case DeathMove:
		return "move"
	case DeathFall:
		return "fall"
	case DeathStress:
		return "stress"
	default:
		return "none"
	}
}
