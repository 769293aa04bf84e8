package core

import (
	"errors"
	"fmt"
)

var (
	// ErrBadIndex is returned for a model index that was never assigned.
	ErrBadIndex = errors.New("bad model index")

	// ErrBadMove is returned when a move symbol is unknown or cannot be
	// applied in the current state.
	ErrBadMove = errors.New("bad move")

	// ErrEarlyFinish is returned when a replayed log completes the room
	// while objects are still falling.
	ErrEarlyFinish = errors.New("early finished level")

	// ErrUnsettled is returned when gravity does not reach a fixed point
	// within the configured number of passes.
	ErrUnsettled = errors.New("room did not settle")

	ErrEmptyShape  = errors.New("empty shape")
	ErrUnknownKind = errors.New("unknown model kind")
	ErrOccupied    = errors.New("cell already occupied")
	ErrOutside     = errors.New("model outside field")
	ErrBadUnit     = errors.New("bad unit")
)

// IndexError reports an out-of-range model index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %d (models: %d)", ErrBadIndex, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrBadIndex }

// LoadError reports a move log that cannot be replayed.
// The whole replay must be treated as invalid.
type LoadError struct {
	Move byte
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error - %v: move %q", e.Err, string(e.Move))
}

func (e *LoadError) Unwrap() error { return e.Err }
