package core

import "fmt"

// Move symbols that do not drive a unit.
const (
	// SymbolWait lets one round pass without moving.
	SymbolWait byte = '.'
)

// Unit binds a living model to the four symbols that move it, in Dirs
// order (up, down, left, right).
type Unit struct {
	Model   int
	Symbols [4]byte
}

// ParseSymbols converts a four-letter string into unit symbols.
func ParseSymbols(s string) ([4]byte, error) {
	var out [4]byte
	if len(s) != 4 {
		return out, fmt.Errorf("%w: symbols %q must have 4 letters", ErrBadUnit, s)
	}
	for i := 0; i < 4; i++ {
		if s[i] == SymbolWait || s[i] == ' ' {
			return out, fmt.Errorf("%w: reserved symbol %q", ErrBadUnit, s[i])
		}
		for j := 0; j < i; j++ {
			if s[i] == s[j] {
				return out, fmt.Errorf("%w: duplicate symbol %q", ErrBadUnit, s[i])
			}
		}
		out[i] = s[i]
	}
	return out, nil
}

// DirOf returns the direction a symbol stands for.
func (u Unit) DirOf(sym byte) (Dir, bool) {
	for i, s := range u.Symbols {
		if s == sym {
			return Dirs[i], true
		}
	}
	return DirNone, false
}

// SymbolOf returns the symbol moving the unit in dir.
func (u Unit) SymbolOf(dir Dir) (byte, bool) {
	for i, d := range Dirs {
		if d == dir {
			return u.Symbols[i], true
		}
	}
	return 0, false
}

// Controls is the room's view of the input side.
type Controls interface {
	// ProduceMove returns the next move symbol, if any is ready.
	ProduceMove() (byte, bool)
	// LockUntilPhasesComplete blocks input while a move animates.
	LockUntilPhasesComplete()
	// IsSceneActive reports whether the scene accepts moves at all.
	IsSceneActive() bool
	SwitchActiveTarget()
	// CheckActive is called after a death or an exit so the controls can
	// leave a unit that can no longer be driven.
	CheckActive()
	// Activate makes model the active unit.
	Activate(model int)
}

// UnitBoard is what KeyControls needs to know about a room.
type UnitBoard interface {
	Units() []Unit
	Drivable(model int) bool
}

// InputKind tells what a player input asks for.
type InputKind uint8

const (
	InputMove InputKind = iota
	InputSwitch
	InputWait
)

// Input is a queued player intent.
type Input struct {
	Kind InputKind
	Dir  Dir
}

// KeyControls turns queued player inputs into move symbols for the
// active unit.
type KeyControls struct {
	board  UnitBoard
	queue  []Input
	active int
	phases int
	locked int
	paused bool
}

// NewKeyControls creates controls that stay locked for phases rounds
// after each animated move.
func NewKeyControls(phases int) *KeyControls {
	if phases < 0 {
		phases = 0
	}
	return &KeyControls{active: -1, phases: phases}
}

// Bind attaches the controls to a room.
func (k *KeyControls) Bind(board UnitBoard) {
	k.board = board
	k.active = -1
	k.CheckActive()
}

// Push queues a player input.
func (k *KeyControls) Push(in Input) {
	k.queue = append(k.queue, in)
}

// Pending returns the number of queued inputs.
func (k *KeyControls) Pending() int {
	return len(k.queue)
}

// Clear drops all queued inputs.
func (k *KeyControls) Clear() {
	k.queue = k.queue[:0]
}

// SetPaused stops or resumes move production.
func (k *KeyControls) SetPaused(p bool) {
	k.paused = p
}

// Paused reports whether move production is stopped.
func (k *KeyControls) Paused() bool {
	return k.paused
}

// Active returns the model index of the active unit, or -1.
func (k *KeyControls) Active() int {
	return k.active
}

func (k *KeyControls) ProduceMove() (byte, bool) {
	if k.locked > 0 {
		k.locked--
		return 0, false
	}
	for len(k.queue) > 0 {
		in := k.queue[0]
		k.queue = k.queue[1:]
		switch in.Kind {
		case InputSwitch:
			k.SwitchActiveTarget()
		case InputWait:
			return SymbolWait, true
		case InputMove:
			u, ok := k.activeUnit()
			if !ok {
				continue
			}
			if sym, ok := u.SymbolOf(in.Dir); ok {
				return sym, true
			}
		}
	}
	return 0, false
}

func (k *KeyControls) LockUntilPhasesComplete() {
	k.locked = k.phases
}

func (k *KeyControls) IsSceneActive() bool {
	return !k.paused
}

func (k *KeyControls) SwitchActiveTarget() {
	if k.board == nil {
		return
	}
	units := k.board.Units()
	if len(units) == 0 {
		k.active = -1
		return
	}
	start := 0
	for i, u := range units {
		if u.Model == k.active {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(units); i++ {
		u := units[(start+i)%len(units)]
		if k.board.Drivable(u.Model) {
			k.active = u.Model
			return
		}
	}
	k.active = -1
}

func (k *KeyControls) CheckActive() {
	if k.board == nil {
		return
	}
	if k.active >= 0 && k.board.Drivable(k.active) {
		return
	}
	k.SwitchActiveTarget()
}

func (k *KeyControls) Activate(model int) {
	k.active = model
}

func (k *KeyControls) activeUnit() (Unit, bool) {
	if k.board == nil {
		return Unit{}, false
	}
	k.CheckActive()
	for _, u := range k.board.Units() {
		if u.Model == k.active {
			return u, true
		}
	}
	return Unit{}, false
}

var _ Controls = (*KeyControls)(nil)
