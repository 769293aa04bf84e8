package core

import "fmt"

// Cube is one model on the field: a fish, an item or a wall.
// Its location is the top-left corner of its shape.
type Cube struct {
	index int
	kind  Kind
	loc   Coord
	shape Shape

	weight Weight
	power  Weight

	unit       bool
	alive      bool
	readyToDie bool
	death      DeathCause
	out        bool
	onField    bool
	goal       bool

	dir         Dir
	lastDir     Dir
	lookLeft    bool
	readyToTurn bool
	falling     bool
	fallen      int

	field *Field
	rules *Rules
}

// NewCube creates a detached cube. A cube created alive is a unit: it can
// be driven and it turns into an item when it dies.
func NewCube(loc Coord, weight, power Weight, alive bool, shape Shape) *Cube {
	if shape.Size() == 0 {
		shape = UnitShape()
	}
	return &Cube{
		index:  -1,
		loc:    loc,
		shape:  shape,
		weight: weight,
		power:  power,
		unit:   alive,
		alive:  alive,
		// Fish face left until they swim right.
		lookLeft: true,
	}
}

// Index returns the model index assigned by the room, -1 before it is added.
func (c *Cube) Index() int { return c.index }

// Kind returns the model kind used at construction.
func (c *Cube) Kind() Kind { return c.kind }

// Location returns the top-left corner of the shape.
func (c *Cube) Location() Coord { return c.loc }

// Shape returns the cells the cube covers relative to its location.
func (c *Cube) Shape() Shape { return c.shape }

// Weight returns how heavy the cube is for whoever pushes or carries it.
func (c *Cube) Weight() Weight { return c.weight }

// Power returns the heaviest weight the cube can push or carry.
func (c *Cube) Power() Weight { return c.power }

// Dir returns the direction of the move committed this pass.
func (c *Cube) Dir() Dir { return c.dir }

// IsAlive reports whether the cube is a living fish.
func (c *Cube) IsAlive() bool { return c.alive }

// IsUnit reports whether the cube was created alive.
func (c *Cube) IsUnit() bool { return c.unit }

// IsOut reports whether the cube has left through an exit.
func (c *Cube) IsOut() bool { return c.out }

// IsWall reports whether the cube never moves.
func (c *Cube) IsWall() bool { return c.weight >= Fixed }

// IsFalling reports whether the cube fell in the last pass.
func (c *Cube) IsFalling() bool { return c.falling }

// IsGoal reports whether an item must leave the room too.
func (c *Cube) IsGoal() bool { return c.goal }

// LookLeft reports the facing of the cube.
func (c *Cube) LookLeft() bool { return c.lookLeft }

// Death returns why the cube died, DeathNone while alive.
func (c *Cube) Death() DeathCause { return c.death }

// OnField reports whether the cube occupies cells of the field.
func (c *Cube) OnField() bool { return c.onField }

// SetGoal marks an item that has to leave the room.
func (c *Cube) SetGoal(goal bool) { c.goal = goal }

// Cells returns the field cells the cube covers.
func (c *Cube) Cells() []Coord { return c.shape.Cells(c.loc) }

// IsDead reports whether a fish has died.
func (c *Cube) IsDead() bool { return c.unit && !c.alive }

// SetLookLeft sets the facing of the cube.
func (c *Cube) SetLookLeft(l bool) { c.lookLeft = l }

func (c *Cube) String() string {
	kind := c.kind
	if kind == "" {
		kind = Kind(c.weight.String())
	}
	return fmt.Sprintf("%s(%d) at %s", kind, c.index, c.loc)
}

// mask writes the cube into every cell of its footprint.
func (c *Cube) mask() {
	for _, cell := range c.Cells() {
		c.field.SetModel(cell, c)
	}
}

// unmask clears the cells of the footprint that still hold this cube.
// Another cube may already have moved into one of them during the same
// phase.
func (c *Cube) unmask() {
	for _, cell := range c.Cells() {
		if c.field.Model(cell) == c {
			c.field.SetModel(cell, nil)
		}
	}
}

// OccupyNewPos commits the direction chosen in the previous pass: the cube
// releases its old cells and takes the new ones. A cube marked out leaves
// the field instead.
func (c *Cube) OccupyNewPos() {
	if !c.onField {
		return
	}
	if c.out {
		c.unmask()
		c.onField = false
		return
	}
	if c.dir == DirNone {
		return
	}
	c.unmask()
	c.loc = c.loc.Step(c.dir)
	c.mask()
	if c.readyToTurn {
		c.lookLeft = !c.lookLeft
		c.readyToTurn = false
	}
	if c.dir == DirDown && c.falling {
		c.fallen++
	}
}

// CheckDead evaluates the death rules for a living cube and latches the
// cause. The death itself happens in PrepareRound. It returns true when
// the controller has to be told about it.
func (c *Cube) CheckDead() bool {
	if !c.alive || c.out || c.readyToDie || c.weight >= Fixed || !c.onField {
		return false
	}
	switch {
	case c.checkDeadMove():
		c.death = DeathMove
	case c.checkDeadFall():
		c.death = DeathFall
	case c.checkDeadStress():
		c.death = DeathStress
	default:
		return false
	}
	c.readyToDie = true
	return true
}

// CheckOut marks a cube out when its whole footprint covers exit cells.
// Only living cubes and goal items can leave.
func (c *Cube) CheckOut() bool {
	if c.out || !c.onField || c.readyToDie || c.weight >= Fixed {
		return false
	}
	if !c.alive && !c.goal {
		return false
	}
	for _, cell := range c.Cells() {
		if !c.field.IsExit(cell) {
			return false
		}
	}
	c.out = true
	c.falling = false
	return true
}

// PrepareRound applies a latched death and clears the per-pass state.
// It reports whether the cube died.
func (c *Cube) PrepareRound() bool {
	died := false
	if c.readyToDie {
		c.readyToDie = false
		c.alive = false
		died = true
	}
	c.lastDir = c.dir
	c.dir = DirNone
	c.readyToTurn = false
	return died
}

// CanFall reports whether the cube can move one cell down together with
// everything that supports it.
func (c *Cube) CanFall() bool {
	return c.canFall(map[int]bool{})
}

// ActionFall is one gravity step. FallLast means the cube was falling and
// has just landed.
func (c *Cube) ActionFall() FallResult {
	if c.CanFall() {
		c.dir = DirDown
		c.falling = true
		return FallNow
	}
	if c.falling {
		c.falling = false
		c.fallen = 0
		return FallLast
	}
	return FallNo
}

// CanDir reports whether the cube can move in dir with the given power.
func (c *Cube) CanDir(dir Dir, power Weight) bool {
	if dir == DirNone || !c.onField || c.out {
		return false
	}
	_, ok := c.pushChain(dir, power)
	return ok
}

// MoveDir moves the cube in dir, pushing every object in the way.
// It returns false and changes nothing when the way is blocked.
func (c *Cube) MoveDir(dir Dir) bool {
	if dir == DirNone || !c.onField || c.out {
		return false
	}
	chain, ok := c.pushChain(dir, c.power)
	if !ok {
		return false
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].moveDirBrute(dir)
	}
	c.moveDirBrute(dir)
	if dir.Lateral() && (dir == DirLeft) != c.lookLeft {
		c.readyToTurn = true
	}
	return true
}

func (c *Cube) moveDirBrute(dir Dir) {
	c.dir = dir
}

// Action names what the cube is doing, for renderers.
func (c *Cube) Action() string {
	switch {
	case c.IsDead():
		return "busy"
	case c.readyToTurn:
		return "turn"
	case c.falling:
		return "fall"
	case c.dir != DirNone:
		return "move"
	default:
		return "rest"
	}
}

// IsSatisfied reports whether the cube meets its part of the level goal.
// Units and goal items must be out, dead units never are.
func (c *Cube) IsSatisfied() bool {
	switch {
	case c.weight >= Fixed:
		return true
	case c.unit, c.goal:
		return c.out
	default:
		return true
	}
}

// takeField binds the cube to a field and writes its footprint.
func (c *Cube) takeField(f *Field, rules *Rules) error {
	for _, cell := range c.Cells() {
		if !f.InBounds(cell) {
			return fmt.Errorf("%w: %s", ErrOutside, c)
		}
		if f.Model(cell) != nil {
			return fmt.Errorf("%w: %s at %s", ErrOccupied, c, cell)
		}
	}
	c.field = f
	c.rules = rules
	c.index = f.register(c)
	c.onField = true
	c.mask()
	return nil
}
