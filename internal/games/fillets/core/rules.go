package core

import (
	"fmt"
	"strings"
)

// Rules holds the tunable constants of the simulation.
type Rules struct {
	// LivingFall makes living cubes obey gravity. Fish swim by default.
	LivingFall bool

	// FallDeathDistance is the number of cells a living cube may fall
	// before landing kills it. Zero disables death by falling.
	FallDeathDistance int

	// MaxSettlePasses bounds the gravity fixed-point loop of one round.
	// Zero derives a bound from the field height and the model count.
	MaxSettlePasses int
}

// DefaultRules returns the classic rules: fish swim and never fall.
func DefaultRules() Rules {
	return Rules{}
}

// Kind names a model type used by level construction.
type Kind string

const (
	KindLight     Kind = "light"
	KindHeavy     Kind = "heavy"
	KindWall      Kind = "wall"
	KindSmallFish Kind = "fish_small"
	KindBigFish   Kind = "fish_big"
	KindBorder    Kind = "border"
)

type kindSpec struct {
	weight Weight
	power  Weight
	alive  bool
}

// kinds is the closed rule table for every constructible model kind.
var kinds = map[Kind]kindSpec{
	KindLight:     {weight: Light, power: Light},
	KindHeavy:     {weight: Heavy, power: Heavy},
	KindWall:      {weight: Fixed, power: Fixed},
	KindSmallFish: {weight: Light, power: Light, alive: true},
	KindBigFish:   {weight: Light, power: Heavy, alive: true},
}

// ParseKind resolves a kind name, including the "item_*" aliases used by
// older level scripts.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light", "item_light":
		return KindLight, nil
	case "heavy", "item_heavy":
		return KindHeavy, nil
	case "wall", "item_fixed":
		return KindWall, nil
	case "fish_small", "small":
		return KindSmallFish, nil
	case "fish_big", "big":
		return KindBigFish, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// NewModel creates a cube of the given kind at loc.
func NewModel(kind Kind, loc Coord, shape Shape) (*Cube, error) {
	ks, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	c := NewCube(loc, ks.weight, ks.power, ks.alive, shape)
	c.kind = kind
	return c, nil
}

// pushChain collects every cube that has to move when c moves in dir,
// nearest first. It fails when any of them is a wall, a living cube, or
// heavier than power.
func (c *Cube) pushChain(dir Dir, power Weight) ([]*Cube, bool) {
	var chain []*Cube
	seen := map[int]bool{c.index: true}
	queue := []*Cube{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, cell := range cur.Cells() {
			m := c.field.Model(cell.Step(dir))
			if m == nil || m == cur || seen[m.index] {
				continue
			}
			if m.weight >= Fixed || m.alive || m.weight > power {
				return nil, false
			}
			seen[m.index] = true
			chain = append(chain, m)
			queue = append(queue, m)
		}
	}
	return chain, true
}

// neighbours returns the distinct cubes touching c from direction dir.
func (c *Cube) neighbours(dir Dir) []*Cube {
	var out []*Cube
	seen := map[int]bool{c.index: true}
	for _, cell := range c.Cells() {
		m := c.field.Model(cell.Step(dir))
		if m == nil || seen[m.index] {
			continue
		}
		seen[m.index] = true
		out = append(out, m)
	}
	return out
}

// isItem reports whether m is a movable lifeless object on the field.
func isItem(m *Cube) bool {
	return m != nil && !m.alive && m.weight < Fixed && m.onField
}

// canFall reports whether c can move down together with everything below
// it. visited cubes are assumed to be falling with it.
func (c *Cube) canFall(visited map[int]bool) bool {
	if c.weight >= Fixed || c.out || !c.onField {
		return false
	}
	if c.alive && !c.rules.LivingFall {
		return false
	}
	visited[c.index] = true
	for _, below := range c.neighbours(DirDown) {
		if visited[below.index] {
			continue
		}
		if !below.canFall(visited) {
			return false
		}
	}
	return true
}

// isOnWall reports whether c rests on a fixed cube or the border.
func (c *Cube) isOnWall() bool {
	for _, below := range c.neighbours(DirDown) {
		if below.weight >= Fixed {
			return true
		}
	}
	return false
}

// whoIsFalling reports whether an item resting on c, directly or through
// other items, committed a downward move this pass.
func (c *Cube) whoIsFalling(visited map[int]bool) bool {
	for _, up := range c.neighbours(DirUp) {
		if !isItem(up) || visited[up.index] {
			continue
		}
		visited[up.index] = true
		if up.dir == DirDown || up.whoIsFalling(visited) {
			return true
		}
	}
	return false
}

// isOnStrongFish reports whether c rests, directly or through other
// items, on a living cube other than weak whose power can hold weight.
func (c *Cube) isOnStrongFish(weight Weight, weak *Cube, visited map[int]bool) bool {
	for _, below := range c.neighbours(DirDown) {
		if below == weak || visited[below.index] {
			continue
		}
		visited[below.index] = true
		if below.alive && !below.out && below.power >= weight {
			return true
		}
		if isItem(below) && below.isOnStrongFish(weight, weak, visited) {
			return true
		}
	}
	return false
}

// isHeavier reports whether c, or anything it carries, is too heavy for
// weak. Items held by a wall, or shared with a fish strong enough for
// them, do not load what lies below them.
func (c *Cube) isHeavier(weak *Cube, visited map[int]bool) bool {
	if visited[c.index] {
		return false
	}
	visited[c.index] = true
	if c.isOnWall() {
		return false
	}
	if c.weight > weak.power && !c.isOnStrongFish(c.weight, weak, map[int]bool{c.index: true}) {
		return true
	}
	for _, up := range c.neighbours(DirUp) {
		if isItem(up) && up.isHeavier(weak, visited) {
			return true
		}
	}
	return false
}

func (c *Cube) checkDeadMove() bool {
	if c.lastDir == DirDown {
		return false
	}
	return c.whoIsFalling(map[int]bool{c.index: true})
}

func (c *Cube) checkDeadFall() bool {
	d := c.rules.FallDeathDistance
	if !c.rules.LivingFall || d <= 0 || c.fallen < d {
		return false
	}
	return !c.canFall(map[int]bool{})
}

func (c *Cube) checkDeadStress() bool {
	visited := map[int]bool{c.index: true}
	for _, up := range c.neighbours(DirUp) {
		if isItem(up) && up.isHeavier(c, visited) {
			return true
		}
	}
	return false
}
