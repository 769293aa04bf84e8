package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Room owns the field and the models and runs the round state machine.
//
// Each pass has four phases applied to every model in index order:
// commit the pending move, check deaths, check exits, then apply deaths
// and clear the per-pass state. Gravity runs after the phases and, while
// anything falls, another pass follows.
type Room struct {
	field    *Field
	rules    Rules
	controls Controls
	notifier Notifier
	logger   *log.Logger

	units    []Unit
	moves    []byte
	fresh    bool
	complete bool
	notified bool
	loading  bool
	rounds   int
}

// Option configures a Room.
type Option func(*Room)

// WithRules overrides the default rules.
func WithRules(rules Rules) Option {
	return func(r *Room) { r.rules = rules }
}

// WithControls sets the input side. Controls that implement
// Bind(UnitBoard) are bound to the room.
func WithControls(c Controls) Option {
	return func(r *Room) { r.controls = c }
}

// WithNotifier sets the receiver of room events.
func WithNotifier(n Notifier) Option {
	return func(r *Room) { r.notifier = n }
}

// WithLogger sets the logger used for rejected moves and notifier failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Room) { r.logger = l }
}

// NewRoom creates an empty room of w x h cells.
func NewRoom(w, h int, opts ...Option) *Room {
	r := &Room{
		field: NewField(w, h),
		rules: DefaultRules(),
		fresh: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.controls == nil {
		r.controls = NewKeyControls(0)
	}
	if r.notifier == nil {
		r.notifier = NopNotifier{}
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if b, ok := r.controls.(interface{ Bind(UnitBoard) }); ok {
		b.Bind(r)
	}
	return r
}

// Field returns the occupancy grid.
func (r *Room) Field() *Field {
	return r.field
}

// Rules returns the active rules.
func (r *Room) Rules() Rules {
	return r.rules
}

// Controls returns the input side of the room.
func (r *Room) Controls() Controls {
	return r.controls
}

// AddModel places a detached cube on the field and returns its index.
func (r *Room) AddModel(c *Cube) (int, error) {
	if c == nil {
		return -1, fmt.Errorf("%w: nil model", ErrBadIndex)
	}
	if c.field != nil {
		return -1, fmt.Errorf("%w: %s is already placed", ErrOccupied, c)
	}
	if err := c.takeField(r.field, &r.rules); err != nil {
		return -1, err
	}
	return c.index, nil
}

// Place creates a model of the given kind at (x, y) and adds it.
// An empty mask places a single-cell model.
func (r *Room) Place(kind Kind, x, y int, mask string) (int, error) {
	shape := UnitShape()
	if strings.TrimSpace(mask) != "" {
		s, err := ParseShape(mask)
		if err != nil {
			return -1, err
		}
		shape = s
	}
	c, err := NewModel(kind, C(x, y), shape)
	if err != nil {
		return -1, err
	}
	return r.AddModel(c)
}

// SetExit marks a cell through which units and goal items leave.
func (r *Room) SetExit(x, y int) {
	r.field.SetExit(C(x, y))
}

// AddUnit makes a living model drivable by the given four symbols.
// An empty string picks "udlr" for small fish and "UDLR" for big ones.
func (r *Room) AddUnit(model int, symbols string) error {
	c, err := r.Model(model)
	if err != nil {
		return err
	}
	if !c.unit {
		return fmt.Errorf("%w: %s is not alive", ErrBadUnit, c)
	}
	if symbols == "" {
		symbols = "udlr"
		if c.power >= Heavy {
			symbols = "UDLR"
		}
	}
	syms, err := ParseSymbols(symbols)
	if err != nil {
		return err
	}
	for _, u := range r.units {
		if u.Model == model {
			return fmt.Errorf("%w: %s is already a unit", ErrBadUnit, c)
		}
		for _, s := range syms {
			if _, taken := u.DirOf(s); taken {
				return fmt.Errorf("%w: symbol %q already used", ErrBadUnit, s)
			}
		}
	}
	r.units = append(r.units, Unit{Model: model, Symbols: syms})
	r.controls.CheckActive()
	return nil
}

// Units returns the drivable units in registration order.
func (r *Room) Units() []Unit {
	out := make([]Unit, len(r.units))
	copy(out, r.units)
	return out
}

// Drivable reports whether model is a unit that can still move.
func (r *Room) Drivable(model int) bool {
	c, err := r.Model(model)
	if err != nil {
		return false
	}
	return c.unit && c.alive && !c.out && c.onField
}

// Model returns the model with the given index.
func (r *Room) Model(index int) (*Cube, error) {
	models := r.field.models
	if index < 0 || index >= len(models) {
		return nil, &IndexError{Index: index, Len: len(models)}
	}
	return models[index], nil
}

// Models returns all models in index order.
func (r *Room) Models() []*Cube {
	out := make([]*Cube, len(r.field.models))
	copy(out, r.field.models)
	return out
}

// AskField returns the occupant of loc, nil for an empty cell and the
// border for addresses outside the field.
func (r *Room) AskField(loc Coord) *Cube {
	return r.field.Model(loc)
}

// Moves returns the accepted move log.
func (r *Room) Moves() string {
	return string(r.moves)
}

// IsComplete reports whether the level goal has been met.
func (r *Room) IsComplete() bool {
	return r.complete
}

// IsFresh reports whether a pass has run since the last move, so a new
// move may be made.
func (r *Room) IsFresh() bool {
	return r.fresh
}

// Rounds returns the number of finished rounds.
func (r *Room) Rounds() int {
	return r.rounds
}

// NextRound advances the room by one round: gravity runs to its fixed
// point and, if nothing fell, one move is taken from the controls.
// It returns whether the level is complete.
func (r *Room) NextRound() (bool, error) {
	fell := false
	impact := NoWeight
	limit := r.settleLimit()
	for pass := 0; ; pass++ {
		if pass >= limit {
			return r.complete, fmt.Errorf("%w after %d passes", ErrUnsettled, pass)
		}
		falling, landed := r.beginFall()
		if landed > impact {
			impact = landed
		}
		if !falling {
			break
		}
		fell = true
		r.finishRound()
	}
	r.PlayImpact(impact)

	if !fell && r.controls.IsSceneActive() {
		if sym, ok := r.controls.ProduceMove(); ok {
			if _, err := r.MakeMove(sym, true); err != nil {
				r.logger.Debug("move rejected", "move", string(sym), "err", err)
			}
		}
	}
	r.finishRound()
	if fell {
		r.fresh = false
	}
	return r.complete, nil
}

// LoadMove replays one logged move without sound or animation.
// Pending falls are resolved first; a log that completes the room while
// something is still falling is rejected.
func (r *Room) LoadMove(sym byte) error {
	r.loading = true
	defer func() { r.loading = false }()

	limit := r.settleLimit()
	for pass := 0; ; pass++ {
		if pass >= limit {
			return &LoadError{Move: sym, Err: ErrUnsettled}
		}
		falling, _ := r.beginFall()
		if !falling {
			if _, err := r.MakeMove(sym, false); err != nil {
				return err
			}
		}
		r.finishRound()
		if r.complete && falling {
			return &LoadError{Move: sym, Err: ErrEarlyFinish}
		}
		if !falling {
			return nil
		}
	}
}

// LoadMoves replays a whole move log.
func (r *Room) LoadMoves(moves string) error {
	for i := 0; i < len(moves); i++ {
		if err := r.LoadMove(moves[i]); err != nil {
			return err
		}
	}
	return nil
}

// MakeMove applies one move symbol. It returns false without error when
// the room is not ready for a move yet. Accepted moves are appended to
// the move log.
func (r *Room) MakeMove(sym byte, animate bool) (bool, error) {
	if !r.fresh {
		return false, nil
	}
	if sym != SymbolWait {
		if err := r.driveUnit(sym); err != nil {
			return false, err
		}
	}
	if animate {
		r.controls.LockUntilPhasesComplete()
	}
	r.fresh = false
	r.moves = append(r.moves, sym)
	return true, nil
}

func (r *Room) driveUnit(sym byte) error {
	for _, u := range r.units {
		dir, ok := u.DirOf(sym)
		if !ok {
			continue
		}
		if !r.Drivable(u.Model) {
			return &LoadError{Move: sym, Err: fmt.Errorf("%w: unit %d cannot move", ErrBadMove, u.Model)}
		}
		r.controls.Activate(u.Model)
		if !r.field.models[u.Model].MoveDir(dir) {
			return &LoadError{Move: sym, Err: fmt.Errorf("%w: %s is blocked", ErrBadMove, dir)}
		}
		return nil
	}
	return &LoadError{Move: sym, Err: fmt.Errorf("%w: unknown symbol", ErrBadMove)}
}

// PlayImpact reports the heaviest landing of a round. NoWeight is silent.
func (r *Room) PlayImpact(w Weight) {
	if w == NoWeight || r.loading {
		return
	}
	r.notify("impact", func(n Notifier) { n.Impact(w) })
}

// beginFall runs one pass and reports whether anything is still falling
// together with the heaviest weight that landed.
func (r *Room) beginFall() (bool, Weight) {
	r.fresh = true
	r.prepareRound()
	falling, impact := r.falldown()
	if falling {
		r.fresh = false
	} else {
		for _, m := range r.field.models {
			m.lastDir = DirNone
		}
	}
	return falling, impact
}

func (r *Room) prepareRound() {
	models := r.field.models
	for _, m := range models {
		m.OccupyNewPos()
	}

	interrupt := false
	for _, m := range models {
		if m.CheckDead() {
			interrupt = true
		}
	}
	var out []int
	for _, m := range models {
		if m.CheckOut() {
			interrupt = true
			out = append(out, m.index)
		}
	}

	var died []int
	for _, m := range models {
		if m.PrepareRound() {
			died = append(died, m.index)
		}
	}
	if interrupt {
		r.controls.CheckActive()
	}
	for _, i := range died {
		cause := r.field.models[i].death
		r.logger.Debug("model died", "model", i, "cause", cause)
		r.notify("died", func(n Notifier) { n.Died(i, cause) })
	}
	for _, i := range out {
		r.logger.Debug("model out", "model", i)
		r.notify("out", func(n Notifier) { n.Out(i) })
	}
}

func (r *Room) falldown() (bool, Weight) {
	falling := false
	impact := NoWeight
	for _, m := range r.field.models {
		switch m.ActionFall() {
		case FallNow:
			falling = true
		case FallLast:
			if m.weight > impact {
				impact = m.weight
			}
		}
	}
	return falling, impact
}

func (r *Room) finishRound() {
	r.rounds++
	complete := true
	for _, m := range r.field.models {
		if !m.IsSatisfied() {
			complete = false
			break
		}
	}
	r.complete = complete
	if complete && !r.notified {
		r.notified = true
		r.notify("complete", func(n Notifier) { n.Complete() })
	}
}

func (r *Room) settleLimit() int {
	if r.rules.MaxSettlePasses > 0 {
		return r.rules.MaxSettlePasses
	}
	return (r.field.h + 2) * (len(r.field.models) + 1)
}

// notify delivers an event; a panicking notifier must not break the room.
func (r *Room) notify(event string, fn func(Notifier)) {
	if r.loading && event != "complete" {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("notifier failed", "event", event, "panic", rec)
		}
	}()
	fn(r.notifier)
}
