// Package fillets adapts the Fillets room engine to the platform: it maps
// input frames to moves, runs one round per tick and draws the room.
package fillets

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
)

// Game plays one level.
type Game struct {
	level    levels.Level
	room     *core.Room
	controls *core.KeyControls
	logger   *log.Logger

	rules     core.Rules
	phases    int
	cellW     int
	showHints bool

	screenW int
	screenH int

	tick     uint64
	paused   bool
	won      bool
	lost     bool
	message  string
	buildErr error
}

// Option configures a Game.
type Option func(*Game)

// WithRules overrides the level's rules.
func WithRules(apply func(core.Rules) core.Rules) Option {
	return func(g *Game) { g.rules = apply(g.rules) }
}

// WithMovePhases sets how many rounds input stays locked after a move.
func WithMovePhases(n int) Option {
	return func(g *Game) { g.phases = n }
}

// WithCellWidth sets the number of columns used per room cell.
func WithCellWidth(w int) Option {
	return func(g *Game) { g.cellW = w }
}

// WithHints toggles the controls hint line.
func WithHints(show bool) Option {
	return func(g *Game) { g.showHints = show }
}

// WithLogger sets the logger passed to the room.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New creates a game for a level.
func New(level levels.Level, opts ...Option) *Game {
	g := &Game{
		level:     level,
		rules:     level.Rules,
		phases:    1,
		cellW:     2,
		showHints: true,
		screenW:   80,
		screenH:   24,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cellW < 1 {
		g.cellW = 1
	}
	g.Restart()
	return g
}

// ID returns the game identifier used as the storage key.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.level.Name
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Room returns the current room, nil if the level failed to build.
func (g *Game) Room() *core.Room {
	return g.room
}

// Err returns the error that prevented the level from being built.
func (g *Game) Err() error {
	return g.buildErr
}

// Moves returns the accepted move log.
func (g *Game) Moves() string {
	if g.room == nil {
		return ""
	}
	return g.room.Moves()
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.Restart()
}

// Restart rebuilds the room from the level.
func (g *Game) Restart() {
	room, kc, err := g.build()
	g.tick = 0
	g.won = false
	g.lost = false
	g.paused = false
	g.message = ""
	g.buildErr = err
	g.room = room
	g.controls = kc
	if err != nil {
		g.logger.Error("level does not build", "level", g.level.ID, "err", err)
		g.message = err.Error()
	}
}

// Undo takes back the last move by replaying all earlier ones on a fresh
// room.
func (g *Game) Undo() {
	moves := g.Moves()
	if moves == "" {
		return
	}
	room, kc, err := g.build()
	if err == nil {
		err = room.LoadMoves(moves[:len(moves)-1])
	}
	if err != nil {
		g.logger.Warn("undo failed", "level", g.level.ID, "err", err)
		g.Restart()
		return
	}
	kc.SetPaused(g.paused)
	g.room = room
	g.controls = kc
	g.won = room.IsComplete()
	g.lost = g.anyDead()
	g.message = "Undo"
}

func (g *Game) build() (*core.Room, *core.KeyControls, error) {
	kc := core.NewKeyControls(g.phases)
	room, err := g.level.Build(
		core.WithRules(g.rules),
		core.WithControls(kc),
		core.WithNotifier(notifier{g}),
		core.WithLogger(g.logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return room, kc, nil
}

// Step advances the game by one tick: input is queued and one round runs.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	for _, a := range input.Actions() {
		switch a {
		case platformcore.ActionRestart:
			g.Restart()
			return platformcore.StepResult{State: g.State()}
		case platformcore.ActionUndo:
			g.Undo()
		case platformcore.ActionPause:
			g.paused = !g.paused
			if g.controls != nil {
				g.controls.SetPaused(g.paused)
			}
		}
	}

	if g.room == nil || g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if !g.State().GameOver() {
		g.queueInput(input)
	}

	complete, err := g.room.NextRound()
	if err != nil {
		g.logger.Error("round failed", "level", g.level.ID, "err", err)
		g.message = err.Error()
	}
	if complete && !g.won {
		g.won = true
		g.controls.Clear()
	}
	if !g.lost && g.anyDead() {
		g.lost = true
		g.controls.Clear()
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) queueInput(input platformcore.InputFrame) {
	for _, a := range input.Actions() {
		switch a {
		case platformcore.ActionUp:
			g.controls.Push(core.Input{Kind: core.InputMove, Dir: core.DirUp})
		case platformcore.ActionDown:
			g.controls.Push(core.Input{Kind: core.InputMove, Dir: core.DirDown})
		case platformcore.ActionLeft:
			g.controls.Push(core.Input{Kind: core.InputMove, Dir: core.DirLeft})
		case platformcore.ActionRight:
			g.controls.Push(core.Input{Kind: core.InputMove, Dir: core.DirRight})
		case platformcore.ActionSwitch:
			g.controls.Push(core.Input{Kind: core.InputSwitch})
		case platformcore.ActionWait:
			g.controls.Push(core.Input{Kind: core.InputWait})
		}
	}
}

func (g *Game) anyDead() bool {
	for _, m := range g.room.Models() {
		if m.IsDead() {
			return true
		}
	}
	return false
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Moves:   len(g.Moves()),
		Won:     g.won,
		Lost:    g.lost,
		Paused:  g.paused,
		Message: g.message,
		Active:  -1,
		LevelID: g.level.ID,
	}
	if g.controls != nil {
		st.Active = g.controls.Active()
	}
	if g.won {
		st.Solution = g.Moves()
	}
	return st
}

// notifier turns room events into status messages.
type notifier struct {
	g *Game
}

func (n notifier) Impact(w core.Weight) {
	switch w {
	case core.Heavy:
		n.g.message = "*CLANG*"
	case core.Light:
		n.g.message = "*tok*"
	}
}

func (n notifier) Died(model int, cause core.DeathCause) {
	n.g.message = fmt.Sprintf("Fish %d died (%s). Press U to undo.", model, cause)
	n.g.logger.Info("fish died", "level", n.g.level.ID, "model", model, "cause", cause)
}

func (n notifier) Out(model int) {
	n.g.message = fmt.Sprintf("Model %d swam out", model)
}

func (n notifier) Complete() {
	n.g.message = "Level solved!"
	n.g.logger.Info("level solved", "level", n.g.level.ID, "moves", n.g.Moves())
}

var _ platformcore.Game = (*Game)(nil)
