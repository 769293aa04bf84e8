package fillets

import (
	"strings"
	"testing"
	"testing/fstest"

	platformcore "github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
)

func loadLevel(t *testing.T, id string) levels.Level {
	t.Helper()
	loader, err := levels.NewPackLoader(levels.BuiltinPack)
	if err != nil {
		t.Fatalf("NewPackLoader failed: %v", err)
	}
	lvl, err := loader.LoadByID(id)
	if err != nil {
		t.Fatalf("LoadByID(%s) failed: %v", id, err)
	}
	return lvl
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameSolvesFirstLevel(t *testing.T) {
	g := New(loadLevel(t, "01-first-swim"), WithMovePhases(0))

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionRight))
	var st platformcore.GameState
	for i := 0; i < 20 && !st.Won; i++ {
		st = g.Step(frame()).State
	}

	if !st.Won {
		t.Fatalf("level not solved, moves %q", g.Moves())
	}
	if st.Solution != "rrrr" || st.Moves != 4 {
		t.Errorf("solution = %q (%d moves), want rrrr", st.Solution, st.Moves)
	}
	if st.Message != "Level solved!" {
		t.Errorf("message = %q", st.Message)
	}
}

func TestGameIgnoresMovesAfterWin(t *testing.T) {
	g := New(loadLevel(t, "01-first-swim"), WithMovePhases(0))
	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionRight, platformcore.ActionRight))
	for i := 0; i < 20 && !g.State().Won; i++ {
		g.Step(frame())
	}

	g.Step(frame(platformcore.ActionLeft))
	g.Step(frame())
	if g.Moves() != "rrrr" {
		t.Errorf("moves after win = %q", g.Moves())
	}
}

func TestGameUndo(t *testing.T) {
	g := New(loadLevel(t, "01-first-swim"), WithMovePhases(0))

	g.Step(frame(platformcore.ActionRight, platformcore.ActionRight))
	for i := 0; i < 10 && len(g.Moves()) < 2; i++ {
		g.Step(frame())
	}
	if g.Moves() != "rr" {
		t.Fatalf("moves = %q, want rr", g.Moves())
	}

	g.Step(frame(platformcore.ActionUndo))
	if g.Moves() != "r" {
		t.Errorf("moves after undo = %q, want r", g.Moves())
	}
	for i := 0; i < 3; i++ {
		g.Step(frame())
	}
	fish, err := g.Room().Model(4)
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if fish.Location() != core.C(2, 1) {
		t.Errorf("fish at %v after undo, want (2,1)", fish.Location())
	}
}

func TestGameRestart(t *testing.T) {
	g := New(loadLevel(t, "01-first-swim"), WithMovePhases(0))
	g.Step(frame(platformcore.ActionRight))
	for i := 0; i < 5; i++ {
		g.Step(frame())
	}

	st := g.Step(frame(platformcore.ActionRestart)).State
	if st.Moves != 0 || g.Moves() != "" {
		t.Errorf("moves after restart = %q", g.Moves())
	}
}

func TestGamePause(t *testing.T) {
	g := New(loadLevel(t, "01-first-swim"), WithMovePhases(0))

	st := g.Step(frame(platformcore.ActionPause, platformcore.ActionRight)).State
	if !st.Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 5; i++ {
		g.Step(frame(platformcore.ActionRight))
	}
	if g.Moves() != "" {
		t.Errorf("paused game accepted moves %q", g.Moves())
	}

	g.Step(frame(platformcore.ActionPause, platformcore.ActionRight))
	for i := 0; i < 5; i++ {
		g.Step(frame())
	}
	if g.Moves() == "" {
		t.Error("resumed game should accept moves")
	}
}

func TestGameLostWhenFishDies(t *testing.T) {
	fsys := fstest.MapFS{"crush.yaml": &fstest.MapFile{Data: []byte(`
id: crush
size: { w: 3, h: 3 }
models:
  - { kind: fish_small, x: 1, y: 2 }
  - { kind: heavy, x: 1, y: 1 }
units:
  - { model: 0 }
`)}}
	lvl, err := levels.NewFSLoader(fsys).LoadFile("crush.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	g := New(lvl)
	st := g.Step(frame()).State
	if !st.Lost || st.Won {
		t.Errorf("state = %+v, want lost", st)
	}
	if !strings.Contains(st.Message, "stress") {
		t.Errorf("message = %q", st.Message)
	}
}

func TestGameBrokenLevel(t *testing.T) {
	fsys := fstest.MapFS{"broken.yaml": &fstest.MapFile{Data: []byte(`
id: broken
size: { w: 2, h: 1 }
models:
  - { kind: wall, x: 0, y: 0, shape: "XX" }
  - { kind: light, x: 1, y: 0 }
`)}}
	lvl, err := levels.NewFSLoader(fsys).LoadFile("broken.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	g := New(lvl)
	if g.Err() == nil || g.Room() != nil {
		t.Fatal("expected build error")
	}
	g.Step(frame(platformcore.ActionRight))

	screen := platformcore.NewScreen(60, 12)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level is broken") {
		t.Errorf("render:\n%s", screen.String())
	}
}

func TestGameRender(t *testing.T) {
	g := New(loadLevel(t, "01-first-swim"))
	screen := platformcore.NewScreen(60, 14)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Fillets", "First Swim", "█", "<"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	small := platformcore.NewScreen(20, 6)
	g.Render(small)
	if !strings.Contains(small.String(), "Window") {
		t.Errorf("expected too-small overlay:\n%s", small.String())
	}
}

func TestGameRulesOverride(t *testing.T) {
	living := func(r core.Rules) core.Rules {
		r.LivingFall = true
		return r
	}
	g := New(loadLevel(t, "01-first-swim"), WithRules(living))
	if !g.Room().Rules().LivingFall {
		t.Error("rules override not applied")
	}
}
