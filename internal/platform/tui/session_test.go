package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
	"github.com/vovakirdan/tui-fillets/internal/storage"
)

func builtinLevels(t *testing.T) []levels.Level {
	t.Helper()
	loader, err := levels.NewPackLoader(levels.BuiltinPack)
	if err != nil {
		t.Fatalf("NewPackLoader failed: %v", err)
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) == 0 {
		t.Fatal("builtin pack has no levels")
	}
	return lvls
}

func testFactory(lvl levels.Level) *fillets.Game {
	return fillets.New(lvl, fillets.WithMovePhases(0))
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = 80
	cfg.ScreenH = 24
	return cfg
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "solutions.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m tea.Model, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	lvls := builtinLevels(t)
	m := NewSessionModel(lvls, testFactory, Env{Theme: DefaultTheme()}, testConfig(), "tester")

	if !strings.Contains(m.View(), "F I S H   F I L L E T S") {
		t.Fatal("session should start on the level picker")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if m.game.game.ID() != lvls[0].ID {
		t.Errorf("started %s, want %s", m.game.game.ID(), lvls[0].ID)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.game != nil {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.quitting {
		t.Error("back should not quit the session")
	}
}

func TestSessionSolutionsBoard(t *testing.T) {
	lvls := builtinLevels(t)
	m := NewSessionModel(lvls, testFactory, Env{Store: openStore(t), Theme: DefaultTheme()}, testConfig(), "tester")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenSolutions {
		t.Fatalf("screen = %v, want solutions", m.screen)
	}
	if !strings.Contains(m.View(), "SOLUTIONS") {
		t.Error("solutions board should render its title")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(builtinLevels(t), testFactory, Env{}, testConfig(), "tester")

	m = update(t, m, runeKey("q"))
	if !m.quitting {
		t.Error("q should quit the session")
	}
	if m.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

func TestGameModelStoresSolution(t *testing.T) {
	store := openStore(t)
	replayDir := t.TempDir()
	env := Env{Store: store, ReplayDir: replayDir, Theme: DefaultTheme()}

	var lvl levels.Level
	for _, l := range builtinLevels(t) {
		if l.ID == "01-first-swim" {
			lvl = l
		}
	}
	if lvl.ID == "" {
		t.Fatal("level 01-first-swim not found")
	}

	var model tea.Model = NewGameModel(testFactory(lvl), env, testConfig())
	model.Init()

	for i := 0; i < 40 && !model.(GameModel).State().Won; i++ {
		if i < 4 {
			model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
		}
		model, _ = model.Update(TickMsg{})
	}
	// Extra ticks must not store the solution twice.
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(TickMsg{})

	if !model.(GameModel).State().Won {
		t.Fatal("level not solved")
	}

	solutions, err := store.Solutions(lvl.ID, 10)
	if err != nil {
		t.Fatalf("Solutions failed: %v", err)
	}
	if len(solutions) != 1 || solutions[0].Moves != "rrrr" {
		t.Fatalf("stored solutions = %+v, want one rrrr", solutions)
	}

	entries, err := os.ReadDir(replayDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("replay files = %d, want 1", len(entries))
	}
}

func TestMenuShowsSolvedLevels(t *testing.T) {
	lvls := builtinLevels(t)
	store := openStore(t)
	if _, err := store.SaveSolution(lvls[0].ID, "rrrr"); err != nil {
		t.Fatalf("SaveSolution failed: %v", err)
	}

	menu := NewMenuModel(lvls, Env{Store: store, Theme: DefaultTheme()}, testConfig())
	view := menu.View()

	if !strings.Contains(view, "✓ 4 moves") {
		t.Errorf("menu should mark the solved level:\n%s", view)
	}
	if !strings.Contains(view, "(1/") {
		t.Errorf("menu should count solved levels:\n%s", view)
	}
}
