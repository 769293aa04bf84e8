package levels_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
	"github.com/vovakirdan/tui-fillets/internal/registry"
)

func builtinLoader(t *testing.T) *levels.Loader {
	t.Helper()
	loader, err := levels.NewPackLoader(levels.BuiltinPack)
	if err != nil {
		t.Fatalf("NewPackLoader failed: %v", err)
	}
	return loader
}

func TestBuiltinRegistered(t *testing.T) {
	if !registry.Exists(levels.BuiltinPack) {
		t.Fatal("builtin pack not registered")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	lvls, err := builtinLoader(t).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(lvls) < 3 {
		t.Errorf("expected at least 3 levels, got %d", len(lvls))
	}

	// Should be sorted by ID
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}
}

func TestLoaderLoadFirstSwim(t *testing.T) {
	lvl, err := builtinLoader(t).LoadByID("01-first-swim")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "First Swim" {
		t.Errorf("expected Name 'First Swim', got %q", lvl.Name)
	}
	if lvl.Width != 6 || lvl.Height != 4 {
		t.Errorf("expected 6x4, got %dx%d", lvl.Width, lvl.Height)
	}
	if len(lvl.Models) != 6 {
		t.Errorf("expected 6 models, got %d", len(lvl.Models))
	}
	if len(lvl.Units) != 1 || lvl.Units[0].Model != 4 {
		t.Errorf("unexpected units %+v", lvl.Units)
	}
	if lvl.Solution() != "rrrr" {
		t.Errorf("solution = %q", lvl.Solution())
	}
}

func TestLoaderNotFound(t *testing.T) {
	if _, err := builtinLoader(t).LoadByID("99-missing"); err == nil {
		t.Error("expected error for missing level")
	}
}

// TestBuiltinSolutions replays every stored solution and expects the
// level to be complete once the last move settles.
func TestBuiltinSolutions(t *testing.T) {
	lvls, err := builtinLoader(t).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for _, lvl := range lvls {
		t.Run(lvl.ID, func(t *testing.T) {
			room, err := lvl.Build()
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if err := room.LoadMoves(lvl.Solution()); err != nil {
				t.Fatalf("LoadMoves failed: %v", err)
			}
			complete := room.IsComplete()
			for i := 0; i < 10 && !complete; i++ {
				complete, err = room.NextRound()
				if err != nil {
					t.Fatalf("NextRound failed: %v", err)
				}
			}
			if !complete {
				t.Errorf("solution %q does not complete the level:\n%s", lvl.Solution(), room.Field())
			}
		})
	}
}

func TestBuildRejectsOverlap(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": &fstest.MapFile{Data: []byte(`
id: bad
size: { w: 3, h: 3 }
models:
  - { kind: wall, x: 0, y: 0, shape: "XXX" }
  - { kind: light, x: 1, y: 0 }
`)},
	}
	lvl, err := levels.NewFSLoader(fsys).LoadFile("bad.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, err := lvl.Build(); !errors.Is(err, core.ErrOccupied) {
		t.Errorf("Build error = %v, want ErrOccupied", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"kind.yaml":  &fstest.MapFile{Data: []byte("id: k\nsize: {w: 2, h: 2}\nmodels:\n  - {kind: octopus, x: 0, y: 0}\n")},
		"shape.yaml": &fstest.MapFile{Data: []byte("id: s\nsize: {w: 2, h: 2}\nmodels:\n  - {kind: wall, x: 0, y: 0, shape: \"..\"}\n")},
		"size.yaml":  &fstest.MapFile{Data: []byte("id: z\nsize: {w: 0, h: 2}\n")},
		"unit.yaml":  &fstest.MapFile{Data: []byte("id: u\nsize: {w: 2, h: 2}\nunits:\n  - {model: 3}\n")},
		"good.yaml":  &fstest.MapFile{Data: []byte("id: g\nsize: {w: 2, h: 2}\n")},
		"notes.txt":  &fstest.MapFile{Data: []byte("ignored")},
	}
	loader := levels.NewFSLoader(fsys)

	for _, name := range []string{"kind.yaml", "shape.yaml", "size.yaml", "unit.yaml"} {
		if _, err := loader.LoadFile(name); err == nil {
			t.Errorf("LoadFile(%s) succeeded, want error", name)
		}
	}

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "g" {
		t.Errorf("ListIDs = %v, want [g]", ids)
	}
}

func TestLevelRules(t *testing.T) {
	fsys := fstest.MapFS{
		"fall.yaml": &fstest.MapFile{Data: []byte(`
id: fall
size: { w: 1, h: 4 }
rules: { living_fall: true, fall_death_distance: 2 }
models:
  - { kind: fish_small, x: 0, y: 0 }
units:
  - { model: 0 }
`)},
	}
	lvl, err := levels.NewFSLoader(fsys).LoadFile("fall.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	room, err := lvl.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := room.NextRound(); err != nil {
		t.Fatalf("NextRound failed: %v", err)
	}
	fish, _ := room.Model(0)
	if fish.IsAlive() || fish.Death() != core.DeathFall {
		t.Errorf("fish alive=%v death=%v, want fall death", fish.IsAlive(), fish.Death())
	}
}
