package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
)

func TestFieldBorder(t *testing.T) {
	f := core.NewField(3, 2)

	outside := []core.Coord{core.C(-1, 0), core.C(3, 0), core.C(0, -1), core.C(0, 2), core.C(-5, 9)}
	for _, c := range outside {
		m := f.Model(c)
		if m == nil {
			t.Fatalf("Model(%v) = nil, want border", c)
		}
		if m != f.Border() {
			t.Errorf("Model(%v) is not the border", c)
		}
		if m.Weight() != core.Fixed {
			t.Errorf("border weight = %v, want fixed", m.Weight())
		}
	}

	if m := f.Model(core.C(1, 1)); m != nil {
		t.Errorf("empty cell occupied by %v", m)
	}
}

func TestFieldSetModelOutsideIgnored(t *testing.T) {
	r := core.NewRoom(2, 2)
	idx, err := r.Place(core.KindLight, 0, 1, "")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	m, _ := r.Model(idx)

	f := r.Field()
	f.SetModel(core.C(5, 5), m)
	f.SetModel(core.C(-1, 0), m)

	if f.String() != ". .\n0 ." {
		t.Errorf("unexpected field:\n%s", f.String())
	}
}

func TestFieldString(t *testing.T) {
	r := core.NewRoom(3, 2)
	if _, err := r.Place(core.KindWall, 0, 1, "XXX"); err != nil {
		t.Fatalf("Place wall failed: %v", err)
	}
	if _, err := r.Place(core.KindLight, 1, 0, ""); err != nil {
		t.Fatalf("Place light failed: %v", err)
	}

	want := ". 1 .\n0 0 0"
	if got := r.Field().String(); got != want {
		t.Errorf("field = %q, want %q", got, want)
	}
}

func TestFieldExits(t *testing.T) {
	f := core.NewField(2, 2)
	f.SetExit(core.C(1, 0))
	f.SetExit(core.C(7, 7))

	if !f.IsExit(core.C(1, 0)) {
		t.Error("expected (1,0) to be an exit")
	}
	if f.IsExit(core.C(0, 0)) {
		t.Error("(0,0) should not be an exit")
	}
	if f.IsExit(core.C(7, 7)) {
		t.Error("outside cell should not be an exit")
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name   string
		mask   string
		size   int
		w, h   int
		render string
	}{
		{"single", "X", 1, 1, 1, "X"},
		{"row", "XXX", 3, 3, 1, "XXX"},
		{"table", "\nXXX\n.X.\n.X.\n", 5, 3, 3, "XXX\n.X.\n.X."},
		{"hook", "X..\nXXX", 4, 3, 2, "X..\nXXX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := core.ParseShape(tt.mask)
			if err != nil {
				t.Fatalf("ParseShape failed: %v", err)
			}
			if s.Size() != tt.size {
				t.Errorf("size = %d, want %d", s.Size(), tt.size)
			}
			if s.Width() != tt.w || s.Height() != tt.h {
				t.Errorf("bounds = %dx%d, want %dx%d", s.Width(), s.Height(), tt.w, tt.h)
			}
			if s.String() != tt.render {
				t.Errorf("render = %q, want %q", s.String(), tt.render)
			}
		})
	}
}

func TestParseShapeEmpty(t *testing.T) {
	for _, mask := range []string{"", "...", "\n\n"} {
		if _, err := core.ParseShape(mask); !errors.Is(err, core.ErrEmptyShape) {
			t.Errorf("ParseShape(%q) error = %v, want ErrEmptyShape", mask, err)
		}
	}
}

func TestAddModelErrors(t *testing.T) {
	r := core.NewRoom(3, 3)
	if _, err := r.Place(core.KindHeavy, 0, 0, "XX"); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if _, err := r.Place(core.KindLight, 1, 0, ""); !errors.Is(err, core.ErrOccupied) {
		t.Errorf("overlapping place error = %v, want ErrOccupied", err)
	}
	if _, err := r.Place(core.KindLight, 2, 2, "XX"); !errors.Is(err, core.ErrOutside) {
		t.Errorf("outside place error = %v, want ErrOutside", err)
	}
	if _, err := r.Place(core.Kind("anvil"), 1, 1, ""); !errors.Is(err, core.ErrUnknownKind) {
		t.Errorf("unknown kind error = %v, want ErrUnknownKind", err)
	}
	if len(r.Models()) != 1 {
		t.Errorf("failed places must not register models, got %d", len(r.Models()))
	}
}

func TestModelBadIndex(t *testing.T) {
	r := core.NewRoom(2, 2)
	_, _ = r.Place(core.KindLight, 0, 0, "")

	for _, idx := range []int{-1, 1, 42} {
		_, err := r.Model(idx)
		if !errors.Is(err, core.ErrBadIndex) {
			t.Fatalf("Model(%d) error = %v, want ErrBadIndex", idx, err)
		}
		var ie *core.IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("Model(%d) error is not an IndexError", idx)
		}
		if ie.Index != idx || ie.Len != 1 {
			t.Errorf("IndexError = %+v", ie)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]core.Kind{
		"light":      core.KindLight,
		"item_light": core.KindLight,
		"HEAVY":      core.KindHeavy,
		"item_fixed": core.KindWall,
		"wall":       core.KindWall,
		"fish_small": core.KindSmallFish,
		"fish_big":   core.KindBigFish,
	}
	for name, want := range tests {
		got, err := core.ParseKind(name)
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %q, want %q", name, got, want)
		}
	}
	if _, err := core.ParseKind("octopus"); !errors.Is(err, core.ErrUnknownKind) {
		t.Errorf("ParseKind(octopus) error = %v", err)
	}
}
