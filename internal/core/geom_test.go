package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 12, 12, true},
		{"top-left corner", 10, 10, true},
		{"right edge excluded", 15, 12, false},
		{"bottom edge excluded", 12, 15, false},
		{"left of rect", 9, 12, false},
		{"above rect", 12, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if result := r.Contains(tc.x, tc.y); result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	c := r.Centered(10, 5)
	if c != NewRect(10, 15, 10, 5) {
		t.Errorf("Centered(10, 5) = %+v", c)
	}
}

func TestGameOver(t *testing.T) {
	tests := []struct {
		state GameState
		want  bool
	}{
		{GameState{}, false},
		{GameState{Paused: true}, false},
		{GameState{Won: true}, true},
		{GameState{Lost: true}, true},
	}

	for _, tc := range tests {
		if got := tc.state.GameOver(); got != tc.want {
			t.Errorf("%+v.GameOver() = %v, expected %v", tc.state, got, tc.want)
		}
	}
}

func TestColorANSI(t *testing.T) {
	if ColorDefault.ANSI() != "" {
		t.Error("default color should keep the terminal color")
	}
	seen := make(map[string]Color)
	for c := ColorRed; c <= ColorGray; c++ {
		code := c.ANSI()
		if code == "" {
			t.Errorf("color %d has no code", c)
		}
		if prev, ok := seen[code]; ok {
			t.Errorf("colors %d and %d share code %s", prev, c, code)
		}
		seen[code] = c
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)
	f.Set(ActionNone)
	f.Set(ActionSwitch)
	f.Set(ActionRight)

	got := f.Actions()
	want := []Action{ActionRight, ActionSwitch, ActionRight}
	if len(got) != len(want) {
		t.Fatalf("Actions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !f.Has(ActionSwitch) || f.Has(ActionUndo) {
		t.Error("Has reports wrong actions")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() || clone.Empty() {
		t.Error("Clear must not affect clones")
	}
}
