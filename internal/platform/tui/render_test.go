package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-fillets/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "fish")
	s.DrawTextWithColor(5, 0, "wall", core.ColorGray)
	s.SetWithColor(0, 1, '@', core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"fish", "wall"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line %q should contain %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "@") {
		t.Errorf("unknown color should fall back to default, got %q", lines[1])
	}
}

func TestColorStylesFollowPalette(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorGray; c++ {
		style, ok := colorStyles[c]
		if !ok {
			t.Fatalf("color %d has no style", c)
		}
		if got := style.GetForeground(); got != lipgloss.Color(c.ANSI()) {
			t.Errorf("color %d foreground = %v, want %s", c, got, c.ANSI())
		}
	}
	if !colorStyles[core.ColorWhite].GetBold() {
		t.Error("white should render bold")
	}
}
