package fillets

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/core"
)

const hudHeight = 2

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.room == nil {
		g.renderOverlay(dst, "Level is broken", g.message)
		return
	}

	f := g.room.Field()
	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-2)
	if f.W()*g.cellW+2 > area.W || f.H()+2 > area.H {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	box := area.Centered(f.W()*g.cellW+2, f.H()+2)
	dst.DrawBox(box, platformcore.ColorGray)
	g.renderRoom(dst, box.X+1, box.Y+1)
	g.renderStatus(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "Level solved!", fmt.Sprintf("%d moves - R to play again", len(g.Moves())))
	case g.lost:
		g.renderOverlay(dst, "A fish is dead", "U to undo, R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	active := "-"
	if g.controls != nil && g.controls.Active() >= 0 {
		active = fmt.Sprintf("#%d", g.controls.Active())
	}
	hud := fmt.Sprintf(" Fillets | %s | Moves: %d | Fish: %s", g.level.Name, len(g.Moves()), active)
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

func (g *Game) renderStatus(dst *platformcore.Screen) {
	y := dst.Height() - 2
	if g.message != "" {
		dst.DrawTextWithColor(1, y, g.message, platformcore.ColorYellow)
	}
	if g.showHints {
		dst.DrawTextWithColor(1, y+1, "←↑↓→/WASD swim | Tab switch | U undo | R restart | P pause | Q quit", platformcore.ColorGray)
	}
}

// renderRoom draws exits first and models over them.
func (g *Game) renderRoom(dst *platformcore.Screen, ox, oy int) {
	f := g.room.Field()
	for y := 0; y < f.H(); y++ {
		for x := 0; x < f.W(); x++ {
			if f.IsExit(core.C(x, y)) {
				g.fillCell(dst, ox, oy, core.C(x, y), '·', platformcore.ColorGreen)
			}
		}
	}

	active := -1
	if g.controls != nil {
		active = g.controls.Active()
	}
	for _, m := range g.room.Models() {
		if !m.OnField() {
			continue
		}
		glyph, color := modelLook(m, m.Index() == active)
		for _, cell := range m.Cells() {
			if m.IsUnit() && m.IsAlive() {
				g.drawFish(dst, ox, oy, cell, m.LookLeft(), color)
				continue
			}
			g.fillCell(dst, ox, oy, cell, glyph, color)
		}
	}
}

func (g *Game) fillCell(dst *platformcore.Screen, ox, oy int, c core.Coord, r rune, color platformcore.Color) {
	for i := 0; i < g.cellW; i++ {
		dst.SetWithColor(ox+c.X*g.cellW+i, oy+c.Y, r, color)
	}
}

func (g *Game) drawFish(dst *platformcore.Screen, ox, oy int, c core.Coord, lookLeft bool, color platformcore.Color) {
	head, tail := '<', '='
	if !lookLeft {
		head, tail = '>', '='
	}
	x := ox + c.X*g.cellW
	for i := 0; i < g.cellW; i++ {
		r := tail
		if (lookLeft && i == 0) || (!lookLeft && i == g.cellW-1) {
			r = head
		}
		dst.SetWithColor(x+i, oy+c.Y, r, color)
	}
}

// modelLook returns the glyph and color of a model.
func modelLook(m *core.Cube, active bool) (rune, platformcore.Color) {
	switch {
	case m.IsDead():
		return 'x', platformcore.ColorGray
	case m.IsUnit():
		if active {
			return '<', platformcore.ColorWhite
		}
		if m.Power() >= core.Heavy {
			return '<', platformcore.ColorCyan
		}
		return '<', platformcore.ColorOrange
	case m.IsWall():
		return '█', platformcore.ColorGray
	case m.IsGoal():
		return '▒', platformcore.ColorMagenta
	case m.Weight() >= core.Heavy:
		return '▓', platformcore.ColorBlue
	default:
		return '▒', platformcore.ColorYellow
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, title, subtitle string) {
	w := platformcore.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	w = platformcore.Min(w, dst.Width())
	box := dst.Bounds().Centered(w, 4)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextWithColor(box.X+2, box.Y+1, title, platformcore.ColorWhite)
	dst.DrawTextWithColor(box.X+2, box.Y+2, subtitle, platformcore.ColorGray)
}
