package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
)

// menuChrome is the number of rows used by the title and the footer.
const menuChrome = 10

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels        []levels.Level
	best          map[string]int // Level ID -> shortest stored solution
	cursor        int
	scrollOffset  int
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	theme         Theme
	quitting      bool
	selected      *levels.Level
	openSolutions bool
}

// NewMenuModel creates a level picker. Solved marks are read from the
// store when one is given.
func NewMenuModel(lvls []levels.Level, env Env, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		levels:    lvls,
		best:      make(map[string]int),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     env.Theme,
	}
	m.loadProgress(env)
	return m
}

// loadProgress reads the shortest solution of every solved level.
func (m *MenuModel) loadProgress(env Env) {
	if env.Store == nil {
		return
	}
	stats, err := env.Store.SolvedLevels()
	if err != nil {
		env.logger().Warn("could not read solved levels", "err", err)
		return
	}
	for _, st := range stats {
		m.best[st.LevelID] = st.BestMoves
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.levels) > 0 {
			selected := m.levels[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionSolutions:
		m.openSolutions = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) visibleItems() int {
	return core.Max(m.height-menuChrome, 3)
}

// updateScroll keeps the cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("F I S H   F I L L E T S"), m.width))
	b.WriteString("\n\n")

	solved := 0
	for _, lvl := range m.levels {
		if _, ok := m.best[lvl.ID]; ok {
			solved++
		}
	}
	subtitle := fmt.Sprintf("Select a level (%d/%d solved)", solved, len(m.levels))
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	if len(m.levels) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(m.scrollOffset+m.visibleItems(), len(m.levels))
	for i := m.scrollOffset; i < end; i++ {
		lvl := m.levels[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := style.Render(fmt.Sprintf("%s%2d. %s", cursor, i+1, lvl.Name))
		if best, ok := m.best[lvl.ID]; ok {
			line += m.theme.MenuItemSolved.Render(fmt.Sprintf("  ✓ %d moves", best))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.levels) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Solutions  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsSolutions returns true if user requested the solutions board.
func (m MenuModel) WantsSolutions() bool {
	return m.openSolutions
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
