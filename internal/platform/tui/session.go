package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fillets/internal/core"
	"github.com/vovakirdan/tui-fillets/internal/games/fillets/levels"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenSolutions
)

// SessionModel manages the full session flow: menu -> game or solutions -> menu.
// It is the top-level model for local play and SSH sessions.
type SessionModel struct {
	levels    []levels.Level
	factory   GameFactory
	env       Env
	config    core.RuntimeConfig
	username  string
	screen    sessionScreen
	menu      MenuModel
	game      *GameModel
	solutions *SolutionsModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(lvls []levels.Level, factory GameFactory, env Env, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		levels:   lvls,
		factory:  factory,
		env:      env,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(lvls, env, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenSolutions:
		return m.updateSolutions(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config = m.menu.Config()
		m.env.logger().Info("level started", "user", m.username, "level", selected.ID)

		gameModel := NewGameModel(m.factory(*selected), m.env, m.config)
		m.game = &gameModel
		m.screen = screenGame
		return m, m.game.Init()
	}

	if m.menu.WantsSolutions() {
		board := NewSolutionsModel(m.levels, m.env, m.config.ScreenW, m.config.ScreenH)
		m.solutions = &board
		m.screen = screenSolutions
		return m, m.solutions.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateSolutions handles updates when the solutions board is open.
func (m SessionModel) updateSolutions(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.solutions.Update(msg)
	if board, ok := newModel.(SolutionsModel); ok {
		m.solutions = &board
	}

	if m.solutions.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.solutions.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so solved marks are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.solutions = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.levels, m.env, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.screen == screenGame && m.game != nil:
		return m.game.View()
	case m.screen == screenSolutions && m.solutions != nil:
		return m.solutions.View()
	}
	return m.menu.View()
}

// RunSession runs the level picker and the levels it starts until the
// user quits.
func RunSession(lvls []levels.Level, factory GameFactory, env Env, cfg core.RuntimeConfig) error {
	model := NewSessionModel(lvls, factory, env, cfg, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
