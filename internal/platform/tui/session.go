package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/registry"
	"github.com/vovakirdan/hue-arcade/internal/storage"
)

// SessionModel drives one remote client through menu, game and back.
// Remote sessions have no sound and no scoreboard screen.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger

	menu    MenuModel
	game    *Model // nil while in the menu
	notice  string // Shown under the menu, e.g. a failed game load
	leaving bool
}

// NewSessionModel creates a session that starts in the menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   logger,
		menu:     NewMenuModel(cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = size.Width
		m.config.ScreenH = size.Height
	}
	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.leaving = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.menu = NewMenuModel(m.config)
		m.notice = "High scores are only available in the local arcade."
		return m, nil
	}

	entry := m.menu.Selected()
	if entry == nil {
		return m, cmd
	}

	preset := m.menu.Preset()
	game, err := loadGame(entry.ID, preset)
	if err != nil {
		m.logger.Warn("game failed to load", "user", m.username, "game", entry.ID, "error", err)
		m.notice = "Could not start game: " + err.Error()
		m.menu = NewMenuModel(m.config)
		return m, nil
	}

	m.logger.Debug("game started", "user", m.username, "game", entry.ID, "difficulty", presetLabel(preset))
	m.config = m.menu.Config()
	gm := NewModel(game, Services{Store: m.store, Difficulty: string(preset)}, m.config)
	gm.allowBack = true
	m.game = &gm
	m.notice = ""
	return m, gm.Init()
}

// loadGame creates a game with the chosen preset and loads its config.
func loadGame(id string, preset config.DifficultyPreset) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if t, ok := game.(registry.Tunable); ok {
		t.SetDifficultyPreset(preset)
	}
	if err := game.Load(); err != nil {
		return nil, err
	}
	return game, nil
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm := next.(Model)
	m.game = &gm

	switch {
	case gm.IsQuitting():
		m.leaving = true
		return m, tea.Quit
	case gm.BackToMenu():
		m.game = nil
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	switch {
	case m.leaving:
		return ""
	case m.game != nil:
		return m.game.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.notice, m.config.ScreenW) + "\n"
	}
	return view
}
