package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hue-arcade/internal/catalog"
	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
)

// presets is the cycle order of the menu's difficulty selector.
// The empty preset plays the config as loaded.
var presets = append([]config.DifficultyPreset{""}, config.Presets...)

// presetLabel returns the display name of a preset.
func presetLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "default"
	}
	return string(p)
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	entries        []catalog.Entry // Every playable game
	items          []catalog.Entry // Entries matching the search
	search         textinput.Model
	cursor         int
	preset         int // Index into presets
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *catalog.Entry // Set when user selects a game
	openScoreboard bool           // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing the registered games.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/ "
	ti.CharLimit = 32
	ti.Width = 24

	entries := catalog.FromRegistry()
	return MenuModel{
		entries:   entries,
		items:     entries,
		search:    ti,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
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
		if m.search.Focused() {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleSearchKey edits the search term. Up/Down still move the cursor.
func (m MenuModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.search.Reset()
		m.search.Blur()
		m.applyFilter()
		return m, nil
	case "enter":
		m.search.Blur()
		return m, nil
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "a", "h":
		m.preset = (m.preset + len(presets) - 1) % len(presets)
		return m, nil
	case "right", "d", "l":
		m.preset = (m.preset + 1) % len(presets)
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard

	case MenuActionSearch:
		return m, m.search.Focus()

	case MenuActionBack:
		if m.search.Value() != "" {
			m.search.Reset()
			m.applyFilter()
		}
	}

	return m, nil
}

func (m *MenuModel) moveCursor(d int) {
	m.cursor = core.Clamp(m.cursor+d, 0, core.Max(len(m.items)-1, 0))
}

// applyFilter narrows the list to the current search term.
func (m *MenuModel) applyFilter() {
	m.items = catalog.Filter(m.entries, m.search.Value())
	m.moveCursor(0)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  H U E   A R C A D E  "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.search.View(), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No games match your search", m.width))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Name, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("< Difficulty: %s >", presetLabel(m.Preset())), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  /: Search  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected game, or nil if none selected.
func (m MenuModel) Selected() *catalog.Entry {
	return m.selected
}

// Preset returns the difficulty preset chosen in the menu.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presets[m.preset]
}

// Items returns the entries currently listed.
func (m MenuModel) Items() []catalog.Entry {
	return m.items
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
		Preset: m.Preset(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().ID
	} else {
		result.Quit = true
	}

	return result, nil
}
