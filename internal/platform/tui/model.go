package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hue-arcade/internal/audio"
	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/registry"
	"github.com/vovakirdan/hue-arcade/internal/storage"
)

// Services are the optional collaborators of a game session.
// Every field may be left zero.
type Services struct {
	Store      *storage.Store
	Sound      *audio.SoundManager // nil for silent sessions (SSH)
	Difficulty string              // Preset name recorded with each run
	Clock      core.Clock          // Defaults to a SystemClock
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	clock      *core.FrameClock
	held       *core.HeldKeys
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	runStart   time.Duration // Clock reading when the current run began
	pausedAt   time.Duration
	pausedFor  time.Duration // Total paused time in the current run
	won        bool
	scoreSaved bool // Whether the run has been saved for current game over
	best       int  // Stored high score for this game
	newBest    bool // The saved run beat best

	allowBack  bool // B returns to the menu instead of being a game key
	backToMenu bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The game must already be loaded.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if svc.Clock == nil {
		svc.Clock = core.NewSystemClock()
	}
	best := 0
	if svc.Store != nil {
		best, _ = svc.Store.HighScore(game.ID())
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		clock:      core.NewFrameClock(svc.Clock),
		held:       core.NewHeldKeys(cfg.HoldTimeout),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		best:       best,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.svc.Sound != nil {
		m.svc.Sound.PlayMusic()
	}

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Games simulate in world units, so only the view changes
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records a press edge and refreshes the held key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
	}

	k, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	m.held.Press(k, m.clock.Now())
	m.inputFrame.Press(k)
	return m, nil
}

// handleTick runs one simulation step with the input gathered since the last one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.clock.Next()
	m.inputFrame.Frame = frame

	held := m.held.Held(frame.Now)
	for _, k := range m.inputFrame.Pressed {
		if k != core.KeyOther {
			held.Press(k)
		}
	}
	m.inputFrame.Held = held

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.handleEvents(result.Events, frame.Now)

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun(frame.Now)
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// handleEvents tracks run timing and forwards events to the sound manager.
func (m *Model) handleEvents(events []core.Event, now time.Duration) {
	for _, ev := range events {
		switch ev {
		case core.EventPaused:
			m.pausedAt = now
		case core.EventResumed:
			m.pausedFor += now - m.pausedAt
		case core.EventRestarted:
			m.runStart = now
			m.pausedFor = 0
			m.won = false
			m.scoreSaved = false
			m.newBest = false
		case core.EventWon:
			m.won = true
		}

		if m.svc.Sound != nil {
			m.svc.Sound.HandleEvent(ev)
		}
	}
}

// saveRun records the finished run. Zero-score deaths are not recorded.
func (m *Model) saveRun(now time.Duration) {
	if m.svc.Store == nil || (m.gameState.Score <= 0 && !m.won) {
		return
	}

	_, err := m.svc.Store.SaveRun(storage.RunResult{
		GameID:     m.game.ID(),
		Score:      m.gameState.Score,
		Difficulty: m.svc.Difficulty,
		Duration:   now - m.runStart - m.pausedFor,
		Won:        m.won,
	})
	if err == nil && m.gameState.Score > m.best {
		m.best = m.gameState.Score
		m.newBest = true
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.newBest && m.gameState.GameOver {
		const tag = " NEW BEST! "
		m.screen.DrawTextColored(m.screen.Width()-len(tag)-1, 0, tag, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// NewBest reports whether the last saved run set a new high score.
func (m Model) NewBest() bool {
	return m.newBest
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run loads the game and starts the Bubble Tea program.
// A game whose Load fails is never started. The sound manager, if any,
// stays open for the caller to reuse or clean up.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	if err := game.Load(); err != nil {
		return fmt.Errorf("cannot start %s: %w", game.ID(), err)
	}

	model := NewModel(game, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	if svc.Sound != nil {
		svc.Sound.PauseMusic()
	}
	return err
}
