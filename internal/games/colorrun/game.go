// Package colorrun implements Color Run: the player moves up and down, switches
// through a growing color palette and must wear the color of every block it
// touches. Camping at the top or bottom edge summons a full-width boss.
package colorrun

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar   = '▶'
	PlayerFill   = '█'
	BlockChar    = '█'
	BossChar     = '▓'
	BorderChar   = '─'
	CooldownFull = '■'
	CooldownIdle = '□'
)

// Game adapts the Engine to the arcade platform.
type Game struct {
	configPath string
	preset     config.DifficultyPreset
	cfg        config.RunnerConfig

	engine  *Engine
	runtime core.RuntimeConfig
	now     time.Duration // Clock reading of the latest tick, for the HUD
}

// New creates a new Color Run game instance using the default configuration.
func New() *Game {
	return &Game{cfg: config.DefaultRunnerConfig()}
}

// SetConfigPath sets a config file that Load must read instead of the search path.
func (g *Game) SetConfigPath(path string) {
	g.configPath = path
}

// SetDifficultyPreset sets the preset applied on Load.
func (g *Game) SetDifficultyPreset(p config.DifficultyPreset) {
	g.preset = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "colorrun"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Color Run"
}

// Load reads and validates the configuration. The game must not be started
// if Load fails.
func (g *Game) Load() error {
	cfg, err := config.LoadRunner(g.configPath)
	if err != nil {
		return err
	}
	config.ApplyRunnerPreset(&cfg, g.preset)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("colorrun: preset %q: %w", g.preset, err)
	}
	g.cfg = cfg
	return nil
}

// Reset starts a new session. The simulation runs in playfield units, so the
// screen size only affects rendering.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	engine, err := NewEngine(g.cfg, cfg.Seed)
	if err != nil {
		// Only reachable when Reset is called without a successful Load.
		engine, _ = NewEngine(config.DefaultRunnerConfig(), cfg.Seed)
	}
	g.engine = engine
	g.now = 0
}

// Step applies key press edges, then advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.now = in.Frame.Now

	var events []core.Event
	for _, k := range in.Pressed {
		events = append(events, g.engine.KeyDown(k, in.Frame.Now)...)
	}
	events = append(events, g.engine.Step(in.Frame, in.Held)...)

	return core.StepResult{State: g.State(), Events: events}
}

// Snapshot returns a copy of the engine state.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.engine.Phase()
	return core.GameState{
		Score:    g.engine.DisplayScore(),
		GameOver: phase == Dead,
		Paused:   phase == Paused,
	}
}

// Render draws the current game state to the screen.
// Row 0 is the HUD, the last row is the palette bar, everything between is playfield.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()

	v := newViewport(dst, snap.Width, snap.Height)
	if v.rows <= 0 || v.cols <= 0 {
		return
	}

	dst.DrawHLine(0, v.top-1, dst.Width(), BorderChar)
	dst.DrawHLine(0, v.top+v.rows, dst.Width(), BorderChar)

	for _, o := range snap.Obstacles {
		g.drawObstacle(dst, v, snap, o)
	}
	g.drawPlayer(dst, v, snap)
	g.drawHUD(dst, snap)
	g.drawPalette(dst, snap)

	switch snap.Phase {
	case Paused:
		dst.DrawMessageBox("PAUSED", "Press any key to continue")
	case Dead:
		sub := "Press any key to play again"
		if g.now <= snap.RestartReadyAt {
			sub = "Wait..."
		}
		dst.DrawMessageBox("YOU DIED", fmt.Sprintf("Your score was %d!  %s", snap.Display, sub))
	}
}

// viewport maps playfield units to screen cells.
type viewport struct {
	top, rows, cols int
	sx, sy          float64
}

func newViewport(dst *core.Screen, width, height float64) viewport {
	v := viewport{top: 2, rows: dst.Height() - 4, cols: dst.Width()}
	if v.rows > 0 && v.cols > 0 {
		v.sx = float64(v.cols) / width
		v.sy = float64(v.rows) / height
	}
	return v
}

// cells converts a playfield rectangle to a screen rectangle covering it.
func (v viewport) cells(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X * v.sx))
	x1 := int(math.Ceil(r.Right() * v.sx))
	y0 := int(math.Floor(r.Y * v.sy))
	y1 := int(math.Ceil(r.Bottom() * v.sy))

	x0 = core.Clamp(x0, 0, v.cols)
	x1 = core.Clamp(x1, 0, v.cols)
	y0 = core.Clamp(y0, 0, v.rows)
	y1 = core.Clamp(y1, 0, v.rows)
	return core.NewRect(x0, y0+v.top, x1-x0, y1-y0)
}

func (g *Game) drawObstacle(dst *core.Screen, v viewport, snap Snapshot, o Obstacle) {
	r := v.cells(o.Rect())
	if r.W <= 0 || r.H <= 0 {
		return
	}

	if o.IsBoss() {
		dst.DrawRectColored(r, BossChar, core.ColorBrightMagenta)
		if o.Text != "" {
			tx := r.X + (r.W-len(o.Text))/2
			dst.DrawTextColored(tx, r.Y+r.H/2, o.Text, core.ColorBrightWhite)
		}
		return
	}

	color := core.ColorGray
	if o.ColorIndex >= 0 && o.ColorIndex < len(snap.Palette) {
		color = snap.Palette[o.ColorIndex].Color
	}
	dst.DrawRectColored(r, BlockChar, color)
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport, snap Snapshot) {
	r := v.cells(snap.Player.Rect())
	color := snap.PlayerSwatch().Color
	dst.DrawRectColored(r, PlayerFill, color)
	dst.SetColored(r.Right()-1, r.Y+r.H/2, PlayerChar, color)
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Score: %d ", snap.Display)
	if snap.Phase == Paused {
		hud += "- Paused "
	}
	dst.DrawText(1, 0, hud)
}

// drawPalette draws the unlocked colors with the active one bracketed, plus
// the color cooldown meter.
func (g *Game) drawPalette(dst *core.Screen, snap Snapshot) {
	y := dst.Height() - 1
	x := 1
	for i, sw := range snap.Palette {
		label := fmt.Sprintf(" %d:%s ", i+1, sw.Label)
		if i == snap.Player.ColorIndex {
			label = fmt.Sprintf("[%d:%s]", i+1, sw.Label)
		}
		dst.DrawTextColored(x, y, label, sw.Color)
		x += len(label) + 1
	}

	const meterWidth = 8
	filled := int(math.Round(snap.CooldownProgress(g.now) * meterWidth))
	meter := strings.Repeat(string(CooldownFull), filled) + strings.Repeat(string(CooldownIdle), meterWidth-filled)
	dst.DrawText(x+1, y, meter)
}

// Register the game with the registry
func init() {
	registry.Register("colorrun", func() registry.Game {
		return New()
	})
}
