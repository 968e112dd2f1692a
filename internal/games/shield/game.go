// Package shield implements Shield: arrows fly at the player from the arena
// edges allowed by the current level, and the player turns a shield to block
// them. Unblocked arrows cost HP; clearing every level wins the run.
package shield

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/registry"
)

// Visual characters for rendering
const (
	CoreChar        = '●'
	ShieldHorizChar = '━'
	ShieldVertChar  = '┃'
	BorderChar      = '·'
)

// Game adapts the Shield engine to the arcade platform.
type Game struct {
	configPath string
	levelsPath string
	preset     config.DifficultyPreset
	cfg        config.ShieldConfig
	levels     []Level

	engine *Engine
}

// New creates a new Shield game instance using the default configuration.
func New() *Game {
	cfg := config.DefaultShieldConfig()
	levels, _ := ParseLevels(cfg.Levels)
	return &Game{cfg: cfg, levels: levels}
}

// SetConfigPath sets a config file that Load must read instead of the search path.
func (g *Game) SetConfigPath(path string) {
	g.configPath = path
}

// SetLevelsPath sets a level list file (YAML or levels.json) that replaces
// the configured levels.
func (g *Game) SetLevelsPath(path string) {
	g.levelsPath = path
}

// SetDifficultyPreset sets the preset applied on Load.
func (g *Game) SetDifficultyPreset(p config.DifficultyPreset) {
	g.preset = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "shield"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Shield"
}

// Load reads the configuration and level list. Any failure leaves the game
// unstartable.
func (g *Game) Load() error {
	cfg, err := config.LoadShield(g.configPath)
	if err != nil {
		return err
	}
	if g.levelsPath != "" {
		raw, err := config.LoadShieldLevels(g.levelsPath)
		if err != nil {
			return err
		}
		cfg.Levels = raw
	}
	config.ApplyShieldPreset(&cfg, g.preset)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("shield: %w", err)
	}

	levels, err := ParseLevels(cfg.Levels)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.levels = levels
	return nil
}

// Reset starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	engine, err := NewEngine(g.cfg, g.levels, cfg.Seed)
	if err != nil {
		// Only reachable when Reset is called without a successful Load.
		def := config.DefaultShieldConfig()
		levels, _ := ParseLevels(def.Levels)
		engine, _ = NewEngine(def, levels, cfg.Seed)
	}
	g.engine = engine
}

// Step applies key press edges, then advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event
	for _, k := range in.Pressed {
		events = append(events, g.engine.KeyDown(k, in.Frame.Now)...)
	}
	events = append(events, g.engine.Step(in.Frame)...)
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.engine.Phase()
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: phase == Dead || phase == Won,
		Paused:   phase == Paused,
	}
}

// Render draws the arena, the player with its shield, and the arrows.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	top := 1
	rows := dst.Height() - top
	cols := dst.Width()
	if rows <= 2 || cols <= 2 {
		return
	}
	sx := float64(cols-1) / g.cfg.Arena.Width
	sy := float64(rows-1) / g.cfg.Arena.Height
	toCell := func(x, y float64) (int, int) {
		return int(math.Round(x * sx)), top + int(math.Round(y*sy))
	}

	dst.DrawHLine(0, top, cols, BorderChar)
	dst.DrawHLine(0, dst.Height()-1, cols, BorderChar)

	px, py := g.engine.center()
	cx, cy := toCell(px, py)
	dst.SetColored(cx, cy, CoreChar, core.ColorCyan)

	switch g.engine.Shield() {
	case Up, Down:
		y := cy - 1
		if g.engine.Shield() == Down {
			y = cy + 1
		}
		for dx := -1; dx <= 1; dx++ {
			dst.SetColored(cx+dx, y, ShieldHorizChar, core.ColorYellow)
		}
	case Left:
		dst.SetColored(cx-2, cy, ShieldVertChar, core.ColorYellow)
	case Right:
		dst.SetColored(cx+2, cy, ShieldVertChar, core.ColorYellow)
	}

	for _, a := range g.engine.Arrows() {
		ax, ay := toCell(a.X, a.Y)
		dst.SetColored(ax, ay, arrowRune(a.From), core.ColorRed)
	}

	hud := fmt.Sprintf(" HP: %d  Level: %d/%d  Arrows left: %d  Score: %d ",
		g.engine.HP(), g.engine.Level()+1, g.engine.LevelCount(), g.engine.Remaining(), g.engine.Score())
	dst.DrawText(1, 0, hud)

	switch g.engine.Phase() {
	case Paused:
		dst.DrawMessageBox("PAUSED", "Press any key to continue")
	case LevelClear:
		dst.DrawMessageBox("LEVEL FINISHED!", fmt.Sprintf("Blocked so far: %d", g.engine.Blocked()))
	case Dead:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  Press any key to restart", g.engine.Score()))
	case Won:
		dst.DrawMessageBox("ALL LEVELS FINISHED", fmt.Sprintf("Score: %d  |  Press any key to restart", g.engine.Score()))
	}
}

// arrowRune points an arrow along its direction of travel.
func arrowRune(from Direction) rune {
	switch from {
	case Up:
		return '↓'
	case Down:
		return '↑'
	case Left:
		return '→'
	default:
		return '←'
	}
}

// Register the game with the registry
func init() {
	registry.Register("shield", func() registry.Game {
		return New()
	})
}
