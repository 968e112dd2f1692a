// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hue-arcade/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// RunnerConfig contains all configuration for the Color Run game.
// Distances are playfield units, speeds are units per tick.
type RunnerConfig struct {
	Playfield   RunnerPlayfield   `yaml:"playfield"`
	Player      RunnerPlayer      `yaml:"player"`
	Obstacles   RunnerObstacles   `yaml:"obstacles"`
	Boss        RunnerBoss        `yaml:"boss"`
	Timing      RunnerTiming      `yaml:"timing"`
	Progression RunnerProgression `yaml:"progression"`
	Palette     []PaletteEntry    `yaml:"palette"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// RunnerPlayfield defines the simulated playfield.
type RunnerPlayfield struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	RowHeight float64 `yaml:"row_height"` // Spawn y snaps down to multiples of this; 0 disables
}

// RunnerPlayer defines player parameters for Color Run.
type RunnerPlayer struct {
	X     float64 `yaml:"x"`
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// RunnerObstacles defines standard obstacle parameters.
type RunnerObstacles struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	BaseSpeed  float64 `yaml:"base_speed"`
	TallChance float64 `yaml:"tall_chance"` // Probability of a tall obstacle
	TallRatio  float64 `yaml:"tall_ratio"`  // Tall obstacle height as a fraction of the playfield
}

// RunnerBoss defines the anti-camping obstacle.
type RunnerBoss struct {
	Height          float64 `yaml:"height"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	Text            string  `yaml:"text"`
	CampLimitMs     int     `yaml:"camp_limit_ms"`
}

// RunnerTiming defines input and restart cooldowns.
type RunnerTiming struct {
	ColorCooldownMs int `yaml:"color_cooldown_ms"`
	DeathCooldownMs int `yaml:"death_cooldown_ms"`
}

// RunnerProgression defines the score-driven spawn and growth curves.
type RunnerProgression struct {
	SpawnBase  int     `yaml:"spawn_base"`  // Ticks between spawns at score 0
	SpawnMin   int     `yaml:"spawn_min"`   // Lower bound on ticks between spawns
	SpawnStep  int     `yaml:"spawn_step"`  // Score per one-tick reduction; 0 disables acceleration
	GrowthBase float64 `yaml:"growth_base"` // Score per second at score 0
	GrowthSpan float64 `yaml:"growth_span"` // Score per +1x growth multiplier
	GrowthCap  float64 `yaml:"growth_cap"`  // Maximum growth multiplier
}

// PaletteEntry is one selectable color. Entries with UnlockAt 0 are
// available from the start; the rest unlock in order as score rises.
type PaletteEntry struct {
	Label    string  `yaml:"label"`
	Color    string  `yaml:"color"`
	UnlockAt float64 `yaml:"unlock_at,omitempty"`
}

// InitialPaletteSize returns the number of entries available at score 0.
func (c RunnerConfig) InitialPaletteSize() int {
	n := 0
	for _, e := range c.Palette {
		if e.UnlockAt > 0 {
			break
		}
		n++
	}
	return n
}

// Validate checks the config for values the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	pf := c.Playfield
	if pf.Width <= 0 || pf.Height <= 0 {
		return fmt.Errorf("%w: playfield must be positive, got %gx%g", ErrInvalid, pf.Width, pf.Height)
	}
	if pf.RowHeight < 0 {
		return fmt.Errorf("%w: playfield.row_height must not be negative", ErrInvalid)
	}
	if c.Player.Size <= 0 || c.Player.Size > pf.Height {
		return fmt.Errorf("%w: player.size must be in (0, %g]", ErrInvalid, pf.Height)
	}
	if c.Player.X < 0 || c.Player.X+c.Player.Size > pf.Width {
		return fmt.Errorf("%w: player.x must keep the player inside the playfield", ErrInvalid)
	}
	if c.Player.Speed < 0 {
		return fmt.Errorf("%w: player.speed must not be negative", ErrInvalid)
	}

	ob := c.Obstacles
	if ob.Width <= 0 || ob.Height <= 0 || ob.Height > pf.Height {
		return fmt.Errorf("%w: obstacle size must be positive and fit the playfield", ErrInvalid)
	}
	if ob.BaseSpeed <= 0 {
		return fmt.Errorf("%w: obstacles.base_speed must be positive", ErrInvalid)
	}
	if ob.TallChance < 0 || ob.TallChance > 1 {
		return fmt.Errorf("%w: obstacles.tall_chance must be in [0, 1]", ErrInvalid)
	}
	if ob.TallRatio <= 0 || ob.TallRatio > 1 {
		return fmt.Errorf("%w: obstacles.tall_ratio must be in (0, 1]", ErrInvalid)
	}

	if c.Boss.Height <= 0 || c.Boss.Height > pf.Height {
		return fmt.Errorf("%w: boss.height must be positive and fit the playfield", ErrInvalid)
	}
	if c.Boss.SpeedMultiplier <= 0 {
		return fmt.Errorf("%w: boss.speed_multiplier must be positive", ErrInvalid)
	}
	if c.Boss.CampLimitMs <= 0 {
		return fmt.Errorf("%w: boss.camp_limit_ms must be positive", ErrInvalid)
	}

	if c.Timing.ColorCooldownMs < 0 || c.Timing.DeathCooldownMs < 0 {
		return fmt.Errorf("%w: cooldowns must not be negative", ErrInvalid)
	}

	pr := c.Progression
	if pr.SpawnMin < 1 || pr.SpawnBase < pr.SpawnMin {
		return fmt.Errorf("%w: need 1 <= spawn_min <= spawn_base", ErrInvalid)
	}
	if pr.SpawnStep < 0 {
		return fmt.Errorf("%w: progression.spawn_step must not be negative", ErrInvalid)
	}
	if pr.GrowthBase <= 0 || pr.GrowthSpan <= 0 || pr.GrowthCap < 1 {
		return fmt.Errorf("%w: growth curve needs base > 0, span > 0, cap >= 1", ErrInvalid)
	}

	return c.validatePalette()
}

// validatePalette checks labels, colors and unlock ordering.
func (c RunnerConfig) validatePalette() error {
	if len(c.Palette) > 9 {
		return fmt.Errorf("%w: palette supports at most 9 colors (digit keys), got %d", ErrInvalid, len(c.Palette))
	}
	if c.InitialPaletteSize() < 1 {
		return fmt.Errorf("%w: palette needs at least one color available at score 0", ErrInvalid)
	}

	prev := 0.0
	for i, e := range c.Palette {
		if e.Label == "" {
			return fmt.Errorf("%w: palette[%d] has no label", ErrInvalid, i)
		}
		if _, ok := core.ParseColor(e.Color); !ok {
			return fmt.Errorf("%w: palette[%d] has unknown color %q", ErrInvalid, i, e.Color)
		}
		if e.UnlockAt < prev {
			return fmt.Errorf("%w: palette[%d] unlock_at %g is below the previous entry", ErrInvalid, i, e.UnlockAt)
		}
		prev = e.UnlockAt
	}
	return nil
}

// ShieldConfig contains all configuration for the Shield game.
type ShieldConfig struct {
	Arena  ShieldArena  `yaml:"arena"`
	Player ShieldPlayer `yaml:"player"`
	Arrows ShieldArrows `yaml:"arrows"`
	Timing ShieldTiming `yaml:"timing"`
	// Levels lists the allowed approach directions per level.
	Levels [][]string `yaml:"levels"`
}

// ShieldArena defines the arena dimensions.
type ShieldArena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShieldPlayer defines the defended core.
type ShieldPlayer struct {
	Size float64 `yaml:"size"`
	HP   int     `yaml:"hp"`
}

// ShieldArrows defines arrow spawning and speed.
type ShieldArrows struct {
	Speed         float64 `yaml:"speed"`           // Units per tick at level 1
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Fractional speed-up per level index
	SpawnEveryMs  int     `yaml:"spawn_every_ms"`
	BaseCount     int     `yaml:"base_count"`      // Arrows in the first level
	CountPerLevel int     `yaml:"count_per_level"` // Extra arrows per level index
}

// ShieldTiming defines level transition and restart delays.
type ShieldTiming struct {
	LevelDelayMs    int `yaml:"level_delay_ms"`
	DeathCooldownMs int `yaml:"death_cooldown_ms"`
}

// Validate checks the config for values the simulation cannot run with.
// Level contents are checked by the shield package, which owns directions.
func (c ShieldConfig) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena must be positive", ErrInvalid)
	}
	if c.Player.Size <= 0 || c.Player.HP <= 0 {
		return fmt.Errorf("%w: player size and hp must be positive", ErrInvalid)
	}
	if c.Arrows.Speed <= 0 || c.Arrows.SpawnEveryMs <= 0 || c.Arrows.BaseCount <= 0 {
		return fmt.Errorf("%w: arrows need positive speed, spawn_every_ms and base_count", ErrInvalid)
	}
	if c.Arrows.CountPerLevel < 0 || c.Arrows.SpeedPerLevel < 0 {
		return fmt.Errorf("%w: per-level arrow scaling must not be negative", ErrInvalid)
	}
	if c.Timing.LevelDelayMs < 0 || c.Timing.DeathCooldownMs < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalid)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which the ramp tops out
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the named presets in increasing order of challenge,
// with fixed last.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a CLI value to a preset. Empty or unknown values
// return "" (use the config as loaded).
func ParsePreset(s string) DifficultyPreset {
	for _, p := range Presets {
		if string(p) == s {
			return p
		}
	}
	return ""
}
