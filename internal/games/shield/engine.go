package shield

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
)

// Phase is the session state of a Shield run.
type Phase int

const (
	Playing Phase = iota
	Paused
	LevelClear // Between levels
	Dead
	Won
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case LevelClear:
		return "level_clear"
	case Dead:
		return "dead"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Arrow flies from an arena edge towards the player.
type Arrow struct {
	X, Y   float64
	VX, VY float64
	From   Direction
}

// Engine runs one Shield session: arrows spawn on a timer, the player turns
// the shield, and every arrow reaching the core is either blocked or costs HP.
type Engine struct {
	cfg    config.ShieldConfig
	levels []Level
	rng    *rand.Rand

	spawnEvery    time.Duration
	levelDelay    time.Duration
	deathCooldown time.Duration

	phase      Phase
	pausedFrom Phase // Phase to return to on resume
	level      int
	hp         int
	shield     Direction
	arrows     []Arrow
	toSpawn    int
	spawnTimer time.Duration
	clearTimer time.Duration
	blocked    int
	score      int
	endedAt    time.Duration
}

// NewEngine creates an engine and starts the first level.
func NewEngine(cfg config.ShieldConfig, levels []Level, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}

	e := &Engine{
		cfg:           cfg,
		levels:        levels,
		rng:           rand.New(rand.NewSource(seed)),
		spawnEvery:    time.Duration(cfg.Arrows.SpawnEveryMs) * time.Millisecond,
		levelDelay:    time.Duration(cfg.Timing.LevelDelayMs) * time.Millisecond,
		deathCooldown: time.Duration(cfg.Timing.DeathCooldownMs) * time.Millisecond,
	}
	e.Reset()
	return e, nil
}

// Reset starts a new run from the first level.
func (e *Engine) Reset() {
	e.hp = e.cfg.Player.HP
	e.shield = Up
	e.blocked = 0
	e.score = 0
	e.endedAt = 0
	e.startLevel(0)
}

func (e *Engine) startLevel(level int) {
	e.level = level
	e.phase = Playing
	e.arrows = []Arrow{}
	e.toSpawn = e.cfg.Arrows.BaseCount + level*e.cfg.Arrows.CountPerLevel
	e.spawnTimer = 0
	e.clearTimer = 0
}

// center returns the player position.
func (e *Engine) center() (float64, float64) {
	return e.cfg.Arena.Width / 2, e.cfg.Arena.Height / 2
}

// KeyDown handles a key press edge at time now.
func (e *Engine) KeyDown(k core.Key, now time.Duration) []core.Event {
	if k == core.KeyNone {
		return nil
	}

	switch e.phase {
	case Dead, Won:
		if now-e.endedAt > e.deathCooldown {
			e.Reset()
			return []core.Event{core.EventRestarted}
		}
		return nil
	case Paused:
		e.phase = e.pausedFrom
		return []core.Event{core.EventResumed}
	}

	switch k {
	case core.KeyPause:
		e.pausedFrom = e.phase
		e.phase = Paused
		return []core.Event{core.EventPaused}
	case core.KeyUp:
		e.shield = Up
	case core.KeyDown:
		e.shield = Down
	case core.KeyLeft:
		e.shield = Left
	case core.KeyRight:
		e.shield = Right
	}
	return nil
}

// Step advances the session by one tick.
func (e *Engine) Step(frame core.Frame) []core.Event {
	switch e.phase {
	case LevelClear:
		return e.stepLevelClear(frame)
	case Playing:
		return e.stepPlaying(frame)
	default:
		return nil
	}
}

func (e *Engine) stepLevelClear(frame core.Frame) []core.Event {
	e.clearTimer += frame.Delta
	if e.clearTimer < e.levelDelay {
		return nil
	}

	if e.level+1 >= len(e.levels) {
		e.phase = Won
		e.endedAt = frame.Now
		return []core.Event{core.EventWon}
	}
	e.startLevel(e.level + 1)
	return nil
}

func (e *Engine) stepPlaying(frame core.Frame) []core.Event {
	var events []core.Event

	e.spawnTimer += frame.Delta
	for e.toSpawn > 0 && e.spawnTimer >= e.spawnEvery {
		e.spawnTimer -= e.spawnEvery
		e.spawnArrow()
	}

	px, py := e.center()
	size := e.cfg.Player.Size
	kept := make([]Arrow, 0, len(e.arrows))
	for _, a := range e.arrows {
		a.X += a.VX
		a.Y += a.VY

		if math.Abs(a.X-px) < size && math.Abs(a.Y-py) < size {
			if a.From == e.shield {
				e.blocked++
				e.score += e.level + 1
				events = append(events, core.EventBlocked)
			} else {
				e.hp--
				events = append(events, core.EventHit)
			}
			continue
		}
		if a.X < 0 || a.X > e.cfg.Arena.Width || a.Y < 0 || a.Y > e.cfg.Arena.Height {
			continue
		}
		kept = append(kept, a)
	}
	e.arrows = kept

	if e.hp <= 0 {
		e.hp = 0
		e.phase = Dead
		e.endedAt = frame.Now
		return append(events, core.EventDied)
	}

	if e.toSpawn == 0 && len(e.arrows) == 0 {
		e.phase = LevelClear
		e.clearTimer = 0
		events = append(events, core.EventLevelCleared)
	}
	return events
}

func (e *Engine) spawnArrow() {
	dirs := e.levels[e.level]
	from := dirs[e.rng.Intn(len(dirs))]
	speed := e.cfg.Arrows.Speed * (1 + e.cfg.Arrows.SpeedPerLevel*float64(e.level))
	px, py := e.center()

	a := Arrow{From: from}
	switch from {
	case Up:
		a.X, a.Y, a.VY = px, 0, speed
	case Down:
		a.X, a.Y, a.VY = px, e.cfg.Arena.Height, -speed
	case Left:
		a.X, a.Y, a.VX = 0, py, speed
	case Right:
		a.X, a.Y, a.VX = e.cfg.Arena.Width, py, -speed
	}

	e.arrows = append(e.arrows, a)
	e.toSpawn--
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Level returns the zero-based current level.
func (e *Engine) Level() int {
	return e.level
}

// LevelCount returns the number of levels in the run.
func (e *Engine) LevelCount() int {
	return len(e.levels)
}

// HP returns the remaining hit points.
func (e *Engine) HP() int {
	return e.hp
}

// Shield returns the direction the shield faces.
func (e *Engine) Shield() Direction {
	return e.shield
}

// Arrows returns a copy of the live arrows.
func (e *Engine) Arrows() []Arrow {
	out := make([]Arrow, len(e.arrows))
	copy(out, e.arrows)
	return out
}

// Remaining returns the arrows still to spawn this level.
func (e *Engine) Remaining() int {
	return e.toSpawn
}

// Blocked returns the number of arrows blocked this run.
func (e *Engine) Blocked() int {
	return e.blocked
}

// Score returns blocked arrows weighted by the level they were blocked in.
func (e *Engine) Score() int {
	return e.score
}
