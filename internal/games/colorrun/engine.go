package colorrun

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/core"
)

// Phase is the session state of the simulation.
type Phase int

const (
	Playing Phase = iota
	Paused
	Dead
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// SimulationState is everything one session owns. Only the Engine mutates it.
type SimulationState struct {
	Tick         uint64
	Phase        Phase
	Player       Player
	Obstacles    []Obstacle
	Palette      []Swatch // Unlocked entries only
	Secret       float64  // Raw score accumulator
	SpawnCounter int
	CampTimer    time.Duration
	DeathAt      time.Duration
	FinalScore   int
}

// Engine advances a Color Run session one tick at a time.
// It is not safe for concurrent use; callers hand Snapshot copies to renderers.
type Engine struct {
	cfg      config.RunnerConfig
	policy   Policy
	swatches []Swatch // Full palette in unlock order
	initial  int      // Entries available at score 0
	rng      *rand.Rand
	state    SimulationState

	colorCooldown time.Duration
	deathCooldown time.Duration
	campLimit     time.Duration
}

// NewEngine creates an engine for a validated config and starts a session.
func NewEngine(cfg config.RunnerConfig, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("colorrun: %w", err)
	}

	swatches := make([]Swatch, len(cfg.Palette))
	for i, entry := range cfg.Palette {
		c, _ := core.ParseColor(entry.Color)
		swatches[i] = Swatch{Label: entry.Label, Color: c, UnlockAt: entry.UnlockAt}
	}

	e := &Engine{
		cfg:           cfg,
		policy:        NewPolicy(cfg),
		swatches:      swatches,
		initial:       cfg.InitialPaletteSize(),
		rng:           rand.New(rand.NewSource(seed)),
		colorCooldown: time.Duration(cfg.Timing.ColorCooldownMs) * time.Millisecond,
		deathCooldown: time.Duration(cfg.Timing.DeathCooldownMs) * time.Millisecond,
		campLimit:     time.Duration(cfg.Boss.CampLimitMs) * time.Millisecond,
	}
	e.Reset()
	return e, nil
}

// Reset discards the session and starts a fresh one.
// The RNG keeps running so consecutive sessions differ.
func (e *Engine) Reset() {
	pf := e.cfg.Playfield
	palette := make([]Swatch, e.initial)
	copy(palette, e.swatches[:e.initial])

	e.state = SimulationState{
		Phase: Playing,
		Player: Player{
			X:     e.cfg.Player.X,
			Y:     (pf.Height - e.cfg.Player.Size) / 2,
			Size:  e.cfg.Player.Size,
			Speed: e.cfg.Player.Speed,
		},
		Obstacles: []Obstacle{},
		Palette:   palette,
	}
}

// Policy returns the progression policy in use.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// DisplayScore returns the transformed score of the current session.
func (e *Engine) DisplayScore() int {
	if e.state.Phase == Dead {
		return e.state.FinalScore
	}
	return DisplayScore(e.state.Secret)
}

// KeyDown handles a key press edge at time now: restart after death, pause
// toggling, and resuming from pause on any other key.
func (e *Engine) KeyDown(k core.Key, now time.Duration) []core.Event {
	if k == core.KeyNone {
		return nil
	}

	switch e.state.Phase {
	case Dead:
		if now-e.state.DeathAt > e.deathCooldown {
			e.Reset()
			return []core.Event{core.EventRestarted}
		}
		return nil
	case Paused:
		e.state.Phase = Playing
		return []core.Event{core.EventResumed}
	}

	if k == core.KeyPause {
		e.state.Phase = Paused
		return []core.Event{core.EventPaused}
	}
	return nil
}

// Step advances the session by one tick using the frame timing and the keys
// held during it. Nothing advances unless the session is Playing.
func (e *Engine) Step(frame core.Frame, held core.KeySet) []core.Event {
	if e.state.Phase != Playing {
		return nil
	}

	var events []core.Event
	s := &e.state
	s.Tick++

	e.move(held)
	e.switchColor(held, frame.Now)

	if e.updateCamping(frame.Delta) {
		events = append(events, core.EventBossSpawned)
	}

	s.SpawnCounter++
	if s.SpawnCounter > e.policy.SpawnIntervalTicks(s.Secret) {
		e.spawnObstacle()
		s.SpawnCounter = 0
	}

	s.Secret += frame.Delta.Seconds() * e.policy.GrowthRate(s.Secret)

	if e.advanceObstacles(frame.Now) {
		events = append(events, core.EventDied)
	}

	for e.unlockNext() {
		events = append(events, core.EventPaletteUnlocked)
	}

	return events
}

// maxY is the lowest top edge the player may occupy.
func (e *Engine) maxY() float64 {
	return e.cfg.Playfield.Height - e.state.Player.Size
}

func (e *Engine) move(held core.KeySet) {
	p := &e.state.Player
	if held.Has(core.KeyUp) {
		p.Y -= p.Speed
	}
	if held.Has(core.KeyDown) {
		p.Y += p.Speed
	}
	p.Y = core.ClampF(p.Y, 0, e.maxY())
}

// switchColor applies at most one color change per tick, rate limited by
// the color cooldown. Inputs inside the cooldown window are dropped.
func (e *Engine) switchColor(held core.KeySet, now time.Duration) {
	p := &e.state.Player
	if p.switched && now-p.lastSwitch <= e.colorCooldown {
		return
	}

	size := len(e.state.Palette)
	next := p.ColorIndex
	switch {
	case held.Has(core.KeyLeft):
		next = (p.ColorIndex - 1 + size) % size
	case held.Has(core.KeyRight):
		next = (p.ColorIndex + 1) % size
	default:
		found := false
		for n := 1; n <= size && n <= 9; n++ {
			if k, _ := core.DigitKey(n); held.Has(k) {
				next = n - 1
				found = true
				break
			}
		}
		if !found {
			return
		}
	}

	p.ColorIndex = next
	p.lastSwitch = now
	p.switched = true
}

// updateCamping accumulates time spent pinned at the top or bottom edge and
// spawns a boss once the limit is reached. Reports whether a boss spawned.
func (e *Engine) updateCamping(delta time.Duration) bool {
	s := &e.state
	y := s.Player.Y
	if y > 0 && y < e.maxY() {
		s.CampTimer = 0
		return false
	}

	s.CampTimer += delta
	if s.CampTimer < e.campLimit {
		return false
	}
	e.spawnBoss()
	s.CampTimer = 0
	return true
}

func (e *Engine) spawnBoss() {
	pf := e.cfg.Playfield
	boss := e.cfg.Boss
	e.state.Obstacles = append(e.state.Obstacles, Obstacle{
		X:          pf.Width,
		Y:          core.ClampF(e.state.Player.Y, 0, pf.Height-boss.Height),
		Width:      pf.Width,
		Height:     boss.Height,
		ColorIndex: NoColor,
		SpeedMult:  boss.SpeedMultiplier,
		Text:       boss.Text,
	})
}

func (e *Engine) spawnObstacle() {
	pf := e.cfg.Playfield
	ob := e.cfg.Obstacles

	height := ob.Height
	if e.rng.Float64() < ob.TallChance {
		height = pf.Height * ob.TallRatio
	}

	y := e.rng.Float64() * (pf.Height - height)
	if pf.RowHeight > 0 {
		y = math.Floor(y/pf.RowHeight) * pf.RowHeight
	}

	e.state.Obstacles = append(e.state.Obstacles, Obstacle{
		X:          pf.Width + ob.Width,
		Y:          y,
		Width:      ob.Width,
		Height:     height,
		ColorIndex: e.rng.Intn(len(e.state.Palette)),
		SpeedMult:  1,
	})
}

// advanceObstacles moves every obstacle, checks it against the player and
// keeps only obstacles still on screen. Reports whether the player died.
func (e *Engine) advanceObstacles(now time.Duration) bool {
	s := &e.state
	speed := e.policy.ObstacleSpeed(s.Secret)
	player := s.Player.Rect()
	died := false

	kept := make([]Obstacle, 0, len(s.Obstacles))
	for _, o := range s.Obstacles {
		o.X -= speed * o.SpeedMult
		if player.Overlaps(o.Rect()) && !o.Passable(s.Player.ColorIndex) && s.Phase != Dead {
			s.Phase = Dead
			s.DeathAt = now
			s.FinalScore = DisplayScore(s.Secret)
			died = true
		}
		if o.X+o.Width > 0 {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept
	return died
}

// unlockNext adds the next palette entry if its threshold is reached.
func (e *Engine) unlockNext() bool {
	s := &e.state
	n := len(s.Palette)
	if n >= len(e.swatches) || s.Secret < e.swatches[n].UnlockAt {
		return false
	}
	s.Palette = append(s.Palette, e.swatches[n])
	return true
}
