package colorrun

import "time"

// Snapshot is a read-only copy of the session taken after a tick.
// Its slices are copies; changing them never affects the engine.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Player    Player
	Obstacles []Obstacle
	Palette   []Swatch
	Secret    float64
	Display   int

	Width  float64 // Playfield width
	Height float64 // Playfield height

	DeathAt        time.Duration
	RestartReadyAt time.Duration // First instant after which a key restarts
	SwitchReadyAt  time.Duration // Color switches are dropped until after this
	ColorCooldown  time.Duration
	CampTimer      time.Duration
}

// Snapshot copies the current session state.
func (e *Engine) Snapshot() Snapshot {
	s := e.state

	obstacles := make([]Obstacle, len(s.Obstacles))
	copy(obstacles, s.Obstacles)
	palette := make([]Swatch, len(s.Palette))
	copy(palette, s.Palette)

	snap := Snapshot{
		Tick:      s.Tick,
		Phase:     s.Phase,
		Player:    s.Player,
		Obstacles: obstacles,
		Palette:   palette,
		Secret:    s.Secret,
		Display:   e.DisplayScore(),
		Width:     e.cfg.Playfield.Width,
		Height:    e.cfg.Playfield.Height,
		CampTimer: s.CampTimer,

		ColorCooldown: e.colorCooldown,
	}
	if s.Player.switched {
		snap.SwitchReadyAt = s.Player.lastSwitch + e.colorCooldown
	}
	if s.Phase == Dead {
		snap.DeathAt = s.DeathAt
		snap.RestartReadyAt = s.DeathAt + e.deathCooldown
	}
	return snap
}

// PlayerSwatch returns the palette entry the player currently wears.
func (s Snapshot) PlayerSwatch() Swatch {
	if s.Player.ColorIndex < 0 || s.Player.ColorIndex >= len(s.Palette) {
		return Swatch{}
	}
	return s.Palette[s.Player.ColorIndex]
}

// CooldownProgress returns how far the color cooldown has recovered at now, in [0, 1].
func (s Snapshot) CooldownProgress(now time.Duration) float64 {
	if s.ColorCooldown <= 0 || now >= s.SwitchReadyAt {
		return 1
	}
	remaining := s.SwitchReadyAt - now
	return 1 - float64(remaining)/float64(s.ColorCooldown)
}
