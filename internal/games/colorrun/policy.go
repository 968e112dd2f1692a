package colorrun

import (
	"math"

	"github.com/vovakirdan/hue-arcade/internal/config"
)

// Policy maps the score accumulator to spawn pacing, score growth and
// obstacle speed. All methods are pure functions of their arguments.
type Policy struct {
	prog      config.RunnerProgression
	baseSpeed float64
	ramp      config.SpeedRamp
}

// NewPolicy builds the progression policy for a runner config.
func NewPolicy(cfg config.RunnerConfig) Policy {
	return Policy{
		prog:      cfg.Progression,
		baseSpeed: cfg.Obstacles.BaseSpeed,
		ramp:      config.NewSpeedRamp(cfg.Difficulty),
	}
}

// SpawnIntervalTicks returns the ticks between standard obstacle spawns.
// With default settings this is max(15, 35 - floor(s/20)).
func (p Policy) SpawnIntervalTicks(s float64) int {
	if p.prog.SpawnStep <= 0 || s <= 0 {
		return p.prog.SpawnBase
	}
	interval := p.prog.SpawnBase - int(math.Floor(s/float64(p.prog.SpawnStep)))
	if interval < p.prog.SpawnMin {
		return p.prog.SpawnMin
	}
	return interval
}

// GrowthRate returns the accumulator increase per second at score s.
// With default settings this is 1.6 * (1 + min(s/200, 5)), so it stays in [1.6, 9.6].
func (p Policy) GrowthRate(s float64) float64 {
	if s < 0 {
		s = 0
	}
	return p.prog.GrowthBase * (1 + math.Min(s/p.prog.GrowthSpan, p.prog.GrowthCap-1))
}

// ObstacleSpeed returns the per-tick obstacle speed before the per-obstacle
// multiplier. Constant unless the difficulty preset ramps it.
func (p Policy) ObstacleSpeed(s float64) float64 {
	return p.ramp.Speed(p.baseSpeed, s)
}
