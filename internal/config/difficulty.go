package config

// SpeedRamp scales obstacle speed with score. Its level climbs linearly
// from InitialLevel at score 0 to 1 at Progression.MaxAt and stays there.
type SpeedRamp struct {
	cfg   DifficultyConfig
	start float64
}

// NewSpeedRamp builds a ramp from the difficulty section of a config.
func NewSpeedRamp(cfg DifficultyConfig) SpeedRamp {
	start := cfg.InitialLevel
	switch {
	case start < 0:
		start = 0
	case start > 1:
		start = 1
	}
	return SpeedRamp{cfg: cfg, start: start}
}

// Active reports whether the level moves with score at all.
func (r SpeedRamp) Active() bool {
	return r.cfg.Enabled && r.cfg.Progression.Type == "score" && r.cfg.Progression.MaxAt > 0
}

// Level returns the ramp level in [0, 1] at the given score.
func (r SpeedRamp) Level(score float64) float64 {
	if !r.Active() || score <= 0 {
		return r.start
	}
	progress := score / float64(r.cfg.Progression.MaxAt)
	if progress > 1 {
		progress = 1
	}
	return r.start + progress*(1-r.start)
}

// Speed scales base by up to 1 + Scaling.SpeedMultiplier at full level.
func (r SpeedRamp) Speed(base, score float64) float64 {
	return base * (1 + r.Level(score)*r.cfg.Scaling.SpeedMultiplier)
}
