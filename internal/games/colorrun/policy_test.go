package colorrun

import (
	"math"
	"testing"

	"github.com/vovakirdan/hue-arcade/internal/config"
)

func defaultPolicy() Policy {
	return NewPolicy(config.DefaultRunnerConfig())
}

func TestSpawnIntervalTicks(t *testing.T) {
	p := defaultPolicy()

	tests := []struct {
		score float64
		want  int
	}{
		{0, 35},
		{19.9, 35},
		{20, 34},
		{100, 30},
		{399, 16},
		{400, 15},
		{1000, 15},
		{1e9, 15},
	}

	for _, tc := range tests {
		if got := p.SpawnIntervalTicks(tc.score); got != tc.want {
			t.Errorf("SpawnIntervalTicks(%g) = %d, expected %d", tc.score, got, tc.want)
		}
	}
}

func TestSpawnIntervalNeverBelowFloor(t *testing.T) {
	p := defaultPolicy()
	prev := p.SpawnIntervalTicks(0)
	for s := 0.0; s < 5000; s += 0.5 {
		got := p.SpawnIntervalTicks(s)
		if got < 15 {
			t.Fatalf("SpawnIntervalTicks(%g) = %d, below floor 15", s, got)
		}
		if got > prev {
			t.Fatalf("SpawnIntervalTicks(%g) = %d increased from %d", s, got, prev)
		}
		prev = got
	}
}

func TestSpawnIntervalFixedPreset(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyFixed)
	p := NewPolicy(cfg)

	for _, s := range []float64{0, 100, 10000} {
		if got := p.SpawnIntervalTicks(s); got != 35 {
			t.Errorf("fixed SpawnIntervalTicks(%g) = %d, expected 35", s, got)
		}
	}
}

func TestGrowthRate(t *testing.T) {
	p := defaultPolicy()

	tests := []struct {
		score float64
		want  float64
	}{
		{0, 1.6},
		{100, 2.4},
		{200, 3.2},
		{1000, 9.6},
		{5000, 9.6},
	}

	for _, tc := range tests {
		if got := p.GrowthRate(tc.score); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("GrowthRate(%g) = %f, expected %f", tc.score, got, tc.want)
		}
	}
}

func TestGrowthRateBounds(t *testing.T) {
	p := defaultPolicy()
	for s := 0.0; s < 3000; s += 1.7 {
		got := p.GrowthRate(s)
		if got < 1.6-1e-9 || got > 9.6+1e-9 {
			t.Fatalf("GrowthRate(%g) = %f, outside [1.6, 9.6]", s, got)
		}
	}
}

func TestObstacleSpeed(t *testing.T) {
	p := defaultPolicy()
	for _, s := range []float64{0, 150, 1000} {
		if got := p.ObstacleSpeed(s); got != 3 {
			t.Errorf("default ObstacleSpeed(%g) = %f, expected 3", s, got)
		}
	}

	cfg := config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyHard)
	hard := NewPolicy(cfg)
	if got := hard.ObstacleSpeed(0); got != 3 {
		t.Errorf("hard ObstacleSpeed(0) = %f, expected 3", got)
	}
	if got := hard.ObstacleSpeed(300); math.Abs(got-4.5) > 1e-9 {
		t.Errorf("hard ObstacleSpeed(300) = %f, expected 4.5", got)
	}
}

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		secret float64
		want   int
	}{
		{0, 0},
		{7, 9},
		{50, 58},
		{100, 114},
		{1000, 1128},
	}

	for _, tc := range tests {
		if got := DisplayScore(tc.secret); got != tc.want {
			t.Errorf("DisplayScore(%g) = %d, expected %d", tc.secret, got, tc.want)
		}
	}
}
