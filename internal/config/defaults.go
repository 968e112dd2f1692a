package config

import (
	_ "embed"
)

//go:embed defaults/colorrun.yaml
var defaultRunnerYAML []byte

//go:embed defaults/shield.yaml
var defaultShieldYAML []byte

// DefaultRunnerConfig returns the default Color Run configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Playfield: RunnerPlayfield{
			Width:     1280,
			Height:    620,
			RowHeight: 10,
		},
		Player: RunnerPlayer{
			X:     320,
			Size:  40,
			Speed: 4,
		},
		Obstacles: RunnerObstacles{
			Width:      50,
			Height:     50,
			BaseSpeed:  3,
			TallChance: 0.15,
			TallRatio:  0.5,
		},
		Boss: RunnerBoss{
			Height:          40,
			SpeedMultiplier: 1.5,
			Text:            "nice try noob",
			CampLimitMs:     5000,
		},
		Timing: RunnerTiming{
			ColorCooldownMs: 250,
			DeathCooldownMs: 2000,
		},
		Progression: RunnerProgression{
			SpawnBase:  35,
			SpawnMin:   15,
			SpawnStep:  20,
			GrowthBase: 1.6,
			GrowthSpan: 200,
			GrowthCap:  6,
		},
		Palette: []PaletteEntry{
			{Label: "R", Color: "red"},
			{Label: "G", Color: "green"},
			{Label: "B", Color: "blue"},
			{Label: "Y", Color: "yellow", UnlockAt: 50},
			{Label: "P", Color: "magenta", UnlockAt: 150},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.0,
			},
		},
	}
}

// DefaultShieldConfig returns the default Shield configuration.
func DefaultShieldConfig() ShieldConfig {
	return ShieldConfig{
		Arena: ShieldArena{
			Width:  800,
			Height: 600,
		},
		Player: ShieldPlayer{
			Size: 30,
			HP:   10,
		},
		Arrows: ShieldArrows{
			Speed:         5,
			SpeedPerLevel: 0.1,
			SpawnEveryMs:  500,
			BaseCount:     20,
			CountPerLevel: 5,
		},
		Timing: ShieldTiming{
			LevelDelayMs:    2000,
			DeathCooldownMs: 2000,
		},
		Levels: [][]string{
			{"up"},
			{"up", "right"},
			{"left", "right"},
			{"up", "down", "left"},
			{"up", "down", "left", "right"},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "colorrun":
		return defaultRunnerYAML
	case "shield":
		return defaultShieldYAML
	default:
		return nil
	}
}
