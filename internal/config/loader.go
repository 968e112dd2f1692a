package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads Color Run configuration.
// Search order: customPath -> ~/.arcade/configs/colorrun.yaml -> ./configs/colorrun.yaml -> embedded default.
// Values missing from a file keep their defaults. A custom path that cannot be
// read, parsed or validated is an error: the game must not start on it.
func LoadRunner(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := load(customPath, "colorrun.yaml", defaultRunnerYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: colorrun: %w", err)
	}
	return cfg, nil
}

// LoadShield loads Shield configuration.
// Search order: customPath -> ~/.arcade/configs/shield.yaml -> ./configs/shield.yaml -> embedded default.
func LoadShield(customPath string) (ShieldConfig, error) {
	cfg := DefaultShieldConfig()
	if err := load(customPath, "shield.yaml", defaultShieldYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: shield: %w", err)
	}
	return cfg, nil
}

// LoadShieldLevels reads a level list file. Both a bare list of direction
// lists (the levels.json layout) and a document with a "levels" key are accepted;
// JSON files parse as YAML.
func LoadShieldLevels(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read levels %s: %w", path, err)
	}

	var bare [][]string
	if err := yaml.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	var doc struct {
		Levels [][]string `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: failed to parse levels %s: %w", path, err)
	}
	if len(doc.Levels) == 0 {
		return nil, fmt.Errorf("config: %w: %s has no levels", ErrInvalid, path)
	}
	return doc.Levels, nil
}

// load decodes the first available source over the defaults already in out.
// Broken files in the implicit locations are skipped; a broken custom path fails.
func load(customPath, filename string, embedded []byte, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory, then local configs directory
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if tryDecode(data, out) {
			return nil
		}
	}

	// Use embedded default YAML
	if !tryDecode(embedded, out) {
		return errors.New("config: embedded defaults are corrupt")
	}
	return nil
}

// tryDecode decodes data into out only if it parses and validates cleanly.
func tryDecode(data []byte, out any) bool {
	switch dst := out.(type) {
	case *RunnerConfig:
		candidate := *dst
		candidate.Palette = nil
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			return false
		}
		if candidate.Palette == nil {
			candidate.Palette = dst.Palette
		}
		if candidate.Validate() != nil {
			return false
		}
		*dst = candidate
		return true
	case *ShieldConfig:
		candidate := *dst
		candidate.Levels = nil
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			return false
		}
		if candidate.Levels == nil {
			candidate.Levels = dst.Levels
		}
		if candidate.Validate() != nil {
			return false
		}
		*dst = candidate
		return true
	default:
		return yaml.Unmarshal(data, out) == nil
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// WriteUserDefaults copies the embedded defaults for gameID into the user
// config directory and returns the written path. An existing file is kept
// unless overwrite is set.
func WriteUserDefaults(gameID string, overwrite bool) (string, error) {
	data := GetDefaultYAML(gameID)
	if data == nil {
		return "", fmt.Errorf("config: no defaults for game %q", gameID)
	}
	path := userConfigPath(gameID + ".yaml")
	if path == "" {
		return "", errors.New("config: cannot locate home directory")
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return path, fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("config: cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// The normal preset leaves the loaded values untouched.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Obstacles.BaseSpeed = 2.5
		cfg.Difficulty.Scaling.SpeedMultiplier = 0
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = 0
		cfg.Difficulty.Progression = ProgressionConfig{Type: "score", MaxAt: 300}
		cfg.Difficulty.Scaling.SpeedMultiplier = 0.5
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Progression.SpawnStep = 0
	}
}

// ApplyShieldPreset modifies the config based on a difficulty preset.
func ApplyShieldPreset(cfg *ShieldConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.HP = 15
		cfg.Arrows.Speed = 4
	case DifficultyHard:
		cfg.Player.HP = 5
		cfg.Arrows.SpawnEveryMs = 350
	case DifficultyFixed:
		cfg.Arrows.SpeedPerLevel = 0
		cfg.Arrows.CountPerLevel = 0
	}
}
