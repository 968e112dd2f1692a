package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hue-arcade/internal/audio"
	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/platform/tui"
	"github.com/vovakirdan/hue-arcade/internal/registry"
)

var (
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Color Run controls:
  Up/Down, W/S       - Move
  Left/Right, A/D    - Previous/next color
  1-9                - Pick a color directly
  P/Esc              - Pause (any key resumes)
  Any key            - Restart, 2 seconds after dying
  Q/Ctrl+C           - Quit

Shield controls:
  Arrows, WASD       - Turn the shield

Difficulty options:
  easy   - Slower obstacle speed-up
  normal - Default progression
  hard   - Faster speed-up, reaches max sooner
  fixed  - No speed-up at all

Examples:
  arcade play colorrun
  arcade play colorrun --difficulty hard --sound
  arcade play colorrun --config ./my-colorrun.yaml
  arcade play shield --levels ./levels.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a Shield level list (JSON or YAML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play music and sound effects")
}

// levelsSetter is implemented by games that take a separate level file.
type levelsSetter interface {
	SetLevelsPath(path string)
}

// parseDifficulty validates the --difficulty flag.
func parseDifficulty(s string) (config.DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := config.ParsePreset(s)
	if p == "" {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
	return p, nil
}

// createGame instantiates a game and applies the config flags to it.
func createGame(id, configPath, levelsPath string, preset config.DifficultyPreset) (registry.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown game %q, run 'arcade list' to see available games", id)
	}
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}

	if t, ok := game.(registry.Tunable); ok {
		t.SetConfigPath(configPath)
		t.SetDifficultyPreset(preset)
	} else if configPath != "" || preset != "" {
		logger.Warn("game ignores --config and --difficulty", "game", id)
	}

	if levelsPath != "" {
		ls, ok := game.(levelsSetter)
		if !ok {
			return nil, fmt.Errorf("game %q does not take a level file", id)
		}
		ls.SetLevelsPath(levelsPath)
	}
	return game, nil
}

// newSound opens the audio device, or returns nil if sound is off or unavailable.
func newSound(enabled bool) *audio.SoundManager {
	if !enabled {
		return nil
	}
	sm := audio.NewSoundManager(logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return nil
	}
	return sm
}

func runPlay(_ *cobra.Command, args []string) error {
	preset, err := parseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}

	game, err := createGame(args[0], flagConfig, flagLevels, preset)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sound := newSound(flagSound)
	if sound != nil {
		defer sound.Cleanup()
	}

	svc := tui.Services{
		Store:      store,
		Sound:      sound,
		Difficulty: string(preset),
	}
	if err := tui.Run(game, svc, runtimeConfig()); err != nil {
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	return nil
}
