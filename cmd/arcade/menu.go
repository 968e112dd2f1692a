package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hue-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  /            - Search games
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --sound
  arcade menu --fps 30 --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Default difficulty preset when the menu selector is left on default")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play music and sound effects")
}

func runMenu(_ *cobra.Command, _ []string) error {
	fallback, err := parseDifficulty(flagDifficulty)
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

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		preset := menuResult.Preset
		if preset == "" {
			preset = fallback
		}
		game, err := createGame(menuResult.GameID, "", "", preset)
		if err != nil {
			logger.Error("cannot create game", "error", err)
			continue
		}

		// New seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		svc := tui.Services{Store: store, Sound: sound, Difficulty: string(preset)}
		if err := tui.Run(game, svc, cfg); err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", err)
		}
	}
}
