package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hue-arcade/internal/config"
	"github.com/vovakirdan/hue-arcade/internal/registry"
)

var (
	flagInitConfig  bool
	flagForceConfig bool
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print or install a game's default config",
	Long: `Print the built-in YAML config of a game.

With --init the defaults are written to ~/.arcade/configs/<game>.yaml,
which every later run picks up. Edit that file to tune the game.

Examples:
  arcade config colorrun > my-colorrun.yaml
  arcade config shield --init
  arcade config shield --init --force`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInitConfig, "init", false, "Write the defaults to the user config directory")
	configCmd.Flags().BoolVar(&flagForceConfig, "force", false, "Overwrite an existing user config with --init")
}

func runConfig(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", id)
	}

	if !flagInitConfig {
		data := config.GetDefaultYAML(id)
		if data == nil {
			return fmt.Errorf("game %q has no config file", id)
		}
		_, err := os.Stdout.Write(data)
		return err
	}

	path, err := config.WriteUserDefaults(id, flagForceConfig)
	if err != nil {
		return err
	}
	logger.Info("config written", "game", id, "path", path)
	return nil
}
