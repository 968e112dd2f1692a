// arcade is a terminal arcade built around Color Run, an obstacle runner
// where the player survives by matching colors.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH and/or HTTP servers
//	arcade scores [game]     - Show high scores for a game, or a summary
//	arcade catalog [term]    - Print the game catalog
//	arcade config <game>     - Print or install a game's default config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/hue-arcade.db)
//	--verbose       - Log debug messages
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hue-arcade/internal/core"
	"github.com/vovakirdan/hue-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/hue-arcade/internal/games/colorrun"
	_ "github.com/vovakirdan/hue-arcade/internal/games/shield"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arcade"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Hue Arcade - color-matching games in your terminal",
	Long: `Hue Arcade is a terminal gaming platform. Its main game, Color Run,
sends colored blocks at you: match your color to pass through them.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH and HTTP servers for remote play
  scores   - View high scores
  catalog  - Print the game catalog
  config   - Print or install default game configs

Examples:
  arcade list
  arcade play colorrun
  arcade play shield --levels ./levels.json
  arcade menu --sound
  arcade serve --ssh :2222 --http :3000
  arcade scores colorrun`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Failure is a warning: games still run.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}
