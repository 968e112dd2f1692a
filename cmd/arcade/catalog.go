package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hue-arcade/internal/catalog"
)

var flagCatalogPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog [term]",
	Short: "Print the game catalog as JSON",
	Long: `Print the catalog served at /games.json by 'arcade serve'.

The registered games are listed first, followed by any entries from
--file that are not already present. A term filters by name, ignoring case.

Examples:
  arcade catalog
  arcade catalog run
  arcade catalog --file ./public/games.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagCatalogPath, "file", "", "Extra games.json to merge in")
}

func runCatalog(_ *cobra.Command, args []string) error {
	entries := catalog.FromRegistry()
	if flagCatalogPath != "" {
		extra, err := catalog.Load(flagCatalogPath)
		if err != nil {
			return err
		}
		entries = catalog.Merge(entries, extra)
	}
	if len(args) == 1 {
		entries = catalog.Filter(entries, args[0])
	}
	return catalog.Encode(os.Stdout, entries)
}
