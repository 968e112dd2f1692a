package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hue-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game and the play flags it accepts.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	rows := make([][3]string, 0, len(games))
	idW, titleW := len("ID"), len("Title")
	for _, info := range games {
		g, err := registry.Create(info.ID)
		if err != nil {
			return err
		}
		rows = append(rows, [3]string{info.ID, info.Title, strings.Join(playFlags(g), " ")})
		idW = max(idW, len(info.ID))
		titleW = max(titleW, len(info.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Flags")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "-----")
	for _, r := range rows {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, r[0], titleW, r[1], r[2])
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}

// playFlags lists the optional play flags a game honours.
func playFlags(g registry.Game) []string {
	var flags []string
	if _, ok := g.(registry.Tunable); ok {
		flags = append(flags, "--config", "--difficulty")
	}
	if _, ok := g.(levelsSetter); ok {
		flags = append(flags, "--levels")
	}
	return flags
}
