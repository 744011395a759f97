/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [game_id]",
	Short: "Start the interactive shell for a game",
	Long: `Opens a stored game in a terminal UI. Moves typed at the prompt are run
and stored like 'gaia move' does; tab completes from the commands legal now.
Usage:
	> terrans build m 0x1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db, s, err := openGame(args[0])
		if err != nil {
			fail("loading game: %v", err)
		}
		defer db.Close()
		defer s.Close()

		g, err := db.GetGame(args[0])
		if err != nil {
			fail("loading game: %v", err)
		}

		if err := RunTUI(s, g.Name); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
