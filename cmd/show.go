/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [game_id]",
	Short: "Rebuild a game and print its state",
	Long: `Replays the stored moves of a game (from its latest snapshot when one
exists) and prints the scoreboard with the commands legal now.

--json prints the full engine state, --moves the stored move texts and --log
the advanced log with the resources every command changed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		moves, _ := cmd.Flags().GetBool("moves")
		advanced, _ := cmd.Flags().GetBool("log")

		db, s, err := openGame(args[0])
		if err != nil {
			fail("loading game: %v", err)
		}
		defer db.Close()
		defer s.Close()

		g := s.Engine()
		switch {
		case asJSON:
			data, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				fail("encoding state: %v", err)
			}
			fmt.Println(string(data))
		case moves:
			for i, m := range g.Moves {
				fmt.Printf("%4d  %s\n", i+1, m)
			}
		case advanced:
			for _, entry := range g.Log {
				keys := make([]string, 0, len(entry.Changes))
				for k := range entry.Changes {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				changes := make([]string, 0, len(keys))
				for _, k := range keys {
					changes = append(changes, fmt.Sprintf("%+d%s", entry.Changes[k], k))
				}
				what := entry.Command
				if entry.By != entry.Player && entry.By != board.NoPlayer {
					what += " (" + g.PlayerName(entry.By) + ")"
				}
				fmt.Printf("%4d  r%d %-14s %-10s %s  %s\n", entry.Move, entry.Round, entry.Phase,
					g.PlayerName(entry.Player), what, strings.Join(changes, ","))
			}
		default:
			fmt.Println(renderGame(g))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("json", false, "print the full engine state as JSON")
	showCmd.Flags().Bool("moves", false, "print the move history")
	showCmd.Flags().Bool("log", false, "print the advanced log")
}
