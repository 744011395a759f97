/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move [game_id] [move text...]",
	Short: "Play a move in a stored game",
	Long: `Runs one move against a stored game. The move is stored when the engine
accepts it, also when it leaves the turn open for more commands.

Example:
	gaia move 1c9e... terrans build m 0x1`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db, s, err := openGame(args[0])
		if err != nil {
			fail("loading game: %v", err)
		}
		defer db.Close()
		defer s.Close()

		text := strings.Join(args[1:], " ")
		g, err := s.Execute(text)

		var incomplete *engine.IncompleteMoveError
		var illegal *engine.IllegalMoveError
		switch {
		case err == nil:
			fmt.Printf("Accepted: %s\n", text)
		case errors.As(err, &incomplete):
			fmt.Printf("Accepted, the turn goes on: %s\n", text)
		case errors.As(err, &illegal):
			fmt.Println(errorStyle.Render(err.Error()))
			fmt.Println(renderAvailable(g))
			os.Exit(1)
		default:
			fail("%v", err)
		}
		fmt.Println(renderGame(g))
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
