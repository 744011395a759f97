/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored games",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDB()
		if err != nil {
			fail("opening database: %v", err)
		}
		defer db.Close()

		games, err := db.ListGames()
		if err != nil {
			fail("listing games: %v", err)
		}
		if len(games) == 0 {
			fmt.Println("No games yet. Start one with 'gaia new'.")
			return
		}

		rows := [][]string{{"id", "name", "players", "status", "moves", "updated"}}
		for _, g := range games {
			rows = append(rows, []string{
				g.ID,
				g.Name,
				fmt.Sprint(g.Options.Players),
				string(g.Status),
				fmt.Sprint(g.Moves),
				g.UpdatedAt.Format("2006-01-02 15:04"),
			})
		}
		fmt.Println(renderTable(rows, -1))
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [game_id]",
	Short: "Delete a stored game with its moves and snapshots",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDB()
		if err != nil {
			fail("opening database: %v", err)
		}
		defer db.Close()

		if err := db.DeleteGame(args[0]); err != nil {
			fail("deleting game: %v", err)
		}
		fmt.Printf("Deleted game %s\n", args[0])
	},
}

// renderTable aligns rows in columns. The first row is the header; the
// row at highlight, if any, is drawn in the active style.
func renderTable(rows [][]string, highlight int) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = lipgloss.NewStyle().Width(widths[j]).Render(cell)
		}
		line := strings.Join(cells, "  ")
		switch i {
		case 0:
			line = headerStyle.Render(line)
		case highlight:
			line = activeStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}
