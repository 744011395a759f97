/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
	"github.com/boardgamers/gaia-project-sub000/internal/session"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [file] [name]",
	Short: "Store a move log as a new game",
	Long: `Creates a game from a .jsonl game log or a plain move list (see
'gaia replay') and plays every move into it. Importing stops at the first
move the engine rejects; the moves before it stay stored.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		opts, moves, err := readMoveFile(cmd, args[0])
		if err != nil {
			fail("reading %s: %v", args[0], err)
		}
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if len(args) == 2 {
			name = args[1]
		}
		cat, err := loadCatalog()
		if err != nil {
			fail("loading catalog: %v", err)
		}

		db, err := openDB()
		if err != nil {
			fail("opening database: %v", err)
		}
		defer db.Close()

		g, err := db.CreateGame(name, opts)
		if err != nil {
			fail("creating game: %v", err)
		}
		s, err := session.NewSession(db.Log(g.ID), cat)
		if err != nil {
			fail("starting game: %v", err)
		}
		defer s.Close()

		for i, text := range moves {
			_, err := s.Execute(text)
			var incomplete *engine.IncompleteMoveError
			if err != nil && !errors.As(err, &incomplete) {
				fmt.Printf("Imported %d of %d moves into %s\n", i, len(moves), g.ID)
				fail("move %d %q: %v", i+1, text, err)
			}
		}
		fmt.Printf("Imported %d moves into game %s (%s)\n", len(moves), g.ID, g.Name)
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [game_id] [file]",
	Short: "Write a stored game as a JSONL move log",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		db, err := openDB()
		if err != nil {
			fail("opening database: %v", err)
		}
		defer db.Close()

		opts, moves, err := db.Log(args[0]).Load()
		if err != nil {
			fail("loading game: %v", err)
		}

		store, err := persistence.NewLogStore(args[1])
		if err != nil {
			fail("opening %s: %v", args[1], err)
		}
		defer store.Close()
		if err := store.Init(opts); err != nil {
			fail("writing header: %v", err)
		}
		for _, text := range moves {
			if err := store.Append(text); err != nil {
				fail("writing move: %v", err)
			}
		}
		fmt.Printf("Exported %d moves to %s\n", len(moves), args[1])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	addOptionFlags(importCmd)
}
