/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check that every game log in a directory replays deterministically",
	Long: `Replays every .jsonl game log in the directory twice, and once more from
a snapshot round trip, and compares the digests of the resulting states.
Exits with status 1 when any log fails.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib := persistence.NewLibrary(args[0])
		names, err := lib.List()
		if err != nil {
			fail("listing %s: %v", args[0], err)
		}
		if len(names) == 0 {
			fmt.Println("No game logs found.")
			return
		}
		cat, err := loadCatalog()
		if err != nil {
			fail("loading catalog: %v", err)
		}

		bar := progressbar.Default(int64(len(names)), "Verifying")
		var failed []string
		for _, name := range names {
			if err := verifyLog(lib, name, cat); err != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			}
			_ = bar.Add(1)
		}

		fmt.Printf("\n%d of %d logs replay deterministically\n", len(names)-len(failed), len(names))
		for _, f := range failed {
			fmt.Println(errorStyle.Render(f))
		}
		if len(failed) > 0 {
			os.Exit(1)
		}
	},
}

func verifyLog(lib *persistence.Library, name string, cat *catalog.Catalog) error {
	store, err := lib.Open(name)
	if err != nil {
		return err
	}
	opts, moves, err := store.Load()
	store.Close()
	if err != nil {
		return err
	}

	digest := func() (string, []byte, error) {
		g, err := engine.Replay(opts, moves, cat)
		if err != nil {
			return "", nil, err
		}
		data, err := g.Snapshot()
		if err != nil {
			return "", nil, err
		}
		return persistence.Digest(data), data, nil
	}
	first, data, err := digest()
	if err != nil {
		return err
	}
	second, _, err := digest()
	if err != nil {
		return err
	}
	if first != second {
		return fmt.Errorf("replays differ: %s != %s", first, second)
	}

	restored, err := engine.Restore(data, cat)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	again, err := restored.Snapshot()
	if err != nil {
		return err
	}
	if d := persistence.Digest(again); d != first {
		return fmt.Errorf("snapshot round trip differs: %s != %s", first, d)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
