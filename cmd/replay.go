/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Replay a move log and print the final state",
	Long: `Replays a move log without storing it. A .jsonl file is read as a
game log with its options header. Any other file holds one move per line;
its first line may be the options as JSON, otherwise the option flags are
used.

The digest of the final state is printed so two replays can be compared.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, moves, err := readMoveFile(cmd, args[0])
		if err != nil {
			fail("reading %s: %v", args[0], err)
		}
		cat, err := loadCatalog()
		if err != nil {
			fail("loading catalog: %v", err)
		}
		g, err := engine.Replay(opts, moves, cat)
		if err != nil {
			fail("replaying: %v", err)
		}
		data, err := g.Snapshot()
		if err != nil {
			fail("encoding state: %v", err)
		}
		fmt.Println(renderGame(g))
		fmt.Printf("\nDigest: %s\n", persistence.Digest(data))
	},
}

// readMoveFile reads either a JSONL game log or a plain list of moves.
func readMoveFile(cmd *cobra.Command, path string) (engine.Options, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.Options{}, nil, err
	}
	defer f.Close()

	if filepath.Ext(path) == ".jsonl" {
		return persistence.ReadLog(f)
	}

	var (
		opts   engine.Options
		moves  []string
		header bool
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !header && len(moves) == 0 && strings.HasPrefix(line, "{") {
			if err := json.Unmarshal([]byte(line), &opts); err != nil {
				return opts, nil, fmt.Errorf("bad options line: %w", err)
			}
			header = true
			continue
		}
		moves = append(moves, line)
	}
	if err := scanner.Err(); err != nil {
		return opts, nil, err
	}
	if !header {
		if opts, err = optionsFromFlags(cmd); err != nil {
			return opts, nil, err
		}
	}
	if err := opts.Validate(); err != nil {
		return opts, nil, err
	}
	return opts, moves, nil
}

func init() {
	rootCmd.AddCommand(replayCmd)
	addOptionFlags(replayCmd)
}
