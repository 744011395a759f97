package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
)

func optionCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addOptionFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestReadMoveFileWithOptionsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	content := "{\"players\":3,\"seed\":\"abc\"}\n# setup\np1 faction terrans\n\np2 faction geodens\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	opts, moves, err := readMoveFile(optionCommand(t), path)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Players)
	assert.Equal(t, "abc", opts.Seed)
	assert.Equal(t, engine.LayoutStandard, opts.Layout)
	assert.Equal(t, []string{"p1 faction terrans", "p2 faction geodens"}, moves)
}

func TestReadMoveFileFallsBackToFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	require.NoError(t, os.WriteFile(path, []byte("p1 faction terrans\n"), 0644))

	opts, moves, err := readMoveFile(optionCommand(t, "--players", "4", "--seed", "flags"), path)
	require.NoError(t, err)
	assert.Equal(t, 4, opts.Players)
	assert.Equal(t, "flags", opts.Seed)
	assert.Len(t, moves, 1)
}

func TestReadMoveFileReadsGameLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.jsonl")
	store, err := persistence.NewLogStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Init(engine.Options{Players: 2, Seed: "log"}))
	require.NoError(t, store.Append("p1 faction terrans"))
	require.NoError(t, store.Close())

	opts, moves, err := readMoveFile(optionCommand(t), path)
	require.NoError(t, err)
	assert.Equal(t, "log", opts.Seed)
	assert.Equal(t, []string{"p1 faction terrans"}, moves)
}

func TestSuggestionsAreLegalMoves(t *testing.T) {
	g, err := engine.New(engine.Options{Players: 2, Seed: "suggest"}, nil)
	require.NoError(t, err)

	list := suggestions(g)
	require.NotEmpty(t, list)
	assert.Contains(t, list, "p1 faction terrans")
	require.NoError(t, g.Move(list[0]))
}
