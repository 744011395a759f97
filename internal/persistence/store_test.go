package persistence

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
)

func TestLogStoreAppendLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.jsonl")

	store, err := NewLogStore(path)
	require.NoError(t, err)
	defer store.Close()

	opts := engine.Options{Players: 2, Seed: "abc", AutoIncome: true}
	require.NoError(t, store.Init(opts))
	require.NoError(t, store.Append("p1 faction terrans"))
	require.NoError(t, store.Append("p2 faction geodens"))

	got, moves, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, opts, got)
	assert.Equal(t, []string{"p1 faction terrans", "p2 faction geodens"}, moves)

	assert.Error(t, store.Init(opts), "a log has a single header")
}

func TestLogStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.jsonl")
	store, err := NewLogStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Init(engine.Options{Players: 3, Seed: "x"}))
	require.NoError(t, store.Append("p1 faction xenos"))
	require.NoError(t, store.Close())

	store, err = NewLogStore(path)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Append("p2 faction ivits"))

	opts, moves, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Players)
	assert.Equal(t, []string{"p1 faction xenos", "p2 faction ivits"}, moves)
}

func TestReadLogErrors(t *testing.T) {
	_, _, err := ReadLog(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, _, err = ReadLog(strings.NewReader(`{"type":"move","data":{"text":"p1 pass"}}` + "\n"))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, _, err = ReadLog(strings.NewReader(`{"type":"roll","data":{}}` + "\n"))
	assert.ErrorContains(t, err, "unknown record type")

	_, _, err = ReadLog(strings.NewReader("not json\n"))
	assert.Error(t, err)
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "games"))

	store, err := lib.Create("first")
	require.NoError(t, err)
	require.NoError(t, store.Init(engine.Options{Players: 2, Seed: "1"}))
	require.NoError(t, store.Close())

	_, err = lib.Create("first")
	assert.Error(t, err)

	store, err = lib.Create("second")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	names, err := lib.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, names)

	store, err = lib.Open("first")
	require.NoError(t, err)
	opts, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1", opts.Seed)
	require.NoError(t, store.Close())

	_, err = lib.Open("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}
