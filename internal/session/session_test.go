package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
)

var setupMoves = []string{
	"p1 faction terrans",
	"p2 faction geodens",
	"terrans build m 0x1",
	"geodens build m 2x-1",
	"geodens build m -3x-1",
	"terrans build m -1x3",
}

func newLogSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.jsonl")
	store, err := persistence.NewLogStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Init(engine.Options{Players: 2, Seed: "session"}))
	s, err := NewSession(store, nil)
	require.NoError(t, err)
	return s, path
}

// playSetup runs the setup moves and picks the first booster offered.
func playSetup(t *testing.T, s *Session) {
	t.Helper()
	for _, m := range setupMoves {
		_, err := s.Execute(m)
		require.NoError(t, err, m)
	}
	for i := 0; i < 2; i++ {
		avail := s.Available()
		require.Len(t, avail, 1)
		name := s.Engine().PlayerName(avail[0].Player)
		_, err := s.Execute(name + " booster " + avail[0].Options[0].Args[0])
		require.NoError(t, err)
	}
}

func TestExecutePersistsAcceptedMoves(t *testing.T) {
	s, path := newLogSession(t)
	playSetup(t, s)
	assert.Equal(t, 8, s.Moves())

	_, err := s.Execute("terrans build m 99x99")
	var illegal *engine.IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, 8, s.Moves())

	before, err := s.Snapshot()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	store, err := persistence.NewLogStore(path)
	require.NoError(t, err)
	reopened, err := NewSession(store, nil)
	require.NoError(t, err)
	defer reopened.Close()

	after, err := reopened.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, engine.PhaseRoundMove, reopened.Engine().Phase)
}

func TestIncompleteMovesArePersisted(t *testing.T) {
	s, path := newLogSession(t)
	playSetup(t, s)

	_, err := s.Execute("terrans burn 1")
	var incomplete *engine.IncompleteMoveError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 9, s.Moves())
	require.NoError(t, s.Close())

	store, err := persistence.NewLogStore(path)
	require.NoError(t, err)
	reopened, err := NewSession(store, nil)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.Engine().Turn.Open)
	assert.Equal(t, 0, reopened.Engine().Current)
}

func TestDatabaseSessionUsesSnapshots(t *testing.T) {
	db, err := persistence.OpenDB(filepath.Join(t.TempDir(), "gaia.db"))
	require.NoError(t, err)
	defer db.Close()

	g, err := db.CreateGame("snap", engine.Options{Players: 2, Seed: "session"})
	require.NoError(t, err)
	s, err := NewSession(db.Log(g.ID), nil)
	require.NoError(t, err)
	playSetup(t, s)

	_, err = s.Execute("terrans pass " + passBooster(t, s))
	require.NoError(t, err)
	_, err = s.Execute("geodens pass " + passBooster(t, s))
	require.NoError(t, err)
	assert.Equal(t, 10, s.Moves())

	snap, err := db.LatestSnapshot(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, snap.MoveCount)

	want, err := s.Snapshot()
	require.NoError(t, err)
	reopened, err := NewSession(db.Log(g.ID), nil)
	require.NoError(t, err)
	got, err := reopened.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, 2, reopened.Engine().Round)
}

func passBooster(t *testing.T, s *Session) string {
	t.Helper()
	for _, a := range s.Available() {
		if a.Name == engine.CmdPass {
			return a.Options[0].Args[0]
		}
	}
	t.Fatal("pass not available")
	return ""
}

func TestBrokenGameIsMarked(t *testing.T) {
	db, err := persistence.OpenDB(filepath.Join(t.TempDir(), "gaia.db"))
	require.NoError(t, err)
	defer db.Close()

	g, err := db.CreateGame("broken", engine.Options{Players: 2, Seed: "session"})
	require.NoError(t, err)
	s, err := NewSession(db.Log(g.ID), nil)
	require.NoError(t, err)
	playSetup(t, s)

	s.Engine().Players[0].Data.Power.Area1 += 5
	_, err = s.Execute("terrans pass " + passBooster(t, s))
	var broken *engine.InvariantError
	require.ErrorAs(t, err, &broken)

	stored, err := db.GetGame(g.ID)
	require.NoError(t, err)
	assert.Equal(t, persistence.GameStatusBroken, stored.Status)
	assert.Equal(t, 8, stored.Moves)
}
