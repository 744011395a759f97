package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/parser"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// legalMoves spells out every available option as move text.
func legalMoves(e *Engine) []string {
	var out []string
	for _, a := range e.AvailableCommands() {
		prefix := e.PlayerName(a.Player) + " " + a.Name
		if len(a.Options) == 0 {
			out = append(out, prefix)
			continue
		}
		for _, o := range a.Options {
			text := prefix
			if len(o.Args) > 0 {
				text += " " + strings.Join(o.Args, " ")
			}
			if a.Name == CmdBurn {
				text += " 1"
			}
			out = append(out, text)
		}
	}
	return out
}

func TestRandomGameConservesPower(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		rng := rand.New(rand.NewSource(seed))
		e := setupGame(t, Options{AutoIncome: true})
		for i := 0; i < 300 && e.Phase != PhaseEndGame; i++ {
			moves := legalMoves(e)
			if len(moves) == 0 {
				break
			}
			m := moves[rng.Intn(len(moves))]
			err := e.Move(m)
			var broken *InvariantError
			require.False(t, errors.As(err, &broken), "seed %d move %q: %v", seed, m, err)
			for _, p := range e.Players {
				require.True(t, p.Data.Power.Conserved(), "seed %d after %q: %+v", seed, m, p.Data.Power)
			}
		}
		assert.Empty(t, e.Broken)
	}
}

func TestRestoredGameFollowsOriginal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	e := setupGame(t, Options{})
	data, err := e.Snapshot()
	require.NoError(t, err)
	restored, err := Restore(data, nil)
	require.NoError(t, err)

	for i := 0; i < 40 && e.Phase != PhaseEndGame; i++ {
		moves := legalMoves(e)
		require.NotEmpty(t, moves)
		m := moves[rng.Intn(len(moves))]

		errA, errB := e.Move(m), restored.Move(m)
		assert.Equal(t, errA == nil, errB == nil, m)

		a, err := e.Snapshot()
		require.NoError(t, err)
		b, err := restored.Snapshot()
		require.NoError(t, err)
		require.JSONEq(t, string(a), string(b), "after %q", m)
	}
}

func TestBadRewardKeepsCause(t *testing.T) {
	e := setupGame(t, Options{})

	err := e.Move("terrans spend 1zz for 1c")
	var pe *parser.ParseError
	require.ErrorAs(t, err, &pe)
	var re *reward.ParseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "1zz", re.Token)
	assert.Contains(t, err.Error(), "1zz")
}

func TestGaiaFormerUsesBrainstone(t *testing.T) {
	e := setupGame(t, Options{})
	transdim := hex.Coord{Q: 1, R: 0}
	e.Map.Get(transdim).Planet = board.Transdim
	e.Players[0].Data.Power = player.NewPower(5, 0, 0, player.Area1)
	e.invalidate()

	require.Contains(t, optionArgs(findCommand(e, CmdBuild)), []string{"gf", "1x0"})
	require.NoError(t, e.Move("terrans build gf 1x0"))

	power := e.Players[0].Data.Power
	assert.Equal(t, player.AreaGaia, power.Brainstone)
	assert.Equal(t, 5, power.Gaia)
	assert.Equal(t, 0, power.Tokens())
	assert.True(t, power.Conserved())
	assert.Empty(t, e.Pending)
}

func TestGaiaFormerNeedsEnoughTokens(t *testing.T) {
	e := setupGame(t, Options{})
	e.Map.Get(hex.Coord{Q: 1, R: 0}).Planet = board.Transdim
	e.Players[0].Data.Power = player.NewPower(5, 0, 0, player.NoArea)
	e.invalidate()

	assert.NotContains(t, optionArgs(findCommand(e, CmdBuild)), []string{"gf", "1x0"})
}

func TestLogNamesAutomaticSteps(t *testing.T) {
	e := setupGame(t, Options{AutoIncome: true})
	require.NoError(t, e.Move("terrans pass "+firstArgs(t, e, CmdPass)[0]))
	require.NoError(t, e.Move("geodens pass "+firstArgs(t, e, CmdPass)[0]))
	require.Equal(t, 2, e.Round)

	pass := e.Log[len(e.Log)-1]
	for _, entry := range e.Log {
		if strings.HasPrefix(entry.Command, "pass") && entry.Player == 0 {
			pass = entry
		}
	}
	assert.Equal(t, 0, pass.By)

	income := map[int]bool{}
	for _, entry := range e.Log {
		if entry.Command == "income" {
			assert.Equal(t, board.NoPlayer, entry.By)
			income[entry.Player] = true
		}
	}
	assert.True(t, income[0])
	assert.True(t, income[1])
}

func TestLogRecordsOtherSeats(t *testing.T) {
	e := setupGame(t, Options{})
	before := e.playerData()
	e.Players[0].Data.Credits++
	e.Players[1].Data.VP -= 2

	e.record(0, PassCmd{}, before)
	entries := e.Log[len(e.Log)-2:]
	assert.Equal(t, 0, entries[0].Player)
	assert.Equal(t, 0, entries[0].By)
	assert.Equal(t, 1, entries[0].Changes["c"])
	assert.Equal(t, 1, entries[1].Player)
	assert.Equal(t, 0, entries[1].By)
	assert.Equal(t, -2, entries[1].Changes["vp"])
}
