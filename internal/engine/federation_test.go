package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/federation"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

// federationGame gives terrans a planetary institute on 0x1, a trading
// station on -1x1 and a lab on 0x-1: seven power, one satellite apart.
func federationGame(t *testing.T) *Engine {
	t.Helper()
	e := setupGame(t, Options{})
	terrans := e.Players[0]
	e.Map.Get(hex.Coord{Q: 0, R: 1}).Building = board.Institute
	terrans.Demolish(board.Mine)
	terrans.Build(board.Institute, nil)
	for c, b := range map[hex.Coord]board.Building{
		{Q: -1, R: 1}: board.TradingStation,
		{Q: 0, R: -1}: board.ResearchLab,
	} {
		h := e.Map.Get(c)
		h.Building, h.Player = b, 0
		terrans.Build(b, nil)
	}
	terrans.Data.Qic = 3
	e.invalidate()
	return e
}

// formFirstFederation sends the first one-satellite federation on offer.
func formFirstFederation(t *testing.T, e *Engine) []hex.Coord {
	t.Helper()
	fed := findCommand(e, CmdFederation)
	require.NotNil(t, fed)
	var args []string
	for _, o := range fed.Options {
		if o.Cost == "1t" && o.Args[1] == "fed1" {
			args = o.Args
			break
		}
	}
	require.NotNil(t, args, "no one-satellite federation in %v", optionArgs(fed))
	hexes, err := federation.ParseKey(args[0])
	require.NoError(t, err)
	require.NoError(t, e.Move("terrans federation "+args[0]+" "+args[1]))
	return hexes
}

func TestFederationThroughMove(t *testing.T) {
	e := federationGame(t)
	terrans := e.Players[0]
	vp := terrans.Data.VP
	left := e.Tiles.Federations["fed1"]

	hexes := formFirstFederation(t, e)
	terrans = e.Players[0]
	require.Len(t, hexes, 4)
	for _, c := range hexes {
		h := e.Map.Get(c)
		if h.Occupied() {
			assert.True(t, h.Federated, c)
		} else {
			assert.True(t, h.HasSatellite(0), c)
		}
	}
	assert.False(t, e.Map.Get(hex.Coord{Q: -1, R: 3}).Federated)
	assert.Equal(t, 1, terrans.Data.Satellites)
	assert.Equal(t, 1, terrans.Data.Power.OnBoard)
	require.Len(t, terrans.Data.FedTokens, 1)
	assert.Equal(t, "fed1", terrans.Data.FedTokens[0].Tile)
	assert.True(t, terrans.Data.FedTokens[0].Green)
	assert.GreaterOrEqual(t, terrans.Data.VP, vp+12)
	assert.Equal(t, left-1, e.Tiles.Federations["fed1"])
	assert.True(t, terrans.Data.Power.Conserved())
	assert.Equal(t, 1, e.Current)
}

func TestFederationNeighboursAreExcluded(t *testing.T) {
	e := federationGame(t)
	formFirstFederation(t, e)

	req := e.federationRequest(0)
	require.Len(t, req.Buildings, 1)
	assert.Equal(t, hex.Coord{Q: -1, R: 3}, req.Buildings[0].Coord)
	assert.False(t, req.Passable(hex.Coord{Q: 0, R: 2}))
	assert.False(t, req.Passable(hex.Coord{Q: -1, R: 2}))
	assert.False(t, req.Passable(hex.Coord{Q: 1, R: -2}))
	assert.True(t, req.Passable(hex.Coord{Q: 2, R: 0}))
}

func TestBuildingNextToFederationJoinsIt(t *testing.T) {
	e := federationGame(t)
	formFirstFederation(t, e)
	require.NoError(t, e.Move("geodens pass "+e.Tiles.Boosters[0]))
	require.Equal(t, 0, e.Current)

	require.NoError(t, e.Move("terrans build m -2x1"))
	assert.True(t, e.Map.Get(hex.Coord{Q: -2, R: 1}).Federated)
	assert.False(t, e.Map.Get(hex.Coord{Q: -1, R: 3}).Federated)

	for _, b := range e.federationRequest(0).Buildings {
		assert.NotEqual(t, hex.Coord{Q: -2, R: 1}, b.Coord)
	}
	counted := e.facts(0)
	assert.EqualValues(t, 4, counted["federatedStructures"])
}
