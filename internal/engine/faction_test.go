package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
)

// seatFaction gives the first seat to f. The two terrans mines on 0x1 and
// -1x3 stay on the map and count as f's mines.
func seatFaction(t *testing.T, e *Engine, f faction.Faction) *player.Player {
	t.Helper()
	b, err := faction.Resolve(e.cat, f)
	require.NoError(t, err)
	p := player.New(0, b, e.cat)
	p.Build(board.Mine, nil)
	p.Build(board.Mine, nil)
	e.Players[0] = p
	e.invalidate()
	return p
}

// placeInstitute puts the planetary institute of the first seat on 0x-1.
func placeInstitute(e *Engine, p *player.Player) *board.Hex {
	h := e.Map.Get(hex.Coord{Q: 0, R: -1})
	h.Building, h.Player = board.Institute, 0
	p.Build(board.Institute, nil)
	e.invalidate()
	return h
}

func TestLantidsAreNotOffered(t *testing.T) {
	e, err := New(Options{Players: 2, Seed: "x"}, nil)
	require.NoError(t, err)

	opts := optionArgs(findCommand(e, CmdFaction))
	assert.Contains(t, opts, []string{"terrans"})
	assert.NotContains(t, opts, []string{"lantids"})
}

func TestFiraksTurnLabIntoTradingStation(t *testing.T) {
	e := setupGame(t, Options{})
	firaks := seatFaction(t, e, faction.Firaks)
	e.Map.Get(hex.Coord{Q: 0, R: 1}).Building = board.ResearchLab
	firaks.Demolish(board.Mine)
	firaks.Build(board.ResearchLab, nil)
	placeInstitute(e, firaks)

	require.Contains(t, optionArgs(findCommand(e, CmdSpecial)), []string{"1down-lab"})
	require.NoError(t, e.Move("firaks special 1down-lab. build ts 0x1. up sci"))

	firaks = e.Players[0]
	assert.Equal(t, board.TradingStation, e.Map.Get(hex.Coord{Q: 0, R: 1}).Building)
	assert.Equal(t, 0, firaks.Data.Buildings[board.ResearchLab])
	assert.Equal(t, 1, firaks.Data.Buildings[board.TradingStation])
	assert.Equal(t, 1, firaks.Data.Research[board.Science])
	assert.Equal(t, 1, e.Current)
}

func TestFiraksActionNeedsALab(t *testing.T) {
	e := setupGame(t, Options{})
	firaks := seatFaction(t, e, faction.Firaks)
	placeInstitute(e, firaks)

	special := findCommand(e, CmdSpecial)
	if special != nil {
		assert.NotContains(t, optionArgs(special), []string{"1down-lab"})
	}
}

func TestAmbasSwapInstituteWithMine(t *testing.T) {
	e := setupGame(t, Options{})
	ambas := seatFaction(t, e, faction.Ambas)
	pi := placeInstitute(e, ambas).Coord

	require.NoError(t, e.Move("ambas special 1swap-pi. build PI 0x1"))

	ambas = e.Players[0]
	assert.Equal(t, board.Mine, e.Map.Get(pi).Building)
	assert.Equal(t, board.Institute, e.Map.Get(hex.Coord{Q: 0, R: 1}).Building)
	assert.Equal(t, 2, ambas.Data.Buildings[board.Mine])
	assert.Equal(t, 1, ambas.Data.Buildings[board.Institute])
}

func TestBescodsAdvanceLowestTrack(t *testing.T) {
	e := setupGame(t, Options{})
	bescods := seatFaction(t, e, faction.Bescods)
	for _, f := range board.Fields {
		bescods.Data.Research[f] = 1
	}
	bescods.Data.Research[board.Economy] = 0
	e.invalidate()

	err := e.Move("bescods special 1up-lowest")
	var incomplete *IncompleteMoveError
	require.ErrorAs(t, err, &incomplete)
	assert.True(t, incomplete.Pending[0].Lowest)
	assert.Equal(t, [][]string{{"eco"}}, optionArgs(findCommand(e, CmdUp)))

	require.NoError(t, e.Move("bescods up eco"))
	assert.Equal(t, 1, e.Players[0].Data.Research[board.Economy])
}

func TestBescodsTitaniumPower(t *testing.T) {
	e := setupGame(t, Options{})
	bescods := seatFaction(t, e, faction.Bescods)
	mine := e.Map.Get(hex.Coord{Q: 0, R: 1})
	mine.Planet = board.Titanium

	assert.Equal(t, 1, e.buildingPower(0, mine))
	placeInstitute(e, bescods)
	assert.Equal(t, 2, e.buildingPower(0, mine))
}

func TestNevlasPowerConversions(t *testing.T) {
	e := setupGame(t, Options{})
	nevlas := seatFaction(t, e, faction.Nevlas)
	nevlas.Data.Power = player.NewPower(0, 2, 3, player.NoArea)
	e.invalidate()
	knowledge := nevlas.Data.Knowledge

	var incomplete *IncompleteMoveError
	require.ErrorAs(t, e.Move("nevlas spend 1t-a3 for 1k"), &incomplete)
	nevlas = e.Players[0]
	assert.Equal(t, 2, nevlas.Data.Power.Area3)
	assert.Equal(t, 1, nevlas.Data.Power.Gaia)
	assert.Equal(t, knowledge+1, nevlas.Data.Knowledge)
	assert.True(t, nevlas.Data.Power.Conserved())

	placeInstitute(e, nevlas)
	require.ErrorAs(t, e.Move("nevlas spend 4pw for 1k"), &incomplete)
	nevlas = e.Players[0]
	assert.Equal(t, 0, nevlas.Data.Power.Area3)
	assert.Equal(t, knowledge+2, nevlas.Data.Knowledge)
	assert.True(t, nevlas.Data.Power.Conserved())
}

func TestItarsTradeGaiaTokensForTech(t *testing.T) {
	e := setupGame(t, Options{})
	itars := seatFaction(t, e, faction.Itars)
	placeInstitute(e, itars)
	require.NoError(t, itars.Data.Power.MoveToGaia(5))

	e.gaiaPhase()
	require.Len(t, e.Pending, 1)
	assert.Equal(t, FollowTech, e.Pending[0].Kind)
	assert.Equal(t, 0, e.Pending[0].Player)
	assert.Equal(t, 4, itars.Data.Power.Supply)
	assert.Equal(t, 0, itars.Data.Power.Gaia)
	assert.True(t, itars.Data.Power.Conserved())

	e.invalidate()
	assert.NotNil(t, findCommand(e, CmdTech))
}

func TestItarsBurnIntoGaiaArea(t *testing.T) {
	e := setupGame(t, Options{})
	itars := seatFaction(t, e, faction.Itars)
	itars.Data.Power = player.NewPower(0, 4, 0, player.NoArea)
	e.invalidate()

	var incomplete *IncompleteMoveError
	require.ErrorAs(t, e.Move("itars burn 1"), &incomplete)
	itars = e.Players[0]
	assert.Equal(t, 1, itars.Data.Power.Area3)
	assert.Equal(t, 1, itars.Data.Power.Gaia)
	assert.Equal(t, 0, itars.Data.Power.Supply)
	assert.True(t, itars.Data.Power.Conserved())
}

func TestGleensTokenIsGray(t *testing.T) {
	e := setupGame(t, Options{})
	gleens := seatFaction(t, e, faction.Gleens)

	e.takeFederation(0, "gleens")
	require.Len(t, gleens.Data.FedTokens, 1)
	assert.False(t, gleens.Data.FedTokens[0].Green)
	assert.False(t, gleens.HasGreenToken())

	e.takeFederation(0, "fed1")
	require.Len(t, gleens.Data.FedTokens, 2)
	assert.True(t, gleens.Data.FedTokens[1].Green)
	assert.True(t, gleens.HasGreenToken())
}
