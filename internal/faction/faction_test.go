package faction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

func TestResolveEveryFaction(t *testing.T) {
	c := catalog.Default()
	for _, f := range All {
		b, err := Resolve(c, f)
		require.NoError(t, err, f)
		assert.True(t, b.Planet.Habitable(), f)
		assert.Len(t, b.Buildings, len(board.Buildings), f)
		assert.Len(t, b.Building(board.Mine).Income, 8, f)
		assert.NotEmpty(t, b.Conversions, f)
	}
}

func TestResolveOverrides(t *testing.T) {
	c := catalog.Default()

	lantids, err := Resolve(c, Lantids)
	require.NoError(t, err)
	assert.Equal(t, 13, reward.Count(lantids.Resources, reward.Credit))
	assert.Equal(t, catalog.Power{Area1: 4}, lantids.Power)

	xenos, err := Resolve(c, Xenos)
	require.NoError(t, err)
	assert.Equal(t, 1, xenos.Research[board.Intelligence])
	assert.Equal(t, "+4pw,1q", xenos.Building(board.Institute).Income[0][0].String())

	bescods, err := Resolve(c, Bescods)
	require.NoError(t, err)
	assert.Equal(t, "+1k", bescods.Building(board.TradingStation).Income[0][0].String())

	taklons, err := Resolve(c, Taklons)
	require.NoError(t, err)
	assert.Equal(t, "area1", taklons.Brainstone)

	terrans, err := Resolve(c, Terrans)
	require.NoError(t, err)
	ts := terrans.Building(board.TradingStation)
	assert.Equal(t, "3c,2o", reward.Join(ts.Cost))
	assert.Equal(t, "6c,2o", reward.Join(ts.IsolatedCost))
	assert.Equal(t, "1tech", reward.Join(terrans.Building(board.ResearchLab).Gain))
}

func TestParse(t *testing.T) {
	f, err := Parse("hadsch-hallas")
	require.NoError(t, err)
	assert.Equal(t, HadschHallas, f)

	_, err = Parse("martians")
	assert.Error(t, err)
}

func TestStrategies(t *testing.T) {
	assert.Equal(t, 6, Xenos.Strategy().FederationThreshold(7, true))
	assert.Equal(t, 7, Xenos.Strategy().FederationThreshold(7, false))
	assert.Equal(t, 7, Terrans.Strategy().FederationThreshold(7, true))

	assert.True(t, Terrans.Strategy().GaiaTokensToArea2())
	assert.False(t, Nevlas.Strategy().GaiaTokensToArea2())

	assert.Equal(t, 3, Xenos.Strategy().SetupMines())
	assert.Equal(t, 0, Ivits.Strategy().SetupMines())
	assert.True(t, Ivits.Strategy().SetupInstitute())

	gained := Gleens.Strategy().ConvertGain(reward.MustParse("2q,1k"), false)
	assert.Equal(t, "2o,1k", reward.Join(gained))
	gained = Gleens.Strategy().ConvertGain(reward.MustParse("2q"), true)
	assert.Equal(t, "2q", reward.Join(gained))

	assert.True(t, Taklons.Strategy().LeechTokenChoice(true))
	assert.False(t, Taklons.Strategy().LeechTokenChoice(false))
	assert.Equal(t, "3k", reward.Join(Geodens.Strategy().NewPlanetTypeBonus(true)))
	assert.Len(t, HadschHallas.Strategy().PIConversions(), 3)

	bal, err := Resolve(catalog.Default(), BalTaks)
	require.NoError(t, err)
	last := bal.Conversions[len(bal.Conversions)-1]
	assert.Equal(t, "1gf for 1q", last.String())
}

func TestLateFactionStrategies(t *testing.T) {
	assert.Equal(t, 1, Nevlas.Strategy().PowerValue(false))
	assert.Equal(t, 2, Nevlas.Strategy().PowerValue(true))
	assert.Equal(t, 1, Terrans.Strategy().PowerValue(true))

	assert.True(t, Itars.Strategy().BurnToGaia())
	assert.False(t, Taklons.Strategy().BurnToGaia())
	assert.Equal(t, 4, Itars.Strategy().GaiaTechTrade(true))
	assert.Equal(t, 0, Itars.Strategy().GaiaTechTrade(false))

	assert.Equal(t, 1, Bescods.Strategy().PlanetPower(board.Titanium, true))
	assert.Equal(t, 0, Bescods.Strategy().PlanetPower(board.Titanium, false))
	assert.Equal(t, 0, Bescods.Strategy().PlanetPower(board.Ice, true))

	assert.False(t, Lantids.Selectable())
	assert.True(t, Firaks.Selectable())
}

func TestFactionActions(t *testing.T) {
	c := catalog.Default()

	nevlas, err := Resolve(c, Nevlas)
	require.NoError(t, err)
	assert.Equal(t, "1t-a3 for 1k", nevlas.Conversions[len(nevlas.Conversions)-1].String())

	firaks, err := Resolve(c, Firaks)
	require.NoError(t, err)
	pi := firaks.Building(board.Institute).Income[0]
	require.Len(t, pi, 2)
	assert.Equal(t, reward.Activate, pi[1].Operator)
	assert.Equal(t, "1down-lab", reward.Join(pi[1].Rewards))

	ambas, err := Resolve(c, Ambas)
	require.NoError(t, err)
	assert.Equal(t, "1swap-pi", reward.Join(ambas.Building(board.Institute).Income[0][1].Rewards))

	bescods, err := Resolve(c, Bescods)
	require.NoError(t, err)
	require.Len(t, bescods.Income, 2)
	assert.Equal(t, reward.Activate, bescods.Income[1].Operator)
}
