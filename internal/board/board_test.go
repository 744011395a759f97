package board

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

func TestTerraformSteps(t *testing.T) {
	assert.Equal(t, 0, TerraformSteps(Terra, Terra))
	assert.Equal(t, 1, TerraformSteps(Terra, Oxide))
	assert.Equal(t, 1, TerraformSteps(Terra, Ice))
	assert.Equal(t, 3, TerraformSteps(Terra, Desert))
	assert.Equal(t, 3, TerraformSteps(Terra, Swamp))
	assert.Equal(t, -1, TerraformSteps(Terra, Gaia))
	assert.Equal(t, -1, TerraformSteps(Transdim, Ice))
}

func TestStandardLayout(t *testing.T) {
	sectors := catalog.Default().Sectors

	m, err := Generate(sectors, 2, "seed", false)
	require.NoError(t, err)
	assert.Len(t, m.Sectors, 7)
	assert.Len(t, m.Hexes, 7*19)

	h := m.Get(hex.Coord{Q: 0, R: 1})
	require.NotNil(t, h)
	assert.Equal(t, Terra, h.Planet)
	assert.Equal(t, "s1", h.Sector)
	assert.Equal(t, NoPlayer, h.Player)

	big, err := Generate(sectors, 4, "seed", false)
	require.NoError(t, err)
	assert.Len(t, big.Hexes, 10*19)
	assert.NoError(t, big.Validate())
}

func TestRotatedLayoutIsSeeded(t *testing.T) {
	sectors := catalog.Default().Sectors

	a, errA := Generate(sectors, 3, "alpha", true)
	b, errB := Generate(sectors, 3, "alpha", true)
	if errA != nil {
		require.ErrorIs(t, errA, ErrLayout)
		require.ErrorIs(t, errB, ErrLayout)
		return
	}
	require.NoError(t, errB)
	assert.Equal(t, a, b)
	assert.NoError(t, a.Validate())
}

func TestValidateRejectsTouchingPlanets(t *testing.T) {
	m := &Map{Hexes: map[hex.Coord]*Hex{
		{Q: 0, R: 0}: {Coord: hex.Coord{Q: 0, R: 0}, Sector: "a", Planet: Ice, Player: NoPlayer},
		{Q: 1, R: 0}: {Coord: hex.Coord{Q: 1, R: 0}, Sector: "b", Planet: Ice, Player: NoPlayer},
	}}
	assert.ErrorIs(t, m.Validate(), ErrLayout)

	m.Hexes[hex.Coord{Q: 1, R: 0}].Sector = "a"
	assert.NoError(t, m.Validate())
}

func TestMapQueries(t *testing.T) {
	m, err := Generate(catalog.Default().Sectors, 2, "seed", false)
	require.NoError(t, err)

	home := m.Get(hex.Coord{Q: 0, R: 1})
	home.Player, home.Building = 0, Mine

	assert.Equal(t, 0, m.Distance(home.Coord, 0))
	assert.Equal(t, 2, m.Distance(hex.Coord{Q: 2, R: 0}, 0))
	assert.Equal(t, -1, m.Distance(home.Coord, 1))
	assert.Len(t, m.OwnedBy(0), 1)
	assert.Len(t, m.Within(home.Coord, 1), 6)

	clone := m.Clone()
	clone.Get(home.Coord).Building = TradingStation
	assert.Equal(t, Mine, m.Get(home.Coord).Building)
}

func TestMapJSONRoundTrip(t *testing.T) {
	m, err := Generate(catalog.Default().Sectors, 2, "seed", false)
	require.NoError(t, err)
	m.Get(hex.Coord{Q: 0, R: 0}).Satellites = []int{1}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	var back Map
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, &back)
}

func TestNewRandIsDeterministic(t *testing.T) {
	a, b := NewRand("x", "tiles"), NewRand("x", "tiles")
	assert.Equal(t, a.Perm(10), b.Perm(10))
	assert.NotEqual(t, NewRand("x", "tiles").Perm(10), NewRand("x", "layout").Perm(10))
}
