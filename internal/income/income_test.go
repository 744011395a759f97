package income

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

func TestSplit(t *testing.T) {
	items, rest := Split(reward.MustParseEvents("+1o,1k", "+4pw,1t", "+2c,1pw", "+~"))
	assert.Equal(t, "4pw,1t,1pw", reward.Join(items))
	assert.Equal(t, "1o,1k,2c", reward.Join(rest))
}

func TestNeedsManualSelection(t *testing.T) {
	assert.False(t, New(player.Power{}, reward.MustParse("2pw,4pw")).NeedsManualSelection())
	assert.False(t, New(player.Power{}, reward.MustParse("1t")).NeedsManualSelection())
	assert.True(t, New(player.Power{}, reward.MustParse("2pw,1t")).NeedsManualSelection())
}

func TestAutoplayTokensFirst(t *testing.T) {
	s := New(player.Power{Area2: 1, Budget: 1}, reward.MustParse("3pw,1t"))
	order := s.AutoplayOrder()
	assert.Equal(t, "1t,3pw", reward.Join(order))
	assert.Equal(t, 0, s.Simulate(order).Waste)
	assert.Equal(t, 2, s.Simulate(reward.MustParse("3pw,1t")).Waste)
}

func TestAutoplayChargeOrderMatters(t *testing.T) {
	s := New(player.Power{Area2: 2, Budget: 2}, reward.MustParse("3pw,1pw,1t"))
	assert.Equal(t, 1, s.Simulate(reward.MustParse("3pw,1t,1pw")).Waste)
	assert.Equal(t, 0, s.Simulate(s.AutoplayOrder()).Waste)
}

func TestAutoplayPrefersTopBowl(t *testing.T) {
	s := New(player.Power{Area1: 1, Area2: 1, Budget: 2}, reward.MustParse("2pw,1t"))
	res := s.Simulate(s.AutoplayOrder())
	assert.Equal(t, 0, res.Waste)
	for _, order := range s.Orderings() {
		other := s.Simulate(order)
		if other.Waste == 0 {
			assert.LessOrEqual(t, other.Area3, res.Area3)
		}
	}
}

func TestOrderingsAreDistinct(t *testing.T) {
	s := New(player.Power{}, reward.MustParse("1pw,1pw,1t"))
	assert.Len(t, s.Orderings(), 3)
}

func TestAutoplayIsOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	kinds := []reward.Resource{reward.ChargePW, reward.Token}
	for i := 0; i < 200; i++ {
		stone := player.NoArea
		if rng.Intn(3) == 0 {
			stone = []player.Area{player.Area1, player.Area2, player.Area3}[rng.Intn(3)]
		}
		power := player.NewPower(rng.Intn(5), rng.Intn(5), rng.Intn(4), stone)
		var items []reward.Reward
		for j := 0; j < 2+rng.Intn(4); j++ {
			items = append(items, reward.New(1+rng.Intn(4), kinds[rng.Intn(2)]))
		}

		s := New(power, items)
		best := s.Simulate(s.AutoplayOrder())
		require.True(t, best.Power.Conserved())
		for _, order := range s.Orderings() {
			assert.GreaterOrEqual(t, s.Simulate(order).Waste, best.Waste,
				"case %d: %s beats autoplay", i, reward.Join(order))
		}
	}
}
