package hex

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	c, err := Parse("-2x3")
	require.NoError(t, err)
	assert.Equal(t, Coord{Q: -2, R: 3}, c)
	assert.Equal(t, "-2x3", c.String())

	_, err = Parse("a1")
	assert.Error(t, err)
}

func TestDistance(t *testing.T) {
	origin := Coord{}
	for _, n := range origin.Neighbours() {
		assert.Equal(t, 1, Distance(origin, n))
	}
	assert.Equal(t, 3, Distance(Coord{Q: 0, R: 0}, Coord{Q: 3, R: -3}))
	assert.Equal(t, 4, Distance(Coord{Q: -2, R: 0}, Coord{Q: 2, R: 0}))
}

func TestWithin(t *testing.T) {
	assert.Len(t, Coord{}.Within(1), 7)
	assert.Len(t, Coord{Q: 5, R: -2}.Within(2), 19)
	for _, c := range (Coord{Q: 1, R: 1}).Within(2) {
		assert.LessOrEqual(t, Distance(c, Coord{Q: 1, R: 1}), 2)
	}
}

func TestRotate(t *testing.T) {
	center := Coord{Q: 2, R: -1}
	c := Coord{Q: 4, R: -1}
	assert.Equal(t, c, c.Rotate(center, 6))
	assert.Equal(t, c.Rotate(center, 1), c.Rotate(center, 7))
	for n := 0; n < 6; n++ {
		assert.Equal(t, 2, Distance(center, c.Rotate(center, n)))
	}
	assert.NotEqual(t, c, c.Rotate(center, 1))
}

func TestCoordAsMapKey(t *testing.T) {
	m := map[Coord]string{{Q: -1, R: 2}: "x"}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"-1x2":"x"}`, string(b))

	var back map[Coord]string
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)
}
