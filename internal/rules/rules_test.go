package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCELRegistry(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	facts := Facts{"structures": 9, "sectors": 5, "satellites": 3}

	t.Run("Field Access", func(t *testing.T) {
		n, err := registry.Eval("player.structures", facts)
		assert.NoError(t, err)
		assert.Equal(t, 9, n)
	})

	t.Run("Arithmetic", func(t *testing.T) {
		n, err := registry.Eval("player.sectors + player.satellites", facts)
		assert.NoError(t, err)
		assert.Equal(t, 8, n)
	})

	t.Run("Custom Functions", func(t *testing.T) {
		n, err := registry.Eval("min(player.structures, 7)", facts)
		assert.NoError(t, err)
		assert.Equal(t, 7, n)

		n, err = registry.Eval("max(player.sectors, player.satellites)", facts)
		assert.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("Missing Fact", func(t *testing.T) {
		_, err := registry.Eval("player.gaiaPlanets", facts)
		assert.Error(t, err)
	})
}

func TestCheckRejectsBadFormulas(t *testing.T) {
	registry := Default()
	assert.NoError(t, registry.Check("player.planetTypes"))
	assert.Error(t, registry.Check("player.structures >"))
	assert.Error(t, registry.Check("player.structures > 3"), "bool formula")
	assert.Error(t, registry.Check("unknown + 1"))
}
