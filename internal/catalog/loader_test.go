package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderEmbeddedFallback(t *testing.T) {
	c, err := NewLoader(nil).Load()
	require.NoError(t, err)

	assert.Len(t, c.Factions, 14)
	assert.Len(t, c.Boosters, 10)
	assert.Len(t, c.Tech, 9)
	assert.Len(t, c.Advanced, 15)
	assert.Len(t, c.Sectors, 10)
	assert.Len(t, c.Research, 6)
	assert.Equal(t, 7, c.Board.FederationThreshold)
	assert.Equal(t, 8, c.Board.Buildings["m"].Limit)
	assert.Equal(t, "d", c.Factions["xenos"].Planet)
}

func TestLoaderOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	override := []byte("final:\n  - gaia\n  - sector\nfinal_scoring:\n  gaia: player.gaiaPlanets\n  sector: min(player.sectors, 7)\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.yaml"), override, 0644))

	c, err := NewLoader([]string{dir}).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"gaia", "sector"}, c.Final)
	assert.Empty(t, c.Boosters, "overridden file replaces the embedded one")
	assert.Len(t, c.Factions, 14)
}

func TestValidateRejectsBadEvents(t *testing.T) {
	c, err := NewLoader(nil).Load()
	require.NoError(t, err)

	c.Boosters["broken"] = []string{"zz>>1vp"}
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBadFinalFormulas(t *testing.T) {
	c, err := NewLoader(nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "player.satellites", c.FinalScoring["satellite"])

	c.FinalScoring["gaia"] = "player.gaiaPlanets > 2"
	assert.Error(t, c.Validate())

	delete(c.FinalScoring, "gaia")
	assert.Error(t, c.Validate())
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]int{"booster10": 1, "booster2": 1, "booster1": 1})
	assert.Equal(t, []string{"booster1", "booster2", "booster10"}, keys)
}

func TestDefaultIsCached(t *testing.T) {
	assert.Same(t, Default(), Default())
}
