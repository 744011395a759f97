// Package catalog loads the static game data (boards, research tracks,
// tiles, sectors) from YAML. Files found in the configured data directories
// take precedence over the copies embedded in the binary.
package catalog

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
	"github.com/boardgamers/gaia-project-sub000/internal/rules"
)

//go:embed data/*.yaml
var embedded embed.FS

// Files are decoded in this order into the same Catalog.
var Files = []string{"base.yaml", "factions.yaml", "tiles.yaml", "sectors.yaml"}

// Loader reads catalog files from a directory fallback hierarchy.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a Loader searching dataDirs before the embedded data.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// Load decodes and validates every catalog file.
func (l *Loader) Load() (*Catalog, error) {
	var c Catalog
	for _, name := range Files {
		if err := l.load(name, &c); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (l *Loader) load(name string, target *Catalog) error {
	for _, dir := range l.dataDirs {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		defer f.Close()
		return decode(name, f, target)
	}
	f, err := embedded.Open("data/" + name)
	if err != nil {
		return fmt.Errorf("could not find catalog file %s in any data directory", name)
	}
	defer f.Close()
	return decode(name, f, target)
}

func decode(name string, r io.Reader, target *Catalog) error {
	if err := yaml.NewDecoder(r).Decode(target); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode catalog file %s: %w", name, err)
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded data is
// invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewLoader(nil).Load()
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Validate checks that every reward, event and coordinate in the catalog
// parses, so later lookups can use the Must helpers.
func (c *Catalog) Validate() error {
	var errs []string
	checkRewards := func(where, s string) {
		if _, err := reward.Parse(s); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", where, err))
		}
	}
	checkEvents := func(where string, list []string) {
		for _, s := range list {
			if _, err := reward.ParseEvent(s); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", where, err))
			}
		}
	}

	checkRewards("board.resources", c.Board.Resources)
	checkEvents("board.income", c.Board.Income)
	for name, b := range c.Board.Buildings {
		checkRewards("building "+name, b.Cost)
		checkRewards("building "+name, b.IsolatedCost)
		checkRewards("building "+name, b.Gain)
		checkEvents("building "+name, b.Income)
	}
	for field, levels := range c.Research {
		if len(levels) != 6 {
			errs = append(errs, fmt.Sprintf("research %s: expected 6 levels, got %d", field, len(levels)))
		}
		for _, lvl := range levels {
			checkEvents("research "+field, lvl)
		}
	}
	for name, a := range c.Actions {
		checkRewards("action "+name, a.Cost)
		checkEvents("action "+name, a.Events)
	}
	for _, conv := range c.Conversions {
		checkRewards("conversion", conv.Cost)
		checkRewards("conversion", conv.Gain)
	}
	for name, f := range c.Factions {
		checkRewards("faction "+name, f.Resources)
		checkEvents("faction "+name, f.Income)
		for b, o := range f.Buildings {
			checkRewards("faction "+name+" "+b, o.Cost)
			checkEvents("faction "+name+" "+b, o.Income)
		}
	}
	for _, tiles := range []map[string][]string{c.Boosters, c.Tech, c.Advanced, c.Scoring} {
		for name, events := range tiles {
			checkEvents(name, events)
		}
	}
	for name, f := range c.Federations {
		checkEvents(name, f.Events)
	}
	for _, s := range c.Sectors {
		if _, err := hex.Parse(s.Center); err != nil {
			errs = append(errs, fmt.Sprintf("sector %s: %v", s.ID, err))
		}
		for off := range s.Planets {
			if _, err := hex.Parse(off); err != nil {
				errs = append(errs, fmt.Sprintf("sector %s: %v", s.ID, err))
			}
		}
	}
	for _, tile := range c.Final {
		expr, ok := c.FinalScoring[tile]
		if !ok {
			errs = append(errs, fmt.Sprintf("final %s: no scoring formula", tile))
			continue
		}
		if err := rules.Default().Check(expr); err != nil {
			errs = append(errs, fmt.Sprintf("final %s: %v", tile, err))
		}
	}
	for _, table := range [][]int{c.TerraformCost, c.Range, c.GaiaFormerCost, c.ResearchVP} {
		if len(table) != 6 {
			errs = append(errs, "level tables must have 6 entries")
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("invalid catalog: %v", errs)
	}
	return nil
}

// Events parses a validated event list.
func Events(list []string) []reward.Event {
	return reward.MustParseEvents(list...)
}

// SortedKeys returns the keys of a tile table in a stable order: by length
// then lexically, so "booster2" sorts before "booster10".
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
