// Package faction resolves the declarative faction boards of the catalog
// into typed rewards and events, and holds the closed set of per-faction
// rule strategies.
package faction

import (
	"fmt"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Faction names a playable faction.
type Faction string

const (
	Terrans      Faction = "terrans"
	Lantids      Faction = "lantids"
	Xenos        Faction = "xenos"
	Gleens       Faction = "gleens"
	Taklons      Faction = "taklons"
	Ambas        Faction = "ambas"
	HadschHallas Faction = "hadsch-hallas"
	Ivits        Faction = "ivits"
	Geodens      Faction = "geodens"
	BalTaks      Faction = "bal-taks"
	Firaks       Faction = "firaks"
	Bescods      Faction = "bescods"
	Nevlas       Faction = "nevlas"
	Itars        Faction = "itars"
)

// All lists every faction in catalog order.
var All = []Faction{
	Terrans, Lantids, Xenos, Gleens, Taklons, Ambas, HadschHallas,
	Ivits, Geodens, BalTaks, Firaks, Bescods, Nevlas, Itars,
}

// Selectable reports whether f can be picked for a new game. Lantids build
// on planets other players hold, which the map does not model.
func (f Faction) Selectable() bool {
	return f != Lantids
}

// Parse validates a faction name.
func Parse(s string) (Faction, error) {
	for _, f := range All {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown faction %q", s)
}

// Conversion is a free action: pay Cost, gain Gain.
type Conversion struct {
	Cost []reward.Reward `json:"cost"`
	Gain []reward.Reward `json:"gain"`
}

func (c Conversion) String() string {
	return reward.Join(c.Cost) + " for " + reward.Join(c.Gain)
}

// BuildingSpec is a resolved building entry. Income[n] is granted by the
// (n+1)-th copy built.
type BuildingSpec struct {
	Cost         []reward.Reward
	IsolatedCost []reward.Reward
	Limit        int
	Power        int
	Income       [][]reward.Event
	Gain         []reward.Reward
}

// Board is a faction's resolved player board. It is immutable once built.
type Board struct {
	Faction             Faction
	Planet              board.Planet
	Resources           []reward.Reward
	Power               catalog.Power
	Brainstone          string
	Income              []reward.Event
	Research            map[board.Field]int
	Buildings           map[board.Building]BuildingSpec
	FederationThreshold int
	Conversions         []Conversion
}

// Building returns the spec of b.
func (b *Board) Building(kind board.Building) BuildingSpec {
	return b.Buildings[kind]
}

// Resolve builds the board of f from the catalog.
func Resolve(c *catalog.Catalog, f Faction) (*Board, error) {
	def, ok := c.Factions[string(f)]
	if !ok {
		return nil, fmt.Errorf("faction %s missing from catalog", f)
	}
	planet := board.Planet(def.Planet)
	if !planet.Habitable() {
		return nil, fmt.Errorf("faction %s: invalid home planet %q", f, def.Planet)
	}

	b := &Board{
		Faction:             f,
		Planet:              planet,
		Power:               c.Board.Power,
		Brainstone:          def.Brainstone,
		Research:            make(map[board.Field]int),
		Buildings:           make(map[board.Building]BuildingSpec),
		FederationThreshold: c.Board.FederationThreshold,
	}

	var err error
	resources := c.Board.Resources
	if def.Resources != "" {
		resources = def.Resources
	}
	if b.Resources, err = reward.Parse(resources); err != nil {
		return nil, fmt.Errorf("faction %s: %w", f, err)
	}
	if def.Power != nil {
		b.Power = *def.Power
	}
	income := c.Board.Income
	if len(def.Income) > 0 {
		income = def.Income
	}
	if b.Income, err = parseEvents(income); err != nil {
		return nil, fmt.Errorf("faction %s: %w", f, err)
	}
	for field, lvl := range def.Research {
		fd, err := board.ParseField(field)
		if err != nil {
			return nil, fmt.Errorf("faction %s: %w", f, err)
		}
		b.Research[fd] = lvl
	}

	for name, bd := range c.Board.Buildings {
		kind, err := board.ParseBuilding(name)
		if err != nil {
			return nil, err
		}
		spec, err := resolveBuilding(bd, def.Buildings[name])
		if err != nil {
			return nil, fmt.Errorf("faction %s building %s: %w", f, name, err)
		}
		b.Buildings[kind] = spec
	}

	for _, conv := range c.Conversions {
		b.Conversions = append(b.Conversions, Conversion{
			Cost: reward.MustParse(conv.Cost),
			Gain: reward.MustParse(conv.Gain),
		})
	}
	b.Conversions = append(b.Conversions, f.Strategy().Conversions()...)
	return b, nil
}

func resolveBuilding(def catalog.BuildingDef, override catalog.BuildingOverride) (BuildingSpec, error) {
	spec := BuildingSpec{Limit: def.Limit, Power: def.Power}
	var err error
	cost := def.Cost
	if override.Cost != "" {
		cost = override.Cost
	}
	if spec.Cost, err = reward.Parse(cost); err != nil {
		return spec, err
	}
	if spec.IsolatedCost, err = reward.Parse(def.IsolatedCost); err != nil {
		return spec, err
	}
	if spec.Gain, err = reward.Parse(def.Gain); err != nil {
		return spec, err
	}
	if override.Power > 0 {
		spec.Power = override.Power
	}
	income := def.Income
	if len(override.Income) > 0 {
		income = override.Income
	}
	for _, text := range income {
		evs, err := reward.ParseEvents(text)
		if err != nil {
			return spec, err
		}
		spec.Income = append(spec.Income, evs)
	}
	return spec, nil
}

func parseEvents(texts []string) ([]reward.Event, error) {
	var out []reward.Event
	for _, t := range texts {
		e, err := reward.ParseEvent(t)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
