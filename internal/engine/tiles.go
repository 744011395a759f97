package engine

import (
	"sort"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
)

// Tech positions: one per research field, plus three free positions whose
// research step may go to any field.
var TechPositions = []string{
	string(board.Terraforming), string(board.Navigation), string(board.Intelligence),
	string(board.GaiaProject), string(board.Economy), string(board.Science),
	"free1", "free2", "free3",
}

// AdvancedPrefix marks the position of an advanced tile, "adv-<field>".
const AdvancedPrefix = "adv-"

// Tiles holds every drawn tile and the supplies the players take from.
type Tiles struct {
	Boosters        []string          `json:"boosters"`
	Tech            map[string]string `json:"tech"`
	Advanced        map[string]string `json:"advanced"`
	Federations     map[string]int    `json:"federations"`
	TerraFederation string            `json:"terraFederation,omitempty"`
	Scoring         []string          `json:"scoring"`
	Final           []string          `json:"final"`
}

// newTiles draws every random tile from the seed.
func newTiles(cat *catalog.Catalog, opts Options) Tiles {
	rng := board.NewRand(opts.Seed, "tiles")
	shuffled := func(keys []string) []string {
		out := append([]string(nil), keys...)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	t := Tiles{
		Tech:        make(map[string]string),
		Advanced:    make(map[string]string),
		Federations: make(map[string]int),
	}

	boosters := shuffled(catalog.SortedKeys(cat.Boosters))
	t.Boosters = boosters[:min(len(boosters), opts.Players+3)]
	sortTiles(t.Boosters)

	tech := shuffled(catalog.SortedKeys(cat.Tech))
	for i, pos := range TechPositions {
		if i < len(tech) {
			t.Tech[pos] = tech[i]
		}
	}
	adv := shuffled(catalog.SortedKeys(cat.Advanced))
	for i, f := range board.Fields {
		if i < len(adv) {
			t.Advanced[string(f)] = adv[i]
		}
	}

	var feds []string
	for _, id := range catalog.SortedKeys(cat.Federations) {
		if n := cat.Federations[id].Count; n > 0 {
			t.Federations[id] = n
			feds = append(feds, id)
		}
	}
	if len(feds) > 0 {
		id := feds[rng.Intn(len(feds))]
		t.TerraFederation = id
		t.Federations[id]--
	}

	scoring := shuffled(catalog.SortedKeys(cat.Scoring))
	t.Scoring = scoring[:min(len(scoring), LastRound)]
	final := shuffled(cat.Final)
	t.Final = final[:min(len(final), 2)]
	return t
}

// sortTiles orders tile ids the way the catalog lists them, booster2
// before booster10.
func sortTiles(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})
}

// ScoringTile is the round scoring tile of round r, or "".
func (t Tiles) ScoringTile(r int) string {
	if r < 1 || r > len(t.Scoring) {
		return ""
	}
	return t.Scoring[r-1]
}
