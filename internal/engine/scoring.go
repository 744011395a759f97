package engine

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
	"github.com/boardgamers/gaia-project-sub000/internal/rules"
)

// Final scoring tiles.
const (
	FinalStructure    = "structure"
	FinalStructureFed = "structureFed"
	FinalPlanetType   = "planetType"
	FinalGaia         = "gaia"
	FinalSector       = "sector"
	FinalSatellite    = "satellite"
)

// finalAwards are the points for first, second and third on a final tile.
var finalAwards = []int{18, 12, 6}

// resourcesPerVP is how many leftover resources buy one point.
const resourcesPerVP = 3

// FinalValue is what pid counts for a final scoring tile, by the tile's
// formula in the catalog.
func (e *Engine) FinalValue(pid int, tile string) int {
	expr, ok := e.cat.FinalScoring[tile]
	if !ok {
		log.Warn().Str("tile", tile).Msg("final tile without a scoring formula")
		return 0
	}
	n, err := rules.Default().Eval(expr, e.facts(pid))
	if err != nil {
		log.Error().Err(err).Str("tile", tile).Msg("final scoring formula failed")
		return 0
	}
	return n
}

// facts are the counts final scoring formulas read for pid.
func (e *Engine) facts(pid int) rules.Facts {
	c := e.counter(pid)
	d := e.Players[pid].Data
	structures, federated := 0, 0
	for _, h := range e.Map.OwnedBy(pid) {
		if h.Building == board.GaiaFormer {
			continue
		}
		structures++
		if h.Federated {
			federated++
		}
	}
	return rules.Facts{
		"structures":          int64(structures),
		"federatedStructures": int64(federated),
		"planetTypes":         int64(c.Count(reward.CondPlanetType)),
		"gaiaPlanets":         int64(c.Count(reward.CondGaiaPlanet)),
		"sectors":             int64(c.Count(reward.CondSector)),
		"satellites":          int64(c.Count(reward.CondSatellite)),
		"federations":         int64(c.Count(reward.CondFederation)),
		"buildings":           int64(c.Count(reward.CondMine) + c.Count(reward.CondTradingStation) + c.Count(reward.CondResearchLab) + c.Count(reward.CondBigBuilding)),
		"vp":                  int64(d.VP),
		"credits":             int64(d.Credits),
		"ore":                 int64(d.Ore),
		"knowledge":           int64(d.Knowledge),
		"qic":                 int64(d.Qic),
	}
}

// FinalAwards ranks players on tile. Tied players share the points of the
// places they occupy, rounded down.
func (e *Engine) FinalAwards(tile string) []int {
	n := len(e.Players)
	values := make([]int, n)
	order := seats(n)
	for pid := range e.Players {
		values[pid] = e.FinalValue(pid, tile)
	}
	sort.SliceStable(order, func(i, j int) bool { return values[order[i]] > values[order[j]] })
	awards := make([]int, n)
	for i := 0; i < n; {
		j := i
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		sum := 0
		for k := i; k < j && k < len(finalAwards); k++ {
			sum += finalAwards[k]
		}
		for k := i; k < j; k++ {
			awards[order[k]] = sum / (j - i)
		}
		i = j
	}
	return awards
}

func (e *Engine) finalScoring() {
	for _, tile := range e.Tiles.Final {
		for pid, vp := range e.FinalAwards(tile) {
			e.score(pid, "final "+tile, vp)
		}
	}
	for pid, p := range e.Players {
		research := 0
		for _, f := range board.Fields {
			research += levelValue(e.cat.ResearchVP, p.Data.Research[f])
		}
		e.score(pid, "research", research)
		d := p.Data
		e.score(pid, "resources", (d.Credits+d.Ore+d.Knowledge+d.Qic)/resourcesPerVP)
	}
	for pid, p := range e.Players {
		log.Info().Str("player", e.PlayerName(pid)).Int("vp", p.Data.VP).Msg("final score")
	}
}

// score adds vp for a scoring step and records it in the log.
func (e *Engine) score(pid int, what string, vp int) {
	if vp == 0 {
		return
	}
	e.gainAll(pid, []reward.Reward{reward.New(vp, reward.VP)})
	entry := e.entry(pid, board.NoPlayer, what, map[string]int{"vp": vp})
	entry.Phase = PhaseEndGame
	e.Log = append(e.Log, entry)
}

// Ranking lists the seats by final score, best first.
func (e *Engine) Ranking() []int {
	order := seats(len(e.Players))
	sort.SliceStable(order, func(i, j int) bool {
		return e.Players[order[i]].Data.VP > e.Players[order[j]].Data.VP
	})
	return order
}
