package engine

import (
	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// counter counts event conditions for one player from the board.
type counter struct {
	e   *Engine
	pid int
}

func (e *Engine) counter(pid int) counter {
	return counter{e: e, pid: pid}
}

func (c counter) Count(cond reward.Condition) int {
	p := c.e.Players[c.pid]
	switch cond {
	case reward.NoCondition:
		return 1
	case reward.CondMine:
		n := 0
		for _, h := range c.e.Map.OwnedBy(c.pid) {
			if h.Building == board.Mine {
				n++
			}
		}
		return n
	case reward.CondTradingStation, reward.CondResearchLab, reward.CondPI, reward.CondAcademy1, reward.CondAcademy2:
		return p.Data.Buildings[board.Building(cond)]
	case reward.CondBigBuilding:
		return p.Data.Buildings[board.Institute] + p.Data.Buildings[board.Academy1] + p.Data.Buildings[board.Academy2]
	case reward.CondGaiaFormer:
		return c.count(func(h *board.Hex) bool { return h.Building == board.GaiaFormer })
	case reward.CondGaiaPlanet:
		return c.count(func(h *board.Hex) bool { return h.Planet == board.Gaia && h.Building != board.GaiaFormer })
	case reward.CondPlanetType:
		types := make(map[board.Planet]bool)
		for _, h := range c.e.Map.OwnedBy(c.pid) {
			if h.Building != board.GaiaFormer {
				types[h.Planet] = true
			}
		}
		return len(types)
	case reward.CondSector:
		sectors := make(map[string]bool)
		for _, h := range c.e.Map.OwnedBy(c.pid) {
			if h.Building != board.GaiaFormer {
				sectors[h.Sector] = true
			}
		}
		return len(sectors)
	case reward.CondFederation:
		return len(p.Data.FedTokens)
	case reward.CondSatellite:
		return p.Data.Satellites
	case reward.CondLostPlanet:
		return c.count(func(h *board.Hex) bool { return h.Planet == board.Lost })
	case reward.CondAdvancedTile:
		n := 0
		for _, t := range p.TechTiles {
			if t.Advanced {
				n++
			}
		}
		return n
	}
	return 0
}

func (c counter) count(match func(h *board.Hex) bool) int {
	n := 0
	for _, h := range c.e.Map.OwnedBy(c.pid) {
		if match(h) {
			n++
		}
	}
	return n
}

func eventsOf(list []string) []reward.Event {
	return catalog.Events(list)
}
