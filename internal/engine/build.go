package engine

import (
	"fmt"
	"strconv"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// buildOption is one legal placement or upgrade with everything it costs.
type buildOption struct {
	Building board.Building
	Coord    hex.Coord
	Cost     []reward.Reward
	Steps    int
	Gaia     int
}

func buildArgs(opts []buildOption) []Option {
	out := make([]Option, len(opts))
	for i, o := range opts {
		cost := reward.Join(reward.Merge(o.Cost))
		if o.Gaia > 0 {
			cost = joinCost(cost, strconv.Itoa(o.Gaia)+"t>gaia")
		}
		out[i] = Option{Args: []string{string(o.Building), o.Coord.String()}, Cost: cost}
	}
	return out
}

func joinCost(a, b string) string {
	if a == "" {
		return b
	}
	return a + "," + b
}

// setupBuilding is the structure placed at the current setup turn of pid.
func (e *Engine) setupBuilding(pid int) board.Building {
	p := e.Players[pid]
	if p.Data.Buildings[board.Mine] < p.Strategy().SetupMines() {
		return board.Mine
	}
	return board.Institute
}

// navRange is how far pid reaches without spending qic.
func (e *Engine) navRange(pid int) int {
	lvl := e.Players[pid].Data.Research[board.Navigation]
	return e.cat.Range[min(lvl, len(e.cat.Range)-1)]
}

func levelValue(table []int, lvl int) int {
	if len(table) == 0 {
		return 0
	}
	return table[min(lvl, len(table)-1)]
}

// buildingPower is the power value of a structure for leech and
// federations.
func (e *Engine) buildingPower(pid int, h *board.Hex) int {
	if h.Building == board.GaiaFormer {
		return 0
	}
	p := e.Players[pid]
	if h.Planet == board.Lost {
		return p.Board().Building(board.Mine).Power
	}
	bonus := p.Strategy().PlanetPower(h.Planet, p.Has(board.Institute))
	if h.Building.Big() && p.HasSpecial(reward.CondBigBuilding) {
		return 4 + bonus
	}
	return p.Board().Building(h.Building).Power + bonus
}

// rangeCost is the qic needed to reach c from the nearest structure.
func (e *Engine) rangeCost(pid int, c hex.Coord, bonus int) (int, bool) {
	d := e.Map.Distance(c, pid)
	if d < 0 {
		return 0, false
	}
	extra := d - e.navRange(pid) - bonus
	if extra <= 0 {
		return 0, true
	}
	step := max(e.cat.QicRange, 1)
	return (extra + step - 1) / step, true
}

// buildOptions lists every affordable placement and upgrade of pid. A
// pending build restricts the choice to new structures and applies its
// free steps and range.
func (e *Engine) buildOptions(pid int, bonus *FollowUp) []buildOption {
	p := e.Players[pid]
	var steps, extra int
	if bonus != nil {
		steps, extra = bonus.Steps, bonus.Range
	}
	home := p.Board().Planet
	var out []buildOption
	add := func(o buildOption) {
		if p.CanPay(o.Cost) {
			out = append(out, o)
		}
	}
	mine := p.Board().Building(board.Mine)
	canMine := p.Data.Buildings[board.Mine] < mine.Limit
	for _, h := range e.Map.List() {
		switch {
		case h.Building == board.GaiaFormer && h.Player == pid && h.Planet == board.Gaia:
			if canMine {
				add(buildOption{Building: board.Mine, Coord: h.Coord, Cost: mine.Cost})
			}
		case h.Occupied():
			continue
		case h.Planet == board.Gaia:
			qic, ok := e.rangeCost(pid, h.Coord, extra)
			if ok && canMine && steps == 0 {
				cost := append(append([]reward.Reward(nil), mine.Cost...), reward.New(qic+1, reward.Qic))
				add(buildOption{Building: board.Mine, Coord: h.Coord, Cost: cost})
			}
		case h.Planet == board.Transdim:
			qic, ok := e.rangeCost(pid, h.Coord, extra)
			if !ok || steps > 0 || p.Data.GaiaFormers == 0 {
				continue
			}
			tokens := levelValue(e.cat.GaiaFormerCost, p.Data.Research[board.GaiaProject])
			if p.Data.Power.GaiaMovable() < tokens {
				continue
			}
			add(buildOption{Building: board.GaiaFormer, Coord: h.Coord, Cost: qicCost(qic), Gaia: tokens})
		case h.Planet.Habitable():
			tf := board.TerraformSteps(home, h.Planet)
			qic, ok := e.rangeCost(pid, h.Coord, extra)
			if tf < 0 || !ok || !canMine {
				continue
			}
			ore := max(0, tf-steps) * levelValue(e.cat.TerraformCost, p.Data.Research[board.Terraforming])
			cost := append(append([]reward.Reward(nil), mine.Cost...), reward.New(ore, reward.Ore))
			cost = append(cost, qicCost(qic)...)
			add(buildOption{Building: board.Mine, Coord: h.Coord, Cost: cost, Steps: tf})
		}
	}
	if bonus != nil {
		return out
	}
	for _, h := range e.Map.OwnedBy(pid) {
		for _, target := range board.Buildings {
			if target.UpgradedFrom() != h.Building || h.Planet == board.Lost {
				continue
			}
			spec := p.Board().Building(target)
			if p.Data.Buildings[target] >= spec.Limit {
				continue
			}
			cost := spec.Cost
			if target == board.TradingStation && len(spec.IsolatedCost) > 0 && e.isolated(pid, h.Coord) {
				cost = spec.IsolatedCost
			}
			add(buildOption{Building: target, Coord: h.Coord, Cost: cost})
		}
	}
	return out
}

// downgradeOptions are the labs of pid that can turn back into a trading
// station.
func (e *Engine) downgradeOptions(pid int) []buildOption {
	p := e.Players[pid]
	if p.Data.Buildings[board.TradingStation] >= p.Board().Building(board.TradingStation).Limit {
		return nil
	}
	var out []buildOption
	for _, h := range e.Map.OwnedBy(pid) {
		if h.Building == board.ResearchLab {
			out = append(out, buildOption{Building: board.TradingStation, Coord: h.Coord})
		}
	}
	return out
}

// swapOptions are the mines of pid the planetary institute can trade
// places with.
func (e *Engine) swapOptions(pid int) []buildOption {
	if !e.Players[pid].Has(board.Institute) {
		return nil
	}
	var out []buildOption
	for _, h := range e.Map.OwnedBy(pid) {
		if h.Building == board.Mine && h.Planet != board.Lost {
			out = append(out, buildOption{Building: board.Institute, Coord: h.Coord})
		}
	}
	return out
}

// downgrade turns the lab at c into a trading station and grants a free
// research step.
func (e *Engine) downgrade(pid int, c hex.Coord) {
	p := e.Players[pid]
	h := e.Map.Get(c)
	p.Demolish(board.ResearchLab)
	h.Building = board.TradingStation
	e.notify(pid, p.Build(board.TradingStation, e.counter(pid)))
	e.notify(pid, p.Trigger(reward.CondTradingStation, 1))
	e.resolve(FollowUp{Kind: FollowResearch, Player: pid})
}

// swap moves the planetary institute of pid onto the mine at c.
func (e *Engine) swap(pid int, c hex.Coord) {
	e.resolve()
	h := e.Map.Get(c)
	for _, pi := range e.Map.OwnedBy(pid) {
		if pi.Building == board.Institute {
			pi.Building, h.Building = board.Mine, board.Institute
			return
		}
	}
}

func qicCost(n int) []reward.Reward {
	if n == 0 {
		return nil
	}
	return []reward.Reward{reward.New(n, reward.Qic)}
}

// isolated reports whether no other player has a structure within
// distance 2 of c.
func (e *Engine) isolated(pid int, c hex.Coord) bool {
	for _, h := range e.Map.Within(c, 2) {
		if h.Occupied() && h.Player != pid && h.Building != board.GaiaFormer {
			return false
		}
	}
	return true
}

func (e *Engine) findBuild(opts []buildOption, kind board.Building, c hex.Coord) (buildOption, error) {
	for _, o := range opts {
		if o.Building == kind && o.Coord == c {
			return o, nil
		}
	}
	return buildOption{}, fmt.Errorf("cannot build %s on %s", kind, c)
}

// build places or upgrades a structure, paying its cost unless free.
func (e *Engine) build(pid int, o buildOption, free bool) error {
	p := e.Players[pid]
	h := e.Map.Get(o.Coord)
	if !free {
		if err := p.Pay(o.Cost); err != nil {
			return err
		}
	}
	c := e.counter(pid)
	switch o.Building {
	case board.GaiaFormer:
		if err := p.Data.Power.MoveToGaia(o.Gaia); err != nil {
			return err
		}
		p.Data.GaiaFormers--
		h.Building, h.Player = board.GaiaFormer, pid
		stone := p.Data.Power.Brainstone
		if stone == player.Area1 || stone == player.Area2 || stone == player.Area3 {
			e.Pending = append(e.Pending, FollowUp{Kind: FollowBrainstone, Player: pid})
		}
		return nil
	case board.Mine:
		newType := !e.hasPlanetType(pid, h.Planet)
		if h.Building == board.GaiaFormer {
			p.Data.GaiaFormers++
		}
		h.Building, h.Player = board.Mine, pid
		e.notify(pid, p.Build(board.Mine, c))
		if o.Steps > 0 {
			e.notify(pid, p.Trigger(reward.CondTerraformStep, o.Steps))
		}
		if h.Planet == board.Gaia {
			e.notify(pid, p.Trigger(reward.CondGaiaPlanet, 1))
		}
		if newType {
			e.notify(pid, p.Gain(p.Strategy().NewPlanetTypeBonus(p.Has(board.Institute))))
		}
	default:
		p.Demolish(h.Building)
		h.Building = o.Building
		e.notify(pid, p.Build(o.Building, c))
		if o.Building == board.Institute {
			if tile := p.Strategy().InstituteFederation(); tile != "" {
				e.takeFederation(pid, tile)
			}
		}
	}
	e.notify(pid, p.Trigger(reward.Condition(o.Building), 1))
	if o.Building.Big() {
		e.notify(pid, p.Trigger(reward.CondBigBuilding, 1))
	}
	e.joinFederations(pid, o.Coord)
	e.Turn.Built = append(e.Turn.Built, o.Coord)
	return nil
}

// hasPlanetType reports whether pid already has a structure on a planet of
// type t.
func (e *Engine) hasPlanetType(pid int, t board.Planet) bool {
	for _, h := range e.Map.OwnedBy(pid) {
		if h.Planet == t && h.Building != board.GaiaFormer {
			return true
		}
	}
	return false
}
