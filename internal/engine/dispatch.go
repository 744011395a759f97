package engine

import (
	"fmt"
	"strings"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/federation"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/income"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// dispatch applies a command already checked against the available ones.
func (e *Engine) dispatch(pid int, cmd Command) error {
	p := e.Players[pid]
	switch c := cmd.(type) {
	case FactionCmd:
		return e.chooseFaction(pid, c.Faction)
	case BidCmd:
		return e.bid(pid, c)
	case BuildCmd:
		return e.doBuild(pid, c)
	case BoosterCmd:
		e.Queue = e.Queue[1:]
		return e.takeBooster(pid, c.Booster)
	case PassCmd:
		return e.pass(pid, c.Booster)
	case UpCmd:
		return e.doResearch(pid, c.Field)
	case ChargeCmd:
		return e.charge(pid, c.Rewards)
	case DeclineCmd:
		e.Leech = e.Leech[1:]
		return nil
	case BurnCmd:
		return p.BurnPower(c.Power)
	case SpendCmd:
		if err := p.Pay(c.Cost); err != nil {
			return err
		}
		e.notify(pid, p.Gain(c.Gain))
		return nil
	case BrainstoneCmd:
		e.resolve()
		if c.Area == player.AreaGaia {
			return p.Data.Power.BrainstoneToGaia()
		}
		return nil
	case ActionCmd:
		return e.boardAction(pid, c.Action)
	case SpecialCmd:
		notes, err := p.Activate(c.Rewards)
		if err != nil {
			return err
		}
		e.Turn.MainDone = true
		e.notify(pid, notes)
		return nil
	case TechCmd:
		return e.takeTech(pid, c.Position)
	case CoverCmd:
		return e.cover(pid, c.Position)
	case FedTileCmd:
		e.resolve()
		def := e.cat.Federations[c.Tile]
		e.notify(pid, p.LoadEvents("rescore", eventsOf(def.Events), e.counter(pid)))
		return nil
	case LostPlanetCmd:
		return e.lostPlanet(pid, c)
	case FederationCmd:
		return e.formFederation(pid, c)
	case IncomeCmd:
		return e.takeIncome(pid, c.Rewards)
	}
	return &InvariantError{Reason: fmt.Sprintf("unhandled command %T", cmd)}
}

func (e *Engine) chooseFaction(pid int, f faction.Faction) error {
	e.Queue = e.Queue[1:]
	if e.Options.Auction {
		e.Auction = append(e.Auction, Bid{Faction: f, Player: board.NoPlayer})
		return nil
	}
	b, err := faction.Resolve(e.cat, f)
	if err != nil {
		return err
	}
	e.Players[pid] = player.New(pid, b, e.cat)
	return nil
}

func (e *Engine) bid(pid int, c BidCmd) error {
	e.Queue = e.Queue[1:]
	for i := range e.Auction {
		b := &e.Auction[i]
		if b.Faction != c.Faction {
			continue
		}
		if b.Player != board.NoPlayer {
			e.Queue = append(e.Queue, b.Player)
		}
		b.Player, b.VP = pid, c.VP
		return nil
	}
	return fmt.Errorf("%s is not up for auction", c.Faction)
}

func (e *Engine) doBuild(pid int, c BuildCmd) error {
	if e.Phase == PhaseSetupBuilding {
		e.Queue = e.Queue[1:]
		return e.build(pid, buildOption{Building: c.Building, Coord: c.Coord}, true)
	}
	if len(e.Pending) > 0 {
		f := e.Pending[0]
		switch f.Kind {
		case FollowDowngrade:
			if _, err := e.findBuild(e.downgradeOptions(pid), c.Building, c.Coord); err != nil {
				return err
			}
			e.downgrade(pid, c.Coord)
			return nil
		case FollowSwap:
			if _, err := e.findBuild(e.swapOptions(pid), c.Building, c.Coord); err != nil {
				return err
			}
			e.swap(pid, c.Coord)
			return nil
		}
		o, err := e.findBuild(e.buildOptions(pid, &f), c.Building, c.Coord)
		if err != nil {
			return err
		}
		e.resolve()
		return e.build(pid, o, false)
	}
	o, err := e.findBuild(e.buildOptions(pid, nil), c.Building, c.Coord)
	if err != nil {
		return err
	}
	e.Turn.MainDone = true
	return e.build(pid, o, false)
}

func (e *Engine) takeBooster(pid int, id string) error {
	i := indexOf(e.Tiles.Boosters, id)
	if i < 0 {
		return fmt.Errorf("booster %s is not available", id)
	}
	e.Tiles.Boosters = append(e.Tiles.Boosters[:i:i], e.Tiles.Boosters[i+1:]...)
	p := e.Players[pid]
	p.Booster = id
	e.notify(pid, p.LoadEvents("booster", eventsOf(e.cat.Boosters[id]), e.counter(pid)))
	return nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func (e *Engine) pass(pid int, booster string) error {
	p := e.Players[pid]
	e.notify(pid, p.PassEvents(e.counter(pid)))
	if p.Booster != "" {
		p.RemoveEvents("booster")
		e.Tiles.Boosters = append(e.Tiles.Boosters, p.Booster)
		p.Booster = ""
	}
	if booster != "" {
		if err := e.takeBooster(pid, booster); err != nil {
			return err
		}
	}
	sortTiles(e.Tiles.Boosters)
	e.Passed = append(e.Passed, pid)
	e.Turn.MainDone = true
	return nil
}

func (e *Engine) doResearch(pid int, field board.Field) error {
	if len(e.Pending) > 0 {
		e.resolve()
	} else {
		if err := e.Players[pid].Pay(reward.MustParse(researchCost)); err != nil {
			return err
		}
		e.Turn.MainDone = true
	}
	return e.advanceResearch(pid, field)
}

// advanceResearch moves pid one step up field and pays the level events.
func (e *Engine) advanceResearch(pid int, field board.Field) error {
	if !e.canAdvance(pid, field) {
		return fmt.Errorf("cannot advance %s", field)
	}
	p := e.Players[pid]
	notes, err := p.UpgradeResearch(field, e.counter(pid))
	if err != nil {
		return err
	}
	e.notify(pid, notes)
	e.notify(pid, p.Trigger(reward.CondResearchAdvance, 1))
	return nil
}

func (e *Engine) charge(pid int, rewards []reward.Reward) error {
	p := e.Players[pid]
	e.Leech = e.Leech[1:]
	for _, r := range rewards {
		switch r.Type {
		case reward.ChargePW:
			charged := p.ChargePower(r.Count)
			p.Data.VP = max(0, p.Data.VP-max(0, charged-1))
		case reward.Token:
			p.Data.Power.GainTokens(r.Count)
		default:
			return fmt.Errorf("cannot charge %s", r)
		}
	}
	return nil
}

func (e *Engine) boardAction(pid int, id string) error {
	def, ok := e.cat.Actions[id]
	if !ok || e.BoardActions[id] {
		return fmt.Errorf("action %s is not available", id)
	}
	p := e.Players[pid]
	if err := p.Pay(reward.MustParse(def.Cost)); err != nil {
		return err
	}
	if e.BoardActions == nil {
		e.BoardActions = make(map[string]bool)
	}
	e.BoardActions[id] = true
	e.Turn.MainDone = true
	e.notify(pid, p.LoadEvents("action", eventsOf(def.Events), e.counter(pid)))
	return nil
}

func (e *Engine) takeTech(pid int, pos string) error {
	p := e.Players[pid]
	if field, ok := strings.CutPrefix(pos, AdvancedPrefix); ok {
		tile, ok := e.Tiles.Advanced[field]
		if !ok {
			return fmt.Errorf("no advanced tile on %s", field)
		}
		if err := p.FlipGreenToken(); err != nil {
			return err
		}
		delete(e.Tiles.Advanced, field)
		p.TechTiles = append(p.TechTiles, player.TechTile{Position: pos, Tile: tile, Advanced: true})
		e.resolve(
			FollowUp{Kind: FollowCover, Player: pid},
			FollowUp{Kind: FollowResearch, Player: pid, Field: board.Field(field)},
		)
		e.notify(pid, p.LoadEvents("tech-"+pos, eventsOf(e.cat.Advanced[tile]), e.counter(pid)))
		e.notify(pid, p.Trigger(reward.CondAdvancedTile, 1))
		return nil
	}
	tile, ok := e.Tiles.Tech[pos]
	if !ok {
		return fmt.Errorf("no tech tile on %s", pos)
	}
	p.TechTiles = append(p.TechTiles, player.TechTile{Position: pos, Tile: tile})
	up := FollowUp{Kind: FollowResearch, Player: pid}
	if f, err := board.ParseField(pos); err == nil {
		up.Field = f
	}
	e.resolve(up)
	e.notify(pid, p.LoadEvents("tech-"+pos, eventsOf(e.cat.Tech[tile]), e.counter(pid)))
	return nil
}

func (e *Engine) cover(pid int, pos string) error {
	p := e.Players[pid]
	e.resolve()
	for i := range p.TechTiles {
		t := &p.TechTiles[i]
		if t.Position == pos && !t.Advanced && !t.Covered {
			t.Covered = true
			p.RemoveEvents("tech-" + pos)
			return nil
		}
	}
	return fmt.Errorf("no tech tile to cover on %s", pos)
}

func (e *Engine) lostPlanet(pid int, c LostPlanetCmd) error {
	e.resolve()
	h := e.Map.Get(c.Coord)
	if h == nil || h.Planet != board.Empty {
		return fmt.Errorf("cannot place the lost planet on %s", c.Coord)
	}
	h.Planet, h.Building, h.Player = board.Lost, board.Mine, pid
	e.joinFederations(pid, c.Coord)
	p := e.Players[pid]
	e.notify(pid, p.Trigger(reward.CondLostPlanet, 1))
	e.Turn.Built = append(e.Turn.Built, c.Coord)
	return nil
}

func (e *Engine) formFederation(pid int, c FederationCmd) error {
	if e.Tiles.Federations[c.Tile] <= 0 {
		return fmt.Errorf("no %s tile left", c.Tile)
	}
	info, err := e.matchFederation(pid, c.Hexes)
	if err != nil {
		return err
	}
	p := e.Players[pid]
	if err := p.Data.Power.PlaceOnBoard(info.Satellites); err != nil {
		return err
	}
	for _, coord := range info.Hexes {
		h := e.Map.Get(coord)
		if h.Player == pid && h.Occupied() {
			h.Federated = true
		} else {
			h.Satellites = append(h.Satellites, pid)
		}
	}
	p.Data.Satellites += info.Satellites
	e.absorbNeighbours(pid)
	e.Tiles.Federations[c.Tile]--
	e.Turn.MainDone = true
	e.takeFederation(pid, c.Tile)
	return nil
}

// matchFederation finds the offered federation with exactly these hexes,
// or validates a hand-picked one in flexible mode.
func (e *Engine) matchFederation(pid int, hexes []hex.Coord) (federation.Info, error) {
	key := federation.Key(hexes)
	for _, info := range e.Federations(pid) {
		if info.Key() == key {
			return info, nil
		}
	}
	if e.Options.FlexibleFederations {
		return federation.Validate(e.federationRequest(pid), hexes)
	}
	return federation.Info{}, fmt.Errorf("%s is not an available federation", key)
}

func (e *Engine) takeIncome(pid int, rewards []reward.Reward) error {
	text := reward.Join(rewards)
	i := indexOf(e.IncomeItems, text)
	if i < 0 {
		return fmt.Errorf("no pending income %s", text)
	}
	e.IncomeItems = append(e.IncomeItems[:i:i], e.IncomeItems[i+1:]...)
	e.notify(pid, e.Players[pid].Gain(rewards))
	seq := income.New(e.Players[pid].Data.Power, parseItems(e.IncomeItems))
	if seq.NeedsManualSelection() {
		return nil
	}
	e.notify(pid, e.Players[pid].Gain(seq.AutoplayOrder()))
	e.IncomeItems = nil
	e.Queue = e.Queue[1:]
	return nil
}

func parseItems(texts []string) []reward.Reward {
	var out []reward.Reward
	for _, t := range texts {
		out = append(out, reward.MustParse(t)...)
	}
	return out
}
