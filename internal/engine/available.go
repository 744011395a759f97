package engine

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/federation"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Option is one legal argument list of a command. Min and Max bound a
// numeric last argument (bids, burns, conversion multiples).
type Option struct {
	Args []string `json:"args,omitempty"`
	Cost string   `json:"cost,omitempty"`
	Min  int      `json:"min,omitempty"`
	Max  int      `json:"max,omitempty"`
}

// AvailableCommand is a command a player may issue now, with every legal
// argument list.
type AvailableCommand struct {
	Name    string   `json:"name"`
	Player  int      `json:"player"`
	Options []Option `json:"options,omitempty"`
}

// AvailableCommands lists the commands legal in the current state. The
// result is cached until the state changes.
func (e *Engine) AvailableCommands() []AvailableCommand {
	if !e.cached {
		e.available = e.generate()
		e.cached = true
	}
	return e.available
}

func (e *Engine) generate() []AvailableCommand {
	if e.Broken != "" || e.Phase == PhaseEndGame {
		return nil
	}
	if len(e.Pending) > 0 {
		f := e.Pending[0]
		return commandsOf(f.Player, f.command(), e.followUpOptions(f))
	}
	pid := e.Actor()
	if pid < 0 {
		return nil
	}
	switch e.Phase {
	case PhaseSetupFaction:
		return commandsOf(pid, CmdFaction, e.factionOptions())
	case PhaseSetupAuction:
		return commandsOf(pid, CmdBid, e.bidOptions())
	case PhaseSetupBuilding:
		return commandsOf(pid, CmdBuild, e.setupBuildOptions(pid))
	case PhaseSetupBooster:
		return commandsOf(pid, CmdBooster, argOptions(e.Tiles.Boosters))
	case PhaseRoundIncome:
		return commandsOf(pid, CmdIncome, argOptions(distinct(e.IncomeItems)))
	case PhaseRoundLeech:
		return e.leechCommands()
	case PhaseRoundMove:
		return e.moveCommands(pid)
	}
	return nil
}

func commandsOf(pid int, name string, opts []Option) []AvailableCommand {
	if len(opts) == 0 {
		return nil
	}
	return []AvailableCommand{{Name: name, Player: pid, Options: opts}}
}

func argOptions(args []string) []Option {
	out := make([]Option, len(args))
	for i, a := range args {
		out[i] = Option{Args: []string{a}}
	}
	return out
}

func distinct(list []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) factionOptions() []Option {
	taken := make(map[string]bool)
	planets := make(map[string]bool)
	mark := func(f faction.Faction) {
		taken[string(f)] = true
		planets[e.cat.Factions[string(f)].Planet] = true
	}
	for _, p := range e.Players {
		if p.Faction != "" {
			mark(p.Faction)
		}
	}
	for _, b := range e.Auction {
		mark(b.Faction)
	}
	var out []Option
	for _, f := range faction.All {
		def, ok := e.cat.Factions[string(f)]
		if !ok || !f.Selectable() || taken[string(f)] || planets[def.Planet] {
			continue
		}
		out = append(out, Option{Args: []string{string(f)}})
	}
	return out
}

func (e *Engine) bidOptions() []Option {
	out := make([]Option, 0, len(e.Auction))
	for _, b := range e.Auction {
		o := Option{Args: []string{string(b.Faction)}}
		if b.Player != board.NoPlayer {
			o.Min = b.VP + 1
		}
		out = append(out, o)
	}
	return out
}

func (e *Engine) setupBuildOptions(pid int) []Option {
	kind := e.setupBuilding(pid)
	home := e.Players[pid].Board().Planet
	var out []Option
	for _, h := range e.Map.List() {
		if h.Planet == home && !h.Occupied() {
			out = append(out, Option{Args: []string{string(kind), h.Coord.String()}})
		}
	}
	return out
}

func (e *Engine) leechCommands() []AvailableCommand {
	offer := e.Leech[0]
	p := e.Players[offer.Player]
	capped := p.MaxLeech(offer.Value)
	charge := fmt.Sprintf("%dpw", capped)
	opts := []Option{{Args: []string{charge}}}
	if p.Strategy().LeechTokenChoice(p.Has(board.Institute)) {
		after := p.Clone()
		after.Data.Power.GainTokens(1)
		opts = []Option{
			{Args: []string{charge + ",1t"}},
			{Args: []string{fmt.Sprintf("1t,%dpw", after.MaxLeech(offer.Value))}},
		}
	}
	return []AvailableCommand{
		{Name: CmdCharge, Player: offer.Player, Options: opts},
		{Name: CmdDecline, Player: offer.Player, Options: []Option{{Args: []string{charge}}}},
	}
}

func (e *Engine) moveCommands(pid int) []AvailableCommand {
	p := e.Players[pid]
	var out []AvailableCommand
	add := func(name string, opts []Option) {
		out = append(out, commandsOf(pid, name, opts)...)
	}
	if !e.Turn.MainDone {
		add(CmdBuild, buildArgs(e.buildOptions(pid, nil)))
		add(CmdUp, e.researchOptions(pid, "", true))
		add(CmdAction, e.boardActionOptions(pid))
		add(CmdSpecial, e.specialOptions(pid))
		add(CmdFederation, e.federationOptions(pid))
		if e.Round < LastRound {
			add(CmdPass, argOptions(e.Tiles.Boosters))
		} else {
			add(CmdPass, []Option{{}})
		}
	}
	if n := p.Data.Power.Burnable(); n > 0 {
		add(CmdBurn, []Option{{Min: 1, Max: n}})
	}
	add(CmdSpend, e.conversionOptions(pid))
	return out
}

func (e *Engine) followUpOptions(f FollowUp) []Option {
	switch f.Kind {
	case FollowTech:
		return e.techOptions(f.Player)
	case FollowCover:
		var out []Option
		for _, t := range e.Players[f.Player].ActiveTechTiles() {
			if !t.Advanced {
				out = append(out, Option{Args: []string{t.Position}})
			}
		}
		return out
	case FollowResearch:
		opts := e.researchOptions(f.Player, f.Field, false)
		if f.Lowest {
			return e.lowestTracks(f.Player, opts)
		}
		return opts
	case FollowDowngrade:
		return buildArgs(e.downgradeOptions(f.Player))
	case FollowSwap:
		return buildArgs(e.swapOptions(f.Player))
	case FollowBuild:
		return buildArgs(e.buildOptions(f.Player, &f))
	case FollowLostPlanet:
		return e.lostPlanetOptions(f.Player)
	case FollowFedTile:
		var tiles []string
		for _, t := range e.Players[f.Player].Data.FedTokens {
			tiles = append(tiles, t.Tile)
		}
		return argOptions(distinct(tiles))
	case FollowBrainstone:
		stone := e.Players[f.Player].Data.Power.Brainstone
		if stone == player.NoArea || stone == player.AreaGaia {
			return nil
		}
		return argOptions([]string{string(stone), string(player.AreaGaia)})
	}
	return nil
}

// canAdvance reports whether pid may take one more step on field. The last
// level is reserved for the first player to reach it.
func (e *Engine) canAdvance(pid int, field board.Field) bool {
	p := e.Players[pid]
	if !p.CanUpgrade(field) {
		return false
	}
	if p.Data.Research[field]+1 == board.MaxLevel {
		for i, q := range e.Players {
			if i != pid && q.Data.Research[field] == board.MaxLevel {
				return false
			}
		}
	}
	return true
}

func (e *Engine) researchOptions(pid int, only board.Field, paid bool) []Option {
	p := e.Players[pid]
	cost := reward.MustParse(researchCost)
	if paid && !p.CanPay(cost) {
		return nil
	}
	var out []Option
	for _, f := range board.Fields {
		if only != "" && f != only {
			continue
		}
		if !e.canAdvance(pid, f) {
			continue
		}
		o := Option{Args: []string{string(f)}}
		if paid {
			o.Cost = researchCost
		}
		out = append(out, o)
	}
	return out
}

const researchCost = "4k"

// lowestTracks keeps the options on the tracks where pid is lowest.
func (e *Engine) lowestTracks(pid int, opts []Option) []Option {
	levels := e.Players[pid].Data.Research
	low := board.MaxLevel
	for _, o := range opts {
		low = min(low, levels[board.Field(o.Args[0])])
	}
	var out []Option
	for _, o := range opts {
		if levels[board.Field(o.Args[0])] == low {
			out = append(out, o)
		}
	}
	return out
}

// actionUsable reports whether a special action would leave a choice the
// player can make.
func (e *Engine) actionUsable(pid int, rewards []reward.Reward) bool {
	for _, r := range rewards {
		switch r.Type {
		case reward.DowngradeLab:
			if len(e.downgradeOptions(pid)) == 0 {
				return false
			}
		case reward.SwapInstitute:
			if len(e.swapOptions(pid)) == 0 {
				return false
			}
		}
	}
	return true
}

func (e *Engine) boardActionOptions(pid int) []Option {
	p := e.Players[pid]
	var out []Option
	for _, id := range catalog.SortedKeys(e.cat.Actions) {
		if e.BoardActions[id] {
			continue
		}
		def := e.cat.Actions[id]
		if !p.CanPay(reward.MustParse(def.Cost)) {
			continue
		}
		out = append(out, Option{Args: []string{id}, Cost: def.Cost})
	}
	return out
}

func (e *Engine) specialOptions(pid int) []Option {
	var texts []string
	for _, ev := range e.Players[pid].Actions() {
		if !e.actionUsable(pid, ev.Rewards) {
			continue
		}
		texts = append(texts, reward.Join(ev.Rewards))
	}
	return argOptions(distinct(texts))
}

func (e *Engine) conversionOptions(pid int) []Option {
	p := e.Players[pid]
	var out []Option
	for _, c := range p.Conversions() {
		n := 0
		for n < 64 && p.CanPay(reward.Scale(c.Cost, n+1)) {
			n++
		}
		if n == 0 {
			continue
		}
		out = append(out, Option{
			Args: []string{reward.Join(c.Cost), "for", reward.Join(c.Gain)},
			Min:  1,
			Max:  n,
		})
	}
	return out
}

func (e *Engine) techOptions(pid int) []Option {
	p := e.Players[pid]
	owned := make(map[string]bool)
	standard := false
	for _, t := range p.TechTiles {
		owned[t.Tile] = true
		if !t.Advanced && !t.Covered {
			standard = true
		}
	}
	var out []Option
	for _, pos := range TechPositions {
		if tile, ok := e.Tiles.Tech[pos]; ok && !owned[tile] {
			out = append(out, Option{Args: []string{pos}})
		}
	}
	if standard && p.HasGreenToken() {
		for _, f := range board.Fields {
			if _, ok := e.Tiles.Advanced[string(f)]; ok && p.Data.Research[f] >= 4 {
				out = append(out, Option{Args: []string{AdvancedPrefix + string(f)}})
			}
		}
	}
	return out
}

func (e *Engine) lostPlanetOptions(pid int) []Option {
	reach := e.navRange(pid)
	var out []Option
	for _, h := range e.Map.List() {
		if h.Planet != board.Empty || len(h.Satellites) > 0 {
			continue
		}
		if d := e.Map.Distance(h.Coord, pid); d >= 0 && d <= reach {
			out = append(out, Option{Args: []string{h.Coord.String()}})
		}
	}
	return out
}

func (e *Engine) federationRequest(pid int) federation.Request {
	p := e.Players[pid]
	var buildings []federation.Building
	for _, h := range e.Map.OwnedBy(pid) {
		if h.Building == board.GaiaFormer || h.Federated || e.touchesFederation(pid, h.Coord) {
			continue
		}
		buildings = append(buildings, federation.Building{Coord: h.Coord, Power: e.buildingPower(pid, h)})
	}
	return federation.Request{
		Buildings: buildings,
		Passable: func(c hex.Coord) bool {
			h := e.Map.Get(c)
			return h != nil && h.Planet == board.Empty && !h.HasSatellite(pid) && !e.touchesFederation(pid, c)
		},
		Threshold:     p.Strategy().FederationThreshold(p.Board().FederationThreshold, p.Has(board.Institute)),
		MaxSatellites: p.Data.Power.Tokens(),
	}
}

// federationTiles lists the tiles left in supply.
func (e *Engine) federationTiles() []string {
	var out []string
	for _, id := range catalog.SortedKeys(e.Tiles.Federations) {
		if e.Tiles.Federations[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

// anyHexes stands for a hand-picked hex set in flexible federation mode.
const anyHexes = "*"

// Federations lists the federations pid could form now.
func (e *Engine) Federations(pid int) []federation.Info {
	infos := federation.NewSearcher(e.Options.FederationSearch).Search(e.federationRequest(pid))
	if e.Options.FlexibleFederations {
		return infos
	}
	return federation.Prune(infos)
}

func (e *Engine) federationOptions(pid int) []Option {
	tiles := e.federationTiles()
	if len(tiles) == 0 {
		return nil
	}
	var out []Option
	for _, info := range e.Federations(pid) {
		for _, tile := range tiles {
			out = append(out, Option{Args: []string{info.Key(), tile}, Cost: strconv.Itoa(info.Satellites) + "t"})
		}
	}
	if e.Options.FlexibleFederations {
		for _, tile := range tiles {
			out = append(out, Option{Args: []string{anyHexes, tile}})
		}
	}
	return out
}

// check accepts cmd only when it matches an available option of pid.
func (e *Engine) check(pid int, cmd Command, text string) error {
	avail := e.AvailableCommands()
	for _, a := range avail {
		if a.Player != pid || a.Name != cmd.Name() {
			continue
		}
		for _, o := range a.Options {
			if e.matches(cmd, o) {
				return nil
			}
		}
		return &IllegalMoveError{Move: text, Command: cmd.String(), Reason: "arguments not available", Available: avail}
	}
	reason := fmt.Sprintf("%s cannot %s now", e.PlayerName(pid), cmd.Name())
	return &IllegalMoveError{Move: text, Command: cmd.String(), Reason: reason, Available: avail}
}

func (e *Engine) matches(cmd Command, o Option) bool {
	switch c := cmd.(type) {
	case BidCmd:
		return o.Args[0] == string(c.Faction) && c.VP >= o.Min
	case BurnCmd:
		return c.Power >= o.Min && c.Power <= o.Max
	case DeclineCmd:
		return len(c.Rewards) == 0 || slices.Equal(c.Args(), o.Args)
	case SpendCmd:
		cost, _ := reward.Parse(o.Args[0])
		gain, _ := reward.Parse(o.Args[2])
		for n := o.Min; n <= o.Max; n++ {
			if reward.Equal(c.Cost, reward.Scale(cost, n)) && reward.Equal(c.Gain, reward.Scale(gain, n)) {
				return true
			}
		}
		return false
	case FederationCmd:
		if e.Options.FlexibleFederations && o.Args[1] == c.Tile {
			return true
		}
	}
	return slices.Equal(cmd.Args(), o.Args)
}
