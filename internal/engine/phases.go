package engine

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/income"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Bid holds a faction in the setup auction. Player is board.NoPlayer until
// someone bids.
type Bid struct {
	Faction faction.Faction `json:"faction"`
	Player  int             `json:"player"`
	VP      int             `json:"vp"`
}

// advance runs the automatic phases until a player has to act.
func (e *Engine) advance() {
	for {
		switch e.Phase {
		case PhaseSetupFaction:
			if len(e.Queue) > 0 {
				return
			}
			if e.Options.Auction {
				e.Phase = PhaseSetupAuction
				e.Queue = seats(len(e.Players))
				continue
			}
			e.startSetupBuilding()
		case PhaseSetupAuction:
			if len(e.Queue) > 0 {
				return
			}
			if e.resolveAuction(); e.Broken != "" {
				return
			}
			e.startSetupBuilding()
		case PhaseSetupBuilding:
			if len(e.Queue) > 0 {
				return
			}
			e.Turn = TurnState{}
			e.Phase = PhaseSetupBooster
			e.Queue = seats(len(e.Players))
			slices.Reverse(e.Queue)
		case PhaseSetupBooster:
			if len(e.Queue) > 0 {
				return
			}
			e.TurnOrder = seats(len(e.Players))
			e.Phase = PhaseRoundStart
		case PhaseRoundStart:
			e.startRound()
		case PhaseRoundIncome:
			before := e.playerData()
			done := e.processIncome()
			e.recordStep("income", before)
			if !done {
				return
			}
			e.Phase = PhaseRoundGaia
		case PhaseRoundGaia:
			before := e.playerData()
			e.gaiaPhase()
			e.recordStep("gaia", before)
			e.Phase = PhaseRoundMove
			e.Current = e.TurnOrder[0]
			e.Turn = TurnState{}
			return
		case PhaseRoundLeech:
			for len(e.Leech) > 0 && e.Players[e.Leech[0].Player].MaxLeech(e.Leech[0].Value) == 0 {
				e.Leech = e.Leech[1:]
			}
			if len(e.Leech) > 0 {
				return
			}
			e.Phase = PhaseRoundMove
			e.nextPlayer()
		case PhaseRoundFinish:
			e.finishRound()
		default:
			return
		}
	}
}

// startSetupBuilding queues the initial placements: one mine each in seat
// order, a second in reverse order, then the extra mines and institutes
// some factions place.
func (e *Engine) startSetupBuilding() {
	n := len(e.Players)
	var q []int
	for i := 0; i < n; i++ {
		if e.Players[i].Strategy().SetupMines() >= 1 {
			q = append(q, i)
		}
	}
	for i := n - 1; i >= 0; i-- {
		if e.Players[i].Strategy().SetupMines() >= 2 {
			q = append(q, i)
		}
	}
	for i := 0; i < n; i++ {
		if e.Players[i].Strategy().SetupMines() >= 3 {
			q = append(q, i)
		}
	}
	for i := 0; i < n; i++ {
		if e.Players[i].Strategy().SetupInstitute() {
			q = append(q, i)
		}
	}
	e.Phase = PhaseSetupBuilding
	e.Queue = q
}

// resolveAuction gives every faction to the player holding its bid and
// charges the bid. Seats do not move.
func (e *Engine) resolveAuction() {
	for _, b := range e.Auction {
		if b.Player < 0 || b.Player >= len(e.Players) {
			e.Broken = fmt.Sprintf("nobody won %s", b.Faction)
			return
		}
		fb, err := faction.Resolve(e.cat, b.Faction)
		if err != nil {
			e.Broken = err.Error()
			return
		}
		p := player.New(b.Player, fb, e.cat)
		p.Data.VP = max(0, p.Data.VP-b.VP)
		e.Players[b.Player] = p
	}
	e.Auction = nil
}

func (e *Engine) startRound() {
	e.Round++
	e.Passed = nil
	e.IncomeItems = nil
	tile := e.Tiles.ScoringTile(e.Round)
	for pid, p := range e.Players {
		if tile != "" {
			e.notify(pid, p.LoadEvents("round", eventsOf(e.cat.Scoring[tile]), e.counter(pid)))
		}
	}
	e.Queue = append([]int(nil), e.TurnOrder...)
	e.Phase = PhaseRoundIncome
	log.Info().Int("round", e.Round).Str("scoring", tile).Msg("round started")
}

// processIncome pays the income of every queued player. It stops when a
// player has to choose the order of charges and token gains.
func (e *Engine) processIncome() bool {
	for len(e.Queue) > 0 {
		pid := e.Queue[0]
		if len(e.IncomeItems) > 0 {
			return false
		}
		p := e.Players[pid]
		items, rest := income.Split(p.IncomeEvents())
		e.notify(pid, p.Gain(rest))
		seq := income.New(p.Data.Power, items)
		if seq.NeedsManualSelection() && !e.Options.AutoIncome {
			for _, r := range items {
				e.IncomeItems = append(e.IncomeItems, r.String())
			}
			return false
		}
		e.notify(pid, p.Gain(seq.AutoplayOrder()))
		e.Queue = e.Queue[1:]
	}
	return true
}

// gaiaPhase returns the gaia area tokens and turns gaia-formed transdim
// planets into gaia planets.
func (e *Engine) gaiaPhase() {
	for pid, p := range e.Players {
		e.gaiaTechTrade(pid)
		p.Data.Power.GaiaReturn(p.Strategy().GaiaTokensToArea2())
		p.Data.GaiaFormers += p.Data.GaiaFormersSpent
		p.Data.GaiaFormersSpent = 0
	}
	for _, h := range e.Map.List() {
		if h.Planet == board.Transdim && h.Building == board.GaiaFormer {
			h.Planet = board.Gaia
		}
	}
}

// gaiaTechTrade turns gaia-area tokens into tech tiles for the factions
// that can, as many times as there are tiles left to take.
func (e *Engine) gaiaTechTrade(pid int) {
	p := e.Players[pid]
	n := p.Strategy().GaiaTechTrade(p.Has(board.Institute))
	if n == 0 {
		return
	}
	trades := min(p.Data.Power.Gaia/n, len(e.techOptions(pid)))
	p.Data.Power.Gaia -= trades * n
	p.Data.Power.Supply += trades * n
	for i := 0; i < trades; i++ {
		e.Pending = append(e.Pending, FollowUp{Kind: FollowTech, Player: pid})
	}
}

// endTurn closes the action of the current player and queues the leech
// offers of what they built.
func (e *Engine) endTurn() {
	built := e.Turn.Built
	e.Turn = TurnState{}
	e.Leech = e.leechOffers(e.Current, built)
	if len(e.Leech) > 0 {
		e.Phase = PhaseRoundLeech
		return
	}
	e.nextPlayer()
}

// leechOffers lists, in seat order after the builder, the players with a
// structure within distance 2 of each new building. The value is their
// strongest structure in range.
func (e *Engine) leechOffers(from int, built []hex.Coord) []LeechOffer {
	var out []LeechOffer
	n := len(e.Players)
	for _, c := range built {
		for i := 1; i < n; i++ {
			pid := (from + i) % n
			value := 0
			for _, h := range e.Map.Within(c, 2) {
				if h.Player == pid && h.Occupied() {
					value = max(value, e.buildingPower(pid, h))
				}
			}
			if value > 0 && e.Players[pid].MaxLeech(value) > 0 {
				out = append(out, LeechOffer{Player: pid, From: from, Value: value})
			}
		}
	}
	return out
}

// nextPlayer hands the turn to the next player in turn order who has not
// passed, or ends the round.
func (e *Engine) nextPlayer() {
	n := len(e.TurnOrder)
	idx := slices.Index(e.TurnOrder, e.Current)
	for i := 1; i <= n; i++ {
		cand := e.TurnOrder[(idx+i)%n]
		if !slices.Contains(e.Passed, cand) {
			e.Current = cand
			e.Turn = TurnState{}
			return
		}
	}
	e.Phase = PhaseRoundFinish
}

func (e *Engine) finishRound() {
	for _, p := range e.Players {
		p.RemoveEvents("round")
		p.ResetActions()
	}
	e.BoardActions = nil
	e.TurnOrder = append([]int(nil), e.Passed...)
	e.Passed = nil
	log.Info().Int("round", e.Round).Msg("round finished")
	if e.Round >= LastRound {
		e.finalScoring()
		e.Phase = PhaseEndGame
		return
	}
	e.Phase = PhaseRoundStart
}

// gainAll adds rewards to pid and queues their follow-ups.
func (e *Engine) gainAll(pid int, rewards []reward.Reward) {
	e.notify(pid, e.Players[pid].Gain(rewards))
}
