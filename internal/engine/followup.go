package engine

import (
	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// FollowUpKind is a choice a gain left open.
type FollowUpKind string

const (
	FollowTech       FollowUpKind = "tech"
	FollowCover      FollowUpKind = "cover"
	FollowResearch   FollowUpKind = "up"
	FollowBuild      FollowUpKind = "build"
	FollowLostPlanet FollowUpKind = "lostPlanet"
	FollowFedTile    FollowUpKind = "fedtile"
	FollowBrainstone FollowUpKind = "brainstone"
	FollowDowngrade  FollowUpKind = "downgrade"
	FollowSwap       FollowUpKind = "swap"
)

// FollowUp is a pending choice. Only the first one in the queue can be
// resolved. Field restricts a research step and Lowest limits it to the
// player's lowest tracks; Steps and Range are the free terraforming steps
// and extra range of a pending build.
type FollowUp struct {
	Kind   FollowUpKind `json:"kind"`
	Player int          `json:"player"`
	Field  board.Field  `json:"field,omitempty"`
	Lowest bool         `json:"lowest,omitempty"`
	Steps  int          `json:"steps,omitempty"`
	Range  int          `json:"range,omitempty"`
}

// command is the move text command that resolves the follow-up.
func (f FollowUp) command() string {
	switch f.Kind {
	case FollowTech:
		return CmdTech
	case FollowCover:
		return CmdCover
	case FollowResearch:
		return CmdUp
	case FollowBuild, FollowDowngrade, FollowSwap:
		return CmdBuild
	case FollowLostPlanet:
		return CmdLostPlanet
	case FollowFedTile:
		return CmdFedTile
	case FollowBrainstone:
		return CmdBrainstone
	}
	return ""
}

func (e *Engine) hasPending(pid int) bool {
	for _, f := range e.Pending {
		if f.Player == pid {
			return true
		}
	}
	return false
}

// notify turns notifications into follow-ups at the back of the queue.
// Terraforming and range bonuses fold into a single pending build.
func (e *Engine) notify(pid int, notes []player.Notification) {
	for _, n := range notes {
		switch n.Kind {
		case player.NotifyTech:
			for i := 0; i < n.Count; i++ {
				e.Pending = append(e.Pending, FollowUp{Kind: FollowTech, Player: pid})
			}
		case player.NotifyResearch:
			for i := 0; i < n.Count; i++ {
				e.Pending = append(e.Pending, FollowUp{Kind: FollowResearch, Player: pid, Field: n.Field})
			}
		case player.NotifyTerraform, player.NotifyRange:
			f := e.pendingBuild(pid)
			if n.Kind == player.NotifyTerraform {
				f.Steps += n.Count
			} else {
				f.Range += n.Count
			}
		case player.NotifyLostPlanet:
			e.Pending = append(e.Pending, FollowUp{Kind: FollowLostPlanet, Player: pid})
		case player.NotifyFedRescore:
			e.Pending = append(e.Pending, FollowUp{Kind: FollowFedTile, Player: pid})
		case player.NotifyFedToken:
			e.grantTerraFederation(pid)
		case player.NotifyLowest:
			e.Pending = append(e.Pending, FollowUp{Kind: FollowResearch, Player: pid, Lowest: true})
		case player.NotifyDowngrade:
			e.Pending = append(e.Pending, FollowUp{Kind: FollowDowngrade, Player: pid})
		case player.NotifySwap:
			e.Pending = append(e.Pending, FollowUp{Kind: FollowSwap, Player: pid})
		}
	}
}

func (e *Engine) pendingBuild(pid int) *FollowUp {
	for i := range e.Pending {
		if e.Pending[i].Kind == FollowBuild && e.Pending[i].Player == pid {
			return &e.Pending[i]
		}
	}
	e.Pending = append(e.Pending, FollowUp{Kind: FollowBuild, Player: pid})
	return &e.Pending[len(e.Pending)-1]
}

// resolve removes the head follow-up and puts more in front of the rest.
func (e *Engine) resolve(next ...FollowUp) {
	rest := e.Pending[1:]
	e.Pending = append(append([]FollowUp(nil), next...), rest...)
}

// dropUnresolvable discards head follow-ups nothing can satisfy, such as
// a research step on a maxed track.
func (e *Engine) dropUnresolvable() {
	for len(e.Pending) > 0 && len(e.followUpOptions(e.Pending[0])) == 0 {
		e.Pending = e.Pending[1:]
		e.invalidate()
	}
}

// grantTerraFederation gives the tile above the terraforming track.
func (e *Engine) grantTerraFederation(pid int) {
	tile := e.Tiles.TerraFederation
	if tile == "" {
		return
	}
	e.Tiles.TerraFederation = ""
	e.takeFederation(pid, tile)
}

// takeFederation hands a federation tile to pid and pays it out.
func (e *Engine) takeFederation(pid int, tile string) {
	p := e.Players[pid]
	def := e.cat.Federations[tile]
	p.Data.FedTokens = append(p.Data.FedTokens, player.FedToken{Tile: tile, Green: !def.Gray})
	e.notify(pid, p.LoadEvents("fed-"+tile, eventsOf(def.Events), e.counter(pid)))
	e.notify(pid, p.Trigger(reward.CondFederation, 1))
}
