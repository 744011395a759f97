package engine

import (
	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
)

// LogEntry is one line of the advanced log: what a command or an automatic
// step changed for one player. By is the seat whose command caused it, or
// board.NoPlayer for income, the gaia phase and final scoring.
type LogEntry struct {
	Move    int            `json:"move"`
	Player  int            `json:"player"`
	By      int            `json:"by"`
	Round   int            `json:"round"`
	Phase   Phase          `json:"phase"`
	Command string         `json:"command"`
	Changes map[string]int `json:"changes,omitempty"`
}

// playerData copies the counters of every seat for a later diff.
func (e *Engine) playerData() []player.Data {
	out := make([]player.Data, len(e.Players))
	for i, p := range e.Players {
		out[i] = p.Data
	}
	return out
}

// record logs a command: one entry for the actor, changed or not, then one
// for every other seat it affected.
func (e *Engine) record(pid int, cmd Command, before []player.Data) {
	e.Log = append(e.Log, e.entry(pid, pid, cmd.String(), diff(before[pid], e.Players[pid].Data)))
	for seat, p := range e.Players {
		if seat == pid {
			continue
		}
		if changes := diff(before[seat], p.Data); changes != nil {
			e.Log = append(e.Log, e.entry(seat, pid, cmd.String(), changes))
		}
	}
}

// recordStep logs what an automatic step changed, one entry per seat.
func (e *Engine) recordStep(step string, before []player.Data) {
	for seat, p := range e.Players {
		if changes := diff(before[seat], p.Data); changes != nil {
			e.Log = append(e.Log, e.entry(seat, board.NoPlayer, step, changes))
		}
	}
}

func (e *Engine) entry(pid, by int, what string, changes map[string]int) LogEntry {
	return LogEntry{
		Move:    len(e.Moves),
		Player:  pid,
		By:      by,
		Round:   e.Round,
		Phase:   e.Phase,
		Command: what,
		Changes: changes,
	}
}

// diff reports the resource deltas between two states of a player.
func diff(a, b player.Data) map[string]int {
	out := make(map[string]int)
	put := func(key string, from, to int) {
		if to != from {
			out[key] = to - from
		}
	}
	put("vp", a.VP, b.VP)
	put("c", a.Credits, b.Credits)
	put("o", a.Ore, b.Ore)
	put("k", a.Knowledge, b.Knowledge)
	put("q", a.Qic, b.Qic)
	put("gf", a.GaiaFormers, b.GaiaFormers)
	put("area1", a.Power.Area1, b.Power.Area1)
	put("area2", a.Power.Area2, b.Power.Area2)
	put("area3", a.Power.Area3, b.Power.Area3)
	put("gaia", a.Power.Gaia, b.Power.Gaia)
	put("t", a.Power.Budget, b.Power.Budget)
	put("sat", a.Satellites, b.Satellites)
	if len(out) == 0 {
		return nil
	}
	return out
}
