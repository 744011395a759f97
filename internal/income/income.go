// Package income orders the power charges and token gains of a round's
// income so that as little power as possible is wasted.
package income

import (
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Split separates the rewards of income events into the power items whose
// order matters and the rest, merged.
func Split(events []reward.Event) (items []reward.Reward, rest []reward.Reward) {
	for _, e := range events {
		for _, r := range e.Rewards {
			switch {
			case r.IsEmpty():
			case r.Type == reward.ChargePW || r.Type == reward.Token:
				items = append(items, r)
			default:
				rest = append(rest, r)
			}
		}
	}
	return items, reward.Merge(rest)
}

// Sequencer picks the order of pending income items.
type Sequencer struct {
	Power player.Power
	Items []reward.Reward
}

// New returns a sequencer for the given pool and pending items.
func New(power player.Power, items []reward.Reward) *Sequencer {
	return &Sequencer{Power: power, Items: append([]reward.Reward(nil), items...)}
}

// NeedsManualSelection reports whether the order can change the outcome:
// only when both charges and token gains are pending.
func (s *Sequencer) NeedsManualSelection() bool {
	var charge, tokens bool
	for _, r := range s.Items {
		switch r.Type {
		case reward.ChargePW:
			charge = true
		case reward.Token:
			tokens = true
		}
	}
	return charge && tokens
}

// Result is the outcome of applying items in some order.
type Result struct {
	Waste int
	Area3 int
	Power player.Power
}

// Simulate applies order to a copy of the pool.
func (s *Sequencer) Simulate(order []reward.Reward) Result {
	p := s.Power
	waste := 0
	for _, r := range order {
		switch r.Type {
		case reward.ChargePW:
			waste += r.Count - p.Charge(r.Count)
		case reward.Token:
			p.GainTokens(r.Count)
		}
	}
	top := p.Area3
	if p.Brainstone == player.Area3 {
		top++
	}
	return Result{Waste: waste, Area3: top, Power: p}
}

// Orderings enumerates the distinct orders of the items, in lexicographic
// order of item positions.
func (s *Sequencer) Orderings() [][]reward.Reward {
	n := len(s.Items)
	used := make([]bool, n)
	cur := make([]reward.Reward, 0, n)
	seen := make(map[string]bool)
	var out [][]reward.Reward

	var walk func()
	walk = func() {
		if len(cur) == n {
			key := reward.Join(cur)
			if !seen[key] {
				seen[key] = true
				out = append(out, append([]reward.Reward(nil), cur...))
			}
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, s.Items[i])
			walk()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	walk()
	return out
}

// AutoplayOrder returns the order wasting the least power, ties going to
// the most tokens in area 3, then to the first order enumerated.
func (s *Sequencer) AutoplayOrder() []reward.Reward {
	if !s.NeedsManualSelection() {
		return append([]reward.Reward(nil), s.Items...)
	}
	var best []reward.Reward
	var bestResult Result
	for _, order := range s.Orderings() {
		res := s.Simulate(order)
		if best == nil || res.Waste < bestResult.Waste ||
			(res.Waste == bestResult.Waste && res.Area3 > bestResult.Area3) {
			best, bestResult = order, res
		}
	}
	return best
}
