// Package player implements a player's resources: the countable
// resources, the power token pool, research levels, building counts and the
// events granted by buildings and tiles. Every change goes through Gain or
// Pay; side effects the engine must resolve come back as Notifications.
package player

import (
	"errors"
	"fmt"
	"sort"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

var (
	// ErrInsufficient is returned when a cost cannot be paid.
	ErrInsufficient = errors.New("insufficient resources")
	// ErrMaxLevel is returned when advancing a maxed research track.
	ErrMaxLevel = errors.New("research track already at max level")
	// ErrNoFedToken is returned when the last research level is reached
	// without a green federation token.
	ErrNoFedToken = errors.New("a green federation token is required")
	// ErrNoEvent is returned when activating an unknown or used action.
	ErrNoEvent = errors.New("no such action available")
)

// Resource caps.
const (
	MaxCredits   = 30
	MaxOre       = 15
	MaxKnowledge = 15
)

// FedToken is a federation tile held by the player. Green tokens can be
// flipped to pay for the last research level or an advanced tile.
type FedToken struct {
	Tile  string `json:"tile"`
	Green bool   `json:"green"`
}

// TechTile is a tech tile held by the player, keyed by the position it was
// taken from.
type TechTile struct {
	Position string `json:"position"`
	Tile     string `json:"tile"`
	Advanced bool   `json:"advanced,omitempty"`
	Covered  bool   `json:"covered,omitempty"`
}

// Data is the serialisable resource state.
type Data struct {
	VP               int                    `json:"vp"`
	Credits          int                    `json:"credits"`
	Ore              int                    `json:"ore"`
	Knowledge        int                    `json:"knowledge"`
	Qic              int                    `json:"qic"`
	Power            Power                  `json:"power"`
	GaiaFormers      int                    `json:"gaiaFormers"`
	GaiaFormersSpent int                    `json:"gaiaFormersSpent,omitempty"`
	Research         map[board.Field]int    `json:"research"`
	Buildings        map[board.Building]int `json:"buildings"`
	FedTokens        []FedToken             `json:"fedTokens,omitempty"`
	Satellites       int                    `json:"satellites,omitempty"`
}

// Counter counts what an event condition refers to, from the engine's view
// of the board.
type Counter interface {
	Count(c reward.Condition) int
}

type zeroCounter struct{}

func (zeroCounter) Count(reward.Condition) int { return 0 }

// Player is one seat at the table.
type Player struct {
	ID        int                                `json:"id"`
	Faction   faction.Faction                    `json:"faction,omitempty"`
	Data      Data                               `json:"data"`
	Events    map[reward.Operator][]reward.Event `json:"events"`
	TechTiles []TechTile                         `json:"techTiles,omitempty"`
	Booster   string                             `json:"booster,omitempty"`

	board *faction.Board
	cat   *catalog.Catalog
}

// New sets up a player on its faction board: starting resources, bowls,
// base income and the starting research levels.
func New(id int, b *faction.Board, cat *catalog.Catalog) *Player {
	p := &Player{
		ID:      id,
		Faction: b.Faction,
		Data: Data{
			Power:     NewPower(b.Power.Area1, b.Power.Area2, b.Power.Area3, Area(b.Brainstone)),
			Research:  make(map[board.Field]int),
			Buildings: make(map[board.Building]int),
		},
		Events: make(map[reward.Operator][]reward.Event),
		cat:    cat,
	}
	p.Gain(b.Resources)
	p.board = b
	p.LoadEvents("board", b.Income, nil)
	for _, f := range board.Fields {
		for lvl := 1; lvl <= b.Research[f]; lvl++ {
			p.Data.Research[f] = lvl
			p.RemoveEvents(researchSource(f))
			p.LoadEvents(researchSource(f), p.levelEvents(f, lvl), nil)
		}
	}
	return p
}

// Attach restores the references a deserialised player cannot carry.
func (p *Player) Attach(b *faction.Board, cat *catalog.Catalog) {
	p.board, p.cat = b, cat
	if p.Events == nil {
		p.Events = make(map[reward.Operator][]reward.Event)
	}
}

// Board is the resolved faction board.
func (p *Player) Board() *faction.Board {
	return p.board
}

// Strategy is the faction's rule strategy.
func (p *Player) Strategy() faction.Strategy {
	return p.Faction.Strategy()
}

// Has reports whether the player has built at least one of kind.
func (p *Player) Has(kind board.Building) bool {
	return p.Data.Buildings[kind] > 0
}

// Gain adds rewards and returns the follow-ups they require.
func (p *Player) Gain(rewards []reward.Reward) []Notification {
	if p.board != nil {
		rewards = p.Strategy().ConvertGain(rewards, p.Has(board.Academy2))
	}
	var notes []Notification
	d := &p.Data
	for _, r := range rewards {
		switch r.Type {
		case reward.None:
		case reward.Credit:
			d.Credits = clamp(d.Credits+r.Count, MaxCredits)
		case reward.Ore:
			d.Ore = clamp(d.Ore+r.Count, MaxOre)
		case reward.Knowledge:
			d.Knowledge = clamp(d.Knowledge+r.Count, MaxKnowledge)
		case reward.Qic:
			d.Qic = max(0, d.Qic+r.Count)
		case reward.VP:
			d.VP = max(0, d.VP+r.Count)
		case reward.ChargePW:
			d.Power.Charge(r.Count)
		case reward.Token:
			d.Power.GainTokens(r.Count)
		case reward.GaiaFormer:
			d.GaiaFormers += r.Count
		case reward.Brainstone:
		default:
			if n, ok := notificationFor(r); ok {
				notes = append(notes, n)
			}
		}
	}
	return notes
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}

// CanPay reports whether costs are affordable.
func (p *Player) CanPay(costs []reward.Reward) bool {
	d := p.Data
	for _, r := range reward.Merge(costs) {
		var have int
		switch r.Type {
		case reward.Credit:
			have = d.Credits
		case reward.Ore:
			have = d.Ore
		case reward.Knowledge:
			have = d.Knowledge
		case reward.Qic:
			have = d.Qic
		case reward.VP:
			have = d.VP
		case reward.ChargePW:
			have = d.Power.Spendable() * p.powerValue()
		case reward.Token:
			have = d.Power.Tokens()
		case reward.Area3ToGaia:
			have = d.Power.Area3
		case reward.GaiaFormer:
			have = d.GaiaFormers
		default:
			return false
		}
		if have < r.Count {
			return false
		}
	}
	return true
}

// Pay removes costs, or fails without any change.
func (p *Player) Pay(costs []reward.Reward) error {
	if !p.CanPay(costs) {
		return fmt.Errorf("%w: cannot pay %s", ErrInsufficient, reward.Join(costs))
	}
	d := &p.Data
	for _, r := range reward.Merge(costs) {
		switch r.Type {
		case reward.Credit:
			d.Credits -= r.Count
		case reward.Ore:
			d.Ore -= r.Count
		case reward.Knowledge:
			d.Knowledge -= r.Count
		case reward.Qic:
			d.Qic -= r.Count
		case reward.VP:
			d.VP -= r.Count
		case reward.ChargePW:
			v := p.powerValue()
			if err := d.Power.Spend((r.Count + v - 1) / v); err != nil {
				return err
			}
		case reward.Area3ToGaia:
			d.Power.Area3 -= r.Count
			d.Power.Gaia += r.Count
		case reward.Token:
			if err := d.Power.Discard(r.Count); err != nil {
				return err
			}
		case reward.GaiaFormer:
			d.GaiaFormers -= r.Count
			d.GaiaFormersSpent += r.Count
		}
	}
	return nil
}

// ChargePower charges n power and returns how much was charged; the rest
// is wasted.
func (p *Player) ChargePower(n int) int {
	return p.Data.Power.Charge(n)
}

// powerValue is what one token of area 3 pays for.
func (p *Player) powerValue() int {
	return max(1, p.Strategy().PowerValue(p.Has(board.Institute)))
}

// BurnPower burns n power. Some factions keep the burnt tokens in the gaia
// area.
func (p *Player) BurnPower(n int) error {
	if err := p.Data.Power.Burn(n); err != nil {
		return err
	}
	if p.Strategy().BurnToGaia() {
		p.Data.Power.Supply -= n
		p.Data.Power.Gaia += n
	}
	return nil
}

// MaxLeech caps a leech offer of value at what the bowls can take and what
// the victory points can pay for.
func (p *Player) MaxLeech(value int) int {
	return min(value, p.Data.Power.Chargeable(), p.Data.VP+1)
}

// HasGreenToken reports whether a federation token can be flipped.
func (p *Player) HasGreenToken() bool {
	for _, t := range p.Data.FedTokens {
		if t.Green {
			return true
		}
	}
	return false
}

// FlipGreenToken turns the first green federation token.
func (p *Player) FlipGreenToken() error {
	for i := range p.Data.FedTokens {
		if p.Data.FedTokens[i].Green {
			p.Data.FedTokens[i].Green = false
			return nil
		}
	}
	return ErrNoFedToken
}

// CanUpgrade reports whether field can advance, ignoring the cost.
func (p *Player) CanUpgrade(field board.Field) bool {
	lvl := p.Data.Research[field]
	if lvl >= board.MaxLevel {
		return false
	}
	return lvl+1 < board.MaxLevel || p.HasGreenToken()
}

// UpgradeResearch advances field one level and applies the level's events.
// The last level flips a green federation token.
func (p *Player) UpgradeResearch(field board.Field, counter Counter) ([]Notification, error) {
	lvl := p.Data.Research[field]
	if lvl >= board.MaxLevel {
		return nil, fmt.Errorf("%w: %s", ErrMaxLevel, field)
	}
	if lvl+1 == board.MaxLevel {
		if err := p.FlipGreenToken(); err != nil {
			return nil, err
		}
	}
	p.Data.Research[field] = lvl + 1
	p.RemoveEvents(researchSource(field))
	return p.LoadEvents(researchSource(field), p.levelEvents(field, lvl+1), counter), nil
}

func researchSource(f board.Field) string {
	return "research-" + string(f)
}

func (p *Player) levelEvents(f board.Field, lvl int) []reward.Event {
	levels := p.cat.Research[string(f)]
	if lvl >= len(levels) {
		return nil
	}
	return catalog.Events(levels[lvl])
}

// LoadEvents applies one-time events immediately and files the others by
// operator under source.
func (p *Player) LoadEvents(source string, events []reward.Event, counter Counter) []Notification {
	if counter == nil {
		counter = zeroCounter{}
	}
	var notes []Notification
	for _, e := range reward.WithSource(events, source) {
		if e.Operator != reward.Once {
			p.Events[e.Operator] = append(p.Events[e.Operator], e)
			continue
		}
		rewards := e.Rewards
		if e.Condition != reward.NoCondition {
			rewards = reward.Scale(rewards, counter.Count(e.Condition))
		}
		notes = append(notes, p.Gain(rewards)...)
	}
	return notes
}

// RemoveEvents drops every stored event granted by source.
func (p *Player) RemoveEvents(source string) {
	for op, list := range p.Events {
		kept := list[:0]
		for _, e := range list {
			if e.Source != source {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(p.Events, op)
		} else {
			p.Events[op] = kept
		}
	}
}

// IncomeEvents lists the round income events in the order they were granted.
func (p *Player) IncomeEvents() []reward.Event {
	return append([]reward.Event(nil), p.Events[reward.Income]...)
}

// Trigger pays every trigger event on cond, times times.
func (p *Player) Trigger(cond reward.Condition, times int) []Notification {
	var notes []Notification
	for _, e := range p.Events[reward.Trigger] {
		if e.Condition == cond && times > 0 {
			notes = append(notes, p.Gain(reward.Scale(e.Rewards, times))...)
		}
	}
	return notes
}

// PassEvents pays the pass bonuses.
func (p *Player) PassEvents(counter Counter) []Notification {
	var notes []Notification
	for _, e := range p.Events[reward.Pass] {
		notes = append(notes, p.Gain(reward.Scale(e.Rewards, counter.Count(e.Condition)))...)
	}
	return notes
}

// HasSpecial reports whether a passive ability on cond is active.
func (p *Player) HasSpecial(cond reward.Condition) bool {
	for _, e := range p.Events[reward.Special] {
		if e.Condition == cond {
			return true
		}
	}
	return false
}

// Actions lists the unused activatable events.
func (p *Player) Actions() []reward.Event {
	var out []reward.Event
	for _, e := range p.Events[reward.Activate] {
		if !e.Activated {
			out = append(out, e)
		}
	}
	return out
}

// Activate uses the first unused action granting rewards.
func (p *Player) Activate(rewards []reward.Reward) ([]Notification, error) {
	list := p.Events[reward.Activate]
	for i := range list {
		if !list[i].Activated && reward.Equal(list[i].Rewards, rewards) {
			list[i].Activated = true
			return p.Gain(rewards), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoEvent, reward.Join(rewards))
}

// ResetActions makes every action usable again.
func (p *Player) ResetActions() {
	for i := range p.Events[reward.Activate] {
		p.Events[reward.Activate][i].Activated = false
	}
}

// Build records a new structure of kind and loads the income of its slot.
func (p *Player) Build(kind board.Building, counter Counter) []Notification {
	p.Data.Buildings[kind]++
	n := p.Data.Buildings[kind]
	spec := p.board.Building(kind)
	var notes []Notification
	if n <= len(spec.Income) {
		notes = p.LoadEvents(slotSource(kind, n), spec.Income[n-1], counter)
	}
	return append(notes, p.Gain(spec.Gain)...)
}

// Demolish removes the last structure of kind, typically when upgrading it.
func (p *Player) Demolish(kind board.Building) {
	n := p.Data.Buildings[kind]
	if n == 0 {
		return
	}
	p.RemoveEvents(slotSource(kind, n))
	p.Data.Buildings[kind]--
}

func slotSource(kind board.Building, n int) string {
	return fmt.Sprintf("%s%d", kind, n)
}

// Conversions lists the free actions available now.
func (p *Player) Conversions() []faction.Conversion {
	out := append([]faction.Conversion(nil), p.board.Conversions...)
	if p.Has(board.Institute) {
		out = append(out, p.Strategy().PIConversions()...)
	}
	return out
}

// ActiveTechTiles lists uncovered tech tiles ordered by position.
func (p *Player) ActiveTechTiles() []TechTile {
	var out []TechTile
	for _, t := range p.TechTiles {
		if !t.Covered {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Clone deep-copies the player. Board and catalog are shared.
func (p *Player) Clone() *Player {
	cp := *p
	cp.Data.Research = make(map[board.Field]int, len(p.Data.Research))
	for k, v := range p.Data.Research {
		cp.Data.Research[k] = v
	}
	cp.Data.Buildings = make(map[board.Building]int, len(p.Data.Buildings))
	for k, v := range p.Data.Buildings {
		cp.Data.Buildings[k] = v
	}
	cp.Data.FedTokens = append([]FedToken(nil), p.Data.FedTokens...)
	cp.TechTiles = append([]TechTile(nil), p.TechTiles...)
	cp.Events = make(map[reward.Operator][]reward.Event, len(p.Events))
	for op, list := range p.Events {
		events := make([]reward.Event, len(list))
		for i, e := range list {
			e.Rewards = append([]reward.Reward(nil), e.Rewards...)
			events[i] = e
		}
		cp.Events[op] = events
	}
	return &cp
}
