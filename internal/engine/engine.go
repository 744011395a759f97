// Package engine runs a game: it validates move text against the commands
// legal in the current state, applies them, and walks the phase state
// machine from setup to final scoring. The state is plain data; replaying
// the same options and moves always yields the same state.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/parser"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
)

// TurnState tracks the current player's turn during the action phase.
type TurnState struct {
	MainDone bool        `json:"mainDone,omitempty"`
	Open     bool        `json:"open,omitempty"`
	Built    []hex.Coord `json:"built,omitempty"`
}

// LeechOffer is a pending power charge for a neighbour of a new building.
type LeechOffer struct {
	Player int `json:"player"`
	From   int `json:"from"`
	Value  int `json:"value"`
}

// Engine is the whole game state.
type Engine struct {
	Options      Options          `json:"options"`
	Players      []*player.Player `json:"players"`
	Map          *board.Map       `json:"map"`
	Tiles        Tiles            `json:"tiles"`
	BoardActions map[string]bool  `json:"boardActions,omitempty"`
	Round        int              `json:"round"`
	Phase        Phase            `json:"phase"`
	TurnOrder    []int            `json:"turnOrder,omitempty"`
	Passed       []int            `json:"passed,omitempty"`
	Current      int              `json:"current"`
	Queue        []int            `json:"queue,omitempty"`
	Auction      []Bid            `json:"auction,omitempty"`
	Leech        []LeechOffer     `json:"leech,omitempty"`
	IncomeItems  []string         `json:"incomeItems,omitempty"`
	Pending      []FollowUp       `json:"pending,omitempty"`
	Turn         TurnState        `json:"turn"`
	Moves        []string         `json:"moves"`
	Log          []LogEntry       `json:"log,omitempty"`
	Broken       string           `json:"broken,omitempty"`

	cat       *catalog.Catalog
	available []AvailableCommand
	cached    bool
}

// New sets up a game: the map, the tiles and the empty seats. A nil
// catalog uses the embedded data.
func New(opts Options, cat *catalog.Catalog) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{Options: opts, Phase: PhaseSetupInit, Moves: []string{}, cat: cat}
	m, err := board.Generate(cat.Sectors, opts.Players, opts.Seed, opts.Layout == LayoutRotated)
	if err != nil {
		return nil, &InvariantError{Reason: err.Error()}
	}
	e.Map = m
	e.Phase = PhaseSetupBoard
	e.Tiles = newTiles(cat, opts)
	for i := 0; i < opts.Players; i++ {
		e.Players = append(e.Players, &player.Player{ID: i})
	}
	e.Phase = PhaseSetupFaction
	e.Queue = seats(opts.Players)
	log.Debug().Str("seed", opts.Seed).Int("players", opts.Players).Msg("game created")
	return e, nil
}

// Catalog is the static data the game runs on.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

func seats(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Move applies one line of move text. Illegal or unparsable moves leave
// the engine unchanged. An IncompleteMoveError keeps the move; the same
// player continues it next.
func (e *Engine) Move(text string) error {
	if e.Broken != "" {
		return &InvariantError{Reason: e.Broken}
	}
	if e.Phase == PhaseEndGame {
		return ErrGameOver
	}
	m, err := parser.Parse(text)
	if err != nil {
		return err
	}
	pid, err := e.playerIndex(m.Player)
	if err != nil {
		return &IllegalMoveError{Move: text, Command: m.Player, Reason: err.Error(), Available: e.AvailableCommands()}
	}
	next, err := e.Clone()
	if err != nil {
		e.Broken = err.Error()
		return &InvariantError{Reason: err.Error()}
	}
	err = next.apply(pid, m, text)
	var incomplete *IncompleteMoveError
	var broken *InvariantError
	switch {
	case err == nil, errors.As(err, &incomplete):
		open := e.Turn.Open
		if open && len(e.Moves) > 0 {
			next.Moves[len(next.Moves)-1] += ". " + m.Tail()
		} else {
			next.Moves = append(next.Moves, m.String())
		}
		next.Turn.Open = incomplete != nil
		*e = *next
		e.invalidate()
		return err
	case errors.As(err, &broken):
		e.Broken = broken.Reason
		e.invalidate()
		log.Error().Str("move", text).Str("reason", broken.Reason).Msg("game broken")
		return err
	}
	return err
}

func (e *Engine) apply(pid int, m *parser.Move, text string) error {
	for _, sub := range m.Commands {
		cmd, err := toCommand(sub)
		if err != nil {
			return parser.BadCommand(text, sub, err)
		}
		if err := e.check(pid, cmd, text); err != nil {
			return err
		}
		before := e.playerData()
		if err := e.dispatch(pid, cmd); err != nil {
			var broken *InvariantError
			if errors.As(err, &broken) {
				return err
			}
			return &IllegalMoveError{Move: text, Command: cmd.String(), Reason: err.Error()}
		}
		e.record(pid, cmd, before)
		e.invalidate()
		e.dropUnresolvable()
		if err := e.verify(); err != nil {
			return err
		}
	}
	if e.Phase == PhaseRoundMove && e.Current == pid && (!e.Turn.MainDone || e.hasPending(pid)) {
		return &IncompleteMoveError{Player: pid, Pending: append([]FollowUp(nil), e.Pending...), Available: e.AvailableCommands()}
	}
	if e.hasPending(pid) {
		return &IncompleteMoveError{Player: pid, Pending: append([]FollowUp(nil), e.Pending...), Available: e.AvailableCommands()}
	}
	if e.Phase == PhaseRoundMove && e.Current == pid && e.Turn.MainDone {
		e.endTurn()
	}
	e.advance()
	e.invalidate()
	return e.verify()
}

// verify checks the invariants every state must hold.
func (e *Engine) verify() error {
	for _, p := range e.Players {
		if p.Faction == "" {
			continue
		}
		if !p.Data.Power.Conserved() {
			return &InvariantError{Reason: fmt.Sprintf("power of %s not conserved: %+v", p.Faction, p.Data.Power)}
		}
	}
	return nil
}

// playerIndex resolves "p2" or a faction name to a seat.
func (e *Engine) playerIndex(token string) (int, error) {
	if n, ok := strings.CutPrefix(token, "p"); ok {
		if i, err := strconv.Atoi(n); err == nil {
			if i < 1 || i > len(e.Players) {
				return 0, fmt.Errorf("no player %s", token)
			}
			return i - 1, nil
		}
	}
	f, err := faction.Parse(token)
	if err != nil {
		return 0, err
	}
	for i, p := range e.Players {
		if p.Faction == f {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s is not playing", f)
}

// PlayerName is the token a seat is referred to by in move text.
func (e *Engine) PlayerName(pid int) string {
	if p := e.Players[pid]; p.Faction != "" {
		return string(p.Faction)
	}
	return fmt.Sprintf("p%d", pid+1)
}

// Snapshot serialises the whole state.
func (e *Engine) Snapshot() ([]byte, error) {
	return json.Marshal(e)
}

// Restore rebuilds an engine from a snapshot. A nil catalog uses the
// embedded data.
func Restore(data []byte, cat *catalog.Catalog) (*Engine, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	e.cat = cat
	for _, p := range e.Players {
		if p.Faction == "" {
			continue
		}
		b, err := faction.Resolve(cat, p.Faction)
		if err != nil {
			return nil, err
		}
		p.Attach(b, cat)
	}
	if e.Moves == nil {
		e.Moves = []string{}
	}
	return e, nil
}

// Clone returns an independent copy of the engine.
func (e *Engine) Clone() (*Engine, error) {
	data, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	return Restore(data, e.cat)
}

// Replay builds a game from scratch by applying moves in order.
func Replay(opts Options, moves []string, cat *catalog.Catalog) (*Engine, error) {
	e, err := New(opts, cat)
	if err != nil {
		return nil, err
	}
	for i, text := range moves {
		err := e.Move(text)
		var incomplete *IncompleteMoveError
		if err != nil && !errors.As(err, &incomplete) {
			return e, fmt.Errorf("move %d %q: %w", i+1, text, err)
		}
	}
	return e, nil
}

func (e *Engine) invalidate() {
	e.cached = false
	e.available = nil
}

// Actor is the seat expected to move, or -1 when the game is over.
func (e *Engine) Actor() int {
	switch e.Phase {
	case PhaseSetupFaction, PhaseSetupAuction, PhaseSetupBuilding, PhaseSetupBooster, PhaseRoundIncome:
		if len(e.Queue) > 0 {
			return e.Queue[0]
		}
	case PhaseRoundLeech:
		if len(e.Leech) > 0 {
			return e.Leech[0].Player
		}
	case PhaseRoundMove:
		return e.Current
	}
	return -1
}
