package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/faction"
	"github.com/boardgamers/gaia-project-sub000/internal/federation"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
	"github.com/boardgamers/gaia-project-sub000/internal/parser"
	"github.com/boardgamers/gaia-project-sub000/internal/player"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Command names as they appear in move text.
const (
	CmdFaction    = "faction"
	CmdBid        = "bid"
	CmdBuild      = "build"
	CmdBooster    = "booster"
	CmdPass       = "pass"
	CmdUp         = "up"
	CmdCharge     = "charge"
	CmdDecline    = "decline"
	CmdBurn       = "burn"
	CmdSpend      = "spend"
	CmdBrainstone = "brainstone"
	CmdAction     = "action"
	CmdSpecial    = "special"
	CmdTech       = "tech"
	CmdCover      = "cover"
	CmdFedTile    = "fedtile"
	CmdLostPlanet = "lostPlanet"
	CmdFederation = "federation"
	CmdIncome     = "income"
)

// Command is one parsed sub-command. The set of implementations is closed;
// dispatch switches over all of them.
type Command interface {
	Name() string
	// Args is the canonical argument list, comparable with Option.Args.
	Args() []string
	String() string
	command()
}

type base struct{}

func (base) command() {}

func render(c Command) string {
	return strings.Join(append([]string{c.Name()}, c.Args()...), " ")
}

type FactionCmd struct {
	base
	Faction faction.Faction
}

type BidCmd struct {
	base
	Faction faction.Faction
	VP      int
}

type BuildCmd struct {
	base
	Building board.Building
	Coord    hex.Coord
}

type BoosterCmd struct {
	base
	Booster string
}

// PassCmd passes for the round; Booster is empty in the last round.
type PassCmd struct {
	base
	Booster string
}

type UpCmd struct {
	base
	Field board.Field
}

type ChargeCmd struct {
	base
	Rewards []reward.Reward
}

type DeclineCmd struct {
	base
	Rewards []reward.Reward
}

type BurnCmd struct {
	base
	Power int
}

type SpendCmd struct {
	base
	Cost []reward.Reward
	Gain []reward.Reward
}

type BrainstoneCmd struct {
	base
	Area player.Area
}

type ActionCmd struct {
	base
	Action string
}

type SpecialCmd struct {
	base
	Rewards []reward.Reward
}

type TechCmd struct {
	base
	Position string
}

type CoverCmd struct {
	base
	Position string
}

type FedTileCmd struct {
	base
	Tile string
}

type LostPlanetCmd struct {
	base
	Coord hex.Coord
}

type FederationCmd struct {
	base
	Hexes []hex.Coord
	Tile  string
}

type IncomeCmd struct {
	base
	Rewards []reward.Reward
}

func (FactionCmd) Name() string    { return CmdFaction }
func (BidCmd) Name() string        { return CmdBid }
func (BuildCmd) Name() string      { return CmdBuild }
func (BoosterCmd) Name() string    { return CmdBooster }
func (PassCmd) Name() string       { return CmdPass }
func (UpCmd) Name() string         { return CmdUp }
func (ChargeCmd) Name() string     { return CmdCharge }
func (DeclineCmd) Name() string    { return CmdDecline }
func (BurnCmd) Name() string       { return CmdBurn }
func (SpendCmd) Name() string      { return CmdSpend }
func (BrainstoneCmd) Name() string { return CmdBrainstone }
func (ActionCmd) Name() string     { return CmdAction }
func (SpecialCmd) Name() string    { return CmdSpecial }
func (TechCmd) Name() string       { return CmdTech }
func (CoverCmd) Name() string      { return CmdCover }
func (FedTileCmd) Name() string    { return CmdFedTile }
func (LostPlanetCmd) Name() string { return CmdLostPlanet }
func (FederationCmd) Name() string { return CmdFederation }
func (IncomeCmd) Name() string     { return CmdIncome }

func (c FactionCmd) Args() []string { return []string{string(c.Faction)} }
func (c BidCmd) Args() []string     { return []string{string(c.Faction), strconv.Itoa(c.VP)} }
func (c BuildCmd) Args() []string   { return []string{string(c.Building), c.Coord.String()} }
func (c BoosterCmd) Args() []string { return []string{c.Booster} }
func (c UpCmd) Args() []string      { return []string{string(c.Field)} }
func (c ChargeCmd) Args() []string  { return []string{reward.Join(c.Rewards)} }
func (c BurnCmd) Args() []string    { return []string{strconv.Itoa(c.Power)} }
func (c BrainstoneCmd) Args() []string {
	return []string{string(c.Area)}
}
func (c ActionCmd) Args() []string     { return []string{c.Action} }
func (c SpecialCmd) Args() []string    { return []string{reward.Join(c.Rewards)} }
func (c TechCmd) Args() []string       { return []string{c.Position} }
func (c CoverCmd) Args() []string      { return []string{c.Position} }
func (c FedTileCmd) Args() []string    { return []string{c.Tile} }
func (c LostPlanetCmd) Args() []string { return []string{c.Coord.String()} }
func (c IncomeCmd) Args() []string     { return []string{reward.Join(c.Rewards)} }

func (c PassCmd) Args() []string {
	if c.Booster == "" {
		return nil
	}
	return []string{c.Booster}
}

func (c DeclineCmd) Args() []string {
	if len(c.Rewards) == 0 {
		return nil
	}
	return []string{reward.Join(c.Rewards)}
}

func (c SpendCmd) Args() []string {
	return []string{reward.Join(c.Cost), "for", reward.Join(c.Gain)}
}

func (c FederationCmd) Args() []string {
	return []string{federation.Key(c.Hexes), c.Tile}
}

func (c FactionCmd) String() string    { return render(c) }
func (c BidCmd) String() string        { return render(c) }
func (c BuildCmd) String() string      { return render(c) }
func (c BoosterCmd) String() string    { return render(c) }
func (c PassCmd) String() string       { return render(c) }
func (c UpCmd) String() string         { return render(c) }
func (c ChargeCmd) String() string     { return render(c) }
func (c DeclineCmd) String() string    { return render(c) }
func (c BurnCmd) String() string       { return render(c) }
func (c SpendCmd) String() string      { return render(c) }
func (c BrainstoneCmd) String() string { return render(c) }
func (c ActionCmd) String() string     { return render(c) }
func (c SpecialCmd) String() string    { return render(c) }
func (c TechCmd) String() string       { return render(c) }
func (c CoverCmd) String() string      { return render(c) }
func (c FedTileCmd) String() string    { return render(c) }
func (c LostPlanetCmd) String() string { return render(c) }
func (c FederationCmd) String() string { return render(c) }
func (c IncomeCmd) String() string     { return render(c) }

// toCommand turns a parsed sub-command into its typed form, checking the
// argument shapes but not legality.
func toCommand(s *parser.SubCommand) (Command, error) {
	args := s.Args
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d arguments, got %d", s.Name, n, len(args))
		}
		return nil
	}
	switch s.Name {
	case CmdFaction:
		if err := want(1); err != nil {
			return nil, err
		}
		f, err := faction.Parse(args[0])
		return FactionCmd{Faction: f}, err
	case CmdBid:
		if err := want(2); err != nil {
			return nil, err
		}
		f, err := faction.Parse(args[0])
		if err != nil {
			return nil, err
		}
		vp, err := strconv.Atoi(args[1])
		if err != nil || vp < 0 {
			return nil, fmt.Errorf("bad bid %q", args[1])
		}
		return BidCmd{Faction: f, VP: vp}, nil
	case CmdBuild:
		if err := want(2); err != nil {
			return nil, err
		}
		b, err := board.ParseBuilding(args[0])
		if err != nil {
			return nil, err
		}
		c, err := hex.Parse(args[1])
		return BuildCmd{Building: b, Coord: c}, err
	case CmdBooster:
		if err := want(1); err != nil {
			return nil, err
		}
		return BoosterCmd{Booster: args[0]}, nil
	case CmdPass:
		if len(args) > 1 {
			return nil, want(1)
		}
		if len(args) == 0 {
			return PassCmd{}, nil
		}
		return PassCmd{Booster: args[0]}, nil
	case CmdUp:
		if err := want(1); err != nil {
			return nil, err
		}
		f, err := board.ParseField(args[0])
		return UpCmd{Field: f}, err
	case CmdCharge:
		if err := want(1); err != nil {
			return nil, err
		}
		r, err := reward.Parse(args[0])
		return ChargeCmd{Rewards: r}, err
	case CmdDecline:
		if len(args) == 0 {
			return DeclineCmd{}, nil
		}
		if err := want(1); err != nil {
			return nil, err
		}
		r, err := reward.Parse(args[0])
		return DeclineCmd{Rewards: r}, err
	case CmdBurn:
		if err := want(1); err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad burn amount %q", args[0])
		}
		return BurnCmd{Power: n}, nil
	case CmdSpend:
		if err := want(3); err != nil {
			return nil, err
		}
		if args[1] != "for" {
			return nil, fmt.Errorf("expected \"for\", got %q", args[1])
		}
		cost, err := reward.Parse(args[0])
		if err != nil {
			return nil, err
		}
		gain, err := reward.Parse(args[2])
		return SpendCmd{Cost: cost, Gain: gain}, err
	case CmdBrainstone:
		if err := want(1); err != nil {
			return nil, err
		}
		a, err := player.ParseArea(args[0])
		return BrainstoneCmd{Area: a}, err
	case CmdAction:
		if err := want(1); err != nil {
			return nil, err
		}
		return ActionCmd{Action: args[0]}, nil
	case CmdSpecial:
		if err := want(1); err != nil {
			return nil, err
		}
		r, err := reward.Parse(args[0])
		return SpecialCmd{Rewards: r}, err
	case CmdTech:
		if err := want(1); err != nil {
			return nil, err
		}
		return TechCmd{Position: args[0]}, nil
	case CmdCover:
		if err := want(1); err != nil {
			return nil, err
		}
		return CoverCmd{Position: args[0]}, nil
	case CmdFedTile:
		if err := want(1); err != nil {
			return nil, err
		}
		return FedTileCmd{Tile: args[0]}, nil
	case CmdLostPlanet:
		if err := want(1); err != nil {
			return nil, err
		}
		c, err := hex.Parse(args[0])
		return LostPlanetCmd{Coord: c}, err
	case CmdFederation:
		if err := want(2); err != nil {
			return nil, err
		}
		hexes, err := federation.ParseKey(args[0])
		return FederationCmd{Hexes: hexes, Tile: args[1]}, err
	case CmdIncome:
		if err := want(1); err != nil {
			return nil, err
		}
		r, err := reward.Parse(args[0])
		return IncomeCmd{Rewards: r}, err
	}
	return nil, fmt.Errorf("unknown command %s", s.Name)
}
