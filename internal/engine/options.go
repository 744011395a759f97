package engine

import (
	"fmt"

	"github.com/boardgamers/gaia-project-sub000/internal/federation"
)

// Phase is a state of the game loop.
type Phase string

const (
	PhaseSetupInit     Phase = "setupInit"
	PhaseSetupBoard    Phase = "setupBoard"
	PhaseSetupFaction  Phase = "setupFaction"
	PhaseSetupAuction  Phase = "setupAuction"
	PhaseSetupBuilding Phase = "setupBuilding"
	PhaseSetupBooster  Phase = "setupBooster"
	PhaseRoundStart    Phase = "roundStart"
	PhaseRoundIncome   Phase = "roundIncome"
	PhaseRoundGaia     Phase = "roundGaia"
	PhaseRoundMove     Phase = "roundMove"
	PhaseRoundLeech    Phase = "roundLeech"
	PhaseRoundFinish   Phase = "roundFinish"
	PhaseEndGame       Phase = "endGame"
)

// LastRound is the number of rounds in a game.
const LastRound = 6

// Map layouts.
const (
	LayoutStandard = "standard"
	LayoutRotated  = "rotated"
)

// Options are fixed for the whole game and stored in every snapshot.
type Options struct {
	Players             int             `json:"players"`
	Seed                string          `json:"seed"`
	Auction             bool            `json:"auction,omitempty"`
	FlexibleFederations bool            `json:"flexibleFederations,omitempty"`
	FederationSearch    federation.Mode `json:"federationSearch,omitempty"`
	AutoIncome          bool            `json:"autoIncome,omitempty"`
	Layout              string          `json:"layout,omitempty"`
}

// Validate checks the options and fills in defaults.
func (o *Options) Validate() error {
	if o.Players < 2 || o.Players > 5 {
		return fmt.Errorf("a game needs 2 to 5 players, got %d", o.Players)
	}
	mode, err := federation.ParseMode(string(o.FederationSearch))
	if err != nil {
		return err
	}
	o.FederationSearch = mode
	switch o.Layout {
	case "":
		o.Layout = LayoutStandard
	case LayoutStandard, LayoutRotated:
	default:
		return fmt.Errorf("unknown layout %q", o.Layout)
	}
	return nil
}
