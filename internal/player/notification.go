package player

import (
	"strings"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Kind is what a notification asks the engine to resolve.
type Kind string

const (
	NotifyTech       Kind = "tech"
	NotifyResearch   Kind = "up"
	NotifyTerraform  Kind = "tf"
	NotifyRange      Kind = "r"
	NotifyLostPlanet Kind = "lost-planet"
	NotifyFedRescore Kind = "rescore-fed"
	NotifyFedToken   Kind = "fed"
	NotifyLowest     Kind = "up-lowest"
	NotifyDowngrade  Kind = "down-lab"
	NotifySwap       Kind = "swap-pi"
)

// Notification is a gain the resource model cannot settle by itself. Field
// is set for research steps restricted to one track.
type Notification struct {
	Kind  Kind        `json:"kind"`
	Count int         `json:"count"`
	Field board.Field `json:"field,omitempty"`
}

func notificationFor(r reward.Reward) (Notification, bool) {
	if r.Count <= 0 {
		return Notification{}, false
	}
	switch r.Type {
	case reward.TechTile:
		return Notification{Kind: NotifyTech, Count: r.Count}, true
	case reward.Research:
		return Notification{Kind: NotifyResearch, Count: r.Count}, true
	case reward.Terraform:
		return Notification{Kind: NotifyTerraform, Count: r.Count}, true
	case reward.Range:
		return Notification{Kind: NotifyRange, Count: r.Count}, true
	case reward.LostPlanet:
		return Notification{Kind: NotifyLostPlanet, Count: r.Count}, true
	case reward.FedRescore:
		return Notification{Kind: NotifyFedRescore, Count: r.Count}, true
	case reward.FedToken:
		return Notification{Kind: NotifyFedToken, Count: r.Count}, true
	case reward.UpLowest:
		return Notification{Kind: NotifyLowest, Count: r.Count}, true
	case reward.DowngradeLab:
		return Notification{Kind: NotifyDowngrade, Count: r.Count}, true
	case reward.SwapInstitute:
		return Notification{Kind: NotifySwap, Count: r.Count}, true
	}
	if field, ok := strings.CutPrefix(string(r.Type), "up-"); ok {
		return Notification{Kind: NotifyResearch, Count: r.Count, Field: board.Field(field)}, true
	}
	return Notification{}, false
}
