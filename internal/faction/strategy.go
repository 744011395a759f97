package faction

import (
	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/reward"
)

// Strategy holds the rule deviations of a faction that cannot be expressed
// as board data. The set of implementations is closed; Faction.Strategy
// selects one.
type Strategy interface {
	// FederationThreshold is the power a federation needs.
	FederationThreshold(base int, hasPI bool) int
	// GaiaTokensToArea2 reports whether gaia-area tokens return to area 2
	// instead of area 1 during the gaia phase.
	GaiaTokensToArea2() bool
	// ConvertGain rewrites rewards before they are gained.
	ConvertGain(rewards []reward.Reward, hasAcademy2 bool) []reward.Reward
	// Conversions are free actions on top of the base ones.
	Conversions() []Conversion
	// PIConversions are free actions unlocked by the planetary institute.
	PIConversions() []Conversion
	// LeechTokenChoice reports whether the player may take a power token
	// alongside a leech and choose the order.
	LeechTokenChoice(hasPI bool) bool
	// SetupMines is how many mines the faction places during setup.
	SetupMines() int
	// SetupInstitute reports whether the faction places its planetary
	// institute during setup, after everyone else.
	SetupInstitute() bool
	// NewPlanetTypeBonus is gained when building on a planet type for the
	// first time.
	NewPlanetTypeBonus(hasPI bool) []reward.Reward
	// InstituteFederation names the federation tile granted with the
	// planetary institute.
	InstituteFederation() string
	// PowerValue is what one token of area 3 pays for.
	PowerValue(hasPI bool) int
	// BurnToGaia reports whether burnt tokens go to the gaia area instead
	// of leaving the game.
	BurnToGaia() bool
	// GaiaTechTrade is how many gaia-area tokens buy a tech tile during
	// the gaia phase, or 0.
	GaiaTechTrade(hasPI bool) int
	// PlanetPower is added to the power value of a structure on planet.
	PlanetPower(planet board.Planet, hasPI bool) int
}

// Strategy returns the rule strategy of f.
func (f Faction) Strategy() Strategy {
	switch f {
	case Terrans:
		return terrans{}
	case Xenos:
		return xenos{}
	case Gleens:
		return gleens{}
	case Taklons:
		return taklons{}
	case HadschHallas:
		return hadschHallas{}
	case Ivits:
		return ivits{}
	case Geodens:
		return geodens{}
	case BalTaks:
		return balTaks{}
	case Bescods:
		return bescods{}
	case Nevlas:
		return nevlas{}
	case Itars:
		return itars{}
	}
	return standard{}
}

type standard struct{}

func (standard) FederationThreshold(base int, _ bool) int { return base }

func (standard) GaiaTokensToArea2() bool { return false }

func (standard) ConvertGain(rewards []reward.Reward, _ bool) []reward.Reward { return rewards }

func (standard) Conversions() []Conversion { return nil }

func (standard) PIConversions() []Conversion { return nil }

func (standard) LeechTokenChoice(bool) bool { return false }

func (standard) SetupMines() int { return 2 }

func (standard) SetupInstitute() bool { return false }

func (standard) NewPlanetTypeBonus(bool) []reward.Reward { return nil }

func (standard) InstituteFederation() string { return "" }

func (standard) PowerValue(bool) int { return 1 }

func (standard) BurnToGaia() bool { return false }

func (standard) GaiaTechTrade(bool) int { return 0 }

func (standard) PlanetPower(board.Planet, bool) int { return 0 }

type terrans struct{ standard }

func (terrans) GaiaTokensToArea2() bool { return true }

type xenos struct{ standard }

func (xenos) SetupMines() int { return 3 }

func (xenos) FederationThreshold(base int, hasPI bool) int {
	if hasPI {
		return 6
	}
	return base
}

// Gleens gain ore instead of qic until they build their second academy.
type gleens struct{ standard }

func (gleens) ConvertGain(rewards []reward.Reward, hasAcademy2 bool) []reward.Reward {
	if hasAcademy2 {
		return rewards
	}
	out := make([]reward.Reward, len(rewards))
	for i, r := range rewards {
		if r.Type == reward.Qic && r.Count > 0 {
			r.Type = reward.Ore
		}
		out[i] = r
	}
	return out
}

func (gleens) InstituteFederation() string { return "gleens" }

type taklons struct{ standard }

func (taklons) LeechTokenChoice(hasPI bool) bool { return hasPI }

type hadschHallas struct{ standard }

func (hadschHallas) PIConversions() []Conversion {
	return []Conversion{
		{Cost: reward.MustParse("4c"), Gain: reward.MustParse("1q")},
		{Cost: reward.MustParse("4c"), Gain: reward.MustParse("1k")},
		{Cost: reward.MustParse("3c"), Gain: reward.MustParse("1o")},
	}
}

type ivits struct{ standard }

func (ivits) SetupMines() int { return 0 }

func (ivits) SetupInstitute() bool { return true }

type geodens struct{ standard }

func (geodens) NewPlanetTypeBonus(hasPI bool) []reward.Reward {
	if !hasPI {
		return nil
	}
	return reward.MustParse("3k")
}

type balTaks struct{ standard }

func (balTaks) Conversions() []Conversion {
	return []Conversion{{Cost: reward.MustParse("1gf"), Gain: reward.MustParse("1q")}}
}

// Bescods structures on titanium planets are worth one more power once the
// planetary institute stands.
type bescods struct{ standard }

func (bescods) PlanetPower(planet board.Planet, hasPI bool) int {
	if hasPI && planet == board.Titanium {
		return 1
	}
	return 0
}

// Nevlas trade area 3 tokens for knowledge, and their institute doubles
// the value of area 3.
type nevlas struct{ standard }

func (nevlas) Conversions() []Conversion {
	return []Conversion{{Cost: reward.MustParse("1t-a3"), Gain: reward.MustParse("1k")}}
}

func (nevlas) PowerValue(hasPI bool) int {
	if hasPI {
		return 2
	}
	return 1
}

// Itars keep burnt tokens in the gaia area and, with their institute, turn
// four of them into a tech tile.
type itars struct{ standard }

func (itars) BurnToGaia() bool { return true }

func (itars) GaiaTechTrade(hasPI bool) int {
	if hasPI {
		return 4
	}
	return 0
}
