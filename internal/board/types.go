// Package board holds the game map and the small enums shared by every
// other package: planet types, building types and research fields.
package board

import "fmt"

// Planet is the type of a hex's content.
type Planet string

const (
	Empty     Planet = "e"
	Terra     Planet = "r"
	Oxide     Planet = "o"
	Volcanic  Planet = "v"
	Desert    Planet = "d"
	Swamp     Planet = "s"
	Titanium  Planet = "t"
	Ice       Planet = "i"
	Gaia      Planet = "g"
	Transdim  Planet = "m"
	Lost      Planet = "l"
)

// Wheel is the terraforming cycle; neighbours on it cost one step.
var Wheel = []Planet{Terra, Oxide, Volcanic, Desert, Swamp, Titanium, Ice}

// Valid reports whether p is a known planet code.
func (p Planet) Valid() bool {
	switch p {
	case Empty, Terra, Oxide, Volcanic, Desert, Swamp, Titanium, Ice, Gaia, Transdim, Lost:
		return true
	}
	return false
}

// Habitable reports whether p is one of the seven home planet types.
func (p Planet) Habitable() bool {
	return wheelIndex(p) >= 0
}

func wheelIndex(p Planet) int {
	for i, w := range Wheel {
		if w == p {
			return i
		}
	}
	return -1
}

// TerraformSteps is the distance between two planet types on the wheel,
// or -1 if either is not on it.
func TerraformSteps(from, to Planet) int {
	a, b := wheelIndex(from), wheelIndex(to)
	if a < 0 || b < 0 {
		return -1
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, len(Wheel)-d)
}

// Building is a structure type on a hex.
type Building string

const (
	NoBuilding     Building = ""
	Mine           Building = "m"
	TradingStation Building = "ts"
	ResearchLab    Building = "lab"
	Institute      Building = "PI"
	Academy1       Building = "ac1"
	Academy2       Building = "ac2"
	GaiaFormer     Building = "gf"
)

// Buildings lists the player board structures in upgrade order.
var Buildings = []Building{Mine, TradingStation, ResearchLab, Institute, Academy1, Academy2}

// ParseBuilding validates a building code from move text.
func ParseBuilding(s string) (Building, error) {
	b := Building(s)
	switch b {
	case Mine, TradingStation, ResearchLab, Institute, Academy1, Academy2, GaiaFormer:
		return b, nil
	}
	return NoBuilding, fmt.Errorf("unknown building %q", s)
}

// UpgradedFrom returns the building a new structure of type b replaces.
func (b Building) UpgradedFrom() Building {
	switch b {
	case TradingStation:
		return Mine
	case ResearchLab, Institute:
		return TradingStation
	case Academy1, Academy2:
		return ResearchLab
	}
	return NoBuilding
}

// Big reports whether b is the planetary institute or an academy.
func (b Building) Big() bool {
	return b == Institute || b == Academy1 || b == Academy2
}

// Field is a research track.
type Field string

const (
	Terraforming Field = "terra"
	Navigation   Field = "nav"
	Intelligence Field = "int"
	GaiaProject  Field = "gaia"
	Economy      Field = "eco"
	Science      Field = "sci"
)

// Fields lists the research tracks in board order.
var Fields = []Field{Terraforming, Navigation, Intelligence, GaiaProject, Economy, Science}

// ParseField validates a research field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown research field %q", s)
}

// MaxLevel is the top of every research track.
const MaxLevel = 5
