package catalog

// Power is the starting content of the three power bowls.
type Power struct {
	Area1 int `yaml:"area1"`
	Area2 int `yaml:"area2"`
	Area3 int `yaml:"area3"`
}

// BuildingDef describes one building type on a player board. Income holds
// one event per built copy: the n-th copy adds Income[n-1].
type BuildingDef struct {
	Cost         string   `yaml:"cost"`
	IsolatedCost string   `yaml:"isolated_cost"`
	Limit        int      `yaml:"limit"`
	Power        int      `yaml:"power"`
	Income       []string `yaml:"income"`
	Gain         string   `yaml:"gain"`
}

// BuildingOverride replaces parts of a BuildingDef for one faction.
type BuildingOverride struct {
	Cost   string   `yaml:"cost"`
	Income []string `yaml:"income"`
	Power  int      `yaml:"power"`
}

// Board is the base player board shared by every faction.
type Board struct {
	Resources           string                 `yaml:"resources"`
	Power               Power                  `yaml:"power"`
	Income              []string               `yaml:"income"`
	FederationThreshold int                    `yaml:"federation_threshold"`
	Buildings           map[string]BuildingDef `yaml:"buildings"`
}

// FactionDef overrides the base board for one faction.
type FactionDef struct {
	Planet     string                      `yaml:"planet"`
	Resources  string                      `yaml:"resources"`
	Power      *Power                      `yaml:"power"`
	Brainstone string                      `yaml:"brainstone"`
	Income     []string                    `yaml:"income"`
	Research   map[string]int              `yaml:"research"`
	Buildings  map[string]BuildingOverride `yaml:"buildings"`
}

// ActionDef is a board action: pay Cost, receive Events.
type ActionDef struct {
	Cost   string   `yaml:"cost"`
	Events []string `yaml:"events"`
}

// Conversion is a free action exchanging Cost for Gain.
type Conversion struct {
	Cost string `yaml:"cost"`
	Gain string `yaml:"gain"`
}

// FederationDef is a federation tile and how many copies are in supply.
// Gray tiles are taken already spent and cannot be flipped.
type FederationDef struct {
	Events []string `yaml:"events"`
	Count  int      `yaml:"count"`
	Gray   bool     `yaml:"gray"`
}

// SectorDef is a sector tile: a centre and the planets keyed by "QxR"
// offsets from that centre.
type SectorDef struct {
	ID      string            `yaml:"id"`
	Center  string            `yaml:"center"`
	Planets map[string]string `yaml:"planets"`
}

// Catalog is the whole static data set: boards, tracks, tiles, sectors.
type Catalog struct {
	Board          Board                    `yaml:"board"`
	Research       map[string][][]string    `yaml:"research"`
	TerraformCost  []int                    `yaml:"terraform_cost"`
	Range          []int                    `yaml:"range"`
	GaiaFormerCost []int                    `yaml:"gaia_former_cost"`
	QicRange       int                      `yaml:"qic_range"`
	ResearchVP     []int                    `yaml:"research_vp"`
	Actions        map[string]ActionDef     `yaml:"actions"`
	Conversions    []Conversion             `yaml:"conversions"`
	Factions       map[string]FactionDef    `yaml:"factions"`
	Boosters       map[string][]string      `yaml:"boosters"`
	Tech           map[string][]string      `yaml:"tech"`
	Advanced       map[string][]string      `yaml:"advanced"`
	Federations    map[string]FederationDef `yaml:"federations"`
	Scoring        map[string][]string      `yaml:"scoring"`
	Final          []string                 `yaml:"final"`
	FinalScoring   map[string]string        `yaml:"final_scoring"`
	Sectors        []SectorDef              `yaml:"sectors"`
}
