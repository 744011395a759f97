// Package reward implements the short resource notation shared by the
// catalog, the player model and the move protocol: "3k,4o,1pw" style reward
// lists and "condition operator rewards" events.
package reward

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Resource is the kind of a reward.
type Resource string

const (
	None       Resource = "~"
	Credit     Resource = "c"
	Ore        Resource = "o"
	Knowledge  Resource = "k"
	Qic        Resource = "q"
	ChargePW   Resource = "pw"
	Token      Resource = "t"
	VP         Resource = "vp"
	Terraform  Resource = "tf"
	Range      Resource = "r"
	GaiaFormer Resource = "gf"
	Research   Resource = "up"
	TechTile   Resource = "tech"
	FedToken   Resource = "fed"
	LostPlanet Resource = "lost-planet"
	Brainstone Resource = "brainstone"
	FedRescore Resource = "rescore-fed"

	// Faction actions.
	UpLowest      Resource = "up-lowest"
	DowngradeLab  Resource = "down-lab"
	SwapInstitute Resource = "swap-pi"
	// Area3ToGaia moves tokens from area 3 to the gaia area.
	Area3ToGaia Resource = "t-a3"

	UpTerra Resource = "up-terra"
	UpNav   Resource = "up-nav"
	UpInt   Resource = "up-int"
	UpGaia  Resource = "up-gaia"
	UpEco   Resource = "up-eco"
	UpSci   Resource = "up-sci"
)

var resources = map[Resource]bool{
	None: true, Credit: true, Ore: true, Knowledge: true, Qic: true, ChargePW: true,
	Token: true, VP: true, Terraform: true, Range: true, GaiaFormer: true, Research: true,
	TechTile: true, FedToken: true, LostPlanet: true, Brainstone: true, FedRescore: true,
	UpLowest: true, DowngradeLab: true, SwapInstitute: true, Area3ToGaia: true,
	UpTerra: true, UpNav: true, UpInt: true, UpGaia: true, UpEco: true, UpSci: true,
}

// Valid reports whether r is one of the known resource codes.
func (r Resource) Valid() bool {
	return resources[r]
}

// Countable reports whether the resource is stored on the player board
// rather than triggering a follow-up effect.
func (r Resource) Countable() bool {
	switch r {
	case Credit, Ore, Knowledge, Qic, VP:
		return true
	}
	return false
}

// Reward is a count of one resource. Counts are only negative transiently,
// while costs and incomes are netted.
type Reward struct {
	Count int      `json:"count" yaml:"count"`
	Type  Resource `json:"type" yaml:"type"`
}

// New is a shorthand constructor.
func New(count int, t Resource) Reward {
	return Reward{Count: count, Type: t}
}

func (r Reward) String() string {
	if r.Type == None {
		return string(None)
	}
	return strconv.Itoa(r.Count) + string(r.Type)
}

// IsEmpty reports whether the reward carries nothing.
func (r Reward) IsEmpty() bool {
	return r.Type == None || r.Count == 0
}

var rewardRegex = regexp.MustCompile(`^(-?\d+)?([a-z~][a-z0-9~-]*)$`)

// ParseOne parses a single reward token such as "3k", "pw" or "-2c".
func ParseOne(token string) (Reward, error) {
	token = strings.TrimSpace(token)
	m := rewardRegex.FindStringSubmatch(token)
	if m == nil {
		return Reward{}, &ParseError{Token: token}
	}
	t := Resource(m[2])
	if !t.Valid() {
		return Reward{}, &ParseError{Token: token}
	}
	if t == None {
		if m[1] != "" {
			return Reward{}, &ParseError{Token: token}
		}
		return Reward{Type: None}, nil
	}
	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Reward{}, &ParseError{Token: token}
		}
		count = n
	}
	return Reward{Count: count, Type: t}, nil
}

// Parse reads a comma separated reward list. An empty string is an empty list.
func Parse(text string) ([]Reward, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	parts := strings.Split(text, ",")
	out := make([]Reward, 0, len(parts))
	for _, p := range parts {
		r, err := ParseOne(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// MustParse is Parse for static tables; it panics on malformed input.
func MustParse(text string) []Reward {
	r, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("reward.MustParse(%q): %v", text, err))
	}
	return r
}

// Join renders a reward list in canonical form.
func Join(rewards []Reward) string {
	parts := make([]string, len(rewards))
	for i, r := range rewards {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Canonical parses and re-renders text, the normal form used for comparison.
func Canonical(text string) (string, error) {
	r, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Join(r), nil
}

// Merge folds rewards of the same type together, keeping first-seen order
// and dropping empty entries.
func Merge(rewards ...[]Reward) []Reward {
	var order []Resource
	sum := make(map[Resource]int)
	for _, list := range rewards {
		for _, r := range list {
			if r.Type == None {
				continue
			}
			if _, ok := sum[r.Type]; !ok {
				order = append(order, r.Type)
			}
			sum[r.Type] += r.Count
		}
	}
	out := make([]Reward, 0, len(order))
	for _, t := range order {
		if sum[t] != 0 {
			out = append(out, Reward{Count: sum[t], Type: t})
		}
	}
	return out
}

// Negate flips the sign of every count.
func Negate(rewards []Reward) []Reward {
	out := make([]Reward, len(rewards))
	for i, r := range rewards {
		out[i] = Reward{Count: -r.Count, Type: r.Type}
	}
	return out
}

// Scale multiplies every count by n.
func Scale(rewards []Reward, n int) []Reward {
	out := make([]Reward, len(rewards))
	for i, r := range rewards {
		out[i] = Reward{Count: r.Count * n, Type: r.Type}
	}
	return out
}

// Count returns the summed count of a resource in a list.
func Count(rewards []Reward, t Resource) int {
	n := 0
	for _, r := range rewards {
		if r.Type == t {
			n += r.Count
		}
	}
	return n
}

// Equal compares two lists after merging.
func Equal(a, b []Reward) bool {
	return Join(Merge(a)) == Join(Merge(b))
}
