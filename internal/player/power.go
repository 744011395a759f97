package player

import "fmt"

// Area is where a power token (or the brainstone) sits.
type Area string

const (
	NoArea   Area = ""
	Area1    Area = "area1"
	Area2    Area = "area2"
	Area3    Area = "area3"
	AreaGaia Area = "gaia"
)

// ParseArea validates an area name from move text.
func ParseArea(s string) (Area, error) {
	switch a := Area(s); a {
	case Area1, Area2, Area3, AreaGaia:
		return a, nil
	}
	return NoArea, fmt.Errorf("unknown power area %q", s)
}

// brainstoneValue is what the brainstone is worth when spent from area 3.
const brainstoneValue = 3

// Power is the token pool: three bowls, the gaia area, the brainstone, and
// the tokens that left the bowls. Budget is every token the player ever
// owned, so the pool is conserved when Total() == Budget.
type Power struct {
	Area1      int  `json:"area1"`
	Area2      int  `json:"area2"`
	Area3      int  `json:"area3"`
	Gaia       int  `json:"gaia"`
	Brainstone Area `json:"brainstone,omitempty"`
	OnBoard    int  `json:"onBoard"`
	Supply     int  `json:"supply"`
	Budget     int  `json:"budget"`
}

// NewPower fills the bowls with a starting setup.
func NewPower(area1, area2, area3 int, brainstone Area) Power {
	p := Power{Area1: area1, Area2: area2, Area3: area3, Brainstone: brainstone}
	p.Budget = p.Total()
	return p
}

// Total counts every token wherever it is.
func (p Power) Total() int {
	n := p.Area1 + p.Area2 + p.Area3 + p.Gaia + p.OnBoard + p.Supply
	if p.Brainstone != NoArea {
		n++
	}
	return n
}

// Conserved reports whether no token was created or lost.
func (p Power) Conserved() bool {
	return p.Total() == p.Budget
}

// Chargeable is how much power can be charged before the bowls are full.
func (p Power) Chargeable() int {
	n := 2*p.Area1 + p.Area2
	switch p.Brainstone {
	case Area1:
		n += 2
	case Area2:
		n++
	}
	return n
}

// Charge moves tokens up the bowls one step at a time, the brainstone
// first. It returns how much was actually charged.
func (p *Power) Charge(n int) int {
	charged := 0
	for ; n > 0; n-- {
		switch {
		case p.Brainstone == Area1:
			p.Brainstone = Area2
		case p.Area1 > 0:
			p.Area1--
			p.Area2++
		case p.Brainstone == Area2:
			p.Brainstone = Area3
		case p.Area2 > 0:
			p.Area2--
			p.Area3++
		default:
			return charged
		}
		charged++
	}
	return charged
}

// Spendable is the power available in area 3.
func (p Power) Spendable() int {
	n := p.Area3
	if p.Brainstone == Area3 {
		n += brainstoneValue
	}
	return n
}

// Spend pays n power from area 3 back to area 1. The brainstone is only
// used when the regular tokens do not cover the cost.
func (p *Power) Spend(n int) error {
	if n > p.Spendable() {
		return fmt.Errorf("%w: %d power needed, %d in area3", ErrInsufficient, n, p.Spendable())
	}
	if p.Area3 >= n {
		p.Area3 -= n
		p.Area1 += n
		return nil
	}
	p.Brainstone = Area1
	regular := max(0, n-brainstoneValue)
	p.Area3 -= regular
	p.Area1 += regular
	return nil
}

// Burnable is how many times Burn(1) can succeed.
func (p Power) Burnable() int {
	n := p.Area2
	if p.Brainstone == Area2 {
		n++
	}
	return n / 2
}

// Burn sacrifices a token of area 2 to move another one to area 3, n times.
func (p *Power) Burn(n int) error {
	if n <= 0 || n > p.Burnable() {
		return fmt.Errorf("%w: cannot burn %d power", ErrInsufficient, n)
	}
	for ; n > 0; n-- {
		if p.Brainstone == Area2 {
			p.Brainstone = Area3
			p.Area2--
		} else {
			p.Area2 -= 2
			p.Area3++
		}
		p.Supply++
	}
	return nil
}

// Tokens counts the regular tokens in the bowls.
func (p Power) Tokens() int {
	return p.Area1 + p.Area2 + p.Area3
}

// GainTokens adds n new tokens to area 1.
func (p *Power) GainTokens(n int) {
	p.Area1 += n
	p.Budget += n
}

// take removes n regular tokens from the lowest bowls first.
func (p *Power) take(n int) error {
	if n > p.Tokens() {
		return fmt.Errorf("%w: %d tokens needed, %d in bowls", ErrInsufficient, n, p.Tokens())
	}
	for _, bowl := range []*int{&p.Area1, &p.Area2, &p.Area3} {
		k := min(n, *bowl)
		*bowl -= k
		n -= k
	}
	return nil
}

// Discard removes n tokens from the game.
func (p *Power) Discard(n int) error {
	if err := p.take(n); err != nil {
		return err
	}
	p.Supply += n
	return nil
}

// PlaceOnBoard removes n tokens from the bowls to become satellites.
func (p *Power) PlaceOnBoard(n int) error {
	if err := p.take(n); err != nil {
		return err
	}
	p.OnBoard += n
	return nil
}

// GaiaMovable is how many tokens MoveToGaia can take. The brainstone
// counts as one while it sits in a bowl.
func (p Power) GaiaMovable() int {
	n := p.Tokens()
	if p.stoneInBowl() {
		n++
	}
	return n
}

func (p Power) stoneInBowl() bool {
	return p.Brainstone == Area1 || p.Brainstone == Area2 || p.Brainstone == Area3
}

// MoveToGaia moves n tokens to the gaia area. The brainstone goes along
// only when the regular tokens fall one short.
func (p *Power) MoveToGaia(n int) error {
	if n == p.Tokens()+1 && p.stoneInBowl() {
		if err := p.take(n - 1); err != nil {
			return err
		}
		p.Gaia += n - 1
		p.Brainstone = AreaGaia
		return nil
	}
	if err := p.take(n); err != nil {
		return err
	}
	p.Gaia += n
	return nil
}

// MoveBrainstone places the brainstone in area a.
func (p *Power) MoveBrainstone(a Area) {
	if p.Brainstone != NoArea {
		p.Brainstone = a
	}
}

// GaiaReturn brings the gaia area back into area 1, or area 2.
func (p *Power) GaiaReturn(toArea2 bool) {
	target := &p.Area1
	stone := Area1
	if toArea2 {
		target = &p.Area2
		stone = Area2
	}
	*target += p.Gaia
	p.Gaia = 0
	if p.Brainstone == AreaGaia {
		p.Brainstone = stone
	}
}

// BrainstoneToGaia swaps the brainstone with a token already moved to the
// gaia area, so the brainstone counts as one of them.
func (p *Power) BrainstoneToGaia() error {
	switch {
	case p.Brainstone == NoArea || p.Brainstone == AreaGaia:
		return fmt.Errorf("brainstone is not in a bowl")
	case p.Gaia == 0:
		return fmt.Errorf("no token in the gaia area")
	}
	p.addTo(p.Brainstone, 1)
	p.Gaia--
	p.Brainstone = AreaGaia
	return nil
}

func (p *Power) addTo(a Area, n int) {
	switch a {
	case Area1:
		p.Area1 += n
	case Area2:
		p.Area2 += n
	case Area3:
		p.Area3 += n
	case AreaGaia:
		p.Gaia += n
	}
}
