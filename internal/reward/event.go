package reward

import (
	"strings"
)

// Operator decides when an event pays out.
type Operator string

const (
	Once     Operator = ""
	Income   Operator = "+"
	Trigger  Operator = ">>"
	Activate Operator = "=>"
	Pass     Operator = "|"
	Special  Operator = "..."
)

// operators are matched in this order; longer codes first so that "=>" is
// not mistaken for anything shorter.
var operators = []Operator{Special, Activate, Trigger, Pass, Income}

// Operators lists every operator, Once included, in bucket order.
var Operators = []Operator{Once, Income, Trigger, Activate, Pass, Special}

// Condition qualifies an event: what it counts or what triggers it.
type Condition string

const (
	NoCondition         Condition = ""
	CondMine            Condition = "m"
	CondTradingStation  Condition = "ts"
	CondResearchLab     Condition = "lab"
	CondPI              Condition = "PI"
	CondAcademy1        Condition = "ac1"
	CondAcademy2        Condition = "ac2"
	CondBigBuilding     Condition = "PA"
	CondGaiaFormer      Condition = "gf"
	CondGaiaPlanet      Condition = "g"
	CondPlanetType      Condition = "pt"
	CondSector          Condition = "s"
	CondFederation      Condition = "fed"
	CondTerraformStep   Condition = "step"
	CondResearchAdvance Condition = "up"
	CondAdvancedTile    Condition = "a"
	CondSatellite       Condition = "sat"
	CondLostPlanet      Condition = "lp"
)

var conditions = map[Condition]bool{
	NoCondition: true, CondMine: true, CondTradingStation: true, CondResearchLab: true,
	CondPI: true, CondAcademy1: true, CondAcademy2: true, CondBigBuilding: true,
	CondGaiaFormer: true, CondGaiaPlanet: true, CondPlanetType: true, CondSector: true,
	CondFederation: true, CondTerraformStep: true, CondResearchAdvance: true,
	CondAdvancedTile: true, CondSatellite: true, CondLostPlanet: true,
}

// Valid reports whether c is a known condition code.
func (c Condition) Valid() bool {
	return conditions[c]
}

// activatedMarker trails the text of a special action already used this round.
const activatedMarker = "!"

// Event is a conditional, operator-scheduled reward. Source names the
// building, tile or board that granted it, so the event can be removed
// when the source is lost.
type Event struct {
	Condition Condition `json:"condition,omitempty"`
	Operator  Operator  `json:"operator,omitempty"`
	Rewards   []Reward  `json:"rewards"`
	Activated bool      `json:"activated,omitempty"`
	Source    string    `json:"source,omitempty"`
}

// String renders the canonical form: condition, operator, rewards and the
// activation marker with no separating spaces. A condition on a one-time
// event is separated from its rewards by a single space since no operator
// code delimits it.
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(string(e.Condition))
	if e.Operator == Once && e.Condition != NoCondition {
		sb.WriteString(" ")
	}
	sb.WriteString(string(e.Operator))
	sb.WriteString(Join(e.Rewards))
	if e.Activated {
		sb.WriteString(activatedMarker)
	}
	return sb.String()
}

// ParseEvent reads "cond op rewards[!]".
func ParseEvent(text string) (Event, error) {
	text = strings.TrimSpace(text)
	var e Event
	if strings.HasSuffix(text, activatedMarker) {
		e.Activated = true
		text = strings.TrimSpace(strings.TrimSuffix(text, activatedMarker))
	}

	compact := strings.Join(strings.Fields(text), "")
	if idx, op := findOperator(compact); idx >= 0 {
		cond := Condition(compact[:idx])
		if !cond.Valid() {
			return Event{}, &ParseError{Token: string(cond)}
		}
		rewards, err := Parse(compact[idx+len(op):])
		if err != nil {
			return Event{}, err
		}
		e.Condition, e.Operator, e.Rewards = cond, op, rewards
		return e, nil
	}

	fields := strings.Fields(text)
	if len(fields) >= 2 && !strings.HasSuffix(fields[0], ",") && !strings.HasPrefix(fields[1], ",") {
		cond := Condition(fields[0])
		if !cond.Valid() {
			return Event{}, &ParseError{Token: fields[0]}
		}
		rewards, err := Parse(strings.Join(fields[1:], ""))
		if err != nil {
			return Event{}, err
		}
		e.Condition, e.Rewards = cond, rewards
		return e, nil
	}

	rewards, err := Parse(compact)
	if err != nil {
		return Event{}, err
	}
	e.Rewards = rewards
	return e, nil
}

func findOperator(s string) (int, Operator) {
	best, bestOp := -1, Once
	for _, op := range operators {
		if i := strings.Index(s, string(op)); i >= 0 && (best < 0 || i < best) {
			best, bestOp = i, op
		}
	}
	return best, bestOp
}

// ParseEvents reads a ";" separated list of events.
func ParseEvents(text string) ([]Event, error) {
	var out []Event
	for _, part := range strings.Split(text, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		e, err := ParseEvent(part)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// MustParseEvents is ParseEvents for static tables.
func MustParseEvents(texts ...string) []Event {
	var out []Event
	for _, t := range texts {
		e, err := ParseEvent(t)
		if err != nil {
			panic(err)
		}
		out = append(out, e)
	}
	return out
}

// CanonicalEvent parses and re-renders an event.
func CanonicalEvent(text string) (string, error) {
	e, err := ParseEvent(text)
	if err != nil {
		return "", err
	}
	return e.String(), nil
}

// WithSource returns copies of events stamped with source.
func WithSource(events []Event, source string) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		e.Source = source
		e.Rewards = append([]Reward(nil), e.Rewards...)
		out[i] = e
	}
	return out
}
