package board

import (
	"fmt"
	"sort"

	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

// NoPlayer marks a hex without an owner.
const NoPlayer = -1

// Hex is one space of the map.
type Hex struct {
	Coord      hex.Coord `json:"coord"`
	Sector     string    `json:"sector"`
	Planet     Planet    `json:"planet"`
	Player     int       `json:"player"`
	Building   Building  `json:"building,omitempty"`
	Federated  bool      `json:"federated,omitempty"`
	Satellites []int     `json:"satellites,omitempty"`
}

// Occupied reports whether a structure stands on the hex.
func (h *Hex) Occupied() bool {
	return h.Building != NoBuilding
}

// HasSatellite reports whether player has a satellite on the hex.
func (h *Hex) HasSatellite(player int) bool {
	for _, p := range h.Satellites {
		if p == player {
			return true
		}
	}
	return false
}

// Placement records where a sector tile sits and how it is turned.
type Placement struct {
	ID       string    `json:"id"`
	Center   hex.Coord `json:"center"`
	Rotation int       `json:"rotation"`
}

// Map is the whole board. It is plain data and round-trips through JSON.
type Map struct {
	Sectors []Placement        `json:"sectors"`
	Hexes   map[hex.Coord]*Hex `json:"hexes"`
}

// Get returns the hex at c, or nil when c is off the map.
func (m *Map) Get(c hex.Coord) *Hex {
	return m.Hexes[c]
}

// List returns every hex ordered by coordinate.
func (m *Map) List() []*Hex {
	out := make([]*Hex, 0, len(m.Hexes))
	for _, h := range m.Hexes {
		out = append(out, h)
	}
	sortHexes(out)
	return out
}

// Neighbours returns the on-map hexes adjacent to c.
func (m *Map) Neighbours(c hex.Coord) []*Hex {
	var out []*Hex
	for _, n := range c.Neighbours() {
		if h := m.Hexes[n]; h != nil {
			out = append(out, h)
		}
	}
	return out
}

// Within returns the on-map hexes at distance 1..d from c, ordered.
func (m *Map) Within(c hex.Coord, d int) []*Hex {
	var out []*Hex
	for _, n := range c.Within(d) {
		if n == c {
			continue
		}
		if h := m.Hexes[n]; h != nil {
			out = append(out, h)
		}
	}
	return out
}

// OwnedBy returns the hexes where player has a structure, ordered.
func (m *Map) OwnedBy(player int) []*Hex {
	var out []*Hex
	for _, h := range m.Hexes {
		if h.Player == player && h.Occupied() {
			out = append(out, h)
		}
	}
	sortHexes(out)
	return out
}

// Distance returns the distance from c to the nearest structure of player,
// or -1 if the player has none.
func (m *Map) Distance(c hex.Coord, player int) int {
	best := -1
	for _, h := range m.Hexes {
		if h.Player != player || !h.Occupied() {
			continue
		}
		if d := hex.Distance(c, h.Coord); best < 0 || d < best {
			best = d
		}
	}
	return best
}

// Clone deep-copies the map.
func (m *Map) Clone() *Map {
	out := &Map{
		Sectors: append([]Placement(nil), m.Sectors...),
		Hexes:   make(map[hex.Coord]*Hex, len(m.Hexes)),
	}
	for c, h := range m.Hexes {
		cp := *h
		cp.Satellites = append([]int(nil), h.Satellites...)
		out.Hexes[c] = &cp
	}
	return out
}

// Validate checks that no two planets of the same type touch across a
// sector border.
func (m *Map) Validate() error {
	for _, h := range m.List() {
		if h.Planet == Empty {
			continue
		}
		for _, n := range m.Neighbours(h.Coord) {
			if n.Sector != h.Sector && n.Planet == h.Planet {
				return fmt.Errorf("%w: %s planets touch at %s and %s", ErrLayout, h.Planet, h.Coord, n.Coord)
			}
		}
	}
	return nil
}

func sortHexes(hs []*Hex) {
	sort.Slice(hs, func(i, j int) bool { return hex.Less(hs[i].Coord, hs[j].Coord) })
}
