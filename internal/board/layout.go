package board

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"lukechampine.com/blake3"

	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

// ErrLayout is returned when the sectors cannot be placed legally.
var ErrLayout = errors.New("invalid map layout")

// SectorRadius is the radius of every sector tile.
const SectorRadius = 2

// layoutAttempts bounds the seeded re-rolls of sector rotations.
const layoutAttempts = 3

// SectorCount returns how many sectors a game with players uses. Two-player
// games use the first seven catalog sectors.
func SectorCount(players int) int {
	if players <= 2 {
		return 7
	}
	return 10
}

// NewRand returns a PRNG seeded from the game seed. Different salts give
// independent streams so adding a shuffle never disturbs another.
func NewRand(seed, salt string) *rand.Rand {
	sum := blake3.Sum256([]byte(seed + "/" + salt))
	return rand.New(rand.NewSource(binary.LittleEndian.Uint64(sum[:8])))
}

// Generate lays out the sectors for a game. With rotate set each sector is
// turned by a seeded amount; rotations are re-rolled until the layout is
// valid, up to a fixed number of attempts.
func Generate(sectors []catalog.SectorDef, players int, seed string, rotate bool) (*Map, error) {
	n := SectorCount(players)
	if len(sectors) < n {
		return nil, fmt.Errorf("%w: need %d sectors, catalog has %d", ErrLayout, n, len(sectors))
	}
	rng := NewRand(seed, "layout")

	var err error
	for attempt := 0; attempt < layoutAttempts; attempt++ {
		rotations := make([]int, n)
		if rotate {
			for i := range rotations {
				rotations[i] = rng.Intn(6)
			}
		}
		var m *Map
		m, err = place(sectors[:n], rotations)
		if err != nil {
			return nil, err
		}
		if err = m.Validate(); err == nil {
			return m, nil
		}
		if !rotate {
			break
		}
	}
	return nil, err
}

func place(sectors []catalog.SectorDef, rotations []int) (*Map, error) {
	m := &Map{Hexes: make(map[hex.Coord]*Hex)}
	for i, s := range sectors {
		center, err := hex.Parse(s.Center)
		if err != nil {
			return nil, fmt.Errorf("sector %s: %w", s.ID, err)
		}
		m.Sectors = append(m.Sectors, Placement{ID: s.ID, Center: center, Rotation: rotations[i]})

		for _, c := range center.Within(SectorRadius) {
			if _, dup := m.Hexes[c]; dup {
				return nil, fmt.Errorf("%w: sectors overlap at %s", ErrLayout, c)
			}
			m.Hexes[c] = &Hex{Coord: c, Sector: s.ID, Planet: Empty, Player: NoPlayer}
		}
		for off, code := range s.Planets {
			o, err := hex.Parse(off)
			if err != nil {
				return nil, fmt.Errorf("sector %s: %w", s.ID, err)
			}
			p := Planet(code)
			if !p.Valid() {
				return nil, fmt.Errorf("sector %s: unknown planet %q", s.ID, code)
			}
			c := center.Add(o).Rotate(center, rotations[i])
			h, ok := m.Hexes[c]
			if !ok {
				return nil, fmt.Errorf("sector %s: planet %s outside sector", s.ID, off)
			}
			h.Planet = p
		}
	}
	return m, nil
}
