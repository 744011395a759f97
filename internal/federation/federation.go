// Package federation finds the federations a player can form: groups of
// their buildings reaching a power threshold, joined by as few satellites
// as possible.
package federation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

// Mode selects the spanning search.
type Mode string

const (
	Heuristic  Mode = "heuristic"
	Exhaustive Mode = "exhaustive"
)

// ParseMode validates a search mode, defaulting to Heuristic.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Heuristic:
		return Heuristic, nil
	case Exhaustive:
		return Exhaustive, nil
	}
	return "", fmt.Errorf("unknown federation search mode %q", s)
}

// Building is a structure that may join a federation.
type Building struct {
	Coord hex.Coord
	Power int
}

// Request describes one search.
type Request struct {
	Buildings     []Building
	Passable      func(hex.Coord) bool
	Threshold     int
	MaxSatellites int
}

// Info is one possible federation.
type Info struct {
	Hexes      []hex.Coord `json:"hexes"`
	Planets    int         `json:"planets"`
	Satellites int         `json:"satellites"`
}

// Key is the canonical text of the hexes, "QxR,QxR,...".
func (f Info) Key() string {
	return Key(f.Hexes)
}

// Key renders a hex set canonically.
func Key(hexes []hex.Coord) string {
	cs := append([]hex.Coord(nil), hexes...)
	hex.Sort(cs)
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// ParseKey reads a hex list written by Key.
func ParseKey(text string) ([]hex.Coord, error) {
	var out []hex.Coord
	for _, part := range strings.Split(text, ",") {
		c, err := hex.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	hex.Sort(out)
	return out, nil
}

// Searcher finds federations. Implementations are exponential in the
// number of building groups.
type Searcher interface {
	Search(req Request) []Info
}

// NewSearcher returns the searcher for mode.
func NewSearcher(mode Mode) Searcher {
	if mode == Exhaustive {
		return exhaustive{}
	}
	return heuristic{}
}

// Outclasses reports whether a makes b pointless: at least as many planets
// with no more satellites and strictly better on one, or b is a strict
// superset of a with the same planets and more satellites.
func Outclasses(a, b Info) bool {
	if a.Planets >= b.Planets && a.Satellites <= b.Satellites &&
		(a.Planets > b.Planets || a.Satellites < b.Satellites) {
		return true
	}
	return a.Planets == b.Planets && b.Satellites > a.Satellites && strictSuperset(b.Hexes, a.Hexes)
}

func strictSuperset(big, small []hex.Coord) bool {
	if len(big) <= len(small) {
		return false
	}
	set := make(map[hex.Coord]bool, len(big))
	for _, c := range big {
		set[c] = true
	}
	for _, c := range small {
		if !set[c] {
			return false
		}
	}
	return true
}

// Prune drops every result outclassed by another. Equal results are all
// kept.
func Prune(infos []Info) []Info {
	var out []Info
	for i, f := range infos {
		dominated := false
		for j, g := range infos {
			if i != j && Outclasses(g, f) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, f)
		}
	}
	return out
}

// Errors returned by Validate.
var (
	ErrDisconnected = errors.New("federation is not connected")
	ErrWeak         = errors.New("federation does not reach the power threshold")
	ErrBadHex       = errors.New("hex cannot be part of the federation")
	ErrTooMany      = errors.New("not enough power tokens for the satellites")
)

// Validate checks a federation submitted by hand and returns its Info.
func Validate(req Request, hexes []hex.Coord) (Info, error) {
	power := make(map[hex.Coord]int, len(req.Buildings))
	for _, b := range req.Buildings {
		power[b.Coord] = b.Power
	}
	set := make(map[hex.Coord]bool, len(hexes))
	info := Info{Hexes: append([]hex.Coord(nil), hexes...)}
	total := 0
	for _, c := range hexes {
		if set[c] {
			continue
		}
		set[c] = true
		if p, ok := power[c]; ok {
			info.Planets++
			total += p
		} else if req.Passable(c) {
			info.Satellites++
		} else {
			return Info{}, fmt.Errorf("%w: %s", ErrBadHex, c)
		}
	}
	hex.Sort(info.Hexes)
	if !connected(set) {
		return Info{}, ErrDisconnected
	}
	if total < req.Threshold {
		return Info{}, fmt.Errorf("%w: %d < %d", ErrWeak, total, req.Threshold)
	}
	if info.Satellites > req.MaxSatellites {
		return Info{}, ErrTooMany
	}
	return info, nil
}

func connected(set map[hex.Coord]bool) bool {
	if len(set) == 0 {
		return false
	}
	var start hex.Coord
	for c := range set {
		start = c
		break
	}
	seen := map[hex.Coord]bool{start: true}
	queue := []hex.Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range c.Neighbours() {
			if set[n] && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(set)
}

// group is a connected set of the player's buildings.
type group struct {
	hexes []hex.Coord
	power int
}

// groups splits the buildings into connected groups, ordered by their
// first hex.
func groups(buildings []Building) []group {
	power := make(map[hex.Coord]int, len(buildings))
	var coords []hex.Coord
	for _, b := range buildings {
		power[b.Coord] = b.Power
		coords = append(coords, b.Coord)
	}
	hex.Sort(coords)

	seen := make(map[hex.Coord]bool)
	var out []group
	for _, c := range coords {
		if seen[c] {
			continue
		}
		g := group{}
		seen[c] = true
		queue := []hex.Coord{c}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			g.hexes = append(g.hexes, cur)
			g.power += power[cur]
			for _, n := range cur.Neighbours() {
				if _, ok := power[n]; ok && !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
		hex.Sort(g.hexes)
		out = append(out, g)
	}
	return out
}

// combinations enumerates the subsets of groups reaching threshold,
// not extending a subset once it does.
func combinations(gs []group, threshold int) [][]group {
	var out [][]group
	var walk func(start, power int, acc []group)
	walk = func(start, power int, acc []group) {
		for i := start; i < len(gs); i++ {
			next := append(append([]group(nil), acc...), gs[i])
			if power+gs[i].power >= threshold {
				out = append(out, next)
				continue
			}
			walk(i+1, power+gs[i].power, next)
		}
	}
	walk(0, 0, nil)
	return out
}

// search runs connect over every qualifying subset, dedupes and sorts.
func search(req Request, connect func(req Request, gs []group) ([]hex.Coord, bool)) []Info {
	seen := make(map[string]bool)
	var out []Info
	for _, subset := range combinations(groups(req.Buildings), req.Threshold) {
		sats, ok := connect(req, subset)
		if !ok || len(sats) > req.MaxSatellites {
			continue
		}
		info := Info{Satellites: len(sats)}
		for _, g := range subset {
			info.Hexes = append(info.Hexes, g.hexes...)
			info.Planets += len(g.hexes)
		}
		info.Hexes = append(info.Hexes, sats...)
		hex.Sort(info.Hexes)
		if key := info.Key(); !seen[key] {
			seen[key] = true
			out = append(out, info)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Satellites != out[j].Satellites {
			return out[i].Satellites < out[j].Satellites
		}
		return out[i].Key() < out[j].Key()
	})
	return out
}
