package federation

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

// maxStates bounds the exhaustive search per subset.
const maxStates = 200000

// starLimit is the largest number of groups joined exactly through a
// single meeting hex.
const starLimit = 3

type heuristic struct{}

// Search joins up to three groups through their best meeting hex, which
// is exact. Larger subsets grow a tree from each group in turn, always
// joining the nearest unreached group, and keep the cheapest tree.
func (heuristic) Search(req Request) []Info {
	return search(req, approximate)
}

func approximate(req Request, gs []group) ([]hex.Coord, bool) {
	if len(gs) <= starLimit {
		return star(req, gs)
	}
	var best []hex.Coord
	found := false
	for start := range gs {
		sats, ok := grow(req, gs, start)
		if ok && (!found || len(sats) < len(best)) {
			best, found = sats, true
		}
	}
	return best, found
}

// reach is a breadth-first distance map from one group. dist counts the
// satellites on the way, the reached hex included when it is passable.
// Hexes of the other groups are reached but never crossed.
type reach struct {
	dist map[hex.Coord]int
	prev map[hex.Coord]hex.Coord
}

func distances(req Request, gs []group, from int, owner map[hex.Coord]int, blocked map[hex.Coord]bool) reach {
	r := reach{dist: make(map[hex.Coord]int), prev: make(map[hex.Coord]hex.Coord)}
	frontier := append([]hex.Coord(nil), gs[from].hexes...)
	for _, c := range frontier {
		r.dist[c] = 0
	}
	for len(frontier) > 0 {
		var next []hex.Coord
		for _, c := range frontier {
			d := r.dist[c]
			for _, n := range c.Neighbours() {
				if _, ok := r.dist[n]; ok {
					continue
				}
				if g, ok := owner[n]; ok {
					if g != from {
						r.dist[n] = d
						r.prev[n] = c
					}
					continue
				}
				if d >= req.MaxSatellites || blocked[n] || !req.Passable(n) {
					continue
				}
				r.dist[n] = d + 1
				r.prev[n] = c
				next = append(next, n)
			}
		}
		frontier = next
	}
	return r
}

// path lists the satellites from the group back from c, c included when
// it is one.
func (r reach) path(c hex.Coord, owner map[hex.Coord]int) []hex.Coord {
	var out []hex.Coord
	for r.dist[c] > 0 {
		if _, own := owner[c]; !own {
			out = append(out, c)
		}
		c = r.prev[c]
	}
	return out
}

// star finds a minimum tree joining at most three groups. Such a tree is
// either a path through one of the groups or three shortest paths meeting
// at one free hex, so trying every meeting point is enough.
func star(req Request, gs []group) ([]hex.Coord, bool) {
	if len(gs) == 1 {
		return nil, true
	}
	owner, blocked := layout(req, gs)
	reaches := make([]reach, len(gs))
	for i := range gs {
		reaches[i] = distances(req, gs, i, owner, blocked)
	}

	bestCost := -1
	var ends []hex.Coord

	// Meeting at a group: every other group takes its cheapest entry.
	for j, g := range gs {
		cost := 0
		meet := make([]hex.Coord, len(gs))
		ok := true
		for i := range gs {
			if i == j {
				continue
			}
			entry, d, found := closest(reaches[i], g.hexes)
			if !found {
				ok = false
				break
			}
			meet[i] = entry
			cost += d
		}
		if ok && (bestCost < 0 || cost < bestCost) {
			bestCost, ends = cost, meet
			ends[j] = g.hexes[0]
		}
	}

	// Meeting at a free hex shared by every path.
	var free []hex.Coord
	for c := range reaches[0].dist {
		if _, own := owner[c]; !own {
			free = append(free, c)
		}
	}
	hex.Sort(free)
	for _, x := range free {
		cost := 1 - len(gs)
		ok := true
		for i := range gs {
			d, found := reaches[i].dist[x]
			if !found {
				ok = false
				break
			}
			cost += d
		}
		if ok && (bestCost < 0 || cost < bestCost) {
			bestCost = cost
			ends = make([]hex.Coord, len(gs))
			for i := range ends {
				ends[i] = x
			}
		}
	}
	if bestCost < 0 || bestCost > req.MaxSatellites {
		return nil, false
	}

	set := make(map[hex.Coord]bool)
	for i := range gs {
		for _, c := range reaches[i].path(ends[i], owner) {
			set[c] = true
		}
	}
	sats := make([]hex.Coord, 0, len(set))
	for c := range set {
		sats = append(sats, c)
	}
	hex.Sort(sats)
	return sats, true
}

func closest(r reach, hexes []hex.Coord) (hex.Coord, int, bool) {
	var best hex.Coord
	bestDist := -1
	for _, c := range hexes {
		if d, ok := r.dist[c]; ok && (bestDist < 0 || d < bestDist) {
			best, bestDist = c, d
		}
	}
	return best, bestDist, bestDist >= 0
}

// layout maps every hex of the subset to its group and blocks the
// buildings left out of it.
func layout(req Request, gs []group) (map[hex.Coord]int, map[hex.Coord]bool) {
	owner := make(map[hex.Coord]int)
	for i, g := range gs {
		for _, c := range g.hexes {
			owner[c] = i
		}
	}
	blocked := make(map[hex.Coord]bool)
	for _, b := range req.Buildings {
		if _, ok := owner[b.Coord]; !ok {
			blocked[b.Coord] = true
		}
	}
	return owner, blocked
}

func grow(req Request, gs []group, start int) ([]hex.Coord, bool) {
	tree := make(map[hex.Coord]bool)
	for _, c := range gs[start].hexes {
		tree[c] = true
	}
	owner, blocked := layout(req, gs)
	reached := map[int]bool{start: true}
	var sats []hex.Coord

	for len(reached) < len(gs) {
		path, target, ok := nearest(req, tree, owner, blocked, reached)
		if !ok {
			return nil, false
		}
		for _, c := range path {
			tree[c] = true
			sats = append(sats, c)
		}
		for _, c := range gs[target].hexes {
			tree[c] = true
		}
		reached[target] = true
		if len(sats) > req.MaxSatellites {
			return nil, false
		}
	}
	hex.Sort(sats)
	return sats, true
}

// nearest runs a breadth-first search from the tree through passable
// hexes and returns the intermediate hexes of the shortest path to an
// unreached group.
func nearest(req Request, tree map[hex.Coord]bool, owner map[hex.Coord]int, blocked map[hex.Coord]bool, reached map[int]bool) ([]hex.Coord, int, bool) {
	var frontier []hex.Coord
	for c := range tree {
		frontier = append(frontier, c)
	}
	hex.Sort(frontier)

	prev := make(map[hex.Coord]hex.Coord)
	seen := make(map[hex.Coord]bool, len(frontier))
	for _, c := range frontier {
		seen[c] = true
	}
	for len(frontier) > 0 {
		var next []hex.Coord
		for _, c := range frontier {
			for _, n := range c.Neighbours() {
				if seen[n] {
					continue
				}
				if g, ok := owner[n]; ok && !reached[g] {
					var path []hex.Coord
					for cur := c; !tree[cur]; cur = prev[cur] {
						path = append(path, cur)
					}
					return path, g, true
				}
				if _, own := owner[n]; own || blocked[n] || !req.Passable(n) {
					continue
				}
				seen[n] = true
				prev[n] = c
				next = append(next, n)
			}
		}
		frontier = next
	}
	return nil, 0, false
}

type exhaustive struct{}

// Search is exact for every subset. Up to three groups it shares the
// meeting point search; beyond that it explores satellite sets breadth
// first, bounded by the tree the heuristic finds, so the first connecting
// set is a minimum one. If the state budget runs out the heuristic tree
// is kept.
func (exhaustive) Search(req Request) []Info {
	return search(req, func(req Request, gs []group) ([]hex.Coord, bool) {
		if len(gs) <= starLimit {
			return star(req, gs)
		}
		bound, bounded := approximate(req, gs)
		limit := req.MaxSatellites
		if bounded {
			limit = len(bound) - 1
		}
		sats, ok, exhausted := sets(req, gs, limit)
		switch {
		case ok:
			return sats, true
		case exhausted && bounded:
			log.Warn().Int("groups", len(gs)).Int("satellites", len(bound)).
				Msg("federation search budget exhausted, keeping the heuristic tree")
		case exhausted:
			log.Warn().Int("groups", len(gs)).Msg("federation search budget exhausted")
		}
		return bound, bounded
	})
}

// sets looks for the smallest satellite set of at most limit hexes that
// joins gs. exhausted reports that maxStates ran out first.
func sets(req Request, gs []group, limit int) (sats []hex.Coord, ok, exhausted bool) {
	owner, blocked := layout(req, gs)
	base := make(map[hex.Coord]bool, len(owner))
	for c := range owner {
		base[c] = true
	}
	if connected(base) {
		return nil, true, false
	}

	level := [][]hex.Coord{nil}
	seen := map[string]bool{"": true}
	states := 0
	for size := 1; size <= limit; size++ {
		var next [][]hex.Coord
		for _, sats := range level {
			for _, c := range candidates(req, base, blocked, sats) {
				grown := append(append([]hex.Coord(nil), sats...), c)
				hex.Sort(grown)
				key := Key(grown)
				if seen[key] {
					continue
				}
				seen[key] = true
				if states++; states > maxStates {
					return nil, false, true
				}
				if connected(union(base, grown)) {
					return grown, true, false
				}
				next = append(next, grown)
			}
		}
		sort.Slice(next, func(i, j int) bool { return strings.Compare(Key(next[i]), Key(next[j])) < 0 })
		level = next
	}
	return nil, false, false
}

func candidates(req Request, base, blocked map[hex.Coord]bool, sats []hex.Coord) []hex.Coord {
	cur := union(base, sats)
	set := make(map[hex.Coord]bool)
	for c := range cur {
		for _, n := range c.Neighbours() {
			if !cur[n] && !blocked[n] && req.Passable(n) {
				set[n] = true
			}
		}
	}
	out := make([]hex.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	hex.Sort(out)
	return out
}

func union(base map[hex.Coord]bool, extra []hex.Coord) map[hex.Coord]bool {
	out := make(map[hex.Coord]bool, len(base)+len(extra))
	for c := range base {
		out[c] = true
	}
	for _, c := range extra {
		out[c] = true
	}
	return out
}
