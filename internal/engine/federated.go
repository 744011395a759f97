package engine

import (
	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/hex"
)

// structureOf reports whether h holds a structure of pid that can belong
// to a federation.
func structureOf(pid int, h *board.Hex) bool {
	return h != nil && h.Player == pid && h.Occupied() && h.Building != board.GaiaFormer
}

// federatedAt reports whether c is part of a federation of pid, as a
// satellite or a federated structure.
func (e *Engine) federatedAt(pid int, c hex.Coord) bool {
	h := e.Map.Get(c)
	if h == nil {
		return false
	}
	return h.HasSatellite(pid) || (structureOf(pid, h) && h.Federated)
}

// touchesFederation reports whether c is next to a federation of pid.
func (e *Engine) touchesFederation(pid int, c hex.Coord) bool {
	for _, n := range e.Map.Neighbours(c) {
		if e.federatedAt(pid, n.Coord) {
			return true
		}
	}
	return false
}

// joinFederations adds the structure at c, and every structure of pid
// connected to it, to the federation c touches.
func (e *Engine) joinFederations(pid int, c hex.Coord) {
	if !e.touchesFederation(pid, c) {
		return
	}
	stack := []hex.Coord{c}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		h := e.Map.Get(cur)
		if !structureOf(pid, h) || h.Federated {
			continue
		}
		h.Federated = true
		for _, n := range e.Map.Neighbours(cur) {
			stack = append(stack, n.Coord)
		}
	}
}

// absorbNeighbours joins every loose structure of pid that touches one of
// its federations.
func (e *Engine) absorbNeighbours(pid int) {
	for _, h := range e.Map.OwnedBy(pid) {
		if structureOf(pid, h) && !h.Federated {
			e.joinFederations(pid, h.Coord)
		}
	}
}
