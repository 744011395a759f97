package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGameOver is returned for moves after the final scoring.
var ErrGameOver = errors.New("the game is over")

// IllegalMoveError rejects a well-formed command that is not available
// now. The engine is left unchanged.
type IllegalMoveError struct {
	Move      string
	Command   string
	Reason    string
	Available []AvailableCommand
}

func (e *IllegalMoveError) Error() string {
	msg := fmt.Sprintf("illegal command %q in move %q", e.Command, e.Move)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// IncompleteMoveError is returned when a move stops before the turn can
// close. The move is kept; the same player continues it with their next
// move.
type IncompleteMoveError struct {
	Player    int
	Pending   []FollowUp
	Available []AvailableCommand
}

func (e *IncompleteMoveError) Error() string {
	var wants []string
	for _, a := range e.Available {
		wants = append(wants, a.Name)
	}
	return fmt.Sprintf("move of player %d is incomplete, expecting one of: %s", e.Player+1, strings.Join(wants, ", "))
}

// InvariantError means the game reached a state the rules cannot continue
// from. The engine refuses every further move.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "broken game state: " + e.Reason
}
