package parser

import (
	"strings"
)

// Move is one line of the move log: the acting player (seat "p1" or a
// faction name) followed by dot separated sub-commands.
type Move struct {
	Player   string        `parser:"@Word"`
	Commands []*SubCommand `parser:"( @@ Dot? )+"`
}

// SubCommand is a command token and its arguments.
type SubCommand struct {
	Name string   `parser:"@Word"`
	Args []string `parser:"@Word*"`
}

func (s *SubCommand) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Tail renders the sub-commands without the player, "a x. b y".
func (m *Move) Tail() string {
	parts := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		parts[i] = c.String()
	}
	return strings.Join(parts, ". ")
}

// String is the canonical move text.
func (m *Move) String() string {
	return m.Player + " " + m.Tail()
}
