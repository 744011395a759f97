package parser

import (
	"fmt"
	"strings"
)

// ParseError reports move text that does not follow the grammar.
type ParseError struct {
	Input string
	Token string
	Hint  string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse move %q", e.Input)
	if e.Token != "" {
		msg += fmt.Sprintf(" at %q", e.Token)
	}
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Usage lists the argument shape of every command token.
var Usage = map[string]string{
	"faction":    "faction <faction>",
	"bid":        "bid <faction> <vp>",
	"build":      "build <m|ts|lab|PI|ac1|ac2|gf> <hex>",
	"booster":    "booster <booster>",
	"pass":       "pass [<booster>]",
	"up":         "up <terra|nav|int|gaia|eco|sci>",
	"charge":     "charge <rewards>",
	"decline":    "decline [<rewards>]",
	"burn":       "burn <n>",
	"spend":      "spend <rewards> for <rewards>",
	"brainstone": "brainstone <area1|area2|area3|gaia>",
	"action":     "action <power1..power7|qic1..qic3>",
	"special":    "special <rewards>",
	"tech":       "tech <position>",
	"cover":      "cover <position>",
	"fedtile":    "fedtile <fed>",
	"lostPlanet": "lostPlanet <hex>",
	"federation": "federation <hex,hex,...> <fed>",
	"income":     "income <rewards>",
}

// MapError takes a raw input and a participle error, and returns a *ParseError
// carrying the usage of the command it failed on.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return &ParseError{Input: input, Hint: "empty move"}
	}
	pe := &ParseError{Input: input, Hint: err.Error()}
	parts := strings.Fields(input)
	if len(parts) < 2 {
		pe.Hint = "a move is <player> <command> [args...]"
		return pe
	}
	cmd := strings.TrimSuffix(parts[1], ".")
	pe.Token = cmd
	if usage, ok := Usage[cmd]; ok {
		pe.Hint = "the command must be: " + usage
	}
	return pe
}

// BadCommand reports a sub-command whose token or arguments are wrong,
// wrapping the error that rejected them.
func BadCommand(input string, cmd *SubCommand, cause error) error {
	pe := &ParseError{Input: input, Token: cmd.String(), Err: cause}
	if usage, ok := Usage[cmd.Name]; ok {
		pe.Hint = "the command must be: " + usage
	} else {
		pe.Hint = "unknown command " + cmd.Name
	}
	return pe
}
