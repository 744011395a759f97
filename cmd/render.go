package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/boardgamers/gaia-project-sub000/internal/board"
	"github.com/boardgamers/gaia-project-sub000/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))

	headerStyle = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// renderStatus is the one-line summary of where the game stands.
func renderStatus(g *engine.Engine) string {
	switch {
	case g.Broken != "":
		return errorStyle.Render("broken: " + g.Broken)
	case g.Phase == engine.PhaseEndGame:
		names := make([]string, 0, len(g.Players))
		for _, pid := range g.Ranking() {
			names = append(names, fmt.Sprintf("%s %dvp", g.PlayerName(pid), g.Players[pid].Data.VP))
		}
		return "Game over: " + strings.Join(names, ", ")
	case g.Round == 0:
		return fmt.Sprintf("Setup (%s), %d moves", g.Phase, len(g.Moves))
	}
	return fmt.Sprintf("Round %d (%s), %d moves", g.Round, g.Phase, len(g.Moves))
}

// renderBoard is the scoreboard: one row per seat with resources, power
// bowls, research levels and buildings.
func renderBoard(g *engine.Engine) string {
	active := g.Actor()

	cols := []string{"player", "vp", "c", "o", "k", "q", "power", "gf"}
	for _, f := range board.Fields {
		cols = append(cols, string(f))
	}
	cols = append(cols, "buildings", "booster")

	rows := [][]string{cols}
	for pid, p := range g.Players {
		d := p.Data
		row := []string{
			g.PlayerName(pid),
			fmt.Sprint(d.VP),
			fmt.Sprint(d.Credits),
			fmt.Sprint(d.Ore),
			fmt.Sprint(d.Knowledge),
			fmt.Sprint(d.Qic),
			fmt.Sprintf("%d/%d/%d", d.Power.Area1, d.Power.Area2, d.Power.Area3),
			fmt.Sprint(d.GaiaFormers),
		}
		for _, f := range board.Fields {
			row = append(row, fmt.Sprint(d.Research[f]))
		}
		var built []string
		for _, b := range board.Buildings {
			if n := d.Buildings[b]; n > 0 {
				built = append(built, fmt.Sprintf("%d%s", n, b))
			}
		}
		row = append(row, strings.Join(built, " "), p.Booster)
		rows = append(rows, row)
	}

	highlight := -1
	if active >= 0 {
		highlight = active + 1
	}
	return renderTable(rows, highlight)
}

// renderAvailable lists the legal commands the way they are typed.
func renderAvailable(g *engine.Engine) string {
	var lines []string
	for _, a := range g.AvailableCommands() {
		args := make([]string, 0, len(a.Options))
		for _, o := range a.Options {
			args = append(args, optionText(o))
		}
		line := fmt.Sprintf("%s %s", g.PlayerName(a.Player), a.Name)
		if len(args) > 0 {
			line += ": " + strings.Join(args, " | ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func optionText(o engine.Option) string {
	text := strings.Join(o.Args, " ")
	if o.Max > 0 {
		text = strings.TrimSpace(fmt.Sprintf("%s %d-%d", text, o.Min, o.Max))
	}
	if o.Cost != "" {
		text += " (" + o.Cost + ")"
	}
	return text
}

// suggestions are complete move texts built from the legal commands.
func suggestions(g *engine.Engine) []string {
	var out []string
	for _, a := range g.AvailableCommands() {
		prefix := g.PlayerName(a.Player) + " " + a.Name
		if len(a.Options) == 0 {
			out = append(out, prefix)
			continue
		}
		for _, o := range a.Options {
			text := prefix
			if len(o.Args) > 0 {
				text += " " + strings.Join(o.Args, " ")
			}
			if o.Max > 0 {
				text += fmt.Sprintf(" %d", max(o.Min, 1))
			}
			out = append(out, text)
		}
	}
	return out
}

func renderGame(g *engine.Engine) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderStatus(g),
		"",
		stateBoxStyle.Render(renderBoard(g)),
		infoStyle.Render(renderAvailable(g)),
	)
}
