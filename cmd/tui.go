package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/session"
)

const maxSuggestions = 10

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

// playModel is the bubbletea model of the interactive shell: the
// scoreboard on top, the move log below and the prompt with completion.
type playModel struct {
	app         *session.Session
	gameName    string
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	showList    bool
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
}

func newPlayModel(app *session.Session, gameName string) playModel {
	ti := textinput.New()
	ti.Placeholder = "Enter a move (e.g., terrans build m 0x1)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	welcome := "Type a move, 'moves' for the history or 'exit' to quit."
	vp := viewport.New(0, 0)
	vp.SetContent(welcome)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false)
	sugList.SetShowHelp(false)

	return playModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		historyIdx:  -1,
		logContent:  welcome,
		gameName:    gameName,
	}
}

func (m *playModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playModel) updateSuggestions() {
	val := strings.ToLower(m.textInput.Value())
	var items []list.Item

	if val != "" {
		for _, c := range append(suggestions(m.app.Engine()), "moves", "exit") {
			if strings.HasPrefix(strings.ToLower(c), val) && len(val) < len(c) {
				items = append(items, suggestion(c))
			}
		}
	}

	m.suggestions.SetItems(items)
	m.showList = len(items) > 0
	if m.showList {
		h := min(len(items), maxSuggestions)
		m.suggestions.SetHeight(max(h, 4))
		m.suggestions.ResetSelected()
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp, tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if msg.Type == tea.KeyUp {
				m.recall(-1)
			} else {
				m.recall(1)
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}
			if val != "" {
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.run(val)
				m.updateSuggestions()
				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}

		default:
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	listH := 0
	if m.showList {
		listH = m.suggestions.Height() + 2
	}
	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	overhead := titleH + stateH + 1 + listH + infoH + 6

	m.viewport.Height = max(m.height-overhead, 4)

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

// recall walks the move history; stepping past the newest entry clears
// the prompt.
func (m *playModel) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	switch {
	case m.historyIdx == -1 && step < 0:
		m.historyIdx = len(m.history) - 1
	case m.historyIdx == -1:
		return
	default:
		m.historyIdx = max(m.historyIdx+step, 0)
	}
	if m.historyIdx >= len(m.history) {
		m.historyIdx = -1
		m.textInput.SetValue("")
	} else {
		m.textInput.SetValue(m.history[m.historyIdx])
	}
	m.updateSuggestions()
}

// run executes one line typed at the prompt and appends the outcome to the
// log pane.
func (m *playModel) run(val string) {
	m.logContent += fmt.Sprintf("\n\n> %s\n", val)
	if val == "moves" {
		m.logContent += strings.Join(m.app.Engine().Moves, "\n")
		return
	}

	g, err := m.app.Execute(val)
	var incomplete *engine.IncompleteMoveError
	switch {
	case err == nil:
		m.logContent += "ok"
	case errors.As(err, &incomplete):
		m.logContent += "ok, the turn goes on"
	default:
		m.logContent += errorStyle.Render(fmt.Sprintf("Error: %v", err))
		return
	}
	if n := len(g.Log); n > 0 {
		last := g.Log[n-1]
		m.logContent += fmt.Sprintf(" (%s)", last.Command)
	}
}

func (m *playModel) renderState() string {
	g := m.app.Engine()
	view := renderStatus(g) + "\n\n" + renderBoard(g)
	return stateBoxStyle.Width(m.width - 4).Render(view)
}

func (m *playModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" Gaia Project | %s ", m.gameName))
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	inputArea := m.textInput.View()
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", inputArea, autocompleteStyle.Render(m.suggestions.View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderState(),
		logBox,
		"",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)
}

// RunTUI runs the interactive shell until the user quits.
func RunTUI(app *session.Session, gameName string) error {
	m := newPlayModel(app, gameName)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
