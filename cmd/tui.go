package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/suderio/recall/internal/actor"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/session"
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

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

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
)

const welcome = "Welcome to recall!\nType 'help' for commands, 'quit' to leave."

var baseCmds = []string{"attack to: ", "block", "charge", "use ", "recall ", "end", "status", "recipes", "help ", "quit"}

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type playModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	showList    bool
	over        bool
}

func newPlayModel(app *session.Session) playModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., attack to: 2)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	m := playModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		historyIdx:  -1,
		logContent:  welcome + "\n",
	}
	m.start()
	return m
}

// start runs the combat to the first player input and shows what happened.
func (m *playModel) start() {
	m.app.Start()
	m.appendFeed(m.app.Feed())
	m.over = m.app.Snapshot().Outcome != engine.Ongoing
	m.viewport.SetContent(m.logContent)
}

func (m *playModel) appendFeed(lines []string) {
	for _, l := range lines {
		m.logContent += l + "\n"
	}
}

func (m *playModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *playModel) updateSuggestions() {
	val := m.textInput.Value()
	var items []list.Item

	defer func() {
		m.suggestions.SetItems(items)
		m.showList = len(items) > 0
		if m.showList {
			h := min(len(items), 10)
			if h < 4 {
				h = 4
			}
			m.suggestions.SetHeight(h)
			m.suggestions.ResetSelected()
		}
	}()

	if val == "" {
		return
	}
	lower := strings.ToLower(val)

	for _, c := range baseCmds {
		if strings.HasPrefix(c, lower) && len(val) < len(c) {
			items = append(items, suggestion(c))
		}
	}

	snap := m.app.Snapshot()
	switch {
	case strings.Contains(lower, " to: "):
		// Living enemies as targets.
		parts := strings.SplitN(lower, " to: ", 2)
		base := val[:len(val)-len(parts[1])]
		for _, a := range snap.Actors {
			id := strconv.Itoa(a.ID)
			if a.Side == actor.SideEnemy.String() && a.Alive && strings.HasPrefix(id, parts[1]) {
				items = append(items, suggestion(base+id))
			}
		}
	case lower == "use " || (strings.HasPrefix(lower, "use ") && !strings.Contains(lower, " to:")):
		prefix := strings.TrimPrefix(lower, "use ")
		for _, act := range snap.Slots {
			id := strconv.Itoa(act.SlotID)
			if strings.HasPrefix(id, prefix) && act.Ready() {
				items = append(items, suggestion("use "+id+" "))
			}
		}
	case strings.HasPrefix(lower, "recall ") && !strings.Contains(lower, "pick:"):
		// Offer the candidates of a complete selection.
		indices, ok := parseIndices(strings.TrimPrefix(lower, "recall "))
		if !ok {
			return
		}
		cands, code := m.app.Candidates(indices)
		if !code.OK() {
			return
		}
		base := strings.TrimRight(val, " ")
		for _, rc := range cands {
			items = append(items, suggestion(fmt.Sprintf("%s pick: %d", base, rc.ID)))
		}
	}
}

func parseIndices(s string) ([]int, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) == 0 {
		return nil, false
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
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

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.history) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.history[m.historyIdx])
				m.updateSuggestions()
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else if len(m.history) > 0 && m.historyIdx != -1 {
				if m.historyIdx < len(m.history)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.history[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.updateSuggestions()
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
			if val == "" {
				break
			}
			if len(m.history) == 0 || m.history[len(m.history)-1] != val {
				m.history = append(m.history, val)
			}
			m.historyIdx = -1
			m.textInput.SetValue("")
			m.updateSuggestions()

			if m.over {
				return m, tea.Quit
			}
			m.logContent += fmt.Sprintf("\n> %s\n", val)
			res, err := m.app.Execute(val)
			if errors.Is(err, session.ErrQuit) {
				return m, tea.Quit
			}
			if res != "" {
				m.logContent += res + "\n"
			}
			if err != nil {
				m.logContent += errorStyle.Render(fmt.Sprintf("Error: %v", err)) + "\n"
			}
			if m.app.Snapshot().Outcome != engine.Ongoing {
				m.over = true
				m.logContent += "\nPress enter to leave.\n"
			}
			m.viewport.SetContent(m.logContent)
			m.viewport.GotoBottom()

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
	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}
	infoH := lipgloss.Height(infoStyle.Render("Dummy"))

	// title + state + input + list + info + borders and spacing
	overhead := titleH + stateH + 1 + listAreaHeight + infoH + 11
	m.viewport.Height = max(m.height-overhead, 4)

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *playModel) renderState() string {
	return stateBoxStyle.Width(m.width - 4).Render(session.Status(m.app.Snapshot()))
}

func (m *playModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	snap := m.app.Snapshot()
	title := titleStyle.Render(fmt.Sprintf(" recall | %s | turn %d ", m.app.Encounter(), snap.Turn))
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	inputArea := m.textInput.View()
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", inputArea, autocompleteStyle.Render(m.suggestions.View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderState(),
		logBox,
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)
}

// RunTUI plays the session in a full screen interface.
func RunTUI(app *session.Session) error {
	m := newPlayModel(app)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
