package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	minWidthForDetails = 80 // Below this the details panel folds under the table
	detailsWidth       = 26
	scoreboardLimit    = 100
)

// scoreStore is what the scoreboard needs from storage.
type scoreStore interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	ClearScores(gameID string) error
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Mode    key.Binding
	Clear   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.Clear, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Mode},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear mode"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the top runs of each match-3 mode.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     scoreStore // nil when the database could not be opened
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	confirm   bool // Waiting for y after x
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var src scoreStore
	if store != nil {
		src = store
	}
	return newScoreboard(src, width, height)
}

func newScoreboard(src scoreStore, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  src,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForDetails
}

func (m ScoreboardModel) newTable() table.Model {
	dateW := 12
	if m.wide() {
		dateW = max(12, min(m.width-detailsWidth-46, 20))
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Turns", Width: 6},
		{Title: "Chain", Width: 6},
		{Title: "Date", Width: dateW},
	}

	// Title, tabs, help and borders take the rest
	height := m.height - 9
	if !m.wide() {
		height -= 2
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches scores and stats for the current mode.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		m.scores, m.loadErr = m.store.TopScores(id, scoreboardLimit)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Turns),
			fmt.Sprintf("x%d", s.BestChain),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.confirm = false
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirm {
			if key.Matches(msg, m.keys.Confirm) && m.store != nil {
				m.loadErr = m.store.ClearScores(m.modes[m.mode].ID)
				if m.loadErr == nil {
					m.reload()
				}
			}
			m.confirm = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Mode):
			switch msg.String() {
			case "shift+tab", "left", "h":
				m.switchMode(-1)
			default:
				m.switchMode(1)
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.confirm = m.store != nil && len(m.scores) > 0
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted run, if any.
func (m ScoreboardModel) Selected() (storage.ScoreEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.scores) {
		return storage.ScoreEntry{}, false
	}
	return m.scores[i], true
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")

	body := boxStyle.Render(m.renderTable())
	if m.wide() {
		details := boxStyle.Width(detailsWidth).Render(m.renderDetails())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", details)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, dimStyle.Render(m.statsLine()))
	}
	b.WriteString(body)
	b.WriteString("\n")

	switch {
	case m.confirm:
		warn := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
		b.WriteString(warn.Render(fmt.Sprintf("Clear all %s scores? y to confirm", m.modes[m.mode].Title)))
	case m.loadErr != nil:
		b.WriteString(dimStyle.Render("error: " + m.loadErr.Error()))
	default:
		b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = active.Render(g.Title)
		} else {
			tabs[i] = inactive.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) renderTable() string {
	if m.store == nil {
		return m.emptyMessage("Scores database unavailable.")
	}
	if len(m.scores) == 0 {
		return m.emptyMessage("No scores recorded yet.\nClear some tiles to set one!")
	}
	return m.table.View()
}

func (m ScoreboardModel) emptyMessage(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4).
		Render(text)
}

// renderDetails shows aggregate stats and the selected run.
func (m ScoreboardModel) renderDetails() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	var b strings.Builder

	b.WriteString("Totals\n")
	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(label.Render("no games played"))
	} else {
		fmt.Fprintf(&b, "%s %d\n", label.Render("games  "), m.stats.GamesCount)
		fmt.Fprintf(&b, "%s %d\n", label.Render("best   "), m.stats.HighScore)
		fmt.Fprintf(&b, "%s %.1f\n", label.Render("average"), m.stats.AvgScore)
		fmt.Fprintf(&b, "%s x%d\n", label.Render("chain  "), m.stats.BestChain)
		fmt.Fprintf(&b, "%s %s", label.Render("last   "), m.stats.LastPlayed.Format("Jan 02 15:04"))
	}

	if e, ok := m.Selected(); ok {
		b.WriteString("\n\nSelected\n")
		fmt.Fprintf(&b, "%s %d\n", label.Render("seed   "), e.Seed)
		b.WriteString(label.Render(fmt.Sprintf("replay: --seed %d", e.Seed)))
	}
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no games played"
	}
	line := fmt.Sprintf("games %d  best %d  avg %.1f  chain x%d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.BestChain)
	if e, ok := m.Selected(); ok {
		line += fmt.Sprintf("  seed %d", e.Seed)
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
