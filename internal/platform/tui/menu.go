package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuPanelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
)

var modeBlurbs = map[string]string{
	match3.IDClassic: "Endless. Ends when no swap can match.",
	match3.IDMoves:   "Best score within a fixed number of swaps.",
}

// MenuModel picks a mode and a difficulty preset.
type MenuModel struct {
	modes    []registry.GameInfo
	cursor   int
	preset   int // index into config.Presets
	chosen   int // -1 until Enter
	width    int
	height   int
	config   core.RuntimeConfig
	keys     *KeyMapper
	greeting string

	quitting   bool
	scoreboard bool
}

// NewMenuModel lists the registered modes with preset preselected.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	m := MenuModel{
		modes:  registry.List(),
		chosen: -1,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   NewKeyMapper(),
	}
	for i, p := range config.Presets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// WithGreeting returns the menu with a line shown under the title.
func (m MenuModel) WithGreeting(text string) MenuModel {
	m.greeting = text
	return m
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(config.Presets)
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.modes)-1, 0))
	case MenuActionLeft:
		m.preset = (m.preset + n - 1) % n
	case MenuActionRight:
		m.preset = (m.preset + 1) % n
	case MenuActionSelect:
		if len(m.modes) > 0 {
			m.chosen = m.cursor
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	for i, g := range m.modes {
		if i > 0 {
			list.WriteString("\n")
		}
		if i == m.cursor {
			list.WriteString(menuActiveStyle.Render("> " + g.Title))
			if blurb := modeBlurbs[g.ID]; blurb != "" {
				list.WriteString("\n  " + menuDimStyle.Render(blurb))
			}
			continue
		}
		list.WriteString("  " + g.Title)
	}

	difficulty := fmt.Sprintf("Difficulty: < %s >", m.Preset())
	panel := menuPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		list.String(),
		"",
		difficulty,
		menuDimStyle.Render(m.presetNote()),
	))

	parts := []string{"", menuTitleStyle.Render("M A T C H - 3")}
	if m.greeting != "" {
		parts = append(parts, menuDimStyle.Render(m.greeting))
	}
	parts = append(parts, "", panel, "",
		menuDimStyle.Render("↑/↓ mode  ←/→ difficulty  enter play  tab scores  q quit"))

	return lipgloss.PlaceHorizontal(max(m.width, 1), lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// presetNote says what the preset changes for the highlighted mode.
func (m MenuModel) presetNote() string {
	if len(m.modes) == 0 || m.modes[m.cursor].ID != match3.IDMoves {
		return "difficulty sets the swap limit in moves mode"
	}
	moves := config.DefaultMatch3Config().MovesForPreset(m.Preset())
	return fmt.Sprintf("%d swaps with the default config", moves)
}

// Preset returns the chosen difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// IsQuitting reports whether the user left the menu without choosing.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult is what the menu decided.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// NewGame creates the chosen mode with the chosen preset.
func (r MenuResult) NewGame() (registry.Game, error) {
	mode, ok := match3.ModeForID(r.GameID)
	if !ok {
		return registry.Create(r.GameID)
	}
	return match3.NewWithPreset(mode, r.Preset), nil
}

// RunMenu shows the menu on the alt screen until a choice is made.
func RunMenu(cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, preset), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}

func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.config, Preset: m.Preset()}
	switch {
	case m.scoreboard:
		res.WantsScoreboard = true
	case m.chosen < 0:
		res.Quit = true
	default:
		res.GameID = m.modes[m.chosen].ID
	}
	return res
}
