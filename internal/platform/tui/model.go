package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// resultReporter is implemented by games that expose turn details for the
// scoreboard.
type resultReporter interface {
	Turns() int
	BestChain() int
	Seed() int64
}

// resultSink receives one result per finished game.
type resultSink interface {
	SaveResult(r storage.Result) (int64, error)
}

const screenshotDir = "~/.match3/screenshots"

// GameModel drives one game at a fixed tick rate. The play command runs it
// standalone and SSH sessions embed it.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	sink     resultSink
	config   core.RuntimeConfig
	frame    core.InputFrame
	state    core.GameState
	keys     *KeyMapper
	pinned   bool // restarts replay the same seed
	recorded bool // result of the current game already saved
	quitting bool
	leaving  bool
}

// NewGameModel wraps game. A zero cfg.Seed is replaced by a clock seed on
// every start; any other seed is kept across restarts. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	m := GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		frame:  core.NewInputFrame(),
		keys:   NewKeyMapper(),
		pinned: cfg.Seed != 0,
	}
	if store != nil {
		m.sink = store
	}
	m.reseed()
	return m
}

func (m *GameModel) reseed() {
	if !m.pinned {
		m.config.Seed = time.Now().UnixNano()
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.frame)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.tick()
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		//nolint:errcheck // Best-effort, the game keeps running
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		return m, tea.Quit
	}
	// Esc inside a live game cancels the selection; it only leaves when
	// nothing is in play.
	if m.keys.MapKeyToMenuAction(msg) == MenuActionBack && (m.state.GameOver || m.state.Paused) {
		m.leaving = true
	}
	return m, nil
}

// resize relayouts games that support it and restarts the rest.
func (m *GameModel) resize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(w, h)
		return
	}
	if !m.state.GameOver {
		m.game.Reset(m.config)
	}
}

// tick advances one frame, restarting on request after game over and
// recording the result once per game.
func (m *GameModel) tick() {
	defer m.frame.Clear()

	if m.state.GameOver && m.frame.Has(core.ActionRestart) {
		m.reseed()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.recorded = false
		return
	}

	m.state = m.game.Step(m.frame).State
	if m.state.GameOver && !m.recorded {
		m.recorded = true
		if m.sink != nil && m.state.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.sink.SaveResult(m.result())
		}
	}
}

func (m GameModel) result() storage.Result {
	r := storage.Result{GameID: m.game.ID(), Score: m.state.Score}
	if rr, ok := m.game.(resultReporter); ok {
		r.Turns = rr.Turns()
		r.BestChain = rr.BestChain()
		r.Seed = rr.Seed()
	}
	return r
}

// saveScreenshot writes the current frame as text under screenshotDir.
func (m *GameModel) saveScreenshot() error {
	dir, err := storage.ExpandPath(screenshotDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to quit the program.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user left a finished or paused game.
func (m GameModel) BackToMenu() bool { return m.leaving }

// standaloneModel quits the program when the game asks to go back.
type standaloneModel struct {
	GameModel
}

func (m standaloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.GameModel = gm
	}
	if m.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}

// Run plays a single game until the user quits or leaves it.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		standaloneModel{NewGameModel(game, store, cfg)},
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // press, drag and release swap tiles
	)
	_, err := p.Run()
	return err
}
