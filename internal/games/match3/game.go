// Package match3 implements the match-3 game: the turn state machine, input
// selection, idle hints and rendering on top of the board, anim and visual
// packages.
package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/anim"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/games/match3/visual"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Game IDs
const (
	IDClassic = "match3"
	IDMoves   = "match3_moves"
)

// hudRows is the number of rows reserved above the board.
const hudRows = 2

// maxGenerateAttempts bounds board regeneration while looking for a start
// position with at least one possible move.
const maxGenerateAttempts = 16

// Mode represents the game mode.
type Mode int

const (
	ModeClassic Mode = iota // Endless; ends when no move is left
	ModeMoves               // Limited number of productive swaps
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values select normal.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

// Game implements registry.Game for both match-3 modes.
type Game struct {
	mode      Mode
	cfg       config.Match3Config
	fixedCfg  bool // cfg was injected, skip loading on Reset
	preset    config.DifficultyPreset
	presetSet bool // preset was chosen per game, ignore the CLI default

	runtime core.RuntimeConfig
	tick    uint64
	seed    int64

	board    *board.Board
	vis      *visual.Board
	eng      *anim.Engine
	machine  *Machine
	selector *Selector
	layout   visual.Layout

	movesLimit  int
	idleSeconds float64
	hint        Swap
	hintShown   bool
	needsCheck  bool // Re-check for game over once the machine settles
	needsSnap   bool // Re-snap tiles once animations finish after a resize

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewMoves creates a moves mode game.
func NewMoves() *Game {
	return &Game{mode: ModeMoves}
}

// NewWithPreset creates a game that loads config files on Reset but uses
// the given difficulty instead of the process-wide preset.
func NewWithPreset(mode Mode, preset config.DifficultyPreset) *Game {
	return &Game{mode: mode, preset: preset, presetSet: true}
}

// ModeForID maps a registry ID to its mode.
func ModeForID(id string) (Mode, bool) {
	switch id {
	case IDClassic:
		return ModeClassic, true
	case IDMoves:
		return ModeMoves, true
	default:
		return ModeClassic, false
	}
}

// NewWithConfig creates a game that uses cfg instead of loading config
// files on Reset.
func NewWithConfig(mode Mode, cfg config.Match3Config, preset config.DifficultyPreset) *Game {
	cfg.Validate()
	return &Game{mode: mode, cfg: cfg, fixedCfg: true, preset: preset}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDMoves, func() registry.Game {
		return NewMoves()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMoves {
		return IDMoves
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMoves {
		return "Match-3 (Moves)"
	}
	return "Match-3"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixedCfg {
		cfg, err := config.LoadMatch3(configPath)
		if err != nil {
			cfg = config.DefaultMatch3Config()
		}
		g.cfg = cfg
		if !g.presetSet {
			g.preset = difficultyPreset
		}
	}

	g.runtime = runtime
	g.tick = 0
	g.movesLimit = g.cfg.MovesForPreset(g.preset)
	g.idleSeconds = 0
	g.hintShown = false
	g.needsCheck = true
	g.needsSnap = false
	g.gameOver = false
	g.paused = false

	g.seed = runtime.Seed
	if g.cfg.Board.Seed != 0 {
		g.seed = g.cfg.Board.Seed
	}
	g.board = NewPlayableBoard(g.cfg.Board.Width, g.cfg.Board.Height, g.seed)

	g.layout = visual.ComputeLayout(runtime.ScreenW, runtime.ScreenH, g.board.Width(), g.board.Height(), hudRows)
	g.tooSmall = g.layout.Empty()

	g.vis = visual.New(timingsFrom(g.cfg.Animation))
	g.vis.BuildFromBoard(g.board, g.layout)
	g.eng = anim.NewEngine()
	g.machine = NewMachine(g.board, g.vis, g.eng)
	g.selector = NewSelector(g.board.Width(), g.board.Height())
}

// NewPlayableBoard generates from seed, seed+1, ... until the board has a
// possible move, giving up after maxGenerateAttempts.
func NewPlayableBoard(w, h int, seed int64) *board.Board {
	b := board.New(w, h)
	for attempt := range maxGenerateAttempts {
		b.GenerateInitial(seed + int64(attempt))
		if b.HasPossibleMove() {
			break
		}
	}
	return b
}

func timingsFrom(a config.AnimationConfig) visual.Timings {
	return visual.Timings{
		Swap:      a.SwapSeconds,
		Fade:      a.FadeSeconds,
		Pulse:     a.PulseSeconds,
		PulsePeak: a.PulsePeak,
		Fall:      a.FallSeconds,
		Bump:      a.BumpSeconds,
		BumpPeak:  a.BumpPeak,
		BumpShare: a.BumpShare,
	}
}

// Step advances the game by one tick: input, animations, state machine,
// hint timer and game over check, in that order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	dt := g.runtime.FrameSeconds()
	g.eng.Update(dt)
	g.machine.Step()

	if g.needsSnap && !g.eng.HasActive() {
		g.vis.SnapToLayout(g.layout)
		g.needsSnap = false
	}

	g.updateHint(dt)
	g.checkGameOver()

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	if !in.Empty() {
		g.idleSeconds = 0
		g.hintShown = false
	}

	if in.Has(core.ActionHint) {
		g.showHint()
	}

	sw, ok := g.selector.Handle(in, g.layout)
	if !ok || g.machine.Busy() {
		return
	}
	if g.mode == ModeMoves && g.MovesLeft() <= 0 {
		return
	}
	if g.machine.RequestSwap(sw.A, sw.B) {
		g.needsCheck = true
	}
}

func (g *Game) updateHint(dt float64) {
	if g.machine.Busy() {
		g.idleSeconds = 0
		g.hintShown = false
		return
	}
	g.idleSeconds += dt
	delay := g.cfg.HintDelaySeconds
	if delay > 0 && !g.hintShown && g.idleSeconds >= delay {
		g.showHint()
	}
}

func (g *Game) showHint() {
	if g.machine.Busy() {
		return
	}
	a, b, ok := g.board.FindAnySwap()
	if !ok {
		return
	}
	g.hint = Swap{A: a, B: b}
	g.hintShown = true
}

func (g *Game) checkGameOver() {
	if !g.needsCheck || g.machine.Busy() {
		return
	}
	g.needsCheck = false

	if g.mode == ModeMoves && g.MovesLeft() <= 0 {
		g.gameOver = true
		return
	}
	if !g.board.HasPossibleMove() {
		g.gameOver = true
	}
}

// Resize relayouts the board for a new viewport without resetting.
// Tiles snap now and again once any running effect has finished.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.layout = visual.ComputeLayout(w, h, g.board.Width(), g.board.Height(), hudRows)
	g.tooSmall = g.layout.Empty()
	if g.tooSmall {
		return
	}
	g.vis.SnapToLayout(g.layout)
	g.needsSnap = g.eng.HasActive()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Score returns the current score.
func (g *Game) Score() int {
	if g.machine == nil {
		return 0
	}
	return g.machine.Score()
}

// MovesLeft returns the remaining swaps in moves mode, -1 in classic mode.
func (g *Game) MovesLeft() int {
	if g.mode != ModeMoves {
		return -1
	}
	left := g.movesLimit - g.machine.Turns()
	if left < 0 {
		return 0
	}
	return left
}

// Turns returns the number of productive swaps so far.
func (g *Game) Turns() int {
	if g.machine == nil {
		return 0
	}
	return g.machine.Turns()
}

// BestChain returns the longest cascade of the game so far.
func (g *Game) BestChain() int {
	if g.machine == nil {
		return 0
	}
	return g.machine.BestChain()
}

// Seed returns the seed the current board was generated from.
func (g *Game) Seed() int64 {
	return g.seed
}

// Preset returns the active difficulty preset.
func (g *Game) Preset() config.DifficultyPreset {
	return g.preset
}

// Hint returns the pair currently highlighted by the idle hint.
func (g *Game) Hint() (Swap, bool) {
	return g.hint, g.hintShown
}

// Machine exposes the turn state machine.
func (g *Game) Machine() *Machine {
	return g.machine
}

// Board exposes the logical board.
func (g *Game) Board() *board.Board {
	return g.board
}

// Visual exposes the visual board.
func (g *Game) Visual() *visual.Board {
	return g.vis
}

// Layout returns the current board layout.
func (g *Game) Layout() visual.Layout {
	return g.layout
}
