package match3

import (
	"github.com/vovakirdan/tui-match3/internal/games/match3/anim"
	"github.com/vovakirdan/tui-match3/internal/games/match3/board"
	"github.com/vovakirdan/tui-match3/internal/games/match3/visual"
)

// State is a turn phase of the machine.
type State int

const (
	StateIdle State = iota
	StateSwapAnim
	StateCheckAfterSwap
	StateFadeMatches
	StateDropAndSpawn
	StateCascadeCheck
)

var stateNames = [...]string{"idle", "swap", "check", "fade", "drop", "cascade"}

// String returns a short lowercase name for the state.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// maxCascadeSteps caps resolution steps in one turn. Hitting it ends the
// turn with whatever matches remain on the board.
const maxCascadeSteps = 64

// maxTransitionsPerStep bounds chained transitions within one Step.
const maxTransitionsPerStep = 8

// transition runs the work of a state and returns the next state.
type transition func(m *Machine) State

// transitions is the machine's state table. Step gates every entry on the
// tracked animation group, so a handler only runs once the previous
// effects have settled.
var transitions = map[State]transition{
	StateIdle:           (*Machine).idle,
	StateSwapAnim:       (*Machine).swapSettled,
	StateCheckAfterSwap: (*Machine).checkAfterSwap,
	StateFadeMatches:    (*Machine).fadeSettled,
	StateDropAndSpawn:   (*Machine).dropSettled,
	StateCascadeCheck:   (*Machine).cascadeCheck,
}

// Machine sequences a turn: swap, check, fade, drop and spawn, bump and
// cascade. It keeps the logical board and its visual mirror in step.
type Machine struct {
	board *board.Board
	vis   *visual.Board
	eng   *anim.Engine

	state State
	group anim.GroupID // Group gating the current state

	swapA, swapB board.Coord
	mask         []bool        // Cells being cleared
	landed       []board.Coord // Cells that received a tile in the last drop
	bumpPending  bool

	score     int
	chain     int
	bestChain int
	turns     int
	lastGain  int
}

// NewMachine creates an idle machine over a board and its mirror.
// The visual board must already be built from b.
func NewMachine(b *board.Board, vb *visual.Board, eng *anim.Engine) *Machine {
	return &Machine{board: b, vis: vb, eng: eng}
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Score returns the accumulated score.
func (m *Machine) Score() int { return m.score }

// Chain returns the number of resolution steps in the current or last turn.
func (m *Machine) Chain() int { return m.chain }

// BestChain returns the longest chain so far.
func (m *Machine) BestChain() int { return m.bestChain }

// Turns returns the number of productive swaps.
func (m *Machine) Turns() int { return m.turns }

// LastGain returns the score gained by the last resolution step.
func (m *Machine) LastGain() int { return m.lastGain }

// Group returns the animation group gating the current state.
func (m *Machine) Group() anim.GroupID { return m.group }

// Busy reports whether a turn is in progress or effects are still playing.
func (m *Machine) Busy() bool {
	return m.state != StateIdle || m.eng.IsGroupActive(m.group)
}

// RequestSwap starts a turn by swapping a and b. It is rejected without
// touching the board unless the machine is idle and settled and the cells
// are in bounds and adjacent.
func (m *Machine) RequestSwap(a, b board.Coord) bool {
	if m.Busy() {
		return false
	}
	if !m.board.InBounds(a) || !m.board.InBounds(b) || !board.AreAdjacent(a, b) {
		return false
	}

	m.board.Swap(a, b)
	m.swapA, m.swapB = a, b
	m.chain = 0
	m.group = m.vis.AnimateSwap(a, b, m.eng, anim.NoGroup)
	m.state = StateSwapAnim
	return true
}

// Step runs at most a few transitions, stopping as soon as a state starts
// effects or stays put. Call it once per frame after advancing animations.
func (m *Machine) Step() {
	for range maxTransitionsPerStep {
		if m.eng.IsGroupActive(m.group) {
			return
		}
		next := transitions[m.state](m)
		if next == m.state {
			return
		}
		m.state = next
	}
}

func (m *Machine) idle() State {
	return StateIdle
}

func (m *Machine) swapSettled() State {
	return StateCheckAfterSwap
}

func (m *Machine) checkAfterSwap() State {
	found, ok := m.board.FindMatches()
	if !ok {
		m.board.Swap(m.swapA, m.swapB)
		m.group = m.vis.AnimateSwap(m.swapA, m.swapB, m.eng, anim.NoGroup)
		return StateIdle
	}

	m.turns++
	m.startClear(found)
	return StateFadeMatches
}

func (m *Machine) fadeSettled() State {
	m.vis.RemoveByMask(m.mask)
	moves, spawns, _ := m.board.CollapseAndRefillPlanned(m.mask)
	m.mask = nil

	m.group = m.vis.AnimateMoves(moves, m.eng, anim.NoGroup)
	m.vis.AnimateSpawns(spawns, m.eng, m.group)

	m.landed = m.landed[:0]
	for _, mv := range moves {
		m.landed = append(m.landed, mv.To)
	}
	for _, s := range spawns {
		m.landed = append(m.landed, s.To)
	}
	m.bumpPending = true
	return StateDropAndSpawn
}

func (m *Machine) dropSettled() State {
	if m.bumpPending {
		m.bumpPending = false
		m.group = m.vis.AnimateBumpCells(m.landed, m.eng, anim.NoGroup)
		return StateDropAndSpawn
	}
	return StateCascadeCheck
}

func (m *Machine) cascadeCheck() State {
	found, ok := m.board.FindMatches()
	if !ok || m.chain >= maxCascadeSteps {
		m.endTurn()
		return StateIdle
	}
	m.startClear(found)
	return StateFadeMatches
}

// startClear scores one resolution step and starts the pulse and fade of
// the matched cells as one group.
func (m *Machine) startClear(found board.Match) {
	m.chain++
	m.lastGain = found.Score()
	m.score += m.lastGain
	m.mask = found.Mask

	m.group = m.vis.AnimatePulseMask(found.Mask, m.eng, anim.NoGroup)
	m.vis.AnimateFadeMask(found.Mask, m.eng, m.group)
}

func (m *Machine) endTurn() {
	if m.chain > m.bestChain {
		m.bestChain = m.chain
	}
}
