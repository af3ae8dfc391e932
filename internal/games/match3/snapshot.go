package match3

// GameStateType represents the coarse game status.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "classic" or "moves"
	Seed      int64
	Score     int
	Turns     int
	MovesLeft int // -1 in classic mode
	Chain     int
	BestChain int
	Phase     string   // Machine state name
	Board     []string // Rows of cell letters, top first
	Tiles     int      // Visual tile count
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.machine.Busy():
		state = StateResolving
	}

	mode := "classic"
	if g.mode == ModeMoves {
		mode = "moves"
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      mode,
		Seed:      g.seed,
		Score:     g.machine.Score(),
		Turns:     g.machine.Turns(),
		MovesLeft: g.MovesLeft(),
		Chain:     g.machine.Chain(),
		BestChain: g.machine.BestChain(),
		Phase:     g.machine.State().String(),
		Board:     g.board.Rows(),
		Tiles:     g.vis.Len(),
		State:     state,
	}
}
