// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-3 game.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	HintDelaySeconds float64         `yaml:"hint_delay_seconds"` // 0 disables idle hints
	Board            BoardConfig     `yaml:"board"`
	Animation        AnimationConfig `yaml:"animation"`
	Moves            MovesConfig     `yaml:"moves"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"` // 0 means the platform picks one
}

// AnimationConfig defines effect durations in seconds and scale peaks.
type AnimationConfig struct {
	SwapSeconds  float64 `yaml:"swap_seconds"`
	FadeSeconds  float64 `yaml:"fade_seconds"`
	PulseSeconds float64 `yaml:"pulse_seconds"`
	PulsePeak    float64 `yaml:"pulse_peak"`
	FallSeconds  float64 `yaml:"fall_seconds"`
	BumpSeconds  float64 `yaml:"bump_seconds"`
	BumpPeak     float64 `yaml:"bump_peak"`
	BumpShare    float64 `yaml:"bump_share"` // Fraction of the bump spent overshooting
}

// MovesConfig defines the swap budget per preset in moves mode.
type MovesConfig struct {
	Easy   int `yaml:"easy"`
	Normal int `yaml:"normal"`
	Hard   int `yaml:"hard"`
	Fixed  int `yaml:"fixed"`
}

// Board size limits accepted by Validate.
const (
	MinBoardSize = 3
	MaxBoardSize = 12
)

// Validate replaces out-of-range values with defaults.
func (c *Match3Config) Validate() {
	def := DefaultMatch3Config()

	if c.HintDelaySeconds < 0 {
		c.HintDelaySeconds = def.HintDelaySeconds
	}
	if c.Board.Width < MinBoardSize || c.Board.Width > MaxBoardSize {
		c.Board.Width = def.Board.Width
	}
	if c.Board.Height < MinBoardSize || c.Board.Height > MaxBoardSize {
		c.Board.Height = def.Board.Height
	}

	a := &c.Animation
	fixDuration(&a.SwapSeconds, def.Animation.SwapSeconds)
	fixDuration(&a.FadeSeconds, def.Animation.FadeSeconds)
	fixDuration(&a.PulseSeconds, def.Animation.PulseSeconds)
	fixDuration(&a.FallSeconds, def.Animation.FallSeconds)
	fixDuration(&a.BumpSeconds, def.Animation.BumpSeconds)
	if a.PulsePeak < 1 {
		a.PulsePeak = def.Animation.PulsePeak
	}
	if a.BumpPeak < 1 {
		a.BumpPeak = def.Animation.BumpPeak
	}
	if a.BumpShare <= 0 || a.BumpShare >= 1 {
		a.BumpShare = def.Animation.BumpShare
	}

	m := &c.Moves
	fixMoves(&m.Easy, def.Moves.Easy)
	fixMoves(&m.Normal, def.Moves.Normal)
	fixMoves(&m.Hard, def.Moves.Hard)
	fixMoves(&m.Fixed, def.Moves.Fixed)
}

func fixDuration(v *float64, def float64) {
	if *v < 0 || *v > 5 {
		*v = def
	}
}

func fixMoves(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
