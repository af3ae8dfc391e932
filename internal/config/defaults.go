package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		HintDelaySeconds: 5.0,
		Board: BoardConfig{
			Width:  6,
			Height: 6,
			Seed:   0,
		},
		Animation: AnimationConfig{
			SwapSeconds:  0.15,
			FadeSeconds:  0.20,
			PulseSeconds: 0.20,
			PulsePeak:    1.18,
			FallSeconds:  0.25,
			BumpSeconds:  0.10,
			BumpPeak:     1.10,
			BumpShare:    0.35,
		},
		Moves: MovesConfig{
			Easy:   40,
			Normal: 30,
			Hard:   20,
			Fixed:  30,
		},
	}
}
