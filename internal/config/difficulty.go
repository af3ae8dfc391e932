package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a CLI or menu value to a preset.
// Unknown values map to DifficultyNormal and report false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return DifficultyNormal, false
	}
}

// MovesForPreset returns the swap budget for a preset in moves mode.
func (c Match3Config) MovesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return c.Moves.Easy
	case DifficultyHard:
		return c.Moves.Hard
	case DifficultyFixed:
		return c.Moves.Fixed
	default:
		return c.Moves.Normal
	}
}
