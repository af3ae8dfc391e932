package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultMatch3Config() {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", cfg, DefaultMatch3Config())
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("hint_delay_seconds: 2.5\nboard:\n  width: 8\nmoves:\n  hard: 12\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3: %v", err)
	}
	if cfg.HintDelaySeconds != 2.5 {
		t.Errorf("HintDelaySeconds = %v, want 2.5", cfg.HintDelaySeconds)
	}
	if cfg.Board.Width != 8 || cfg.Board.Height != 6 {
		t.Errorf("board = %dx%d, want 8x6", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Moves.Hard != 12 || cfg.Moves.Easy != 40 {
		t.Errorf("moves = %+v", cfg.Moves)
	}
	if cfg.Animation != DefaultMatch3Config().Animation {
		t.Errorf("missing animation keys should keep defaults: %+v", cfg.Animation)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	_, err := LoadMatch3(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadMatch3(path)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg != DefaultMatch3Config() {
		t.Error("failed load should return defaults")
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := Match3Config{
		HintDelaySeconds: -1,
		Board:            BoardConfig{Width: 1, Height: 40},
		Animation: AnimationConfig{
			SwapSeconds: -0.5,
			FadeSeconds: 0.3,
			PulsePeak:   0.5,
			BumpShare:   1.5,
		},
		Moves: MovesConfig{Easy: -3, Normal: 25},
	}
	cfg.Validate()
	def := DefaultMatch3Config()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"hint delay", cfg.HintDelaySeconds, def.HintDelaySeconds},
		{"width", cfg.Board.Width, def.Board.Width},
		{"height", cfg.Board.Height, def.Board.Height},
		{"swap", cfg.Animation.SwapSeconds, def.Animation.SwapSeconds},
		{"fade kept", cfg.Animation.FadeSeconds, 0.3},
		{"pulse peak", cfg.Animation.PulsePeak, def.Animation.PulsePeak},
		{"bump share", cfg.Animation.BumpShare, def.Animation.BumpShare},
		{"easy moves", cfg.Moves.Easy, def.Moves.Easy},
		{"normal kept", cfg.Moves.Normal, 25},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestZeroHintDelayIsKept(t *testing.T) {
	cfg := DefaultMatch3Config()
	cfg.HintDelaySeconds = 0
	cfg.Validate()
	if cfg.HintDelaySeconds != 0 {
		t.Errorf("0 disables hints and should survive Validate, got %v", cfg.HintDelaySeconds)
	}
}

func TestPresets(t *testing.T) {
	cfg := DefaultMatch3Config()

	tests := []struct {
		in    string
		want  DifficultyPreset
		ok    bool
		moves int
	}{
		{"easy", DifficultyEasy, true, 40},
		{"normal", DifficultyNormal, true, 30},
		{"hard", DifficultyHard, true, 20},
		{"fixed", DifficultyFixed, true, 30},
		{"nightmare", DifficultyNormal, false, 30},
		{"", DifficultyNormal, false, 30},
	}
	for _, tc := range tests {
		p, ok := ParsePreset(tc.in)
		if p != tc.want || ok != tc.ok {
			t.Errorf("ParsePreset(%q) = %q, %v; want %q, %v", tc.in, p, ok, tc.want, tc.ok)
		}
		if got := cfg.MovesForPreset(p); got != tc.moves {
			t.Errorf("MovesForPreset(%q) = %d, want %d", p, got, tc.moves)
		}
	}
}
