package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const match3File = "match3.yaml"

// LoadMatch3 reads the match-3 config. An explicit path must load; its read
// or parse error is returned alongside the defaults. Without one, the first
// readable file among searchPaths wins and the embedded YAML is the
// fallback. Files may be partial; missing keys keep their defaults.
func LoadMatch3(path string) (Match3Config, error) {
	if path != "" {
		cfg, err := loadFile(path)
		if err != nil {
			return DefaultMatch3Config(), err
		}
		return cfg, nil
	}

	for _, p := range searchPaths() {
		if cfg, err := loadFile(p); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil
	}
	return cfg, nil
}

// searchPaths lists ~/.match3/configs then ./configs.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".match3", "configs", match3File))
	}
	return append(paths, filepath.Join("configs", match3File))
}

func loadFile(path string) (Match3Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match3Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parseMatch3(data)
	if err != nil {
		return Match3Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// parseMatch3 overlays data on the defaults and validates the result.
func parseMatch3(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Validate()
	return cfg, nil
}
