package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options selects where settings come from.
type Options struct {
	Path    string           // explicit YAML file; must exist when set
	Preset  DifficultyPreset // applied after the file
	EnvFile string           // .env file; "" tries ./.env
}

// Resolve loads the YAML file, applies the preset and the GRIDMAZE_* environment
// overrides, and validates the result.
func Resolve(opts Options) (MazeConfig, error) {
	cfg, err := Load(opts.Path)
	if err != nil {
		return cfg, err
	}

	ApplyPreset(&cfg, opts.Preset)

	lookup, err := EnvLookup(opts.EnvFile)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads the maze configuration.
// Search order: customPath -> ~/.gridmaze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (MazeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultMazeConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultMazeConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultMazeYAML); err == nil {
		return cfg, nil
	}
	return DefaultMazeConfig(), nil
}

func parse(data []byte) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath("maze.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "maze.yaml"))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// HomeDir returns ~/.gridmaze, or "" when the home directory is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridmaze")
}

// Marshal encodes cfg as YAML.
func Marshal(cfg MazeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
