package models

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config locates the two filesystem roots: the markdown goals directory
// and the sidecar data root. It is a value passed explicitly to every
// persistence operation; there is no process-wide state.
type Config struct {
	GoalsDir string `yaml:"goals_dir"`
	DataRoot string `yaml:"data_root"`
}

// NewConfig builds the default configuration: {home}/Triday as the data
// root with goals underneath. TRIDAY_DIR overrides the root. A missing
// home directory falls back to the working directory rather than
// failing.
func NewConfig() Config {
	root := os.Getenv("TRIDAY_DIR")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			home = "."
		}
		root = filepath.Join(home, "Triday")
	}
	return Config{
		GoalsDir: filepath.Join(root, "goals"),
		DataRoot: root,
	}
}

// LoadConfig returns the default configuration, overlaid with
// {data_root}/config.yaml when that file exists. Relative paths in the
// file are resolved against the data root.
func LoadConfig() (Config, error) {
	cfg := NewConfig()

	path := filepath.Join(cfg.DataRoot, "config.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if file.DataRoot != "" {
		cfg.DataRoot = resolve(cfg.DataRoot, file.DataRoot)
	}
	if file.GoalsDir != "" {
		cfg.GoalsDir = resolve(cfg.DataRoot, file.GoalsDir)
	}
	return cfg, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
