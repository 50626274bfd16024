package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/krylisp/krylisp/lisp"
	"github.com/krylisp/krylisp/repl"
	"gopkg.in/yaml.v3"
)

// Config is the content of the optional configuration file.
type Config struct {
	Prompt         string   `yaml:"prompt"`
	HistoryFile    string   `yaml:"history_file"`
	HistoryLimit   int      `yaml:"history_limit"`
	Debug          bool     `yaml:"debug"`
	MaxStackHeight int      `yaml:"max_stack_height"`
	Preload        []string `yaml:"preload"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         repl.DefaultPrompt,
		HistoryFile:    defaultPath("history"),
		HistoryLimit:   repl.DefaultHistoryLimit,
		MaxStackHeight: lisp.DefaultMaxHeight,
	}
}

// DefaultConfigPath returns $HOME/.config/krylisp/config.yaml.
func DefaultConfigPath() string {
	return defaultPath("config.yaml")
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "krylisp", name)
}

// LoadConfig reads the configuration file at path.  Fields missing from the
// file keep their default values.  When path is the default location a
// missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return config, nil
		}
	}
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		if errors.Is(err, io.EOF) {
			return config, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative (got %d)", c.HistoryLimit)
	}
	if c.MaxStackHeight < 1 {
		return fmt.Errorf("max_stack_height must be positive (got %d)", c.MaxStackHeight)
	}
	return nil
}
