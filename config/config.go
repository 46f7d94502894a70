// Package config loads the emulator's persistent configuration file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration for headless/CLI runs. The GUI-only
// sections the teacher project carries (window size, GL driver, input
// device capture) are out of scope here. Neither the core nor the CLI
// loads this file: Load and Save only read and write it.
type Config struct {
	General GeneralConfig `toml:"general"`
	Input   InputConfig   `toml:"input"`
}

type GeneralConfig struct {
	// DefaultLogModules is a comma-separated module list in the same form
	// as --log. The CLI does not read it, so it has no effect on logging.
	DefaultLogModules string `toml:"default_log_modules"`
}

type InputConfig struct {
	// Pad1 maps NES buttons (A,B,Select,Start,Up,Down,Left,Right) to
	// keyboard key names. Consumed by the (out-of-scope) front-end; kept
	// here so a config file round-trips even though nothing in the core
	// reads keyboard state itself.
	Pad1 [8]string `toml:"pad1"`
}

// Load reads a TOML config file. A missing file is not an error; it
// yields the zero-value Config.
func Load(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path in TOML form.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
