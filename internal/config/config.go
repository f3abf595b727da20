package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/cruciblehq/persistd/internal/paths"
	"gopkg.in/yaml.v3"
)

// Default for [Config.StartupDelay].
const DefaultStartupDelay = 500 * time.Millisecond

var ErrConfig = errors.New("invalid configuration")

// Settings read from the config file.
type Config struct {
	RuntimeDir   string        `yaml:"runtime_dir"`
	StartupDelay time.Duration `yaml:"startup_delay"`
	ReplyTimeout time.Duration `yaml:"reply_timeout"`
}

// Returns the built-in settings.
func Default() *Config {
	return &Config{StartupDelay: DefaultStartupDelay}
}

// Loads settings from path, or from the XDG config directories when path is
// empty.
//
// A missing default file yields [Default]. A missing explicit path is an
// error. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		found, err := xdg.SearchConfigFile(paths.ConfigFile())
		if err != nil {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.StartupDelay < 0 {
		return errors.New("startup_delay must not be negative")
	}
	if c.ReplyTimeout < 0 {
		return errors.New("reply_timeout must not be negative")
	}
	if c.StartupDelay == 0 {
		c.StartupDelay = DefaultStartupDelay
	}
	return nil
}
