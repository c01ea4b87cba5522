package config

import (
	"errors"
	"os"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"holdem-server/internal/util"
	"holdem-server/pkg/playable/poker/texasholdem"
	"holdem-server/pkg/room"
)

// Config provides configuration for the holdem server
type Config struct {
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Table     texasholdem.Options `yaml:"table"`
	Clock     room.Clock          `yaml:"clock"`
	WebSocket struct {
		// AllowedOrigins is checked against the Origin header of an upgrade. Empty allows any origin.
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"webSocket"`
}

var (
	config     Config
	loaded     bool
	loadConfig sync.Mutex
)

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Table = texasholdem.DefaultOptions()
	cfg.Clock = room.DefaultClock()

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	loadConfig.Lock()
	defer loadConfig.Unlock()

	if !loaded {
		cfg, err := Load()
		if err != nil {
			panic(err)
		}

		config = cfg
		loaded = true
	}

	return config
}

// Load will load the configuration
// The YAML file is optional. Environment variables with the HOLDEM prefix are applied on top.
func Load() (Config, error) {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return Config{}, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Table.Validate(); err != nil {
		return Config{}, err
	}

	if err := cfg.Clock.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
