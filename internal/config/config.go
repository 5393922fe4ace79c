package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/intake/internal/logging"
	"github.com/abhisek/intake/internal/selfupdate"
)

// Environment variables
const (
	EnvConfigFile   = "INTAKE_CONFIG"
	EnvDB           = "INTAKE_DB"
	EnvCatalog      = "INTAKE_CATALOG"
	EnvAdvanceDelay = "INTAKE_ADVANCE_DELAY"
	EnvLogLevel     = "INTAKE_LOG_LEVEL"
	EnvLogFile      = "INTAKE_LOG_FILE"
	EnvNoRecord     = "INTAKE_NO_RECORD"
)

const (
	// DefaultAdvanceDelay is how long a chosen option stays highlighted
	// before the next question is shown.
	DefaultAdvanceDelay = 300 * time.Millisecond

	maxAdvanceDelay = 5 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	// Catalog is a YAML catalog path; empty means the embedded catalog.
	Catalog string `yaml:"catalog"`

	// DB is the event log path; empty means the default data path.
	DB string `yaml:"db"`

	// NoRecord disables the event log entirely.
	NoRecord bool `yaml:"no_record"`

	AdvanceDelay time.Duration `yaml:"advance_delay"`

	// SkipIntro starts directly on the first question.
	SkipIntro bool `yaml:"skip_intro"`

	Logging logging.Config `yaml:"logging"`

	// Update names the repository `intake update` installs releases from.
	Update selfupdate.Source `yaml:"update"`
}

// Default returns the configuration used when no file or env overrides are
// present. dataDir is where the log file lives.
func Default(dataDir string) Config {
	return Config{
		AdvanceDelay: DefaultAdvanceDelay,
		Logging:      logging.DefaultConfig(dataDir),
		Update:       selfupdate.DefaultSource(),
	}
}

// Load starts from Default, overlays the YAML file at path (if path is not
// empty) and then environment overrides.
func Load(path, dataDir string) (Config, error) {
	cfg := Default(dataDir)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeStrict(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeStrict rejects keys the Config does not know about.
func decodeStrict(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.DB = v
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv(EnvAdvanceDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAdvanceDelay, err)
		}
		c.AdvanceDelay = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	switch os.Getenv(EnvNoRecord) {
	case "1", "true", "yes":
		c.NoRecord = true
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.AdvanceDelay < 0 {
		return fmt.Errorf("advance_delay must not be negative, got %s", c.AdvanceDelay)
	}
	if c.AdvanceDelay > maxAdvanceDelay {
		return fmt.Errorf("advance_delay must be at most %s, got %s", maxAdvanceDelay, c.AdvanceDelay)
	}
	return c.Update.Validate()
}
