package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/morse-beacon/internal/domain/playback"
	"github.com/oshokin/morse-beacon/internal/logger"
)

// Channels selects the outputs a playback drives.
type Channels struct {
	// Vibration enables the vibration motor.
	Vibration bool `yaml:"vibration"`
	// Light enables the light strobe.
	Light bool `yaml:"light"`
}

// Config holds the beacon settings.
type Config struct {
	// UnitMs is the dit length in milliseconds.
	UnitMs int `yaml:"unit_ms"`
	// Channels selects the enabled outputs.
	Channels Channels `yaml:"channels"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// MessagesFile is the path to the saved-message library.
	MessagesFile string `yaml:"messages_file"`
	// TorchColor is the lipgloss colour of the lit torch cell.
	TorchColor string `yaml:"torch_color,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "morse-beacon-settings.yaml"

	// DefaultMessagesFilename is the default filename for the message library.
	DefaultMessagesFilename = "morse-beacon-messages.yaml"

	// MinUnitMs and MaxUnitMs bound the recommended speed range.
	// Values outside are accepted but logged.
	MinUnitMs = 150
	MaxUnitMs = 300

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeUnit is returned for a negative dit length.
	errNegativeUnit = errors.New("unit_ms must not be negative")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns settings with every default applied.
func Default() *Config {
	return &Config{
		UnitMs: domain.DefaultUnitMs,
		Channels: Channels{
			Vibration: true,
		},
		LogLevel:     "info",
		MessagesFile: DefaultMessagesFilename,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	return parse(contents)
}

// parse decodes settings on top of the defaults and validates them.
func parse(contents []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.UnitMs < 0 {
		return fmt.Errorf("%w: %d", errNegativeUnit, cfg.UnitMs)
	}

	if cfg.UnitMs == 0 {
		cfg.UnitMs = domain.DefaultUnitMs
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if cfg.MessagesFile == "" {
		cfg.MessagesFile = DefaultMessagesFilename
	}

	return nil
}

// InRecommendedRange reports whether the dit length is within the slider range.
func (c *Config) InRecommendedRange() bool {
	return c.UnitMs >= MinUnitMs && c.UnitMs <= MaxUnitMs
}

// Playback resolves the settings into a playback configuration.
func (c *Config) Playback(lightAvailable bool) domain.Config {
	return domain.Config{
		UnitMs:         c.UnitMs,
		Vibration:      c.Channels.Vibration,
		Light:          c.Channels.Light,
		LightAvailable: lightAvailable,
	}
}
