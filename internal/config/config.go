// Package config loads cubelet settings from ~/.cubelet/config.yml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/animation"
)

// Filename is the config file name inside the cubelet directory.
const Filename = "config.yml"

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in time.Duration notation.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the file configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	TUI     TUIConfig     `yaml:"tui"`
	Render  RenderConfig  `yaml:"render"`
}

type EngineConfig struct {
	Rate       float64 `yaml:"rate"`        // Degrees per second (default: 40)
	Epsilon    float64 `yaml:"epsilon"`     // Completion threshold in degrees (default: 0.1)
	Policy     string  `yaml:"policy"`      // reject or queue
	QueueDepth int     `yaml:"queue_depth"` // Bound for the queue policy
	History    *bool   `yaml:"history"`     // pointer to distinguish unset vs false
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // Session logs for the TUI
}

type TUIConfig struct {
	Tick Duration `yaml:"tick"` // Frame interval (default: 16ms)
}

type RenderConfig struct {
	CubeSize float32 `yaml:"cube_size"`
	Gap      float32 `yaml:"gap"`
}

// Default returns the built-in configuration.
func Default() Config {
	history := true
	return Config{
		Engine: EngineConfig{
			Rate:       animation.DefaultRate,
			Epsilon:    animation.DefaultEpsilon,
			Policy:     cubelet.PolicyReject.String(),
			QueueDepth: 16,
			History:    &history,
		},
		Log: LogConfig{Level: "info"},
		TUI: TUIConfig{Tick: Duration(16 * time.Millisecond)},
		Render: RenderConfig{
			CubeSize: 0.25,
			Gap:      0.02,
		},
	}
}

// Dir returns ~/.cubelet.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubelet"), nil
}

// DefaultPath returns ~/.cubelet/config.yml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Filename), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would otherwise be silently replaced.
func (c Config) Validate() error {
	if _, err := cubelet.ParsePolicy(c.Engine.Policy); err != nil {
		return err
	}
	if c.Engine.Rate < 0 {
		return fmt.Errorf("engine.rate must be positive, got %v", c.Engine.Rate)
	}
	if c.Engine.Epsilon < 0 {
		return fmt.Errorf("engine.epsilon must be positive, got %v", c.Engine.Epsilon)
	}
	if c.Engine.QueueDepth < 0 {
		return fmt.Errorf("engine.queue_depth must be positive, got %d", c.Engine.QueueDepth)
	}
	if c.Render.CubeSize < 0 || c.Render.Gap < 0 {
		return fmt.Errorf("render sizes must be positive")
	}
	return nil
}

// EngineOptions converts the engine section to engine options.
func (c Config) EngineOptions() ([]cubelet.Option, error) {
	policy, err := cubelet.ParsePolicy(c.Engine.Policy)
	if err != nil {
		return nil, err
	}

	opts := []cubelet.Option{
		cubelet.WithRate(c.Engine.Rate),
		cubelet.WithEpsilon(c.Engine.Epsilon),
		cubelet.WithPolicy(policy),
		cubelet.WithQueueDepth(c.Engine.QueueDepth),
	}
	if c.Engine.History != nil {
		opts = append(opts, cubelet.WithMoveHistory(*c.Engine.History))
	}
	return opts, nil
}

// DBPath returns the configured database path or the default.
func (c Config) DBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return expandHome(c.Storage.DBPath)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cubelet.db"), nil
}

// LogDir returns the configured session log directory or ~/.cubelet/logs.
func (c Config) LogDir() (string, error) {
	if c.Log.Dir != "" {
		return expandHome(c.Log.Dir)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

func expandHome(p string) (string, error) {
	if len(p) < 2 || p[:2] != "~/" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, p[2:]), nil
}
