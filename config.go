package masonry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/strategy"
)

// LayoutOptions holds the recognized layout flags.
//
// The flags select the placement strategy once, at configuration time:
// SortByHeight selects shortest-height, HorizontalOrder selects fewest-items,
// neither selects sequential. SortByHeight is checked first and wins when both
// are set.
type LayoutOptions struct {
	// SortByHeight selects the shortest-height strategy.
	SortByHeight bool `yaml:"sortByHeight" toml:"sortByHeight"`

	// HorizontalOrder selects the fewest-items strategy.
	HorizontalOrder bool `yaml:"horizontalOrder" toml:"horizontalOrder"`

	// Debug enables per-signal diagnostic logging from the controller.
	Debug bool `yaml:"debug" toml:"debug"`
}

// Strategy returns the strategy kind selected by the flags.
func (o LayoutOptions) Strategy() Strategy {
	return strategy.FromOptions(o.SortByHeight, o.HorizontalOrder)
}

// PublishConfig configures the NATS JetStream KV bucket layouts are published to.
type PublishConfig struct {
	// Bucket is the KV bucket name.
	Bucket string `yaml:"bucket" toml:"bucket"`

	// KeyPrefix is prepended to the layout name to form the KV key ("prefix.name").
	KeyPrefix string `yaml:"keyPrefix" toml:"keyPrefix"`

	// TTL is how long published layouts remain in KV (0 = no expiration).
	// Layouts should persist across restarts for version continuity.
	TTL time.Duration `yaml:"ttl" toml:"ttl"`
}

// Config is the configuration for the Controller.
//
// All duration fields accept standard Go duration strings like "100ms", "5s".
type Config struct {
	// Name identifies the layout (e.g. "gallery"). Used as the KV key suffix
	// when layouts are published.
	Name string `yaml:"name" toml:"name"`

	// Breakpoints maps container widths to column counts.
	//
	// A malformed table in a configuration file is replaced by the fallback
	// table {default: 2}; breakpoint.Table.Malformed reports the cause.
	Breakpoints breakpoint.Table `yaml:"breakpoints" toml:"breakpoints"`

	// Options are the layout flags.
	Options LayoutOptions `yaml:"options" toml:"options"`

	// ThrottleWindow is the width-signal throttle window. The first signal after a
	// quiet period is handled immediately; signals inside the window coalesce into
	// one trailing evaluation with the latest width.
	//
	// Default: 100ms. A negative value disables throttling.
	ThrottleWindow time.Duration `yaml:"throttleWindow" toml:"throttleWindow"`

	// OperationTimeout bounds item source reads and publish calls.
	// Default: 5 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout" toml:"operationTimeout"`

	// Publish configures the KV layout publisher used by the CLI serve command.
	Publish PublishConfig `yaml:"publish" toml:"publish"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Name:             "default",
		Breakpoints:      breakpoint.Fallback(),
		ThrottleWindow:   100 * time.Millisecond,
		OperationTimeout: 5 * time.Second,
		Publish: PublishConfig{
			Bucket:    "masonry-layouts",
			KeyPrefix: "layout",
			TTL:       0, // No TTL - layouts persist for version continuity
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// A zero breakpoint table (no thresholds, default 0) counts as missing. A table
// that declares thresholds but a zero default is left alone so that Validate
// rejects it.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.Breakpoints.IsZero() {
		cfg.Breakpoints = defaults.Breakpoints
	}
	if cfg.ThrottleWindow == 0 {
		cfg.ThrottleWindow = defaults.ThrottleWindow
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
	if cfg.Publish.Bucket == "" {
		cfg.Publish.Bucket = defaults.Publish.Bucket
	}
	if cfg.Publish.KeyPrefix == "" {
		cfg.Publish.KeyPrefix = defaults.Publish.KeyPrefix
	}
	// Note: TTL of 0 is valid (no expiration), so we don't apply default
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - Breakpoints.Default >= 1, thresholds >= 0, mapped counts >= 1
//   - Name and Publish.KeyPrefix are valid KV key tokens
//   - OperationTimeout >= 0, Publish.TTL >= 0
//
// A malformed breakpoint table is not an error: it has already been replaced by
// the valid fallback table. ValidateWithWarnings reports it.
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if err := cfg.Breakpoints.Validate(); err != nil {
		return fmt.Errorf("%w: breakpoints: %w", ErrInvalidConfig, err)
	}

	if !validKeyToken(cfg.Name) {
		return fmt.Errorf("%w: name %q must be non-empty and contain only letters, digits, '-', '_' or '='", ErrInvalidConfig, cfg.Name)
	}

	if cfg.Publish.KeyPrefix != "" && !validKeyToken(cfg.Publish.KeyPrefix) {
		return fmt.Errorf("%w: publish.keyPrefix %q must contain only letters, digits, '-', '_' or '='", ErrInvalidConfig, cfg.Publish.KeyPrefix)
	}

	if cfg.OperationTimeout < 0 {
		return fmt.Errorf("%w: operationTimeout must be >= 0, got %v", ErrInvalidConfig, cfg.OperationTimeout)
	}

	if cfg.Publish.TTL < 0 {
		return fmt.Errorf("%w: publish.ttl must be >= 0, got %v", ErrInvalidConfig, cfg.Publish.TTL)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewController() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if err := cfg.Breakpoints.Malformed(); err != nil {
		logger.Warn(
			"malformed breakpoint table, using fallback",
			"error", err,
			"fallback", cfg.Breakpoints.String(),
		)
	}

	if cfg.Options.SortByHeight && cfg.Options.HorizontalOrder {
		logger.Warn(
			"both sortByHeight and horizontalOrder are set, sortByHeight takes precedence",
			"strategy", cfg.Options.Strategy(),
		)
	}

	if cfg.ThrottleWindow > time.Second {
		logger.Warn(
			"ThrottleWindow is long, layout will lag behind resizes",
			"throttleWindow", cfg.ThrottleWindow,
			"recommended", "100ms-250ms",
		)
	}

	if cfg.ThrottleWindow < 0 {
		logger.Info("width signal throttling disabled", "throttleWindow", cfg.ThrottleWindow)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// The throttle window is shortened so throttling tests finish quickly.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := masonry.TestConfig()
//	cfg.Breakpoints = breakpoint.New(3, map[float64]int{600: 1, 900: 2})
//	ctrl, err := masonry.NewController(&cfg, src)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.ThrottleWindow = 20 * time.Millisecond // 5x faster
	cfg.OperationTimeout = time.Second

	return cfg
}

// LoadConfig reads a configuration file.
//
// The format is chosen by extension: .yaml, .yml and .json are decoded with
// gopkg.in/yaml.v3 (JSON is valid YAML), .toml with github.com/BurntSushi/toml.
// Missing fields keep their DefaultConfig values and the result is validated.
//
// Parameters:
//   - path: Configuration file path
//
// Returns:
//   - Config: Loaded configuration
//   - error: Read, decode or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig decodes configuration text. ext selects the format like the file
// extension in LoadConfig (".toml" or anything else for YAML/JSON).
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validKeyToken reports whether s is usable as one token of a NATS KV key.
func validKeyToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '=':
		default:
			return false
		}
	}

	return true
}
