package pyramis

import (
	"go.uber.org/zap"

	"github.com/aglyzov/go-pyramis/keypath"
)

// Config holds construction-time settings of a Store.
type Config struct {
	// Separator delimits key segments. It must be a single character.
	// Default: "."
	Separator string

	// IgnoreSameValue skips writes that would store the very same value
	// again. Skipped writes report false and notify nobody.
	// Default: false
	IgnoreSameValue bool

	// Logger receives debug records about tree restructuring.
	// Default: no-op
	Logger *zap.Logger
}

// DefaultConfig returns the settings used by New without options.
func DefaultConfig() Config {
	return Config{
		Separator: keypath.DefaultSeparator,
		Logger:    zap.NewNop(),
	}
}

// validate ensures config values are usable.
func (c *Config) validate() {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if !keypath.ValidSeparator(c.Separator) {
		c.Logger.Warn("invalid separator, falling back to the default",
			zap.String("separator", c.Separator),
			zap.String("default", keypath.DefaultSeparator),
		)
		c.Separator = keypath.DefaultSeparator
	}
}

// Option configures a Store created by New.
type Option func(*settings)

type settings struct {
	config Config
	items  []KV
}

// WithConfig replaces all settings at once.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithSeparator sets the segment separator.
func WithSeparator(sep string) Option {
	return func(s *settings) {
		s.config.Separator = sep
	}
}

// WithIgnoreSameValue turns the same-value skip policy on or off.
func WithIgnoreSameValue(ignore bool) Option {
	return func(s *settings) {
		s.config.IgnoreSameValue = ignore
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		s.config.Logger = log
	}
}

// WithItems pre-populates the store. Items are set in order after all other
// options are applied.
func WithItems(items ...KV) Option {
	return func(s *settings) {
		s.items = append(s.items, items...)
	}
}
