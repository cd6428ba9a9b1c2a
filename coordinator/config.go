package coordinator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/docpipe/go-doccache/cache"
	"github.com/docpipe/go-doccache/typetree"
)

// CacheConfig sizes one of the coordinator's caches.
type CacheConfig struct {
	MaxSize int  `yaml:"max_size"`
	Enabled bool `yaml:"enabled"`
}

// Config is the coordinator's full configuration surface.
type Config struct {
	// Enabled turns all caching on or off. Decomposition and resolution
	// still work when disabled; they just recompute every time.
	Enabled bool `yaml:"enabled"`
	// EnableStats controls hit/miss counter tracking on both caches.
	EnableStats bool `yaml:"enable_stats"`
	// MaxDepth bounds type decomposition.
	MaxDepth       int         `yaml:"max_depth"`
	TypeCache      CacheConfig `yaml:"type_cache"`
	ReferenceCache CacheConfig `yaml:"reference_cache"`
}

// Named presets trading cache size against statistics overhead.
const (
	PresetDefault  = "default"
	PresetLarge    = "large"
	PresetCompact  = "compact"
	PresetDisabled = "disabled"
)

// DefaultConfig returns the configuration used when no preset or file
// is given.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		EnableStats:    true,
		MaxDepth:       typetree.DefaultMaxDepth,
		TypeCache:      CacheConfig{MaxSize: cache.DefaultMaxSize, Enabled: true},
		ReferenceCache: CacheConfig{MaxSize: cache.DefaultMaxSize, Enabled: true},
	}
}

// PresetConfig returns the configuration for a named preset. Unknown
// names fail with an error wrapping cache.ErrInvalidConfig.
func PresetConfig(name string) (Config, error) {
	switch name {
	case PresetDefault:
		return DefaultConfig(), nil
	case PresetLarge:
		cfg := DefaultConfig()
		cfg.TypeCache.MaxSize = 4096
		cfg.ReferenceCache.MaxSize = 8192
		return cfg, nil
	case PresetCompact:
		// Small caches, no counters: the cheapest warm path.
		cfg := DefaultConfig()
		cfg.EnableStats = false
		cfg.TypeCache.MaxSize = 64
		cfg.ReferenceCache.MaxSize = 64
		return cfg, nil
	case PresetDisabled:
		cfg := DefaultConfig()
		cfg.Enabled = false
		cfg.EnableStats = false
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("%w: unknown preset %q", cache.ErrInvalidConfig, name)
	}
}

// LoadConfig reads a Config from a YAML file and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("coordinator: reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", cache.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration the same way the underlying caches
// would: sizes and depth must be positive, with no silent clamping.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max_depth must be a positive integer, got %d", cache.ErrInvalidConfig, c.MaxDepth)
	}
	if c.Enabled && c.TypeCache.Enabled && c.TypeCache.MaxSize <= 0 {
		return fmt.Errorf("%w: type_cache.max_size must be a positive integer, got %d", cache.ErrInvalidConfig, c.TypeCache.MaxSize)
	}
	if c.Enabled && c.ReferenceCache.Enabled && c.ReferenceCache.MaxSize <= 0 {
		return fmt.Errorf("%w: reference_cache.max_size must be a positive integer, got %d", cache.ErrInvalidConfig, c.ReferenceCache.MaxSize)
	}
	return nil
}
