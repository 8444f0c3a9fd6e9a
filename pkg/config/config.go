/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Run configuration for alfbridge. Values come from flags, ALFBRIDGE_*
environment variables and an optional config file, all resolved through viper.
*/

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kleascm/alfbridge/pkg/cache"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/logging"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "ALFBRIDGE"

// EngineConfig locates the inference engine
type EngineConfig struct {
	Address      string        `mapstructure:"address"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	HandleRepair bool          `mapstructure:"handle_repair"`
}

// LearnerConfig selects the algorithm and alphabet
type LearnerConfig struct {
	Algorithm string        `mapstructure:"algorithm"`
	Alphabet  []string      `mapstructure:"alphabet"`
	Options   []int         `mapstructure:"options"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// OracleConfig describes the system under learning
type OracleConfig struct {
	Kind        string        `mapstructure:"kind"`
	URL         string        `mapstructure:"url"`
	Selector    string        `mapstructure:"selector"`
	AcceptExpr  string        `mapstructure:"accept_expr"`
	Separator   string        `mapstructure:"separator"`
	Target      string        `mapstructure:"target"`
	Parallelism int           `mapstructure:"parallelism"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig selects the membership query cache backend
type CacheConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// EquivalenceConfig tunes random-word equivalence checking
type EquivalenceConfig struct {
	MaxTests  int   `mapstructure:"max_tests"`
	MinLength int   `mapstructure:"min_length"`
	MaxLength int   `mapstructure:"max_length"`
	Seed      int64 `mapstructure:"seed"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// Config is the complete run configuration
type Config struct {
	Engine      EngineConfig         `mapstructure:"engine"`
	Learner     LearnerConfig        `mapstructure:"learner"`
	Oracle      OracleConfig         `mapstructure:"oracle"`
	Cache       CacheConfig          `mapstructure:"cache"`
	Equivalence EquivalenceConfig    `mapstructure:"equivalence"`
	Logging     logging.LoggerConfig `mapstructure:"logging"`
	Metrics     MetricsConfig        `mapstructure:"metrics"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DialTimeout: 5 * time.Second,
		},
		Learner: LearnerConfig{
			Algorithm: engine.AngluinSimpleDFA.String(),
		},
		Oracle: OracleConfig{
			Kind:        "dfa",
			Parallelism: 1,
			Timeout:     10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "none",
		},
		Equivalence: EquivalenceConfig{
			MaxTests:  1000,
			MinLength: 0,
			MaxLength: 12,
			Seed:      1,
		},
		Logging: *logging.DefaultLoggerConfig(),
	}
}

// SetDefaults registers Default() values with v so env vars and files can override them
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("engine.address", d.Engine.Address)
	v.SetDefault("engine.dial_timeout", d.Engine.DialTimeout)
	v.SetDefault("engine.handle_repair", d.Engine.HandleRepair)
	v.SetDefault("learner.algorithm", d.Learner.Algorithm)
	v.SetDefault("learner.alphabet", d.Learner.Alphabet)
	v.SetDefault("learner.options", d.Learner.Options)
	v.SetDefault("learner.timeout", d.Learner.Timeout)
	v.SetDefault("oracle.kind", d.Oracle.Kind)
	v.SetDefault("oracle.url", d.Oracle.URL)
	v.SetDefault("oracle.selector", d.Oracle.Selector)
	v.SetDefault("oracle.accept_expr", d.Oracle.AcceptExpr)
	v.SetDefault("oracle.separator", d.Oracle.Separator)
	v.SetDefault("oracle.target", d.Oracle.Target)
	v.SetDefault("oracle.parallelism", d.Oracle.Parallelism)
	v.SetDefault("oracle.timeout", d.Oracle.Timeout)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("equivalence.max_tests", d.Equivalence.MaxTests)
	v.SetDefault("equivalence.min_length", d.Equivalence.MinLength)
	v.SetDefault("equivalence.max_length", d.Equivalence.MaxLength)
	v.SetDefault("equivalence.seed", d.Equivalence.Seed)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.max_files", d.Logging.MaxFiles)
	v.SetDefault("logging.timestamp", d.Logging.Timestamp)
	v.SetDefault("logging.colors", d.Logging.Colors)
	v.SetDefault("logging.caller", d.Logging.Caller)
	v.SetDefault("logging.output_dir", d.Logging.OutputDir)
	v.SetDefault("metrics.address", d.Metrics.Address)
}

// Load resolves a Config from v. If configFile is set it is read first.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if _, err := engine.ParseAlgorithm(c.Learner.Algorithm); err != nil {
		return err
	}
	if c.Learner.Timeout < 0 {
		return fmt.Errorf("learner.timeout must not be negative")
	}
	switch c.Oracle.Kind {
	case "dfa", "web", "browser":
	default:
		return fmt.Errorf("unsupported oracle kind: %s", c.Oracle.Kind)
	}
	if c.Oracle.Parallelism < 1 {
		return fmt.Errorf("oracle.parallelism must be at least 1")
	}
	if c.Oracle.Kind == "browser" && c.Oracle.Parallelism > 1 {
		return fmt.Errorf("the browser oracle drives a single tab; oracle.parallelism must be 1")
	}
	switch c.Cache.Backend {
	case "", "none", "memory":
	case "sqlite", "badger":
		if c.Cache.Path == "" {
			return fmt.Errorf("cache.path is required for the %s backend", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("unsupported cache backend: %s", c.Cache.Backend)
	}
	if c.Equivalence.MaxTests <= 0 {
		return fmt.Errorf("equivalence.max_tests must be positive")
	}
	if c.Equivalence.MinLength < 0 || c.Equivalence.MaxLength < c.Equivalence.MinLength {
		return fmt.Errorf("invalid equivalence length range [%d, %d]", c.Equivalence.MinLength, c.Equivalence.MaxLength)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// CacheEnabled reports whether a query cache should be opened
func (c *Config) CacheEnabled() bool {
	return c.Cache.Backend != "" && c.Cache.Backend != "none"
}

// OpenCache opens the configured cache backend
func (c *Config) OpenCache() (cache.Store, error) {
	return cache.NewStore(c.Cache.Backend, c.Cache.Path)
}
