/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config_test.go
Description: Tests for configuration loading and validation.
*/

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/config"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alfbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  address: 127.0.0.1:24940
  handle_repair: true
learner:
  algorithm: kearns-vazirani-dfa
  alphabet: [a, b]
  timeout: 2m
oracle:
  kind: web
  url: http://localhost:8080/check?w={word}
  selector: "#accepted"
  parallelism: 4
cache:
  backend: sqlite
  path: answers.db
`), 0644))

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:24940", cfg.Engine.Address)
	assert.True(t, cfg.Engine.HandleRepair)
	assert.Equal(t, 5*time.Second, cfg.Engine.DialTimeout)
	assert.Equal(t, "kearns-vazirani-dfa", cfg.Learner.Algorithm)
	assert.Equal(t, []string{"a", "b"}, cfg.Learner.Alphabet)
	assert.Equal(t, 2*time.Minute, cfg.Learner.Timeout)
	assert.Equal(t, "web", cfg.Oracle.Kind)
	assert.Equal(t, 4, cfg.Oracle.Parallelism)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 1000, cfg.Equivalence.MaxTests)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ALFBRIDGE_ENGINE_ADDRESS", "engine:9000")
	t.Setenv("ALFBRIDGE_LEARNER_ALGORITHM", "rpni")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "engine:9000", cfg.Engine.Address)
	assert.Equal(t, "rpni", cfg.Learner.Algorithm)
	assert.False(t, cfg.CacheEnabled())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown algorithm", func(c *config.Config) { c.Learner.Algorithm = "magic" }},
		{"negative timeout", func(c *config.Config) { c.Learner.Timeout = -time.Second }},
		{"unknown oracle", func(c *config.Config) { c.Oracle.Kind = "telepathy" }},
		{"zero parallelism", func(c *config.Config) { c.Oracle.Parallelism = 0 }},
		{"parallel browser", func(c *config.Config) { c.Oracle.Kind = "browser"; c.Oracle.Parallelism = 4 }},
		{"sqlite without path", func(c *config.Config) { c.Cache.Backend = "sqlite" }},
		{"unknown cache", func(c *config.Config) { c.Cache.Backend = "redis" }},
		{"no tests", func(c *config.Config) { c.Equivalence.MaxTests = 0 }},
		{"inverted lengths", func(c *config.Config) { c.Equivalence.MinLength = 5; c.Equivalence.MaxLength = 2 }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "shout" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParallelismPerOracleKind(t *testing.T) {
	for _, kind := range []string{"dfa", "web"} {
		cfg := config.Default()
		cfg.Oracle.Kind = kind
		cfg.Oracle.Parallelism = 4
		assert.NoError(t, cfg.Validate(), kind)
	}

	cfg := config.Default()
	cfg.Oracle.Kind = "browser"
	assert.NoError(t, cfg.Validate())
	cfg.Oracle.Parallelism = 2
	assert.ErrorContains(t, cfg.Validate(), "single tab")
}

func TestOpenMemoryCache(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "memory"
	store, err := cfg.OpenCache()
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
