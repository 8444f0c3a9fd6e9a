/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command. Validates configuration, engine reachability and the
query cache backend before a long learning run.
*/

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kleascm/alfbridge/pkg/config"
	"github.com/kleascm/alfbridge/pkg/engine"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration, engine and cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
}

func runCheck() error {
	fmt.Println("🔍 alfbridge - Self Check")
	fmt.Println("=========================")
	fmt.Println()

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Printf("❌ Configuration: %v\n", err)
		return err
	}
	fmt.Println("✅ Configuration is valid")

	logger, err := SetupLogging(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Debug("Running self check", map[string]interface{}{"algorithm": cfg.Learner.Algorithm, "oracle": cfg.Oracle.Kind})

	failures := 0
	ectx := ConnectEngine(cfg, logger.GetLogger())
	defer engine.Teardown()
	if err := CheckEngine(ectx); err != nil {
		fmt.Printf("❌ Engine: %v\n", err)
		logger.Error("Engine check failed", map[string]interface{}{"address": cfg.Engine.Address, "error": err})
		failures++
	} else {
		fmt.Printf("✅ Engine reachable at %s\n", cfg.Engine.Address)
		logger.Info("Engine check passed", map[string]interface{}{"address": cfg.Engine.Address})
	}

	if cfg.CacheEnabled() {
		if err := CheckCache(cfg); err != nil {
			fmt.Printf("❌ Cache: %v\n", err)
			logger.Error("Cache check failed", map[string]interface{}{"backend": cfg.Cache.Backend, "error": err})
			failures++
		} else {
			fmt.Printf("✅ Cache backend %s is usable\n", cfg.Cache.Backend)
			logger.Info("Cache check passed", map[string]interface{}{"backend": cfg.Cache.Backend})
		}
	} else {
		logger.Warning("No query cache configured", nil)
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	return nil
}

// CheckEngine instantiates and disposes a throwaway algorithm instance
func CheckEngine(ectx *engine.Context) error {
	eng, h, err := ectx.Instantiate(engine.AngluinSimpleDFA, 1, nil)
	if err != nil {
		return err
	}
	return eng.Dispose(h)
}

// CheckCache round-trips one entry through the configured cache backend
func CheckCache(cfg *config.Config) error {
	store, err := cfg.OpenCache()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	const key = "alfbridge-check"
	if err := store.Put(ctx, key, 1); err != nil {
		return err
	}
	v, ok, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok || v != 1 {
		return fmt.Errorf("cache returned %d (found=%v), expected 1", v, ok)
	}
	return nil
}
