/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for alfbridge. Drives active and passive automata
learning against a remote inference engine, with configuration from flags, environment
and config files.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/alfbridge/cmd/alfbridge/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "alfbridge",
		Short: "alfbridge - automata learning through a remote inference engine",
		Long: `alfbridge connects learning algorithms hosted by an inference engine to the
system you want to model. Active algorithms ask membership queries that alfbridge answers
through an oracle (a web application, a headless browser, or a known automaton); passive
algorithms learn from a file of labeled samples.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path (yaml, json or toml)")
	flags.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json, custom, learner)")
	flags.String("log-dir", "", "Log output directory (empty disables log files)")
	flags.String("engine", "", "Inference engine address (host:port)")
	flags.Bool("handle-repair", false, "Reload the engine once if the connection is lost during instantiation")
	flags.String("algorithm", "", "Learning algorithm (see 'alfbridge algorithms')")
	flags.StringSlice("alphabet", nil, "Input alphabet symbols")
	flags.String("cache", "", "Query cache backend (none, memory, sqlite, badger)")
	flags.String("cache-path", "", "Query cache file or directory")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")

	bind := map[string]string{
		"config":               "config",
		"logging.level":        "log-level",
		"logging.format":       "log-format",
		"logging.output_dir":   "log-dir",
		"engine.address":       "engine",
		"engine.handle_repair": "handle-repair",
		"learner.algorithm":    "algorithm",
		"learner.alphabet":     "alphabet",
		"cache.backend":        "cache",
		"cache.path":           "cache-path",
		"metrics.address":      "metrics-addr",
	}
	for key, flag := range bind {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		commands.NewLearnCommand(),
		commands.NewPassiveCommand(),
		commands.NewAlgorithmsCommand(),
		commands.NewCheckCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
