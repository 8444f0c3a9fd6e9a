/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared plumbing for alfbridge commands: configuration loading, logging,
engine connection, oracle assembly, metrics and output files.
*/

package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/config"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/engine/remote"
	"github.com/kleascm/alfbridge/pkg/learner"
	"github.com/kleascm/alfbridge/pkg/logging"
	"github.com/kleascm/alfbridge/pkg/oracle"
	"github.com/kleascm/alfbridge/pkg/utils"
	"github.com/kleascm/alfbridge/pkg/words"
)

var errNoEngineAddress = errors.New("engine address is not configured (--engine or ALFBRIDGE_ENGINE_ADDRESS)")

// LoadConfig resolves the run configuration from flags, environment and config file
func LoadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), viper.GetString("config"))
}

// SetupLogging creates the run logger
func SetupLogging(cfg *config.Config) (*logging.Logger, error) {
	logCfg := cfg.Logging
	return logging.NewLogger(&logCfg)
}

// ConnectEngine installs the process-wide engine context. Call engine.Teardown when done.
func ConnectEngine(cfg *config.Config, logger *logrus.Logger) *engine.Context {
	load := func() (engine.Engine, error) { return nil, errNoEngineAddress }
	if cfg.Engine.Address != "" {
		load = remote.Loader(cfg.Engine.Address, cfg.Engine.DialTimeout)
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.Engine.HandleRepair {
		opts = append(opts, engine.WithHandleRepair())
	}
	return engine.Init(load, opts...)
}

// ParseAlphabet builds the input alphabet from the configuration
func ParseAlphabet(cfg *config.Config) (*words.Alphabet[string], error) {
	if len(cfg.Learner.Alphabet) == 0 {
		return nil, fmt.Errorf("alphabet is empty (--alphabet or learner.alphabet)")
	}
	return words.NewAlphabet(cfg.Learner.Alphabet...)
}

// Oracle is the assembled membership oracle stack
type Oracle struct {
	oracle.MembershipOracle[string, bool]
	Counter *oracle.Counter[string, bool]
	closers []func() error
}

// Close releases browser sessions and cache stores
func (o *Oracle) Close() error {
	var errs []error
	for i := len(o.closers) - 1; i >= 0; i-- {
		errs = append(errs, o.closers[i]())
	}
	return errors.Join(errs...)
}

// BuildOracle assembles base oracle, parallelism, cache and counter from cfg
func BuildOracle(cfg *config.Config, alphabet *words.Alphabet[string]) (*Oracle, error) {
	o := &Oracle{}

	var base oracle.MembershipOracle[string, bool]
	var system string
	switch cfg.Oracle.Kind {
	case "dfa":
		target, err := loadTarget(cfg.Oracle.Target, alphabet)
		if err != nil {
			return nil, err
		}
		// The target's own encoding identifies it, wherever the file lives.
		data, err := automaton.Encode(target)
		if err != nil {
			return nil, err
		}
		system = "dfa|" + string(data)
		base = oracle.NewSimulator(target)
	case "web":
		web, err := oracle.NewWeb(oracle.WebConfig{
			URLTemplate: cfg.Oracle.URL,
			Selector:    cfg.Oracle.Selector,
			Separator:   cfg.Oracle.Separator,
			Timeout:     cfg.Oracle.Timeout,
		})
		if err != nil {
			return nil, err
		}
		system = "web|" + cfg.Oracle.URL + "|" + cfg.Oracle.Selector + "|" + cfg.Oracle.Separator
		base = web
	case "browser":
		browser, err := oracle.NewBrowser(oracle.BrowserConfig{
			URLTemplate: cfg.Oracle.URL,
			Expression:  cfg.Oracle.AcceptExpr,
			Separator:   cfg.Oracle.Separator,
			Timeout:     cfg.Oracle.Timeout,
		})
		if err != nil {
			return nil, err
		}
		o.closers = append(o.closers, browser.Close)
		system = "browser|" + cfg.Oracle.URL + "|" + cfg.Oracle.AcceptExpr + "|" + cfg.Oracle.Separator
		base = browser
	default:
		return nil, fmt.Errorf("unsupported oracle kind: %s", cfg.Oracle.Kind)
	}

	if cfg.Oracle.Parallelism > 1 && cfg.Oracle.Kind != "browser" {
		base = oracle.NewParallel(base, cfg.Oracle.Parallelism, 1)
	}

	// Count only the queries that reach the system, not cache hits.
	o.Counter = oracle.NewCounter(base)
	base = o.Counter

	if cfg.CacheEnabled() {
		store, err := cfg.OpenCache()
		if err != nil {
			o.Close()
			return nil, err
		}
		o.closers = append(o.closers, store.Close)
		base = oracle.NewCache(base, store, alphabet, codec.EncodeAcceptor, codec.DecodeAcceptor).
			ForSystem(system)
	}

	o.MembershipOracle = base
	return o, nil
}

func loadTarget(path string, alphabet *words.Alphabet[string]) (automaton.Acceptor[string], error) {
	if path == "" {
		return nil, fmt.Errorf("oracle.target is required for the dfa oracle")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target automaton: %w", err)
	}
	return automaton.Decode(data, alphabet)
}

// SetupReporter builds the learner reporter and, when configured, starts the metrics
// endpoint. The returned function stops the endpoint.
func SetupReporter(cfg *config.Config, logger *logrus.Logger) (learner.Reporter, func(), error) {
	logReporter := learner.NewLoggerReporter(logger)
	if cfg.Metrics.Address == "" {
		return logReporter, func() {}, nil
	}

	reg := prometheus.NewRegistry()
	promReporter, err := learner.NewPrometheusReporter(reg)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Metrics server failed")
		}
	}()
	logger.WithField("address", cfg.Metrics.Address).Info("Serving metrics")

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
	return learner.MultiReporter{logReporter, promReporter}, stop, nil
}

// Summary is the JSON report written next to a learned model
type Summary struct {
	RunID       string    `json:"run_id"`
	LearnerID   string    `json:"learner_id"`
	Algorithm   string    `json:"algorithm"`
	Mode        string    `json:"mode"`
	Alphabet    []string  `json:"alphabet"`
	States      int       `json:"states"`
	Rounds      int       `json:"rounds,omitempty"`
	Refinements int       `json:"refinements,omitempty"`
	Queries     int64     `json:"queries,omitempty"`
	Samples     int       `json:"samples,omitempty"`
	Duration    string    `json:"duration"`
	ModelFile   string    `json:"model_file"`
	CompletedAt time.Time `json:"completed_at"`
}

// WriteModel writes the model and its summary into dir
func WriteModel(dir string, model automaton.Acceptor[string], summary *Summary) error {
	data, err := automaton.Encode(model)
	if err != nil {
		return err
	}
	modelPath, err := utils.WriteArtifact(dir, "model", summary.RunID, "alfa", data)
	if err != nil {
		return err
	}
	summary.ModelFile = modelPath
	summary.States = model.Size()

	_, err = utils.WriteJSONArtifact(dir, "summary", summary.RunID, summary)
	return err
}
