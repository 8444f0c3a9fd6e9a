/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learn.go
Description: Active learning command. Runs an engine-hosted algorithm against the
configured membership oracle and checks hypotheses with random words until none is
refuted, then writes the final model.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/learner"
	"github.com/kleascm/alfbridge/pkg/logging"
	"github.com/kleascm/alfbridge/pkg/oracle"
	"github.com/kleascm/alfbridge/pkg/words"
)

// NewLearnCommand creates the learn command
func NewLearnCommand() *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn a model with an active algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearn(cmd.Context(), outputDir)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./models", "Directory for the learned model and summary")
	return cmd
}

// loggedEquivalence records every equivalence check in the run log
type loggedEquivalence struct {
	inner  *oracle.RandomWords[string]
	logger *logging.Logger
	runID  string
}

func (e *loggedEquivalence) FindCounterexample(ctx context.Context, hyp automaton.Acceptor[string]) (*words.Query[string, bool], error) {
	ce, err := e.inner.FindCounterexample(ctx, hyp)
	if err != nil {
		return nil, err
	}
	word := ""
	if ce != nil {
		word = ce.Input.String()
	}
	e.logger.LogEquivalence(e.runID, hyp.Size(), word, nil)
	return ce, nil
}

func runLearn(parent context.Context, outputDir string) error {
	fmt.Println("🧠 alfbridge - Active Learning")
	fmt.Println("==============================")
	fmt.Println()

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := SetupLogging(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	alg, err := engine.ParseAlgorithm(cfg.Learner.Algorithm)
	if err != nil {
		return err
	}
	if alg.Mode() != engine.ModeActive {
		return fmt.Errorf("%s is a passive algorithm, use 'alfbridge passive'", alg)
	}
	alphabet, err := ParseAlphabet(cfg)
	if err != nil {
		return err
	}

	ConnectEngine(cfg, logger.GetLogger())
	defer engine.Teardown()

	mq, err := BuildOracle(cfg, alphabet)
	if err != nil {
		return fmt.Errorf("failed to build oracle: %w", err)
	}
	defer mq.Close()

	reporter, stopMetrics, err := SetupReporter(cfg, logger.GetLogger())
	if err != nil {
		return err
	}
	defer stopMetrics()

	l, err := learner.NewActiveAcceptor(alg, alphabet, oracle.MembershipOracle[string, bool](mq),
		learner.WithLogger(logger.GetLogger()),
		learner.WithReporter(reporter),
		learner.WithEngineOptions(cfg.Learner.Options...),
	)
	if err != nil {
		return err
	}
	defer l.Dispose()

	runID := uuid.New().String()
	eq, err := oracle.NewRandomWords[string](mq, cfg.Equivalence.Seed,
		cfg.Equivalence.MinLength, cfg.Equivalence.MaxLength, cfg.Equivalence.MaxTests)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt)
	defer cancel()
	if cfg.Learner.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, cfg.Learner.Timeout)
		defer cancelTimeout()
	}

	fmt.Printf("🎯 Algorithm: %s (%s)\n", alg, alg.Description())
	fmt.Printf("🔤 Alphabet:  %v\n", alphabet.Symbols())
	fmt.Printf("🔮 Oracle:    %s\n", cfg.Oracle.Kind)
	fmt.Println()

	logger.LogRun(runID, alg.String(), alphabet.Size(), map[string]interface{}{"learner_id": l.ID()})
	start := time.Now()

	result, err := learner.Run[automaton.Acceptor[string], string, bool](ctx, l,
		&loggedEquivalence{inner: eq, logger: logger, runID: runID})
	if err != nil {
		return fmt.Errorf("learning failed: %w", err)
	}
	logger.LogStats(mq.Counter.Queries(), mq.Counter.Batches(), result.Rounds, map[string]interface{}{"run_id": runID})

	summary := &Summary{
		RunID:       runID,
		LearnerID:   l.ID(),
		Algorithm:   alg.String(),
		Mode:        string(alg.Mode()),
		Alphabet:    alphabet.Symbols(),
		Rounds:      result.Rounds,
		Refinements: result.Refinements,
		Queries:     mq.Counter.Queries(),
		Duration:    time.Since(start).String(),
		CompletedAt: time.Now(),
	}
	if err := WriteModel(outputDir, result.Model, summary); err != nil {
		return err
	}

	fmt.Printf("✅ Learned %d-state model in %s\n", summary.States, summary.Duration)
	fmt.Printf("   Query rounds: %d, refinements: %d, system queries: %d\n", summary.Rounds, summary.Refinements, summary.Queries)
	fmt.Printf("💾 Model:   %s\n", summary.ModelFile)
	return nil
}
