/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: passive.go
Description: Passive learning command. Feeds a labeled sample file to an engine-hosted
algorithm and writes the computed model.
*/

package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/learner"
	"github.com/kleascm/alfbridge/pkg/samples"
)

// NewPassiveCommand creates the passive command
func NewPassiveCommand() *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "passive <samples.yaml>",
		Short: "Learn a model from labeled samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPassive(args[0], outputDir)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./models", "Directory for the learned model and summary")
	return cmd
}

func runPassive(samplePath, outputDir string) error {
	fmt.Println("📚 alfbridge - Passive Learning")
	fmt.Println("===============================")
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
	if alg.Mode() != engine.ModePassive {
		return fmt.Errorf("%s is an active algorithm, use 'alfbridge learn'", alg)
	}

	set, err := samples.Load(samplePath)
	if err != nil {
		return err
	}
	fmt.Printf("📁 Samples:   %s (%d words)\n", samplePath, len(set.Samples))
	fmt.Printf("🎯 Algorithm: %s (%s)\n", alg, alg.Description())
	fmt.Printf("🔤 Alphabet:  %v\n", set.Alphabet.Symbols())
	fmt.Println()

	ConnectEngine(cfg, logger.GetLogger())
	defer engine.Teardown()

	reporter, stopMetrics, err := SetupReporter(cfg, logger.GetLogger())
	if err != nil {
		return err
	}
	defer stopMetrics()

	l, err := learner.NewPassiveAcceptor(alg, set.Alphabet,
		learner.WithLogger(logger.GetLogger()),
		learner.WithReporter(reporter),
		learner.WithEngineOptions(cfg.Learner.Options...),
	)
	if err != nil {
		return err
	}
	defer l.Dispose()

	runID := uuid.New().String()
	logger.LogRun(runID, alg.String(), set.Alphabet.Size(), map[string]interface{}{"learner_id": l.ID(), "samples": len(set.Samples)})
	start := time.Now()

	if err := l.AddSamples(set.Samples...); err != nil {
		return fmt.Errorf("failed to add samples: %w", err)
	}
	model, err := l.ComputeModel()
	if err != nil {
		return fmt.Errorf("failed to compute model: %w", err)
	}

	summary := &Summary{
		RunID:       runID,
		LearnerID:   l.ID(),
		Algorithm:   alg.String(),
		Mode:        string(alg.Mode()),
		Alphabet:    set.Alphabet.Symbols(),
		Samples:     l.SampleCount(),
		Duration:    time.Since(start).String(),
		CompletedAt: time.Now(),
	}
	if err := WriteModel(outputDir, model, summary); err != nil {
		return err
	}

	fmt.Printf("✅ Computed %d-state model from %d samples\n", summary.States, summary.Samples)
	fmt.Printf("💾 Model: %s\n", summary.ModelFile)
	return nil
}
