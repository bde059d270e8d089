package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/keyderive/internal/config"
	"github.com/mahdiidarabi/keyderive/internal/harness"
	"github.com/mahdiidarabi/keyderive/internal/logging"
	"github.com/mahdiidarabi/keyderive/internal/vectors"
)

// flagKeys maps check flags onto configuration keys; a flag set on the
// command line wins over the file and the environment.
var flagKeys = map[string]string{
	"candidate":      "harness.candidate",
	"seed":           "harness.seed",
	"count":          "harness.count",
	"timeout":        "harness.timeout",
	"workers":        "harness.workers",
	"vectors":        "harness.vectors",
	"vectors-format": "harness.format",
	"log-level":      "log.level",
}

func newCheckCmd() *cobra.Command {
	var (
		configFile string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a candidate implementation against the reference",
		Long: `Feeds private keys to a candidate program on stdin, validates the shape of
its three output lines and compares them with the in-process derivation.
Exits with status 1 unless every case passes.

Candidates other than the built-in "reference" are declared in the config
file under harness.candidates.

Examples:
  keyderive check
  keyderive check --config keyderive.yaml --candidate go --count 20
  keyderive check --candidate python --vectors vectors.json --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := config.New(configFile)
			for name, key := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, err := runCheck(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if err := report.Render(cmd.OutOrStdout(), output); err != nil {
				return err
			}
			if !report.AllPassed() {
				return fmt.Errorf("%d of %d cases passed", report.Passed, report.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (default: ./keyderive.yaml if present)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Report format: text, json, yaml")
	cmd.Flags().String("candidate", "reference", "Name of the candidate to run")
	cmd.Flags().String("seed", vectors.DefaultSeed, "Seed for generated vectors")
	cmd.Flags().Int("count", 3, "Number of generated vectors")
	cmd.Flags().Duration("timeout", harness.DefaultRunConfig().Timeout, "Per-case timeout")
	cmd.Flags().Int("workers", 0, "Parallel workers (0 = number of CPUs)")
	cmd.Flags().String("vectors", "", "Read vectors from a JSON or CSV file instead of generating them")
	cmd.Flags().String("vectors-format", "json", "Vector file format: json, csv")
	cmd.Flags().String("log-level", "warn", "Log level: debug, info, warn, error")
	return cmd
}

func runCheck(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*harness.Report, error) {
	registry := harness.NewRegistry()
	for _, c := range cfg.Harness.Candidates {
		err := registry.Register(&harness.ProcessCandidate{
			CandidateName: c.Name,
			Command:       c.Command,
			Args:          c.Args,
			Dir:           c.Dir,
			Env:           c.Env,
			BuildCommand:  c.Build,
			BuildTimeout:  c.BuildTimeout,
		})
		if err != nil {
			return nil, err
		}
	}

	candidate, err := registry.Get(cfg.Harness.Candidate)
	if err != nil {
		return nil, err
	}

	vs, err := loadVectors(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded vectors",
		zap.Int("count", len(vs)),
		zap.String("source", vectorSource(cfg)))

	runner := harness.NewRunner(harness.RunConfig{
		Timeout:    cfg.Harness.Timeout,
		NumWorkers: cfg.Harness.Workers,
	}, logger)
	return runner.Run(ctx, candidate, vs), nil
}

func loadVectors(cfg *config.Config) ([]vectors.Vector, error) {
	if cfg.Harness.Vectors == "" {
		return vectors.GenerateN(cfg.Harness.Seed, cfg.Harness.Count), nil
	}

	parser, err := vectors.NewParser(cfg.Harness.Format, vectors.Fields{})
	if err != nil {
		return nil, err
	}
	vs, err := parser.ParseVectors(cfg.Harness.Vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}
	return vs, nil
}

func vectorSource(cfg *config.Config) string {
	if cfg.Harness.Vectors != "" {
		return cfg.Harness.Vectors
	}
	return "seed:" + cfg.Harness.Seed
}
