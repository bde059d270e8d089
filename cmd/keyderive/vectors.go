package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mahdiidarabi/keyderive/internal/vectors"
)

type vectorEntry struct {
	Name       string `json:"name" yaml:"name"`
	PrivateKey string `json:"private_key" yaml:"private_key"`
}

func newVectorsCmd() *cobra.Command {
	var (
		seed   string
		count  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Print deterministic test private keys",
		Long: `Generates private keys from a seed. The same seed and count always
produce the same keys, so a run can be reproduced exactly.

Examples:
  keyderive vectors
  keyderive vectors --seed classroom --count 10 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}

			vs := vectors.GenerateN(seed, count)
			entries := make([]vectorEntry, len(vs))
			for i := range vs {
				entries[i] = vectorEntry{Name: vs[i].Name, PrivateKey: vs[i].PrivateKey.String()}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text", "":
				for _, e := range entries {
					fmt.Fprintln(out, e.PrivateKey)
				}
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml":
				enc := yaml.NewEncoder(out)
				if err := enc.Encode(entries); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&seed, "seed", vectors.DefaultSeed, "Seed for key generation")
	cmd.Flags().IntVar(&count, "count", 3, "Number of keys to generate")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	return cmd
}
