package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/keyderive/pkg/keyderive"
)

// maxInput bounds how much of stdin is read; a key is 64 hex characters.
const maxInput = 4096

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyderive",
		Short: "Derive the public key, WIF and address of a secp256k1 private key",
		Long: `Reads a 64 character hex private key from stdin and prints:

  Compressed PubKey: <66 uppercase hex>
  WIF: <base58check>
  Address: <base58check>

On failure nothing is written to stdout and the exit status is 1.

Examples:
  echo 0000000000000000000000000000000000000000000000000000000000000001 | keyderive
  keyderive vectors --count 5
  keyderive check --candidate python --config keyderive.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDerive,
	}

	cmd.AddCommand(newVectorsCmd(), newDecodeCmd(), newCheckCmd())
	return cmd
}

func runDerive(cmd *cobra.Command, _ []string) error {
	input, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxInput))
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	line := string(input)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	d, err := keyderive.Derive(line)
	if err != nil {
		return err
	}

	_, err = d.WriteTo(cmd.OutOrStdout())
	return err
}
