package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/keyderive/pkg/keyderive"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <base58check>",
		Short: "Decode a WIF private key or P2PKH address",
		Long: `Verifies the checksum of a Base58Check string and prints its fields.
A WIF also prints the public key, WIF and address derived from it.

Examples:
  keyderive decode KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn
  keyderive decode 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH`,
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	s := strings.TrimSpace(args[0])
	payload, err := keyderive.Base58CheckDecode(s)
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return fmt.Errorf("empty payload")
	}

	out := cmd.OutOrStdout()
	switch payload[0] {
	case keyderive.WIFVersion:
		k, err := keyderive.DecodeWIF(s)
		if err != nil {
			return err
		}
		defer k.Zero()
		d, err := keyderive.DeriveKey(k)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Type: WIF (compressed, mainnet)")
		fmt.Fprintf(out, "Private Key: %s\n", k.String())
		_, err = d.WriteTo(out)
		return err

	case keyderive.P2PKHVersion:
		h, err := keyderive.DecodeAddress(s)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Type: P2PKH address (mainnet)")
		fmt.Fprintf(out, "Hash160: %s\n", strings.ToUpper(hex.EncodeToString(h[:])))
		return nil

	default:
		fmt.Fprintf(out, "Version: 0x%02X\n", payload[0])
		fmt.Fprintf(out, "Payload: %s\n", strings.ToUpper(hex.EncodeToString(payload[1:])))
		return nil
	}
}
