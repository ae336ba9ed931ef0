package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/spf13/cobra"

	"github.com/perawallet/pera-wallet-sub032/internal/signer"
)

func signDataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-data <base64 payload>",
		Short: "Signs an arbitrary payload with the local key in " + mnemonicEnv,
		Args:  cobra.ExactArgs(1),
		RunE:  signDataFunc,
	}
}

func signDataFunc(c *cobra.Command, args []string) error {
	data, err := base64.StdEncoding.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("payload is not base64: %w", err)
	}

	words := os.Getenv(mnemonicEnv)
	if words == "" {
		return errMissingMnemonic
	}
	key, err := mnemonic.ToPrivateKey(words)
	if err != nil {
		return fmt.Errorf("invalid mnemonic: %w", err)
	}

	sig, err := signer.NewArbitraryDataSigner().Sign(data, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), base64.StdEncoding.EncodeToString(sig))
	return nil
}
