package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/perawallet/pera-wallet-sub032/internal/graceful"
)

const (
	algodKey = "algod"
	tokenKey = "token"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go graceful.CancelOnSignal(ctx, graceful.MakeSigintChan(), cancel, logrus.StandardLogger())

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:           "tools",
		Short:         "Wallet fee, rewards and signing utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := c.PersistentFlags()
	flags.String(algodKey, "https://testnet-api.algonode.cloud", "algod API address")
	flags.String(tokenKey, "", "algod API token")

	c.AddCommand(
		feeCommand(),
		rewardsCommand(),
		sendCommand(),
		signDataCommand(),
	)
	return c
}
