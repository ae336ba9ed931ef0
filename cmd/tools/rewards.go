package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perawallet/pera-wallet-sub032/internal/algorand"
	"github.com/perawallet/pera-wallet-sub032/internal/reward"
)

func rewardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rewards <address>",
		Short: "Estimates the pending rewards of an account at the current round",
		Args:  cobra.ExactArgs(1),
		RunE:  rewardsFunc,
	}
}

func rewardsFunc(c *cobra.Command, args []string) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx := c.Context()
	account, err := client.AccountInformation(ctx, args[0])
	if err != nil {
		return err
	}
	round, err := client.LastRound(ctx)
	if err != nil {
		return err
	}

	estimate, err := reward.NewCalculator(client, account, nil, nil, nil).Calculate(ctx, round)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.OutOrStdout(), "round %d: %s Algo pending\n", estimate.Round, estimate.PendingAlgos.String())
	return nil
}

func newClient(c *cobra.Command) (*algorand.Client, error) {
	flags := c.Flags()
	address, err := flags.GetString(algodKey)
	if err != nil {
		return nil, err
	}
	token, err := flags.GetString(tokenKey)
	if err != nil {
		return nil, err
	}
	return algorand.NewClient(address, token)
}
