package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
	"github.com/perawallet/pera-wallet-sub032/internal/util"
)

const (
	typeKey         = "type"
	balanceKey      = "balance"
	amountKey       = "amount"
	maxKey          = "max"
	assetsKey       = "assets"
	createdAppsKey  = "created-apps"
	localStatesKey  = "local-states"
	schemaIntsKey   = "schema-ints"
	schemaBytesKey  = "schema-bytes"
	extraPagesKey   = "extra-pages"
	signedLengthKey = "signed-length"
	feePerByteKey   = "fee-per-byte"
	minFeeKey       = "min-fee"

	// Upper bound for --assets; the account is built with one holding per asset.
	maxAssetCount = 100_000
)

// feeCommand runs the fee and minimum-balance check offline against a
// described account.
func feeCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "fee",
		Short: "Computes the fee and minimum balance of a transaction",
		RunE:  feeFunc,
	}
	flags := c.Flags()
	flags.String(typeKey, "payment", "transaction type (payment, asset-transfer, opt-in, opt-out, rekey)")
	flags.String(balanceKey, "0", "account balance in Algos")
	flags.String(amountKey, "", "payment amount in Algos")
	flags.Bool(maxKey, false, "send the whole balance")
	flags.Uint64(assetsKey, 0, "opted-in asset count")
	flags.Uint64(createdAppsKey, 0, "created application count")
	flags.Uint64(localStatesKey, 0, "application local state count")
	flags.Uint64(schemaIntsKey, 0, "total uint schema entries")
	flags.Uint64(schemaBytesKey, 0, "total byte-slice schema entries")
	flags.Uint64(extraPagesKey, 0, "extra program pages")
	flags.Int(signedLengthKey, 250, "signed transaction length in bytes")
	flags.Uint64(feePerByteKey, 0, "network fee per byte in microAlgos")
	flags.Uint64(minFeeKey, 1000, "network minimum fee in microAlgos")
	return c
}

func feeFunc(c *cobra.Command, _ []string) error {
	in, err := parseFeeFlags(c)
	if err != nil {
		return err
	}

	calc := fee.NewCalculator(fee.DefaultConfig())
	txFee, err := calc.Calculate(in)
	if err != nil {
		return err
	}
	minBalance, err := calc.MinimumBalance(in.Draft.From, in.Type, txFee)
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "fee:             %s Algo\n", util.FromBaseUnits(txFee, util.AlgoDecimals))
	fmt.Fprintf(out, "minimum balance: %s Algo\n", util.FromBaseUnits(minBalance, util.AlgoDecimals))
	if in.Draft.IsMaxTransaction {
		maxAmount, er := calc.MaxSendableAmount(in.Draft.From, txFee)
		if er != nil {
			return er
		}
		fmt.Fprintf(out, "max sendable:    %s Algo\n", util.FromBaseUnits(maxAmount, util.AlgoDecimals))
	}
	return nil
}

func parseFeeFlags(c *cobra.Command) (fee.Input, error) {
	flags := c.Flags()

	typeStr, err := flags.GetString(typeKey)
	if err != nil {
		return fee.Input{}, err
	}
	txType, err := types.ParseTransactionType(typeStr)
	if err != nil {
		return fee.Input{}, err
	}

	balanceStr, err := flags.GetString(balanceKey)
	if err != nil {
		return fee.Input{}, err
	}
	balance, err := util.ToBaseUnits(balanceStr, util.AlgoDecimals)
	if err != nil {
		return fee.Input{}, fmt.Errorf("invalid balance: %w", err)
	}

	amount, err := optionalAlgos(c, amountKey)
	if err != nil {
		return fee.Input{}, err
	}
	isMax, err := flags.GetBool(maxKey)
	if err != nil {
		return fee.Input{}, err
	}

	counts := make(map[string]uint64)
	for _, key := range []string{assetsKey, createdAppsKey, localStatesKey, schemaIntsKey, schemaBytesKey, extraPagesKey, feePerByteKey, minFeeKey} {
		v, er := flags.GetUint64(key)
		if er != nil {
			return fee.Input{}, er
		}
		counts[key] = v
	}

	if counts[assetsKey] > maxAssetCount {
		return fee.Input{}, fmt.Errorf("invalid %s: %d exceeds %d", assetsKey, counts[assetsKey], maxAssetCount)
	}

	signedLength, err := flags.GetInt(signedLengthKey)
	if err != nil {
		return fee.Input{}, err
	}

	account := types.Account{
		Amount:              balance,
		Assets:              make([]types.AssetHolding, counts[assetsKey]),
		CreatedAppsCount:    counts[createdAppsKey],
		AppsLocalStateCount: counts[localStatesKey],
		TotalSchema: types.Schema{
			NumUint:      counts[schemaIntsKey],
			NumByteSlice: counts[schemaBytesKey],
		},
		ExtraPages: counts[extraPagesKey],
	}

	return fee.Input{
		Type: txType,
		Draft: &types.TransactionDraft{
			From:             account,
			Type:             txType,
			Amount:           amount,
			IsMaxTransaction: isMax,
		},
		SignedLength: signedLength,
		Params: &types.TransactionParams{
			FeePerByte: counts[feePerByteKey],
			MinFee:     counts[minFeeKey],
		},
	}, nil
}

func optionalAlgos(c *cobra.Command, key string) (*uint64, error) {
	s, err := c.Flags().GetString(key)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := util.ToBaseUnits(s, util.AlgoDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &v, nil
}
