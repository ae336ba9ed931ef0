package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/perawallet/pera-wallet-sub032/internal/algorand"
	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/status"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
	"github.com/perawallet/pera-wallet-sub032/internal/util"
)

const (
	mnemonicEnv = "WALLET_MNEMONIC"

	toKey      = "to"
	assetIDKey = "asset-id"
	closeToKey = "close-to"
	rekeyToKey = "rekey-to"
)

var errMissingMnemonic = errors.New(mnemonicEnv + " is not set")

func sendCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "send",
		Short: "Signs a transaction with the local key in " + mnemonicEnv + " and broadcasts it",
		RunE:  sendFunc,
	}
	flags := c.Flags()
	flags.String(typeKey, "payment", "transaction type (payment, asset-transfer, opt-in, opt-out, rekey)")
	flags.String(toKey, "", "receiver address")
	flags.String(amountKey, "", "amount; Algos for payments, base units for asset transfers")
	flags.Bool(maxKey, false, "send the whole spendable balance")
	flags.Uint64(assetIDKey, 0, "asset id")
	flags.String(closeToKey, "", "address receiving the remaining units on opt-out")
	flags.String(rekeyToKey, "", "new authorized address for rekey")
	return c
}

func sendFunc(c *cobra.Command, _ []string) error {
	words := os.Getenv(mnemonicEnv)
	if words == "" {
		return errMissingMnemonic
	}
	key, err := mnemonic.ToPrivateKey(words)
	if err != nil {
		return fmt.Errorf("invalid mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(key)
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	draft, err := parseSendFlags(c, account.Address.String())
	if err != nil {
		return err
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	logger := logrus.New()
	network := algorand.NewNetwork(
		client,
		fee.NewCalculator(fee.DefaultConfig()),
		status.NewStatus(client),
		nil,
		logger,
	)

	result, err := network.SendWithKey(c.Context(), draft, key)
	if err != nil {
		var insufficient *fee.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			return fmt.Errorf("balance too low: at least %s Algo required",
				util.FromBaseUnits(insufficient.Required, util.AlgoDecimals))
		}
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "%s confirmed in round %d (fee %s Algo)\n",
		result.TxID, result.ConfirmedRound, util.FromBaseUnits(result.Fee, util.AlgoDecimals))
	return nil
}

func parseSendFlags(c *cobra.Command, from string) (types.TransactionDraft, error) {
	flags := c.Flags()

	typeStr, err := flags.GetString(typeKey)
	if err != nil {
		return types.TransactionDraft{}, err
	}
	txType, err := types.ParseTransactionType(typeStr)
	if err != nil {
		return types.TransactionDraft{}, err
	}

	draft := types.TransactionDraft{
		From: types.Account{Address: from},
		Type: txType,
	}
	if draft.Receiver, err = flags.GetString(toKey); err != nil {
		return draft, err
	}
	if draft.IsMaxTransaction, err = flags.GetBool(maxKey); err != nil {
		return draft, err
	}
	if draft.AssetID, err = flags.GetUint64(assetIDKey); err != nil {
		return draft, err
	}
	if draft.CloseTo, err = flags.GetString(closeToKey); err != nil {
		return draft, err
	}
	if draft.RekeyTo, err = flags.GetString(rekeyToKey); err != nil {
		return draft, err
	}

	// Asset amounts are already in base units.
	decimals := util.AlgoDecimals
	if txType == types.TransactionTypeAssetTransfer {
		decimals = 0
	}
	amountStr, err := flags.GetString(amountKey)
	if err != nil {
		return draft, err
	}
	if amountStr != "" {
		amount, er := util.ToBaseUnits(amountStr, decimals)
		if er != nil {
			return draft, fmt.Errorf("invalid amount: %w", er)
		}
		draft.Amount = &amount
	}
	return draft, nil
}
