package api

import (
	"errors"
	"net/http"
	"strconv"

	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/labstack/echo/v4"

	"github.com/perawallet/pera-wallet-sub032/internal/algorand"
	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/reward"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type feeCheckRequest struct {
	Type         string  `json:"type"`
	Address      string  `json:"address"`
	Amount       *uint64 `json:"amount,omitempty"`
	IsMax        bool    `json:"isMax"`
	SignedLength int     `json:"signedLength"`
	Receiver     string  `json:"receiver,omitempty"`
	AssetID      uint64  `json:"assetId,omitempty"`
	CloseTo      string  `json:"closeTo,omitempty"`
	RekeyTo      string  `json:"rekeyTo,omitempty"`
}

type feeCheckResponse struct {
	Fee            uint64 `json:"fee"`
	MinimumBalance uint64 `json:"minimumBalance"`
}

type insufficientResponse struct {
	Error    string `json:"error"`
	Required uint64 `json:"required"`
	Fee      uint64 `json:"fee"`
	Balance  uint64 `json:"balance"`
}

type minimumBalanceResponse struct {
	Address        string `json:"address"`
	Type           string `json:"type"`
	Fee            uint64 `json:"fee"`
	MinimumBalance uint64 `json:"minimumBalance"`
}

type rewardsResponse struct {
	Address           string `json:"address"`
	Round             uint64 `json:"round"`
	PendingMicroAlgos string `json:"pendingMicroAlgos"`
	PendingAlgos      string `json:"pendingAlgos"`
	// What the node itself reports as pending at the account's round.
	NodePendingMicroAlgos uint64 `json:"nodePendingMicroAlgos"`
}

func (s *Server) checkFee(c echo.Context) error {
	var req feeCheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	txType, err := types.ParseTransactionType(req.Type)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validateAddress(req.Address); err != nil {
		return err
	}
	if req.SignedLength < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "signedLength must not be negative")
	}

	ctx := c.Request().Context()
	draft := types.TransactionDraft{
		From:             types.Account{Address: req.Address},
		Type:             txType,
		Amount:           req.Amount,
		IsMaxTransaction: req.IsMax,
		Receiver:         req.Receiver,
		AssetID:          req.AssetID,
		CloseTo:          req.CloseTo,
		RekeyTo:          req.RekeyTo,
	}

	// Without a signed length the node-backed estimator builds and sizes the
	// transaction itself.
	if req.SignedLength == 0 && s.estimator != nil {
		txFee, minBalance, er := s.estimator.CheckFee(ctx, draft)
		if er != nil {
			return s.feeError(c, er)
		}
		return c.JSON(http.StatusOK, feeCheckResponse{Fee: txFee, MinimumBalance: minBalance})
	}

	account, err := s.node.AccountInformation(ctx, req.Address)
	if err != nil {
		return s.nodeError(err)
	}
	params, err := s.node.TransactionParams(ctx)
	if err != nil {
		return s.nodeError(err)
	}
	draft.From = account

	txFee, err := s.calculator.Calculate(fee.Input{
		Type:         txType,
		Draft:        &draft,
		SignedLength: req.SignedLength,
		Params:       &params,
	})
	if err != nil {
		return s.feeError(c, err)
	}

	minBalance, err := s.calculator.MinimumBalance(account, txType, txFee)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, feeCheckResponse{Fee: txFee, MinimumBalance: minBalance})
}

func (s *Server) minimumBalance(c echo.Context) error {
	address := c.Param("address")
	if err := validateAddress(address); err != nil {
		return err
	}

	txType := types.TransactionTypePayment
	if q := c.QueryParam("type"); q != "" {
		t, err := types.ParseTransactionType(q)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		txType = t
	}

	ctx := c.Request().Context()
	account, err := s.node.AccountInformation(ctx, address)
	if err != nil {
		return s.nodeError(err)
	}

	var txFee uint64
	if q := c.QueryParam("fee"); q != "" {
		txFee, err = strconv.ParseUint(q, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid fee")
		}
	} else {
		params, er := s.node.TransactionParams(ctx)
		if er != nil {
			return s.nodeError(er)
		}
		// A zero length yields the fee floor.
		txFee, err = s.calculator.Fee(0, params)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
	}

	minBalance, err := s.calculator.MinimumBalance(account, txType, txFee)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, minimumBalanceResponse{
		Address:        address,
		Type:           txType.String(),
		Fee:            txFee,
		MinimumBalance: minBalance,
	})
}

func (s *Server) rewardsEstimate(c echo.Context) error {
	address := c.Param("address")
	if err := validateAddress(address); err != nil {
		return err
	}

	ctx := c.Request().Context()
	account, err := s.node.AccountInformation(ctx, address)
	if err != nil {
		return s.nodeError(err)
	}

	round := account.Round
	if round == 0 {
		round, err = s.node.LastRound(ctx)
		if err != nil {
			return s.nodeError(err)
		}
	}

	estimate, err := reward.NewCalculator(s.rewards, account, nil, nil, s.logger).Calculate(ctx, round)
	if err != nil {
		if errors.Is(err, reward.ErrZeroSupply) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return s.nodeError(err)
	}

	return c.JSON(http.StatusOK, rewardsResponse{
		Address:           estimate.Address,
		Round:             estimate.Round,
		PendingMicroAlgos: estimate.PendingMicroAlgos.String(),
		PendingAlgos:      estimate.PendingAlgos.String(),

		NodePendingMicroAlgos: account.PendingRewards,
	})
}

func (s *Server) feeError(c echo.Context, err error) error {
	var insufficient *fee.InsufficientBalanceError
	switch {
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusUnprocessableEntity, insufficientResponse{
			Error:    "insufficient balance",
			Required: insufficient.Required,
			Fee:      insufficient.Fee,
			Balance:  insufficient.Balance,
		})
	case errors.Is(err, fee.ErrCannotCompute), algorand.IsDraftError(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return s.nodeError(err)
	}
}

func (s *Server) nodeError(err error) error {
	s.logger.WithError(err).Warn("node request failed")
	return echo.NewHTTPError(http.StatusBadGateway, "node request failed")
}

func validateAddress(address string) error {
	if address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "address is required")
	}
	if _, err := sdktypes.DecodeAddress(address); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid address")
	}
	return nil
}
