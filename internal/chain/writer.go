package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"liquidityDesk/internal/dex"
	"liquidityDesk/internal/model"
)

const receiptPollInterval = 2 * time.Second

// Writer submits execution plans to the core contract as a single
// multicall transaction. Signing stays external: the caller supplies a
// bind.SignerFn, so no key material lives here.
type Writer struct {
	client *Client
	core   common.Address
	from   common.Address
	signer bind.SignerFn
	logger *zap.Logger
}

// NewWriter builds a Writer around an existing client.
func NewWriter(client *Client, core common.Address, from common.Address, signer bind.SignerFn, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{client: client, core: core, from: from, signer: signer, logger: logger}
}

// Execute packs the ordered operations into one multicall, signs, and
// submits it. Operations execute atomically in plan order.
func (w *Writer) Execute(ctx context.Context, ops []model.Operation) (common.Hash, error) {
	if len(ops) == 0 {
		return common.Hash{}, fmt.Errorf("%w: empty operation list", model.ErrInvalidInput)
	}

	coreABI, err := dex.CoreABI()
	if err != nil {
		return common.Hash{}, fmt.Errorf("parse core abi: %w", err)
	}

	calls := make([][]byte, 0, len(ops))
	for _, op := range ops {
		data, err := packOperation(coreABI, op)
		if err != nil {
			return common.Hash{}, err
		}
		calls = append(calls, data)
	}
	calldata, err := coreABI.Pack("multicall", calls)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack multicall: %w", err)
	}

	nonce, err := w.client.ethClient.PendingNonceAt(ctx, w.from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := w.client.ethClient.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas price: %w", err)
	}
	gasLimit, err := w.client.ethClient.EstimateGas(ctx, ethereum.CallMsg{
		From:     w.from,
		To:       &w.core,
		GasPrice: gasPrice,
		Data:     calldata,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: estimate gas: %v", model.ErrExecutionFailed, err)
	}

	tx := types.NewTransaction(nonce, w.core, nil, gasLimit, gasPrice, calldata)
	signed, err := w.signer(w.from, tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign transaction: %w", err)
	}
	if err := w.client.ethClient.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("%w: send transaction: %v", model.ErrExecutionFailed, err)
	}

	w.logger.Info("plan submitted",
		zap.String("tx", signed.Hash().Hex()),
		zap.Int("operations", len(ops)),
		zap.Uint64("gas_limit", gasLimit),
	)
	return signed.Hash(), nil
}

// WaitForTransaction polls until the transaction is mined. A mined but
// reverted transaction is a hard failure.
func (w *Writer) WaitForTransaction(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := w.client.ethClient.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: transaction %s reverted", model.ErrExecutionFailed, hash.Hex())
			}
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("fetch receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// PositionIDFromReceipt extracts the minted position id from the
// receipt's PositionMinted event. The transaction itself succeeded when
// this fails; a missing id is its own error class.
func (w *Writer) PositionIDFromReceipt(receipt *types.Receipt) (uint64, error) {
	coreABI, err := dex.CoreABI()
	if err != nil {
		return 0, fmt.Errorf("parse core abi: %w", err)
	}
	mintedID := coreABI.Events["PositionMinted"].ID

	for _, log := range receipt.Logs {
		if log.Address != w.core || len(log.Topics) < 2 || log.Topics[0] != mintedID {
			continue
		}
		return log.Topics[1].Big().Uint64(), nil
	}
	return 0, model.ErrPositionIDNotFound
}

func packOperation(coreABI abi.ABI, op model.Operation) ([]byte, error) {
	switch op.Kind {
	case model.OpTransfer:
		return coreABI.Pack("transfer", op.Token, op.Amount)
	case model.OpDeposit:
		if op.PoolKey == nil || op.Bounds == nil {
			return nil, fmt.Errorf("%w: deposit missing pool key or bounds", model.ErrInvalidInput)
		}
		return coreABI.Pack("deposit", op.PositionID, dex.ABIPoolKeyFrom(*op.PoolKey), dex.ABIBoundsFrom(*op.Bounds), op.MinLiquidity)
	case model.OpMintAndDeposit:
		if op.PoolKey == nil || op.Bounds == nil {
			return nil, fmt.Errorf("%w: mint missing pool key or bounds", model.ErrInvalidInput)
		}
		return coreABI.Pack("mintAndDeposit", dex.ABIPoolKeyFrom(*op.PoolKey), dex.ABIBoundsFrom(*op.Bounds), op.MinLiquidity)
	case model.OpWithdraw:
		if op.PoolKey == nil || op.Bounds == nil {
			return nil, fmt.Errorf("%w: withdraw missing pool key or bounds", model.ErrInvalidInput)
		}
		return coreABI.Pack("withdraw", op.PositionID, dex.ABIPoolKeyFrom(*op.PoolKey), dex.ABIBoundsFrom(*op.Bounds), op.Liquidity, op.MinToken0, op.MinToken1, op.CollectFees)
	case model.OpSwap:
		if op.PoolKey == nil || op.SqrtRatioLimit == nil {
			return nil, fmt.Errorf("%w: swap missing pool key or ratio limit", model.ErrInvalidInput)
		}
		return coreABI.Pack("swap", dex.ABIPoolKeyFrom(*op.PoolKey), op.Amount, op.IsToken1, op.SqrtRatioLimit.ToBig())
	case model.OpClear:
		return coreABI.Pack("clear", op.Token)
	case model.OpClearMinimum:
		return coreABI.Pack("clearMinimum", op.Token, op.Amount)
	default:
		return nil, fmt.Errorf("%w: unknown operation kind %q", model.ErrInvalidInput, op.Kind)
	}
}
