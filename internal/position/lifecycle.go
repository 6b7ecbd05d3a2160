// Package position derives valid tick bounds and assembles the ordered
// operation plans for creating, adding to, withdrawing from, and swapping
// against concentrated-liquidity pools. Plans are built here and executed
// elsewhere; every plan works from a pool price or quote fetched fresh for
// that call.
package position

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"liquidityDesk/internal/dex"
	"liquidityDesk/internal/model"
	"liquidityDesk/internal/swap"
	"liquidityDesk/internal/ticks"
)

// Reader supplies fresh pool state. Implemented by chain.Client.
type Reader interface {
	PoolPrice(ctx context.Context, key model.PoolKey) (*uint256.Int, error)
	QuoteSwap(ctx context.Context, key model.PoolKey, amount *big.Int, isToken1 bool) (model.SwapQuote, error)
}

// Index supplies indexed position records. Implemented by index.Client.
type Index interface {
	FindPosition(ctx context.Context, owner common.Address, id uint64) (model.PositionRecord, error)
}

// Planner assembles execution plans from human-denominated parameters.
type Planner struct {
	reader Reader
	index  Index
	logger *zap.Logger
}

// NewPlanner builds a Planner with its collaborators.
func NewPlanner(reader Reader, index Index, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{reader: reader, index: index, logger: logger}
}

// CreateParams describes a new position in human units. Prices are quoted
// as tokenB per tokenA; when tokenB turns out to be the pool's token0 the
// planner inverts the range and swaps the amounts itself.
type CreateParams struct {
	TokenA     model.TokenMeta
	TokenB     model.TokenMeta
	FeePercent float64
	SpacingPct float64
	Extension  common.Address
	AmountA    decimal.Decimal
	AmountB    decimal.Decimal
	LowerPrice float64
	UpperPrice float64
}

// PlanCreate builds the ordered operation list that mints a new position:
// transfer token0, transfer token1, mint-and-deposit. The minted position
// id is read from the execution receipt by the executor.
func (p *Planner) PlanCreate(params CreateParams) (model.Plan, error) {
	spacing, err := ticks.SpacingPercentToExponent(params.SpacingPct)
	if err != nil {
		return model.Plan{}, err
	}
	key, order := model.NewPoolKey(
		params.TokenA.Addr(), params.TokenB.Addr(),
		ticks.FeePercentToFixed(params.FeePercent), spacing, params.Extension,
	)

	amount0, err := dex.ToProtocolUnits(params.AmountA, params.TokenA.Decimals)
	if err != nil {
		return model.Plan{}, err
	}
	amount1, err := dex.ToProtocolUnits(params.AmountB, params.TokenB.Decimals)
	if err != nil {
		return model.Plan{}, err
	}

	lowerPrice, upperPrice := params.LowerPrice, params.UpperPrice
	decimals0, decimals1 := params.TokenA.Decimals, params.TokenB.Decimals
	if !order.FirstIsToken0() {
		// tokenB is token0: reciprocate the range and swap the legs.
		lowerPrice, upperPrice = InvertPriceRange(lowerPrice, upperPrice)
		amount0, amount1 = amount1, amount0
		decimals0, decimals1 = params.TokenB.Decimals, params.TokenA.Decimals
	}

	lowerTick, err := ticks.TickFromPrice(lowerPrice, decimals0, decimals1)
	if err != nil {
		return model.Plan{}, err
	}
	upperTick, err := ticks.TickFromPrice(upperPrice, decimals0, decimals1)
	if err != nil {
		return model.Plan{}, err
	}

	// Lower rounds down, upper rounds up: the realized range is always a
	// superset of the requested one.
	bounds, err := NewBounds(
		ticks.RoundTickToSpacing(lowerTick, spacing, true),
		ticks.RoundTickToSpacing(upperTick, spacing, false),
	)
	if err != nil {
		return model.Plan{}, err
	}

	p.logger.Debug("create plan",
		zap.Int64("lower", bounds.Lower),
		zap.Int64("upper", bounds.Upper),
		zap.Uint32("spacing", spacing),
	)

	return model.Plan{
		Kind: "create",
		Operations: []model.Operation{
			{Kind: model.OpTransfer, Token: key.Token0, Amount: amount0},
			{Kind: model.OpTransfer, Token: key.Token1, Amount: amount1},
			{Kind: model.OpMintAndDeposit, PoolKey: &key, Bounds: &bounds, MinLiquidity: big.NewInt(0)},
		},
	}, nil
}

// AddParams describes a deposit into an existing position.
type AddParams struct {
	Owner      common.Address
	PositionID uint64
	TokenA     model.TokenMeta
	TokenB     model.TokenMeta
	AmountA    decimal.Decimal
	AmountB    decimal.Decimal
}

// PlanAdd builds the plan that deposits into an existing position. Pool
// key and bounds are rebuilt from the indexed record, never from caller
// input, so the deposit cannot target a mismatched range. The trailing
// clears sweep rounding dust back to the caller and must follow the
// deposit.
func (p *Planner) PlanAdd(ctx context.Context, params AddParams) (model.Plan, error) {
	record, err := p.index.FindPosition(ctx, params.Owner, params.PositionID)
	if err != nil {
		return model.Plan{}, err
	}

	key := record.PoolKey
	bounds, err := NewBounds(record.Bounds.Lower, record.Bounds.Upper)
	if err != nil {
		return model.Plan{}, err
	}

	amount0, amount1, err := p.orientAmounts(key, params.TokenA, params.TokenB, params.AmountA, params.AmountB)
	if err != nil {
		return model.Plan{}, err
	}

	return model.Plan{
		Kind: "add",
		Operations: []model.Operation{
			{Kind: model.OpTransfer, Token: key.Token0, Amount: amount0},
			{Kind: model.OpTransfer, Token: key.Token1, Amount: amount1},
			{Kind: model.OpDeposit, PoolKey: &key, Bounds: &bounds, PositionID: params.PositionID, MinLiquidity: big.NewInt(0)},
			{Kind: model.OpClear, Token: key.Token0},
			{Kind: model.OpClear, Token: key.Token1},
		},
	}, nil
}

// orientAmounts maps the caller's (tokenA, tokenB) amounts onto the
// record's (token0, token1) ordering by address identity.
func (p *Planner) orientAmounts(key model.PoolKey, tokenA, tokenB model.TokenMeta, amountA, amountB decimal.Decimal) (*big.Int, *big.Int, error) {
	rawA, err := dex.ToProtocolUnits(amountA, tokenA.Decimals)
	if err != nil {
		return nil, nil, err
	}
	rawB, err := dex.ToProtocolUnits(amountB, tokenB.Decimals)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case tokenA.Addr() == key.Token0 && tokenB.Addr() == key.Token1:
		return rawA, rawB, nil
	case tokenB.Addr() == key.Token0 && tokenA.Addr() == key.Token1:
		return rawB, rawA, nil
	default:
		return nil, nil, fmt.Errorf("%w: tokens %s/%s do not match pool %s/%s",
			model.ErrInvalidInput, tokenA.Symbol, tokenB.Symbol, key.Token0.Hex(), key.Token1.Hex())
	}
}

// WithdrawParams describes a liquidity withdrawal.
type WithdrawParams struct {
	Owner       common.Address
	PositionID  uint64
	FeesOnly    bool
	CollectFees bool
}

// PlanWithdraw builds the plan that removes liquidity (all of it, or none
// when FeesOnly) and sweeps both tokens. Both withdrawal minimums are
// zero: the amount out is determined by the liquidity removed, not by a
// counterparty quote.
func (p *Planner) PlanWithdraw(ctx context.Context, params WithdrawParams) (model.Plan, error) {
	record, err := p.index.FindPosition(ctx, params.Owner, params.PositionID)
	if err != nil {
		return model.Plan{}, err
	}

	liquidity := big.NewInt(0)
	if !params.FeesOnly {
		parsed, ok := new(big.Int).SetString(record.Liquidity, 10)
		if !ok {
			return model.Plan{}, fmt.Errorf("parse position %d liquidity %q", params.PositionID, record.Liquidity)
		}
		liquidity = parsed
	}

	key := record.PoolKey
	bounds := record.Bounds

	return model.Plan{
		Kind: "withdraw",
		Operations: []model.Operation{
			{
				Kind:        model.OpWithdraw,
				PoolKey:     &key,
				Bounds:      &bounds,
				PositionID:  params.PositionID,
				Liquidity:   liquidity,
				MinToken0:   big.NewInt(0),
				MinToken1:   big.NewInt(0),
				CollectFees: params.CollectFees,
			},
			{Kind: model.OpClear, Token: key.Token0},
			{Kind: model.OpClear, Token: key.Token1},
		},
	}, nil
}

// SwapParams describes a swap in human units. Amount is the input amount
// when IsAmountIn, otherwise the desired output amount.
type SwapParams struct {
	TokenIn     model.TokenMeta
	TokenOut    model.TokenMeta
	FeePercent  float64
	SpacingPct  float64
	Extension   common.Address
	Amount      decimal.Decimal
	IsAmountIn  bool
	SlippagePct float64
}

// SwapSummary reports the quote and guards behind a swap plan.
type SwapSummary struct {
	Quote    model.SwapQuote
	Guard    model.ExecutionGuard
	AmountIn *big.Int
}

// PlanSwap fetches a fresh price and quote, computes the execution guards,
// and assembles the swap plan: transfer tokenIn, swap, clear-minimum
// tokenOut, clear tokenOut. Whether the sell side is token0 follows from
// the input token's identity, not from how the caller named the pair.
func (p *Planner) PlanSwap(ctx context.Context, params SwapParams) (model.Plan, SwapSummary, error) {
	spacing, err := ticks.SpacingPercentToExponent(params.SpacingPct)
	if err != nil {
		return model.Plan{}, SwapSummary{}, err
	}
	key, _ := model.NewPoolKey(
		params.TokenIn.Addr(), params.TokenOut.Addr(),
		ticks.FeePercentToFixed(params.FeePercent), spacing, params.Extension,
	)
	sellingToken0 := params.TokenIn.Addr() == key.Token0

	current, err := p.reader.PoolPrice(ctx, key)
	if err != nil {
		return model.Plan{}, SwapSummary{}, fmt.Errorf("fetch pool price: %w", err)
	}

	var quoted *big.Int
	var quotedIsToken1 bool
	if params.IsAmountIn {
		quoted, err = dex.ToProtocolUnits(params.Amount, params.TokenIn.Decimals)
		quotedIsToken1 = !sellingToken0
	} else {
		// Exact-out quotes specify the output token with a negative amount.
		quoted, err = dex.ToProtocolUnits(params.Amount, params.TokenOut.Decimals)
		if err == nil {
			quoted = quoted.Neg(quoted)
		}
		quotedIsToken1 = sellingToken0
	}
	if err != nil {
		return model.Plan{}, SwapSummary{}, err
	}

	quote, err := p.reader.QuoteSwap(ctx, key, quoted, quotedIsToken1)
	if err != nil {
		return model.Plan{}, SwapSummary{}, fmt.Errorf("fetch quote: %w", err)
	}

	var guard model.ExecutionGuard
	var transferIn *big.Int
	if params.IsAmountIn {
		guard, err = swap.ExactInGuard(current, quote, sellingToken0, params.SlippagePct)
		if err != nil {
			return model.Plan{}, SwapSummary{}, err
		}
		transferIn = new(big.Int).Set(quoted)
	} else {
		transferIn, err = swap.ExactOutRequiredInput(quote, sellingToken0)
		if err != nil {
			return model.Plan{}, SwapSummary{}, err
		}
		guard, err = swap.ExactOutGuard(current, new(big.Int).Abs(quoted), sellingToken0, params.SlippagePct)
		if err != nil {
			return model.Plan{}, SwapSummary{}, err
		}
	}

	p.logger.Debug("swap plan",
		zap.Bool("selling_token0", sellingToken0),
		zap.Bool("exact_in", params.IsAmountIn),
		zap.String("amount_in", transferIn.String()),
		zap.String("amount_bound", guard.AmountBound.String()),
	)

	plan := model.Plan{
		Kind: "swap",
		Operations: []model.Operation{
			{Kind: model.OpTransfer, Token: params.TokenIn.Addr(), Amount: transferIn},
			{
				Kind:           model.OpSwap,
				PoolKey:        &key,
				Amount:         quoted,
				IsToken1:       quotedIsToken1,
				SqrtRatioLimit: guard.SqrtRatioLimit,
			},
			{Kind: model.OpClearMinimum, Token: params.TokenOut.Addr(), Amount: guard.AmountBound},
			{Kind: model.OpClear, Token: params.TokenOut.Addr()},
		},
	}

	return plan, SwapSummary{Quote: quote, Guard: guard, AmountIn: transferIn}, nil
}
