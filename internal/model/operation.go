package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// OperationKind enumerates the core contract operations a plan can contain.
type OperationKind string

const (
	OpTransfer       OperationKind = "transfer"
	OpDeposit        OperationKind = "deposit"
	OpMintAndDeposit OperationKind = "mint_and_deposit"
	OpWithdraw       OperationKind = "withdraw"
	OpSwap           OperationKind = "swap"
	OpClear          OperationKind = "clear"
	OpClearMinimum   OperationKind = "clear_minimum"
)

// Operation is one step of an ordered execution plan. Only the fields
// relevant to its kind are set.
type Operation struct {
	Kind OperationKind `json:"kind"`

	// Transfer, Clear, ClearMinimum.
	Token  common.Address `json:"token,omitempty"`
	Amount *big.Int       `json:"amount,omitempty"`

	// Deposit, MintAndDeposit, Withdraw, Swap.
	PoolKey *PoolKey `json:"pool_key,omitempty"`
	Bounds  *Bounds  `json:"bounds,omitempty"`

	// Deposit family.
	MinLiquidity *big.Int `json:"min_liquidity,omitempty"`

	// Withdraw.
	PositionID  uint64   `json:"position_id,omitempty"`
	Liquidity   *big.Int `json:"liquidity,omitempty"`
	MinToken0   *big.Int `json:"min_token0,omitempty"`
	MinToken1   *big.Int `json:"min_token1,omitempty"`
	CollectFees bool     `json:"collect_fees,omitempty"`

	// Swap.
	IsToken1       bool         `json:"is_token1,omitempty"`
	SqrtRatioLimit *uint256.Int `json:"sqrt_ratio_limit,omitempty"`
}

// Plan is an ordered operation list plus the identity of the plan for
// journaling. Operations execute strictly in order.
type Plan struct {
	Kind       string      `json:"kind"`
	Operations []Operation `json:"operations"`
}
