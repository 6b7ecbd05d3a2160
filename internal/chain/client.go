// Package chain implements the on-chain collaborators: a read side for
// pool state and quotes, and a write side that submits execution plans
// and waits for their receipts.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/holiman/uint256"

	"liquidityDesk/internal/dex"
	"liquidityDesk/internal/model"
)

// Client wraps go-ethereum RPC and reads pool state from the core AMM
// contract.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
	core      common.Address
}

// NewClient connects to the RPC URL and binds the core contract address.
func NewClient(ctx context.Context, rpcURL string, core common.Address) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
		core:      core,
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ChainID returns the chain ID.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// CallContract performs an eth_call for a contract method.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.ethClient.CallContract(ctx, msg, blockNumber)
}

func (c *Client) callCore(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	coreABI, err := dex.CoreABI()
	if err != nil {
		return nil, fmt.Errorf("parse core abi: %w", err)
	}
	data, err := coreABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &c.core, Data: data}
	resp, err := c.ethClient.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := coreABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// PoolPrice returns the pool's current sqrt ratio in Q128.128.
func (c *Client) PoolPrice(ctx context.Context, key model.PoolKey) (*uint256.Int, error) {
	values, err := c.callCore(ctx, "poolPrice", dex.ABIPoolKeyFrom(key))
	if err != nil {
		return nil, err
	}
	raw, err := dex.AsBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("sqrt ratio: %w", err)
	}
	sqrt, overflow := uint256.FromBig(raw)
	if overflow {
		return nil, fmt.Errorf("sqrt ratio overflows 256 bits: %s", raw)
	}
	return sqrt, nil
}

// PoolLiquidity returns the pool's active liquidity.
func (c *Client) PoolLiquidity(ctx context.Context, key model.PoolKey) (*big.Int, error) {
	values, err := c.callCore(ctx, "poolLiquidity", dex.ABIPoolKeyFrom(key))
	if err != nil {
		return nil, err
	}
	liquidity, err := dex.AsBigInt(values[0])
	if err != nil {
		return nil, fmt.Errorf("liquidity: %w", err)
	}
	return liquidity, nil
}

// PoolFeesPerLiquidity returns the pool's accumulated fees per unit of
// liquidity for both tokens.
func (c *Client) PoolFeesPerLiquidity(ctx context.Context, key model.PoolKey) (*big.Int, *big.Int, error) {
	values, err := c.callCore(ctx, "poolFeesPerLiquidity", dex.ABIPoolKeyFrom(key))
	if err != nil {
		return nil, nil, err
	}
	value0, err := dex.AsBigInt(values[0])
	if err != nil {
		return nil, nil, fmt.Errorf("fees value0: %w", err)
	}
	value1, err := dex.AsBigInt(values[1])
	if err != nil {
		return nil, nil, fmt.Errorf("fees value1: %w", err)
	}
	return value0, value1, nil
}

// QuoteSwap asks the core contract what token deltas a swap of the given
// amount would produce. A negative input amount requests an exact output
// of that token. Negative deltas in the response are outputs.
func (c *Client) QuoteSwap(ctx context.Context, key model.PoolKey, amount *big.Int, isToken1 bool) (model.SwapQuote, error) {
	values, err := c.callCore(ctx, "quote", dex.ABIPoolKeyFrom(key), amount, isToken1)
	if err != nil {
		return model.SwapQuote{}, err
	}
	if len(values) < 2 {
		return model.SwapQuote{}, fmt.Errorf("%w: quote returned %d values", model.ErrQuoteShape, len(values))
	}
	delta0, err := dex.AsBigInt(values[0])
	if err != nil {
		return model.SwapQuote{}, fmt.Errorf("%w: delta0: %v", model.ErrQuoteShape, err)
	}
	delta1, err := dex.AsBigInt(values[1])
	if err != nil {
		return model.SwapQuote{}, fmt.Errorf("%w: delta1: %v", model.ErrQuoteShape, err)
	}
	return model.SwapQuote{
		Amount0: signedAmount(delta0),
		Amount1: signedAmount(delta1),
	}, nil
}

func signedAmount(delta *big.Int) model.SignedAmount {
	return model.SignedAmount{
		Mag:      new(big.Int).Abs(delta),
		IsOutput: delta.Sign() < 0,
	}
}
