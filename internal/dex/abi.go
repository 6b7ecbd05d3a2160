package dex

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// coreABIJSON covers the core AMM contract surface this client touches:
// pool state views, the quoting call, and the position/swap operations
// that execution plans are packed into.
const coreABIJSON = `[
  {
    "inputs": [
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"}
    ],
    "name": "poolPrice",
    "outputs": [
      {"internalType": "uint256", "name": "sqrtRatio", "type": "uint256"},
      {"internalType": "int32", "name": "tick", "type": "int32"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"}
    ],
    "name": "poolLiquidity",
    "outputs": [{"internalType": "uint128", "name": "", "type": "uint128"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"}
    ],
    "name": "poolFeesPerLiquidity",
    "outputs": [
      {"internalType": "uint256", "name": "value0", "type": "uint256"},
      {"internalType": "uint256", "name": "value1", "type": "uint256"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"},
      {"internalType": "int256", "name": "amount", "type": "int256"},
      {"internalType": "bool", "name": "isToken1", "type": "bool"}
    ],
    "name": "quote",
    "outputs": [
      {"internalType": "int256", "name": "delta0", "type": "int256"},
      {"internalType": "int256", "name": "delta1", "type": "int256"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "token", "type": "address"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "transfer",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint64", "name": "id", "type": "uint64"},
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"},
      {"components": [
        {"internalType": "int32", "name": "lower", "type": "int32"},
        {"internalType": "int32", "name": "upper", "type": "int32"}
      ], "internalType": "struct Bounds", "name": "bounds", "type": "tuple"},
      {"internalType": "uint128", "name": "minLiquidity", "type": "uint128"}
    ],
    "name": "deposit",
    "outputs": [{"internalType": "uint128", "name": "liquidity", "type": "uint128"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"},
      {"components": [
        {"internalType": "int32", "name": "lower", "type": "int32"},
        {"internalType": "int32", "name": "upper", "type": "int32"}
      ], "internalType": "struct Bounds", "name": "bounds", "type": "tuple"},
      {"internalType": "uint128", "name": "minLiquidity", "type": "uint128"}
    ],
    "name": "mintAndDeposit",
    "outputs": [
      {"internalType": "uint64", "name": "id", "type": "uint64"},
      {"internalType": "uint128", "name": "liquidity", "type": "uint128"}
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint64", "name": "id", "type": "uint64"},
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"},
      {"components": [
        {"internalType": "int32", "name": "lower", "type": "int32"},
        {"internalType": "int32", "name": "upper", "type": "int32"}
      ], "internalType": "struct Bounds", "name": "bounds", "type": "tuple"},
      {"internalType": "uint128", "name": "liquidity", "type": "uint128"},
      {"internalType": "uint128", "name": "minToken0", "type": "uint128"},
      {"internalType": "uint128", "name": "minToken1", "type": "uint128"},
      {"internalType": "bool", "name": "collectFees", "type": "bool"}
    ],
    "name": "withdraw",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"components": [
        {"internalType": "address", "name": "token0", "type": "address"},
        {"internalType": "address", "name": "token1", "type": "address"},
        {"internalType": "uint128", "name": "fee", "type": "uint128"},
        {"internalType": "uint32", "name": "tickSpacing", "type": "uint32"},
        {"internalType": "address", "name": "extension", "type": "address"}
      ], "internalType": "struct PoolKey", "name": "poolKey", "type": "tuple"},
      {"internalType": "int256", "name": "amount", "type": "int256"},
      {"internalType": "bool", "name": "isToken1", "type": "bool"},
      {"internalType": "uint256", "name": "sqrtRatioLimit", "type": "uint256"}
    ],
    "name": "swap",
    "outputs": [
      {"internalType": "int256", "name": "delta0", "type": "int256"},
      {"internalType": "int256", "name": "delta1", "type": "int256"}
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "token", "type": "address"}],
    "name": "clear",
    "outputs": [{"internalType": "uint256", "name": "amount", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address", "name": "token", "type": "address"},
      {"internalType": "uint256", "name": "minimum", "type": "uint256"}
    ],
    "name": "clearMinimum",
    "outputs": [{"internalType": "uint256", "name": "amount", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "bytes[]", "name": "data", "type": "bytes[]"}],
    "name": "multicall",
    "outputs": [{"internalType": "bytes[]", "name": "results", "type": "bytes[]"}],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "uint64", "name": "id", "type": "uint64"},
      {"indexed": false, "internalType": "address", "name": "token0", "type": "address"},
      {"indexed": false, "internalType": "address", "name": "token1", "type": "address"},
      {"indexed": false, "internalType": "uint128", "name": "liquidity", "type": "uint128"}
    ],
    "name": "PositionMinted",
    "type": "event"
  }
]`

const erc20ABIStringJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

const erc20ABIBytes32JSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"}
]`

var (
	coreABI     abi.ABI
	coreABIOnce sync.Once
	coreABIErr  error

	erc20ABIString      abi.ABI
	erc20ABIStringOnce  sync.Once
	erc20ABIStringErr   error
	erc20ABIBytes32     abi.ABI
	erc20ABIBytes32Once sync.Once
	erc20ABIBytes32Err  error
)

// CoreABI returns the parsed core AMM contract ABI.
func CoreABI() (abi.ABI, error) {
	coreABIOnce.Do(func() {
		coreABI, coreABIErr = abi.JSON(strings.NewReader(coreABIJSON))
	})
	return coreABI, coreABIErr
}

func erc20ABIStringInstance() (abi.ABI, error) {
	erc20ABIStringOnce.Do(func() {
		erc20ABIString, erc20ABIStringErr = abi.JSON(strings.NewReader(erc20ABIStringJSON))
	})
	return erc20ABIString, erc20ABIStringErr
}

func erc20ABIBytes32Instance() (abi.ABI, error) {
	erc20ABIBytes32Once.Do(func() {
		erc20ABIBytes32, erc20ABIBytes32Err = abi.JSON(strings.NewReader(erc20ABIBytes32JSON))
	})
	return erc20ABIBytes32, erc20ABIBytes32Err
}
