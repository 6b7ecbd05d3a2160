package dex

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"liquidityDesk/internal/model"
)

// fakeCaller answers erc20 calls from canned responses keyed by selector.
type fakeCaller struct {
	responses map[[4]byte][]byte
	calls     int
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls++
	var selector [4]byte
	copy(selector[:], msg.Data[:4])
	resp, ok := f.responses[selector]
	if !ok {
		return nil, fmt.Errorf("execution reverted")
	}
	return resp, nil
}

func erc20Caller(t *testing.T, decimals uint8, symbol, name string) *fakeCaller {
	t.Helper()
	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		t.Fatalf("parse erc20 abi: %v", err)
	}

	responses := make(map[[4]byte][]byte)
	add := func(method string, values ...interface{}) {
		data, err := stringABI.Methods[method].Outputs.Pack(values...)
		if err != nil {
			t.Fatalf("pack %s output: %v", method, err)
		}
		var selector [4]byte
		copy(selector[:], stringABI.Methods[method].ID)
		responses[selector] = data
	}
	add("decimals", decimals)
	add("symbol", symbol)
	add("name", name)
	return &fakeCaller{responses: responses}
}

func TestFetchTokenMeta(t *testing.T) {
	token := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	caller := erc20Caller(t, 6, "USDC", "USD Coin")

	meta, err := FetchTokenMeta(context.Background(), caller, token, nil)
	if err != nil {
		t.Fatalf("FetchTokenMeta failed: %v", err)
	}
	if meta.Decimals != 6 || meta.Symbol != "USDC" || meta.Name != "USD Coin" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Address != token.Hex() {
		t.Errorf("address = %s, want %s", meta.Address, token.Hex())
	}
}

func TestResolve(t *testing.T) {
	token := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	caller := erc20Caller(t, 18, "WETH", "Wrapped Ether")
	resolver := NewResolver(caller, map[string]common.Address{"WETH": token}, nil)

	t.Run("by symbol", func(t *testing.T) {
		meta, err := resolver.Resolve(context.Background(), "weth")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if meta.Symbol != "WETH" || meta.Decimals != 18 {
			t.Errorf("meta = %+v", meta)
		}
	})

	t.Run("by address, cached", func(t *testing.T) {
		before := caller.calls
		meta, err := resolver.Resolve(context.Background(), token.Hex())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if meta.Symbol != "WETH" {
			t.Errorf("meta = %+v", meta)
		}
		if caller.calls != before {
			t.Errorf("resolved a cached token with %d extra calls", caller.calls-before)
		}
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "NOPE")
		if !errors.Is(err, model.ErrTokenUnknown) {
			t.Errorf("err = %v, want ErrTokenUnknown", err)
		}
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "  ")
		if !errors.Is(err, model.ErrTokenUnknown) {
			t.Errorf("err = %v, want ErrTokenUnknown", err)
		}
	})
}
