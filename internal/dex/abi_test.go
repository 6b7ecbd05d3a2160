package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"liquidityDesk/internal/model"
)

func TestCoreABIParses(t *testing.T) {
	coreABI, err := CoreABI()
	if err != nil {
		t.Fatalf("CoreABI failed: %v", err)
	}

	for _, name := range []string{
		"poolPrice", "poolLiquidity", "poolFeesPerLiquidity", "quote",
		"transfer", "deposit", "mintAndDeposit", "withdraw",
		"swap", "clear", "clearMinimum", "multicall",
	} {
		if _, ok := coreABI.Methods[name]; !ok {
			t.Errorf("method %q missing from core abi", name)
		}
	}
	if _, ok := coreABI.Events["PositionMinted"]; !ok {
		t.Error("PositionMinted event missing from core abi")
	}
}

func TestCoreABIPacksOperations(t *testing.T) {
	coreABI, err := CoreABI()
	if err != nil {
		t.Fatalf("CoreABI failed: %v", err)
	}

	key, _ := model.NewPoolKey(
		common.HexToAddress("0x01"), common.HexToAddress("0x02"),
		big.NewInt(1000), 200, common.Address{},
	)
	abiKey := ABIPoolKeyFrom(key)
	abiBounds := ABIBoundsFrom(model.Bounds{Lower: -1000, Upper: 1000})

	calls := []struct {
		method string
		args   []interface{}
	}{
		{"transfer", []interface{}{key.Token0, big.NewInt(1)}},
		{"mintAndDeposit", []interface{}{abiKey, abiBounds, big.NewInt(0)}},
		{"deposit", []interface{}{uint64(7), abiKey, abiBounds, big.NewInt(0)}},
		{"withdraw", []interface{}{uint64(7), abiKey, abiBounds, big.NewInt(5), big.NewInt(0), big.NewInt(0), true}},
		{"swap", []interface{}{abiKey, big.NewInt(100), false, big.NewInt(1)}},
		{"clear", []interface{}{key.Token0}},
		{"clearMinimum", []interface{}{key.Token0, big.NewInt(1)}},
	}
	for _, call := range calls {
		packed, err := coreABI.Pack(call.method, call.args...)
		if err != nil {
			t.Errorf("pack %s: %v", call.method, err)
			continue
		}
		if len(packed) < 4 {
			t.Errorf("pack %s produced %d bytes", call.method, len(packed))
		}
	}

	inner, err := coreABI.Pack("clear", key.Token0)
	if err != nil {
		t.Fatalf("pack clear: %v", err)
	}
	if _, err := coreABI.Pack("multicall", [][]byte{inner}); err != nil {
		t.Errorf("pack multicall: %v", err)
	}
}
