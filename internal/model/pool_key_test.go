package model

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestNewPoolKeyOrdersTokens(t *testing.T) {
	low := common.HexToAddress("0x1000000000000000000000000000000000000001")
	high := common.HexToAddress("0x2000000000000000000000000000000000000002")
	fee := big.NewInt(1000)

	forward, orderForward := NewPoolKey(low, high, fee, 200, common.Address{})
	swapped, orderSwapped := NewPoolKey(high, low, fee, 200, common.Address{})

	if forward != swapped {
		t.Errorf("keys differ by argument order: %+v vs %+v", forward, swapped)
	}
	if forward.Token0 != low || forward.Token1 != high {
		t.Errorf("token ordering wrong: %+v", forward)
	}
	if orderForward != OrderForward {
		t.Errorf("order = %v, want OrderForward", orderForward)
	}
	if orderSwapped != OrderSwapped {
		t.Errorf("order = %v, want OrderSwapped", orderSwapped)
	}
}

func TestTokenOrderAccessors(t *testing.T) {
	low := common.HexToAddress("0x1000000000000000000000000000000000000001")
	high := common.HexToAddress("0x2000000000000000000000000000000000000002")

	key, order := NewPoolKey(high, low, nil, 0, common.Address{})
	if order.FirstIsToken0() {
		t.Error("FirstIsToken0 should be false for a swapped pair")
	}
	if order.First(key) != high {
		t.Errorf("First = %s, want %s", order.First(key), high)
	}
	if order.Second(key) != low {
		t.Errorf("Second = %s, want %s", order.Second(key), low)
	}
}
