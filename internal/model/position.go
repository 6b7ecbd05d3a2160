package model

// PositionRecord is an indexed position as returned by the position index
// service. PoolKey and Bounds come from the index, never from the caller,
// so that add/withdraw plans always match the on-chain position.
type PositionRecord struct {
	ID        uint64     `json:"id"`
	PoolKey   PoolKey    `json:"pool_key"`
	Bounds    Bounds     `json:"bounds"`
	Liquidity string     `json:"liquidity"`
	PoolState *PoolState `json:"pool_state,omitempty"`
}

// PoolState carries optional live pool fields attached to an indexed record.
type PoolState struct {
	SqrtRatio string `json:"sqrt_ratio"`
	Tick      int64  `json:"tick"`
	Liquidity string `json:"liquidity"`
}
