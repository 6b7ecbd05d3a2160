package model

// ExecutionRecord journals one executed (or dry-run) plan.
type ExecutionRecord struct {
	Kind        string `json:"kind"`
	ChainID     uint64 `json:"chain_id"`
	Owner       string `json:"owner"`
	TxHash      string `json:"tx_hash,omitempty"`
	Status      string `json:"status"`
	PositionID  uint64 `json:"position_id,omitempty"`
	Operations  int    `json:"operations"`
	SubmittedAt string `json:"submitted_at"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
}
