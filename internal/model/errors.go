package model

import "errors"

// Error taxonomy. Input and quote-shape errors are never retried; execution
// errors carry the collaborator's message via wrapping.
var (
	// ErrInvalidInput marks malformed or out-of-range human parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange marks a bounds pair with lower >= upper or a
	// non-finite tick.
	ErrInvalidRange = errors.New("invalid tick range")

	// ErrTokenUnknown marks a token reference with neither a known symbol
	// nor an address.
	ErrTokenUnknown = errors.New("token not resolvable")

	// ErrQuoteShape marks a quote response missing an expected leg or
	// carrying a magnitude that stays negative after correction.
	ErrQuoteShape = errors.New("unexpected quote shape")

	// ErrExecutionFailed marks a failed or confirmed-but-reverted
	// transaction.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrPositionNotFound marks an index lookup with no matching record.
	// The position may simply have been fully withdrawn already.
	ErrPositionNotFound = errors.New("position not found")

	// ErrPositionIDNotFound marks a successful mint whose receipt carried
	// no position id event. The transaction itself succeeded on-chain.
	ErrPositionIDNotFound = errors.New("position id not found in receipt")
)
