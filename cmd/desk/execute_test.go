package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"liquidityDesk/internal/model"
)

func TestStatusForWaitError(t *testing.T) {
	reverted := fmt.Errorf("%w: transaction 0xabc reverted", model.ErrExecutionFailed)
	if got := statusForWaitError(reverted); got != "reverted" {
		t.Errorf("status for revert = %q, want %q", got, "reverted")
	}

	// Anything short of a confirmed revert leaves the outcome unknown.
	for _, err := range []error{
		context.Canceled,
		context.DeadlineExceeded,
		errors.New("fetch receipt: connection refused"),
	} {
		if got := statusForWaitError(err); got != "unconfirmed" {
			t.Errorf("status for %v = %q, want %q", err, got, "unconfirmed")
		}
	}
}
