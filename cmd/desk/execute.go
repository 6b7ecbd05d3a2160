package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"liquidityDesk/internal/model"
)

// executePlan either prints the plan (dry run) or submits it, waits for
// the receipt, and journals the outcome. For create plans it also reports
// the minted position id.
func executePlan(ctx context.Context, r *runtime, plan model.Plan) error {
	if r.cfg.DryRun {
		return printPlan(plan)
	}

	writer, from, err := r.newWriter(ctx)
	if err != nil {
		return err
	}

	chainID, err := r.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}

	submittedAt := time.Now().UTC()
	hash, err := writer.Execute(ctx, plan.Operations)
	if err != nil {
		return err
	}

	record := model.ExecutionRecord{
		Kind:        plan.Kind,
		ChainID:     chainID.Uint64(),
		Owner:       from.Hex(),
		TxHash:      hash.Hex(),
		Status:      "submitted",
		Operations:  len(plan.Operations),
		SubmittedAt: submittedAt.Format(time.RFC3339Nano),
	}

	receipt, err := writer.WaitForTransaction(ctx, hash)
	if err != nil {
		record.Status = statusForWaitError(err)
		if journalErr := r.journal.AppendExecution(record); journalErr != nil {
			r.logger.Warn("journal write failed", zap.Error(journalErr))
		}
		return err
	}

	record.Status = "confirmed"
	record.ConfirmedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if plan.Kind == "create" {
		id, err := writer.PositionIDFromReceipt(receipt)
		if err != nil {
			// The mint itself succeeded; surface the extraction failure
			// after journaling what we know.
			if journalErr := r.journal.AppendExecution(record); journalErr != nil {
				r.logger.Warn("journal write failed", zap.Error(journalErr))
			}
			return err
		}
		record.PositionID = id
		fmt.Printf("position minted: id=%d tx=%s\n", id, hash.Hex())
	} else {
		fmt.Printf("%s confirmed: tx=%s\n", plan.Kind, hash.Hex())
	}

	if err := r.journal.AppendExecution(record); err != nil {
		r.logger.Warn("journal write failed", zap.Error(err))
	}
	return nil
}

// statusForWaitError maps a WaitForTransaction error onto a journal
// status. Only an on-chain revert is "reverted"; cancellation and RPC
// failures leave the transaction's fate unknown.
func statusForWaitError(err error) string {
	if errors.Is(err, model.ErrExecutionFailed) {
		return "reverted"
	}
	return "unconfirmed"
}

func printPlan(plan model.Plan) error {
	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
