package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"liquidityDesk/internal/dex"
	"liquidityDesk/internal/position"
	"liquidityDesk/internal/storage/postgres"
)

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new liquidity position over a price range",
		RunE:  runOpen,
	}

	cmd.Flags().String("token-a", "", "first token (symbol or address)")
	cmd.Flags().String("token-b", "", "second token (symbol or address)")
	cmd.Flags().String("amount-a", "0", "amount of token-a to deposit")
	cmd.Flags().String("amount-b", "0", "amount of token-b to deposit")
	cmd.Flags().Float64("lower-price", 0, "lower bound price (token-b per token-a)")
	cmd.Flags().Float64("upper-price", 0, "upper bound price (token-b per token-a)")
	cmd.Flags().Float64("fee", 0.3, "pool fee percent")
	cmd.Flags().Float64("spacing", 0.02, "pool tick spacing percent")

	return cmd
}

func runOpen(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	tokenARef, _ := cmd.Flags().GetString("token-a")
	tokenBRef, _ := cmd.Flags().GetString("token-b")
	amountAStr, _ := cmd.Flags().GetString("amount-a")
	amountBStr, _ := cmd.Flags().GetString("amount-b")
	lowerPrice, _ := cmd.Flags().GetFloat64("lower-price")
	upperPrice, _ := cmd.Flags().GetFloat64("upper-price")
	feePct, _ := cmd.Flags().GetFloat64("fee")
	spacingPct, _ := cmd.Flags().GetFloat64("spacing")

	tokenA, err := r.resolver.Resolve(ctx, tokenARef)
	if err != nil {
		return err
	}
	tokenB, err := r.resolver.Resolve(ctx, tokenBRef)
	if err != nil {
		return err
	}
	amountA, err := dex.ParseAmount(amountAStr)
	if err != nil {
		return err
	}
	amountB, err := dex.ParseAmount(amountBStr)
	if err != nil {
		return err
	}

	plan, err := r.planner.PlanCreate(position.CreateParams{
		TokenA:     tokenA,
		TokenB:     tokenB,
		FeePercent: feePct,
		SpacingPct: spacingPct,
		AmountA:    amountA,
		AmountB:    amountB,
		LowerPrice: lowerPrice,
		UpperPrice: upperPrice,
	})
	if err != nil {
		return err
	}

	return executePlan(ctx, r, plan)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add liquidity to an existing position",
		RunE:  runAdd,
	}

	cmd.Flags().Uint64("id", 0, "position id")
	cmd.Flags().String("token-a", "", "first token (symbol or address)")
	cmd.Flags().String("token-b", "", "second token (symbol or address)")
	cmd.Flags().String("amount-a", "0", "amount of token-a to deposit")
	cmd.Flags().String("amount-b", "0", "amount of token-b to deposit")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	if _, err := r.requireIndex(); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	tokenARef, _ := cmd.Flags().GetString("token-a")
	tokenBRef, _ := cmd.Flags().GetString("token-b")
	amountAStr, _ := cmd.Flags().GetString("amount-a")
	amountBStr, _ := cmd.Flags().GetString("amount-b")

	tokenA, err := r.resolver.Resolve(ctx, tokenARef)
	if err != nil {
		return err
	}
	tokenB, err := r.resolver.Resolve(ctx, tokenBRef)
	if err != nil {
		return err
	}
	amountA, err := dex.ParseAmount(amountAStr)
	if err != nil {
		return err
	}
	amountB, err := dex.ParseAmount(amountBStr)
	if err != nil {
		return err
	}

	plan, err := r.planner.PlanAdd(ctx, position.AddParams{
		Owner:      owner,
		PositionID: id,
		TokenA:     tokenA,
		TokenB:     tokenB,
		AmountA:    amountA,
		AmountB:    amountB,
	})
	if err != nil {
		return err
	}

	return executePlan(ctx, r, plan)
}

func newWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw liquidity and/or collect fees from a position",
		RunE:  runWithdraw,
	}

	cmd.Flags().Uint64("id", 0, "position id")
	cmd.Flags().Bool("fees-only", false, "collect fees without removing liquidity")
	cmd.Flags().Bool("collect-fees", true, "collect accumulated fees")

	return cmd
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	if _, err := r.requireIndex(); err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	feesOnly, _ := cmd.Flags().GetBool("fees-only")
	collectFees, _ := cmd.Flags().GetBool("collect-fees")

	plan, err := r.planner.PlanWithdraw(ctx, position.WithdrawParams{
		Owner:       owner,
		PositionID:  id,
		FeesOnly:    feesOnly,
		CollectFees: collectFees,
	})
	if err != nil {
		return err
	}

	return executePlan(ctx, r, plan)
}

func newPositionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List the owner's indexed positions",
		RunE:  runPositions,
	}

	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("page-size", 100, "page size")
	cmd.Flags().String("state", "", "filter by position state")
	cmd.Flags().Bool("snapshot", false, "store the listing in Postgres (requires --pg-dsn)")

	return cmd
}

func runPositions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	indexAPI, err := r.requireIndex()
	if err != nil {
		return err
	}
	owner, err := r.owner()
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	state, _ := cmd.Flags().GetString("state")
	snapshot, _ := cmd.Flags().GetBool("snapshot")

	result, err := indexAPI.FetchPositions(ctx, owner, page, pageSize, state)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if snapshot {
		chainID, err := r.client.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("get chain id: %w", err)
		}
		store, err := postgres.NewStore(ctx, r.cfg.PGDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.UpsertPositions(ctx, chainID.Uint64(), owner.Hex(), result.Data); err != nil {
			return fmt.Errorf("store positions: %w", err)
		}
	}

	return nil
}
