package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityDesk/internal/dex"
	"liquidityDesk/internal/position"
)

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap one token for another with slippage guards",
		RunE:  runSwap,
	}

	cmd.Flags().String("token-in", "", "token to sell (symbol or address)")
	cmd.Flags().String("token-out", "", "token to buy (symbol or address)")
	cmd.Flags().String("amount", "", "amount (input amount, or desired output with --exact-out)")
	cmd.Flags().Bool("exact-out", false, "treat amount as the desired output")
	cmd.Flags().Float64("fee", 0.3, "pool fee percent")
	cmd.Flags().Float64("spacing", 0.02, "pool tick spacing percent")

	return cmd
}

func runSwap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	tokenInRef, _ := cmd.Flags().GetString("token-in")
	tokenOutRef, _ := cmd.Flags().GetString("token-out")
	amountStr, _ := cmd.Flags().GetString("amount")
	exactOut, _ := cmd.Flags().GetBool("exact-out")
	feePct, _ := cmd.Flags().GetFloat64("fee")
	spacingPct, _ := cmd.Flags().GetFloat64("spacing")

	tokenIn, err := r.resolver.Resolve(ctx, tokenInRef)
	if err != nil {
		return err
	}
	tokenOut, err := r.resolver.Resolve(ctx, tokenOutRef)
	if err != nil {
		return err
	}
	amount, err := dex.ParseAmount(amountStr)
	if err != nil {
		return err
	}

	plan, summary, err := r.planner.PlanSwap(ctx, position.SwapParams{
		TokenIn:     tokenIn,
		TokenOut:    tokenOut,
		FeePercent:  feePct,
		SpacingPct:  spacingPct,
		Amount:      amount,
		IsAmountIn:  !exactOut,
		SlippagePct: r.cfg.SlippagePct,
	})
	if err != nil {
		return err
	}

	r.logger.Info("swap planned",
		zap.String("token_in", tokenIn.Symbol),
		zap.String("token_out", tokenOut.Symbol),
		zap.Bool("exact_out", exactOut),
		zap.String("amount_in", dex.FromProtocolUnits(summary.AmountIn, tokenIn.Decimals).String()),
		zap.String("amount_bound", dex.FromProtocolUnits(summary.Guard.AmountBound, tokenOut.Decimals).String()),
	)

	if !exactOut {
		fmt.Printf("selling %s %s for at least %s %s\n",
			dex.FromProtocolUnits(summary.AmountIn, tokenIn.Decimals), tokenIn.Symbol,
			dex.FromProtocolUnits(summary.Guard.AmountBound, tokenOut.Decimals), tokenOut.Symbol,
		)
	} else {
		fmt.Printf("buying exactly %s %s for %s %s\n",
			dex.FromProtocolUnits(summary.Guard.AmountBound, tokenOut.Decimals), tokenOut.Symbol,
			dex.FromProtocolUnits(summary.AmountIn, tokenIn.Decimals), tokenIn.Symbol,
		)
	}

	return executePlan(ctx, r, plan)
}
