package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"liquidityDesk/internal/model"
	"liquidityDesk/internal/ticks"
)

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect a pool's price, liquidity, and accumulated fees",
		RunE:  runPool,
	}

	cmd.Flags().String("token-a", "", "first token (symbol or address)")
	cmd.Flags().String("token-b", "", "second token (symbol or address)")
	cmd.Flags().Float64("fee", 0.3, "pool fee percent")
	cmd.Flags().Float64("spacing", 0.02, "pool tick spacing percent")

	return cmd
}

func runPool(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	r, err := newRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer r.close()

	tokenARef, _ := cmd.Flags().GetString("token-a")
	tokenBRef, _ := cmd.Flags().GetString("token-b")
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

	spacing, err := ticks.SpacingPercentToExponent(spacingPct)
	if err != nil {
		return err
	}
	key, order := model.NewPoolKey(
		tokenA.Addr(), tokenB.Addr(),
		ticks.FeePercentToFixed(feePct), spacing, common.Address{},
	)

	sqrt, err := r.client.PoolPrice(ctx, key)
	if err != nil {
		return err
	}
	liquidity, err := r.client.PoolLiquidity(ctx, key)
	if err != nil {
		return err
	}
	fees0, fees1, err := r.client.PoolFeesPerLiquidity(ctx, key)
	if err != nil {
		return err
	}

	decimals0, decimals1 := tokenA.Decimals, tokenB.Decimals
	symbol0, symbol1 := tokenA.Symbol, tokenB.Symbol
	if !order.FirstIsToken0() {
		decimals0, decimals1 = decimals1, decimals0
		symbol0, symbol1 = symbol1, symbol0
	}

	price := ticks.PriceFromSqrtRatio(sqrt, decimals0, decimals1)
	tick := ticks.TickFromSqrtRatio(sqrt)

	fmt.Printf("pool %s/%s fee=%v%% spacing=%v%%\n", symbol0, symbol1, feePct, spacingPct)
	fmt.Printf("  price: %g %s per %s (tick %d)\n", price, symbol1, symbol0, tick)
	fmt.Printf("  sqrt ratio: %s\n", sqrt.Dec())
	fmt.Printf("  liquidity: %s\n", liquidity)
	fmt.Printf("  fees/liquidity: %s %s, %s %s\n", fees0, symbol0, fees1, symbol1)

	return nil
}
