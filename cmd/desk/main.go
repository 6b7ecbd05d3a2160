package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"liquidityDesk/internal/chain"
	"liquidityDesk/internal/config"
	"liquidityDesk/internal/dex"
	"liquidityDesk/internal/index"
	"liquidityDesk/internal/position"
	"liquidityDesk/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:          "desk",
		Short:        "Concentrated-liquidity AMM trading desk",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "chain RPC URL")
	root.PersistentFlags().String("core", "", "core AMM contract address")
	root.PersistentFlags().String("index-url", "", "position index base URL")
	root.PersistentFlags().String("owner", "", "owner address")
	root.PersistentFlags().String("tokens", "", "extra symbol=address mappings (comma-separated)")
	root.PersistentFlags().Float64("slippage", 0.5, "slippage tolerance percent")
	root.PersistentFlags().String("pg-dsn", "", "Postgres DSN for the execution store")
	root.PersistentFlags().String("journal", "./data/executions.jsonl", "execution journal JSONL path")
	root.PersistentFlags().Int("max-retries", 5, "maximum retry attempts for index calls")
	root.PersistentFlags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	root.PersistentFlags().Bool("dry-run", false, "print the plan instead of executing")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newSwapCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newWithdrawCmd())
	root.AddCommand(newPositionsCmd())
	root.AddCommand(newPoolCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime bundles the collaborators a command needs.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	client   *chain.Client
	resolver *dex.Resolver
	indexAPI *index.Client
	planner  *position.Planner
	journal  storage.Journal
}

func newRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	if !common.IsHexAddress(cfg.CoreAddress) {
		return nil, fmt.Errorf("core contract address is required")
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL, common.HexToAddress(cfg.CoreAddress))
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}

	known := make(map[string]common.Address, len(cfg.Tokens))
	for symbol, address := range cfg.Tokens {
		if !common.IsHexAddress(address) {
			client.Close()
			return nil, fmt.Errorf("invalid address for token %s: %s", symbol, address)
		}
		known[symbol] = common.HexToAddress(address)
	}
	resolver := dex.NewResolver(client, known, logger)

	var indexAPI *index.Client
	if cfg.IndexURL != "" {
		indexAPI = index.NewClient(cfg.IndexURL, &http.Client{Timeout: 15 * time.Second}, cfg.MaxRetries, cfg.RetryBackoff, logger)
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		resolver: resolver,
		indexAPI: indexAPI,
		planner:  position.NewPlanner(client, indexAPI, logger),
		journal:  storage.NewJsonlJournal(cfg.Journal),
	}, nil
}

func (r *runtime) close() {
	if r.client != nil {
		r.client.Close()
	}
	if r.logger != nil {
		r.logger.Sync()
	}
}

func (r *runtime) owner() (common.Address, error) {
	if !common.IsHexAddress(r.cfg.Owner) {
		return common.Address{}, fmt.Errorf("owner address is required")
	}
	return common.HexToAddress(r.cfg.Owner), nil
}

func (r *runtime) requireIndex() (*index.Client, error) {
	if r.indexAPI == nil {
		return nil, fmt.Errorf("index-url is required for this command")
	}
	return r.indexAPI, nil
}

// newWriter builds the transaction writer. The signing key comes from the
// DESK_PRIVATE_KEY environment variable; key custody is otherwise outside
// this tool.
func (r *runtime) newWriter(ctx context.Context) (*chain.Writer, common.Address, error) {
	keyHex := os.Getenv("DESK_PRIVATE_KEY")
	if keyHex == "" {
		return nil, common.Address{}, fmt.Errorf("DESK_PRIVATE_KEY is required to execute (use --dry-run to preview)")
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("parse private key: %w", err)
	}
	chainID, err := r.client.ChainID(ctx)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("get chain id: %w", err)
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	writer := chain.NewWriter(r.client, common.HexToAddress(r.cfg.CoreAddress), from, keySigner(key, chainID), r.logger)
	return writer, from, nil
}

func keySigner(key *ecdsa.PrivateKey, chainID *big.Int) bind.SignerFn {
	signer := types.LatestSignerForChainID(chainID)
	return func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if address != crypto.PubkeyToAddress(key.PublicKey) {
			return nil, fmt.Errorf("unknown signing address %s", address.Hex())
		}
		return types.SignTx(tx, signer, key)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
