package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"feeScope/internal/config"
	"feeScope/internal/model"
	"feeScope/internal/storage"
	"feeScope/internal/storage/postgres"
)

func runFees(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFees(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PoolAddress == "" {
		return fmt.Errorf("pool address is required")
	}
	if cfg.AssetIn == "" || cfg.AssetOut == "" {
		return fmt.Errorf("asset-in and asset-out are required")
	}
	poolType, err := model.ParsePoolType(cfg.PoolType)
	if err != nil {
		return err
	}
	balanceIn, err := parseOptionalBalance(cfg.BalanceIn)
	if err != nil {
		return fmt.Errorf("balance-in: %w", err)
	}
	balanceOut, err := parseOptionalBalance(cfg.BalanceOut)
	if err != nil {
		return fmt.Errorf("balance-out: %w", err)
	}

	svc, err := loadService(cfg.Snapshot, logger)
	if err != nil {
		return err
	}

	ref := model.PoolRef{Type: poolType, Address: cfg.PoolAddress}
	pair := model.PoolPair{
		AssetIn:    cfg.AssetIn,
		AssetOut:   cfg.AssetOut,
		BalanceIn:  balanceIn,
		BalanceOut: balanceOut,
	}
	result, err := svc.GetPoolFees(pair, ref)
	if err != nil {
		return err
	}

	quote, err := storage.NewFeeQuote(svc.Snapshot().Meta, ref, pair, result, time.Now())
	if err != nil {
		return err
	}

	if cfg.Out != "" {
		sink := storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutQuoteBatch([]storage.FeeQuote{quote}); err != nil {
			sink.Close()
			return err
		}
		if err := sink.Close(); err != nil {
			return err
		}
	}

	if cfg.PGDSN != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := store.UpsertFeeQuotes(ctx, []storage.FeeQuote{quote}); err != nil {
			return fmt.Errorf("store quote: %w", err)
		}
	}

	logger.Info("fees quoted",
		zap.String("poolType", string(poolType)),
		zap.String("pool", cfg.PoolAddress),
		zap.String("assetIn", cfg.AssetIn),
		zap.String("assetOut", cfg.AssetOut),
		zap.Uint64("paraBlock", quote.ParaBlockNumber),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	return writeJSON(os.Stdout, result)
}

func parseOptionalBalance(input string) (*big.Int, error) {
	if input == "" {
		return nil, nil
	}
	value, ok := new(big.Int).SetString(input, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid balance %q", input)
	}
	return value, nil
}
