package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"feeScope/internal/config"
	"feeScope/internal/service"
	"feeScope/internal/storage"
	"feeScope/internal/storage/postgres"
	"feeScope/internal/watch"
)

func runWatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	requests, err := watch.ParseRequests(cfg.Quotes)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return fmt.Errorf("at least one --quote is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sinks storage.Multi
	if cfg.Out != "" {
		jsonl := storage.NewJsonlStorage(cfg.Out)
		defer jsonl.Close()
		sinks = append(sinks, jsonl)
	}

	var state watch.StateStore = &watch.FileStateStore{Path: cfg.StateFile}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
		state = &watch.DBStateStore{Store: store, Name: cfg.StateName}
	}
	if len(sinks) == 0 {
		return fmt.Errorf("an output path or pg dsn is required")
	}

	runner := watch.NewRunner(watch.RunConfig{
		SnapshotPath: cfg.Snapshot,
		Requests:     requests,
		Interval:     cfg.Interval,
		Once:         cfg.Once,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, service.NewHolder(nil, logger), sinks, state, logger)

	logger.Info("watch start",
		zap.String("snapshot", cfg.Snapshot),
		zap.Int("requests", len(requests)),
		zap.Duration("interval", cfg.Interval),
		zap.Bool("once", cfg.Once),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.String("state_file", cfg.StateFile),
	)

	return runner.Run(ctx)
}
