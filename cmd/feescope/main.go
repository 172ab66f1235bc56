package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"feeScope/internal/service"
	"feeScope/internal/snapshot"
)

func main() {
	root := &cobra.Command{
		Use:          "feescope",
		Short:        "Offline DEX fee calculator over ledger snapshots",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	poolsCmd := &cobra.Command{
		Use:   "pools",
		Short: "List the pools of a snapshot",
		RunE:  runPools,
	}

	poolsCmd.Flags().String("snapshot", "./data/snapshot.json", "snapshot JSON path")
	poolsCmd.Flags().StringSlice("pool-type", nil, "pool types to list (comma-separated), empty means all")
	poolsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(poolsCmd)

	feesCmd := &cobra.Command{
		Use:   "fees",
		Short: "Quote the fees of one trade on one pool",
		RunE:  runFees,
	}

	feesCmd.Flags().String("snapshot", "./data/snapshot.json", "snapshot JSON path")
	feesCmd.Flags().String("pool-type", "", "pool type (ConstantProduct, Weighted, Stable, HubAsset, LendingWrapped)")
	feesCmd.Flags().String("pool-address", "", "pool address")
	feesCmd.Flags().String("asset-in", "", "asset sold")
	feesCmd.Flags().String("asset-out", "", "asset bought")
	feesCmd.Flags().String("balance-in", "", "current pool balance of asset-in (smallest unit)")
	feesCmd.Flags().String("balance-out", "", "current pool balance of asset-out (smallest unit)")
	feesCmd.Flags().String("out", "", "optional JSONL path to append the quote to")
	feesCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to upsert the quote into")
	feesCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(feesCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-read a snapshot file and record quotes for every new block",
		RunE:  runWatch,
	}

	watchCmd.Flags().String("snapshot", "./data/snapshot.json", "snapshot JSON path")
	watchCmd.Flags().StringSlice("quote", nil, "quote requests type:address:assetIn:assetOut[:balanceIn:balanceOut]")
	watchCmd.Flags().Duration("interval", 12*time.Second, "poll interval")
	watchCmd.Flags().Bool("once", false, "run a single pass and exit")
	watchCmd.Flags().String("out", "./data/fee_quotes.jsonl", "output JSONL path, empty disables")
	watchCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	watchCmd.Flags().String("state-file", "./data/watch_state.json", "checkpoint file, ignored when pg-dsn is set")
	watchCmd.Flags().String("state-name", "watch", "checkpoint name in Postgres")
	watchCmd.Flags().Int("max-retries", 3, "maximum snapshot load retries")
	watchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	watchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(watchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
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

func loadService(path string, logger *zap.Logger) (*service.Service, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	raw, err := snapshot.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return service.NewFromRaw(raw, logger)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
