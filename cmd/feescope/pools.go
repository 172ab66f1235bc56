package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"feeScope/internal/config"
	"feeScope/internal/model"
)

type poolView struct {
	Type            model.PoolType `json:"type"`
	ID              string         `json:"id,omitempty"`
	Address         string         `json:"address"`
	Tokens          []string       `json:"tokens"`
	MaxInRatio      uint64         `json:"maxInRatio"`
	MaxOutRatio     uint64         `json:"maxOutRatio"`
	MinTradingLimit string         `json:"minTradingLimit,omitempty"`
}

func runPools(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPools(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	filter, err := model.ParsePoolTypes(cfg.PoolTypes)
	if err != nil {
		return err
	}

	svc, err := loadService(cfg.Snapshot, logger)
	if err != nil {
		return err
	}

	pools, err := svc.GetPools(filter)
	if err != nil {
		return err
	}

	views := make([]poolView, 0, len(pools))
	for _, pool := range pools {
		base := pool.Base()
		view := poolView{
			Type:        base.Type,
			ID:          base.ID,
			Address:     base.Address,
			Tokens:      pool.TokenIDs(),
			MaxInRatio:  base.MaxInRatio,
			MaxOutRatio: base.MaxOutRatio,
		}
		if base.MinTradingLimit != nil {
			view.MinTradingLimit = base.MinTradingLimit.String()
		}
		views = append(views, view)
	}

	logger.Info("pools listed",
		zap.String("snapshot", cfg.Snapshot),
		zap.Strings("poolTypes", cfg.PoolTypes),
		zap.Int("pools", len(views)),
		zap.Int("rejected", len(svc.Snapshot().Rejected)),
	)

	return writeJSON(os.Stdout, views)
}
