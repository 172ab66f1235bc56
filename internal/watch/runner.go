// Package watch re-reads a snapshot file on an interval and records fee
// quotes for every newly published block.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"feeScope/internal/model"
	"feeScope/internal/service"
	"feeScope/internal/snapshot"
	"feeScope/internal/storage"
)

// RunConfig holds runtime settings for the watcher.
type RunConfig struct {
	SnapshotPath string
	Requests     []Request
	Interval     time.Duration
	Once         bool
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner polls the snapshot file, publishes it through a Holder and writes
// quotes to storage.
type Runner struct {
	cfg     RunConfig
	holder  *service.Holder
	storage storage.Storage
	state   StateStore
	logger  *zap.Logger
	now     func() time.Time
	read    func(path string) (model.RawSnapshot, error)
}

// NewRunner builds a Runner with its dependencies. A nil state store quotes
// every published block.
func NewRunner(cfg RunConfig, holder *service.Holder, sink storage.Storage, state StateStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if state == nil {
		state = &FileStateStore{}
	}
	return &Runner{
		cfg:     cfg,
		holder:  holder,
		storage: sink,
		state:   state,
		logger:  logger,
		now:     time.Now,
		read:    snapshot.LoadFile,
	}
}

// Run executes the watch loop until ctx is done, or once when Once is set.
// Failed ticks are logged and retried on the next interval.
func (r *Runner) Run(ctx context.Context) error {
	if r.holder == nil {
		return fmt.Errorf("holder is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.cfg.SnapshotPath == "" {
		return fmt.Errorf("snapshot path is required")
	}
	if len(r.cfg.Requests) == 0 {
		return fmt.Errorf("at least one quote request is required")
	}
	if !r.cfg.Once && r.cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	for {
		written, err := r.Tick(ctx)
		if r.cfg.Once {
			return err
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("watch tick failed", zap.Error(err))
		} else {
			r.logger.Debug("watch tick", zap.Int("quotes", written))
		}

		timer := time.NewTimer(r.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Tick loads the snapshot once and, if its block is past the checkpoint,
// quotes every request. It returns the number of quotes written.
func (r *Runner) Tick(ctx context.Context) (int, error) {
	raw, err := r.loadSnapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	svc, err := r.holder.Refresh(raw)
	if err != nil {
		if errors.Is(err, service.ErrStaleSnapshot) {
			return 0, nil
		}
		return 0, err
	}
	meta := svc.Snapshot().Meta

	last, ok, err := r.state.Load(ctx)
	if err != nil {
		return 0, err
	}
	if ok && meta.ParaBlockNumber <= last {
		r.logger.Debug("block already quoted", zap.Uint64("paraBlock", meta.ParaBlockNumber), zap.Uint64("lastQuoted", last))
		return 0, nil
	}

	quotes := r.quote(svc, meta)
	if err := r.storage.PutQuoteBatch(quotes); err != nil {
		return 0, fmt.Errorf("store quotes: %w", err)
	}
	if err := r.state.Save(ctx, meta.ParaBlockNumber); err != nil {
		return 0, err
	}

	r.logger.Info("quotes written",
		zap.Uint64("paraBlock", meta.ParaBlockNumber),
		zap.Int("quotes", len(quotes)),
		zap.Int("requests", len(r.cfg.Requests)),
	)
	return len(quotes), nil
}

func (r *Runner) quote(svc *service.Service, meta model.Meta) []storage.FeeQuote {
	now := r.now()
	quotes := make([]storage.FeeQuote, 0, len(r.cfg.Requests))
	for _, req := range r.cfg.Requests {
		result, err := svc.GetPoolFees(req.Pair, req.Ref)
		if err != nil {
			r.logger.Warn("fee quote failed",
				zap.Error(err),
				zap.String("poolType", string(req.Ref.Type)),
				zap.String("pool", req.Ref.Address),
				zap.String("assetIn", req.Pair.AssetIn),
				zap.String("assetOut", req.Pair.AssetOut),
			)
			continue
		}
		quote, err := storage.NewFeeQuote(meta, req.Ref, req.Pair, result, now)
		if err != nil {
			r.logger.Warn("fee quote rejected", zap.Error(err), zap.String("pool", req.Ref.Address))
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}
