// Package snapshot turns a raw snapshot document into validated domain entities.
package snapshot

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"feeScope/internal/model"
	"feeScope/internal/oracle"
)

var (
	// ErrValidation marks a malformed or missing snapshot section. It aborts
	// normalization of the whole snapshot.
	ErrValidation = errors.New("snapshot: validation failed")

	// ErrPoolShareAssetMissing is returned when a stable pool's own share
	// asset is not in the asset list.
	ErrPoolShareAssetMissing = errors.New("snapshot: pool share asset missing")

	// ErrInvalidPeg is returned when a stable pool peg source resolves to a
	// ratio that is not strictly positive.
	ErrInvalidPeg = errors.New("snapshot: invalid peg")
)

// Rejection records a pool record that was excluded during normalization.
type Rejection struct {
	Section model.PoolType
	ID      string
	Address string
	Err     error
}

// Snapshot is the typed, immutable view of one raw snapshot. Nothing in it is
// modified after Normalize returns; a refresh builds a new Snapshot. Pool
// pointers handed out by Pools and by the pool clients are shared with every
// reader of the snapshot and must be treated as read-only.
type Snapshot struct {
	Assets          []model.Asset
	ConstantProduct []*model.ConstantProductPool
	Weighted        []*model.WeightedPool
	Stable          []*model.StablePool
	HubAsset        []*model.HubAssetPool
	LendingWrapped  []*model.LendingWrappedPool
	Constants       model.Constants
	OracleEntries   []model.OracleEntry
	MmOracleEntries []model.MmOracleEntry
	Oracle          *oracle.Index
	Meta            model.Meta
	Rejected        []Rejection
}

// Pools returns the pools of one family as the closed Pool variant.
func (s *Snapshot) Pools(poolType model.PoolType) []model.Pool {
	var out []model.Pool
	switch poolType {
	case model.PoolTypeConstantProduct:
		for _, p := range s.ConstantProduct {
			out = append(out, p)
		}
	case model.PoolTypeWeighted:
		for _, p := range s.Weighted {
			out = append(out, p)
		}
	case model.PoolTypeStable:
		for _, p := range s.Stable {
			out = append(out, p)
		}
	case model.PoolTypeHubAsset:
		for _, p := range s.HubAsset {
			out = append(out, p)
		}
	case model.PoolTypeLendingWrapped:
		for _, p := range s.LendingWrapped {
			out = append(out, p)
		}
	}
	return out
}

// Asset returns the snapshot asset with the given id.
func (s *Snapshot) Asset(id string) (model.Asset, bool) {
	for _, asset := range s.Assets {
		if asset.ID == id {
			return asset, true
		}
	}
	return model.Asset{}, false
}

// Normalize validates raw and builds the typed snapshot.
//
// A missing section (assets, constants, meta, oracle entries) or a pool
// without tokens fails the whole snapshot with ErrValidation. Any other pool
// level failure, including an unknown pool type tag, excludes only that pool;
// it is logged and listed in Snapshot.Rejected.
func Normalize(raw model.RawSnapshot, logger *zap.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(raw.Assets) == 0 {
		return nil, fmt.Errorf("%w: asset list is empty", ErrValidation)
	}
	if raw.Constants == nil {
		return nil, fmt.Errorf("%w: constants missing", ErrValidation)
	}
	if raw.Meta == nil {
		return nil, fmt.Errorf("%w: meta missing", ErrValidation)
	}
	if raw.EmaOracleEntries == nil {
		return nil, fmt.Errorf("%w: ema oracle entries missing", ErrValidation)
	}

	assets, err := normalizeAssets(raw.Assets)
	if err != nil {
		return nil, err
	}
	constants, err := normalizeConstants(*raw.Constants)
	if err != nil {
		return nil, err
	}
	meta, err := normalizeMeta(*raw.Meta)
	if err != nil {
		return nil, err
	}
	entries, err := normalizeOracleEntries(raw.EmaOracleEntries)
	if err != nil {
		return nil, err
	}
	mmEntries, err := normalizeMmOracleEntries(raw.MmOracleEntries)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Assets:          assets,
		Constants:       constants,
		OracleEntries:   entries,
		MmOracleEntries: mmEntries,
		Oracle:          oracle.Build(entries),
		Meta:            meta,
	}
	n := &normalizer{snap: snap, logger: logger}

	for _, rp := range raw.Pools.ConstantProduct {
		pool, err := n.constantProduct(rp)
		if err := n.settle(model.PoolTypeConstantProduct, rp, err); err != nil {
			return nil, err
		}
		if pool != nil {
			snap.ConstantProduct = append(snap.ConstantProduct, pool)
		}
	}
	for _, rp := range raw.Pools.Weighted {
		pool, err := n.weighted(rp)
		if err := n.settle(model.PoolTypeWeighted, rp.RawPool, err); err != nil {
			return nil, err
		}
		if pool != nil {
			snap.Weighted = append(snap.Weighted, pool)
		}
	}
	for _, rp := range raw.Pools.Stable {
		pool, err := n.stable(rp)
		if err := n.settle(model.PoolTypeStable, rp.RawPool, err); err != nil {
			return nil, err
		}
		if pool != nil {
			snap.Stable = append(snap.Stable, pool)
		}
	}
	for _, rp := range raw.Pools.HubAsset {
		pool, err := n.hubAsset(rp)
		if err := n.settle(model.PoolTypeHubAsset, rp.RawPool, err); err != nil {
			return nil, err
		}
		if pool != nil {
			snap.HubAsset = append(snap.HubAsset, pool)
		}
	}
	for _, rp := range raw.Pools.LendingWrapped {
		pool, err := n.lendingWrapped(rp)
		if err := n.settle(model.PoolTypeLendingWrapped, rp, err); err != nil {
			return nil, err
		}
		if pool != nil {
			snap.LendingWrapped = append(snap.LendingWrapped, pool)
		}
	}

	logger.Debug("snapshot normalized",
		zap.Uint64("paraBlock", meta.ParaBlockNumber),
		zap.Int("assets", len(assets)),
		zap.Int("oracleEntries", len(entries)),
		zap.Int("rejected", len(snap.Rejected)),
	)
	return snap, nil
}

type normalizer struct {
	snap   *Snapshot
	logger *zap.Logger
}

// settle turns a pool decoration error into either a fatal error or a rejection.
func (n *normalizer) settle(section model.PoolType, rp model.RawPool, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) {
		return fmt.Errorf("%s pool %s: %w", section, rp.Address, err)
	}
	n.logger.Warn("pool excluded",
		zap.String("pool", rp.Address),
		zap.String("type", rp.Type),
		zap.String("section", section.String()),
		zap.Error(err),
	)
	n.snap.Rejected = append(n.snap.Rejected, Rejection{
		Section: section,
		ID:      rp.ID,
		Address: rp.Address,
		Err:     err,
	})
	return nil
}
