// Package poolclient exposes the pools of one family and prices trades on them.
package poolclient

import (
	"errors"
	"fmt"

	"feeScope/internal/model"
	"feeScope/internal/snapshot"
)

// ErrPoolNotFound is returned when a fee query names an address the client does not list.
var ErrPoolNotFound = errors.New("poolclient: pool not found")

// Client is the capability set every pool family offers.
type Client interface {
	// IsSupported reports whether the snapshot holds any pool of this family.
	IsSupported() bool
	PoolType() model.PoolType
	// Pools lists the tradable pools against the client's asset registry.
	// The pools are shared with the snapshot and are read-only.
	Pools() []model.Pool
	// Fees quotes the fees of trading pair on the pool at address.
	Fees(pair model.PoolPair, address string) (model.FeeResult, error)
	// WithAssets returns a client over the same snapshot with a new registry.
	// The receiver is left unchanged.
	WithAssets(assets []model.Asset) Client
}

// New builds the client for poolType.
func New(poolType model.PoolType, snap *snapshot.Snapshot, assets []model.Asset) (Client, error) {
	switch poolType {
	case model.PoolTypeConstantProduct:
		return NewConstantProduct(snap, assets), nil
	case model.PoolTypeWeighted:
		return NewWeighted(snap, assets), nil
	case model.PoolTypeStable:
		return NewStable(snap, assets), nil
	case model.PoolTypeHubAsset:
		return NewHubAsset(snap, assets), nil
	case model.PoolTypeLendingWrapped:
		return NewLendingWrapped(snap, assets), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownPoolType, poolType)
	}
}

// base holds what every client reads: the snapshot and a registry keyed by id.
type base struct {
	snap     *snapshot.Snapshot
	assets   []model.Asset
	registry map[string]model.Asset
	poolType model.PoolType
}

func newBase(poolType model.PoolType, snap *snapshot.Snapshot, assets []model.Asset) base {
	owned := append([]model.Asset(nil), assets...)
	registry := make(map[string]model.Asset, len(owned))
	for _, asset := range owned {
		registry[asset.ID] = asset
	}
	return base{snap: snap, assets: owned, registry: registry, poolType: poolType}
}

func (b *base) PoolType() model.PoolType {
	return b.poolType
}

func (b *base) IsSupported() bool {
	return len(b.snap.Pools(b.poolType)) > 0
}

func (b *base) Pools() []model.Pool {
	return b.snap.Pools(b.poolType)
}

// inRegistry reports whether every token of pool is a registry asset.
func (b *base) inRegistry(pool model.Pool) bool {
	for _, id := range pool.TokenIDs() {
		if _, ok := b.registry[id]; !ok {
			return false
		}
	}
	return true
}

// asset looks id up in the registry first, then in the snapshot.
func (b *base) asset(id string) (model.Asset, bool) {
	if asset, ok := b.registry[id]; ok {
		return asset, true
	}
	return b.snap.Asset(id)
}

func findPool(pools []model.Pool, poolType model.PoolType, address string) (model.Pool, error) {
	for _, pool := range pools {
		if pool.Base().Address == address {
			return pool, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrPoolNotFound, poolType, address)
}
