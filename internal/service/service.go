// Package service owns the pool clients of one snapshot and routes queries to them.
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"feeScope/internal/model"
	"feeScope/internal/poolclient"
	"feeScope/internal/snapshot"
)

// ErrPoolTypeNotFound is returned for a query on a pool type no client serves.
var ErrPoolTypeNotFound = errors.New("service: pool type not found")

// Service answers pool and fee queries against one immutable snapshot.
// It is safe for concurrent use; WithAssets returns a new Service.
type Service struct {
	snap    *snapshot.Snapshot
	assets  []model.Asset
	clients []poolclient.Client
	logger  *zap.Logger
}

// New builds a service over snap with the registry derived from its assets.
func New(snap *snapshot.Snapshot, logger *zap.Logger) (*Service, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return build(snap, snapshot.RegistryAssets(snap.Assets), logger)
}

// NewFromRaw normalizes raw and builds a service over it.
func NewFromRaw(raw model.RawSnapshot, logger *zap.Logger) (*Service, error) {
	snap, err := snapshot.Normalize(raw, logger)
	if err != nil {
		return nil, err
	}
	return New(snap, logger)
}

func build(snap *snapshot.Snapshot, assets []model.Asset, logger *zap.Logger) (*Service, error) {
	clients := make([]poolclient.Client, 0, len(model.AllPoolTypes))
	for _, poolType := range model.AllPoolTypes {
		client, err := poolclient.New(poolType, snap, assets)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	logger.Debug("pool service ready",
		zap.Uint64("paraBlock", snap.Meta.ParaBlockNumber),
		zap.Int("registryAssets", len(assets)),
	)
	return &Service{snap: snap, assets: assets, clients: clients, logger: logger}, nil
}

// WithAssets returns a service over the same snapshot with a new registry.
// The receiver and its clients are left untouched.
func (s *Service) WithAssets(assets []model.Asset) *Service {
	owned := append([]model.Asset(nil), assets...)
	clients := make([]poolclient.Client, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client.WithAssets(owned))
	}
	return &Service{snap: s.snap, assets: owned, clients: clients, logger: s.logger}
}

// Snapshot returns the snapshot the service reads.
func (s *Service) Snapshot() *snapshot.Snapshot {
	return s.snap
}

// Assets returns a copy of the registry.
func (s *Service) Assets() []model.Asset {
	return append([]model.Asset(nil), s.assets...)
}

// IsRegistrySynced reports whether the registry holds any asset.
func (s *Service) IsRegistrySynced() bool {
	return len(s.assets) > 0
}

// GetPools lists the pools of the requested types. An empty filter means
// every supported type.
func (s *Service) GetPools(filter []model.PoolType) ([]model.Pool, error) {
	var pools []model.Pool
	if len(filter) == 0 {
		for _, client := range s.clients {
			if client.IsSupported() {
				pools = append(pools, client.Pools()...)
			}
		}
		return pools, nil
	}

	seen := make(map[model.PoolType]bool, len(filter))
	for _, poolType := range filter {
		if seen[poolType] {
			continue
		}
		seen[poolType] = true
		client, err := s.client(poolType)
		if err != nil {
			return nil, err
		}
		if client.IsSupported() {
			pools = append(pools, client.Pools()...)
		}
	}
	return pools, nil
}

// GetPoolFees quotes pair on the pool named by ref.
func (s *Service) GetPoolFees(pair model.PoolPair, ref model.PoolRef) (model.FeeResult, error) {
	client, err := s.client(ref.Type)
	if err != nil {
		return model.FeeResult{}, err
	}
	return client.Fees(pair, ref.Address)
}

func (s *Service) client(poolType model.PoolType) (poolclient.Client, error) {
	for _, client := range s.clients {
		if client.PoolType() == poolType {
			return client, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPoolTypeNotFound, poolType)
}
