package service

import (
	"errors"
	"math/big"
	"sort"
	"sync"
	"testing"

	"feeScope/internal/model"
	"feeScope/internal/poolclient"
	"feeScope/internal/snapshot"
	"feeScope/internal/snapshot/snapshottest"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewFromRaw(snapshottest.Raw(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func addresses(pools []model.Pool) []string {
	out := make([]string, 0, len(pools))
	for _, pool := range pools {
		out = append(out, pool.Base().Address)
	}
	sort.Strings(out)
	return out
}

func TestGetPools(t *testing.T) {
	svc := newService(t)

	all, err := svc.GetPools(nil)
	if err != nil {
		t.Fatalf("get pools: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 pools, got %d", len(all))
	}

	got, err := svc.GetPools([]model.PoolType{model.PoolTypeHubAsset, model.PoolTypeStable, model.PoolTypeHubAsset})
	if err != nil {
		t.Fatalf("get pools: %v", err)
	}
	want := []string{snapshottest.HubAddress, snapshottest.StableAddress}
	sort.Strings(want)
	if gotAddrs := addresses(got); len(gotAddrs) != 2 || gotAddrs[0] != want[0] || gotAddrs[1] != want[1] {
		t.Fatalf("pools = %v, want %v", gotAddrs, want)
	}

	if _, err := svc.GetPools([]model.PoolType{"Curve"}); !errors.Is(err, ErrPoolTypeNotFound) {
		t.Fatalf("expected ErrPoolTypeNotFound, got %v", err)
	}
}

func TestGetPoolFeesDispatch(t *testing.T) {
	svc := newService(t)
	pair := model.PoolPair{
		AssetIn:    snapshottest.DOT,
		AssetOut:   snapshottest.SystemAssetID,
		BalanceIn:  big.NewInt(1),
		BalanceOut: big.NewInt(1),
	}

	cases := []struct {
		ref  model.PoolRef
		want model.FeeResult
	}{
		{ref: model.PoolRef{Type: model.PoolTypeConstantProduct, Address: snapshottest.ConstantProductAddress}, want: model.FeeResult{ExchangeFee: "0.3"}},
		{ref: model.PoolRef{Type: model.PoolTypeWeighted, Address: snapshottest.WeightedAddress}, want: model.FeeResult{ExchangeFee: "0.2", RepayFee: "20"}},
		{ref: model.PoolRef{Type: model.PoolTypeStable, Address: snapshottest.StableAddress}, want: model.FeeResult{Fee: "0.02"}},
		{ref: model.PoolRef{Type: model.PoolTypeHubAsset, Address: snapshottest.HubAddress}, want: model.FeeResult{AssetFee: "0.15", ProtocolFee: "0.05", Min: "0.2", Max: "5.1"}},
		{ref: model.PoolRef{Type: model.PoolTypeLendingWrapped, Address: snapshottest.LendingAddress}, want: model.FeeResult{}},
	}
	for _, tc := range cases {
		got, err := svc.GetPoolFees(pair, tc.ref)
		if err != nil {
			t.Fatalf("%s: %v", tc.ref.Type, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.ref.Type, got, tc.want)
		}
	}

	if _, err := svc.GetPoolFees(pair, model.PoolRef{Type: "Curve", Address: "x"}); !errors.Is(err, ErrPoolTypeNotFound) {
		t.Fatalf("expected ErrPoolTypeNotFound, got %v", err)
	}
	if _, err := svc.GetPoolFees(pair, model.PoolRef{Type: model.PoolTypeStable, Address: "x"}); !errors.Is(err, poolclient.ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	svc := newService(t)
	if !svc.IsRegistrySynced() {
		t.Fatalf("registry should be synced")
	}
	if len(svc.Assets()) != 6 {
		t.Fatalf("expected 6 registry assets, got %d", len(svc.Assets()))
	}

	empty := svc.WithAssets(nil)
	if empty.IsRegistrySynced() {
		t.Fatalf("empty registry should not be synced")
	}
	pools, err := empty.GetPools([]model.PoolType{model.PoolTypeConstantProduct})
	if err != nil {
		t.Fatalf("get pools: %v", err)
	}
	if len(pools) != 0 {
		t.Fatalf("constant product pools need registered assets")
	}
	pools, err = svc.GetPools([]model.PoolType{model.PoolTypeConstantProduct})
	if err != nil || len(pools) != 1 {
		t.Fatalf("original service changed: %d pools, %v", len(pools), err)
	}

	assets := svc.Assets()
	assets[0].Symbol = "changed"
	if svc.Assets()[0].Symbol == "changed" {
		t.Fatalf("Assets must return a copy")
	}
}

func TestFeesSurviveRawRoundTrip(t *testing.T) {
	svc := newService(t)
	again, err := NewFromRaw(snapshot.ToRaw(svc.Snapshot()), nil)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	pair := model.PoolPair{
		AssetIn:    snapshottest.SystemAssetID,
		AssetOut:   snapshottest.DOT,
		BalanceIn:  big.NewInt(50_000_000),
		BalanceOut: big.NewInt(4_000_000_000),
	}
	all, err := svc.GetPools(nil)
	if err != nil {
		t.Fatalf("get pools: %v", err)
	}
	for _, pool := range all {
		ref := model.PoolRef{Type: pool.Base().Type, Address: pool.Base().Address}
		want, err := svc.GetPoolFees(pair, ref)
		if err != nil {
			t.Fatalf("%s: %v", ref.Type, err)
		}
		got, err := again.GetPoolFees(pair, ref)
		if err != nil {
			t.Fatalf("%s after round trip: %v", ref.Type, err)
		}
		if got != want {
			t.Fatalf("%s: %+v != %+v", ref.Type, got, want)
		}
	}
}

func TestHolderPublishByReplacement(t *testing.T) {
	holder := NewHolder(nil, nil)
	if holder.Load() != nil {
		t.Fatalf("empty holder should load nil")
	}

	first, err := holder.Refresh(snapshottest.Raw())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if holder.Load() != first {
		t.Fatalf("refresh should publish the new service")
	}

	older := snapshottest.Raw()
	older.Meta.ParaBlockNumber = "999"
	if _, err := holder.Refresh(older); !errors.Is(err, ErrStaleSnapshot) {
		t.Fatalf("expected ErrStaleSnapshot, got %v", err)
	}
	if holder.Load() != first || !errors.Is(holder.LastError(), ErrStaleSnapshot) {
		t.Fatalf("failed refresh must keep the published service")
	}

	broken := snapshottest.Raw()
	broken.Assets = nil
	if _, err := holder.Refresh(broken); !errors.Is(err, snapshot.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	newer := snapshottest.Raw()
	newer.Meta.ParaBlockNumber = "1001"
	second, err := holder.Refresh(newer)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if holder.Load() != second || holder.LastError() != nil {
		t.Fatalf("newer snapshot should be published")
	}
	if first.Snapshot().Meta.ParaBlockNumber != snapshottest.ParaBlock {
		t.Fatalf("replaced service must stay intact")
	}
}

func TestHolderConcurrentReaders(t *testing.T) {
	svc := newService(t)
	holder := NewHolder(svc, nil)
	ref := model.PoolRef{Type: model.PoolTypeStable, Address: snapshottest.StableAddress}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := holder.Load().GetPoolFees(model.PoolPair{}, ref); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		raw := snapshottest.Raw()
		raw.Meta.ParaBlockNumber = model.NumericFromUint64(uint64(1_001 + i))
		if _, err := holder.Refresh(raw); err != nil {
			t.Fatalf("refresh: %v", err)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("reader: %v", err)
	}
}
