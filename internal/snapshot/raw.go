package snapshot

import (
	"github.com/ethereum/go-ethereum/common"

	"feeScope/internal/model"
)

// ToRaw converts s back into the raw document shape. Derived values
// (weights, amplification, updated pegs, the share token) are dropped and
// their inputs kept, so normalizing the result reproduces s. Rejected pools
// are not included.
func ToRaw(s *Snapshot) model.RawSnapshot {
	raw := model.RawSnapshot{
		Assets:           make([]model.RawAsset, 0, len(s.Assets)),
		Constants:        rawConstants(s.Constants),
		EmaOracleEntries: make([]model.RawEmaOracleEntry, 0, len(s.OracleEntries)),
		Meta:             rawMeta(s.Meta),
	}
	for _, asset := range s.Assets {
		raw.Assets = append(raw.Assets, rawAsset(asset))
	}

	for _, pool := range s.ConstantProduct {
		raw.Pools.ConstantProduct = append(raw.Pools.ConstantProduct, rawPool(pool.PoolBase, pool.Tokens))
	}
	for _, pool := range s.LendingWrapped {
		raw.Pools.LendingWrapped = append(raw.Pools.LendingWrapped, rawPool(pool.PoolBase, pool.Tokens))
	}
	for _, pool := range s.Weighted {
		raw.Pools.Weighted = append(raw.Pools.Weighted, rawWeightedPool(pool))
	}
	for _, pool := range s.Stable {
		raw.Pools.Stable = append(raw.Pools.Stable, rawStablePool(pool))
	}
	for _, pool := range s.HubAsset {
		raw.Pools.HubAsset = append(raw.Pools.HubAsset, rawHubAssetPool(pool))
	}

	for _, entry := range s.OracleEntries {
		raw.EmaOracleEntries = append(raw.EmaOracleEntries, rawOracleEntry(entry))
	}
	for _, entry := range s.MmOracleEntries {
		raw.MmOracleEntries = append(raw.MmOracleEntries, model.RawMmOracleEntry{
			Address:   entry.Address.Hex(),
			Price:     model.NumericFromBig(entry.Price),
			Decimals:  model.NumericFromUint64(uint64(entry.Decimals)),
			UpdatedAt: model.NumericFromUint64(entry.UpdatedAt),
		})
	}
	return raw
}

func rawAsset(asset model.Asset) model.RawAsset {
	ra := model.RawAsset{
		ID:                 asset.ID,
		Symbol:             asset.Symbol,
		Decimals:           model.NumericFromUint64(uint64(asset.Decimals)),
		ExistentialDeposit: model.NumericFromBig(asset.ExistentialDeposit),
		IsSufficient:       asset.IsSufficient,
		Type:               string(asset.Class),
	}
	if asset.DynamicFee != nil {
		ra.DynamicFee = &model.RawDynamicFee{
			AssetFee:    model.NumericFromInt64(asset.DynamicFee.AssetFee),
			ProtocolFee: model.NumericFromInt64(asset.DynamicFee.ProtocolFee),
			Timestamp:   model.NumericFromUint64(asset.DynamicFee.UpdatedAt),
		}
	}
	return ra
}

func rawPoolToken(token model.PoolToken) model.RawPoolToken {
	return model.RawPoolToken{
		ID:                 token.ID,
		Decimals:           model.NumericFromUint64(uint64(token.Decimals)),
		Symbol:             token.Symbol,
		Balance:            model.NumericFromBig(token.Balance),
		Tradable:           model.NumericFromUint64(uint64(token.Tradeable)),
		ExistentialDeposit: model.NumericFromBig(token.ExistentialDeposit),
		IsSufficient:       token.IsSufficient,
		Type:               string(token.Class),
	}
}

func rawPool(base model.PoolBase, tokens []model.PoolToken) model.RawPool {
	rp := model.RawPool{
		ID:              base.ID,
		Address:         base.Address,
		Type:            base.Type.String(),
		Tokens:          make([]model.RawPoolToken, 0, len(tokens)),
		MaxInRatio:      model.NumericFromUint64(base.MaxInRatio),
		MaxOutRatio:     model.NumericFromUint64(base.MaxOutRatio),
		MinTradingLimit: model.NumericFromBig(base.MinTradingLimit),
	}
	for _, token := range tokens {
		rp.Tokens = append(rp.Tokens, rawPoolToken(token))
	}
	return rp
}

func rawWeightedPool(pool *model.WeightedPool) model.RawWeightedPool {
	tokens := make([]model.PoolToken, 0, len(pool.Tokens))
	for _, token := range pool.Tokens {
		tokens = append(tokens, token.PoolToken)
	}
	return model.RawWeightedPool{
		RawPool:       rawPool(pool.PoolBase, tokens),
		Fee:           rawFraction(pool.FeeRange),
		RepayFeeApply: pool.RepayFeeApplies,
		Start:         model.NumericFromUint64(pool.StartBlock),
		End:           model.NumericFromUint64(pool.EndBlock),
		InitialWeight: model.NumericFromUint64(pool.InitialWeight),
		FinalWeight:   model.NumericFromUint64(pool.FinalWeight),
		RepayTarget:   model.NumericFromBig(pool.RepayTarget),
		FeeCollector:  pool.FeeCollector,
	}
}

func rawStablePool(pool *model.StablePool) model.RawStablePool {
	rp := model.RawStablePool{
		RawPool:              rawPool(pool.PoolBase, pool.AssetTokens()),
		InitialAmplification: model.NumericFromBig(pool.InitialAmplification),
		FinalAmplification:   model.NumericFromBig(pool.FinalAmplification),
		InitialBlock:         model.NumericFromUint64(pool.InitialBlock),
		FinalBlock:           model.NumericFromUint64(pool.FinalBlock),
		Fee:                  model.NumericFromInt64(pool.Fee),
		MaxFee:               model.NumericFromInt64(pool.MaxFee),
		TotalIssuance:        model.NumericFromBig(pool.TotalIssuance),
		MaxPegUpdate:         model.NumericFromInt64(pool.MaxPegUpdate),
	}
	for _, source := range pool.PegSources {
		rs := model.RawPegSource{
			SourceKind:   string(source.Kind),
			OracleName:   source.OracleName,
			OraclePeriod: source.OraclePeriod,
			OracleAsset:  source.OracleAsset,
		}
		if source.Value != nil {
			rs.ValuePoints = []model.Numeric{
				model.NumericFromBig(source.Value.Numerator),
				model.NumericFromBig(source.Value.Denominator),
			}
		}
		rp.PegSources = append(rp.PegSources, rs)
	}
	for _, peg := range pool.RecentPegs {
		rp.Pegs = append(rp.Pegs, model.RawPeg{
			Numerator:   model.NumericFromBig(peg.Numerator),
			Denominator: model.NumericFromBig(peg.Denominator),
			UpdatedAt:   model.NumericFromUint64(peg.UpdatedAt),
		})
	}
	return rp
}

func rawHubAssetPool(pool *model.HubAssetPool) model.RawHubAssetPool {
	tokens := make([]model.PoolToken, 0, len(pool.Tokens))
	for _, token := range pool.Tokens {
		tokens = append(tokens, token.PoolToken)
	}
	rp := model.RawHubAssetPool{
		RawPool:    rawPool(pool.PoolBase, tokens),
		HubAssetID: pool.HubAssetID,
	}
	for i, token := range pool.Tokens {
		rp.Tokens[i].HubReserves = model.NumericFromDecimal(token.HubReserves)
		rp.Tokens[i].Shares = model.NumericFromDecimal(token.Shares)
		rp.Tokens[i].Cap = model.NumericFromDecimal(token.Cap)
		rp.Tokens[i].ProtocolShares = model.NumericFromDecimal(token.ProtocolShares)
	}
	return rp
}

func rawFraction(f model.Fraction) []model.Numeric {
	if f == (model.Fraction{}) {
		return nil
	}
	return []model.Numeric{model.NumericFromInt64(f.Numerator), model.NumericFromInt64(f.Denominator)}
}

func rawFeeParams(p model.DynamicFeeParams) model.RawDynamicFeeParams {
	return model.RawDynamicFeeParams{
		MinFee:        model.NumericFromInt64(p.MinFee),
		MaxFee:        model.NumericFromInt64(p.MaxFee),
		Decay:         model.NumericFromDecimal(p.DecayRate),
		Amplification: model.NumericFromDecimal(p.AmplificationConstant),
	}
}

func rawConstants(c model.Constants) *model.RawConstants {
	return &model.RawConstants{
		WeightedRepayFee:         rawFraction(c.Weighted.RepayFee),
		WeightedMaxInRatio:       model.NumericFromUint64(c.Weighted.Limits.MaxInRatio),
		WeightedMaxOutRatio:      model.NumericFromUint64(c.Weighted.Limits.MaxOutRatio),
		WeightedMinPoolLiquidity: model.NumericFromBig(c.Weighted.Limits.MinPoolLiquidity),
		WeightedMinTradingLimit:  model.NumericFromBig(c.Weighted.Limits.MinTradingLimit),

		HubBurnProtocolFee:  model.NumericFromInt64(c.HubAsset.BurnProtocolFee),
		HubSystemAssetID:    model.Numeric(c.HubAsset.SystemAssetID),
		HubAssetID:          model.Numeric(c.HubAsset.HubAssetID),
		HubMaxInRatio:       model.NumericFromUint64(c.HubAsset.Limits.MaxInRatio),
		HubMaxOutRatio:      model.NumericFromUint64(c.HubAsset.Limits.MaxOutRatio),
		HubMinPoolLiquidity: model.NumericFromBig(c.HubAsset.Limits.MinPoolLiquidity),
		HubMinTradingLimit:  model.NumericFromBig(c.HubAsset.Limits.MinTradingLimit),
		HubMinWithdrawalFee: model.NumericFromInt64(c.HubAsset.MinWithdrawalFee),

		StableMinTradingLimit:  model.NumericFromBig(c.Stable.Limits.MinTradingLimit),
		StableMinPoolLiquidity: model.NumericFromBig(c.Stable.Limits.MinPoolLiquidity),
		StableAmplificationRange: []model.Numeric{
			model.NumericFromUint64(c.Stable.AmplificationRange[0]),
			model.NumericFromUint64(c.Stable.AmplificationRange[1]),
		},

		ConstantProductExchangeFee:      rawFraction(c.ConstantProduct.ExchangeFee),
		ConstantProductMaxInRatio:       model.NumericFromUint64(c.ConstantProduct.Limits.MaxInRatio),
		ConstantProductMaxOutRatio:      model.NumericFromUint64(c.ConstantProduct.Limits.MaxOutRatio),
		ConstantProductMinPoolLiquidity: model.NumericFromBig(c.ConstantProduct.Limits.MinPoolLiquidity),
		ConstantProductMinTradingLimit:  model.NumericFromBig(c.ConstantProduct.Limits.MinTradingLimit),
		ConstantProductNativeAssetID:    model.Numeric(c.ConstantProduct.NativeAssetID),
		ConstantProductOracleSource:     c.ConstantProduct.OracleSource,

		AssetFeeParameters:    rawFeeParams(c.AssetFee),
		ProtocolFeeParameters: rawFeeParams(c.ProtocolFee),
	}
}

func rawMeta(m model.Meta) *model.RawMeta {
	meta := &model.RawMeta{
		ParaBlockNumber:  model.NumericFromUint64(m.ParaBlockNumber),
		RelayBlockNumber: model.NumericFromUint64(m.RelayBlockNumber),
	}
	if m.ParaBlockHash != (common.Hash{}) {
		meta.ParaBlockHash = m.ParaBlockHash.Hex()
	}
	return meta
}

func rawOracleEntry(entry model.OracleEntry) model.RawEmaOracleEntry {
	return model.RawEmaOracleEntry{
		Source: entry.Source,
		Period: entry.Period,
		Assets: []string{entry.Assets[0], entry.Assets[1]},
		Entry: model.RawEmaOracleEntryData{
			Price: model.RawRatio{
				N: model.NumericFromBig(entry.Price.Numerator),
				D: model.NumericFromBig(entry.Price.Denominator),
			},
			Volume: model.RawVolume{
				AIn:  model.NumericFromDecimal(entry.Volume.InA),
				BOut: model.NumericFromDecimal(entry.Volume.OutB),
				AOut: model.NumericFromDecimal(entry.Volume.OutA),
				BIn:  model.NumericFromDecimal(entry.Volume.InB),
			},
			Liquidity: model.RawLiquidity{
				A: model.NumericFromDecimal(entry.Liquidity.A),
				B: model.NumericFromDecimal(entry.Liquidity.B),
			},
			UpdatedAt: model.NumericFromUint64(entry.UpdatedAt),
		},
	}
}
