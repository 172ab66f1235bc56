package snapshot

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"feeScope/internal/model"
)

func normalizeAssets(raw []model.RawAsset) ([]model.Asset, error) {
	assets := make([]model.Asset, 0, len(raw))
	for _, ra := range raw {
		asset, err := normalizeAsset(ra)
		if err != nil {
			return nil, fmt.Errorf("%w: asset %s: %v", ErrValidation, ra.ID, err)
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func normalizeAsset(ra model.RawAsset) (model.Asset, error) {
	if ra.ID == "" {
		return model.Asset{}, fmt.Errorf("id is empty")
	}
	decimals, err := parseDecimals(ra.Decimals)
	if err != nil {
		return model.Asset{}, err
	}
	ed, err := ra.ExistentialDeposit.BigInt()
	if err != nil {
		return model.Asset{}, fmt.Errorf("existential deposit: %w", err)
	}
	// Unknown registry types stay in the snapshot but never become tradable.
	class, _ := model.ParseAssetClass(ra.Type)

	asset := model.Asset{
		ID:                 ra.ID,
		Symbol:             ra.Symbol,
		Decimals:           decimals,
		ExistentialDeposit: ed,
		IsSufficient:       ra.IsSufficient,
		Class:              class,
	}
	if ra.DynamicFee != nil {
		state, err := normalizeDynamicFee(*ra.DynamicFee)
		if err != nil {
			return model.Asset{}, err
		}
		asset.DynamicFee = &state
	}
	return asset, nil
}

func normalizeDynamicFee(raw model.RawDynamicFee) (model.DynamicFeeState, error) {
	assetFee, err := raw.AssetFee.Int64()
	if err != nil {
		return model.DynamicFeeState{}, fmt.Errorf("dynamic asset fee: %w", err)
	}
	protocolFee, err := raw.ProtocolFee.Int64()
	if err != nil {
		return model.DynamicFeeState{}, fmt.Errorf("dynamic protocol fee: %w", err)
	}
	updatedAt, err := raw.Timestamp.Uint64()
	if err != nil {
		return model.DynamicFeeState{}, fmt.Errorf("dynamic fee timestamp: %w", err)
	}
	return model.DynamicFeeState{AssetFee: assetFee, ProtocolFee: protocolFee, UpdatedAt: updatedAt}, nil
}

func parseDecimals(n model.Numeric) (uint8, error) {
	v, err := n.Uint64()
	if err != nil {
		return 0, fmt.Errorf("decimals: %w", err)
	}
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("decimals out of range: %d", v)
	}
	return uint8(v), nil
}

func normalizeConstants(raw model.RawConstants) (model.Constants, error) {
	var p numericParser

	c := model.Constants{
		ConstantProduct: model.ConstantProductConstants{
			Limits: model.PoolLimits{
				MaxInRatio:       p.uint64("constantProductMaxInRatio", raw.ConstantProductMaxInRatio),
				MaxOutRatio:      p.uint64("constantProductMaxOutRatio", raw.ConstantProductMaxOutRatio),
				MinPoolLiquidity: p.bigInt("constantProductMinPoolLiquidity", raw.ConstantProductMinPoolLiquidity),
				MinTradingLimit:  p.bigInt("constantProductMinTradingLimit", raw.ConstantProductMinTradingLimit),
			},
			ExchangeFee:   p.fraction("constantProductExchangeFee", raw.ConstantProductExchangeFee),
			NativeAssetID: raw.ConstantProductNativeAssetID.String(),
			OracleSource:  raw.ConstantProductOracleSource,
		},
		Weighted: model.WeightedConstants{
			Limits: model.PoolLimits{
				MaxInRatio:       p.uint64("weightedMaxInRatio", raw.WeightedMaxInRatio),
				MaxOutRatio:      p.uint64("weightedMaxOutRatio", raw.WeightedMaxOutRatio),
				MinPoolLiquidity: p.bigInt("weightedMinPoolLiquidity", raw.WeightedMinPoolLiquidity),
				MinTradingLimit:  p.bigInt("weightedMinTradingLimit", raw.WeightedMinTradingLimit),
			},
			RepayFee: p.fraction("weightedRepayFee", raw.WeightedRepayFee),
		},
		Stable: model.StableConstants{
			Limits: model.PoolLimits{
				MinPoolLiquidity: p.bigInt("stableMinPoolLiquidity", raw.StableMinPoolLiquidity),
				MinTradingLimit:  p.bigInt("stableMinTradingLimit", raw.StableMinTradingLimit),
			},
			AmplificationRange: p.uint64Pair("stableAmplificationRange", raw.StableAmplificationRange),
		},
		HubAsset: model.HubAssetConstants{
			Limits: model.PoolLimits{
				MaxInRatio:       p.uint64("hubMaxInRatio", raw.HubMaxInRatio),
				MaxOutRatio:      p.uint64("hubMaxOutRatio", raw.HubMaxOutRatio),
				MinPoolLiquidity: p.bigInt("hubMinPoolLiquidity", raw.HubMinPoolLiquidity),
				MinTradingLimit:  p.bigInt("hubMinTradingLimit", raw.HubMinTradingLimit),
			},
			SystemAssetID:    raw.HubSystemAssetID.String(),
			HubAssetID:       raw.HubAssetID.String(),
			MinWithdrawalFee: p.int64("hubMinWithdrawalFee", raw.HubMinWithdrawalFee),
			BurnProtocolFee:  p.int64("hubBurnProtocolFee", raw.HubBurnProtocolFee),
		},
		AssetFee:    p.feeParams("assetFeeParameters", raw.AssetFeeParameters),
		ProtocolFee: p.feeParams("protocolFeeParameters", raw.ProtocolFeeParameters),
	}
	if p.err != nil {
		return model.Constants{}, fmt.Errorf("%w: constants: %v", ErrValidation, p.err)
	}
	if c.HubAsset.SystemAssetID == "" || c.HubAsset.HubAssetID == "" {
		return model.Constants{}, fmt.Errorf("%w: constants: hub system asset and hub asset ids are required", ErrValidation)
	}
	for _, params := range []model.DynamicFeeParams{c.AssetFee, c.ProtocolFee} {
		if params.MinFee > params.MaxFee {
			return model.Constants{}, fmt.Errorf("%w: constants: dynamic min fee %d above max fee %d", ErrValidation, params.MinFee, params.MaxFee)
		}
	}
	return c, nil
}

// numericParser parses a run of fields and keeps the first error.
type numericParser struct {
	err error
}

func (p *numericParser) fail(field string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", field, err)
	}
}

func (p *numericParser) uint64(field string, n model.Numeric) uint64 {
	v, err := n.Uint64()
	if err != nil {
		p.fail(field, err)
	}
	return v
}

func (p *numericParser) int64(field string, n model.Numeric) int64 {
	v, err := n.Int64()
	if err != nil {
		p.fail(field, err)
	}
	return v
}

func (p *numericParser) bigInt(field string, n model.Numeric) *big.Int {
	v, err := n.BigInt()
	if err != nil {
		p.fail(field, err)
		return big.NewInt(0)
	}
	return v
}

func (p *numericParser) decimal(field string, n model.Numeric) decimal.Decimal {
	v, err := n.Decimal()
	if err != nil {
		p.fail(field, err)
	}
	return v
}

func (p *numericParser) fraction(field string, parts []model.Numeric) model.Fraction {
	if len(parts) == 0 {
		return model.Fraction{}
	}
	if len(parts) != 2 {
		p.fail(field, fmt.Errorf("expected [numerator, denominator], got %d elements", len(parts)))
		return model.Fraction{}
	}
	return model.Fraction{
		Numerator:   p.int64(field, parts[0]),
		Denominator: p.int64(field, parts[1]),
	}
}

func (p *numericParser) uint64Pair(field string, parts []model.Numeric) [2]uint64 {
	if len(parts) == 0 {
		return [2]uint64{}
	}
	if len(parts) != 2 {
		p.fail(field, fmt.Errorf("expected 2 elements, got %d", len(parts)))
		return [2]uint64{}
	}
	return [2]uint64{p.uint64(field, parts[0]), p.uint64(field, parts[1])}
}

func (p *numericParser) feeParams(field string, raw model.RawDynamicFeeParams) model.DynamicFeeParams {
	return model.DynamicFeeParams{
		MinFee:                p.int64(field+".minFee", raw.MinFee),
		MaxFee:                p.int64(field+".maxFee", raw.MaxFee),
		DecayRate:             p.decimal(field+".decay", raw.Decay),
		AmplificationConstant: p.decimal(field+".amplification", raw.Amplification),
	}
}

func normalizeMeta(raw model.RawMeta) (model.Meta, error) {
	var p numericParser
	meta := model.Meta{
		ParaBlockNumber:  p.uint64("paraBlockNumber", raw.ParaBlockNumber),
		RelayBlockNumber: p.uint64("relayBlockNumber", raw.RelayBlockNumber),
	}
	if p.err != nil {
		return model.Meta{}, fmt.Errorf("%w: meta: %v", ErrValidation, p.err)
	}
	if raw.ParaBlockHash != "" {
		hash, err := parseHash(raw.ParaBlockHash)
		if err != nil {
			return model.Meta{}, fmt.Errorf("%w: meta: %v", ErrValidation, err)
		}
		meta.ParaBlockHash = hash
	}
	return meta, nil
}

func parseHash(input string) (common.Hash, error) {
	data, err := hexutil.Decode(input)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid block hash: %s", input)
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid block hash length: %s", input)
	}
	return common.BytesToHash(data), nil
}

func normalizeOracleEntries(raw []model.RawEmaOracleEntry) ([]model.OracleEntry, error) {
	entries := make([]model.OracleEntry, 0, len(raw))
	for i, re := range raw {
		if len(re.Assets) != 2 {
			return nil, fmt.Errorf("%w: ema oracle entry %d: expected 2 assets, got %d", ErrValidation, i, len(re.Assets))
		}
		var p numericParser
		entry := model.OracleEntry{
			Source: re.Source,
			Period: re.Period,
			Assets: [2]string{re.Assets[0], re.Assets[1]},
			Price: model.Ratio{
				Numerator:   p.bigInt("price.n", re.Entry.Price.N),
				Denominator: p.bigInt("price.d", re.Entry.Price.D),
			},
			Volume: model.OracleVolume{
				InA:  p.decimal("volume.aIn", re.Entry.Volume.AIn),
				OutA: p.decimal("volume.aOut", re.Entry.Volume.AOut),
				InB:  p.decimal("volume.bIn", re.Entry.Volume.BIn),
				OutB: p.decimal("volume.bOut", re.Entry.Volume.BOut),
			},
			Liquidity: model.OracleLiquidity{
				A: p.decimal("liquidity.a", re.Entry.Liquidity.A),
				B: p.decimal("liquidity.b", re.Entry.Liquidity.B),
			},
			UpdatedAt: p.uint64("updatedAt", re.Entry.UpdatedAt),
		}
		if p.err != nil {
			return nil, fmt.Errorf("%w: ema oracle entry %d: %v", ErrValidation, i, p.err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func normalizeMmOracleEntries(raw []model.RawMmOracleEntry) ([]model.MmOracleEntry, error) {
	entries := make([]model.MmOracleEntry, 0, len(raw))
	for i, re := range raw {
		if !common.IsHexAddress(re.Address) {
			return nil, fmt.Errorf("%w: mm oracle entry %d: invalid address: %s", ErrValidation, i, re.Address)
		}
		var p numericParser
		entry := model.MmOracleEntry{
			Address:   common.HexToAddress(re.Address),
			Price:     p.bigInt("price", re.Price),
			UpdatedAt: p.uint64("updatedAt", re.UpdatedAt),
		}
		decimals, err := parseDecimals(re.Decimals)
		if err != nil {
			p.fail("decimals", err)
		}
		entry.Decimals = decimals
		if p.err != nil {
			return nil, fmt.Errorf("%w: mm oracle entry %d: %v", ErrValidation, i, p.err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
