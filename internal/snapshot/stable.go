package snapshot

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"feeScope/internal/fixed"
	"feeScope/internal/model"
	"feeScope/internal/oracle"
	"feeScope/internal/poolmath"
)

// stable decorates a stable swap pool: amplification at the para block,
// peg recalculation and the synthetic share token.
func (n *normalizer) stable(rp model.RawStablePool) (*model.StablePool, error) {
	base, err := n.poolBase(model.PoolTypeStable, rp.RawPool, n.snap.Constants.Stable.Limits)
	if err != nil {
		return nil, err
	}
	if base.ID == "" {
		return nil, fmt.Errorf("stable pool id is empty")
	}
	tokens, err := n.poolTokens(rp.Tokens)
	if err != nil {
		return nil, err
	}

	var p numericParser
	pool := &model.StablePool{
		PoolBase:             base,
		InitialAmplification: p.bigInt("initialAmplification", rp.InitialAmplification),
		FinalAmplification:   p.bigInt("finalAmplification", rp.FinalAmplification),
		InitialBlock:         p.uint64("initialBlock", rp.InitialBlock),
		FinalBlock:           p.uint64("finalBlock", rp.FinalBlock),
		Fee:                  p.int64("fee", rp.Fee),
		MaxFee:               p.int64("maxFee", rp.MaxFee),
		TotalIssuance:        p.bigInt("totalIssuance", rp.TotalIssuance),
		MaxPegUpdate:         p.int64("maxPegUpdate", rp.MaxPegUpdate),
	}
	if p.err != nil {
		return nil, p.err
	}
	if pool.MaxFee != 0 && pool.MaxFee < pool.Fee {
		return nil, fmt.Errorf("max fee %d below pool fee %d", pool.MaxFee, pool.Fee)
	}
	pool.PegSources, err = parsePegSources(rp.PegSources)
	if err != nil {
		return nil, err
	}
	pool.RecentPegs, err = parsePegs(rp.Pegs)
	if err != nil {
		return nil, err
	}

	block := n.snap.Meta.ParaBlockNumber
	pool.Amplification = poolmath.Amplification(
		pool.InitialAmplification, pool.FinalAmplification,
		pool.InitialBlock, pool.FinalBlock, block,
	)

	if err := n.pegs(pool, tokens, block); err != nil {
		return nil, err
	}

	share, ok := n.snap.Asset(pool.ID)
	if !ok {
		return nil, fmt.Errorf("%w: pool %s", ErrPoolShareAssetMissing, pool.ID)
	}
	pool.Tokens = append(tokens, model.PoolToken{
		ID:                 share.ID,
		Decimals:           share.Decimals,
		Symbol:             share.Symbol,
		Balance:            fixed.MaxU128(),
		Tradeable:          model.TradeableDefault,
		ExistentialDeposit: new(big.Int).Set(share.ExistentialDeposit),
		IsSufficient:       share.IsSufficient,
		Class:              share.Class,
	})
	return pool, nil
}

// pegs fills Pegs and PegFee. Pools without peg sources trade at 1:1 with the
// static pool fee.
func (n *normalizer) pegs(pool *model.StablePool, tokens []model.PoolToken, block uint64) error {
	poolFee := fixed.FromPermill(pool.Fee)
	if len(pool.PegSources) == 0 {
		pool.Pegs = poolmath.DefaultPegs(len(tokens), block)
		pool.PegFee = poolFee
		return nil
	}
	if len(pool.PegSources) != len(tokens) {
		return fmt.Errorf("peg sources: expected %d, got %d", len(tokens), len(pool.PegSources))
	}

	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		ids = append(ids, token.ID)
	}
	oracle.SortIDs(ids)

	latest := make([]model.Peg, 0, len(ids))
	for i, source := range pool.PegSources {
		peg, err := n.latestPeg(source, ids[i], block)
		if err != nil {
			return fmt.Errorf("peg %d (asset %s): %w", i, ids[i], err)
		}
		latest = append(latest, peg)
	}

	if len(pool.RecentPegs) == 0 {
		pool.Pegs = latest
		pool.PegFee = poolFee
		return nil
	}

	fee, updated, err := poolmath.RecalculatePegs(
		pool.RecentPegs, latest, block,
		fixed.FromPermill(pool.MaxPegUpdate), poolFee, fixed.FromPermill(pool.MaxFee),
	)
	if err != nil {
		return err
	}
	pool.Pegs = updated
	pool.PegFee = fee
	return nil
}

// latestPeg resolves the target peg of asset from its configured source.
// Zero, negative and undefined ratios are rejected.
func (n *normalizer) latestPeg(source model.PegSource, asset string, block uint64) (model.Peg, error) {
	peg, err := n.resolvePeg(source, asset, block)
	if err != nil {
		return model.Peg{}, err
	}
	if !peg.IsPositive() {
		return model.Peg{}, fmt.Errorf("%w: %s source gives %s/%s", ErrInvalidPeg, source.Kind, peg.Numerator, peg.Denominator)
	}
	return peg, nil
}

func (n *normalizer) resolvePeg(source model.PegSource, asset string, block uint64) (model.Peg, error) {
	switch source.Kind {
	case model.PegSourceOracle:
		entry, err := n.snap.Oracle.LookupPair(source.OracleName, source.OraclePeriod, source.OracleAsset, asset)
		if err != nil {
			return model.Peg{}, err
		}
		price := model.Ratio{
			Numerator:   new(big.Int).Set(entry.Price.Numerator),
			Denominator: new(big.Int).Set(entry.Price.Denominator),
		}
		// The sample is priced from its lower id asset; flip it when the
		// anchor is the higher one.
		if oracle.Lower(source.OracleAsset, asset) != source.OracleAsset {
			price.Numerator, price.Denominator = price.Denominator, price.Numerator
		}
		return model.Peg{Ratio: price, UpdatedAt: entry.UpdatedAt}, nil

	case model.PegSourceMmOracle:
		if !common.IsHexAddress(source.OracleName) {
			return model.Peg{}, fmt.Errorf("invalid mm oracle address: %s", source.OracleName)
		}
		address := common.HexToAddress(source.OracleName)
		for _, entry := range n.snap.MmOracleEntries {
			if entry.Address != address {
				continue
			}
			scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(entry.Decimals)), nil)
			return model.Peg{
				Ratio:     model.Ratio{Numerator: new(big.Int).Set(entry.Price), Denominator: scale},
				UpdatedAt: entry.UpdatedAt,
			}, nil
		}
		return model.Peg{}, fmt.Errorf("%w: mm oracle %s", oracle.ErrEntryMissing, address.Hex())

	default:
		if source.Value == nil {
			return model.Peg{Ratio: model.NewRatio(1, 1), UpdatedAt: block}, nil
		}
		return model.Peg{
			Ratio: model.Ratio{
				Numerator:   new(big.Int).Set(source.Value.Numerator),
				Denominator: new(big.Int).Set(source.Value.Denominator),
			},
			UpdatedAt: block,
		}, nil
	}
}

func parsePegSources(raw []model.RawPegSource) ([]model.PegSource, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	sources := make([]model.PegSource, 0, len(raw))
	for i, rs := range raw {
		source := model.PegSource{
			OracleName:   rs.OracleName,
			OraclePeriod: rs.OraclePeriod,
			OracleAsset:  rs.OracleAsset,
		}
		switch strings.ToLower(strings.TrimSpace(rs.SourceKind)) {
		case "oracle":
			source.Kind = model.PegSourceOracle
		case "mmoracle":
			source.Kind = model.PegSourceMmOracle
		case "value":
			source.Kind = model.PegSourceValue
		default:
			return nil, fmt.Errorf("peg source %d: unknown kind: %s", i, rs.SourceKind)
		}
		if len(rs.ValuePoints) > 0 {
			if len(rs.ValuePoints) != 2 {
				return nil, fmt.Errorf("peg source %d: expected 2 value points, got %d", i, len(rs.ValuePoints))
			}
			var p numericParser
			value := model.Ratio{
				Numerator:   p.bigInt("valuePoints", rs.ValuePoints[0]),
				Denominator: p.bigInt("valuePoints", rs.ValuePoints[1]),
			}
			if p.err != nil {
				return nil, fmt.Errorf("peg source %d: %w", i, p.err)
			}
			if value.Denominator.Sign() == 0 {
				return nil, fmt.Errorf("peg source %d: zero denominator", i)
			}
			source.Value = &value
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func parsePegs(raw []model.RawPeg) ([]model.Peg, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	pegs := make([]model.Peg, 0, len(raw))
	for i, rp := range raw {
		var p numericParser
		peg := model.Peg{
			Ratio: model.Ratio{
				Numerator:   p.bigInt("numerator", rp.Numerator),
				Denominator: p.bigInt("denominator", rp.Denominator),
			},
			UpdatedAt: p.uint64("updatedAt", rp.UpdatedAt),
		}
		if p.err != nil {
			return nil, fmt.Errorf("peg %d: %w", i, p.err)
		}
		pegs = append(pegs, peg)
	}
	return pegs, nil
}
