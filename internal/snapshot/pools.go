package snapshot

import (
	"fmt"
	"math/big"

	"feeScope/internal/model"
	"feeScope/internal/poolmath"
)

// poolBase decorates the fields every pool family shares. The record's type
// tag must name the family of the section it was found in; an empty tag
// takes the section's family.
func (n *normalizer) poolBase(section model.PoolType, rp model.RawPool, limits model.PoolLimits) (model.PoolBase, error) {
	if len(rp.Tokens) == 0 {
		return model.PoolBase{}, fmt.Errorf("%w: token list is empty", ErrValidation)
	}
	poolType := section
	if rp.Type != "" {
		parsed, err := model.ParsePoolType(rp.Type)
		if err != nil {
			return model.PoolBase{}, err
		}
		if parsed != section {
			return model.PoolBase{}, fmt.Errorf("%w: %s record in %s section", model.ErrUnknownPoolType, rp.Type, section)
		}
		poolType = parsed
	}

	var p numericParser
	base := model.PoolBase{
		ID:              rp.ID,
		Address:         rp.Address,
		Type:            poolType,
		MaxInRatio:      p.uint64("maxInRatio", rp.MaxInRatio),
		MaxOutRatio:     p.uint64("maxOutRatio", rp.MaxOutRatio),
		MinTradingLimit: p.bigInt("minTradingLimit", rp.MinTradingLimit),
	}
	if p.err != nil {
		return model.PoolBase{}, p.err
	}
	if rp.MaxInRatio.IsZero() {
		base.MaxInRatio = limits.MaxInRatio
	}
	if rp.MaxOutRatio.IsZero() {
		base.MaxOutRatio = limits.MaxOutRatio
	}
	if rp.MinTradingLimit.IsZero() && limits.MinTradingLimit != nil {
		base.MinTradingLimit = new(big.Int).Set(limits.MinTradingLimit)
	}
	return base, nil
}

func (n *normalizer) poolTokens(raw []model.RawPoolToken) ([]model.PoolToken, error) {
	tokens := make([]model.PoolToken, 0, len(raw))
	for _, rt := range raw {
		token, err := n.poolToken(rt)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", rt.ID, err)
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func (n *normalizer) poolToken(rt model.RawPoolToken) (model.PoolToken, error) {
	if rt.ID == "" {
		return model.PoolToken{}, fmt.Errorf("id is empty")
	}
	decimals, err := parseDecimals(rt.Decimals)
	if err != nil {
		return model.PoolToken{}, err
	}
	var p numericParser
	token := model.PoolToken{
		ID:                 rt.ID,
		Decimals:           decimals,
		Symbol:             rt.Symbol,
		Balance:            p.bigInt("balance", rt.Balance),
		Tradeable:          model.TradeableDefault,
		ExistentialDeposit: p.bigInt("existentialDeposit", rt.ExistentialDeposit),
		IsSufficient:       rt.IsSufficient,
	}
	if !rt.Tradable.IsZero() {
		flags := p.uint64("tradable", rt.Tradable)
		if flags > 0xff {
			p.fail("tradable", fmt.Errorf("flags out of range: %d", flags))
		}
		token.Tradeable = uint8(flags)
	}
	if p.err != nil {
		return model.PoolToken{}, p.err
	}

	if rt.Type != "" {
		class, err := model.ParseAssetClass(rt.Type)
		if err != nil {
			return model.PoolToken{}, err
		}
		token.Class = class
	} else if asset, ok := n.snap.Asset(rt.ID); ok {
		token.Class = asset.Class
	}
	return token, nil
}

func (n *normalizer) constantProduct(rp model.RawPool) (*model.ConstantProductPool, error) {
	base, err := n.poolBase(model.PoolTypeConstantProduct, rp, n.snap.Constants.ConstantProduct.Limits)
	if err != nil {
		return nil, err
	}
	tokens, err := n.poolTokens(rp.Tokens)
	if err != nil {
		return nil, err
	}
	return &model.ConstantProductPool{PoolBase: base, Tokens: tokens}, nil
}

func (n *normalizer) lendingWrapped(rp model.RawPool) (*model.LendingWrappedPool, error) {
	base, err := n.poolBase(model.PoolTypeLendingWrapped, rp, model.PoolLimits{})
	if err != nil {
		return nil, err
	}
	tokens, err := n.poolTokens(rp.Tokens)
	if err != nil {
		return nil, err
	}
	return &model.LendingWrappedPool{PoolBase: base, Tokens: tokens}, nil
}

// weighted decorates a bootstrapping pool. Token weights are interpolated at
// the relay block, which is the clock those pools are scheduled against.
func (n *normalizer) weighted(rp model.RawWeightedPool) (*model.WeightedPool, error) {
	base, err := n.poolBase(model.PoolTypeWeighted, rp.RawPool, n.snap.Constants.Weighted.Limits)
	if err != nil {
		return nil, err
	}
	if len(rp.Tokens) != 2 {
		return nil, fmt.Errorf("weighted pool needs 2 tokens, got %d", len(rp.Tokens))
	}
	tokens, err := n.poolTokens(rp.Tokens)
	if err != nil {
		return nil, err
	}

	var p numericParser
	pool := &model.WeightedPool{
		PoolBase:        base,
		FeeRange:        p.fraction("fee", rp.Fee),
		RepayFeeApplies: rp.RepayFeeApply,
		StartBlock:      p.uint64("start", rp.Start),
		EndBlock:        p.uint64("end", rp.End),
		InitialWeight:   p.uint64("initialWeight", rp.InitialWeight),
		FinalWeight:     p.uint64("finalWeight", rp.FinalWeight),
		FeeCollector:    rp.FeeCollector,
	}
	if !rp.RepayTarget.IsZero() {
		pool.RepayTarget = p.bigInt("repayTarget", rp.RepayTarget)
	}
	if p.err != nil {
		return nil, p.err
	}

	accumulated, distributed, err := poolmath.PairWeights(
		pool.StartBlock, pool.EndBlock,
		pool.InitialWeight, pool.FinalWeight,
		n.snap.Meta.RelayBlockNumber,
	)
	if err != nil {
		return nil, err
	}
	pool.Tokens = []model.WeightedPoolToken{
		{PoolToken: tokens[0], Weight: accumulated},
		{PoolToken: tokens[1], Weight: distributed},
	}
	return pool, nil
}

func (n *normalizer) hubAsset(rp model.RawHubAssetPool) (*model.HubAssetPool, error) {
	base, err := n.poolBase(model.PoolTypeHubAsset, rp.RawPool, n.snap.Constants.HubAsset.Limits)
	if err != nil {
		return nil, err
	}
	tokens := make([]model.HubAssetPoolToken, 0, len(rp.Tokens))
	for _, rt := range rp.Tokens {
		token, err := n.poolToken(rt)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", rt.ID, err)
		}
		var p numericParser
		hubToken := model.HubAssetPoolToken{
			PoolToken:      token,
			HubReserves:    p.decimal("hubReserves", rt.HubReserves),
			Shares:         p.decimal("shares", rt.Shares),
			Cap:            p.decimal("cap", rt.Cap),
			ProtocolShares: p.decimal("protocolShares", rt.ProtocolShares),
		}
		if p.err != nil {
			return nil, fmt.Errorf("token %s: %w", rt.ID, p.err)
		}
		tokens = append(tokens, hubToken)
	}

	hubAssetID := rp.HubAssetID
	if hubAssetID == "" {
		hubAssetID = n.snap.Constants.HubAsset.HubAssetID
	}
	return &model.HubAssetPool{PoolBase: base, Tokens: tokens, HubAssetID: hubAssetID}, nil
}
