package model

import (
	"encoding/json"
	"fmt"
)

// RawSnapshot is the snapshot document as produced by the ledger query layer,
// before any validation.
type RawSnapshot struct {
	Assets           []RawAsset          `json:"assets"`
	Pools            RawPools            `json:"pools"`
	Constants        *RawConstants       `json:"constants"`
	EmaOracleEntries []RawEmaOracleEntry `json:"emaOracleEntries"`
	MmOracleEntries  []RawMmOracleEntry  `json:"mmOracleEntries,omitempty"`
	Meta             *RawMeta            `json:"meta"`
}

// RawPools groups pool records by pool family.
type RawPools struct {
	ConstantProduct []RawPool         `json:"constantProduct"`
	Weighted        []RawWeightedPool `json:"weighted"`
	Stable          []RawStablePool   `json:"stable"`
	HubAsset        []RawHubAssetPool `json:"hubAsset"`
	LendingWrapped  []RawPool         `json:"lendingWrapped"`
}

// RawAsset is an asset registry record.
type RawAsset struct {
	ID                 string         `json:"id"`
	Symbol             string         `json:"symbol"`
	Decimals           Numeric        `json:"decimals"`
	ExistentialDeposit Numeric        `json:"existentialDeposit"`
	IsSufficient       bool           `json:"isSufficient"`
	Type               string         `json:"type"`
	DynamicFee         *RawDynamicFee `json:"dynamicFee,omitempty"`
}

// RawDynamicFee is the last recorded dynamic fee state of an asset, in permill.
type RawDynamicFee struct {
	AssetFee    Numeric `json:"assetFee"`
	ProtocolFee Numeric `json:"protocolFee"`
	Timestamp   Numeric `json:"timestamp"`
}

// RawPoolToken is a token held by a pool. Hub asset pools fill the reserve fields.
type RawPoolToken struct {
	ID                 string  `json:"id"`
	Decimals           Numeric `json:"decimals"`
	Symbol             string  `json:"symbol"`
	Balance            Numeric `json:"balance"`
	Tradable           Numeric `json:"tradable,omitempty"`
	ExistentialDeposit Numeric `json:"existentialDeposit"`
	IsSufficient       bool    `json:"isSufficient"`
	Type               string  `json:"type,omitempty"`

	HubReserves    Numeric `json:"hubReserves,omitempty"`
	Shares         Numeric `json:"shares,omitempty"`
	Cap            Numeric `json:"cap,omitempty"`
	ProtocolShares Numeric `json:"protocolShares,omitempty"`
}

// RawPool holds the fields shared by every pool family.
type RawPool struct {
	ID              string         `json:"id,omitempty"`
	Address         string         `json:"address"`
	Type            string         `json:"type"`
	Tokens          []RawPoolToken `json:"tokens"`
	MaxInRatio      Numeric        `json:"maxInRatio"`
	MaxOutRatio     Numeric        `json:"maxOutRatio"`
	MinTradingLimit Numeric        `json:"minTradingLimit"`
}

// RawWeightedPool is a liquidity bootstrapping pool record.
type RawWeightedPool struct {
	RawPool
	Fee           []Numeric `json:"fee"`
	RepayFeeApply bool      `json:"repayFeeApply"`
	Start         Numeric   `json:"start"`
	End           Numeric   `json:"end"`
	InitialWeight Numeric   `json:"initialWeight"`
	FinalWeight   Numeric   `json:"finalWeight"`
	RepayTarget   Numeric   `json:"repayTarget,omitempty"`
	FeeCollector  string    `json:"feeCollector,omitempty"`
}

// RawStablePool is a stable swap pool record.
type RawStablePool struct {
	RawPool
	InitialAmplification Numeric        `json:"initialAmplification"`
	FinalAmplification   Numeric        `json:"finalAmplification"`
	InitialBlock         Numeric        `json:"initialBlock"`
	FinalBlock           Numeric        `json:"finalBlock"`
	Fee                  Numeric        `json:"fee"`
	MaxFee               Numeric        `json:"maxFee,omitempty"`
	TotalIssuance        Numeric        `json:"totalIssuance"`
	PegSources           []RawPegSource `json:"pegSources,omitempty"`
	Pegs                 []RawPeg       `json:"pegs,omitempty"`
	MaxPegUpdate         Numeric        `json:"maxPegUpdate,omitempty"`
}

// RawPegSource tells where the latest peg of one pool asset comes from.
type RawPegSource struct {
	SourceKind   string    `json:"sourceKind"`
	OracleName   string    `json:"oracleName,omitempty"`
	OraclePeriod string    `json:"oraclePeriod,omitempty"`
	OracleAsset  string    `json:"oracleAsset,omitempty"`
	ValuePoints  []Numeric `json:"valuePoints,omitempty"`
}

// RawPeg is encoded as [[numerator, denominator], updatedAt].
type RawPeg struct {
	Numerator   Numeric
	Denominator Numeric
	UpdatedAt   Numeric
}

func (p RawPeg) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{[]Numeric{p.Numerator, p.Denominator}, p.UpdatedAt})
}

func (p *RawPeg) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("peg: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("peg: expected [[n, d], updatedAt], got %d elements", len(parts))
	}
	var ratio []Numeric
	if err := json.Unmarshal(parts[0], &ratio); err != nil {
		return fmt.Errorf("peg ratio: %w", err)
	}
	if len(ratio) != 2 {
		return fmt.Errorf("peg ratio: expected 2 elements, got %d", len(ratio))
	}
	var updatedAt Numeric
	if err := json.Unmarshal(parts[1], &updatedAt); err != nil {
		return fmt.Errorf("peg updated at: %w", err)
	}
	*p = RawPeg{Numerator: ratio[0], Denominator: ratio[1], UpdatedAt: updatedAt}
	return nil
}

// RawHubAssetPool is the hub-and-spoke pool record.
type RawHubAssetPool struct {
	RawPool
	HubAssetID string `json:"hubAssetId"`
}

// RawDynamicFeeParams is one dynamic fee curve parameter set.
type RawDynamicFeeParams struct {
	MinFee        Numeric `json:"minFee"`
	MaxFee        Numeric `json:"maxFee"`
	Decay         Numeric `json:"decay"`
	Amplification Numeric `json:"amplification"`
}

// RawConstants are the protocol constants exported with the snapshot.
type RawConstants struct {
	WeightedRepayFee         []Numeric `json:"weightedRepayFee"`
	WeightedMaxInRatio       Numeric   `json:"weightedMaxInRatio"`
	WeightedMaxOutRatio      Numeric   `json:"weightedMaxOutRatio"`
	WeightedMinPoolLiquidity Numeric   `json:"weightedMinPoolLiquidity"`
	WeightedMinTradingLimit  Numeric   `json:"weightedMinTradingLimit"`

	HubBurnProtocolFee  Numeric `json:"hubBurnProtocolFee"`
	HubSystemAssetID    Numeric `json:"hubSystemAssetId"`
	HubAssetID          Numeric `json:"hubAssetId"`
	HubMaxInRatio       Numeric `json:"hubMaxInRatio"`
	HubMaxOutRatio      Numeric `json:"hubMaxOutRatio"`
	HubMinPoolLiquidity Numeric `json:"hubMinPoolLiquidity"`
	HubMinTradingLimit  Numeric `json:"hubMinTradingLimit"`
	HubMinWithdrawalFee Numeric `json:"hubMinWithdrawalFee"`

	StableMinTradingLimit    Numeric   `json:"stableMinTradingLimit"`
	StableMinPoolLiquidity   Numeric   `json:"stableMinPoolLiquidity"`
	StableAmplificationRange []Numeric `json:"stableAmplificationRange"`

	ConstantProductExchangeFee      []Numeric `json:"constantProductExchangeFee"`
	ConstantProductMaxInRatio       Numeric   `json:"constantProductMaxInRatio"`
	ConstantProductMaxOutRatio      Numeric   `json:"constantProductMaxOutRatio"`
	ConstantProductMinPoolLiquidity Numeric   `json:"constantProductMinPoolLiquidity"`
	ConstantProductMinTradingLimit  Numeric   `json:"constantProductMinTradingLimit"`
	ConstantProductNativeAssetID    Numeric   `json:"constantProductNativeAssetId"`
	ConstantProductOracleSource     string    `json:"constantProductOracleSource"`

	AssetFeeParameters    RawDynamicFeeParams `json:"assetFeeParameters"`
	ProtocolFeeParameters RawDynamicFeeParams `json:"protocolFeeParameters"`
}

// RawEmaOracleEntry is one EMA oracle sample.
type RawEmaOracleEntry struct {
	Source string                `json:"source"`
	Period string                `json:"period"`
	Assets []string              `json:"assets"`
	Entry  RawEmaOracleEntryData `json:"entry"`
}

type RawEmaOracleEntryData struct {
	Price     RawRatio     `json:"price"`
	Volume    RawVolume    `json:"volume"`
	Liquidity RawLiquidity `json:"liquidity"`
	UpdatedAt Numeric      `json:"updatedAt"`
}

type RawRatio struct {
	N Numeric `json:"n"`
	D Numeric `json:"d"`
}

type RawVolume struct {
	AIn  Numeric `json:"aIn"`
	BOut Numeric `json:"bOut"`
	AOut Numeric `json:"aOut"`
	BIn  Numeric `json:"bIn"`
}

type RawLiquidity struct {
	A Numeric `json:"a"`
	B Numeric `json:"b"`
}

// RawMmOracleEntry is a quote published by an external market maker oracle contract.
type RawMmOracleEntry struct {
	Address   string  `json:"address"`
	Price     Numeric `json:"price"`
	Decimals  Numeric `json:"decimals"`
	UpdatedAt Numeric `json:"updatedAt"`
}

// RawMeta describes the block the snapshot was taken at.
type RawMeta struct {
	ParaBlockNumber  Numeric `json:"paraBlockNumber"`
	ParaBlockHash    string  `json:"paraBlockHash"`
	RelayBlockNumber Numeric `json:"relayBlockNumber"`
}
