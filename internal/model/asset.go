package model

import (
	"fmt"
	"math/big"
	"strings"
)

// AssetClass is the closed set of asset kinds known to the registry.
type AssetClass string

const (
	AssetClassNative      AssetClass = "Token"
	AssetClassBond        AssetClass = "Bond"
	AssetClassExternal    AssetClass = "External"
	AssetClassShare       AssetClass = "XYK"
	AssetClassStableShare AssetClass = "StableSwap"
	AssetClassWrapped     AssetClass = "Erc20"
)

// ParseAssetClass maps a registry asset type onto AssetClass.
func ParseAssetClass(tag string) (AssetClass, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "token", "native":
		return AssetClassNative, nil
	case "bond":
		return AssetClassBond, nil
	case "external":
		return AssetClassExternal, nil
	case "xyk", "share", "poolshare":
		return AssetClassShare, nil
	case "stableswap", "stableshare":
		return AssetClassStableShare, nil
	case "erc20", "wrapped":
		return AssetClassWrapped, nil
	default:
		return "", fmt.Errorf("unknown asset class: %s", tag)
	}
}

// Tradable reports whether assets of this class can appear in the trading registry.
func (c AssetClass) Tradable() bool {
	return c != AssetClassShare && c != ""
}

// DynamicFeeState is the last dynamic fee pair the ledger stored for an asset.
type DynamicFeeState struct {
	AssetFee    int64 // permill
	ProtocolFee int64 // permill
	UpdatedAt   uint64
}

// Asset is a registry asset.
type Asset struct {
	ID                 string
	Symbol             string
	Decimals           uint8
	ExistentialDeposit *big.Int
	IsSufficient       bool
	Class              AssetClass
	DynamicFee         *DynamicFeeState
}
