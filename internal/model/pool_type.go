package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPoolType is returned for a pool type tag outside the supported set.
var ErrUnknownPoolType = errors.New("model: unknown pool type")

// PoolType is the closed set of pool families.
type PoolType string

const (
	PoolTypeConstantProduct PoolType = "ConstantProduct"
	PoolTypeWeighted        PoolType = "Weighted"
	PoolTypeStable          PoolType = "Stable"
	PoolTypeHubAsset        PoolType = "HubAsset"
	PoolTypeLendingWrapped  PoolType = "LendingWrapped"
)

// AllPoolTypes lists every pool type in dispatch order.
var AllPoolTypes = []PoolType{
	PoolTypeLendingWrapped,
	PoolTypeConstantProduct,
	PoolTypeWeighted,
	PoolTypeStable,
	PoolTypeHubAsset,
}

// ParsePoolType maps a pool type tag onto PoolType. Matching is
// case-insensitive and accepts the ledger pallet names as aliases.
func ParsePoolType(tag string) (PoolType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "constantproduct", "xyk":
		return PoolTypeConstantProduct, nil
	case "weighted", "lbp":
		return PoolTypeWeighted, nil
	case "stable", "stableswap":
		return PoolTypeStable, nil
	case "hubasset", "omni", "omnipool":
		return PoolTypeHubAsset, nil
	case "lendingwrapped", "aave":
		return PoolTypeLendingWrapped, nil
	case "":
		return "", fmt.Errorf("%w: empty tag", ErrUnknownPoolType)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPoolType, tag)
	}
}

// ParsePoolTypes parses a list of tags, skipping blanks.
func ParsePoolTypes(tags []string) ([]PoolType, error) {
	out := make([]PoolType, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		pt, err := ParsePoolType(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

func (t PoolType) String() string {
	return string(t)
}
