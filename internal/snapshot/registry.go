package snapshot

import "feeScope/internal/model"

// RegistryAssets returns the assets a trading registry may list: tradable
// classes with a symbol. Pool share tokens and unknown classes are dropped.
func RegistryAssets(assets []model.Asset) []model.Asset {
	out := make([]model.Asset, 0, len(assets))
	for _, asset := range assets {
		if !asset.Class.Tradable() || asset.Symbol == "" {
			continue
		}
		out = append(out, asset)
	}
	return out
}
