// Package snapshottest builds raw snapshot fixtures for tests.
package snapshottest

import "feeScope/internal/model"

// Block numbers and ids used by Raw.
const (
	ParaBlock  = 1_000
	RelayBlock = 150
	BlockHash  = "0x9a1e4b62b1d3b0f6c1f36f5d2f3c5c2f1a0e9d8c7b6a5f4e3d2c1b0a99887766"

	SystemAssetID = "0"
	HubAssetID    = "1"
	DOT           = "5"
	USDT          = "10"
	USDC          = "22"
	StableShareID = "100"
	ShareTokenID  = "1000"

	ConstantProductAddress = "7KPZyx2N1Lr2n6qHqsRDqgDnyc6hBH8bF4iaWMFvnHLKQnRw"
	WeightedAddress        = "7LCt6dFmtiRrwZv2YyEgQWW3GxsGX3Krmgzv9Xj7GQ9tG2j8"
	StableAddress          = "7JP6TvcH5x31HX8gHVzZvwn5EvT4JL9ixfvLTPYsVu2Vc4ug"
	HubAddress             = "7L53bUTBbfuj14UpdCNPwmgzzHSsrsTWBHX5pys32mVWM3C1"
	LendingAddress         = "7N3NDoRmmrZUSdBPW6NL2ZWWDBVyUqYVfXx8yUvH7mHjUh5e"
	MmOracleAddress        = "0x5d8320f3ced9575d8e25b6f437e610fc6a03bf52"

	AssetFeeMin    = 1_500
	AssetFeeMax    = 50_000
	ProtocolFeeMin = 500
	ProtocolFeeMax = 1_000
)

func num(s string) model.Numeric { return model.Numeric(s) }

// Raw returns a complete snapshot with one pool of every family. The
// hub pool holds the system asset, DOT and USDT; only DOT and USDT carry a
// dynamic fee state.
func Raw() model.RawSnapshot {
	return model.RawSnapshot{
		Assets: []model.RawAsset{
			{ID: SystemAssetID, Symbol: "HDX", Decimals: num("12"), ExistentialDeposit: num("1000000000000"), IsSufficient: true, Type: "Token"},
			{ID: HubAssetID, Symbol: "H2O", Decimals: num("12"), ExistentialDeposit: num("400000000"), IsSufficient: true, Type: "Token"},
			{
				ID: DOT, Symbol: "DOT", Decimals: num("10"), ExistentialDeposit: num("17540000"), IsSufficient: true, Type: "Token",
				DynamicFee: &model.RawDynamicFee{AssetFee: num("2500"), ProtocolFee: num("700"), Timestamp: num("990")},
			},
			{
				ID: USDT, Symbol: "USDT", Decimals: num("6"), ExistentialDeposit: num("10000"), IsSufficient: true, Type: "Token",
				DynamicFee: &model.RawDynamicFee{AssetFee: num("1500"), ProtocolFee: num("500"), Timestamp: num("1000")},
			},
			{ID: USDC, Symbol: "USDC", Decimals: num("6"), ExistentialDeposit: num("10000"), IsSufficient: true, Type: "External"},
			{ID: StableShareID, Symbol: "4-Pool", Decimals: num("18"), ExistentialDeposit: num("10000000000000"), Type: "StableSwap"},
			{ID: ShareTokenID, Symbol: "HDX-DOT", Decimals: num("12"), ExistentialDeposit: num("100"), Type: "XYK"},
		},
		Pools: model.RawPools{
			ConstantProduct: []model.RawPool{ConstantProductPool(ConstantProductAddress, SystemAssetID, DOT)},
			Weighted: []model.RawWeightedPool{{
				RawPool: model.RawPool{
					Address: WeightedAddress,
					Type:    "LBP",
					Tokens: []model.RawPoolToken{
						token(DOT, "DOT", "10", "4000000000000"),
						token(USDT, "USDT", "6", "250000000000"),
					},
				},
				Fee:           []model.Numeric{num("2"), num("1000")},
				RepayFeeApply: true,
				Start:         num("100"),
				End:           num("200"),
				InitialWeight: num("20000000"),
				FinalWeight:   num("80000000"),
				RepayTarget:   num("0"),
				FeeCollector:  "7L2rVXFkKpN9Cxk9cAzBxB3XbNwWd1rGNMfoKGW8xxmSNE1X",
			}},
			Stable: []model.RawStablePool{{
				RawPool: model.RawPool{
					ID:      StableShareID,
					Address: StableAddress,
					Type:    "Stableswap",
					Tokens: []model.RawPoolToken{
						token(USDT, "USDT", "6", "1500000000000"),
						token(USDC, "USDC", "6", "1400000000000"),
					},
				},
				InitialAmplification: num("100"),
				FinalAmplification:   num("200"),
				InitialBlock:         num("900"),
				FinalBlock:           num("1100"),
				Fee:                  num("200"),
				TotalIssuance:        num("2900000000000000000000000"),
			}},
			HubAsset: []model.RawHubAssetPool{{
				RawPool: model.RawPool{
					Address: HubAddress,
					Type:    "Omnipool",
					Tokens: []model.RawPoolToken{
						hubToken(SystemAssetID, "HDX", "12", "900000000000000000000", "12000000000000000000"),
						hubToken(DOT, "DOT", "10", "1000000000000000", "30000000000000000000"),
						hubToken(USDT, "USDT", "6", "2000000000000", "35000000000000000000"),
					},
				},
				HubAssetID: HubAssetID,
			}},
			LendingWrapped: []model.RawPool{{
				Address: LendingAddress,
				Type:    "Aave",
				Tokens: []model.RawPoolToken{
					token(USDT, "USDT", "6", "500000000"),
					token(USDC, "USDC", "6", "500000000"),
				},
			}},
		},
		Constants: &model.RawConstants{
			WeightedRepayFee:         []model.Numeric{num("2"), num("10")},
			WeightedMaxInRatio:       num("3"),
			WeightedMaxOutRatio:      num("3"),
			WeightedMinPoolLiquidity: num("1000"),
			WeightedMinTradingLimit:  num("1000"),

			HubBurnProtocolFee:  num("500000"),
			HubSystemAssetID:    num(SystemAssetID),
			HubAssetID:          num(HubAssetID),
			HubMaxInRatio:       num("3"),
			HubMaxOutRatio:      num("3"),
			HubMinPoolLiquidity: num("1000000"),
			HubMinTradingLimit:  num("1000"),
			HubMinWithdrawalFee: num("100"),

			StableMinTradingLimit:    num("1000"),
			StableMinPoolLiquidity:   num("1000000"),
			StableAmplificationRange: []model.Numeric{num("2"), num("10000")},

			ConstantProductExchangeFee:      []model.Numeric{num("3"), num("1000")},
			ConstantProductMaxInRatio:       num("3"),
			ConstantProductMaxOutRatio:      num("3"),
			ConstantProductMinPoolLiquidity: num("1000"),
			ConstantProductMinTradingLimit:  num("1000"),
			ConstantProductNativeAssetID:    num(SystemAssetID),
			ConstantProductOracleSource:     "xyk",

			AssetFeeParameters: model.RawDynamicFeeParams{
				MinFee:        num("1500"),
				MaxFee:        num("50000"),
				Decay:         num("0.001"),
				Amplification: num("2"),
			},
			ProtocolFeeParameters: model.RawDynamicFeeParams{
				MinFee:        num("500"),
				MaxFee:        num("1000"),
				Decay:         num("0.00001"),
				Amplification: num("1"),
			},
		},
		EmaOracleEntries: []model.RawEmaOracleEntry{
			oracleEntry("omnipool", "Short", SystemAssetID, HubAssetID, "1002000", "1000000", "5000000000", "2000000", "100000000", "900000000", "980"),
			oracleEntry("omnipool", "Short", HubAssetID, DOT, "2000000", "3000000", "1000000", "6000000", "80000000", "1000000000", "995"),
			oracleEntry("omnipool", "Short", HubAssetID, USDT, "100", "200", "300", "400", "5000000", "2000000000000", "999"),
			oracleEntry("omnipool", "LastBlock", USDT, USDC, "0", "0", "0", "0", "1", "1", "999"),
		},
		MmOracleEntries: []model.RawMmOracleEntry{
			{Address: MmOracleAddress, Price: num("1002000"), Decimals: num("6"), UpdatedAt: num("995")},
		},
		Meta: &model.RawMeta{
			ParaBlockNumber:  num("1000"),
			ParaBlockHash:    BlockHash,
			RelayBlockNumber: num("150"),
		},
	}
}

// ConstantProductPool builds a permissionless pool record over two assets.
func ConstantProductPool(address, assetA, assetB string) model.RawPool {
	return model.RawPool{
		Address: address,
		Type:    "XYK",
		Tokens: []model.RawPoolToken{
			token(assetA, "", "12", "1000000000000000"),
			token(assetB, "", "10", "200000000000"),
		},
	}
}

func token(id, symbol, decimals, balance string) model.RawPoolToken {
	return model.RawPoolToken{
		ID:                 id,
		Decimals:           num(decimals),
		Symbol:             symbol,
		Balance:            num(balance),
		ExistentialDeposit: num("0"),
	}
}

func hubToken(id, symbol, decimals, balance, hubReserves string) model.RawPoolToken {
	t := token(id, symbol, decimals, balance)
	t.Tradable = num("15")
	t.HubReserves = num(hubReserves)
	t.Shares = num(balance)
	t.Cap = num("1000000000000000000")
	t.ProtocolShares = num("0")
	return t
}

func oracleEntry(source, period, a, b, aIn, aOut, bIn, bOut, liqA, liqB, updatedAt string) model.RawEmaOracleEntry {
	return model.RawEmaOracleEntry{
		Source: source,
		Period: period,
		Assets: []string{a, b},
		Entry: model.RawEmaOracleEntryData{
			Price:     model.RawRatio{N: num("101"), D: num("100")},
			Volume:    model.RawVolume{AIn: num(aIn), AOut: num(aOut), BIn: num(bIn), BOut: num(bOut)},
			Liquidity: model.RawLiquidity{A: num(liqA), B: num(liqB)},
			UpdatedAt: num(updatedAt),
		},
	}
}
