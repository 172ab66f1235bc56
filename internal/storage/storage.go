package storage

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"feeScope/internal/model"
)

// Storage defines a sink for fee quotes.
type Storage interface {
	PutQuoteBatch(quotes []FeeQuote) error
}

// FeeQuote is one fee answer pinned to the snapshot block it was computed at.
type FeeQuote struct {
	ParaBlockNumber uint64    `json:"paraBlockNumber"`
	ParaBlockHash   string    `json:"paraBlockHash,omitempty"`
	PoolType        string    `json:"poolType"`
	PoolAddress     string    `json:"poolAddress"`
	AssetIn         string    `json:"assetIn"`
	AssetOut        string    `json:"assetOut"`
	AssetFee        string    `json:"assetFee,omitempty"`
	ProtocolFee     string    `json:"protocolFee,omitempty"`
	Min             string    `json:"min,omitempty"`
	Max             string    `json:"max,omitempty"`
	Fee             string    `json:"fee,omitempty"`
	ExchangeFee     string    `json:"exchangeFee,omitempty"`
	RepayFee        string    `json:"repayFee,omitempty"`
	ComputedAt      time.Time `json:"computedAt"`
}

// NewFeeQuote flattens result into a quote row. Hub asset results carry no
// total, so Fee is filled with AssetFee plus ProtocolFee.
func NewFeeQuote(meta model.Meta, ref model.PoolRef, pair model.PoolPair, result model.FeeResult, now time.Time) (FeeQuote, error) {
	quote := FeeQuote{
		ParaBlockNumber: meta.ParaBlockNumber,
		PoolType:        string(ref.Type),
		PoolAddress:     ref.Address,
		AssetIn:         pair.AssetIn,
		AssetOut:        pair.AssetOut,
		AssetFee:        result.AssetFee,
		ProtocolFee:     result.ProtocolFee,
		Min:             result.Min,
		Max:             result.Max,
		Fee:             result.Fee,
		ExchangeFee:     result.ExchangeFee,
		RepayFee:        result.RepayFee,
		ComputedAt:      now.UTC(),
	}
	if meta.ParaBlockHash != (common.Hash{}) {
		quote.ParaBlockHash = meta.ParaBlockHash.Hex()
	}

	if quote.Fee == "" && result.AssetFee != "" && result.ProtocolFee != "" {
		assetFee, err := decimal.NewFromString(result.AssetFee)
		if err != nil {
			return FeeQuote{}, fmt.Errorf("parse asset fee: %w", err)
		}
		protocolFee, err := decimal.NewFromString(result.ProtocolFee)
		if err != nil {
			return FeeQuote{}, fmt.Errorf("parse protocol fee: %w", err)
		}
		quote.Fee = assetFee.Add(protocolFee).String()
	}
	return quote, nil
}

// Multi fans a batch out to every sink in order and stops at the first error.
type Multi []Storage

func (m Multi) PutQuoteBatch(quotes []FeeQuote) error {
	for _, sink := range m {
		if err := sink.PutQuoteBatch(quotes); err != nil {
			return err
		}
	}
	return nil
}
