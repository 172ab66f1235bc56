package watch

import (
	"fmt"
	"math/big"
	"strings"

	"feeScope/internal/model"
)

// Request names one fee quote taken on every new snapshot.
type Request struct {
	Ref  model.PoolRef
	Pair model.PoolPair
}

// ParseRequest parses "type:address:assetIn:assetOut[:balanceIn:balanceOut]".
// Balances are base-10 integers in the asset's smallest unit.
func ParseRequest(input string) (Request, error) {
	parts := strings.Split(strings.TrimSpace(input), ":")
	if len(parts) != 4 && len(parts) != 6 {
		return Request{}, fmt.Errorf("invalid quote request %q: want type:address:assetIn:assetOut[:balanceIn:balanceOut]", input)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Request{}, fmt.Errorf("invalid quote request %q: empty field %d", input, i+1)
		}
	}

	poolType, err := model.ParsePoolType(parts[0])
	if err != nil {
		return Request{}, err
	}
	req := Request{
		Ref:  model.PoolRef{Type: poolType, Address: parts[1]},
		Pair: model.PoolPair{AssetIn: parts[2], AssetOut: parts[3]},
	}
	if len(parts) == 6 {
		if req.Pair.BalanceIn, err = parseBalance(parts[4]); err != nil {
			return Request{}, fmt.Errorf("balance in: %w", err)
		}
		if req.Pair.BalanceOut, err = parseBalance(parts[5]); err != nil {
			return Request{}, fmt.Errorf("balance out: %w", err)
		}
	}
	return req, nil
}

// ParseRequests parses every input, failing on the first bad one.
func ParseRequests(inputs []string) ([]Request, error) {
	out := make([]Request, 0, len(inputs))
	for _, input := range inputs {
		req, err := ParseRequest(input)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func parseBalance(input string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(input, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid balance %q", input)
	}
	return value, nil
}
