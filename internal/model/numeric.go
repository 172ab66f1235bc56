package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"feeScope/internal/fixed"
)

// Numeric is a loosely typed numeric snapshot field. It accepts JSON numbers,
// quoted numbers and null, and always encodes as a quoted string so large
// balances survive a round trip.
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = Numeric(num.String())
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// IsZero reports whether the field was absent.
func (n Numeric) IsZero() bool {
	return n == ""
}

func (n Numeric) String() string {
	return string(n)
}

func (n Numeric) Uint64() (uint64, error) {
	if n == "" {
		return 0, nil
	}
	val, err := strconv.ParseUint(string(n), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned int: %s", string(n))
	}
	return val, nil
}

func (n Numeric) Int64() (int64, error) {
	if n == "" {
		return 0, nil
	}
	val, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int: %s", string(n))
	}
	return val, nil
}

func (n Numeric) BigInt() (*big.Int, error) {
	return fixed.ParseBigInt(string(n))
}

func (n Numeric) Decimal() (decimal.Decimal, error) {
	return fixed.ParseDecimal(string(n))
}

// NumericFromUint64 formats v as a Numeric.
func NumericFromUint64(v uint64) Numeric {
	return Numeric(strconv.FormatUint(v, 10))
}

// NumericFromInt64 formats v as a Numeric.
func NumericFromInt64(v int64) Numeric {
	return Numeric(strconv.FormatInt(v, 10))
}

// NumericFromBig formats v as a Numeric; nil is encoded as absent.
func NumericFromBig(v *big.Int) Numeric {
	if v == nil {
		return ""
	}
	return Numeric(v.String())
}

// NumericFromDecimal formats v as a Numeric.
func NumericFromDecimal(v decimal.Decimal) Numeric {
	return Numeric(v.String())
}
