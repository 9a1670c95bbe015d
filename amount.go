package leaderboard

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MotesDecimals is the number of decimal places of the native token:
// 10^9 motes = 1 CSPR.
const MotesDecimals = 9

// AmountMotes is a big integer amount of motes, the smallest unit of CSPR.
type AmountMotes big.Int

func (amount AmountMotes) String() string {
	bigInt := big.Int(amount)
	return bigInt.String()
}

// Int converts an AmountMotes into *big.Int
func (amount AmountMotes) Int() *big.Int {
	bigInt := big.Int(amount)
	return &bigInt
}

// Use the underlying big.Int.Cmp()
func (amount *AmountMotes) Cmp(other *AmountMotes) int {
	return amount.Int().Cmp(other.Int())
}

// Use the underlying big.Int.Add()
func (amount *AmountMotes) Add(x *AmountMotes) AmountMotes {
	sum := new(big.Int)
	sum.Set((*big.Int)(amount))
	return AmountMotes(*sum.Add(sum, x.Int()))
}

var zero = big.NewInt(0)

func (amount *AmountMotes) IsZero() bool {
	return amount.Int().Cmp(zero) == 0
}

// ToCSPR converts a motes amount to its decimal CSPR value.
func (amount *AmountMotes) ToCSPR() decimal.Decimal {
	return decimal.NewFromBigInt(amount.Int(), -MotesDecimals)
}

// CSPRString formats a motes amount as a CSPR decimal string with exactly
// 9 decimal places, e.g. 1000000000 motes -> "1.000000000".
func (amount *AmountMotes) CSPRString() string {
	return amount.ToCSPR().StringFixed(MotesDecimals)
}

// NewAmountMotesFromUint64 creates a new AmountMotes from a uint64
func NewAmountMotesFromUint64(u64 uint64) AmountMotes {
	bigInt := new(big.Int).SetUint64(u64)
	return AmountMotes(*bigInt)
}

// NewAmountMotesFromStr creates a new AmountMotes from a string.
// Unparseable input yields zero, so a balance or stake the API reports in
// an unexpected shape counts as nothing instead of failing the account.
func NewAmountMotesFromStr(str string) AmountMotes {
	bigInt, ok := new(big.Int).SetString(str, 0)
	if !ok {
		return NewAmountMotesFromUint64(0)
	}
	return AmountMotes(*bigInt)
}

var _ json.Marshaler = AmountMotes{}
var _ json.Unmarshaler = &AmountMotes{}

func (amount AmountMotes) MarshalJSON() ([]byte, error) {
	return []byte("\"" + amount.String() + "\""), nil
}

func (amount *AmountMotes) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	str := strings.Trim(string(p), "\"")
	var z big.Int
	_, ok := z.SetString(str, 0)
	if !ok {
		return fmt.Errorf("not a valid big integer: %s", p)
	}
	*amount = AmountMotes(z)
	return nil
}
