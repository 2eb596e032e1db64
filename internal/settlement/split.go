package settlement

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Shares divides amount into n equal shares of whole minor units at the given
// precision. The remainder is handed out one unit at a time to the first
// shares, so the shares always sum to amount rounded to places. Callers
// assign shares to members in a fixed order (Engine.Compute uses name order).
//
// Returns nil when n is not positive.
func Shares(amount decimal.Decimal, n int, places int32) []decimal.Decimal {
	if n <= 0 {
		return nil
	}

	units := amount.Round(places).Shift(places).BigInt()
	base, rem := new(big.Int).QuoRem(units, big.NewInt(int64(n)), new(big.Int))
	extra := int(rem.Int64())

	baseShare := decimal.NewFromBigInt(base, -places)
	unit := decimal.New(1, -places)

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = baseShare
		if i < extra {
			shares[i] = shares[i].Add(unit)
		}
	}
	return shares
}
