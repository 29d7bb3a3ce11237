package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WeiExponent is the decimal exponent between wei and ETH
const WeiExponent = -18

// WeiToEther converts a raw wei amount into ETH without losing precision
func WeiToEther(wei string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(wei)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid wei amount %q: %w", wei, err)
	}
	return d.Shift(WeiExponent), nil
}
