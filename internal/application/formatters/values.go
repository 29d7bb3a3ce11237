package formatters

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bimakw/wallet-console/internal/domain/entities"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z"
	etherSuffix     = " ETH"
	etherDecimals   = 18
)

// etherAmount renders a raw wei amount as ETH with 18 fractional digits
func etherAmount(wei string) Value {
	if wei == "" {
		return Undefined()
	}
	eth, err := entities.WeiToEther(wei)
	if err != nil {
		return Undefined()
	}
	return Text(eth.StringFixed(etherDecimals) + etherSuffix)
}

// etherBalance renders an already converted balance
func etherBalance(balance decimal.NullDecimal) Value {
	if !balance.Valid {
		return Undefined()
	}
	return Text(balance.Decimal.String() + etherSuffix)
}

// timestamp normalises an upstream timestamp to UTC with milliseconds
func timestamp(s string) Value {
	if s == "" {
		return Undefined()
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Undefined()
	}
	return Text(t.UTC().Format(timestampLayout))
}

func yesNo(b bool) Value {
	if b {
		return Text("Yes")
	}
	return Text("No")
}

func orUndefined(s string) Value {
	return TextOr(s, Undefined())
}

func orNotAvailable(s string) Value {
	return TextOr(s, Text(notAvailable))
}
