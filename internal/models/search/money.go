package search

import "github.com/shopspring/decimal"

// Money is a fixed-point amount: whole units plus nanos (1e-9 units).
type Money struct {
	CurrencyCode string `json:"currencyCode"`
	Units        int64  `json:"units"`
	Nanos        int64  `json:"nanos"`
}

func (m Money) Amount() decimal.Decimal {
	return decimal.New(m.Units, 0).Add(decimal.New(m.Nanos, -9))
}

// SignConsistent reports whether units and nanos do not disagree in sign.
// The upstream is expected to keep them consistent; nothing enforces it.
func (m Money) SignConsistent() bool {
	return !(m.Units > 0 && m.Nanos < 0) && !(m.Units < 0 && m.Nanos > 0)
}
