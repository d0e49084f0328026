package extras

import "github.com/shopspring/decimal"

// Money mirrors the extras endpoint's money object. Nanos is 32-bit here,
// unlike the search endpoint.
type Money struct {
	CurrencyCode *string `json:"currencyCode,omitzero"`
	Units        int64   `json:"units"`
	Nanos        int32   `json:"nanos"`
}

func (m Money) Amount() decimal.Decimal {
	return decimal.New(m.Units, 0).Add(decimal.New(int64(m.Nanos), -9))
}

func (m Money) SignConsistent() bool {
	return !(m.Units > 0 && m.Nanos < 0) && !(m.Units < 0 && m.Nanos > 0)
}

// Currency returns the currency code or "" when the upstream omitted it.
func (m Money) Currency() string {
	if m.CurrencyCode == nil {
		return ""
	}
	return *m.CurrencyCode
}
