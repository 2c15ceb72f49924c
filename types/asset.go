package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InstrumentType string

const (
	InstrumentEquity InstrumentType = "EQUITY"
	InstrumentBond   InstrumentType = "BOND"
	InstrumentEtf    InstrumentType = "ETF"
	InstrumentOther  InstrumentType = "OTHER"
)

// Asset is the reference record for a tradable instrument, including the two
// latest market quotes. Bonds quote per 100 units of face value.
type Asset struct {
	Id               uuid.UUID       `json:"id"`
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Type             InstrumentType  `json:"type"`
	LastQuoteLocal   decimal.Decimal `json:"lastQuoteLocal"`
	LastQuoteForeign decimal.Decimal `json:"lastQuoteForeign"`
}

// QuoteScale returns the divisor the per-100 quoting convention applies to
// nominal quantity*price products for this asset.
func (a Asset) QuoteScale() decimal.Decimal {
	if a.Type == InstrumentBond {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(1)
}
