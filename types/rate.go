package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the local-per-foreign rate for one calendar date. Dates
// with no entry have no known rate.
type ExchangeRate struct {
	Date time.Time       `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}
