package engine

import (
	"errors"
	"fmt"
	"time"

	"wealthtracker/types"

	"github.com/shopspring/decimal"
)

var RateUnavailableErr = errors.New("no exchange rate for date")

const dateLayout = "2006-01-02"

// RateTable is a date-keyed lookup of local-per-foreign exchange rates.
// One rate per calendar date; time-of-day is ignored.
type RateTable struct {
	rates map[string]decimal.Decimal
}

func NewRateTable(rates []types.ExchangeRate) *RateTable {
	t := &RateTable{rates: make(map[string]decimal.Decimal, len(rates))}
	for _, r := range rates {
		t.rates[dateKey(r.Date)] = r.Rate
	}
	return t
}

// Rate returns the rate for the given date.
func (t *RateTable) Rate(date time.Time) (decimal.Decimal, error) {
	rate, ok := t.rates[dateKey(date)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: %w", dateKey(date), RateUnavailableErr)
	}
	return rate, nil
}

// Convert converts amount between the two booking currencies at the given
// date's rate. Same-currency conversion is the identity and needs no rate.
func (t *RateTable) Convert(amount decimal.Decimal, from, to types.Currency, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := t.Rate(date)
	if err != nil {
		return decimal.Zero, err
	}
	if from == types.CurrencyLocal {
		return amount.Div(rate), nil
	}
	return amount.Mul(rate), nil
}

func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}
