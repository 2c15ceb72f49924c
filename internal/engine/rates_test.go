package engine

import (
	"errors"
	"testing"
	"time"

	"wealthtracker/types"

	"github.com/shopspring/decimal"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, n, 0, 0, 0, 0, time.UTC)
}

func testRates() *RateTable {
	return NewRateTable([]types.ExchangeRate{
		{Date: day(1), Rate: decimal.RequireFromString("1000")},
		{Date: day(2), Rate: decimal.RequireFromString("1050")},
		{Date: day(3), Rate: decimal.RequireFromString("1100")},
	})
}

func TestRateTableConvert(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		from    types.Currency
		to      types.Currency
		date    time.Time
		want    string
		wantErr error
	}{
		{
			name:   "same currency needs no rate",
			amount: "123.45",
			from:   types.CurrencyARS,
			to:     types.CurrencyARS,
			date:   day(9), // no rate for this date
			want:   "123.45",
		},
		{
			name:   "foreign to local multiplies",
			amount: "100",
			from:   types.CurrencyUSD,
			to:     types.CurrencyARS,
			date:   day(1),
			want:   "100000",
		},
		{
			name:   "local to foreign divides",
			amount: "105000",
			from:   types.CurrencyARS,
			to:     types.CurrencyUSD,
			date:   day(2),
			want:   "100",
		},
		{
			name:    "missing rate is an error, not zero",
			amount:  "100",
			from:    types.CurrencyUSD,
			to:      types.CurrencyARS,
			date:    day(9),
			wantErr: RateUnavailableErr,
		},
	}

	rates := testRates()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rates.Convert(decimal.RequireFromString(tc.amount), tc.from, tc.to, tc.date)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got error %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRateTableIgnoresTimeOfDay(t *testing.T) {
	rates := testRates()
	noon := time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)

	got, err := rates.Rate(noon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("got %s, want 1000", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	rates := testRates()
	amount := decimal.RequireFromString("123456.789")

	foreign, err := rates.Convert(amount, types.CurrencyARS, types.CurrencyUSD, day(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := rates.Convert(foreign, types.CurrencyUSD, types.CurrencyARS, day(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tolerance := decimal.RequireFromString("0.0000001")
	if amount.Sub(back).Abs().GreaterThan(tolerance) {
		t.Fatalf("round trip drifted: %s -> %s", amount, back)
	}
}
