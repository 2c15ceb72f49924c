package repository

import (
	"context"
	"fmt"

	"wealthtracker/types"
)

// GetExchangeRates retrieves the full local-per-foreign rate history, one
// row per calendar date.
func (db *Database) GetExchangeRates(ctx context.Context) ([]types.ExchangeRate, error) {
	query := `SELECT rate_date, rate_local_per_foreign
		FROM exchange_rates
		ORDER BY rate_date`

	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []types.ExchangeRate
	for rows.Next() {
		var r types.ExchangeRate
		if err := rows.Scan(&r.Date, &r.Rate); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		rates = append(rates, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rates, nil
}
