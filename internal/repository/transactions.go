package repository

import (
	"context"
	"fmt"
	"time"

	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, asset_id, broker_id, portfolio_id, operation, quantity, unit_price, trade_currency, trade_date, seq`

type transactionRow struct {
	Id            uuid.UUID
	AssetId       uuid.UUID
	BrokerId      uuid.UUID
	PortfolioId   uuid.UUID
	Operation     string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TradeCurrency string
	TradeDate     time.Time
	Seq           int64
}

// GetTransactions retrieves a portfolio's full ledger in (trade_date, seq)
// order. An empty ledger yields ErrNoTransactions.
func (db *Database) GetTransactions(ctx context.Context, portfolioId uuid.UUID) ([]types.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE portfolio_id = $1
		ORDER BY trade_date, seq`

	rows, err := db.conn.Query(ctx, query, portfolioId)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var daos []transactionRow
	for rows.Next() {
		var dao transactionRow
		if err := rows.Scan(&dao.Id, &dao.AssetId, &dao.BrokerId, &dao.PortfolioId,
			&dao.Operation, &dao.Quantity, &dao.UnitPrice, &dao.TradeCurrency,
			&dao.TradeDate, &dao.Seq); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		daos = append(daos, dao)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(daos) == 0 {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioId, ErrNoTransactions)
	}
	return convertTransactions(daos), nil
}

// GetTransactionsByBroker retrieves only the given broker's slice of the
// ledger, for broker-scoped recomputation.
func (db *Database) GetTransactionsByBroker(ctx context.Context, portfolioId, brokerId uuid.UUID) ([]types.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE portfolio_id = $1 AND broker_id = $2
		ORDER BY trade_date, seq`

	rows, err := db.conn.Query(ctx, query, portfolioId, brokerId)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var daos []transactionRow
	for rows.Next() {
		var dao transactionRow
		if err := rows.Scan(&dao.Id, &dao.AssetId, &dao.BrokerId, &dao.PortfolioId,
			&dao.Operation, &dao.Quantity, &dao.UnitPrice, &dao.TradeCurrency,
			&dao.TradeDate, &dao.Seq); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		daos = append(daos, dao)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(daos) == 0 {
		return nil, fmt.Errorf("portfolio %s broker %s: %w", portfolioId, brokerId, ErrNoTransactions)
	}
	return convertTransactions(daos), nil
}

func convertTransactions(daos []transactionRow) []types.Transaction {
	var txs []types.Transaction
	for _, dao := range daos {
		txs = append(txs, types.Transaction{
			Id:            dao.Id,
			AssetId:       dao.AssetId,
			BrokerId:      dao.BrokerId,
			PortfolioId:   dao.PortfolioId,
			Operation:     types.Operation(dao.Operation),
			Quantity:      dao.Quantity,
			UnitPrice:     dao.UnitPrice,
			TradeCurrency: types.Currency(dao.TradeCurrency),
			TradeDate:     dao.TradeDate,
			Sequence:      dao.Seq,
		})
	}
	return txs
}
