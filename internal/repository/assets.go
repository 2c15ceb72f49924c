package repository

import (
	"context"
	"errors"
	"fmt"

	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const assetColumns = `id, symbol, name, instrument_type, last_quote_local, last_quote_foreign`

type assetRow struct {
	Id               uuid.UUID
	Symbol           string
	Name             string
	InstrumentType   string
	LastQuoteLocal   decimal.Decimal
	LastQuoteForeign decimal.Decimal
}

// GetAssets retrieves the asset catalog with the two latest quotes per asset.
func (db *Database) GetAssets(ctx context.Context) ([]types.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY symbol`

	rows, err := db.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	var assets []types.Asset
	for rows.Next() {
		var dao assetRow
		if err := rows.Scan(&dao.Id, &dao.Symbol, &dao.Name, &dao.InstrumentType,
			&dao.LastQuoteLocal, &dao.LastQuoteForeign); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, convertAsset(dao))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetAssetBySymbol retrieves a single types.Asset by its symbol.
func (db *Database) GetAssetBySymbol(ctx context.Context, symbol string) (*types.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE symbol = $1`

	var dao assetRow
	err := db.conn.QueryRow(ctx, query, symbol).Scan(&dao.Id, &dao.Symbol, &dao.Name,
		&dao.InstrumentType, &dao.LastQuoteLocal, &dao.LastQuoteForeign)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("symbol %s %w", symbol, ErrAssetNotFound)
		}
		return nil, err
	}
	asset := convertAsset(dao)
	return &asset, nil
}

func convertAsset(dao assetRow) types.Asset {
	return types.Asset{
		Id:               dao.Id,
		Symbol:           dao.Symbol,
		Name:             dao.Name,
		Type:             types.InstrumentType(dao.InstrumentType),
		LastQuoteLocal:   dao.LastQuoteLocal,
		LastQuoteForeign: dao.LastQuoteForeign,
	}
}
