package engine

import (
	"errors"
	"fmt"
	"sort"

	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	InsufficientLotsErr = errors.New("sell quantity exceeds open lots")
	UnknownOperationErr = errors.New("unknown transaction operation")
	UnknownAssetErr     = errors.New("transaction references unknown asset")
)

type partitionKey struct {
	asset  uuid.UUID
	broker uuid.UUID
}

// MatchLots reconstructs the open cost-basis lots implied by a transaction
// history. Transactions are partitioned by (asset, broker), ordered by trade
// date with the ledger sequence as tie-break, and folded FIFO: a buy pushes a
// lot costed in both currencies at that date's rate, a sell drains lots from
// the oldest forward. A sell that exceeds everything bought in its partition
// fails with InsufficientLotsErr rather than silently truncating.
//
// Only lots with remaining quantity survive into the result. The result is
// ordered by trade date and sequence, so equal inputs always yield equal
// outputs.
func MatchLots(txs []types.Transaction, rates *RateTable, assets map[uuid.UUID]types.Asset) ([]types.Lot, error) {
	partitions := make(map[partitionKey][]types.Transaction)
	for _, tx := range txs {
		key := partitionKey{asset: tx.AssetId, broker: tx.BrokerId}
		partitions[key] = append(partitions[key], tx)
	}

	var open []types.Lot
	for key, part := range partitions {
		asset, ok := assets[key.asset]
		if !ok {
			return nil, fmt.Errorf("asset %s: %w", key.asset, UnknownAssetErr)
		}
		lots, err := matchPartition(part, asset, rates)
		if err != nil {
			return nil, err
		}
		for _, lot := range lots {
			if lot.Remaining.IsPositive() {
				open = append(open, lot)
			}
		}
	}

	sort.Slice(open, func(i, j int) bool {
		if !open[i].TradeDate.Equal(open[j].TradeDate) {
			return open[i].TradeDate.Before(open[j].TradeDate)
		}
		return open[i].Sequence < open[j].Sequence
	})
	return open, nil
}

// matchPartition folds one (asset, broker) partition's transactions into its
// lot queue. The queue keeps fully consumed lots in place; callers filter on
// remaining quantity.
func matchPartition(part []types.Transaction, asset types.Asset, rates *RateTable) ([]types.Lot, error) {
	sorted := sortTransactions(part)

	var lots []types.Lot
	for _, tx := range sorted {
		switch tx.Operation {
		case types.OperationBuy:
			lot, err := newLot(tx, asset, rates)
			if err != nil {
				return nil, err
			}
			lots = append(lots, lot)

		case types.OperationSell:
			pending := tx.Quantity
			for i := range lots {
				if !lots[i].Remaining.IsPositive() {
					continue
				}
				used := decimal.Min(pending, lots[i].Remaining)
				lots[i].Remaining = lots[i].Remaining.Sub(used)
				pending = pending.Sub(used)
				if pending.IsZero() {
					break
				}
			}
			if pending.IsPositive() {
				return nil, fmt.Errorf("asset %s broker %s: sell of %s short by %s: %w",
					asset.Symbol, tx.BrokerId, tx.Quantity, pending, InsufficientLotsErr)
			}

		default:
			return nil, fmt.Errorf("%q: %w", tx.Operation, UnknownOperationErr)
		}
	}
	return lots, nil
}

func newLot(tx types.Transaction, asset types.Asset, rates *RateTable) (types.Lot, error) {
	// Bonds trade per 100 units of face value, so the nominal product is
	// scaled once before costing.
	gross := tx.Quantity.Mul(tx.UnitPrice).Div(asset.QuoteScale())

	costLocal, err := rates.Convert(gross, tx.TradeCurrency, types.CurrencyLocal, tx.TradeDate)
	if err != nil {
		return types.Lot{}, fmt.Errorf("transaction %s: %w", tx.Id, err)
	}
	costForeign, err := rates.Convert(gross, tx.TradeCurrency, types.CurrencyForeign, tx.TradeDate)
	if err != nil {
		return types.Lot{}, fmt.Errorf("transaction %s: %w", tx.Id, err)
	}

	return types.Lot{
		AssetId:         tx.AssetId,
		BrokerId:        tx.BrokerId,
		TransactionId:   tx.Id,
		TradeDate:       tx.TradeDate,
		Sequence:        tx.Sequence,
		Quantity:        tx.Quantity,
		Remaining:       tx.Quantity,
		UnitCostLocal:   costLocal.Div(tx.Quantity),
		UnitCostForeign: costForeign.Div(tx.Quantity),
	}, nil
}

// ValidateSell checks a candidate sell against the recorded history of its
// (asset, broker) partition, so the input layer can reject an oversell before
// it is ever persisted. Only quantities matter here; no rates or quotes are
// needed.
func ValidateSell(history []types.Transaction, candidate types.Transaction) error {
	if candidate.Operation != types.OperationSell {
		return nil
	}

	var part []types.Transaction
	for _, tx := range history {
		if tx.AssetId == candidate.AssetId && tx.BrokerId == candidate.BrokerId {
			part = append(part, tx)
		}
	}
	part = append(part, candidate)

	open := decimal.Zero
	for _, tx := range sortTransactions(part) {
		switch tx.Operation {
		case types.OperationBuy:
			open = open.Add(tx.Quantity)
		case types.OperationSell:
			open = open.Sub(tx.Quantity)
			if open.IsNegative() {
				return fmt.Errorf("sell of %s short by %s: %w",
					tx.Quantity, open.Neg(), InsufficientLotsErr)
			}
		}
	}
	return nil
}

// sortTransactions returns a date-ordered copy, ties broken by ledger
// sequence. The input is left untouched.
func sortTransactions(txs []types.Transaction) []types.Transaction {
	sorted := append([]types.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].TradeDate.Equal(sorted[j].TradeDate) {
			return sorted[i].TradeDate.Before(sorted[j].TradeDate)
		}
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}
