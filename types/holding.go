package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot is a surviving purchase record with its own dual-currency unit cost.
// Created by a buy, drained by later sells, never grown after creation.
type Lot struct {
	AssetId         uuid.UUID
	BrokerId        uuid.UUID
	TransactionId   uuid.UUID
	TradeDate       time.Time
	Sequence        int64
	Quantity        decimal.Decimal
	Remaining       decimal.Decimal
	UnitCostLocal   decimal.Decimal
	UnitCostForeign decimal.Decimal
}

// CostLocal is the lot's surviving cost basis in local currency.
func (l Lot) CostLocal() decimal.Decimal {
	return l.Remaining.Mul(l.UnitCostLocal)
}

// CostForeign is the lot's surviving cost basis in foreign currency.
func (l Lot) CostForeign() decimal.Decimal {
	return l.Remaining.Mul(l.UnitCostForeign)
}

// Holding aggregates one asset's surviving lots, optionally scoped to a
// single broker. All figures carry both currencies; the percentages differ
// between them whenever the rate moved since purchase.
type Holding struct {
	AssetId            uuid.UUID
	Symbol             string
	Quantity           decimal.Decimal
	CostBasisLocal     decimal.Decimal
	CostBasisForeign   decimal.Decimal
	MarketValueLocal   decimal.Decimal
	MarketValueForeign decimal.Decimal
	PnlLocal           decimal.Decimal
	PnlForeign         decimal.Decimal
	PnlPctLocal        decimal.Decimal
	PnlPctForeign      decimal.Decimal
}
