package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Operation string

type Currency string

const (
	OperationBuy  Operation = "BUY"
	OperationSell Operation = "SELL"

	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"

	// The engine books every amount in both of these.
	CurrencyLocal   = CurrencyARS
	CurrencyForeign = CurrencyUSD
)

// Transaction is a single buy or sell as recorded in the ledger. Immutable
// once matched; edits go through the CRUD layer, which triggers a full
// recomputation.
type Transaction struct {
	Id            uuid.UUID       `json:"id"`
	AssetId       uuid.UUID       `json:"assetId"`
	BrokerId      uuid.UUID       `json:"brokerId"`
	PortfolioId   uuid.UUID       `json:"portfolioId"`
	Operation     Operation       `json:"operation"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TradeCurrency Currency        `json:"tradeCurrency"`
	TradeDate     time.Time       `json:"tradeDate"`
	// Sequence is the ledger insertion order, used as the tie-break when two
	// transactions share a trade date. FIFO results depend on it.
	Sequence int64 `json:"sequence"`
}
