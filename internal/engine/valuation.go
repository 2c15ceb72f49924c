package engine

import (
	"sort"

	"wealthtracker/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Summary holds dual-currency totals for a broker or a whole portfolio.
// Percentages are derived from the summed bases, never averaged across
// positions.
type Summary struct {
	CostBasisLocal     decimal.Decimal
	CostBasisForeign   decimal.Decimal
	MarketValueLocal   decimal.Decimal
	MarketValueForeign decimal.Decimal
	PnlLocal           decimal.Decimal
	PnlForeign         decimal.Decimal
	PnlPctLocal        decimal.Decimal
	PnlPctForeign      decimal.Decimal
}

// Aggregate folds surviving lots into one holding per asset, valued at the
// asset's latest quotes. Fully sold assets never reach here: their lots carry
// no remaining quantity and are dropped by the matcher.
func Aggregate(lots []types.Lot, assets map[uuid.UUID]types.Asset) []types.Holding {
	byAsset := make(map[uuid.UUID][]types.Lot)
	for _, lot := range lots {
		byAsset[lot.AssetId] = append(byAsset[lot.AssetId], lot)
	}

	holdings := make([]types.Holding, 0, len(byAsset))
	for assetId, assetLots := range byAsset {
		asset := assets[assetId]

		quantity := decimal.Zero
		costLocal := decimal.Zero
		costForeign := decimal.Zero
		for _, lot := range assetLots {
			quantity = quantity.Add(lot.Remaining)
			costLocal = costLocal.Add(lot.CostLocal())
			costForeign = costForeign.Add(lot.CostForeign())
		}

		scale := asset.QuoteScale()
		mvLocal := quantity.Mul(asset.LastQuoteLocal).Div(scale)
		mvForeign := quantity.Mul(asset.LastQuoteForeign).Div(scale)
		pnlLocal := mvLocal.Sub(costLocal)
		pnlForeign := mvForeign.Sub(costForeign)

		holdings = append(holdings, types.Holding{
			AssetId:            assetId,
			Symbol:             asset.Symbol,
			Quantity:           quantity,
			CostBasisLocal:     costLocal,
			CostBasisForeign:   costForeign,
			MarketValueLocal:   mvLocal,
			MarketValueForeign: mvForeign,
			PnlLocal:           pnlLocal,
			PnlForeign:         pnlForeign,
			PnlPctLocal:        pnlPct(pnlLocal, costLocal),
			PnlPctForeign:      pnlPct(pnlForeign, costForeign),
		})
	}

	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings
}

// Summarize sums cost basis and market value across holdings and derives the
// totals' P&L from the sums.
func Summarize(holdings []types.Holding) Summary {
	var s Summary
	for _, h := range holdings {
		s.CostBasisLocal = s.CostBasisLocal.Add(h.CostBasisLocal)
		s.CostBasisForeign = s.CostBasisForeign.Add(h.CostBasisForeign)
		s.MarketValueLocal = s.MarketValueLocal.Add(h.MarketValueLocal)
		s.MarketValueForeign = s.MarketValueForeign.Add(h.MarketValueForeign)
	}
	s.PnlLocal = s.MarketValueLocal.Sub(s.CostBasisLocal)
	s.PnlForeign = s.MarketValueForeign.Sub(s.CostBasisForeign)
	s.PnlPctLocal = pnlPct(s.PnlLocal, s.CostBasisLocal)
	s.PnlPctForeign = pnlPct(s.PnlForeign, s.CostBasisForeign)
	return s
}

// pnlPct guards the division: a zero or negative cost basis yields 0, never
// NaN or an infinity.
func pnlPct(pnl, costBasis decimal.Decimal) decimal.Decimal {
	if !costBasis.IsPositive() {
		return decimal.Zero
	}
	return pnl.Div(costBasis).Mul(oneHundred)
}
