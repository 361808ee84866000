// Package fidelity converts a Fidelity "Portfolio Positions" export into
// canonical folio holdings.
//
// The export is a positional CSV: one header row, one row per position, and
// free-text disclaimer lines at the bottom that are shorter than the column
// count and therefore dropped. Account classification is an ordered rule
// list evaluated per row, first match wins.
package fidelity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"folio"
)

// Column positions of the Fidelity export format.
const (
	colAccountID       = 0
	colAccountName     = 1
	colSymbol          = 2
	colDescription     = 3
	colQuantity        = 4
	colLastPrice       = 5
	colCurrentValue    = 7
	colGainLoss        = 10
	colPercentGainLoss = 11
	colCostBasis       = 13

	// minColumns drops short rows, notably the disclaimer footer.
	minColumns = 15
)

// Keywords matched by the classification rules.
var (
	pendingActivityKeywords = []string{"Pending Activity"}
	moneyMarketKeywords     = []string{"HELD IN MONEY MARKET"}
)

// rawRow is one typed line of a Fidelity export, numeric fields already
// cleaned of currency formatting.
type rawRow struct {
	AccountID   string
	AccountName string
	Symbol      string
	Description string

	Quantity        decimal.Decimal
	LastPrice       decimal.Decimal
	CurrentValue    decimal.Decimal
	GainLoss        decimal.Decimal
	PercentGainLoss decimal.Decimal
	CostBasis       decimal.Decimal // "Cost Basis Total" column: a total, not per unit
}

func newRawRow(record []string) rawRow {
	return rawRow{
		AccountID:       strings.TrimSpace(record[colAccountID]),
		AccountName:     strings.TrimSpace(record[colAccountName]),
		Symbol:          strings.TrimSpace(record[colSymbol]),
		Description:     strings.TrimSpace(record[colDescription]),
		Quantity:        folio.CleanNumeric(record[colQuantity]),
		LastPrice:       folio.CleanNumeric(record[colLastPrice]),
		CurrentValue:    folio.CleanNumeric(record[colCurrentValue]),
		GainLoss:        folio.CleanNumeric(record[colGainLoss]),
		PercentGainLoss: folio.CleanNumeric(strings.TrimSuffix(strings.TrimSpace(record[colPercentGainLoss]), "%")),
		CostBasis:       folio.CleanNumeric(record[colCostBasis]),
	}
}

// outcome is what one classification rule decides for a row.
type outcome struct {
	typ       folio.AssetType
	liquidity folio.Liquidity

	// tickerFromDescription uses the description as ticker: retirement
	// positions have no usable market symbol.
	tickerFromDescription bool

	// pending folds the row's value into its account's cash balance
	// instead of emitting a holding.
	pending bool
}

// rules is the ordered classification list; the first matching predicate
// wins.
var rules = []struct {
	match func(rawRow) bool
	out   outcome
}{
	{is401k, outcome{typ: folio.Retirement401, liquidity: folio.LiquidityLow, tickerFromDescription: true}},
	{isHSA, outcome{typ: folio.HSA, liquidity: folio.LiquidityLow}},
	{isPendingActivity, outcome{pending: true}},
	{isMoneyMarket, outcome{typ: folio.Cash, liquidity: folio.LiquidityHigh}},
	{func(rawRow) bool { return true }, outcome{typ: folio.Stock, liquidity: folio.LiquidityMedium}},
}

func is401k(r rawRow) bool { return strings.Contains(strings.ToLower(r.AccountName), "401k") }
func isHSA(r rawRow) bool  { return strings.Contains(strings.ToLower(r.AccountName), "hsa") }
func isPendingActivity(r rawRow) bool {
	return containsAny(r.Symbol, pendingActivityKeywords) || containsAny(r.Description, pendingActivityKeywords)
}
func isMoneyMarket(r rawRow) bool { return containsAny(r.Description, moneyMarketKeywords) }

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func classify(r rawRow) outcome {
	for _, rule := range rules {
		if rule.match(r) {
			return rule.out
		}
	}
	// unreachable, the last rule always matches
	return outcome{typ: folio.Stock, liquidity: folio.LiquidityMedium}
}

// Convert reads a Fidelity positions export from 'r' and returns canonical
// holdings: non-cash rows in input order, followed by one merged cash row
// per account that had any cash activity, in account order of appearance.
//
// All cash rows of one account are summed into a single holding (quantity
// stays 0, the summed current value is carried as the value). Pending
// activity rows are not emitted; their value accumulates per account and is
// folded into that account's cash balance after the full input is scanned.
// An account with pending activity but no cash balance loses the
// adjustment.
//
// The export carries no purchase date, so every emitted holding has an
// empty purchase date and a "No Date" long-term-hold status.
func Convert(r io.Reader) ([]folio.Holding, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("cannot read export header: %w", err)
	}

	var holdings []folio.Holding
	pending := make(map[string]decimal.Decimal)
	cash := make(map[string]*folio.Holding)
	var cashOrder []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read export record: %w", err)
		}
		if len(record) < minColumns {
			continue
		}

		row := newRawRow(record)
		out := classify(row)
		switch {
		case out.pending:
			pending[row.AccountID] = pending[row.AccountID].Add(row.CurrentValue)

		case out.typ == folio.Cash:
			balance, exists := cash[row.AccountID]
			if !exists {
				balance = &folio.Holding{
					Ticker:       row.Symbol,
					Type:         folio.Cash,
					Quantity:     folio.Q(decimal.Zero),
					Liquidity:    folio.LiquidityHigh,
					CurrentPrice: decimal.NewFromInt(1),
					LongTermHold: folio.HoldNoDate,
				}
				cash[row.AccountID] = balance
				cashOrder = append(cashOrder, row.AccountID)
			}
			balance.Value = balance.Value.Add(row.CurrentValue)

		default:
			ticker := row.Symbol
			if out.tickerFromDescription {
				ticker = row.Description
			}
			holdings = append(holdings, folio.Holding{
				Ticker:          ticker,
				Type:            out.typ,
				Quantity:        folio.Q(row.Quantity),
				CostBasis:       costBasis(out.typ, row),
				Liquidity:       out.liquidity,
				CurrentPrice:    row.LastPrice,
				Value:           row.CurrentValue,
				GainLoss:        row.GainLoss,
				PercentGainLoss: row.PercentGainLoss,
				LongTermHold:    folio.HoldNoDate,
			})
		}
	}

	// Fold each account's pending activity into its cash balance.
	for account, adjustment := range pending {
		if balance, ok := cash[account]; ok {
			balance.Value = balance.Value.Add(adjustment)
		}
	}

	for _, account := range cashOrder {
		holdings = append(holdings, *cash[account])
	}
	return holdings, nil
}

// costBasis maps the export's "Cost Basis Total" to canonical semantics:
// retirement types keep the total, market-priced types store it per unit.
func costBasis(typ folio.AssetType, row rawRow) decimal.Decimal {
	if typ.TotalCostBasis() || !row.Quantity.IsPositive() {
		return row.CostBasis
	}
	return row.CostBasis.Div(row.Quantity)
}
