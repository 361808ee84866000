package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceResolver resolves the unit price of a holding.
//
// Implementations absorb their own failures: network errors, timeouts and
// unexpected payload shapes are logged and reported as ok == false, never
// returned as errors. Callers must not assume a price is always resolved.
// Fixed-price asset types (cash, 401k, hsa, espp) resolve to 1 without any
// external call; types outside the supported set resolve to ok == false.
type PriceResolver interface {
	Resolve(ticker string, typ AssetType) (price decimal.Decimal, ok bool)
}

// Mode selects the missing-data policy of a valuation pass.
type Mode int

const (
	// FreshBuild constructs a new valued table: rows missing a required
	// field or an obtainable price are dropped and reported, and the
	// long-term-hold status is recomputed.
	FreshBuild Mode = iota
	// Refresh revalues an existing table in place: no row is ever dropped,
	// an unresolvable price keeps its previously stored value, and the
	// long-term-hold status is left untouched.
	Refresh
)

// DefaultLTHYears is the default long-term-hold age threshold, in years.
const DefaultLTHYears = 2

// Valuer computes the derived fields of canonical holdings.
type Valuer struct {
	Resolver PriceResolver

	// LTHYears is the long-term-hold age threshold in years.
	LTHYears float64

	// Now anchors long-term-hold classification. Zero means today.
	Now Date
}

// Skip records one input row dropped by a fresh build, with the row's
// position in the input (0-based) and the reason it was dropped.
type Skip struct {
	Index  int
	Ticker string
	Reason string
}

func (s Skip) String() string {
	ticker := s.Ticker
	if ticker == "" {
		ticker = "(no ticker)"
	}
	return fmt.Sprintf("row %d %s: %s", s.Index, ticker, s.Reason)
}

// Result is the outcome of one valuation pass.
type Result struct {
	// Holdings are the valued rows, in input order.
	Holdings []Holding
	// Total is the accumulated value of all rows in the pass.
	Total decimal.Decimal
	// Skipped lists the rows a fresh build dropped. Always empty in
	// refresh mode.
	Skipped []Skip
}

var hundred = decimal.NewFromInt(100)

// Build runs a fresh-build valuation pass over 'rows'.
//
// Each surviving row gets its four derived fields recomputed as a unit, plus
// a fresh long-term-hold classification. Rows missing ticker, type or
// quantity are skipped and reported; so are rows of a dynamic type whose
// price cannot be resolved — their value is never silently zeroed.
func (v Valuer) Build(rows []Holding) Result {
	var res Result
	for i, h := range rows {
		if err := h.Validate(); err != nil {
			res.Skipped = append(res.Skipped, Skip{Index: i, Ticker: h.Ticker, Reason: err.Error()})
			continue
		}

		price, ok := v.price(h)
		if !ok {
			res.Skipped = append(res.Skipped, Skip{Index: i, Ticker: h.Ticker,
				Reason: fmt.Sprintf("no price available for type %q", h.Type)})
			continue
		}

		h = v.revalue(h, price, FreshBuild)
		h.LongTermHold = v.classify(h.PurchaseDate)
		res.Total = res.Total.Add(h.Value)
		res.Holdings = append(res.Holdings, h)
	}
	return res
}

// RefreshAll runs a refresh valuation pass over 'rows'.
//
// Every row survives. When a dynamic price cannot be resolved the previously
// stored price is retained and the row is revalued with it. Long-term-hold
// classification is not recomputed: the table already carries it.
func (v Valuer) RefreshAll(rows []Holding) Result {
	res := Result{Holdings: make([]Holding, 0, len(rows))}
	for _, h := range rows {
		price, ok := v.price(h)
		if !ok {
			price = h.CurrentPrice
		}
		h = v.revalue(h, price, Refresh)
		res.Total = res.Total.Add(h.Value)
		res.Holdings = append(res.Holdings, h)
	}
	return res
}

// price returns the unit price for the holding. Cash, 401k and hsa are
// priced inline since their valuation formula needs no resolver; every other
// type goes through the resolver contract.
func (v Valuer) price(h Holding) (decimal.Decimal, bool) {
	switch h.Type {
	case Cash, Retirement401, HSA:
		return decimal.NewFromInt(1), true
	}
	return v.Resolver.Resolve(h.Ticker, h.Type)
}

// revalue computes the four derived fields as a unit, from the resolved unit
// price. The zero-cost-basis default for the percent column is the one
// mode-dependent divergence: 100 on a fresh build, 0 on a refresh.
func (v Valuer) revalue(h Holding, price decimal.Decimal, mode Mode) Holding {
	quantity := h.Quantity.Decimal

	switch {
	case h.Type == Cash:
		h.CurrentPrice = price
		h.Value = quantity
		h.GainLoss = decimal.Zero
		h.PercentGainLoss = decimal.Zero

	case h.Type.TotalCostBasis():
		// 401k and hsa carry a total cost basis.
		h.CurrentPrice = price
		h.Value = price.Mul(quantity)
		h.GainLoss = h.Value.Sub(h.CostBasis)
		if h.CostBasis.IsPositive() {
			h.PercentGainLoss = h.GainLoss.Div(h.CostBasis).Mul(hundred)
		} else {
			h.PercentGainLoss = hundred
		}

	default:
		// Market-priced types carry a per-unit cost basis.
		h.CurrentPrice = price
		h.Value = price.Mul(quantity)
		cost := h.CostBasis.Mul(quantity)
		if h.CostBasis.IsPositive() {
			h.GainLoss = h.Value.Sub(cost)
			if cost.IsPositive() {
				h.PercentGainLoss = h.GainLoss.Div(cost).Mul(hundred)
			} else {
				h.PercentGainLoss = v.zeroCostPercent(mode)
			}
		} else {
			h.GainLoss = h.Value
			h.PercentGainLoss = v.zeroCostPercent(mode)
		}
	}
	return h
}

func (v Valuer) zeroCostPercent(mode Mode) decimal.Decimal {
	if mode == FreshBuild {
		return hundred
	}
	return decimal.Zero
}

// classify derives the long-term-hold status from a raw purchase date.
func (v Valuer) classify(purchaseDate string) HoldStatus {
	if purchaseDate == "" {
		return HoldNoDate
	}
	d, err := ParseDate(purchaseDate)
	if err != nil {
		return HoldInvalidDate
	}
	now := v.Now
	if now.IsZero() {
		now = Today()
	}
	threshold := v.LTHYears
	if threshold == 0 {
		threshold = DefaultLTHYears
	}
	if d.YearsUntil(now) > threshold {
		return HoldGreen
	}
	return HoldRed
}
