package folio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// stubResolver returns canned prices by ticker and records every lookup.
type stubResolver struct {
	prices map[string]string
	calls  []string
}

func (r *stubResolver) Resolve(ticker string, typ AssetType) (decimal.Decimal, bool) {
	r.calls = append(r.calls, ticker)
	if typ.FixedPrice() {
		return decimal.NewFromInt(1), true
	}
	if !typ.Known() {
		return decimal.Decimal{}, false
	}
	p, ok := r.prices[ticker]
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.RequireFromString(p), true
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildCashInvariants(t *testing.T) {
	// Whatever the resolver does, cash must value at 1 with value == quantity.
	resolver := &stubResolver{prices: map[string]string{"SPAXX": "999"}}
	v := Valuer{Resolver: resolver}

	res := v.Build([]Holding{
		{Ticker: "SPAXX", Type: Cash, Quantity: Q(dec("175"))},
	})
	if len(res.Holdings) != 1 {
		t.Fatalf("Build() kept %d rows, want 1", len(res.Holdings))
	}
	h := res.Holdings[0]
	if !h.CurrentPrice.Equal(dec("1")) {
		t.Errorf("cash CurrentPrice = %s, want 1", h.CurrentPrice)
	}
	if !h.Value.Equal(h.Quantity.Decimal) {
		t.Errorf("cash Value = %s, want quantity %s", h.Value, h.Quantity.Decimal)
	}
	if !h.GainLoss.IsZero() || !h.PercentGainLoss.IsZero() {
		t.Errorf("cash gain/loss = %s/%s, want 0/0", h.GainLoss, h.PercentGainLoss)
	}
	if len(resolver.calls) != 0 {
		t.Errorf("cash triggered %d resolver calls, want 0", len(resolver.calls))
	}
}

func TestBuildRetirementValuation(t *testing.T) {
	v := Valuer{Resolver: &stubResolver{}}

	res := v.Build([]Holding{
		// cost basis is a total for 401k/hsa
		{Ticker: "MY 401K FUND", Type: Retirement401, Quantity: Q(dec("1000")), CostBasis: dec("800")},
		{Ticker: "FZROX", Type: HSA, Quantity: Q(dec("500")), CostBasis: dec("0")},
	})
	if len(res.Holdings) != 2 {
		t.Fatalf("Build() kept %d rows, want 2", len(res.Holdings))
	}

	r401k := res.Holdings[0]
	if !r401k.Value.Equal(dec("1000")) {
		t.Errorf("401k Value = %s, want 1000", r401k.Value)
	}
	if !r401k.GainLoss.Equal(dec("200")) {
		t.Errorf("401k GainLoss = %s, want 200", r401k.GainLoss)
	}
	if !r401k.PercentGainLoss.Equal(dec("25")) {
		t.Errorf("401k PercentGainLoss = %s, want 25", r401k.PercentGainLoss)
	}

	// zero cost basis defaults the percent column to 100
	hsa := res.Holdings[1]
	if !hsa.PercentGainLoss.Equal(dec("100")) {
		t.Errorf("hsa PercentGainLoss = %s, want 100", hsa.PercentGainLoss)
	}
	if !hsa.GainLoss.Equal(dec("500")) {
		t.Errorf("hsa GainLoss = %s, want 500", hsa.GainLoss)
	}
}

func TestBuildStockValuation(t *testing.T) {
	resolver := &stubResolver{prices: map[string]string{"AAPL": "8", "GOOG": "20"}}
	v := Valuer{Resolver: resolver}

	res := v.Build([]Holding{
		// per-unit cost basis: effective cost is 5 * 10 = 50
		{Ticker: "AAPL", Type: Stock, Quantity: Q(dec("10")), CostBasis: dec("5")},
		// zero cost basis: gain/loss is the whole value, percent defaults to 100
		{Ticker: "GOOG", Type: Stock, Quantity: Q(dec("2"))},
	})

	aapl := res.Holdings[0]
	if !aapl.Value.Equal(dec("80")) {
		t.Errorf("AAPL Value = %s, want 80", aapl.Value)
	}
	if !aapl.GainLoss.Equal(dec("30")) {
		t.Errorf("AAPL GainLoss = %s, want 30", aapl.GainLoss)
	}
	if !aapl.PercentGainLoss.Equal(dec("60")) {
		t.Errorf("AAPL PercentGainLoss = %s, want 60", aapl.PercentGainLoss)
	}

	goog := res.Holdings[1]
	if !goog.GainLoss.Equal(dec("40")) {
		t.Errorf("GOOG GainLoss = %s, want 40 (whole value)", goog.GainLoss)
	}
	if !goog.PercentGainLoss.Equal(dec("100")) {
		t.Errorf("GOOG PercentGainLoss = %s, want 100", goog.PercentGainLoss)
	}

	if !res.Total.Equal(dec("120")) {
		t.Errorf("Total = %s, want 120", res.Total)
	}
}

func TestBuildSkipsIncompleteRows(t *testing.T) {
	resolver := &stubResolver{prices: map[string]string{"AAPL": "10"}}
	v := Valuer{Resolver: resolver}

	res := v.Build([]Holding{
		{Ticker: "AAPL", Type: Stock, Quantity: Q(dec("1"))},
		{Ticker: "", Type: Stock, Quantity: Q(dec("1"))},               // missing ticker
		{Ticker: "NOTYPE", Quantity: Q(dec("1"))},                      // missing type
		{Ticker: "NOQTY", Type: Stock},                                 // missing quantity
		{Ticker: "MISS", Type: Stock, Quantity: Q(dec("1"))},           // price unavailable
		{Ticker: "WEIRD", Type: AssetType("bond"), Quantity: Q(dec("1"))}, // unsupported type
	})

	if len(res.Holdings) != 1 || res.Holdings[0].Ticker != "AAPL" {
		t.Fatalf("Build() kept %d rows, want only AAPL", len(res.Holdings))
	}
	if len(res.Skipped) != 5 {
		t.Errorf("Build() skipped %d rows, want 5: %v", len(res.Skipped), res.Skipped)
	}
	// skipped rows keep their input position for reporting
	if res.Skipped[0].Index != 1 {
		t.Errorf("first skip index = %d, want 1", res.Skipped[0].Index)
	}
}

func TestRefreshNeverDropsRows(t *testing.T) {
	// The resolver fails for every dynamic lookup: rows must survive with
	// their previously stored price.
	v := Valuer{Resolver: &stubResolver{}}

	rows := []Holding{
		{Ticker: "AAPL", Type: Stock, Quantity: Q(dec("10")), CurrentPrice: dec("7")},
		{Ticker: "BTC", Type: Crypto, Quantity: Q(dec("2")), CurrentPrice: dec("100")},
		{Ticker: "SPAXX", Type: Cash, Quantity: Q(dec("50"))},
	}
	res := v.RefreshAll(rows)

	if len(res.Holdings) != len(rows) {
		t.Fatalf("RefreshAll() kept %d rows, want %d", len(res.Holdings), len(rows))
	}
	if len(res.Skipped) != 0 {
		t.Errorf("RefreshAll() skipped %d rows, want 0", len(res.Skipped))
	}

	aapl := res.Holdings[0]
	if !aapl.CurrentPrice.Equal(dec("7")) {
		t.Errorf("AAPL retained price = %s, want 7", aapl.CurrentPrice)
	}
	if !aapl.Value.Equal(dec("70")) {
		t.Errorf("AAPL Value = %s, want 70", aapl.Value)
	}
	// zero cost basis defaults the percent column to 0 in refresh mode
	if !aapl.PercentGainLoss.IsZero() {
		t.Errorf("AAPL PercentGainLoss = %s, want 0", aapl.PercentGainLoss)
	}

	if !res.Total.Equal(dec("320")) {
		t.Errorf("Total = %s, want 320", res.Total)
	}
}

func TestRefreshKeepsHoldStatus(t *testing.T) {
	resolver := &stubResolver{prices: map[string]string{"AAPL": "10"}}
	v := Valuer{Resolver: resolver}

	rows := []Holding{
		{Ticker: "AAPL", Type: Stock, Quantity: Q(dec("1")), PurchaseDate: "2022-06-01", LongTermHold: HoldRed},
	}
	res := v.RefreshAll(rows)
	if got := res.Holdings[0].LongTermHold; got != HoldRed {
		t.Errorf("RefreshAll() recomputed hold status to %q, want untouched %q", got, HoldRed)
	}
}

func TestClassifyLongTermHold(t *testing.T) {
	v := Valuer{LTHYears: 2, Now: NewDate(2025, time.January, 1)}

	testCases := []struct {
		date string
		want HoldStatus
	}{
		{date: "2022-06-01", want: HoldGreen},
		{date: "2024-06-01", want: HoldRed},
		{date: "not-a-date", want: HoldInvalidDate},
		{date: "", want: HoldNoDate},
	}
	for _, tc := range testCases {
		if got := v.classify(tc.date); got != tc.want {
			t.Errorf("classify(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestBuildClassifiesHoldStatus(t *testing.T) {
	resolver := &stubResolver{prices: map[string]string{"AAPL": "10", "GOOG": "10"}}
	v := Valuer{Resolver: resolver, LTHYears: 2, Now: NewDate(2025, time.January, 1)}

	res := v.Build([]Holding{
		{Ticker: "AAPL", Type: Stock, Quantity: Q(dec("1")), PurchaseDate: "2022-06-01"},
		{Ticker: "GOOG", Type: Stock, Quantity: Q(dec("1")), PurchaseDate: "2024-06-01"},
		{Ticker: "SPAXX", Type: Cash, Quantity: Q(dec("1"))},
	})

	want := []HoldStatus{HoldGreen, HoldRed, HoldNoDate}
	for i, w := range want {
		if got := res.Holdings[i].LongTermHold; got != w {
			t.Errorf("row %d hold status = %q, want %q", i, got, w)
		}
	}
}
