package folio

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAssetType(t *testing.T) {
	testCases := []struct {
		in      string
		want    AssetType
		wantErr bool
	}{
		{in: "stock", want: Stock},
		{in: " ETF ", want: ETF},
		{in: "401K", want: Retirement401},
		{in: "Cash", want: Cash},
		{in: "bond", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseAssetType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseAssetType(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAssetType(%q) has error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAssetType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAssetTypeSemantics(t *testing.T) {
	for _, typ := range []AssetType{Cash, Retirement401, HSA, ESPP} {
		if !typ.FixedPrice() {
			t.Errorf("%q.FixedPrice() = false, want true", typ)
		}
	}
	for _, typ := range []AssetType{Stock, ETF, Crypto} {
		if typ.FixedPrice() {
			t.Errorf("%q.FixedPrice() = true, want false", typ)
		}
	}
	for _, typ := range []AssetType{Retirement401, HSA} {
		if !typ.TotalCostBasis() {
			t.Errorf("%q.TotalCostBasis() = false, want true", typ)
		}
	}
	if Stock.TotalCostBasis() {
		t.Error("stock carries a per-unit cost basis, not a total")
	}
}

func TestHoldingValidate(t *testing.T) {
	valid := Holding{Ticker: "AAPL", Type: Stock, Quantity: Q(decimal.NewFromInt(10))}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() has error %v for a complete holding", err)
	}

	testCases := []struct {
		name string
		h    Holding
	}{
		{name: "missing ticker", h: Holding{Type: Stock, Quantity: Q(decimal.NewFromInt(1))}},
		{name: "missing type", h: Holding{Ticker: "AAPL", Quantity: Q(decimal.NewFromInt(1))}},
		{name: "missing quantity", h: Holding{Ticker: "AAPL", Type: Stock}},
		{name: "negative quantity", h: Holding{Ticker: "AAPL", Type: Stock, Quantity: Q(decimal.NewFromInt(-1))}},
	}
	for _, tc := range testCases {
		if err := tc.h.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tc.name)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "1234.56", want: "$1,234.56"},
		{in: "0", want: "$0.00"},
		{in: "1000000", want: "$1,000,000.00"},
	}
	for _, tc := range testCases {
		d := decimal.RequireFromString(tc.in)
		if got := FormatUSD(d); got != tc.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
