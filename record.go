package folio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetType classifies a holding and drives pricing and cost-basis semantics.
//
// The set is open to extension: values decoded from a canonical table keep
// their raw (lowercased) form even when unrecognized, so that a refresh pass
// can carry them through untouched. Known() reports membership in the
// supported set.
type AssetType string

const (
	Cash          AssetType = "cash"
	Stock         AssetType = "stock"
	ETF           AssetType = "etf"
	Crypto        AssetType = "crypto"
	Retirement401 AssetType = "401k"
	HSA           AssetType = "hsa"
	ESPP          AssetType = "espp"
)

// assetTypes is the supported set, in display order.
var assetTypes = []AssetType{Cash, Stock, ETF, Crypto, Retirement401, HSA, ESPP}

// ParseAssetType normalizes 's' and rejects values outside the supported set.
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Known() {
		return t, fmt.Errorf("unsupported asset type %q", s)
	}
	return t, nil
}

// Known reports whether the asset type belongs to the supported set.
func (t AssetType) Known() bool {
	for _, k := range assetTypes {
		if t == k {
			return true
		}
	}
	return false
}

// FixedPrice reports whether the asset type always values at one dollar a
// unit, without any external price lookup.
func (t AssetType) FixedPrice() bool {
	switch t {
	case Cash, Retirement401, HSA, ESPP:
		return true
	}
	return false
}

// TotalCostBasis reports whether the cost basis of this type is already a
// total amount. For every other type the cost basis is per unit and must be
// multiplied by the quantity before comparing it to the value.
func (t AssetType) TotalCostBasis() bool {
	return t == Retirement401 || t == HSA
}

// Liquidity ranks how quickly a holding can be turned into cash.
type Liquidity string

const (
	LiquidityLow    Liquidity = "low"
	LiquidityMedium Liquidity = "medium"
	LiquidityHigh   Liquidity = "high"
)

// ParseLiquidity normalizes 's' into one of the liquidity ranks.
func ParseLiquidity(s string) (Liquidity, error) {
	l := Liquidity(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LiquidityLow, LiquidityMedium, LiquidityHigh:
		return l, nil
	}
	return l, fmt.Errorf("unsupported liquidity %q", s)
}

// HoldStatus is the long-term-hold classification of a holding, computed by
// a fresh-build valuation pass for tax-aware reporting.
type HoldStatus string

const (
	// HoldGreen marks a holding older than the configured threshold.
	HoldGreen HoldStatus = "Green"
	// HoldRed marks a holding younger than the configured threshold.
	HoldRed HoldStatus = "Red"
	// HoldInvalidDate marks a purchase date present but unparsable.
	HoldInvalidDate HoldStatus = "Invalid Date"
	// HoldNoDate marks an absent purchase date.
	HoldNoDate HoldStatus = "No Date"
)

// Holding is one canonical record of the portfolio table.
//
// Ticker, Type, Quantity, CostBasis, PurchaseDate and Liquidity are authored
// (by an adapter or by hand); CurrentPrice, Value, GainLoss, PercentGainLoss
// and LongTermHold are derived and owned by the valuation engine. Adapters
// may fill derived fields with placeholders, a fresh build overwrites them.
type Holding struct {
	Ticker    string
	Type      AssetType
	Quantity  decimal.NullDecimal // invalid when the source cell was empty or unparsable
	CostBasis decimal.Decimal

	// PurchaseDate is kept verbatim: an unparsable date must survive
	// round-trips and classify as HoldInvalidDate, not abort the pass.
	PurchaseDate string

	Liquidity Liquidity

	CurrentPrice    decimal.Decimal
	Value           decimal.Decimal
	GainLoss        decimal.Decimal
	PercentGainLoss decimal.Decimal
	LongTermHold    HoldStatus
}

// Q wraps a decimal into a valid quantity.
func Q(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Validate reports why the holding cannot be admitted into a valued table.
// It checks only the fields a valuation pass requires; derived fields are
// never validated.
func (h Holding) Validate() error {
	if strings.TrimSpace(h.Ticker) == "" {
		return fmt.Errorf("missing ticker")
	}
	if strings.TrimSpace(string(h.Type)) == "" {
		return fmt.Errorf("missing asset type")
	}
	if !h.Quantity.Valid {
		return fmt.Errorf("missing quantity")
	}
	if h.Quantity.Decimal.IsNegative() {
		return fmt.Errorf("negative quantity %s", h.Quantity.Decimal)
	}
	if h.CostBasis.IsNegative() {
		return fmt.Errorf("negative cost basis %s", h.CostBasis)
	}
	return nil
}
