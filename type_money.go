package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as operators read it: "$1,234.56".
//
// The canonical table itself stores plain decimals; this formatting is only
// for reported summaries.
func FormatUSD(d decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), money.USD).Display()
}
