package folio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the canonical table format.
// It should remain human readable, single file and easy to diff.

// Header is the fixed column order of a canonical portfolio table.
var Header = []string{
	"Ticker", "Type", "Quantity", "Cost Basis", "Purchase Date", "Liquidity",
	"Current Price", "Value", "Gain/Loss", "% Gain/Loss", "Long-Term Hold",
}

// authoredColumns must be present in any canonical file; derived columns are
// optional on read since a fresh build recomputes them anyway.
var authoredColumns = []string{"ticker", "type", "quantity", "cost basis", "purchase date", "liquidity"}

// CleanNumeric converts a currency-formatted amount ("$1,234.56") into a
// decimal, stripping the dollar sign and thousands separators. It fails soft
// to zero: a value that still does not parse is worth 0, never an error.
func CleanNumeric(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseQuantity keeps the distinction between a zero quantity and a missing
// one: an empty or unparsable cell yields an invalid NullDecimal so that a
// fresh build can skip the row instead of silently valuing it at zero.
func parseQuantity(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return Q(d)
}

// DecodeTable reads a canonical portfolio table from 'r'.
//
// Columns are matched by header name, case-insensitively, so that tables
// written by older versions or by hand still align. Authored columns are
// required; derived columns default to zero when absent. Rows are returned
// in file order, including rows that would not survive a fresh build:
// dropping them is a valuation-mode policy, not a parsing concern.
func DecodeTable(r io.Reader) ([]Holding, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read table header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range authoredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	cell := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []Holding
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: cannot read table record: %w", line, err)
		}

		rows = append(rows, Holding{
			Ticker:          cell(record, "ticker"),
			Type:            AssetType(strings.ToLower(cell(record, "type"))),
			Quantity:        parseQuantity(cell(record, "quantity")),
			CostBasis:       CleanNumeric(cell(record, "cost basis")),
			PurchaseDate:    cell(record, "purchase date"),
			Liquidity:       Liquidity(strings.ToLower(cell(record, "liquidity"))),
			CurrentPrice:    CleanNumeric(cell(record, "current price")),
			Value:           CleanNumeric(cell(record, "value")),
			GainLoss:        CleanNumeric(cell(record, "gain/loss")),
			PercentGainLoss: CleanNumeric(cell(record, "% gain/loss")),
			LongTermHold:    HoldStatus(cell(record, "long-term hold")),
		})
	}
	return rows, nil
}

// EncodeTable writes the holdings to 'w' as a canonical portfolio table, in
// the fixed Header column order.
func EncodeTable(w io.Writer, rows []Holding) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("cannot write table header: %w", err)
	}
	for _, h := range rows {
		quantity := ""
		if h.Quantity.Valid {
			quantity = h.Quantity.Decimal.String()
		}
		record := []string{
			h.Ticker,
			string(h.Type),
			quantity,
			h.CostBasis.String(),
			h.PurchaseDate,
			string(h.Liquidity),
			h.CurrentPrice.String(),
			h.Value.String(),
			h.GainLoss.String(),
			h.PercentGainLoss.String(),
			string(h.LongTermHold),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write record for %q: %w", h.Ticker, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// LoadTable reads the canonical portfolio table at 'path'. A missing or
// unreadable file is the one fatal condition of the pipeline.
func LoadTable(path string) ([]Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio %q: %w", path, err)
	}
	defer f.Close()

	rows, err := DecodeTable(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse portfolio %q: %w", path, err)
	}
	return rows, nil
}

// SaveTable writes the holdings to 'path' as a canonical portfolio table.
//
// The write goes through a temporary file in the same directory followed by
// a rename, so a crash mid-write leaves the previous table intact.
func SaveTable(path string, rows []Holding) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".folio-*.csv")
	if err != nil {
		return fmt.Errorf("cannot create temporary table in %q: %w", dir, err)
	}
	tmp := f.Name()

	if err := EncodeTable(f, rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot encode portfolio %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot close temporary table %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot save portfolio %q: %w", path, err)
	}
	return nil
}
