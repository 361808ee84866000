package folio

// Merge concatenates two canonical tables: a's rows followed by b's rows.
//
// Rows are copied verbatim. There is no deduplication and no cross-table
// identity reconciliation: a ticker present in both inputs yields two rows.
// Callers needing deduplicated holdings must pre-process before merging.
// Derived fields are neither recomputed nor revalidated.
func Merge(a, b []Holding) []Holding {
	merged := make([]Holding, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return merged
}
