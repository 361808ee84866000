// Package folio normalizes heterogeneous personal-finance holdings exports
// into one canonical table, enriches it with live market prices, and derives
// valuation metrics. It is designed to be local-first and auditable: the
// canonical CSV table is the single persisted representation of the
// portfolio, human-readable and version-controllable.
//
// The core functionalities include:
//   - Canonical Schema: a fixed record shape (ticker, type, quantity, cost
//     basis, purchase date, liquidity, and the derived price/value/gain
//     columns) shared by every pipeline stage.
//   - Valuation Engine: computes current price, value, gain/loss and
//     long-term-hold classification for every holding, in two modes with
//     different missing-data policies (fresh build vs in-place refresh).
//   - Merge Engine: order-preserving concatenation of two canonical tables.
//   - Price Resolution: a small contract implemented by provider packages
//     (see folio/alphavantage) that absorbs all network and payload failures.
//
// Brokerage-specific export adapters live in their own packages (see
// folio/fidelity). This package serves as the foundational logic for the
// `fol` command-line tool.
package folio
