// Package folio implements a portfolio accounting and valuation engine.
//
// The package turns user-submitted trade requests into an immutable,
// cost-basis-consistent transaction ledger, and reconstructs a
// day-by-day valuation curve (invested capital, market value,
// cash-adjusted balance) from that ledger plus historical daily
// closing prices.
//
// The engine itself is a pure computation library: it performs no I/O
// beyond the injected historical-price lookups, so it can be driven by
// the bundled CLI (ofl), the HTTP layer (server), or any other caller
// that owns persistence.
package folio
