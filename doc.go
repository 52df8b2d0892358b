// Package rebalance computes the current state of a multi-account investment
// portfolio and optionally simulates a rebalancing transaction against live
// or cached prices.
//
// The core functionalities include:
//   - Data Model: asset classes with target allocations, holdings that may be
//     split across several classes, accounts with a cash balance and
//     deduplicated symbol-keyed holdings, and a portfolio with rolled-up
//     totals. All entities are immutable value objects built once per run.
//   - Rebalance Simulation: a pure transformation of the configured accounts
//     that settles contributions, full-position sells and buys under cash and
//     flat trading fee constraints, without mutating its inputs.
//   - Price Resolution: a PriceSource collaborator that resolves ticker
//     symbols to last trade prices, with an HTTP quote client and an optional
//     file-backed TTL cache in front of it.
//
// All money arithmetic is exact decimal arithmetic; values are only rounded
// for display. This package serves as the foundational logic for the `rebal`
// command-line tool, which renders the computed portfolio as tables.
package rebalance
