// Package routing selects the cheapest provider/model pair that can
// serve an estimated workload under the caller's constraints.
//
// # Quality Tiers
//
// Every pair in the price table is classified into a coarse quality tier
// from its combined per-1K list price (input plus output, in cents):
//
//	basic:   combined price below 0.1
//	good:    combined price from 0.1 up to but not including 1.0
//	premium: combined price of 1.0 and above
//
// Tiers are totally ordered basic < good < premium and express "at least
// this capable" constraints without naming specific models.
//
// # Determinism
//
// Candidates are enumerated in the price table's fixed order, and cost
// ties keep the first candidate encountered. Given the same table,
// workload, and constraints, selection always returns the same choice.
package routing
