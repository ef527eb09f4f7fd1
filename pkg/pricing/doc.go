// Package pricing provides the static provider/model price table and the
// cost calculator used to price text-generation requests.
//
// # Price Table
//
// The Table maps (provider, model) pairs to per-1K-token prices expressed
// in minor currency units (cents). Entries are kept in a fixed slice so the
// iteration order is stable across calls; downstream selection logic relies
// on this order for deterministic tie-breaking.
//
// # Cost Calculation
//
// Calculate prices a request from its input/output token counts:
//
//	cost = round(input/1000 * inputPrice + output/1000 * outputPrice)
//
// The result is an integral number of minor currency units. Costs are
// estimates; actual billing by a provider may differ.
//
// # Unknown Models
//
// An unknown provider or model yields a zero-cost CostResult together with
// a typed error (UnknownProviderError or UnknownModelError). Callers that
// ignore the error get the lenient legacy behavior; callers that check it
// can refuse to dispatch rather than under-bill.
package pricing
