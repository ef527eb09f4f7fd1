// Saturn is a prompt catalog hydration and cost governance toolkit.
//
// It loads prompt template catalogs, hydrates templates with runtime
// variable bindings, estimates workload cost, selects the cheapest
// provider/model pair that satisfies routing constraints, and enforces
// a spending ceiling across a run.
//
// Usage:
//
//	# Validate a catalog file
//	saturn validate --catalog prompts.json
//
//	# Hydrate a template with bindings
//	saturn hydrate greeting --set name=Sam --set dealership_name="Valley Motors"
//
//	# Hydrate several templates, filtered by intent
//	saturn batch greeting inventory-probe --intent sales --set name=Sam
//
//	# Pick the cheapest provider for a workload
//	saturn select --input-tokens 2000 --output-tokens 500 --min-tier good
//
//	# Run the long-lived service: catalog watching, metrics, budget resets
//	saturn serve --config saturn.yaml
package main

func main() {
	Execute()
}
