// Package foodex2 validates EFSA FoodEx2 food-classification expressions.
//
// A FoodEx2 expression denotes a food with a five-character base term
// optionally refined by facet descriptors, e.g.
// "A0B9Z#F28.A07JS$F01.A0F6E". Validation confirms syntactic
// well-formedness, resolves every term against a catalogue of terms and
// hierarchy edges, enforces the catalogue's business rules, and produces a
// severity-tagged warning list plus a normalized canonical form.
//
// # Quick Start
//
//	import (
//	    fx "github.com/efsa/foodex2validator"
//	    "github.com/efsa/foodex2validator/engine"
//	)
//
//	v, err := engine.New(ctx, store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := v.Validate(ctx, "A0B9Z#F28.A07JS$F01.A0F6E")
//	if !result.Valid {
//	    for _, w := range result.AllWarnings() {
//	        fmt.Println(w.String())
//	    }
//	}
//	result.Release()
//
// # Performance Features
//
//   - Worker pool: parallel batch validation bounded by WorkerCount
//   - Parallel phases: phases registered at the same priority with parallel
//     enabled run concurrently when ParallelPhases is set; the default parse,
//     structural and rule phases run one after another
//   - sync.Pool: Result reuse to reduce GC pressure
//   - Generic LRU cache: ancestor-lookup memoization without interface{} overhead
//
// # Functional Options
//
//	v, err := engine.New(ctx, store,
//	    fx.WithBlockOnHigh(true),
//	    fx.WithParallelPhases(true),
//	    fx.WithWorkerCount(runtime.NumCPU()),
//	)
//
// # Validation Phases
//
// Validation runs in phases, each handling one concern:
//
//   - Structural: shape, descriptor existence, cardinality, duplication
//   - Rules: the full BR01-BR31 business-rule set
//
// # Architecture
//
// Data flows strictly one-way: expression -> parser -> structural validator
// -> (rule evaluator <-> hierarchy resolver <-> catalogue store) ->
// aggregator -> result. The package follows the pipeline/phase pattern
// common to production validators: small interfaces, a phase registry, and
// a Context that accumulates issues as it passes through each phase.
package foodex2
