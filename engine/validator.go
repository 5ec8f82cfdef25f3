// Package engine orchestrates the Validation Engine: parser, structural
// validator, and rule evaluator, wired against a catalogue and a hierarchy
// resolver, exactly as spec.md §2's "expression -> parser -> structural
// validator -> (rule evaluator <-> hierarchy resolver <-> catalogue store)
// -> aggregator -> result" data flow describes.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	foodex2 "github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/hierarchy"
	"github.com/efsa/foodex2validator/internal/logging"
	"github.com/efsa/foodex2validator/parser"
	"github.com/efsa/foodex2validator/pipeline"
	"github.com/efsa/foodex2validator/rules"
	"github.com/efsa/foodex2validator/worker"
)

// Validator is the FoodEx2 Validation Engine. It coordinates the parser,
// structural validator, and rule evaluator against a read-only catalogue.
type Validator struct {
	store    catalog.Store
	resolver *hierarchy.Resolver
	pipe     *pipeline.Pipeline
	options  *foodex2.Options
	metrics  *foodex2.Metrics

	batchOnce sync.Once
	batch     *worker.BatchValidator
}

// New creates a Validator over store. A failure here is infrastructural
// (§7): an unreadable or inconsistent catalogue is fatal for the process,
// never surfaced as a validation Warning.
func New(ctx context.Context, store catalog.Store, opts ...foodex2.Option) (*Validator, error) {
	if store == nil {
		return nil, fmt.Errorf("engine: store must not be nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	options := foodex2.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	metrics := foodex2.NewMetrics()
	resolver := hierarchy.New(store, options.HierarchyCacheSize)
	resolver.OnCacheHit(metrics.RecordCacheHit)
	resolver.OnCacheMiss(metrics.RecordCacheMiss)

	v := &Validator{
		store:    store,
		resolver: resolver,
		options:  options,
		metrics:  metrics,
	}
	v.buildPipeline(rules.Default())
	logging.Info("validator ready", "hierarchyCacheSize", options.HierarchyCacheSize, "workerCount", options.WorkerCount)
	return v, nil
}

// buildPipeline constructs the parse/structural/rules pipeline from the
// current options and a rule evaluator (the default BR01-BR31 set, or a
// caller-extended one via SetEvaluator). The parse and structural phases
// come from pipeline.NewDefaultPipeline; the rules phase is re-registered
// so a caller-extended evaluator (SR1-SR8, VMPR/additive overlays) can be
// swapped in without rebuilding the earlier phases.
func (v *Validator) buildPipeline(evaluator *rules.Evaluator) {
	p := pipeline.NewDefaultPipeline(&pipeline.PipelineOptions{
		ParallelExecution: v.options.ParallelPhases,
		PhaseTimeout:      v.options.PhaseTimeout,
		MaxErrors:         0,
		CollectMetrics:    true,
	})
	p.Register(pipeline.PhaseIDRules, pipeline.NewRulesPhase(evaluator),
		pipeline.WithPriority(pipeline.PriorityLast), pipeline.WithParallel(false), pipeline.WithRequired(true))
	p.SetMetrics(v.metrics)
	v.pipe = p
}

// SetEvaluator swaps in a caller-extended rule evaluator (e.g. one with
// SR1-SR8 or VMPR/additive overlay modules Register-ed onto it, per
// spec.md §1) and rebuilds the pipeline around it.
func (v *Validator) SetEvaluator(e *rules.Evaluator) {
	v.buildPipeline(e)
}

// Validate validates a single FoodEx2 expression and returns the
// aggregated Result. It never returns a Go error: every expression-level
// fault, structural or semantic, becomes a Warning on the returned Result
// (§7). Callers should call Release() on the Result when done with it.
func (v *Validator) Validate(ctx context.Context, expression string) *foodex2.Result {
	start := time.Now()
	logging.Debug("validating expression", "expression", expression)

	pctx := pipeline.AcquireContext()
	pctx.OriginalCode = expression
	pctx.Store = v.store
	pctx.Resolver = v.resolver
	pctx.ContextMode = v.options.Context
	pctx.Result = foodex2.AcquireResult()
	pctx.Result.OriginalCode = expression
	pctx.Options = &pipeline.ContextOptions{
		BlockOnHigh:                v.options.BlockOnHigh,
		MaxWarnings:                v.options.MaxWarnings,
		SkipRulesOnStructuralError: v.options.SkipRulesOnStructuralError,
	}

	result := v.pipe.Execute(ctx, pctx)
	v.aggregate(result, pctx)

	for _, w := range result.AllWarnings() {
		v.metrics.RecordWarning(w.Severity, w.Rule)
	}
	result.Finalize(v.options.BlockOnHigh)
	v.metrics.RecordValidation(time.Since(start), result.Valid)

	pctx.Result = nil
	pctx.Release()
	return result
}

// aggregate fills in the Result Aggregator's remaining fields (§4.6):
// base term summary, surviving facets, interpreted description, and the
// cleaned canonical code, from the pipeline Context's structural output.
func (v *Validator) aggregate(result *foodex2.Result, pctx *pipeline.Context) {
	if pctx.Resolved.Base != nil {
		base := pctx.Resolved.Base
		result.BaseTerm = &foodex2.BaseTermSummary{
			Code:        base.Code,
			Name:        base.Name,
			Type:        foodex2.TermType(base.Type),
			DetailLevel: base.DetailLevel,
		}
	}

	facets := make([]foodex2.FacetView, 0, len(pctx.Resolved.Facets))
	var desc strings.Builder
	if result.BaseTerm != nil {
		desc.WriteString(result.BaseTerm.Name)
	}
	for _, f := range pctx.Resolved.Facets {
		facets = append(facets, foodex2.FacetView{
			Group:          f.Ref.Group,
			DescriptorCode: f.Ref.DescriptorCode,
			DescriptorName: f.Term.Name,
		})
		label := catalog.FacetGroupHierarchy[f.Ref.Group]
		if label == "" {
			label = f.Ref.Group
		}
		fmt.Fprintf(&desc, ", %s = %s", label, f.Term.Name)
	}
	result.Facets = facets
	if result.BaseTerm != nil {
		result.InterpretedDescription = desc.String()
	}

	for _, w := range result.AllWarnings() {
		if w.Rule == foodex2.RuleImplicitStripped && w.CleanedCode != "" {
			result.CleanedCode = w.CleanedCode
		}
	}
}

// ValidateExpression adapts Validate to worker.Validator, satisfying the
// batch worker pool's interface.
func (v *Validator) ValidateExpression(ctx context.Context, expression string) (*foodex2.Result, error) {
	return v.Validate(ctx, expression), nil
}

// ValidateBatch validates many expressions, preserving the order of
// results relative to expressions (§5's "ordering of results MUST mirror
// order of inputs"). A bounded pool of goroutines runs independent
// validations in parallel; the catalogue is read-only so no shared
// mutable state beyond the hierarchy resolver's memoization table is
// touched.
func (v *Validator) ValidateBatch(ctx context.Context, expressions []string) []*foodex2.Result {
	v.batchOnce.Do(func() {
		v.batch = worker.NewBatchValidator(v.ValidateExpression, v.options.WorkerCount)
	})

	batchResult := v.batch.ValidateBatch(ctx, expressions)
	out := make([]*foodex2.Result, len(expressions))
	for i, jr := range batchResult.Results {
		if jr == nil {
			continue
		}
		out[i] = jr.Result
	}
	return out
}

// Metrics returns the validator's performance and rule-hit metrics.
func (v *Validator) Metrics() *foodex2.Metrics {
	return v.metrics
}

// Options returns the validator's effective configuration.
func (v *Validator) Options() *foodex2.Options {
	return v.options
}

// Store returns the catalogue store backing this validator.
func (v *Validator) Store() catalog.Store {
	return v.store
}

// Close releases resources held by the validator. Present for symmetry
// with other long-lived service types in this codebase; there is
// currently nothing to release since the catalogue store outlives the
// Validator and is closed by its owner.
func (v *Validator) Close() error {
	return nil
}

// quickReject performs the cheap structural pre-check the pipeline's parse
// phase also performs, exposed for callers that want to screen expressions
// before committing to a full Validate call (e.g. a UI's live-typing
// feedback). It never touches the catalogue.
func quickReject(expression string) bool {
	_, faults := parser.Parse(expression)
	return len(faults) > 0
}
